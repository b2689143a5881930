package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"nfc4care/internal/storage"
	"nfc4care/internal/token"
)

var (
	loginEmail    string
	loginPassword string
	logoutAll     bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the NFC4Care backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		email := loginEmail
		if email == "" {
			email = prompt("Email: ")
		}
		password := loginPassword
		if password == "" {
			password = prompt("Password: ")
		}

		requires2FA, err := sess.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		if requires2FA {
			fmt.Println("Two-factor code required. Complete with 'nfc4care verify-2fa <code>'.")
			return nil
		}

		doctor := sess.CurrentDoctor()
		fmt.Println("Logged in as", doctor.FullName())
		return nil
	},
}

var verify2FACmd = &cobra.Command{
	Use:   "verify-2fa <code>",
	Short: "Complete a pending two-factor login",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sess.VerifySecondFactor(cmd.Context(), args[0]); err != nil {
			return err
		}
		doctor := sess.CurrentDoctor()
		fmt.Println("Logged in as", doctor.FullName())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if logoutAll {
			sess.LogoutAll(cmd.Context())
			fmt.Println("All sessions logged out.")
			return nil
		}
		sess.Logout(cmd.Context())
		fmt.Println("Logged out.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		doctor := sess.CurrentDoctor()
		if doctor == nil {
			if sess.HasPendingLogin() {
				fmt.Println("Two-factor code pending. Complete with 'nfc4care verify-2fa <code>'.")
				return nil
			}
			fmt.Println("Not logged in.")
			return nil
		}

		fmt.Println("Doctor    :", doctor.FullName())
		fmt.Println("Email     :", doctor.Email)
		fmt.Println("Role      :", doctor.Role)
		if doctor.Specialite != "" {
			fmt.Println("Specialty :", doctor.Specialite)
		}
		if doctor.NumeroRpps != "" {
			fmt.Println("RPPS      :", doctor.NumeroRpps)
		}
		if tok, ok := store.Get(storage.KeyAuthToken); ok {
			fmt.Println("Token     :", token.TimeRemaining(tok).Round(time.Second), "remaining")
		}
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-validate the stored token against the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		sess.Refresh(cmd.Context())
		if sess.IsAuthenticated() {
			fmt.Println("Session still valid.")
		} else {
			fmt.Println("Session no longer valid; logged out.")
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password (prompted when omitted)")
	logoutCmd.Flags().BoolVar(&logoutAll, "all", false, "invalidate every session of this account")
}
