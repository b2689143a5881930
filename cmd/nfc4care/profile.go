package main

import (
	"fmt"

	"github.com/pquerna/otp/totp"
	"github.com/spf13/cobra"

	"nfc4care/models"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Doctor profile and security settings",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the doctor profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		doctor, err := client.GetProfile(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println("Name      :", doctor.FullName())
		fmt.Println("Email     :", doctor.Email)
		fmt.Println("Role      :", doctor.Role)
		fmt.Println("Specialty :", doctor.Specialite)
		fmt.Println("RPPS      :", doctor.NumeroRpps)
		fmt.Println("Since     :", doctor.DateCreation)
		return nil
	},
}

var profileUpdateFields models.Doctor

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the doctor profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		doctor, err := client.UpdateProfile(cmd.Context(), &profileUpdateFields)
		if err != nil {
			return err
		}
		fmt.Println("Profile updated for", doctor.FullName())
		return nil
	},
}

var profilePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change the account password",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		current := prompt("Current password: ")
		next := prompt("New password: ")
		if err := client.ChangePassword(cmd.Context(), current, next); err != nil {
			return err
		}
		fmt.Println("Password changed.")
		return nil
	},
}

var profileEnable2FACmd = &cobra.Command{
	Use:   "enable-2fa",
	Short: "Enable two-factor authentication",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		setup, err := client.EnableTwoFactor(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println("Secret:", setup.Secret)
		if setup.OtpauthURL != "" {
			fmt.Println("Otpauth URL:", setup.OtpauthURL)
		}
		fmt.Println("Add the secret to your authenticator app.")

		// Check the first code locally against the shared secret before the
		// user walks away believing 2FA works.
		code := prompt("Enter a code from your authenticator to confirm: ")
		if totp.Validate(code, setup.Secret) {
			fmt.Println("Code confirmed; 2FA is active.")
		} else {
			fmt.Println("Code did not match. Check your authenticator clock and secret.")
		}
		return nil
	},
}

var profileDisable2FACmd = &cobra.Command{
	Use:   "disable-2fa",
	Short: "Disable two-factor authentication",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		if err := client.DisableTwoFactor(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("2FA disabled.")
		return nil
	},
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileUpdateFields.Nom, "nom", "", "last name")
	profileUpdateCmd.Flags().StringVar(&profileUpdateFields.Prenom, "prenom", "", "first name")
	profileUpdateCmd.Flags().StringVar(&profileUpdateFields.Specialite, "specialty", "", "specialty")
	profileUpdateCmd.Flags().StringVar(&profileUpdateFields.Email, "email", "", "email")
}
