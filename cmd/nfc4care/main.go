package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"nfc4care/internal/api"
	"nfc4care/internal/config"
	"nfc4care/internal/notify"
	"nfc4care/internal/session"
	"nfc4care/internal/storage"
)

var (
	cfg    *config.Config
	store  *storage.Store
	client *api.Client
	sess   *session.Store
	expiry *notify.ExpirationNotifier
	alerts *notify.Center
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "nfc4care",
	Short:         "NFC4Care clinician client",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func setup() error {
	// A local .env is a convenience for development; absence is fine.
	_ = godotenv.Load()

	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	logger = newLogger(cfg)

	store, err = storage.Open(cfg.StateFile)
	if err != nil {
		return err
	}

	expiry = notify.NewExpirationNotifier()
	alerts = notify.NewCenter()
	client = api.New(cfg.APIBaseURL, cfg.HTTPTimeout, cfg.TokenRevalidateInterval, store, expiry, logger)
	guard := session.NewGuard(store, cfg.LockoutMaxAttempts, cfg.LockoutDuration)
	sess = session.New(client, store, guard, logger)

	// One prompt per process run; the subscriber stays active so repeated
	// auth failures in a single command do not spam the user.
	expiry.Subscribe(func(status int) {
		n := alerts.Error("Session expired", "Log in again with 'nfc4care login'.")
		fmt.Fprintf(os.Stderr, "%s: %s\n", n.Title, n.Message)
	})

	sess.Initialize()
	return nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.LogPretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return logger.Level(level)
}

// requireAuth gates protected commands on a restored session.
func requireAuth() error {
	if !sess.IsAuthenticated() {
		return fmt.Errorf("not logged in; run 'nfc4care login' first")
	}
	return nil
}

// prompt reads one line from stdin after printing the label.
func prompt(label string) string {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func main() {
	// An unexpected fault should end with a readable message, never a bare
	// stack trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "nfc4care hit an unexpected error: %v\n", r)
			fmt.Fprintln(os.Stderr, "Please retry; if it persists, reset the local state file.")
			os.Exit(1)
		}
	}()

	patientCmd.AddCommand(patientListCmd)
	patientCmd.AddCommand(patientGetCmd)
	patientCmd.AddCommand(patientNFCCmd)
	patientCmd.AddCommand(patientSearchCmd)
	patientCmd.AddCommand(patientLiveCmd)
	patientCmd.AddCommand(patientCreateCmd)
	patientCmd.AddCommand(patientUpdateCmd)
	patientCmd.AddCommand(patientDeleteCmd)

	consultationCmd.AddCommand(consultationListCmd)
	consultationCmd.AddCommand(consultationCreateCmd)
	consultationCmd.AddCommand(consultationUpdateCmd)

	recordCmd.AddCommand(recordGetCmd)
	recordCmd.AddCommand(recordUpdateCmd)

	blockchainCmd.AddCommand(blockchainVerifyCmd)
	blockchainCmd.AddCommand(blockchainHistoryCmd)

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	profileCmd.AddCommand(profilePasswordCmd)
	profileCmd.AddCommand(profileEnable2FACmd)
	profileCmd.AddCommand(profileDisable2FACmd)

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(verify2FACmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(patientCmd)
	rootCmd.AddCommand(consultationCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(blockchainCmd)
	rootCmd.AddCommand(profileCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
