package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"nfc4care/internal/search"
	"nfc4care/models"
	"nfc4care/pkg/utils"
)

var patientCmd = &cobra.Command{
	Use:   "patient",
	Short: "Look up and manage patients",
}

func printPatient(p *models.Patient) {
	fmt.Println("ID        :", p.ID)
	fmt.Println("Dossier   :", p.NumeroDossier)
	fmt.Println("Name      :", p.Prenom, p.Nom)
	if age, err := utils.Age(p.DateNaissance); err == nil {
		fmt.Printf("Born      : %s (%d years)\n", p.DateNaissance, age)
	} else {
		fmt.Println("Born      :", p.DateNaissance)
	}
	if p.Sexe != "" {
		fmt.Println("Sex       :", p.Sexe)
	}
	if p.GroupeSanguin != "" {
		fmt.Println("Blood     :", p.GroupeSanguin)
	}
	if p.Telephone != "" {
		fmt.Println("Phone     :", p.Telephone)
	}
	if p.NumeroNfc != "" {
		fmt.Println("NFC       :", p.NumeroNfc)
	}
}

func printPatientLine(p models.Patient) {
	fmt.Printf("  %-6d %-12s %s %s (%s)\n", p.ID, p.NumeroDossier, p.Prenom, p.Nom, p.DateNaissance)
}

var patientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List patients",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		patients, err := client.ListPatients(cmd.Context())
		if err != nil {
			return err
		}
		for _, p := range patients {
			printPatientLine(p)
		}
		return nil
	},
}

var patientGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one patient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid patient id %q", args[0])
		}
		p, err := client.GetPatient(cmd.Context(), id)
		if err != nil {
			return err
		}
		printPatient(p)
		return nil
	},
}

var patientNFCCmd = &cobra.Command{
	Use:   "nfc <nfc-id>",
	Short: "Look up a patient from a scanned NFC card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		p, err := client.GetPatientByNFC(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printPatient(p)
		return nil
	},
}

var patientSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search patients by name or dossier number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		recent := search.NewRecent(store, cfg.RecentSearchesMax)
		if err := recent.Add(args[0]); err != nil {
			logger.Warn().Err(err).Msg("failed to record recent search")
		}

		patients, err := client.SearchPatients(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(patients) == 0 {
			fmt.Println("No patients found.")
			return nil
		}
		for _, p := range patients {
			printPatientLine(p)
		}
		return nil
	},
}

// patientLiveCmd is the CLI rendition of the live-search box: each input line
// is debounced and only queried once it reaches the minimum length.
var patientLiveCmd = &cobra.Command{
	Use:   "live",
	Short: "Interactive live search (empty line quits)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		debouncer := search.NewDebouncer(cfg.SearchDebounce, cfg.SearchMinLength)
		defer debouncer.Cancel()
		recent := search.NewRecent(store, cfg.RecentSearchesMax)

		if prev := recent.List(); len(prev) > 0 {
			fmt.Println("Recent:", prev)
		}

		fmt.Printf("Type at least %d characters; empty line quits.\n", cfg.SearchMinLength)
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			line := scanner.Text()
			if line == "" {
				return nil
			}

			debouncer.Input(line, func(query string) {
				patients, err := client.SearchPatients(cmd.Context(), query)
				if err != nil {
					fmt.Println("  search failed:", err)
					return
				}
				for _, p := range patients {
					printPatientLine(p)
				}
			})
		}
	},
}

var patientFields models.Patient

var patientCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new patient",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		p, err := client.CreatePatient(cmd.Context(), &patientFields)
		if err != nil {
			return err
		}
		fmt.Println("Created patient", p.ID, "dossier", p.NumeroDossier)
		return nil
	},
}

var patientUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a patient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid patient id %q", args[0])
		}
		p, err := client.UpdatePatient(cmd.Context(), id, &patientFields)
		if err != nil {
			return err
		}
		fmt.Println("Updated patient", p.ID)
		return nil
	},
}

var patientDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a patient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid patient id %q", args[0])
		}
		if err := client.DeletePatient(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Println("Deleted patient", id)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{patientCreateCmd, patientUpdateCmd} {
		c.Flags().StringVar(&patientFields.Nom, "nom", "", "last name")
		c.Flags().StringVar(&patientFields.Prenom, "prenom", "", "first name")
		c.Flags().StringVar(&patientFields.DateNaissance, "birth", "", "date of birth (YYYY-MM-DD)")
		c.Flags().StringVar(&patientFields.Sexe, "sex", "", "sex")
		c.Flags().StringVar(&patientFields.Adresse, "address", "", "address")
		c.Flags().StringVar(&patientFields.Telephone, "phone", "", "phone number")
		c.Flags().StringVar(&patientFields.Email, "email", "", "email")
		c.Flags().StringVar(&patientFields.NumeroSecuriteSociale, "nss", "", "social security number")
		c.Flags().StringVar(&patientFields.GroupeSanguin, "blood", "", "blood group")
		c.Flags().StringVar(&patientFields.NumeroNfc, "nfc", "", "NFC card id")
	}
}
