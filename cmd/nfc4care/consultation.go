package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"nfc4care/models"
	"nfc4care/pkg/utils"
)

var consultationCmd = &cobra.Command{
	Use:   "consultation",
	Short: "Consultation history",
}

var consultationPatientID int64

var consultationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List consultations, optionally for one patient",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		consultations, err := client.ListConsultations(cmd.Context(), consultationPatientID)
		if err != nil {
			return err
		}
		for _, c := range consultations {
			fmt.Printf("  %-6d %s  %s\n", c.ID, c.DateConsultation, utils.Truncate(c.MotifConsultation, 60))
			if c.Diagnostic != "" {
				fmt.Println("         diagnostic:", utils.Truncate(c.Diagnostic, 60))
			}
		}
		return nil
	},
}

var consultationFields models.Consultation

var consultationCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Record a new consultation",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		c, err := client.CreateConsultation(cmd.Context(), &consultationFields)
		if err != nil {
			return err
		}
		fmt.Println("Created consultation", c.ID)
		if c.HashContenu != "" {
			fmt.Println("Content hash:", c.HashContenu)
		}
		return nil
	},
}

var consultationUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a consultation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid consultation id %q", args[0])
		}
		c, err := client.UpdateConsultation(cmd.Context(), id, &consultationFields)
		if err != nil {
			return err
		}
		fmt.Println("Updated consultation", c.ID)
		return nil
	},
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Patient medical records",
}

var recordGetCmd = &cobra.Command{
	Use:   "get <patient-id>",
	Short: "Show a patient's medical record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		patientID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid patient id %q", args[0])
		}
		r, err := client.GetMedicalRecord(cmd.Context(), patientID)
		if err != nil {
			return err
		}
		fmt.Println("Record       :", r.ID)
		fmt.Println("Medical hist :", r.AntecedentsMedicaux)
		fmt.Println("Surgical hist:", r.AntecedentsChirurgicaux)
		fmt.Println("Family hist  :", r.AntecedentsFamiliaux)
		fmt.Println("Treatments   :", r.TraitementsEnCours)
		fmt.Println("Allergies    :", r.Allergies)
		fmt.Println("Observations :", r.ObservationsGenerales)
		fmt.Println("Content hash :", r.HashContenu)
		if r.BlockchainTxnHash != "" {
			fmt.Println("Anchored txn :", r.BlockchainTxnHash)
		}
		return nil
	},
}

var recordFields models.MedicalRecord

var recordUpdateCmd = &cobra.Command{
	Use:   "update <patient-id>",
	Short: "Update a patient's medical record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		patientID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid patient id %q", args[0])
		}
		r, err := client.UpdateMedicalRecord(cmd.Context(), patientID, &recordFields)
		if err != nil {
			return err
		}
		fmt.Println("Updated record", r.ID)
		return nil
	},
}

var blockchainCmd = &cobra.Command{
	Use:   "blockchain",
	Short: "Record integrity verification",
}

var blockchainVerifyCmd = &cobra.Command{
	Use:   "verify <record-id>",
	Short: "Verify a record against its anchored hash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		recordID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid record id %q", args[0])
		}
		v, err := client.VerifyIntegrity(cmd.Context(), recordID)
		if err != nil {
			return err
		}
		if v.Valid {
			fmt.Println("Integrity OK")
		} else {
			fmt.Println("INTEGRITY MISMATCH")
		}
		fmt.Println("Computed :", v.ComputedHash)
		fmt.Println("Anchored :", v.AnchoredHash)
		if v.TxnHash != "" {
			fmt.Println("Txn      :", v.TxnHash)
		}
		return nil
	},
}

var blockchainHistoryCmd = &cobra.Command{
	Use:   "history <patient-id>",
	Short: "List anchored revisions of a patient's record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		patientID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid patient id %q", args[0])
		}
		entries, err := client.BlockchainHistory(cmd.Context(), patientID)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("  %s  %s  %s\n", e.AnchoredAt, utils.Truncate(e.TxnHash, 16), e.Kind)
		}
		return nil
	},
}

func init() {
	consultationListCmd.Flags().Int64Var(&consultationPatientID, "patient", 0, "filter by patient id")

	for _, c := range []*cobra.Command{consultationCreateCmd, consultationUpdateCmd} {
		c.Flags().Int64Var(&consultationFields.DossierMedicalID, "dossier", 0, "medical record id")
		c.Flags().StringVar(&consultationFields.DateConsultation, "date", "", "consultation date")
		c.Flags().StringVar(&consultationFields.MotifConsultation, "motif", "", "reason for consultation")
		c.Flags().StringVar(&consultationFields.ExamenClinique, "examen", "", "clinical examination")
		c.Flags().StringVar(&consultationFields.Diagnostic, "diagnostic", "", "diagnosis")
		c.Flags().StringVar(&consultationFields.TraitementPrescrit, "traitement", "", "prescribed treatment")
		c.Flags().StringVar(&consultationFields.Ordonnance, "ordonnance", "", "prescription")
		c.Flags().StringVar(&consultationFields.Observations, "observations", "", "observations")
		c.Flags().StringVar(&consultationFields.ProchainRdv, "rdv", "", "next appointment")
	}

	recordUpdateCmd.Flags().StringVar(&recordFields.AntecedentsMedicaux, "medical", "", "medical history")
	recordUpdateCmd.Flags().StringVar(&recordFields.AntecedentsChirurgicaux, "surgical", "", "surgical history")
	recordUpdateCmd.Flags().StringVar(&recordFields.AntecedentsFamiliaux, "family", "", "family history")
	recordUpdateCmd.Flags().StringVar(&recordFields.TraitementsEnCours, "treatments", "", "ongoing treatments")
	recordUpdateCmd.Flags().StringVar(&recordFields.Allergies, "allergies", "", "allergies")
	recordUpdateCmd.Flags().StringVar(&recordFields.ObservationsGenerales, "observations", "", "general observations")
}
