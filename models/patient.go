package models

type Patient struct {
	ID                    int64  `json:"id"`
	NumeroDossier         string `json:"numeroDossier"`
	Nom                   string `json:"nom" validate:"required"`
	Prenom                string `json:"prenom" validate:"required"`
	DateNaissance         string `json:"dateNaissance" validate:"required"`
	Sexe                  string `json:"sexe,omitempty"`
	Adresse               string `json:"adresse,omitempty"`
	Telephone             string `json:"telephone,omitempty"`
	Email                 string `json:"email,omitempty" validate:"omitempty,email"`
	NumeroSecuriteSociale string `json:"numeroSecuriteSociale,omitempty"`
	GroupeSanguin         string `json:"groupeSanguin,omitempty"`
	NumeroNfc             string `json:"numeroNfc,omitempty"`
	DateCreation          string `json:"dateCreation,omitempty"`
	DerniereConsultation  string `json:"derniereConsultation,omitempty"`
	Actif                 bool   `json:"actif"`
}

type MedicalRecord struct {
	ID                          int64  `json:"id"`
	PatientID                   int64  `json:"patientId"`
	AntecedentsMedicaux         string `json:"antecedentsMedicaux,omitempty"`
	AntecedentsChirurgicaux     string `json:"antecedentsChirurgicaux,omitempty"`
	AntecedentsFamiliaux        string `json:"antecedentsFamiliaux,omitempty"`
	TraitementsEnCours          string `json:"traitementsEnCours,omitempty"`
	Allergies                   string `json:"allergies,omitempty"`
	ObservationsGenerales       string `json:"observationsGenerales,omitempty"`
	HashContenu                 string `json:"hashContenu,omitempty"`
	BlockchainTxnHash           string `json:"blockchainTxnHash,omitempty"`
	DateCreation                string `json:"dateCreation,omitempty"`
	DateModification            string `json:"dateModification,omitempty"`
	ProfessionnelCreationID     int64  `json:"professionnelCreationId,omitempty"`
	ProfessionnelModificationID int64  `json:"professionnelModificationId,omitempty"`
}

type Consultation struct {
	ID                 int64  `json:"id"`
	DossierMedicalID   int64  `json:"dossierMedicalId"`
	ProfessionnelID    int64  `json:"professionnelId"`
	DateConsultation   string `json:"dateConsultation"`
	MotifConsultation  string `json:"motifConsultation" validate:"required"`
	ExamenClinique     string `json:"examenClinique,omitempty"`
	Diagnostic         string `json:"diagnostic,omitempty"`
	TraitementPrescrit string `json:"traitementPrescrit,omitempty"`
	Ordonnance         string `json:"ordonnance,omitempty"`
	Observations       string `json:"observations,omitempty"`
	ProchainRdv        string `json:"prochainRdv,omitempty"`
	HashContenu        string `json:"hashContenu,omitempty"`
	BlockchainTxnHash  string `json:"blockchainTxnHash,omitempty"`
	DateCreation       string `json:"dateCreation,omitempty"`
	DateModification   string `json:"dateModification,omitempty"`
}

// BlockchainVerification is the result of GET /blockchain/verify/{id}.
type BlockchainVerification struct {
	RecordID     int64  `json:"recordId"`
	Valid        bool   `json:"valid"`
	TxnHash      string `json:"txnHash,omitempty"`
	ComputedHash string `json:"computedHash,omitempty"`
	AnchoredHash string `json:"anchoredHash,omitempty"`
	VerifiedAt   string `json:"verifiedAt,omitempty"`
}

// BlockchainEntry is one anchored revision in GET /blockchain/history/{patientId}.
type BlockchainEntry struct {
	TxnHash     string `json:"txnHash"`
	HashContenu string `json:"hashContenu"`
	Kind        string `json:"kind,omitempty"`
	AnchoredAt  string `json:"anchoredAt,omitempty"`
}
