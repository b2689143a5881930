package models

// Doctor is the authenticated professional as the API reports it. Field names
// follow the backend contract, which is French throughout.
type Doctor struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Nom          string `json:"nom"`
	Prenom       string `json:"prenom"`
	Specialite   string `json:"specialite,omitempty"`
	NumeroRpps   string `json:"numeroRpps,omitempty"`
	Role         string `json:"role"`
	DateCreation string `json:"dateCreation,omitempty"`
	Actif        bool   `json:"actif"`
}

// FullName returns "Prenom Nom" for display.
func (d Doctor) FullName() string {
	if d.Prenom == "" {
		return d.Nom
	}
	return d.Prenom + " " + d.Nom
}
