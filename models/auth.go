package models

// LoginRequest is the POST /auth/login body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyTwoFactorRequest is the POST /auth/verify-2fa body, sent with the
// pending challenge token as bearer credential.
type VerifyTwoFactorRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// AuthResponse is what the backend returns on login and on 2FA verification.
type AuthResponse struct {
	Token           string `json:"token"`
	Type            string `json:"type,omitempty"`
	ProfessionnelID int64  `json:"professionnelId"`
	Nom             string `json:"nom"`
	Prenom          string `json:"prenom"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	Specialite      string `json:"specialite,omitempty"`
	NumeroRpps      string `json:"numeroRpps,omitempty"`
	DateCreation    string `json:"dateCreation,omitempty"`
	Actif           bool   `json:"actif"`
	Requires2FA     bool   `json:"requires2FA"`
}

// Doctor builds the doctor snapshot persisted alongside the token.
func (r AuthResponse) Doctor() Doctor {
	return Doctor{
		ID:           r.ProfessionnelID,
		Email:        r.Email,
		Nom:          r.Nom,
		Prenom:       r.Prenom,
		Specialite:   r.Specialite,
		NumeroRpps:   r.NumeroRpps,
		Role:         r.Role,
		DateCreation: r.DateCreation,
		Actif:        r.Actif,
	}
}

// PendingLogin is the challenge held between first-factor success and
// second-factor completion.
type PendingLogin struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// ChangePasswordRequest is the POST /profile/change-password body.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// TwoFactorSetup is returned by POST /profile/enable-2fa: the shared TOTP
// secret the user loads into their authenticator.
type TwoFactorSetup struct {
	Secret     string `json:"secret"`
	OtpauthURL string `json:"otpauthUrl,omitempty"`
}
