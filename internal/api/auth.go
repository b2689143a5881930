package api

import (
	"context"
	"net/http"

	"nfc4care/models"
)

// Login exchanges credentials for a token. A 401 here means bad credentials,
// not an expired session, so no global logout is triggered.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	body := models.LoginRequest{Email: email, Password: password}
	if err := c.validatePayload(body); err != nil {
		return nil, err
	}

	var out models.AuthResponse
	err := c.execute(ctx, http.MethodPost, "/auth/login", body, &out, callOpts{noEscalate: true})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyTwoFactor completes the 2FA handshake using the pending challenge
// token as bearer credential.
func (c *Client) VerifyTwoFactor(ctx context.Context, code, challengeToken string) (*models.AuthResponse, error) {
	body := models.VerifyTwoFactorRequest{Code: code}
	if err := c.validatePayload(body); err != nil {
		return nil, err
	}

	var out models.AuthResponse
	err := c.execute(ctx, http.MethodPost, "/auth/verify-2fa", body, &out, callOpts{
		noEscalate: true,
		bearer:     challengeToken,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidateToken asks the server whether the token is still accepted. The
// validation timestamp is recorded on success.
func (c *Client) ValidateToken(ctx context.Context, bearer string) error {
	err := c.execute(ctx, http.MethodGet, "/auth/validate", nil, nil, callOpts{
		noEscalate: true,
		bearer:     bearer,
	})
	if err != nil {
		return err
	}
	c.recordValidation()
	return nil
}

// Logout notifies the server that this session ends.
func (c *Client) Logout(ctx context.Context) error {
	return c.execute(ctx, http.MethodPost, "/auth/logout", nil, nil, callOpts{noEscalate: true})
}

// LogoutAll invalidates every session of the identity server-side.
func (c *Client) LogoutAll(ctx context.Context) error {
	return c.execute(ctx, http.MethodPost, "/auth/logout-all", nil, nil, callOpts{noEscalate: true})
}
