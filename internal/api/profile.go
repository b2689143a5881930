package api

import (
	"context"
	"net/http"

	"nfc4care/models"
)

func (c *Client) GetProfile(ctx context.Context) (*models.Doctor, error) {
	var out models.Doctor
	if err := c.execute(ctx, http.MethodGet, "/profile", nil, &out, callOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, doctor *models.Doctor) (*models.Doctor, error) {
	var out models.Doctor
	if err := c.execute(ctx, http.MethodPut, "/profile", doctor, &out, callOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := models.ChangePasswordRequest{CurrentPassword: current, NewPassword: next}
	if err := c.validatePayload(body); err != nil {
		return err
	}
	return c.execute(ctx, http.MethodPost, "/profile/change-password", body, nil, callOpts{})
}

// EnableTwoFactor starts 2FA enrollment; the returned secret goes into the
// user's authenticator app.
func (c *Client) EnableTwoFactor(ctx context.Context) (*models.TwoFactorSetup, error) {
	var out models.TwoFactorSetup
	if err := c.execute(ctx, http.MethodPost, "/profile/enable-2fa", nil, &out, callOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DisableTwoFactor(ctx context.Context) error {
	return c.execute(ctx, http.MethodPost, "/profile/disable-2fa", nil, nil, callOpts{})
}
