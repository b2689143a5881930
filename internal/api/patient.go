package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"nfc4care/models"
)

func (c *Client) ListPatients(ctx context.Context) ([]models.Patient, error) {
	var out []models.Patient
	if err := c.execute(ctx, http.MethodGet, "/patients", nil, &out, callOpts{}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPatient(ctx context.Context, id int64) (*models.Patient, error) {
	var out models.Patient
	if err := c.execute(ctx, http.MethodGet, fmt.Sprintf("/patients/%d", id), nil, &out, callOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPatientByNFC resolves a scanned NFC card identifier to a patient.
func (c *Client) GetPatientByNFC(ctx context.Context, nfcID string) (*models.Patient, error) {
	var out models.Patient
	path := "/patients/nfc/" + url.PathEscape(nfcID)
	if err := c.execute(ctx, http.MethodGet, path, nil, &out, callOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchPatients runs a live query. Auth failures here surface as local
// errors only; a search never tears down the session.
func (c *Client) SearchPatients(ctx context.Context, query string) ([]models.Patient, error) {
	var out []models.Patient
	path := "/patients/search?q=" + url.QueryEscape(query)
	if err := c.execute(ctx, http.MethodGet, path, nil, &out, callOpts{search: true}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePatient(ctx context.Context, p *models.Patient) (*models.Patient, error) {
	if err := c.validatePayload(p); err != nil {
		return nil, err
	}
	var out models.Patient
	if err := c.execute(ctx, http.MethodPost, "/patients", p, &out, callOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePatient(ctx context.Context, id int64, p *models.Patient) (*models.Patient, error) {
	if err := c.validatePayload(p); err != nil {
		return nil, err
	}
	var out models.Patient
	if err := c.execute(ctx, http.MethodPut, fmt.Sprintf("/patients/%d", id), p, &out, callOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePatient(ctx context.Context, id int64) error {
	return c.execute(ctx, http.MethodDelete, fmt.Sprintf("/patients/%d", id), nil, nil, callOpts{})
}
