package api

import (
	"context"
	"fmt"
	"net/http"

	"nfc4care/models"
)

// ListConsultations returns the consultation history, optionally filtered to
// one patient (patientID > 0).
func (c *Client) ListConsultations(ctx context.Context, patientID int64) ([]models.Consultation, error) {
	path := "/consultations"
	if patientID > 0 {
		path = fmt.Sprintf("/consultations?patientId=%d", patientID)
	}
	var out []models.Consultation
	if err := c.execute(ctx, http.MethodGet, path, nil, &out, callOpts{}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateConsultation(ctx context.Context, consultation *models.Consultation) (*models.Consultation, error) {
	if err := c.validatePayload(consultation); err != nil {
		return nil, err
	}
	var out models.Consultation
	if err := c.execute(ctx, http.MethodPost, "/consultations", consultation, &out, callOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateConsultation(ctx context.Context, id int64, consultation *models.Consultation) (*models.Consultation, error) {
	if err := c.validatePayload(consultation); err != nil {
		return nil, err
	}
	var out models.Consultation
	if err := c.execute(ctx, http.MethodPut, fmt.Sprintf("/consultations/%d", id), consultation, &out, callOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}
