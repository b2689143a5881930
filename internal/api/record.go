package api

import (
	"context"
	"fmt"
	"net/http"

	"nfc4care/models"
)

func (c *Client) GetMedicalRecord(ctx context.Context, patientID int64) (*models.MedicalRecord, error) {
	var out models.MedicalRecord
	path := fmt.Sprintf("/medical-records/%d", patientID)
	if err := c.execute(ctx, http.MethodGet, path, nil, &out, callOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMedicalRecord(ctx context.Context, patientID int64, record *models.MedicalRecord) (*models.MedicalRecord, error) {
	var out models.MedicalRecord
	path := fmt.Sprintf("/medical-records/%d", patientID)
	if err := c.execute(ctx, http.MethodPut, path, record, &out, callOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}
