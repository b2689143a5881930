package api

import (
	"context"
	"fmt"
	"net/http"

	"nfc4care/models"
)

// VerifyIntegrity asks the backend to recompute a record's content hash and
// compare it against the blockchain-anchored one.
func (c *Client) VerifyIntegrity(ctx context.Context, recordID int64) (*models.BlockchainVerification, error) {
	var out models.BlockchainVerification
	path := fmt.Sprintf("/blockchain/verify/%d", recordID)
	if err := c.execute(ctx, http.MethodGet, path, nil, &out, callOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

// BlockchainHistory lists the anchored revisions of a patient's record.
func (c *Client) BlockchainHistory(ctx context.Context, patientID int64) ([]models.BlockchainEntry, error) {
	var out []models.BlockchainEntry
	path := fmt.Sprintf("/blockchain/history/%d", patientID)
	if err := c.execute(ctx, http.MethodGet, path, nil, &out, callOpts{}); err != nil {
		return nil, err
	}
	return out, nil
}
