// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fivefourventures/vendor-survey/models"
)

// GetDraft loads the draft for a client token. Returns ErrNotFound if the
// token has no draft yet.
func (s *Store) GetDraft(ctx context.Context, token string) (*models.SurveyDraft, error) {
	var (
		d                    models.SurveyDraft
		responsesJSON        []byte
		additionalCatsJSON   []byte
		additionalVendorJSON []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT token, name, contact, contact_method, responses,
		       additional_categories, additional_vendors, step, submitted_id, updated_at
		FROM survey_draft
		WHERE token = $1
	`, token).Scan(
		&d.Token, &d.Name, &d.Contact, &d.ContactMethod, &responsesJSON,
		&additionalCatsJSON, &additionalVendorJSON, &d.Step, &d.SubmittedID, &d.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query draft: %w", err)
	}

	if err := json.Unmarshal(responsesJSON, &d.Responses); err != nil {
		return nil, fmt.Errorf("failed to decode draft responses: %w", err)
	}
	if err := json.Unmarshal(additionalCatsJSON, &d.AdditionalCategories); err != nil {
		return nil, fmt.Errorf("failed to decode draft additional categories: %w", err)
	}
	if err := json.Unmarshal(additionalVendorJSON, &d.AdditionalVendors); err != nil {
		return nil, fmt.Errorf("failed to decode draft additional vendors: %w", err)
	}

	return &d, nil
}

// EnsureDraft loads the draft for a token, creating an empty one if none
// exists. The bool reports whether a new draft was created.
func (s *Store) EnsureDraft(ctx context.Context, token string) (*models.SurveyDraft, bool, error) {
	d, err := s.GetDraft(ctx, token)
	if err == nil {
		return d, false, nil
	}
	if err != ErrNotFound {
		return nil, false, err
	}

	d = models.NewDraft(token)
	if err := s.SaveDraft(ctx, d); err != nil {
		return nil, false, err
	}
	return d, true, nil
}

// SaveDraft upserts the full draft row. Autosaves are last-write-wins; the
// single-active-editor assumption means no conflict resolution is needed.
func (s *Store) SaveDraft(ctx context.Context, d *models.SurveyDraft) error {
	responsesJSON, err := json.Marshal(d.Responses)
	if err != nil {
		return fmt.Errorf("failed to encode draft responses: %w", err)
	}
	additionalCatsJSON, err := json.Marshal(d.AdditionalCategories)
	if err != nil {
		return fmt.Errorf("failed to encode draft additional categories: %w", err)
	}
	additionalVendorJSON, err := json.Marshal(d.AdditionalVendors)
	if err != nil {
		return fmt.Errorf("failed to encode draft additional vendors: %w", err)
	}

	d.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO survey_draft (token, name, contact, contact_method, responses,
		                          additional_categories, additional_vendors, step, submitted_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (token) DO UPDATE SET
			name = excluded.name,
			contact = excluded.contact,
			contact_method = excluded.contact_method,
			responses = excluded.responses,
			additional_categories = excluded.additional_categories,
			additional_vendors = excluded.additional_vendors,
			step = excluded.step,
			submitted_id = excluded.submitted_id,
			updated_at = excluded.updated_at
	`, d.Token, d.Name, d.Contact, d.ContactMethod, string(responsesJSON),
		string(additionalCatsJSON), string(additionalVendorJSON), d.Step, d.SubmittedID, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// DeleteDraft removes a draft entirely ("start over").
func (s *Store) DeleteDraft(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM survey_draft WHERE token = $1`, token); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
