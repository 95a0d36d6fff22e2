// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/fivefourventures/vendor-survey/auth"
	"github.com/fivefourventures/vendor-survey/models"
)

// Submit freezes a draft into an immutable response. The remote insert is
// attempted first; if it fails the response goes to the local fallback file
// instead - never both, so nothing is double counted. Either way the draft
// is cleared and stamped with the response id, which makes repeat submits
// no-ops (ErrAlreadySubmitted carrying the original id).
func (s *Store) Submit(ctx context.Context, d *models.SurveyDraft) (models.SurveyResponse, StorageLocation, error) {
	if d.SubmittedID != "" {
		return models.SurveyResponse{ID: d.SubmittedID}, "", ErrAlreadySubmitted
	}

	resp := freezeDraft(d)

	location := StorageRemote
	if err := s.insertResponse(ctx, resp); err != nil {
		slog.Error("remote insert failed, using local fallback", "error", err, "response_id", resp.ID)
		if ferr := s.fallback.Append(resp); ferr != nil {
			return models.SurveyResponse{}, "", fmt.Errorf("submit failed on both paths: %w", ferr)
		}
		location = StorageLocal
	}

	d.SubmittedID = resp.ID
	d.Reset()
	if err := s.SaveDraft(ctx, d); err != nil {
		// The response is already stored; losing the draft reset only
		// risks a duplicate that the submitted_id guard cannot catch.
		slog.Error("failed to clear draft after submit", "error", err, "token", d.Token)
	}

	if location == StorageRemote {
		s.notifySubscribers(ctx)
	}
	return resp, location, nil
}

// freezeDraft deep-copies the draft fields into a new immutable response
// with a fresh id and timestamp.
func freezeDraft(d *models.SurveyDraft) models.SurveyResponse {
	resp := models.SurveyResponse{
		ID:                   auth.NewResponseID(),
		Timestamp:            time.Now().UTC(),
		Name:                 d.Name,
		Contact:              d.Contact,
		ContactMethod:        d.ContactMethod,
		Responses:            map[string]models.CategoryResponse{},
		AdditionalCategories: append([]string{}, d.AdditionalCategories...),
		AdditionalVendors:    map[string][]string{},
	}
	for id, cr := range d.Responses {
		cr.Vendors = append([]string{}, cr.Vendors...)
		resp.Responses[id] = cr
	}
	for key, vendors := range d.AdditionalVendors {
		resp.AdditionalVendors[key] = append([]string{}, vendors...)
	}
	return resp
}

func (s *Store) insertResponse(ctx context.Context, r models.SurveyResponse) error {
	responsesJSON, err := json.Marshal(r.Responses)
	if err != nil {
		return fmt.Errorf("failed to encode responses: %w", err)
	}
	additionalCatsJSON, err := json.Marshal(r.AdditionalCategories)
	if err != nil {
		return fmt.Errorf("failed to encode additional categories: %w", err)
	}
	additionalVendorJSON, err := json.Marshal(r.AdditionalVendors)
	if err != nil {
		return fmt.Errorf("failed to encode additional vendors: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO survey_response (id, created_at, name, contact, contact_method,
		                             responses, additional_categories, additional_vendors)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.ID, r.Timestamp, r.Name, r.Contact, r.ContactMethod,
		string(responsesJSON), string(additionalCatsJSON), string(additionalVendorJSON))
	if err != nil {
		return fmt.Errorf("failed to insert response: %w", err)
	}
	return nil
}

// InsertResponse stores an admin-supplied record (manual entry). Missing id
// and timestamp are assigned; required fields are validated first.
func (s *Store) InsertResponse(ctx context.Context, r *models.SurveyResponse) error {
	if err := r.Validate(); err != nil {
		return err
	}
	normalizeResponse(r)

	if err := s.insertResponse(ctx, *r); err != nil {
		return err
	}
	s.notifySubscribers(ctx)
	return nil
}

// ListAll returns every stored response, newest first. The fallback file is
// deliberately not merged in; recovering it goes through ImportBackup.
func (s *Store) ListAll(ctx context.Context) ([]models.SurveyResponse, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, name, contact, contact_method,
		       responses, additional_categories, additional_vendors
		FROM survey_response
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	defer rows.Close()

	responses := []models.SurveyResponse{}
	for rows.Next() {
		var (
			r                    models.SurveyResponse
			responsesJSON        []byte
			additionalCatsJSON   []byte
			additionalVendorJSON []byte
		)
		err := rows.Scan(&r.ID, &r.Timestamp, &r.Name, &r.Contact, &r.ContactMethod,
			&responsesJSON, &additionalCatsJSON, &additionalVendorJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		if err := json.Unmarshal(responsesJSON, &r.Responses); err != nil {
			return nil, fmt.Errorf("failed to decode responses for %s: %w", r.ID, err)
		}
		if err := json.Unmarshal(additionalCatsJSON, &r.AdditionalCategories); err != nil {
			return nil, fmt.Errorf("failed to decode additional categories for %s: %w", r.ID, err)
		}
		if err := json.Unmarshal(additionalVendorJSON, &r.AdditionalVendors); err != nil {
			return nil, fmt.Errorf("failed to decode additional vendors for %s: %w", r.ID, err)
		}
		responses = append(responses, r)
	}
	return responses, rows.Err()
}

// DeleteOne removes a single response by id.
func (s *Store) DeleteOne(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM survey_response WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete response: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.notifySubscribers(ctx)
	return nil
}

// ClearAll removes every stored response.
func (s *Store) ClearAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM survey_response`); err != nil {
		return fmt.Errorf("failed to clear responses: %w", err)
	}
	s.notifySubscribers(ctx)
	return nil
}

// Count returns the live number of stored responses.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM survey_response`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return count, nil
}

// importRecord accepts both the current response shape and the legacy one
// that carried top-level phone/email fields instead of contact +
// contact_method.
type importRecord struct {
	models.SurveyResponse
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// ImportBackup merges a JSON array of responses into the database,
// deduplicating by id. The whole merge is one transaction: malformed input
// or a mid-merge failure leaves the collection untouched. Returns how many
// records were actually added.
func (s *Store) ImportBackup(ctx context.Context, data []byte) (int, error) {
	var records []importRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, ErrInvalidBackup
	}

	existing := map[string]bool{}
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM survey_response`)
	if err != nil {
		return 0, fmt.Errorf("failed to query existing ids: %w", err)
	}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan id: %w", err)
		}
		existing[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to read existing ids: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	added := 0
	for _, rec := range records {
		r := rec.SurveyResponse
		migrateLegacyContact(&r, rec.Phone, rec.Email)
		normalizeResponse(&r)

		if existing[r.ID] {
			continue
		}
		existing[r.ID] = true

		responsesJSON, err := json.Marshal(r.Responses)
		if err != nil {
			return 0, ErrInvalidBackup
		}
		additionalCatsJSON, err := json.Marshal(r.AdditionalCategories)
		if err != nil {
			return 0, ErrInvalidBackup
		}
		additionalVendorJSON, err := json.Marshal(r.AdditionalVendors)
		if err != nil {
			return 0, ErrInvalidBackup
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO survey_response (id, created_at, name, contact, contact_method,
			                             responses, additional_categories, additional_vendors)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, r.ID, r.Timestamp, r.Name, r.Contact, r.ContactMethod,
			string(responsesJSON), string(additionalCatsJSON), string(additionalVendorJSON))
		if err != nil {
			return 0, fmt.Errorf("failed to insert imported response %s: %w", r.ID, err)
		}
		added++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}

	if added > 0 {
		s.notifySubscribers(ctx)
	}
	return added, nil
}

// migrateLegacyContact folds the old phone/email field shape into the
// normalized contact + contact_method pair.
func migrateLegacyContact(r *models.SurveyResponse, phone, email string) {
	if r.Contact != "" {
		return
	}
	if phone != "" {
		r.Contact = phone
		r.ContactMethod = models.ContactMethodPhone
		return
	}
	if email != "" {
		r.Contact = email
		r.ContactMethod = models.ContactMethodEmail
	}
}

// normalizeResponse fills defaults an external record may lack.
func normalizeResponse(r *models.SurveyResponse) {
	if r.ID == "" {
		r.ID = auth.NewResponseID()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	if r.ContactMethod != models.ContactMethodEmail && r.ContactMethod != models.ContactMethodPhone {
		r.ContactMethod = models.ContactMethodPhone
	}
	if r.Responses == nil {
		r.Responses = map[string]models.CategoryResponse{}
	}
	if r.AdditionalCategories == nil {
		r.AdditionalCategories = []string{}
	}
	if r.AdditionalVendors == nil {
		r.AdditionalVendors = map[string][]string{}
	}
}
