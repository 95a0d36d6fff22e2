// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fivefourventures/vendor-survey/auth"
	"github.com/fivefourventures/vendor-survey/models"
)

// StartSession returns the active session for a draft token, creating one if
// the token has none. There is at most one active (neither completed nor
// abandoned) session per token at a time.
func (s *Store) StartSession(ctx context.Context, token, ipHash string) (*models.SurveySession, bool, error) {
	sess, err := s.ActiveSession(ctx, token)
	if err == nil {
		return sess, false, nil
	}
	if err != ErrNotFound {
		return nil, false, err
	}

	now := time.Now().UTC()
	sess = &models.SurveySession{
		ID:           auth.NewSessionID(),
		DraftToken:   token,
		StartedAt:    now,
		LastActivity: now,
		CurrentStep:  0,
	}
	if ipHash != "" {
		sess.IPHash = &ipHash
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO survey_session (id, draft_token, started_at, last_activity,
		                            current_step, current_category, completed, abandoned, completed_at, ip_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, sess.ID, sess.DraftToken, sess.StartedAt, sess.LastActivity,
		sess.CurrentStep, nil, false, false, nil, sess.IPHash)
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert session: %w", err)
	}
	return sess, true, nil
}

// ActiveSession returns the newest session for a token that is neither
// completed nor abandoned, or ErrNotFound.
func (s *Store) ActiveSession(ctx context.Context, token string) (*models.SurveySession, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, draft_token, started_at, last_activity, current_step,
		       current_category, completed, abandoned, completed_at, ip_hash
		FROM survey_session
		WHERE draft_token = $1 AND completed = FALSE AND abandoned = FALSE
		ORDER BY started_at DESC
		LIMIT 1
	`, token)

	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query active session: %w", err)
	}
	return sess, nil
}

// ProgressSession records a step transition on the active session. Sessions
// that have already ended are left alone.
func (s *Store) ProgressSession(ctx context.Context, token string, step int, categoryID string) error {
	var category sql.NullString
	if categoryID != "" {
		category = sql.NullString{String: categoryID, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE survey_session
		SET current_step = $1, current_category = $2, last_activity = $3
		WHERE id IN (
			SELECT id FROM survey_session
			WHERE draft_token = $4 AND completed = FALSE AND abandoned = FALSE
			ORDER BY started_at DESC
			LIMIT 1
		)
	`, step, category, time.Now().UTC(), token)
	if err != nil {
		return fmt.Errorf("failed to update session progress: %w", err)
	}
	return nil
}

// CompleteSession finalizes the active session as completed.
func (s *Store) CompleteSession(ctx context.Context, token string) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		UPDATE survey_session
		SET completed = TRUE, completed_at = $1, last_activity = $2
		WHERE id IN (
			SELECT id FROM survey_session
			WHERE draft_token = $3 AND completed = FALSE AND abandoned = FALSE
			ORDER BY started_at DESC
			LIMIT 1
		)
	`, now, now, token)
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}
	return nil
}

// AbandonSession marks the active session abandoned, but only when the
// attempt progressed beyond the start. Attempts that never reached step 1
// simply end without counting against the funnel.
func (s *Store) AbandonSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE survey_session
		SET abandoned = TRUE, last_activity = $1
		WHERE id IN (
			SELECT id FROM survey_session
			WHERE draft_token = $2 AND completed = FALSE AND abandoned = FALSE AND current_step > 0
			ORDER BY started_at DESC
			LIMIT 1
		)
	`, time.Now().UTC(), token)
	if err != nil {
		return fmt.Errorf("failed to abandon session: %w", err)
	}
	return nil
}

// ListSessions returns the full session log, oldest first.
func (s *Store) ListSessions(ctx context.Context) ([]models.SurveySession, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, draft_token, started_at, last_activity, current_step,
		       current_category, completed, abandoned, completed_at, ip_hash
		FROM survey_session
		ORDER BY started_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.SurveySession{}
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *sess)
	}
	return sessions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*models.SurveySession, error) {
	var (
		sess        models.SurveySession
		category    sql.NullString
		completedAt sql.NullTime
		ipHash      sql.NullString
	)
	err := row.Scan(
		&sess.ID, &sess.DraftToken, &sess.StartedAt, &sess.LastActivity,
		&sess.CurrentStep, &category, &sess.Completed, &sess.Abandoned,
		&completedAt, &ipHash,
	)
	if err != nil {
		return nil, err
	}
	if category.Valid {
		sess.CurrentCategory = &category.String
	}
	if completedAt.Valid {
		t := completedAt.Time
		sess.CompletedAt = &t
	}
	if ipHash.Valid {
		sess.IPHash = &ipHash.String
	}
	return &sess, nil
}
