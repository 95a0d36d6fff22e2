// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The DDL is deliberately restricted to the dialect both SQLite and
// PostgreSQL accept: JSON-valued columns are TEXT, timestamps are always
// bound from Go (no NOW()), and statements use $N placeholders everywhere.
const schema = `
-- Submitted survey responses (immutable once inserted)
CREATE TABLE IF NOT EXISTS survey_response (
    id TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL,
    name TEXT NOT NULL DEFAULT '',
    contact TEXT NOT NULL DEFAULT '',
    contact_method TEXT NOT NULL DEFAULT 'phone' CHECK (contact_method IN ('email', 'phone')),
    responses TEXT NOT NULL DEFAULT '{}',
    additional_categories TEXT NOT NULL DEFAULT '[]',
    additional_vendors TEXT NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS idx_survey_response_created_at ON survey_response(created_at);

-- In-progress drafts, one per client token
CREATE TABLE IF NOT EXISTS survey_draft (
    token TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    contact TEXT NOT NULL DEFAULT '',
    contact_method TEXT NOT NULL DEFAULT 'phone' CHECK (contact_method IN ('email', 'phone')),
    responses TEXT NOT NULL DEFAULT '{}',
    additional_categories TEXT NOT NULL DEFAULT '[]',
    additional_vendors TEXT NOT NULL DEFAULT '{}',
    step INTEGER NOT NULL DEFAULT 1,
    submitted_id TEXT NOT NULL DEFAULT '',
    updated_at TIMESTAMP NOT NULL
);

-- Analytics sessions, one per survey attempt
CREATE TABLE IF NOT EXISTS survey_session (
    id TEXT PRIMARY KEY,
    draft_token TEXT NOT NULL,
    started_at TIMESTAMP NOT NULL,
    last_activity TIMESTAMP NOT NULL,
    current_step INTEGER NOT NULL DEFAULT 0,
    current_category TEXT,
    completed BOOLEAN NOT NULL DEFAULT FALSE,
    abandoned BOOLEAN NOT NULL DEFAULT FALSE,
    completed_at TIMESTAMP,
    ip_hash TEXT
);

CREATE INDEX IF NOT EXISTS idx_survey_session_token ON survey_session(draft_token);
CREATE INDEX IF NOT EXISTS idx_survey_session_started_at ON survey_session(started_at);
`
