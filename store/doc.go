// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

/*
Package store persists drafts, analytics sessions, and submitted responses
over database/sql.

# Responsibilities

  - Draft store: one mutable row per client token, upserted on every
    autosave (GetDraft, EnsureDraft, SaveDraft, DeleteDraft)
  - Session log: at most one active session per token
    (StartSession, ProgressSession, CompleteSession, AbandonSession)
  - Response repository: immutable submitted responses
    (Submit, ListAll, DeleteOne, ClearAll, Count, InsertResponse,
    ImportBackup)

# Submission Paths

Submit tries the database first and falls back to a local JSON file when
the insert fails. The StorageLocation return value makes the chosen path
explicit so callers and tests can assert on it. The fallback file shares
the backup export format and is recovered via ImportBackup; reads never
merge it automatically.

# Idempotent Finalization

A submitted draft keeps the response id in its submitted_id column.
Submitting again returns ErrAlreadySubmitted with the original id, so a
double-click can never create two responses.

# Change Notifications

Subscribe registers an in-process subscriber that receives the new live
count after every response mutation. The admin live-count stream is built
on this; consumers recompute their view from the pushed count rather than
patching state incrementally.
*/
package store
