// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

/*
Package db handles database schema creation.

# Schema Overview

The schema consists of 3 tables:

  - survey_response: submitted surveys, immutable once inserted
  - survey_draft: in-progress answer sets, one row per client token
  - survey_session: analytics records of survey attempts

# Relationships

survey_draft and survey_session are correlated by draft_token, but no
foreign key ties them: a session outlives its draft (the draft resets on
submission, the session stays in the analytics log forever).

# Dialect

The server runs against SQLite (default) or PostgreSQL, selected by
configuration. All DDL and queries stick to the shared dialect:

  - $N placeholders (valid in both engines)
  - TEXT columns for JSON-valued fields
  - timestamps bound from Go, never NOW()

# Usage

Call CreateSchema after connecting:

	if err := db.CreateSchema(dbConn); err != nil {
		// handle error
	}

Uses IF NOT EXISTS, so it's safe to call on every startup.
*/
package db
