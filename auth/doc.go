// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

/*
Package auth provides credential checks and identifier generation.

# Admin Password

The admin surface is gated by a single shared password, checked in
constant time:

	if err := auth.ValidateAdminPassword(got, cfg.AdminPassword); err != nil {
		// reject
	}

# Identifiers

Three id kinds, matching their lifecycles:

  - Response ids: random UUIDs (auth.NewResponseID)
  - Draft tokens: random UUIDs held by the client (auth.NewDraftToken)
  - Session ids: ULIDs, time-ordered so the analytics log sorts by id
    (auth.NewSessionID)

GenerateID produces raw random hex where a one-off unique name is
enough, such as the fallback file's temp suffix.

# IP Hashing

HashIP one-way hashes a client IP with a salt before it touches the
session log. Raw IPs are never stored.
*/
package auth
