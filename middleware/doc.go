// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Middleware

  - WithLogging: structured request/completion logging via slog
  - WithAdminAuth: constant-time admin password gate for admin routes
  - CORS: permissive CORS for the survey frontend, including the
    X-Draft-Token and X-Admin-Password headers

# JSON Helpers

  - JSONResponse: encode a value with a status code
  - ErrorResponse: standard error envelope (models.ErrorResponse)
  - ParseJSONBody: decode a request body

# Client IP

GetClientIP resolves the caller's address through X-Forwarded-For and
X-Real-IP before falling back to RemoteAddr. The result is only ever
stored hashed (see auth.HashIP).
*/
package middleware
