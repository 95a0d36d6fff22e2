// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

/*
Package main provides the entry point for the vendor survey API server.

The service collects vendor recommendations from community members through a
fixed ten-step survey (contact info, seven service-category questions,
additional-category requests, free-text vendor names) and serves an admin
dashboard with response management, CSV exports, and funnel analytics.

# Starting the Server

Configuration comes from a .env file, environment variables, or CLI flags:

	ADMIN_PASSWORD=... IP_HASH_SALT=... go run .

Or with flags:

	go run . -p 3324 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - ADMIN_PASSWORD (--admin-password): Dashboard password
  - IP_HASH_SALT (--ip-salt): Secret for session IP hashing

Optional settings:

  - PORT (-p): Server port (default: 3324)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): Connection string or sqlite file (default: survey.db)
  - FALLBACK_PATH (--fallback): Local file for failed remote writes
  - RESEND_API_KEY (--resend-key): Enables submission emails
  - NOTIFY_FROM, NOTIFY_TO, ADMIN_BASE_URL: Email details

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (survey flow, admin dashboard)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, admin gate
  - survey: Step flow controller and draft editing rules
  - store: Drafts, sessions, responses, local fallback
  - analytics: Funnel and category aggregation
  - csvexport: Spreadsheet-safe CSV reports
  - notify: Resend submission emails
  - models: Domain and request/response types
  - auth: Password check, ID generation, IP hashing
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
