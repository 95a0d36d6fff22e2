// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

/*
Package cliparse handles configuration from CLI flags and environment
variables.

# Precedence

CLI flags win over environment variables, which win over defaults:

	vendor-survey -p 8080 -t postgres -d "postgres://..."

# Settings

Required:

  - ADMIN_PASSWORD (--admin-password): admin surface password
  - IP_HASH_SALT (--ip-salt): salt for session IP hashing
  - DATABASE_URL (-d): connection string (postgres only; sqlite
    defaults to survey.db)

Optional:

  - PORT (-p): server port (default 3324)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - FALLBACK_PATH (--fallback): local file for failed remote writes
  - RESEND_API_KEY (--resend-key): enables email notifications
  - NOTIFY_FROM / NOTIFY_TO (--notify-from / --notify-to)
  - ADMIN_BASE_URL (--admin-url): admin link placed in notification emails

A .env file is loaded by main before parsing (godotenv), so local
development needs no exported variables.
*/
package cliparse
