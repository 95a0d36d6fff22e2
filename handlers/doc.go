// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

/*
Package handlers contains the HTTP handlers for the survey API.

SurveyHandler is the public surface respondents hit: starting or resuming a
draft, autosaving answers, moving through the steps, and submitting. The
client identifies its draft with the X-Draft-Token header.

AdminHandler is the dashboard surface: response management, backup import,
live count (polled and streamed), CSV exports, and analytics. The router
wraps these routes in the X-Admin-Password gate.
*/
package handlers
