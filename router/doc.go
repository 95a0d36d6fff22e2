// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

/*
Package router defines HTTP routes for the vendor survey API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, flow, cfg)

# Endpoints

Health:

	GET /health

Survey flow (public, identified by the X-Draft-Token header):

	POST   /survey/start                      - Create or resume a draft
	GET    /survey/draft                      - Current draft and step render data
	DELETE /survey/draft                      - Start over (discard the draft)
	PUT    /survey/contact                    - Autosave contact info
	PUT    /survey/categories/{id}            - Autosave one category answer
	PUT    /survey/additional                 - Autosave requested additional categories
	PUT    /survey/additional/{key}/vendors   - Autosave free-text vendor names
	POST   /survey/advance                    - Step forward (finalizes at the last step)
	POST   /survey/back                       - Step backward
	POST   /survey/submit                     - Finalize (idempotent)
	POST   /survey/abandon                    - Mark the session abandoned

Dashboard (requires X-Admin-Password):

	GET    /admin/responses                   - List responses, newest first
	POST   /admin/responses                   - Manual entry
	DELETE /admin/responses?confirm=true      - Clear all responses
	DELETE /admin/responses/{id}?confirm=true - Delete one response
	POST   /admin/responses/import            - Merge a JSON backup
	GET    /admin/responses/count             - Live count
	GET    /admin/responses/count/stream      - SSE push of count changes
	GET    /admin/export/responses.csv        - Main CSV report
	GET    /admin/export/additional.csv       - Additional-category demand report
	GET    /admin/analytics                   - Funnel and category aggregates
*/
package router
