// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fivefourventures/vendor-survey/analytics"
	"github.com/fivefourventures/vendor-survey/cliparse"
	"github.com/fivefourventures/vendor-survey/csvexport"
	"github.com/fivefourventures/vendor-survey/middleware"
	"github.com/fivefourventures/vendor-survey/models"
	"github.com/fivefourventures/vendor-survey/store"
)

// maxImportBytes caps backup uploads at 16 MiB.
const maxImportBytes = 16 << 20

// AdminHandler serves the dashboard API. The router wraps every route in the
// admin-password gate, so handlers here assume an authenticated caller.
type AdminHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewAdminHandler(st *store.Store, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{store: st, cfg: cfg}
}

// ListResponses handles GET /admin/responses
func (h *AdminHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	responses, err := h.store.ListAll(r.Context())
	if err != nil {
		slog.Error("failed to list responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load responses")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, responses)
}

// CreateResponse handles POST /admin/responses (manual entry)
func (h *AdminHandler) CreateResponse(w http.ResponseWriter, r *http.Request) {
	var resp models.SurveyResponse
	if err := middleware.ParseJSONBody(r, &resp); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := h.store.InsertResponse(r.Context(), &resp)
	if errors.Is(err, models.ErrMissingName) || errors.Is(err, models.ErrMissingContact) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to insert manual response", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store response")
		return
	}

	slog.Info("manual response added", "response_id", resp.ID)
	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// requireConfirm gates destructive endpoints behind ?confirm=true.
func requireConfirm(w http.ResponseWriter, r *http.Request) bool {
	if r.URL.Query().Get("confirm") != "true" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Pass confirm=true to delete")
		return false
	}
	return true
}

// DeleteResponse handles DELETE /admin/responses/:id
func (h *AdminHandler) DeleteResponse(w http.ResponseWriter, r *http.Request) {
	if !requireConfirm(w, r) {
		return
	}

	id := r.PathValue("id")
	err := h.store.DeleteOne(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Response not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete response", "error", err, "response_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete response")
		return
	}

	slog.Info("response deleted", "response_id", id)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Response deleted"})
}

// ClearResponses handles DELETE /admin/responses
func (h *AdminHandler) ClearResponses(w http.ResponseWriter, r *http.Request) {
	if !requireConfirm(w, r) {
		return
	}

	if err := h.store.ClearAll(r.Context()); err != nil {
		slog.Error("failed to clear responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to clear responses")
		return
	}

	slog.Info("all responses cleared")
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "All responses deleted"})
}

// ImportBackup handles POST /admin/responses/import
func (h *AdminHandler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Failed to read upload")
		return
	}

	added, err := h.store.ImportBackup(r.Context(), data)
	if errors.Is(err, store.ErrInvalidBackup) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to import backup", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to import backup")
		return
	}

	noun := "responses"
	if added == 1 {
		noun = "response"
	}

	slog.Info("backup imported", "added", added)
	middleware.JSONResponse(w, http.StatusOK, models.ImportBackupResponse{
		Imported: added,
		Message:  fmt.Sprintf("Imported %d new %s", added, noun),
	})
}

// Count handles GET /admin/responses/count
func (h *AdminHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.Count(r.Context())
	if err != nil {
		slog.Error("failed to count responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to count responses")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.CountResponse{Count: count})
}

// CountStream handles GET /admin/responses/count/stream
// Server-sent events: the current count immediately, then a new event each
// time the collection changes, until the client disconnects.
func (h *AdminHandler) CountStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	count, err := h.store.Count(r.Context())
	if err != nil {
		slog.Error("failed to count responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to count responses")
		return
	}

	updates, cancel := h.store.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "data: %d\n\n", count)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case count := <-updates:
			fmt.Fprintf(w, "data: %d\n\n", count)
			flusher.Flush()
		}
	}
}

// writeCSV sends a generated report as a dated download.
func writeCSV(w http.ResponseWriter, name, body string) {
	filename := fmt.Sprintf("%s-%s.csv", name, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, body)
}

// ExportResponses handles GET /admin/export/responses.csv
func (h *AdminHandler) ExportResponses(w http.ResponseWriter, r *http.Request) {
	responses, err := h.store.ListAll(r.Context())
	if err != nil {
		slog.Error("failed to list responses for export", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to export responses")
		return
	}

	body := csvexport.ResponsesCSV(responses)
	if body == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeCSV(w, "survey-responses", body)
}

// ExportAdditional handles GET /admin/export/additional.csv
func (h *AdminHandler) ExportAdditional(w http.ResponseWriter, r *http.Request) {
	responses, err := h.store.ListAll(r.Context())
	if err != nil {
		slog.Error("failed to list responses for export", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to export categories")
		return
	}
	writeCSV(w, "additional-categories", csvexport.AdditionalCategoriesCSV(responses))
}

// AnalyticsReport is the full dashboard payload.
type AnalyticsReport struct {
	Funnel               analytics.Data                     `json:"funnel"`
	Categories           []analytics.CategoryInsight        `json:"categories"`
	AdditionalCategories []analytics.AdditionalCategoryStat `json:"additionalCategories"`
	TopVendors           []analytics.VendorCount            `json:"topVendors"`
}

// Analytics handles GET /admin/analytics
// Aggregates are recomputed from scratch on every call.
func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.ListSessions(r.Context())
	if err != nil {
		slog.Error("failed to list sessions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load analytics")
		return
	}
	responses, err := h.store.ListAll(r.Context())
	if err != nil {
		slog.Error("failed to list responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load analytics")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, AnalyticsReport{
		Funnel:               analytics.Compute(sessions, responses),
		Categories:           analytics.CategoryInsights(responses),
		AdditionalCategories: analytics.AdditionalCategoryStats(responses),
		TopVendors:           analytics.TopVendors(responses, 10),
	})
}
