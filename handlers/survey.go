// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fivefourventures/vendor-survey/auth"
	"github.com/fivefourventures/vendor-survey/cliparse"
	"github.com/fivefourventures/vendor-survey/middleware"
	"github.com/fivefourventures/vendor-survey/models"
	"github.com/fivefourventures/vendor-survey/store"
	"github.com/fivefourventures/vendor-survey/survey"
)

// SurveyHandler serves the public survey API. Every endpoint except Start
// requires the client's draft token in the X-Draft-Token header.
type SurveyHandler struct {
	store *store.Store
	flow  *survey.Flow
	cfg   cliparse.Config
}

func NewSurveyHandler(st *store.Store, flow *survey.Flow, cfg cliparse.Config) *SurveyHandler {
	return &SurveyHandler{store: st, flow: flow, cfg: cfg}
}

// draftToken reads the client's draft token from the request header.
func draftToken(r *http.Request) string {
	return r.Header.Get("X-Draft-Token")
}

// Start handles POST /survey/start
// A request without a token gets a fresh draft; a request with a token
// resumes its existing draft. Either way an analytics session is active
// afterwards.
func (h *SurveyHandler) Start(w http.ResponseWriter, r *http.Request) {
	token := draftToken(r)
	if token == "" {
		token = auth.NewDraftToken()
	}

	d, created, err := h.store.EnsureDraft(r.Context(), token)
	if err != nil {
		slog.Error("failed to ensure draft", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start survey")
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)
	sess, _, err := h.store.StartSession(r.Context(), token, ipHash)
	if err != nil {
		slog.Error("failed to start session", "error", err, "token", token)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start survey")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		slog.Info("survey started", "session_id", sess.ID)
	}
	middleware.JSONResponse(w, status, models.StartSurveyResponse{
		Token:     token,
		SessionID: sess.ID,
		Step:      d.Step,
		Resumed:   !created,
	})
}

// draftView pairs the raw draft with the render data for its current step.
type draftView struct {
	Draft *models.SurveyDraft `json:"draft"`
	View  survey.View         `json:"view"`
}

// loadDraft resolves the request's draft or writes the error response.
func (h *SurveyHandler) loadDraft(w http.ResponseWriter, r *http.Request) *models.SurveyDraft {
	token := draftToken(r)
	if token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "X-Draft-Token header is required")
		return nil
	}

	d, err := h.store.GetDraft(r.Context(), token)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No draft for this token; start the survey first")
		return nil
	}
	if err != nil {
		slog.Error("failed to load draft", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load draft")
		return nil
	}
	return d
}

// saveAndRespond persists an edited draft and returns it with fresh render
// data.
func (h *SurveyHandler) saveAndRespond(w http.ResponseWriter, r *http.Request, d *models.SurveyDraft) {
	if err := h.store.SaveDraft(r.Context(), d); err != nil {
		slog.Error("failed to save draft", "error", err, "token", d.Token)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save draft")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, draftView{Draft: d, View: survey.ViewFor(d)})
}

// GetDraft handles GET /survey/draft
func (h *SurveyHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	d := h.loadDraft(w, r)
	if d == nil {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, draftView{Draft: d, View: survey.ViewFor(d)})
}

// UpdateContact handles PUT /survey/contact
func (h *SurveyHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateContactRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	d := h.loadDraft(w, r)
	if d == nil {
		return
	}
	if err := survey.SetContact(d, req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	h.saveAndRespond(w, r, d)
}

// AnswerCategory handles PUT /survey/categories/:id
func (h *SurveyHandler) AnswerCategory(w http.ResponseWriter, r *http.Request) {
	var req models.AnswerCategoryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	d := h.loadDraft(w, r)
	if d == nil {
		return
	}
	if err := survey.AnswerCategory(d, r.PathValue("id"), req); err != nil {
		if errors.Is(err, survey.ErrUnknownCategory) {
			middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	h.saveAndRespond(w, r, d)
}

// UpdateAdditional handles PUT /survey/additional
func (h *SurveyHandler) UpdateAdditional(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateAdditionalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	d := h.loadDraft(w, r)
	if d == nil {
		return
	}
	survey.SetAdditionalCategories(d, req.Categories)
	h.saveAndRespond(w, r, d)
}

// UpdateAdditionalVendors handles PUT /survey/additional/:key/vendors
func (h *SurveyHandler) UpdateAdditionalVendors(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateAdditionalVendorsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	d := h.loadDraft(w, r)
	if d == nil {
		return
	}
	if err := survey.SetAdditionalVendors(d, r.PathValue("key"), req.Vendors); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	h.saveAndRespond(w, r, d)
}

// Advance handles POST /survey/advance
func (h *SurveyHandler) Advance(w http.ResponseWriter, r *http.Request) {
	d := h.loadDraft(w, r)
	if d == nil {
		return
	}

	result, err := h.flow.Advance(r.Context(), d)
	if err != nil {
		slog.Error("failed to advance survey", "error", err, "token", d.Token)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to advance")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, advanceResponse(result))
}

// Back handles POST /survey/back
func (h *SurveyHandler) Back(w http.ResponseWriter, r *http.Request) {
	d := h.loadDraft(w, r)
	if d == nil {
		return
	}

	result, err := h.flow.Retreat(r.Context(), d)
	if err != nil {
		slog.Error("failed to step back", "error", err, "token", d.Token)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to step back")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, advanceResponse(result))
}

// Submit handles POST /survey/submit
// Finalizes a draft sitting at the final step. Submitting again later is a
// no-op that reports the original response id.
func (h *SurveyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	d := h.loadDraft(w, r)
	if d == nil {
		return
	}
	if d.SubmittedID == "" && d.Step < survey.StepVendors {
		middleware.ErrorResponse(w, http.StatusConflict, "Survey is not at the final step")
		return
	}

	result, err := h.flow.Finalize(r.Context(), d)
	if err != nil {
		slog.Error("failed to submit survey", "error", err, "token", d.Token)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit survey")
		return
	}

	if result.AlreadySubmitted {
		slog.Info("duplicate submit ignored", "token", d.Token, "response_id", result.Response.ID)
	} else {
		slog.Info("survey submitted", "response_id", result.Response.ID, "storage", result.Storage)
	}
	middleware.JSONResponse(w, http.StatusOK, advanceResponse(result))
}

// StartOver handles DELETE /survey/draft
// Discards the draft entirely so the next start begins fresh. A session
// that progressed past the first step is marked abandoned first, so the
// discarded attempt still shows up in the funnel.
func (h *SurveyHandler) StartOver(w http.ResponseWriter, r *http.Request) {
	d := h.loadDraft(w, r)
	if d == nil {
		return
	}

	if err := h.store.AbandonSession(r.Context(), d.Token); err != nil {
		slog.Error("failed to abandon session", "error", err, "token", d.Token)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start over")
		return
	}
	if err := h.store.DeleteDraft(r.Context(), d.Token); err != nil {
		slog.Error("failed to delete draft", "error", err, "token", d.Token)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start over")
		return
	}

	slog.Info("survey restarted", "token", d.Token)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Draft deleted"})
}

// Abandon handles POST /survey/abandon
func (h *SurveyHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	token := draftToken(r)
	if token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "X-Draft-Token header is required")
		return
	}

	if err := h.store.AbandonSession(r.Context(), token); err != nil {
		slog.Error("failed to abandon session", "error", err, "token", token)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to abandon session")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Session abandoned"})
}

func advanceResponse(result survey.Result) models.AdvanceResponse {
	return models.AdvanceResponse{
		Step:             result.Step,
		Finalized:        result.Finalized,
		AlreadySubmitted: result.AlreadySubmitted,
		ResponseID:       result.Response.ID,
		Storage:          string(result.Storage),
	}
}
