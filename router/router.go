// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package router

import (
	"net/http"

	"github.com/fivefourventures/vendor-survey/cliparse"
	"github.com/fivefourventures/vendor-survey/handlers"
	"github.com/fivefourventures/vendor-survey/middleware"
	"github.com/fivefourventures/vendor-survey/store"
	"github.com/fivefourventures/vendor-survey/survey"
)

func NewRouter(st *store.Store, flow *survey.Flow, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	surveyHandler := handlers.NewSurveyHandler(st, flow, cfg)
	adminHandler := handlers.NewAdminHandler(st, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Survey flow (public, identified by X-Draft-Token)
	mux.HandleFunc("POST /survey/start", middleware.WithLogging(surveyHandler.Start))
	mux.HandleFunc("GET /survey/draft", middleware.WithLogging(surveyHandler.GetDraft))
	mux.HandleFunc("DELETE /survey/draft", middleware.WithLogging(surveyHandler.StartOver))
	mux.HandleFunc("PUT /survey/contact", middleware.WithLogging(surveyHandler.UpdateContact))
	mux.HandleFunc("PUT /survey/categories/{id}", middleware.WithLogging(surveyHandler.AnswerCategory))
	mux.HandleFunc("PUT /survey/additional", middleware.WithLogging(surveyHandler.UpdateAdditional))
	mux.HandleFunc("PUT /survey/additional/{key}/vendors", middleware.WithLogging(surveyHandler.UpdateAdditionalVendors))
	mux.HandleFunc("POST /survey/advance", middleware.WithLogging(surveyHandler.Advance))
	mux.HandleFunc("POST /survey/back", middleware.WithLogging(surveyHandler.Back))
	mux.HandleFunc("POST /survey/submit", middleware.WithLogging(surveyHandler.Submit))
	mux.HandleFunc("POST /survey/abandon", middleware.WithLogging(surveyHandler.Abandon))

	// Dashboard (requires X-Admin-Password)
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithAdminAuth(cfg.AdminPassword, h))
	}
	mux.HandleFunc("GET /admin/responses", admin(adminHandler.ListResponses))
	mux.HandleFunc("POST /admin/responses", admin(adminHandler.CreateResponse))
	mux.HandleFunc("DELETE /admin/responses", admin(adminHandler.ClearResponses))
	mux.HandleFunc("DELETE /admin/responses/{id}", admin(adminHandler.DeleteResponse))
	mux.HandleFunc("POST /admin/responses/import", admin(adminHandler.ImportBackup))
	mux.HandleFunc("GET /admin/responses/count", admin(adminHandler.Count))
	mux.HandleFunc("GET /admin/responses/count/stream", admin(adminHandler.CountStream))
	mux.HandleFunc("GET /admin/export/responses.csv", admin(adminHandler.ExportResponses))
	mux.HandleFunc("GET /admin/export/additional.csv", admin(adminHandler.ExportAdditional))
	mux.HandleFunc("GET /admin/analytics", admin(adminHandler.Analytics))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("vendor-survey API v1"))
	})

	return mux
}
