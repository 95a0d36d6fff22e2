// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fivefourventures/vendor-survey/auth"
	"github.com/fivefourventures/vendor-survey/cliparse"
	"github.com/fivefourventures/vendor-survey/db"
	"github.com/fivefourventures/vendor-survey/models"
	_ "modernc.org/sqlite"
)

// SetupTestDB creates a fresh in-memory database with the full schema.
// Single connection: an in-memory sqlite database exists per connection,
// so the pool must not open a second one.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3324,
		DatabaseType:  "sqlite",
		DatabaseURL:   ":memory:",
		AdminPassword: "test-admin-password",
		IPHashSalt:    "test-ip-salt",
		FallbackPath:  "",
		AdminBaseURL:  "http://localhost:3324/admin",
	}
}

// MakeResponse builds a submitted response with sensible defaults for
// seeding tests.
func MakeResponse(name string, responses map[string]models.CategoryResponse) models.SurveyResponse {
	if responses == nil {
		responses = map[string]models.CategoryResponse{}
	}
	return models.SurveyResponse{
		ID:                   auth.NewResponseID(),
		Timestamp:            time.Now().UTC(),
		Name:                 name,
		Contact:              name + "@example.com",
		ContactMethod:        models.ContactMethodEmail,
		Responses:            responses,
		AdditionalCategories: []string{},
		AdditionalVendors:    map[string][]string{},
	}
}

// InsertTestResponse stores a response row directly
func InsertTestResponse(t *testing.T, conn *sql.DB, r models.SurveyResponse) {
	t.Helper()

	responsesJSON, _ := json.Marshal(r.Responses)
	additionalCatsJSON, _ := json.Marshal(r.AdditionalCategories)
	additionalVendorJSON, _ := json.Marshal(r.AdditionalVendors)

	_, err := conn.ExecContext(context.Background(), `
		INSERT INTO survey_response (id, created_at, name, contact, contact_method,
		                             responses, additional_categories, additional_vendors)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.ID, r.Timestamp, r.Name, r.Contact, r.ContactMethod,
		string(responsesJSON), string(additionalCatsJSON), string(additionalVendorJSON))
	if err != nil {
		t.Fatalf("Failed to insert test response: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
