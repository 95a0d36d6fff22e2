// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fivefourventures/vendor-survey/cliparse"
	"github.com/fivefourventures/vendor-survey/models"
)

func testConfig() cliparse.Config {
	return cliparse.Config{
		ResendAPIKey: "re_test_key",
		NotifyFrom:   "Vendor Survey <onboarding@resend.dev>",
		NotifyTo:     []string{"admin@example.com"},
		AdminBaseURL: "http://localhost:3324/admin",
	}
}

func testResponse() models.SurveyResponse {
	return models.SurveyResponse{
		ID:            "resp-1",
		Timestamp:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Name:          "Pat Jones",
		Contact:       "pat@example.com",
		ContactMethod: models.ContactMethodEmail,
		Responses: map[string]models.CategoryResponse{
			"hvac":    {Vendors: []string{"Cool Breeze AC & Heating"}},
			"plumber": {Skipped: true, SkipReason: models.SkipReasonDontUse},
		},
		AdditionalCategories: []string{"Roofing"},
		AdditionalVendors:    map[string][]string{"roofing": {"Top Roofers"}},
	}
}

func TestSendPostsToResendAPI(t *testing.T) {
	var got emailPayload
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("invalid payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(testConfig())
	c.endpoint = server.URL

	if err := c.Send(context.Background(), testResponse()); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if authHeader != "Bearer re_test_key" {
		t.Errorf("unexpected auth header: %q", authHeader)
	}
	if got.Subject != "New Survey Response from Pat Jones" {
		t.Errorf("unexpected subject: %q", got.Subject)
	}
	if len(got.To) != 1 || got.To[0] != "admin@example.com" {
		t.Errorf("unexpected recipients: %v", got.To)
	}

	for _, want := range []string{
		"Pat Jones",
		"pat@example.com",
		"Cool Breeze AC & Heating",
		"Roofing (requested):",
		"Top Roofers",
		"http://localhost:3324/admin",
	} {
		if !strings.Contains(got.Text, want) {
			t.Errorf("body missing %q:\n%s", want, got.Text)
		}
	}
	if strings.Contains(got.Text, "FastFlow") {
		t.Errorf("skipped category must not list vendors:\n%s", got.Text)
	}
}

func TestSendReportsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message": "invalid from address"}`))
	}))
	defer server.Close()

	c := New(testConfig())
	c.endpoint = server.URL

	err := c.Send(context.Background(), testResponse())
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
	if !strings.Contains(err.Error(), "422") {
		t.Errorf("error should carry the status: %v", err)
	}
}

func TestNotifySwallowsFailure(t *testing.T) {
	c := New(testConfig())
	c.endpoint = "http://127.0.0.1:1/unreachable"

	// Must not panic or block; the error is logged and dropped
	c.Notify(context.Background(), testResponse())
}

func TestDisabledClientSkipsSend(t *testing.T) {
	cfg := testConfig()
	cfg.ResendAPIKey = ""
	c := New(cfg)

	if c.Enabled() {
		t.Error("client without API key must be disabled")
	}

	// endpoint is unreachable; a disabled client must never try it
	c.endpoint = "http://127.0.0.1:1/unreachable"
	c.Notify(context.Background(), testResponse())
}

func TestBuildBodyAnonymous(t *testing.T) {
	r := models.SurveyResponse{
		ID:            "resp-2",
		Timestamp:     time.Now(),
		ContactMethod: models.ContactMethodPhone,
	}

	body := buildBody(r, "http://localhost/admin")
	if !strings.Contains(body, "Anonymous") {
		t.Errorf("missing anonymous fallback:\n%s", body)
	}
	if !strings.Contains(body, "Not provided") {
		t.Errorf("missing contact fallback:\n%s", body)
	}
}
