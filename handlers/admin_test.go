// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fivefourventures/vendor-survey/models"
	"github.com/fivefourventures/vendor-survey/testutil"
)

func TestListResponses(t *testing.T) {
	_, admin, st := setupHandlers(t)

	r := testutil.MakeResponse("Pat", map[string]models.CategoryResponse{
		"hvac": {Vendors: []string{"Cool Breeze AC & Heating"}},
	})
	if err := st.InsertResponse(context.Background(), &r); err != nil {
		t.Fatal(err)
	}

	req := testutil.MakeRequest("GET", "/admin/responses", nil, nil)
	w := httptest.NewRecorder()
	admin.ListResponses(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var responses []models.SurveyResponse
	testutil.AssertJSON(t, w, &responses)
	if len(responses) != 1 || responses[0].Name != "Pat" {
		t.Errorf("unexpected list: %+v", responses)
	}
}

func TestCreateResponseManualEntry(t *testing.T) {
	_, admin, st := setupHandlers(t)

	req := testutil.MakeRequest("POST", "/admin/responses", models.SurveyResponse{
		Name:    "Walk-in",
		Contact: "555-0100",
	}, nil)
	w := httptest.NewRecorder()
	admin.CreateResponse(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var created models.SurveyResponse
	testutil.AssertJSON(t, w, &created)
	if created.ID == "" {
		t.Error("manual entry must get an id")
	}

	count, _ := st.Count(context.Background())
	if count != 1 {
		t.Errorf("expected 1 response, got %d", count)
	}
}

func TestCreateResponseRequiresNameAndContact(t *testing.T) {
	_, admin, _ := setupHandlers(t)

	req := testutil.MakeRequest("POST", "/admin/responses", models.SurveyResponse{Name: "No Contact"}, nil)
	w := httptest.NewRecorder()
	admin.CreateResponse(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestDeleteResponseNeedsConfirmation(t *testing.T) {
	_, admin, st := setupHandlers(t)

	r := testutil.MakeResponse("Pat", nil)
	if err := st.InsertResponse(context.Background(), &r); err != nil {
		t.Fatal(err)
	}

	req := testutil.MakeRequest("DELETE", "/admin/responses/"+r.ID, nil, nil)
	req.SetPathValue("id", r.ID)
	w := httptest.NewRecorder()
	admin.DeleteResponse(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	req = testutil.MakeRequest("DELETE", "/admin/responses/"+r.ID+"?confirm=true", nil, nil)
	req.SetPathValue("id", r.ID)
	w = httptest.NewRecorder()
	admin.DeleteResponse(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	count, _ := st.Count(context.Background())
	if count != 0 {
		t.Errorf("expected 0 responses, got %d", count)
	}
}

func TestDeleteMissingResponse(t *testing.T) {
	_, admin, _ := setupHandlers(t)

	req := testutil.MakeRequest("DELETE", "/admin/responses/nope?confirm=true", nil, nil)
	req.SetPathValue("id", "nope")
	w := httptest.NewRecorder()
	admin.DeleteResponse(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestClearResponses(t *testing.T) {
	_, admin, st := setupHandlers(t)

	for _, name := range []string{"A", "B"} {
		r := testutil.MakeResponse(name, nil)
		if err := st.InsertResponse(context.Background(), &r); err != nil {
			t.Fatal(err)
		}
	}

	req := testutil.MakeRequest("DELETE", "/admin/responses?confirm=true", nil, nil)
	w := httptest.NewRecorder()
	admin.ClearResponses(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	count, _ := st.Count(context.Background())
	if count != 0 {
		t.Errorf("expected empty collection, got %d", count)
	}
}

func TestImportBackup(t *testing.T) {
	_, admin, _ := setupHandlers(t)

	backup := []models.SurveyResponse{
		testutil.MakeResponse("One", nil),
		testutil.MakeResponse("Two", nil),
	}
	req := testutil.MakeRequest("POST", "/admin/responses/import", backup, nil)
	w := httptest.NewRecorder()
	admin.ImportBackup(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ImportBackupResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Imported != 2 {
		t.Errorf("expected 2 imported, got %d", resp.Imported)
	}
	if resp.Message != "Imported 2 new responses" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestImportBackupSingularMessage(t *testing.T) {
	_, admin, st := setupHandlers(t)

	existing := testutil.MakeResponse("One", nil)
	if err := st.InsertResponse(context.Background(), &existing); err != nil {
		t.Fatal(err)
	}

	// One duplicate id, one new record: exactly one import.
	backup := []models.SurveyResponse{existing, testutil.MakeResponse("Two", nil)}
	req := testutil.MakeRequest("POST", "/admin/responses/import", backup, nil)
	w := httptest.NewRecorder()
	admin.ImportBackup(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ImportBackupResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Imported != 1 {
		t.Errorf("expected 1 imported, got %d", resp.Imported)
	}
	if resp.Message != "Imported 1 new response" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestImportBackupRejectsNonArray(t *testing.T) {
	_, admin, _ := setupHandlers(t)

	req := testutil.MakeRequest("POST", "/admin/responses/import", map[string]string{"not": "an array"}, nil)
	w := httptest.NewRecorder()
	admin.ImportBackup(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestCount(t *testing.T) {
	_, admin, st := setupHandlers(t)

	r := testutil.MakeResponse("Pat", nil)
	if err := st.InsertResponse(context.Background(), &r); err != nil {
		t.Fatal(err)
	}

	req := testutil.MakeRequest("GET", "/admin/responses/count", nil, nil)
	w := httptest.NewRecorder()
	admin.Count(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.CountResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Count != 1 {
		t.Errorf("expected count 1, got %d", resp.Count)
	}
}

func TestCountStream(t *testing.T) {
	_, admin, st := setupHandlers(t)

	ctx, cancel := context.WithCancel(context.Background())
	req := testutil.MakeRequest("GET", "/admin/responses/count/stream", nil, nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		admin.CountStream(w, req)
		close(done)
	}()

	// Let the stream register its subscriber, then mutate the collection
	time.Sleep(50 * time.Millisecond)
	r := testutil.MakeResponse("Pat", nil)
	if err := st.InsertResponse(context.Background(), &r); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("expected SSE content type, got %q", ct)
	}

	events := []string{}
	scanner := bufio.NewScanner(strings.NewReader(w.Body.String()))
	for scanner.Scan() {
		if line := scanner.Text(); strings.HasPrefix(line, "data: ") {
			events = append(events, strings.TrimPrefix(line, "data: "))
		}
	}
	if len(events) < 2 || events[0] != "0" || events[len(events)-1] != "1" {
		t.Errorf("expected initial 0 then 1, got %v", events)
	}
}

func TestExportResponsesCSV(t *testing.T) {
	_, admin, st := setupHandlers(t)

	r := testutil.MakeResponse("Pat", map[string]models.CategoryResponse{
		"hvac": {Vendors: []string{"=SUM(A1:A2)"}},
	})
	if err := st.InsertResponse(context.Background(), &r); err != nil {
		t.Fatal(err)
	}

	req := testutil.MakeRequest("GET", "/admin/export/responses.csv", nil, nil)
	w := httptest.NewRecorder()
	admin.ExportResponses(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("expected CSV content type, got %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "survey-responses-") {
		t.Errorf("expected dated attachment filename, got %q", cd)
	}
	if body := w.Body.String(); strings.Contains(body, `"=SUM`) || strings.Contains(body, "\n=SUM") {
		t.Errorf("formula not neutralized in export:\n%s", body)
	}
}

func TestExportResponsesCSVEmpty(t *testing.T) {
	_, admin, _ := setupHandlers(t)

	req := testutil.MakeRequest("GET", "/admin/export/responses.csv", nil, nil)
	w := httptest.NewRecorder()
	admin.ExportResponses(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)
}

func TestExportAdditionalCSV(t *testing.T) {
	_, admin, st := setupHandlers(t)

	r := testutil.MakeResponse("Pat", nil)
	r.AdditionalCategories = []string{"Roofing"}
	r.AdditionalVendors = map[string][]string{"roofing": {"Top Roofers"}}
	if err := st.InsertResponse(context.Background(), &r); err != nil {
		t.Fatal(err)
	}

	req := testutil.MakeRequest("GET", "/admin/export/additional.csv", nil, nil)
	w := httptest.NewRecorder()
	admin.ExportAdditional(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	body := w.Body.String()
	if !strings.Contains(body, "Roofing") || !strings.Contains(body, "Top Roofers") {
		t.Errorf("export missing data:\n%s", body)
	}
}

func TestAnalyticsEndpoint(t *testing.T) {
	surveyH, admin, st := setupHandlers(t)

	// One full completion through the public API
	token := startSurvey(t, surveyH)
	if err := st.ProgressSession(context.Background(), token, 2, "pool_service"); err != nil {
		t.Fatal(err)
	}
	if err := st.CompleteSession(context.Background(), token); err != nil {
		t.Fatal(err)
	}
	r := testutil.MakeResponse("Pat", map[string]models.CategoryResponse{
		"hvac": {Vendors: []string{"Cool Breeze AC & Heating"}},
	})
	if err := st.InsertResponse(context.Background(), &r); err != nil {
		t.Fatal(err)
	}

	req := testutil.MakeRequest("GET", "/admin/analytics", nil, nil)
	w := httptest.NewRecorder()
	admin.Analytics(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var report AnalyticsReport
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if report.Funnel.TotalStarts != 1 || report.Funnel.TotalCompletions != 1 {
		t.Errorf("unexpected funnel: %+v", report.Funnel)
	}
	if len(report.Categories) != len(models.VendorCategories) {
		t.Errorf("expected an insight per category, got %d", len(report.Categories))
	}
	if len(report.TopVendors) != 1 || report.TopVendors[0].Vendor != "Cool Breeze AC & Heating" {
		t.Errorf("unexpected top vendors: %+v", report.TopVendors)
	}
}
