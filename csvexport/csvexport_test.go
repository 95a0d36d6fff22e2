// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package csvexport

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivefourventures/vendor-survey/models"
)

func sampleResponse() models.SurveyResponse {
	return models.SurveyResponse{
		ID:            "resp-1",
		Timestamp:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Name:          "Pat Jones",
		Contact:       "pat@example.com",
		ContactMethod: models.ContactMethodEmail,
		Responses: map[string]models.CategoryResponse{
			"hvac":    {Vendors: []string{"Cool Breeze AC & Heating", "Other: Joe's AC"}},
			"plumber": {Skipped: true, SkipReason: models.SkipReasonDontUse},
		},
		AdditionalCategories: []string{"Roofing"},
		AdditionalVendors:    map[string][]string{"roofing": {"Top Roofers", "Peak Roofing"}},
	}
}

func parseCSV(t *testing.T, body string) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(body)).ReadAll()
	require.NoError(t, err, "output must round-trip through a standard CSV reader")
	return records
}

func TestResponsesCSV(t *testing.T) {
	body := ResponsesCSV([]models.SurveyResponse{sampleResponse()})
	records := parseCSV(t, body)
	require.Len(t, records, 2)

	header := records[0]
	row := records[1]
	require.Len(t, row, len(header))

	byColumn := map[string]string{}
	for i, h := range header {
		byColumn[h] = row[i]
	}

	assert.Equal(t, "2025-06-01T12:00:00Z", byColumn["Timestamp"])
	assert.Equal(t, "Pat Jones", byColumn["Name"])
	assert.Equal(t, "email", byColumn["Contact Method"])
	assert.Equal(t, "Cool Breeze AC & Heating; Other: Joe's AC", byColumn["HVAC / Air Conditioning"])
	assert.Equal(t, "", byColumn["Plumber"])
	assert.Equal(t, "dont_use", byColumn["Plumber Skip Reason"])
	assert.Equal(t, "Roofing", byColumn["Additional Categories"])
	assert.Equal(t, "Roofing: Top Roofers, Peak Roofing", byColumn["Additional Vendors Summary"])
}

func TestResponsesCSVEmpty(t *testing.T) {
	assert.Equal(t, "", ResponsesCSV(nil))
}

func TestResponsesCSVQuoting(t *testing.T) {
	r := sampleResponse()
	r.Name = `Pat "PJ" Jones, Jr.`

	body := ResponsesCSV([]models.SurveyResponse{r})
	records := parseCSV(t, body)

	assert.Equal(t, `Pat "PJ" Jones, Jr.`, records[1][1],
		"commas and quotes survive a quote-aware reader")
}

func TestResponsesCSVNeutralizesFormulas(t *testing.T) {
	r := sampleResponse()
	r.Name = "=SUM(A1:A2)"
	r.Contact = "+15550100"
	r.AdditionalVendors["roofing"] = []string{"@evil", "  -cmd"}

	body := ResponsesCSV([]models.SurveyResponse{r})
	records := parseCSV(t, body)
	row := records[1]

	assert.Equal(t, "'=SUM(A1:A2)", row[1])
	assert.Equal(t, "'+15550100", row[3])
	for _, field := range row {
		trimmed := strings.TrimLeft(field, " \t")
		if trimmed == "" {
			continue
		}
		assert.NotContains(t, "=+-@", string(trimmed[0]),
			"no field may start with a formula trigger: %q", field)
	}
}

func TestAdditionalCategoriesCSV(t *testing.T) {
	body := AdditionalCategoriesCSV([]models.SurveyResponse{sampleResponse()})
	records := parseCSV(t, body)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"Category Name", "Times Requested", "All Vendor Names Provided"}, records[0])
	assert.Equal(t, []string{"Roofing", "1", "Top Roofers; Peak Roofing"}, records[1])
}

func TestAdditionalCategoriesCSVEmptyStillHasHeader(t *testing.T) {
	records := parseCSV(t, AdditionalCategoriesCSV(nil))
	require.Len(t, records, 1)
	assert.Equal(t, "Category Name", records[0][0])
}
