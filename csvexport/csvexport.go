// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package csvexport

import (
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"github.com/fivefourventures/vendor-survey/analytics"
	"github.com/fivefourventures/vendor-survey/models"
)

// ResponsesCSV renders the main report: one row per response, with a
// vendor-list column and a skip-reason column for every fixed category,
// plus a flattened summary of additional-category recommendations.
// Returns the empty string when there is nothing to export.
func ResponsesCSV(responses []models.SurveyResponse) string {
	if len(responses) == 0 {
		return ""
	}

	headers := []string{"Timestamp", "Name", "Contact Method", "Contact"}
	for _, c := range models.VendorCategories {
		headers = append(headers, c.Title, c.Title+" Skip Reason")
	}
	headers = append(headers, "Additional Categories", "Additional Vendors Summary")

	records := [][]string{headers}
	for _, r := range responses {
		row := []string{
			r.Timestamp.Format(time.RFC3339),
			r.Name,
			r.ContactMethod,
			r.Contact,
		}
		for _, c := range models.VendorCategories {
			answer := r.Responses[c.ID]
			row = append(row, strings.Join(answer.Vendors, "; "), answer.SkipReason)
		}
		row = append(row,
			strings.Join(r.AdditionalCategories, "; "),
			additionalVendorsSummary(r),
		)
		records = append(records, row)
	}

	return render(records)
}

// additionalVendorsSummary flattens a response's additional-category
// recommendations into "Name: v1, v2 | Name: v3" form. Lookups use the
// same key normalization the survey flow stored vendors under.
func additionalVendorsSummary(r models.SurveyResponse) string {
	parts := []string{}
	for _, name := range r.AdditionalCategories {
		vendors := []string{}
		for _, v := range r.AdditionalVendors[models.CategoryKey(name)] {
			if v != "" {
				vendors = append(vendors, v)
			}
		}
		if len(vendors) > 0 {
			parts = append(parts, name+": "+strings.Join(vendors, ", "))
		}
	}
	return strings.Join(parts, " | ")
}

// AdditionalCategoriesCSV renders the demand report: one row per distinct
// additional category requested across all responses, sorted descending by
// request count.
func AdditionalCategoriesCSV(responses []models.SurveyResponse) string {
	records := [][]string{{"Category Name", "Times Requested", "All Vendor Names Provided"}}
	for _, stat := range analytics.AdditionalCategoryStats(responses) {
		records = append(records, []string{
			stat.Name,
			strconv.Itoa(stat.Count),
			strings.Join(stat.Vendors, "; "),
		})
	}
	return render(records)
}

// render writes the records with standard CSV quoting after neutralizing
// each field against spreadsheet formula injection.
func render(records [][]string) string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	for _, record := range records {
		row := make([]string, len(record))
		for i, field := range record {
			row[i] = neutralize(field)
		}
		// strings.Builder never errors; csv.Writer surfaces it on Flush
		_ = w.Write(row)
	}
	w.Flush()
	return b.String()
}

// neutralize defuses spreadsheet formula injection: a field whose first
// non-whitespace character is = + - or @ gets a leading apostrophe so
// Excel and Sheets treat it as text.
func neutralize(field string) string {
	trimmed := strings.TrimLeft(field, " \t\r\n")
	if trimmed == "" {
		return field
	}
	switch trimmed[0] {
	case '=', '+', '-', '@':
		return "'" + field
	}
	return field
}
