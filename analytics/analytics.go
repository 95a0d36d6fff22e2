// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package analytics

import (
	"sort"
	"strings"

	"github.com/fivefourventures/vendor-survey/models"
)

// Data is the aggregate view of the survey funnel. It is recomputed from
// the full session and response logs on every request; nothing is patched
// incrementally.
type Data struct {
	TotalStarts           int                `json:"totalStarts"`
	TotalCompletions      int                `json:"totalCompletions"`
	TotalAbandoned        int                `json:"totalAbandoned"`
	ConversionRate        float64            `json:"conversionRate"`
	DropoffByCategory     map[string]int     `json:"dropoffByCategory"`
	AverageTimeToComplete float64            `json:"averageTimeToComplete"`
	ContactMethods        ContactMethodStats `json:"contactMethods"`
}

// ContactMethodStats counts how submitted responses asked to be contacted.
type ContactMethodStats struct {
	Email           int     `json:"email"`
	Phone           int     `json:"phone"`
	EmailPercentage float64 `json:"emailPercentage"`
	PhonePercentage float64 `json:"phonePercentage"`
}

// Compute aggregates the session log and response log.
//
// In-progress sessions are neither completed nor abandoned, so the three
// counters do not have to sum to totalStarts. Sessions abandoned before
// reaching any category stay out of the drop-off breakdown but still count
// as abandoned.
func Compute(sessions []models.SurveySession, responses []models.SurveyResponse) Data {
	d := Data{DropoffByCategory: map[string]int{}}

	d.TotalStarts = len(sessions)

	var totalCompletionMinutes float64
	var timedCompletions int
	for _, s := range sessions {
		if s.Completed {
			d.TotalCompletions++
			if s.CompletedAt != nil {
				totalCompletionMinutes += s.CompletedAt.Sub(s.StartedAt).Minutes()
				timedCompletions++
			}
		}
		if s.Abandoned {
			d.TotalAbandoned++
			if s.CurrentCategory != nil && *s.CurrentCategory != "" {
				d.DropoffByCategory[*s.CurrentCategory]++
			}
		}
	}

	if d.TotalStarts > 0 {
		d.ConversionRate = float64(d.TotalCompletions) / float64(d.TotalStarts) * 100
	}
	if timedCompletions > 0 {
		d.AverageTimeToComplete = totalCompletionMinutes / float64(timedCompletions)
	}

	for _, r := range responses {
		switch r.ContactMethod {
		case models.ContactMethodEmail:
			d.ContactMethods.Email++
		case models.ContactMethodPhone:
			d.ContactMethods.Phone++
		}
	}
	if total := d.ContactMethods.Email + d.ContactMethods.Phone; total > 0 {
		d.ContactMethods.EmailPercentage = float64(d.ContactMethods.Email) / float64(total) * 100
		d.ContactMethods.PhonePercentage = float64(d.ContactMethods.Phone) / float64(total) * 100
	}

	return d
}

// CategoryInsight breaks down how one fixed category was answered.
type CategoryInsight struct {
	CategoryID   string         `json:"category_id"`
	Title        string         `json:"title"`
	Completed    int            `json:"completed"`
	Skipped      int            `json:"skipped"`
	DontUse      int            `json:"dont_use"`
	SkipForNow   int            `json:"skip_for_now"`
	VendorCounts map[string]int `json:"vendor_counts"`
	Others       []string       `json:"others"`
}

// CategoryInsights tallies answers per fixed category. Free-typed "Other: "
// entries are split out from the fixed vendor counts.
func CategoryInsights(responses []models.SurveyResponse) []CategoryInsight {
	insights := make([]CategoryInsight, len(models.VendorCategories))
	index := map[string]int{}
	for i, c := range models.VendorCategories {
		insights[i] = CategoryInsight{
			CategoryID:   c.ID,
			Title:        c.Title,
			VendorCounts: map[string]int{},
			Others:       []string{},
		}
		index[c.ID] = i
	}

	for _, r := range responses {
		for catID, answer := range r.Responses {
			i, ok := index[catID]
			if !ok {
				continue
			}
			if answer.Skipped {
				insights[i].Skipped++
				switch answer.SkipReason {
				case models.SkipReasonDontUse:
					insights[i].DontUse++
				case models.SkipReasonSkipForNow:
					insights[i].SkipForNow++
				}
				continue
			}
			insights[i].Completed++
			for _, vendor := range answer.Vendors {
				if strings.HasPrefix(vendor, models.OtherPrefix) {
					insights[i].Others = append(insights[i].Others, strings.TrimPrefix(vendor, models.OtherPrefix))
				} else {
					insights[i].VendorCounts[vendor]++
				}
			}
		}
	}

	return insights
}

// AdditionalCategoryStat is the demand record for one ad-hoc category.
type AdditionalCategoryStat struct {
	Name    string   `json:"name"`
	Count   int      `json:"count"`
	Vendors []string `json:"vendors"`
}

// AdditionalCategoryStats aggregates requested additional categories across
// all responses, most requested first. Vendor lookups go through the same
// key normalization the survey flow used when storing them.
func AdditionalCategoryStats(responses []models.SurveyResponse) []AdditionalCategoryStat {
	byName := map[string]*AdditionalCategoryStat{}
	order := []string{}

	for _, r := range responses {
		for _, name := range r.AdditionalCategories {
			stat, ok := byName[name]
			if !ok {
				stat = &AdditionalCategoryStat{Name: name, Vendors: []string{}}
				byName[name] = stat
				order = append(order, name)
			}
			stat.Count++

			for _, vendor := range r.AdditionalVendors[models.CategoryKey(name)] {
				if vendor != "" {
					stat.Vendors = append(stat.Vendors, vendor)
				}
			}
		}
	}

	stats := make([]AdditionalCategoryStat, 0, len(order))
	for _, name := range order {
		stats = append(stats, *byName[name])
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	return stats
}

// VendorCount pairs a vendor name with how often it was selected.
type VendorCount struct {
	Vendor string `json:"vendor"`
	Count  int    `json:"count"`
}

// TopVendors returns the n most-selected vendors across all fixed
// categories, ties broken alphabetically for stable output.
func TopVendors(responses []models.SurveyResponse, n int) []VendorCount {
	counts := map[string]int{}
	for _, r := range responses {
		for _, answer := range r.Responses {
			for _, vendor := range answer.Vendors {
				counts[vendor]++
			}
		}
	}

	vendors := make([]VendorCount, 0, len(counts))
	for vendor, count := range counts {
		vendors = append(vendors, VendorCount{Vendor: vendor, Count: count})
	}
	sort.Slice(vendors, func(i, j int) bool {
		if vendors[i].Count != vendors[j].Count {
			return vendors[i].Count > vendors[j].Count
		}
		return vendors[i].Vendor < vendors[j].Vendor
	})

	if n > 0 && len(vendors) > n {
		vendors = vendors[:n]
	}
	return vendors
}
