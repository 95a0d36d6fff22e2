// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package survey

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fivefourventures/vendor-survey/models"
)

var (
	ErrUnknownCategory      = errors.New("unknown category")
	ErrCategoryNotRequested = errors.New("category was not requested")
)

// SetContact records the contact-info step. Name and contact are required
// before the flow moves on; the method defaults to phone.
func SetContact(d *models.SurveyDraft, req models.UpdateContactRequest) error {
	name := strings.TrimSpace(req.Name)
	contact := strings.TrimSpace(req.Contact)
	if name == "" {
		return models.ErrMissingName
	}
	if contact == "" {
		return models.ErrMissingContact
	}

	method := req.ContactMethod
	switch method {
	case models.ContactMethodEmail, models.ContactMethodPhone:
	case "":
		method = models.ContactMethodPhone
	default:
		return fmt.Errorf("invalid contact method %q", method)
	}

	d.Name = name
	d.Contact = contact
	d.ContactMethod = method
	return nil
}

// AnswerCategory records one category question's answer. A skip reason
// produces a skipped answer with an empty vendor list; otherwise the
// selected vendors (including at most one free-typed "Other: " entry) are
// kept as given.
func AnswerCategory(d *models.SurveyDraft, categoryID string, req models.AnswerCategoryRequest) error {
	if _, ok := models.CategoryByID(categoryID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, categoryID)
	}

	answer := models.CategoryResponse{
		Vendors:    []string{},
		Skipped:    req.SkipReason != models.SkipReasonNone,
		SkipReason: req.SkipReason,
	}
	if !answer.Skipped {
		for _, v := range req.Vendors {
			if v = strings.TrimSpace(v); v != "" {
				answer.Vendors = append(answer.Vendors, v)
			}
		}
	}
	if err := answer.Validate(); err != nil {
		return err
	}

	d.Responses[categoryID] = answer
	return nil
}

// SetAdditionalCategories records which extra service types the respondent
// requested. Entries are trimmed and deduplicated by normalized key (first
// occurrence wins), and vendor text for categories no longer requested is
// dropped.
func SetAdditionalCategories(d *models.SurveyDraft, categories []string) {
	seen := map[string]bool{}
	kept := []string{}
	for _, name := range categories {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := models.CategoryKey(name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, name)
	}

	d.AdditionalCategories = kept
	for key := range d.AdditionalVendors {
		if !seen[key] {
			delete(d.AdditionalVendors, key)
		}
	}
}

// SetAdditionalVendors records free-typed vendor names for one requested
// additional category, addressed by its normalized key.
func SetAdditionalVendors(d *models.SurveyDraft, key string, vendors []string) error {
	if key != models.CategoryKey(key) {
		return fmt.Errorf("category key %q is not normalized", key)
	}

	requested := false
	for _, name := range d.AdditionalCategories {
		if models.CategoryKey(name) == key {
			requested = true
			break
		}
	}
	if !requested {
		return fmt.Errorf("%w: %s", ErrCategoryNotRequested, key)
	}

	cleaned := []string{}
	for _, v := range vendors {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	d.AdditionalVendors[key] = cleaned
	return nil
}
