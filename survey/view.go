// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package survey

import (
	"github.com/fivefourventures/vendor-survey/models"
)

// View is the render data for the draft's current step. It derives purely
// from (step, draft): re-entering a step pre-fills whatever was entered
// before, and nothing is ever re-derived from submitted responses.
type View struct {
	Step       int      `json:"step"`
	TotalSteps int      `json:"total_steps"`
	Kind       StepKind `json:"kind"`
	Submitted  bool     `json:"submitted,omitempty"`

	// Contact step
	Name          string `json:"name,omitempty"`
	Contact       string `json:"contact,omitempty"`
	ContactMethod string `json:"contact_method,omitempty"`

	// Category step
	Category *models.VendorCategory   `json:"category,omitempty"`
	Answer   *models.CategoryResponse `json:"answer,omitempty"`

	// Additional-category selection step
	AdditionalOptions  []string `json:"additional_options,omitempty"`
	SelectedAdditional []string `json:"selected_additional,omitempty"`

	// Consolidated vendor-collection step
	AdditionalVendors map[string][]string `json:"additional_vendors,omitempty"`
}

// ViewFor builds the render data for a draft's current step.
func ViewFor(d *models.SurveyDraft) View {
	v := View{
		Step:       d.Step,
		TotalSteps: TotalSteps,
		Kind:       KindForStep(d.Step),
		Submitted:  d.SubmittedID != "",
	}

	switch v.Kind {
	case KindContact:
		v.Name = d.Name
		v.Contact = d.Contact
		v.ContactMethod = d.ContactMethod
	case KindCategory:
		category, _ := CategoryForStep(d.Step)
		v.Category = &category
		if answer, ok := d.Responses[category.ID]; ok {
			v.Answer = &answer
		}
	case KindAdditional:
		v.AdditionalOptions = models.AdditionalCategories
		v.SelectedAdditional = d.AdditionalCategories
	case KindVendors:
		v.SelectedAdditional = d.AdditionalCategories
		v.AdditionalVendors = d.AdditionalVendors
	}

	return v
}
