package models

import (
	"errors"
	"fmt"
	"time"
)

// Skip reasons for a category question
const (
	SkipReasonNone       = ""
	SkipReasonDontUse    = "dont_use"
	SkipReasonSkipForNow = "skip_for_now"
)

// Contact methods
const (
	ContactMethodEmail = "email"
	ContactMethodPhone = "phone"
)

// OtherPrefix marks a free-typed vendor entry in a category answer,
// distinguishing it from the fixed vendor list.
const OtherPrefix = "Other: "

var (
	ErrMissingName    = errors.New("name is required")
	ErrMissingContact = errors.New("contact is required")
)

// Request types

type UpdateContactRequest struct {
	Name          string `json:"name"`
	Contact       string `json:"contact"`
	ContactMethod string `json:"contact_method"`
}

type AnswerCategoryRequest struct {
	Vendors    []string `json:"vendors"`
	SkipReason string   `json:"skip_reason"`
}

type UpdateAdditionalRequest struct {
	Categories []string `json:"categories"`
}

type UpdateAdditionalVendorsRequest struct {
	Vendors []string `json:"vendors"`
}

// Response types

type StartSurveyResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	Step      int    `json:"step"`
	Resumed   bool   `json:"resumed"`
}

type AdvanceResponse struct {
	Step             int    `json:"step"`
	Finalized        bool   `json:"finalized"`
	AlreadySubmitted bool   `json:"already_submitted,omitempty"`
	ResponseID       string `json:"response_id,omitempty"`
	Storage          string `json:"storage,omitempty"`
}

type ImportBackupResponse struct {
	Imported int    `json:"imported"`
	Message  string `json:"message"`
}

type CountResponse struct {
	Count int `json:"count"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

// CategoryResponse is one respondent's answer to one fixed category.
type CategoryResponse struct {
	Vendors    []string `json:"vendors"`
	Skipped    bool     `json:"skipped"`
	SkipReason string   `json:"skip_reason,omitempty"`
}

// Validate enforces the answer invariants: a skipped answer carries a skip
// reason and no vendors; a non-skipped answer carries no skip reason.
func (c CategoryResponse) Validate() error {
	if c.Skipped {
		if c.SkipReason != SkipReasonDontUse && c.SkipReason != SkipReasonSkipForNow {
			return fmt.Errorf("skipped answer requires a skip reason, got %q", c.SkipReason)
		}
		if len(c.Vendors) > 0 {
			return errors.New("skipped answer must not carry vendors")
		}
		return nil
	}
	if c.SkipReason != SkipReasonNone {
		return fmt.Errorf("non-skipped answer must not carry a skip reason, got %q", c.SkipReason)
	}
	return nil
}

// SurveyDraft is the in-progress answer set for one survey attempt, keyed by
// a client-held token. The draft is the single source of truth while the
// survey is in flight; autosaves are last-write-wins.
type SurveyDraft struct {
	Token                string                      `json:"token"`
	Name                 string                      `json:"name"`
	Contact              string                      `json:"contact"`
	ContactMethod        string                      `json:"contact_method"`
	Responses            map[string]CategoryResponse `json:"responses"`
	AdditionalCategories []string                    `json:"additional_categories_requested"`
	AdditionalVendors    map[string][]string         `json:"additional_vendors"`
	Step                 int                         `json:"step"`
	SubmittedID          string                      `json:"submitted_id,omitempty"`
	UpdatedAt            time.Time                   `json:"updated_at"`
}

// NewDraft returns an empty draft positioned at the first step.
func NewDraft(token string) *SurveyDraft {
	return &SurveyDraft{
		Token:                token,
		ContactMethod:        ContactMethodPhone,
		Responses:            map[string]CategoryResponse{},
		AdditionalCategories: []string{},
		AdditionalVendors:    map[string][]string{},
		Step:                 1,
	}
}

// Reset clears all answers, returning the draft to its initial state.
// The submitted response id is kept so finalization stays at-most-once.
func (d *SurveyDraft) Reset() {
	d.Name = ""
	d.Contact = ""
	d.ContactMethod = ContactMethodPhone
	d.Responses = map[string]CategoryResponse{}
	d.AdditionalCategories = []string{}
	d.AdditionalVendors = map[string][]string{}
	d.Step = 1
}

// SurveyResponse is one submitted survey, immutable once created.
type SurveyResponse struct {
	ID                   string                      `json:"id"`
	Timestamp            time.Time                   `json:"timestamp"`
	Name                 string                      `json:"name"`
	Contact              string                      `json:"contact"`
	ContactMethod        string                      `json:"contact_method"`
	Responses            map[string]CategoryResponse `json:"responses"`
	AdditionalCategories []string                    `json:"additional_categories_requested"`
	AdditionalVendors    map[string][]string         `json:"additional_vendors"`
}

// Validate checks the fields required of an externally supplied record
// (manual admin entry). Category answers are validated individually.
func (r *SurveyResponse) Validate() error {
	if r.Name == "" {
		return ErrMissingName
	}
	if r.Contact == "" {
		return ErrMissingContact
	}
	for id, cr := range r.Responses {
		if err := cr.Validate(); err != nil {
			return fmt.Errorf("category %s: %w", id, err)
		}
	}
	return nil
}

// SurveySession is the analytics record of one survey attempt, separate from
// the submitted response. JSON field names match the exported analytics log.
type SurveySession struct {
	ID              string     `json:"id"`
	DraftToken      string     `json:"-"` // Never expose in JSON
	StartedAt       time.Time  `json:"startedAt"`
	LastActivity    time.Time  `json:"lastActivity"`
	CurrentStep     int        `json:"currentStep"`
	CurrentCategory *string    `json:"currentCategory,omitempty"`
	Completed       bool       `json:"completed"`
	Abandoned       bool       `json:"abandoned"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	IPHash          *string    `json:"-"` // Never expose in JSON
}
