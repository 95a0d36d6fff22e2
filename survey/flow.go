// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package survey

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fivefourventures/vendor-survey/models"
	"github.com/fivefourventures/vendor-survey/store"
)

// TotalSteps is the fixed length of the survey flow.
const TotalSteps = 10

// Step positions within the flow
const (
	StepContact       = 1
	StepFirstCategory = 2
	StepLastCategory  = StepFirstCategory + models.SurveyedCategories - 1
	StepAdditional    = StepLastCategory + 1
	StepVendors       = TotalSteps
)

// StepKind names what a step renders.
type StepKind string

const (
	KindContact    StepKind = "contact"
	KindCategory   StepKind = "category"
	KindAdditional StepKind = "additional"
	KindVendors    StepKind = "vendors"
)

// Repository is the slice of the store the flow needs to persist drafts and
// finalize submissions.
type Repository interface {
	SaveDraft(ctx context.Context, d *models.SurveyDraft) error
	Submit(ctx context.Context, d *models.SurveyDraft) (models.SurveyResponse, store.StorageLocation, error)
}

// SessionLog records step transitions for the analytics funnel. Logging is
// best-effort; a failed write never blocks the survey.
type SessionLog interface {
	ProgressSession(ctx context.Context, token string, step int, categoryID string) error
	CompleteSession(ctx context.Context, token string) error
}

// Notifier fires the best-effort submission email. Implementations swallow
// their own errors.
type Notifier interface {
	Notify(ctx context.Context, resp models.SurveyResponse)
}

// Flow drives the linear step sequence. It owns no state of its own; the
// draft passed to each call is the single source of truth.
type Flow struct {
	repo     Repository
	sessions SessionLog
	notifier Notifier
}

func New(repo Repository, sessions SessionLog, notifier Notifier) *Flow {
	return &Flow{repo: repo, sessions: sessions, notifier: notifier}
}

// Result reports the outcome of a step transition.
type Result struct {
	Step             int
	Finalized        bool
	AlreadySubmitted bool
	Response         models.SurveyResponse
	Storage          store.StorageLocation
}

// Advance moves the draft one step forward. At the terminal step it
// finalizes instead: the response is persisted, the session completed, and
// the notifier fired. Advancing an already-finalized draft is a no-op that
// reports the original response id.
func (f *Flow) Advance(ctx context.Context, d *models.SurveyDraft) (Result, error) {
	if d.Step >= TotalSteps {
		return f.Finalize(ctx, d)
	}

	d.Step++
	if err := f.repo.SaveDraft(ctx, d); err != nil {
		d.Step--
		return Result{}, fmt.Errorf("failed to advance: %w", err)
	}
	f.progress(ctx, d)

	return Result{Step: d.Step}, nil
}

// Retreat moves the draft one step back; at the first step it is a no-op.
func (f *Flow) Retreat(ctx context.Context, d *models.SurveyDraft) (Result, error) {
	if d.Step <= 1 {
		return Result{Step: d.Step}, nil
	}

	d.Step--
	if err := f.repo.SaveDraft(ctx, d); err != nil {
		d.Step++
		return Result{}, fmt.Errorf("failed to retreat: %w", err)
	}
	f.progress(ctx, d)

	return Result{Step: d.Step}, nil
}

// Finalize submits the draft. At-most-once: the repository's submitted_id
// guard turns repeat calls into no-ops carrying the original response id.
func (f *Flow) Finalize(ctx context.Context, d *models.SurveyDraft) (Result, error) {
	resp, location, err := f.repo.Submit(ctx, d)
	if errors.Is(err, store.ErrAlreadySubmitted) {
		return Result{Step: d.Step, Finalized: true, AlreadySubmitted: true, Response: resp}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("failed to submit survey: %w", err)
	}

	if err := f.sessions.CompleteSession(ctx, d.Token); err != nil {
		slog.Error("failed to complete session", "error", err, "token", d.Token)
	}
	if f.notifier != nil {
		f.notifier.Notify(ctx, resp)
	}

	return Result{Step: d.Step, Finalized: true, Response: resp, Storage: location}, nil
}

func (f *Flow) progress(ctx context.Context, d *models.SurveyDraft) {
	var categoryID string
	if c, ok := CategoryForStep(d.Step); ok {
		categoryID = c.ID
	}
	if err := f.sessions.ProgressSession(ctx, d.Token, d.Step, categoryID); err != nil {
		slog.Error("failed to record session progress", "error", err, "token", d.Token)
	}
}

// KindForStep reports what a step renders.
func KindForStep(step int) StepKind {
	switch {
	case step <= StepContact:
		return KindContact
	case step <= StepLastCategory:
		return KindCategory
	case step == StepAdditional:
		return KindAdditional
	default:
		return KindVendors
	}
}

// CategoryForStep maps a category-question step to its category.
func CategoryForStep(step int) (models.VendorCategory, bool) {
	if step < StepFirstCategory || step > StepLastCategory {
		return models.VendorCategory{}, false
	}
	return models.VendorCategories[step-StepFirstCategory], true
}
