// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package survey

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivefourventures/vendor-survey/models"
	"github.com/fivefourventures/vendor-survey/store"
)

// fakeRepo records calls and simulates the repository's submitted_id guard.
type fakeRepo struct {
	saves      int
	saveErr    error
	submits    int
	submitResp models.SurveyResponse
	submitLoc  store.StorageLocation
	submitErr  error
}

func (r *fakeRepo) SaveDraft(ctx context.Context, d *models.SurveyDraft) error {
	r.saves++
	return r.saveErr
}

func (r *fakeRepo) Submit(ctx context.Context, d *models.SurveyDraft) (models.SurveyResponse, store.StorageLocation, error) {
	r.submits++
	if d.SubmittedID != "" {
		return models.SurveyResponse{ID: d.SubmittedID}, "", store.ErrAlreadySubmitted
	}
	if r.submitErr != nil {
		return models.SurveyResponse{}, "", r.submitErr
	}
	d.SubmittedID = r.submitResp.ID
	d.Reset()
	return r.submitResp, r.submitLoc, nil
}

type fakeSessions struct {
	progressed []int
	completed  int
}

func (s *fakeSessions) ProgressSession(ctx context.Context, token string, step int, categoryID string) error {
	s.progressed = append(s.progressed, step)
	return nil
}

func (s *fakeSessions) CompleteSession(ctx context.Context, token string) error {
	s.completed++
	return nil
}

type fakeNotifier struct {
	notified []models.SurveyResponse
}

func (n *fakeNotifier) Notify(ctx context.Context, resp models.SurveyResponse) {
	n.notified = append(n.notified, resp)
}

func newTestFlow() (*Flow, *fakeRepo, *fakeSessions, *fakeNotifier) {
	repo := &fakeRepo{
		submitResp: models.SurveyResponse{ID: "resp-1", Name: "Pat"},
		submitLoc:  store.StorageRemote,
	}
	sessions := &fakeSessions{}
	notifier := &fakeNotifier{}
	return New(repo, sessions, notifier), repo, sessions, notifier
}

func TestAdvanceWalksEveryStep(t *testing.T) {
	flow, repo, sessions, _ := newTestFlow()
	d := models.NewDraft("tok")

	for want := 2; want <= TotalSteps; want++ {
		result, err := flow.Advance(context.Background(), d)
		require.NoError(t, err)
		assert.Equal(t, want, result.Step)
		assert.False(t, result.Finalized)
	}

	assert.Equal(t, TotalSteps-1, repo.saves)
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 8, 9, 10}, sessions.progressed)
}

func TestAdvanceAtLastStepFinalizes(t *testing.T) {
	flow, repo, sessions, notifier := newTestFlow()
	d := models.NewDraft("tok")
	d.Step = TotalSteps

	result, err := flow.Advance(context.Background(), d)
	require.NoError(t, err)

	assert.True(t, result.Finalized)
	assert.False(t, result.AlreadySubmitted)
	assert.Equal(t, "resp-1", result.Response.ID)
	assert.Equal(t, store.StorageRemote, result.Storage)
	assert.Equal(t, 1, repo.submits)
	assert.Equal(t, 1, sessions.completed)
	assert.Len(t, notifier.notified, 1)
}

func TestFinalizeIsIdempotent(t *testing.T) {
	flow, repo, sessions, notifier := newTestFlow()
	d := models.NewDraft("tok")
	d.Step = TotalSteps

	first, err := flow.Finalize(context.Background(), d)
	require.NoError(t, err)
	require.False(t, first.AlreadySubmitted)

	second, err := flow.Finalize(context.Background(), d)
	require.NoError(t, err)

	assert.True(t, second.Finalized)
	assert.True(t, second.AlreadySubmitted)
	assert.Equal(t, first.Response.ID, second.Response.ID, "repeat finalize must report the original id")
	assert.Equal(t, 2, repo.submits)
	assert.Equal(t, 1, sessions.completed, "session completes once")
	assert.Len(t, notifier.notified, 1, "one submission, one email")
}

func TestAdvanceRollsBackOnSaveFailure(t *testing.T) {
	flow, repo, sessions, _ := newTestFlow()
	repo.saveErr = errors.New("disk full")
	d := models.NewDraft("tok")
	d.Step = 4

	_, err := flow.Advance(context.Background(), d)
	assert.Error(t, err)
	assert.Equal(t, 4, d.Step, "failed advance must not move the draft")
	assert.Empty(t, sessions.progressed)
}

func TestRetreat(t *testing.T) {
	flow, _, _, _ := newTestFlow()
	d := models.NewDraft("tok")
	d.Step = 3

	result, err := flow.Retreat(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Step)
}

func TestRetreatAtFirstStepIsNoop(t *testing.T) {
	flow, repo, _, _ := newTestFlow()
	d := models.NewDraft("tok")

	result, err := flow.Retreat(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Step)
	assert.Zero(t, repo.saves)
}

func TestFinalizeSubmitFailure(t *testing.T) {
	flow, repo, sessions, notifier := newTestFlow()
	repo.submitErr = errors.New("both storage paths failed")
	d := models.NewDraft("tok")
	d.Step = TotalSteps

	_, err := flow.Finalize(context.Background(), d)
	assert.Error(t, err)
	assert.Zero(t, sessions.completed)
	assert.Empty(t, notifier.notified)
	assert.Empty(t, d.SubmittedID)
}

func TestKindForStep(t *testing.T) {
	assert.Equal(t, KindContact, KindForStep(1))
	assert.Equal(t, KindCategory, KindForStep(2))
	assert.Equal(t, KindCategory, KindForStep(8))
	assert.Equal(t, KindAdditional, KindForStep(9))
	assert.Equal(t, KindVendors, KindForStep(10))
}

func TestCategoryForStep(t *testing.T) {
	c, ok := CategoryForStep(2)
	require.True(t, ok)
	assert.Equal(t, "pool_service", c.ID)

	c, ok = CategoryForStep(StepLastCategory)
	require.True(t, ok)
	assert.Equal(t, "handyman", c.ID, "the seventh question is the last")

	_, ok = CategoryForStep(1)
	assert.False(t, ok)
	_, ok = CategoryForStep(9)
	assert.False(t, ok)
}
