package services

import (
	"context"
	"testing"
	"time"

	"github.com/ladderhq/ladder/internal/app/models"
	"github.com/ladderhq/ladder/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApplicationStore struct {
	createErr    error
	applications map[int64]*models.Application
	byUserLimit  int
	byUserOffset int
	statusSet    models.ApplicationStatus
	deletedID    int64
}

func (f *fakeApplicationStore) Create(_ context.Context, userID, opportunityID int64) (*models.Application, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Application{ID: 1, UserID: userID, OpportunityID: opportunityID, Status: models.StatusApplied}, nil
}

func (f *fakeApplicationStore) GetByID(_ context.Context, id int64) (*models.Application, error) {
	app, ok := f.applications[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	return app, nil
}

func (f *fakeApplicationStore) GetByUser(_ context.Context, _ int64, limit, offset int) ([]*models.Application, int64, error) {
	f.byUserLimit = limit
	f.byUserOffset = offset
	return []*models.Application{}, 0, nil
}

func (f *fakeApplicationStore) GetByOpportunity(_ context.Context, _ int64, limit, offset int) ([]*models.Application, int64, error) {
	f.byUserLimit = limit
	f.byUserOffset = offset
	return []*models.Application{}, 0, nil
}

func (f *fakeApplicationStore) UpdateStatus(_ context.Context, id int64, status models.ApplicationStatus) error {
	f.statusSet = status
	if app, ok := f.applications[id]; ok {
		app.Status = status
	}
	return nil
}

func (f *fakeApplicationStore) Delete(_ context.Context, id int64) error {
	f.deletedID = id
	return nil
}

type fakeOpportunityGetter struct {
	opportunities map[int64]*models.Opportunity
}

func (f *fakeOpportunityGetter) GetByID(_ context.Context, id int64) (*models.Opportunity, error) {
	opp, ok := f.opportunities[id]
	if !ok {
		return nil, apperrors.ErrOpportunityNotFound
	}
	return opp, nil
}

func openOpportunity(id, createdBy int64) *models.Opportunity {
	return &models.Opportunity{
		ID:        id,
		CreatedBy: createdBy,
		Deadline:  time.Now().Add(24 * time.Hour),
	}
}

func TestApplySecondAttemptSurfacesConflict(t *testing.T) {
	opps := &fakeOpportunityGetter{opportunities: map[int64]*models.Opportunity{
		7: openOpportunity(7, 99),
	}}
	apps := &fakeApplicationStore{createErr: apperrors.ErrAlreadyApplied}
	svc := &ApplicationService{applicationRepo: apps, opportunityRepo: opps}

	_, err := svc.Apply(context.Background(), 5, 7)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
}

func TestApplyRejectsPassedDeadline(t *testing.T) {
	expired := openOpportunity(7, 99)
	expired.Deadline = time.Now().Add(-time.Hour)
	opps := &fakeOpportunityGetter{opportunities: map[int64]*models.Opportunity{7: expired}}
	svc := &ApplicationService{applicationRepo: &fakeApplicationStore{}, opportunityRepo: opps}

	_, err := svc.Apply(context.Background(), 5, 7)
	assert.ErrorIs(t, err, apperrors.ErrOpportunityExpired)
}

func TestApplyMissingOpportunity(t *testing.T) {
	svc := &ApplicationService{
		applicationRepo: &fakeApplicationStore{},
		opportunityRepo: &fakeOpportunityGetter{opportunities: map[int64]*models.Opportunity{}},
	}

	_, err := svc.Apply(context.Background(), 5, 42)
	assert.ErrorIs(t, err, apperrors.ErrOpportunityNotFound)
}

// A non-owner reviewing applicants for an existing listing must get a
// permission error, not a not-found: the listing's existence is public.
func TestListForOpportunityNonOwnerGetsPermissionDenied(t *testing.T) {
	opps := &fakeOpportunityGetter{opportunities: map[int64]*models.Opportunity{
		7: openOpportunity(7, 99),
	}}
	svc := &ApplicationService{applicationRepo: &fakeApplicationStore{}, opportunityRepo: opps}

	_, _, err := svc.ListForOpportunity(context.Background(), 7, 5, false, 1, 20)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.NotErrorIs(t, err, apperrors.ErrOpportunityNotFound)
}

func TestListForOpportunityAdminBypassesOwnership(t *testing.T) {
	opps := &fakeOpportunityGetter{opportunities: map[int64]*models.Opportunity{
		7: openOpportunity(7, 99),
	}}
	svc := &ApplicationService{applicationRepo: &fakeApplicationStore{}, opportunityRepo: opps}

	_, _, err := svc.ListForOpportunity(context.Background(), 7, 5, true, 1, 20)
	assert.NoError(t, err)
}

func TestUpdateStatusNonOwnerGetsPermissionDenied(t *testing.T) {
	apps := &fakeApplicationStore{applications: map[int64]*models.Application{
		3: {ID: 3, UserID: 5, OpportunityID: 7, Status: models.StatusApplied},
	}}
	opps := &fakeOpportunityGetter{opportunities: map[int64]*models.Opportunity{
		7: openOpportunity(7, 99),
	}}
	svc := &ApplicationService{applicationRepo: apps, opportunityRepo: opps}

	_, err := svc.UpdateStatus(context.Background(), 3, 5, false, models.StatusAccepted)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Empty(t, apps.statusSet)
}

func TestUpdateStatusOwner(t *testing.T) {
	apps := &fakeApplicationStore{applications: map[int64]*models.Application{
		3: {ID: 3, UserID: 5, OpportunityID: 7, Status: models.StatusApplied},
	}}
	opps := &fakeOpportunityGetter{opportunities: map[int64]*models.Opportunity{
		7: openOpportunity(7, 99),
	}}
	svc := &ApplicationService{applicationRepo: apps, opportunityRepo: opps}

	app, err := svc.UpdateStatus(context.Background(), 3, 99, false, models.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, app.Status)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	svc := &ApplicationService{applicationRepo: &fakeApplicationStore{}, opportunityRepo: &fakeOpportunityGetter{}}

	_, err := svc.UpdateStatus(context.Background(), 3, 99, false, models.ApplicationStatus("ghosted"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
}

func TestWithdrawOnlyByApplicant(t *testing.T) {
	apps := &fakeApplicationStore{applications: map[int64]*models.Application{
		3: {ID: 3, UserID: 5, OpportunityID: 7},
	}}
	svc := &ApplicationService{applicationRepo: apps, opportunityRepo: &fakeOpportunityGetter{}}

	err := svc.Withdraw(context.Background(), 3, 8)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Zero(t, apps.deletedID)

	require.NoError(t, svc.Withdraw(context.Background(), 3, 5))
	assert.Equal(t, int64(3), apps.deletedID)
}

// Page numbers are 1-based; the store receives size as the limit and
// (page-1)*size as the offset.
func TestListOwnPaginationOffsets(t *testing.T) {
	apps := &fakeApplicationStore{}
	svc := &ApplicationService{applicationRepo: apps, opportunityRepo: &fakeOpportunityGetter{}}

	_, _, err := svc.ListOwn(context.Background(), 5, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, apps.byUserLimit)
	assert.Equal(t, 20, apps.byUserOffset)

	_, _, err = svc.ListOwn(context.Background(), 5, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 0, apps.byUserOffset)
}
