package services

import (
	"context"
	"testing"

	"github.com/ladderhq/ladder/internal/app/models"
	"github.com/ladderhq/ladder/internal/app/models/dto"
	"github.com/ladderhq/ladder/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOpportunityStore struct {
	opportunities map[int64]*models.Opportunity
	listLimit     int
	listOffset    uint64
	updatedID     int64
	deletedID     int64
}

func (f *fakeOpportunityStore) GetAllWithDetails(_ context.Context, _ dto.OpportunityFilter, limit int, offset uint64) ([]*models.Opportunity, int64, error) {
	f.listLimit = limit
	f.listOffset = offset
	return []*models.Opportunity{}, 0, nil
}

func (f *fakeOpportunityStore) GetByID(_ context.Context, id int64) (*models.Opportunity, error) {
	opp, ok := f.opportunities[id]
	if !ok {
		return nil, apperrors.ErrOpportunityNotFound
	}
	return opp, nil
}

func (f *fakeOpportunityStore) Create(_ context.Context, opp *models.Opportunity) (int64, error) {
	opp.ID = 1
	if f.opportunities == nil {
		f.opportunities = map[int64]*models.Opportunity{}
	}
	f.opportunities[opp.ID] = opp
	return opp.ID, nil
}

func (f *fakeOpportunityStore) Update(_ context.Context, id int64, _ *dto.UpdateOpportunityRequest) error {
	f.updatedID = id
	return nil
}

func (f *fakeOpportunityStore) Delete(_ context.Context, id int64) error {
	f.deletedID = id
	return nil
}

// A non-owner updating an existing listing must get a permission error, not a
// not-found.
func TestOpportunityUpdateNonOwnerGetsPermissionDenied(t *testing.T) {
	store := &fakeOpportunityStore{opportunities: map[int64]*models.Opportunity{
		7: {ID: 7, CreatedBy: 99},
	}}
	svc := &OpportunityService{opportunityRepo: store}

	_, err := svc.Update(context.Background(), 7, 5, false, &dto.UpdateOpportunityRequest{})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.NotErrorIs(t, err, apperrors.ErrOpportunityNotFound)
	assert.Zero(t, store.updatedID)
}

func TestOpportunityUpdateMissingListing(t *testing.T) {
	svc := &OpportunityService{opportunityRepo: &fakeOpportunityStore{}}

	_, err := svc.Update(context.Background(), 42, 5, false, &dto.UpdateOpportunityRequest{})
	assert.ErrorIs(t, err, apperrors.ErrOpportunityNotFound)
}

func TestOpportunityDeleteOwnership(t *testing.T) {
	store := &fakeOpportunityStore{opportunities: map[int64]*models.Opportunity{
		7: {ID: 7, CreatedBy: 99},
	}}
	svc := &OpportunityService{opportunityRepo: store}

	err := svc.Delete(context.Background(), 7, 5, false)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Zero(t, store.deletedID)

	require.NoError(t, svc.Delete(context.Background(), 7, 5, true))
	assert.Equal(t, int64(7), store.deletedID)
}

func TestOpportunityListPaginationOffsets(t *testing.T) {
	store := &fakeOpportunityStore{}
	svc := &OpportunityService{opportunityRepo: store}

	_, _, err := svc.List(context.Background(), dto.OpportunityFilter{}, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, store.listLimit)
	assert.Equal(t, uint64(20), store.listOffset)

	_, _, err = svc.List(context.Background(), dto.OpportunityFilter{}, 1, 25)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), store.listOffset)
}
