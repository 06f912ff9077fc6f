package services

import (
	"context"

	"github.com/ladderhq/ladder/internal/app/models"
	"github.com/ladderhq/ladder/internal/app/repositories"
)

// FavoriteService handles the favorite toggle and the favorites list
type FavoriteService struct {
	favoriteRepo    *repositories.FavoriteRepository
	opportunityRepo *repositories.OpportunityRepository
}

// NewFavoriteService creates a new FavoriteService
func NewFavoriteService(repos *repositories.Repositories) *FavoriteService {
	return &FavoriteService{
		favoriteRepo:    repos.FavoriteRepository,
		opportunityRepo: repos.OpportunityRepository,
	}
}

// Toggle flips the favorite state for the caller and returns the resulting
// state. The listing must exist.
func (s *FavoriteService) Toggle(ctx context.Context, userID, opportunityID int64) (bool, error) {
	if _, err := s.opportunityRepo.GetByID(ctx, opportunityID); err != nil {
		return false, err
	}

	return s.favoriteRepo.Toggle(ctx, userID, opportunityID)
}

// List returns the caller's favorited opportunities, newest favorite first.
// Listings deleted since they were favorited are skipped.
func (s *FavoriteService) List(ctx context.Context, userID int64) ([]*models.Opportunity, error) {
	ids, err := s.favoriteRepo.GetOpportunityIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*models.Opportunity{}, nil
	}

	opportunities, err := s.opportunityRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Re-order to the favorite order; the batch query returns creation order
	byID := make(map[int64]*models.Opportunity, len(opportunities))
	for _, opp := range opportunities {
		byID[opp.ID] = opp
	}

	ordered := make([]*models.Opportunity, 0, len(opportunities))
	for _, id := range ids {
		if opp, ok := byID[id]; ok {
			ordered = append(ordered, opp)
		}
	}

	return ordered, nil
}
