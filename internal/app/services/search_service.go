package services

import (
	"context"
	"strings"

	"github.com/ladderhq/ladder/internal/app/models"
	"github.com/ladderhq/ladder/internal/app/repositories"
	"github.com/ladderhq/ladder/internal/pkg/apperrors"
)

// SearchResults bundles matches across the searchable resource types
type SearchResults struct {
	Opportunities []*models.Opportunity `json:"opportunities"`
	Communities   []*models.Community   `json:"communities"`
	Posts         []*models.Post        `json:"posts"`
	Users         []*models.User        `json:"users"`
}

// SearchService runs cross-resource search
type SearchService struct {
	opportunityRepo *repositories.OpportunityRepository
	communityRepo   *repositories.CommunityRepository
	postRepo        *repositories.PostRepository
	userRepo        *repositories.UserRepository
}

// NewSearchService creates a new SearchService
func NewSearchService(repos *repositories.Repositories) *SearchService {
	return &SearchService{
		opportunityRepo: repos.OpportunityRepository,
		communityRepo:   repos.CommunityRepository,
		postRepo:        repos.PostRepository,
		userRepo:        repos.UserRepository,
	}
}

// Search queries all resource types with the same term. types narrows the
// search to a comma-separated subset (opportunities, communities, posts,
// users); empty means all.
func (s *SearchService) Search(ctx context.Context, term, types string, limit int) (*SearchResults, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperrors.NewBadRequestError("search term is required")
	}

	if limit <= 0 || limit > 50 {
		limit = 20
	}

	wanted := map[string]bool{}
	if types == "" {
		wanted["opportunities"] = true
		wanted["communities"] = true
		wanted["posts"] = true
		wanted["users"] = true
	} else {
		for _, t := range strings.Split(types, ",") {
			wanted[strings.TrimSpace(t)] = true
		}
	}

	results := &SearchResults{
		Opportunities: []*models.Opportunity{},
		Communities:   []*models.Community{},
		Posts:         []*models.Post{},
		Users:         []*models.User{},
	}

	if wanted["opportunities"] {
		opportunities, err := s.opportunityRepo.Search(ctx, term, limit, 0)
		if err != nil {
			return nil, err
		}
		results.Opportunities = opportunities
	}

	if wanted["communities"] {
		communities, err := s.communityRepo.Search(ctx, term, limit, 0)
		if err != nil {
			return nil, err
		}
		results.Communities = communities
	}

	if wanted["posts"] {
		posts, err := s.postRepo.Search(ctx, term, limit, 0)
		if err != nil {
			return nil, err
		}
		results.Posts = posts
	}

	if wanted["users"] {
		users, err := s.userRepo.Search(ctx, term, limit, 0)
		if err != nil {
			return nil, err
		}
		results.Users = users
	}

	return results, nil
}
