package services

import (
	"context"

	"github.com/ladderhq/ladder/internal/app/models"
	"github.com/ladderhq/ladder/internal/app/models/dto"
	"github.com/ladderhq/ladder/internal/app/repositories"
	"github.com/ladderhq/ladder/internal/pkg/apperrors"
	"github.com/ladderhq/ladder/internal/pkg/helpers"
	"github.com/ladderhq/ladder/internal/pkg/logger"
)

// PostService handles posts, likes, and comments
type PostService struct {
	postRepo      *repositories.PostRepository
	communityRepo *repositories.CommunityRepository
}

// NewPostService creates a new PostService
func NewPostService(repos *repositories.Repositories) *PostService {
	return &PostService{
		postRepo:      repos.PostRepository,
		communityRepo: repos.CommunityRepository,
	}
}

// Create inserts a post. Posting into a community requires membership.
func (s *PostService) Create(ctx context.Context, authorID int64, req *dto.CreatePostRequest) (*models.Post, error) {
	if req.CommunityID != nil {
		member, err := s.communityRepo.IsMember(ctx, *req.CommunityID, authorID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, apperrors.ErrNotMember
		}
	}

	post := &models.Post{
		CommunityID: req.CommunityID,
		AuthorID:    authorID,
		Title:       req.Title,
		Content:     req.Content,
	}

	if _, err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	logger.Info().Int64("post_id", post.ID).Int64("user_id", authorID).Msg("Post created")
	return s.postRepo.GetByID(ctx, post.ID)
}

// Get returns one post with its author
func (s *PostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// Feed returns posts newest first, optionally scoped to one community
func (s *PostService) Feed(ctx context.Context, communityID *int64, page, size int) ([]*models.Post, dto.PaginationInfo, error) {
	offset := (page - 1) * size

	posts, total, err := s.postRepo.GetFeed(ctx, communityID, size, offset)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return posts, helpers.NewPaginationInfo(total, page, size), nil
}

// Delete removes a post, author or admin only
func (s *PostService) Delete(ctx context.Context, id, requesterID int64, isAdmin bool) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if post.AuthorID != requesterID && !isAdmin {
		return apperrors.ErrPermissionDenied
	}

	return s.postRepo.Delete(ctx, id)
}

// ToggleLike flips the caller's like on a post and returns the resulting state
func (s *PostService) ToggleLike(ctx context.Context, postID, userID int64) (bool, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return false, err
	}

	return s.postRepo.ToggleLike(ctx, postID, userID)
}

// Comment adds a comment to a post
func (s *PostService) Comment(ctx context.Context, postID, authorID int64, content string) (*models.PostComment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.PostComment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}

	if _, err := s.postRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// Comments lists a post's comments oldest first
func (s *PostService) Comments(ctx context.Context, postID int64, page, size int) ([]*models.PostComment, dto.PaginationInfo, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	offset := (page - 1) * size
	comments, total, err := s.postRepo.GetComments(ctx, postID, size, offset)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return comments, helpers.NewPaginationInfo(total, page, size), nil
}

// DeleteComment removes a comment, comment author or admin only
func (s *PostService) DeleteComment(ctx context.Context, commentID, requesterID int64, isAdmin bool) error {
	comment, err := s.postRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != requesterID && !isAdmin {
		return apperrors.ErrPermissionDenied
	}

	return s.postRepo.DeleteComment(ctx, commentID)
}
