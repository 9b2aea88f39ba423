// Package service implements the application's business logic on top of the
// repository layer. Services validate input, enforce ownership rules, and
// never touch GORM directly.
package service

import (
	"context"
	"errors"
	"strings"

	"plume/internal/models"
	"plume/internal/observability"
	"plume/internal/repository"
)

const (
	// DefaultPostPageSize is used when the client omits the limit parameter.
	DefaultPostPageSize = 10
	// MaxPostPageSize caps the limit parameter regardless of what the client asks for.
	MaxPostPageSize = 100

	maxPostTextLen = 50000
)

type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
	isAdmin   func(ctx context.Context, userID uint) (bool, error)
}

type CreatePostInput struct {
	UserID   uint
	Text     string
	GroupID  *uint
	ImageURL string
}

type ListPostsInput struct {
	Limit  int
	Offset int
	// GroupID filters to a single group when non-zero.
	GroupID uint
	// Author filters by the author's username when non-empty.
	Author string
}

// ListPostsResult carries one page of posts plus the total count the
// pagination envelope needs.
type ListPostsResult struct {
	Posts  []*models.Post
	Total  int64
	Limit  int
	Offset int
}

type UpdatePostInput struct {
	UserID   uint
	PostID   uint
	Text     string
	GroupID  *uint
	ImageURL string
	// ClearGroup detaches the post from its group. It wins over GroupID.
	ClearGroup bool
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
		isAdmin:   isAdmin,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxPostTextLen {
		return nil, models.NewValidationError("Text too long (max 50000 characters)")
	}

	if in.GroupID != nil {
		if err := s.ensureGroupExists(ctx, *in.GroupID); err != nil {
			return nil, err
		}
	}

	post := &models.Post{
		Text:     in.Text,
		UserID:   in.UserID,
		GroupID:  in.GroupID,
		ImageURL: in.ImageURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	withImage := "false"
	if post.ImageURL != "" {
		withImage = "true"
	}
	observability.PostsCreated.WithLabelValues(withImage).Inc()

	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (*ListPostsResult, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = DefaultPostPageSize
	}
	if limit > MaxPostPageSize {
		limit = MaxPostPageSize
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}

	filter := repository.PostFilter{
		GroupID: in.GroupID,
		Limit:   limit,
		Offset:  offset,
	}

	if in.Author != "" {
		author, err := s.userRepo.GetByUsername(ctx, in.Author)
		if err != nil {
			return nil, err
		}
		if author == nil {
			// Unknown author means an empty page, not an error.
			return &ListPostsResult{Posts: []*models.Post{}, Limit: limit, Offset: offset}, nil
		}
		filter.AuthorID = author.ID
	}

	posts, total, err := s.postRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ListPostsResult{Posts: posts, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if post.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own posts")
	}

	if in.Text != "" {
		if len(in.Text) > maxPostTextLen {
			return nil, models.NewValidationError("Text too long (max 50000 characters)")
		}
		post.Text = in.Text
	}
	if in.ImageURL != "" {
		post.ImageURL = in.ImageURL
	}
	switch {
	case in.ClearGroup:
		post.GroupID = nil
		post.Group = nil
	case in.GroupID != nil:
		if err := s.ensureGroupExists(ctx, *in.GroupID); err != nil {
			return nil, err
		}
		post.GroupID = in.GroupID
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	// Re-read so the response carries fresh associations after a group change.
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}

	if post.UserID != in.UserID {
		if s.isAdmin == nil {
			return models.NewUnauthorizedError("You can only delete your own posts")
		}
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewUnauthorizedError("You can only delete your own posts")
		}
	}

	return s.postRepo.Delete(ctx, in.PostID)
}

// ensureGroupExists maps a missing group to a validation error: the client
// supplied the group reference, so a bad one is their mistake, not a 404.
func (s *PostService) ensureGroupExists(ctx context.Context, groupID uint) error {
	if s.groupRepo == nil {
		return nil
	}
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			return models.NewValidationError("Group does not exist")
		}
		return err
	}
	return nil
}
