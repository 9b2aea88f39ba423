package service

import (
	"context"
	"strings"

	"plume/internal/models"
	"plume/internal/observability"
	"plume/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

type CreateFollowInput struct {
	UserID uint
	// FollowingUsername identifies the target author; follow edges are
	// always expressed in usernames at the API boundary.
	FollowingUsername string
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// ListFollows returns the caller's own subscriptions, optionally narrowed by
// a substring match on the followed author's username.
func (s *FollowService) ListFollows(ctx context.Context, userID uint, search string) ([]*models.Follow, error) {
	return s.followRepo.ListByUser(ctx, userID, strings.TrimSpace(search))
}

func (s *FollowService) CreateFollow(ctx context.Context, in CreateFollowInput) (*models.Follow, error) {
	username := strings.TrimSpace(in.FollowingUsername)
	if username == "" {
		return nil, models.NewValidationError("Following username is required")
	}

	following, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if following == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	if following.ID == in.UserID {
		return nil, models.NewValidationError("Cannot follow yourself")
	}

	exists, err := s.followRepo.Exists(ctx, in.UserID, following.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewValidationError("Subscription already exists")
	}

	follow := &models.Follow{
		UserID:      in.UserID,
		FollowingID: following.ID,
	}
	// The unique index backs this up, so a concurrent duplicate still fails
	// inside Create with the same validation error.
	if err := s.followRepo.Create(ctx, follow); err != nil {
		return nil, err
	}
	observability.FollowsCreated.Inc()

	return follow, nil
}
