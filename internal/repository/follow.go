package repository

import (
	"context"

	"plume/internal/models"
	"plume/internal/observability"

	"gorm.io/gorm"
)

// FollowRepository defines persistence operations for follow subscriptions.
type FollowRepository interface {
	ListByUser(ctx context.Context, userID uint, search string) ([]*models.Follow, error)
	Exists(ctx context.Context, userID, followingID uint) (bool, error)
	Create(ctx context.Context, follow *models.Follow) error
}

type followRepository struct {
	db     *gorm.DB
	logger *observability.RepoLogger
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db, logger: observability.NewRepoLogger("follows")}
}

// ListByUser returns the follow subscriptions owned by userID. When search is
// non-empty it filters on the followed user's username, substring match.
func (r *followRepository) ListByUser(ctx context.Context, userID uint, search string) ([]*models.Follow, error) {
	query := r.db.WithContext(ctx).
		Preload("User").
		Preload("Following").
		Where("follows.user_id = ?", userID)

	if search != "" {
		// LOWER on both sides keeps the match case-insensitive on Postgres,
		// where LIKE is case-sensitive (unlike SQLite's ASCII folding).
		query = query.
			Joins("JOIN users AS following_users ON following_users.id = follows.following_id").
			Where("LOWER(following_users.username) LIKE LOWER(?)", "%"+search+"%")
	}

	var follows []*models.Follow
	if err := query.Order("follows.created_at DESC").Find(&follows).Error; err != nil {
		r.logger.LogError(ctx, err, "list")
		return nil, models.NewInternalError(err)
	}
	return follows, nil
}

func (r *followRepository) Exists(ctx context.Context, userID, followingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ? AND following_id = ?", userID, followingID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Create inserts the follow edge. The composite unique index backs this up, so
// a duplicate created in a concurrent request surfaces as a validation error
// rather than a 500.
func (r *followRepository) Create(ctx context.Context, follow *models.Follow) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Subscription already exists")
		}
		r.logger.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.logger.LogCreate(ctx, map[string]interface{}{
		"user_id":      follow.UserID,
		"following_id": follow.FollowingID,
	})
	// Re-read with both users so the response carries usernames.
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Following").
		First(follow, follow.ID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
