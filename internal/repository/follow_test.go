package repository

import (
	"context"
	"testing"

	"plume/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_CreateAndExists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	follow := &models.Follow{UserID: alice.ID, FollowingID: bob.ID}
	require.NoError(t, repo.Create(ctx, follow))
	assert.Equal(t, "alice", follow.User.Username)
	assert.Equal(t, "bob", follow.Following.Username)

	exists, err := repo.Exists(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// Direction matters: bob does not follow alice.
	exists, err = repo.Exists(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFollowRepository_Create_DuplicateRejectedByConstraint(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, repo.Create(ctx, &models.Follow{UserID: alice.ID, FollowingID: bob.ID}))

	err := repo.Create(ctx, &models.Follow{UserID: alice.ID, FollowingID: bob.ID})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, "Subscription already exists", appErr.Message)
}

func TestFollowRepository_ListByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	require.NoError(t, repo.Create(ctx, &models.Follow{UserID: alice.ID, FollowingID: bob.ID}))
	require.NoError(t, repo.Create(ctx, &models.Follow{UserID: alice.ID, FollowingID: carol.ID}))
	require.NoError(t, repo.Create(ctx, &models.Follow{UserID: bob.ID, FollowingID: carol.ID}))

	follows, err := repo.ListByUser(ctx, alice.ID, "")
	require.NoError(t, err)
	assert.Len(t, follows, 2, "only alice's own subscriptions should be listed")

	for _, f := range follows {
		assert.Equal(t, "alice", f.User.Username)
	}
}

func TestFollowRepository_ListByUser_SearchByFollowingUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	bobby := createTestUser(t, db, "bobby")
	carol := createTestUser(t, db, "carol")

	require.NoError(t, repo.Create(ctx, &models.Follow{UserID: alice.ID, FollowingID: bob.ID}))
	require.NoError(t, repo.Create(ctx, &models.Follow{UserID: alice.ID, FollowingID: bobby.ID}))
	require.NoError(t, repo.Create(ctx, &models.Follow{UserID: alice.ID, FollowingID: carol.ID}))

	follows, err := repo.ListByUser(ctx, alice.ID, "bob")
	require.NoError(t, err)
	require.Len(t, follows, 2, "substring search should match bob and bobby")

	usernames := []string{follows[0].Following.Username, follows[1].Following.Username}
	assert.ElementsMatch(t, []string{"bob", "bobby"}, usernames)
}

func TestFollowRepository_ListByUser_SearchIgnoresCase(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	rider := createTestUser(t, db, "DarkRider")

	require.NoError(t, repo.Create(ctx, &models.Follow{UserID: alice.ID, FollowingID: rider.ID}))

	// Query casing must not matter in either direction.
	for _, search := range []string{"darkrider", "DARKRIDER", "rIdEr"} {
		follows, err := repo.ListByUser(ctx, alice.ID, search)
		require.NoError(t, err)
		require.Len(t, follows, 1, "search %q should match DarkRider", search)
		assert.Equal(t, "DarkRider", follows[0].Following.Username)
	}
}
