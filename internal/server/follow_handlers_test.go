package server

import (
	"net/http"
	"testing"

	"plume/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createFollow(t *testing.T, db *gorm.DB, userID, followingID uint) *models.Follow {
	t.Helper()
	follow := &models.Follow{UserID: userID, FollowingID: followingID}
	require.NoError(t, db.Create(follow).Error)
	return follow
}

func TestCreateFollowHandler(t *testing.T) {
	t.Run("subscribes by username", func(t *testing.T) {
		s, app, db := setupTestServer(t)
		alice := createUser(t, db, "alice", false)
		createUser(t, db, "bob", false)
		token := authToken(t, s, alice)

		resp := doJSON(t, app, http.MethodPost, "/api/follows", token, map[string]string{
			"following": "bob",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var body followResponse
		decodeJSON(t, resp, &body)
		assert.Equal(t, "alice", body.User)
		assert.Equal(t, "bob", body.Following)
	})

	t.Run("rejects self-follow", func(t *testing.T) {
		s, app, db := setupTestServer(t)
		alice := createUser(t, db, "alice", false)
		token := authToken(t, s, alice)

		resp := doJSON(t, app, http.MethodPost, "/api/follows", token, map[string]string{
			"following": "alice",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects duplicate subscription", func(t *testing.T) {
		s, app, db := setupTestServer(t)
		alice := createUser(t, db, "alice", false)
		bob := createUser(t, db, "bob", false)
		createFollow(t, db, alice.ID, bob.ID)
		token := authToken(t, s, alice)

		resp := doJSON(t, app, http.MethodPost, "/api/follows", token, map[string]string{
			"following": "bob",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("404 for unknown username", func(t *testing.T) {
		s, app, db := setupTestServer(t)
		alice := createUser(t, db, "alice", false)
		token := authToken(t, s, alice)

		resp := doJSON(t, app, http.MethodPost, "/api/follows", token, map[string]string{
			"following": "ghost",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("requires authentication", func(t *testing.T) {
		_, app, _ := setupTestServer(t)

		resp := doJSON(t, app, http.MethodPost, "/api/follows", "", map[string]string{
			"following": "bob",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGetFollowsHandler(t *testing.T) {
	t.Run("lists only the caller's subscriptions", func(t *testing.T) {
		s, app, db := setupTestServer(t)
		alice := createUser(t, db, "alice", false)
		bob := createUser(t, db, "bob", false)
		carol := createUser(t, db, "carol", false)
		createFollow(t, db, alice.ID, bob.ID)
		createFollow(t, db, carol.ID, bob.ID)
		token := authToken(t, s, alice)

		resp := doJSON(t, app, http.MethodGet, "/api/follows", token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body []followResponse
		decodeJSON(t, resp, &body)
		require.Len(t, body, 1)
		assert.Equal(t, "alice", body[0].User)
		assert.Equal(t, "bob", body[0].Following)
	})

	t.Run("search filters by followed username", func(t *testing.T) {
		s, app, db := setupTestServer(t)
		alice := createUser(t, db, "alice", false)
		bob := createUser(t, db, "bob", false)
		carol := createUser(t, db, "carol", false)
		createFollow(t, db, alice.ID, bob.ID)
		createFollow(t, db, alice.ID, carol.ID)
		token := authToken(t, s, alice)

		resp := doJSON(t, app, http.MethodGet, "/api/follows?search=car", token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body []followResponse
		decodeJSON(t, resp, &body)
		require.Len(t, body, 1)
		assert.Equal(t, "carol", body[0].Following)
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		s, app, db := setupTestServer(t)
		alice := createUser(t, db, "alice", false)
		carol := createUser(t, db, "CarolWrites", false)
		createFollow(t, db, alice.ID, carol.ID)
		token := authToken(t, s, alice)

		resp := doJSON(t, app, http.MethodGet, "/api/follows?search=carolw", token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body []followResponse
		decodeJSON(t, resp, &body)
		require.Len(t, body, 1)
		assert.Equal(t, "CarolWrites", body[0].Following)
	})
}
