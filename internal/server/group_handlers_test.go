package server

import (
	"fmt"
	"net/http"
	"testing"

	"plume/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetGroupsHandler(t *testing.T) {
	t.Run("lists groups publicly", func(t *testing.T) {
		_, app, db := setupTestServer(t)
		createGroup(t, db, "Cats", "cats")
		createGroup(t, db, "Dogs", "dogs")

		resp := doJSON(t, app, http.MethodGet, "/api/groups", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body []models.Group
		decodeJSON(t, resp, &body)
		assert.Len(t, body, 2)
	})
}

func TestGetGroupHandler(t *testing.T) {
	t.Run("returns group by id", func(t *testing.T) {
		_, app, db := setupTestServer(t)
		group := createGroup(t, db, "Cats", "cats")

		resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/groups/%d", group.ID), "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body models.Group
		decodeJSON(t, resp, &body)
		assert.Equal(t, "Cats", body.Title)
	})

	t.Run("returns group by slug", func(t *testing.T) {
		_, app, db := setupTestServer(t)
		createGroup(t, db, "Cats", "cats")

		resp := doJSON(t, app, http.MethodGet, "/api/groups/slug/cats", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body models.Group
		decodeJSON(t, resp, &body)
		assert.Equal(t, "cats", body.Slug)
	})

	t.Run("404 for missing group", func(t *testing.T) {
		_, app, _ := setupTestServer(t)

		resp := doJSON(t, app, http.MethodGet, "/api/groups/999", "", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCreateGroupHandler(t *testing.T) {
	t.Run("admin can create", func(t *testing.T) {
		s, app, db := setupTestServer(t)
		admin := createUser(t, db, "root", true)
		token := authToken(t, s, admin)

		resp := doJSON(t, app, http.MethodPost, "/api/groups", token, map[string]string{
			"title":       "Cats",
			"slug":        "cats",
			"description": "All about cats",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var body models.Group
		decodeJSON(t, resp, &body)
		assert.Equal(t, "Cats", body.Title)
		assert.NotZero(t, body.ID)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		s, app, db := setupTestServer(t)
		user := createUser(t, db, "alice", false)
		token := authToken(t, s, user)

		resp := doJSON(t, app, http.MethodPost, "/api/groups", token, map[string]string{
			"title": "Cats",
			"slug":  "cats",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("rejects reserved slug", func(t *testing.T) {
		s, app, db := setupTestServer(t)
		admin := createUser(t, db, "root", true)
		token := authToken(t, s, admin)

		resp := doJSON(t, app, http.MethodPost, "/api/groups", token, map[string]string{
			"title": "Admin Area",
			"slug":  "admin",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteGroupHandler(t *testing.T) {
	t.Run("admin can delete", func(t *testing.T) {
		s, app, db := setupTestServer(t)
		admin := createUser(t, db, "root", true)
		group := createGroup(t, db, "Cats", "cats")
		token := authToken(t, s, admin)

		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/groups/%d", group.ID), token, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		var count int64
		require.NoError(t, db.Model(&models.Group{}).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		s, app, db := setupTestServer(t)
		user := createUser(t, db, "alice", false)
		group := createGroup(t, db, "Cats", "cats")
		token := authToken(t, s, user)

		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/groups/%d", group.ID), token, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
