package server

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func uploadImageRequest(t *testing.T, app *fiber.App, token string, content []byte) *http.Response {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/images", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestUploadImageHandler(t *testing.T) {
	t.Run("accepts a png and returns media URLs", func(t *testing.T) {
		s, app, db := setupTestServer(t)
		user := createUser(t, db, "alice", false)
		token := authToken(t, s, user)

		resp := uploadImageRequest(t, app, token, pngBytes(t, 64, 48))
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var body struct {
			Hash    string `json:"hash"`
			URL     string `json:"url"`
			WebPURL string `json:"webp_url"`
			Width   int    `json:"width"`
			Height  int    `json:"height"`
		}
		decodeJSON(t, resp, &body)
		assert.NotEmpty(t, body.Hash)
		assert.Equal(t, "/media/i/"+body.Hash+"/master.jpg", body.URL)
		assert.Equal(t, "/media/i/"+body.Hash+"/master.webp", body.WebPURL)
		assert.Equal(t, 64, body.Width)
		assert.Equal(t, 48, body.Height)

		// The master is immediately servable.
		serveResp := doJSON(t, app, http.MethodGet, body.URL, "", nil)
		defer func() { _ = serveResp.Body.Close() }()
		assert.Equal(t, http.StatusOK, serveResp.StatusCode)
	})

	t.Run("rejects non-image payloads", func(t *testing.T) {
		s, app, db := setupTestServer(t)
		user := createUser(t, db, "alice", false)
		token := authToken(t, s, user)

		resp := uploadImageRequest(t, app, token, []byte("definitely not an image"))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("requires authentication", func(t *testing.T) {
		_, app, _ := setupTestServer(t)

		resp := uploadImageRequest(t, app, "", pngBytes(t, 8, 8))
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestServeImageHandler(t *testing.T) {
	t.Run("rejects traversal attempts", func(t *testing.T) {
		_, app, _ := setupTestServer(t)

		resp := doJSON(t, app, http.MethodGet, "/media/i/..%2f..%2fetc/master.jpg", "", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.NotEqual(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("404 for unknown variant name", func(t *testing.T) {
		_, app, _ := setupTestServer(t)

		resp := doJSON(t, app, http.MethodGet, "/media/i/abcdef0123456789/other.jpg", "", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("404 for unknown hash", func(t *testing.T) {
		_, app, _ := setupTestServer(t)

		resp := doJSON(t, app, http.MethodGet, "/media/i/abcdef0123456789/master.jpg", "", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
