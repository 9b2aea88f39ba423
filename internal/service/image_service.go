package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"plume/internal/config"
	"plume/internal/models"
	"plume/internal/observability"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultImageUploadDir       = "uploads/images"
	DefaultImageMaxUploadSizeMB = 10
	ImageMaxDimension           = 2048
	JPEGQuality                 = 82
	WebPQuality                 = 70
)

type UploadImageInput struct {
	UserID      uint
	Filename    string
	ContentType string
	Content     []byte
}

// UploadedImage describes a stored post image. URL is what goes into
// Post.ImageURL; WebPURL points at the smaller companion encoding.
type UploadedImage struct {
	Hash      string `json:"hash"`
	URL       string `json:"url"`
	WebPURL   string `json:"webp_url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	SizeBytes int64  `json:"size_bytes"`
}

// ImageService normalizes uploaded post images: every accepted image is
// re-encoded to a JPEG master capped at 2048px, with a WebP companion
// generated in the background. Content addressing by hash makes repeat
// uploads of the same image by the same user idempotent.
type ImageService struct {
	uploadDir          string
	maxUploadSizeBytes int64
}

func NewImageService(cfg *config.Config) *ImageService {
	uploadDir := DefaultImageUploadDir
	maxUploadSizeMB := DefaultImageMaxUploadSizeMB

	if cfg != nil {
		if cfg.ImageUploadDir != "" {
			uploadDir = cfg.ImageUploadDir
		}
		if cfg.ImageMaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.ImageMaxUploadSizeMB
		}
	}

	return &ImageService{
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

func (s *ImageService) Upload(ctx context.Context, in UploadImageInput) (*UploadedImage, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if len(in.Content) == 0 {
		observability.ImageUploads.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		observability.ImageUploads.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detectedType) {
		observability.ImageUploads.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("Invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		observability.ImageUploads.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("Invalid image file")
	}
	if !isSupportedDecodedFormat(format) {
		observability.ImageUploads.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("Unsupported image format")
	}

	master := resizeToFit(decoded, ImageMaxDimension, ImageMaxDimension)
	encodedJPG, err := encodeJPEG(master, JPEGQuality)
	if err != nil {
		observability.ImageUploads.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}

	hash := buildImageHash(in.UserID, encodedJPG)
	masterRel := filepath.Join(hash, "master.jpg")
	masterAbs := filepath.Join(s.uploadDir, masterRel)

	if _, statErr := os.Stat(masterAbs); statErr != nil {
		if writeErr := writeBytesToFile(masterAbs, encodedJPG); writeErr != nil {
			observability.ImageUploads.WithLabelValues("failed").Inc()
			return nil, models.NewInternalError(writeErr)
		}
		// WebP encoding is slower than JPEG, so the companion is produced
		// off the request path. A crash before it lands just means the
		// master serves alone.
		go s.encodeWebPCompanion(hash, master)
	}

	bounds := master.Bounds()
	observability.ImageUploads.WithLabelValues("accepted").Inc()

	return &UploadedImage{
		Hash:      hash,
		URL:       s.BuildImageURL(hash),
		WebPURL:   s.BuildWebPURL(hash),
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		SizeBytes: int64(len(encodedJPG)),
	}, nil
}

func (s *ImageService) encodeWebPCompanion(hash string, master image.Image) {
	ctx := context.Background()
	op := "image_webp_encode"
	observability.LogAsyncOperationStart(ctx, op, map[string]interface{}{"hash": hash})

	encoded, err := encodeWebP(master, WebPQuality)
	if err != nil {
		observability.LogAsyncOperationError(ctx, op, err, map[string]interface{}{"hash": hash})
		return
	}
	path := filepath.Join(s.uploadDir, hash, "master.webp")
	if err := writeBytesToFile(path, encoded); err != nil {
		observability.LogAsyncOperationError(ctx, op, err, map[string]interface{}{"hash": hash})
		return
	}
	observability.LogAsyncOperationEnd(ctx, op, map[string]interface{}{"hash": hash, "bytes": len(encoded)})
}

// ResolveForServing maps a hash and variant to a file on disk. The hash is
// validated as lowercase hex before it touches the filesystem, which rules
// out path traversal via crafted parameters.
func (s *ImageService) ResolveForServing(hash, variant string) (string, error) {
	if !isValidImageHash(hash) {
		return "", models.NewValidationError("Invalid image hash")
	}

	name := "master.jpg"
	if variant == "webp" {
		name = "master.webp"
	}

	fullPath := filepath.Join(s.uploadDir, hash, name)
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return "", models.NewNotFoundError("Image", hash)
		}
		return "", models.NewInternalError(err)
	}
	return fullPath, nil
}

func (s *ImageService) BuildImageURL(hash string) string {
	return fmt.Sprintf("/media/i/%s/master.jpg", hash)
}

func (s *ImageService) BuildWebPURL(hash string) string {
	return fmt.Sprintf("/media/i/%s/master.webp", hash)
}

// isValidImageHash checks that the hash is strictly lowercase hex (SHA-256 style).
func isValidImageHash(hash string) bool {
	if len(hash) == 0 || len(hash) > 128 {
		return false
	}
	for _, c := range hash {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func isSupportedDecodedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg", "png", "gif", "webp":
		return true
	default:
		return false
	}
}

func buildImageHash(userID uint, content []byte) string {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "%d:", userID)
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

func writeBytesToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
