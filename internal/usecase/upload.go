package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"portfolio-site/internal/domain"
)

// MaxUploadBytes caps a single image upload.
const MaxUploadBytes = 5 << 20

var (
	allowedExtensions = map[string]bool{"jpg": true, "jpeg": true, "png": true, "webp": true, "svg": true, "gif": true}
	unsafeNameChars   = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
)

type UploadInput struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type UploadResult struct {
	Success  bool   `json:"success"`
	Path     string `json:"path"`
	FileName string `json:"fileName"`
}

// UploadImage validates an image and hands it to the blob store. Nothing is
// stored when validation fails.
func (s *Service) UploadImage(ctx context.Context, in UploadInput) (UploadResult, error) {
	if in.Body == nil || in.FileName == "" {
		return UploadResult{}, fmt.Errorf("%w: no file provided", domain.ErrValidation)
	}
	if !strings.HasPrefix(in.ContentType, "image/") {
		return UploadResult{}, fmt.Errorf("%w: file must be an image", domain.ErrValidation)
	}
	if in.Size > MaxUploadBytes {
		return UploadResult{}, fmt.Errorf("%w: file size must be less than 5MB", domain.ErrValidation)
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(in.FileName), "."))
	if !allowedExtensions[ext] {
		return UploadResult{}, fmt.Errorf("%w: invalid file format", domain.ErrValidation)
	}

	// Declared sizes can lie; read one byte past the limit to be sure.
	data, err := io.ReadAll(io.LimitReader(in.Body, MaxUploadBytes+1))
	if err != nil {
		return UploadResult{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return UploadResult{}, fmt.Errorf("%w: file size must be less than 5MB", domain.ErrValidation)
	}
	detected := mimetype.Detect(data)
	if !isImage(detected) {
		return UploadResult{}, fmt.Errorf("%w: content is %s, not an image", domain.ErrValidation, detected.String())
	}

	name := strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + unsafeNameChars.ReplaceAllString(in.FileName, "_")
	path, err := s.blobs.Put(ctx, name, bytes.NewReader(data), detected.String())
	if err != nil {
		s.log.Error("upload store failed", "file", name, "error", err)
		return UploadResult{}, err
	}
	s.log.Info("image uploaded", "file", name, "mime", detected.String(), "bytes", len(data))
	return UploadResult{Success: true, Path: path, FileName: name}, nil
}

func isImage(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") {
			return true
		}
	}
	return false
}
