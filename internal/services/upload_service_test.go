package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"creatorhub_backend/internal/storage"
	"creatorhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

// fileHeaders собирает multipart-форму и возвращает заголовки файлов поля "files"
func fileHeaders(t *testing.T, contents ...[]byte) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for i, content := range contents {
		part, err := w.CreateFormFile("files", "file"+string(rune('a'+i)))
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["files"]
}

func newUploadFixture(t *testing.T, maxSize int64) (UploadService, *storage.LocalStorage) {
	t.Helper()
	local, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir(), BaseURL: "/media"})
	require.NoError(t, err)
	return NewUploadService(local, UploadConfig{
		MaxFileSize:  maxSize,
		AllowedTypes: []string{"image/png", "image/jpeg"},
	}), local
}

func countFiles(t *testing.T, root string) int {
	t.Helper()
	n := 0
	require.NoError(t, filepath.Walk(root, func(_ string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			n++
		}
		return err
	}))
	return n
}

func TestUploadService_SavePortfolioImagesKeepsOrder(t *testing.T) {
	svc, local := newUploadFixture(t, 1<<20)
	ctx := context.Background()

	stored, err := svc.SavePortfolioImages(ctx, "u1", fileHeaders(t, pngBytes, pngBytes, pngBytes))
	require.NoError(t, err)
	require.Len(t, stored, 3)

	urls := URLs(stored)
	for i, f := range stored {
		assert.True(t, strings.HasPrefix(f.Path, "profiles/u1/portfolio/"))
		assert.True(t, strings.HasSuffix(f.Path, ".png"))
		assert.Equal(t, "/media/"+f.Path, urls[i])
		ok, err := local.Exists(ctx, f.Path)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	svc.Discard(ctx, stored...)
	assert.Zero(t, countFiles(t, local.BasePath()))
}

func TestUploadService_RejectsByContent(t *testing.T) {
	svc, local := newUploadFixture(t, 1<<20)
	ctx := context.Background()

	files := fileHeaders(t, pngBytes, []byte("plain text pretending to be an image"))
	_, err := svc.SavePortfolioImages(ctx, "u1", files)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
	// уже сохраненные файлы удаляются
	assert.Zero(t, countFiles(t, local.BasePath()))

	stored, err := svc.SaveProfileImage(ctx, "u1", files[0])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.Path, "profiles/u1/avatar/"))
}

func TestUploadService_RejectsLargeFiles(t *testing.T) {
	svc, local := newUploadFixture(t, 10)

	_, err := svc.SavePortfolioImages(context.Background(), "u1", fileHeaders(t, pngBytes))
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
	assert.Zero(t, countFiles(t, local.BasePath()))
}
