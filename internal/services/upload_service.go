package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"

	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/storage"
	"creatorhub_backend/pkg/apperrors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// maxParallelUploads ограничивает число одновременных загрузок в хранилище
const maxParallelUploads = 4

type UploadConfig struct {
	MaxFileSize  int64
	AllowedTypes []string
}

// StoredFile - загруженный файл: путь в хранилище и публичная ссылка
type StoredFile struct {
	Path string
	URL  string
}

// UploadService проверяет изображения по содержимому и сохраняет их в хранилище.
// В БД попадает только ссылка.
type UploadService interface {
	SaveProfileImage(ctx context.Context, userID string, file *multipart.FileHeader) (*StoredFile, error)
	// SavePortfolioImages сохраняет файлы параллельно, порядок результата совпадает с порядком файлов
	SavePortfolioImages(ctx context.Context, userID string, files []*multipart.FileHeader) ([]StoredFile, error)
	// Discard удаляет файлы, если операция с БД не удалась
	Discard(ctx context.Context, files ...StoredFile)
}

type uploadService struct {
	storage storage.Storage
	config  UploadConfig
}

func NewUploadService(storage storage.Storage, config UploadConfig) UploadService {
	return &uploadService{
		storage: storage,
		config:  config,
	}
}

func (s *uploadService) SaveProfileImage(ctx context.Context, userID string, file *multipart.FileHeader) (*StoredFile, error) {
	stored, err := s.save(ctx, path.Join("profiles", userID, "avatar"), file)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *uploadService) SavePortfolioImages(ctx context.Context, userID string, files []*multipart.FileHeader) ([]StoredFile, error) {
	// Валидация до записи, чтобы не сохранять часть файлов впустую
	for _, f := range files {
		if err := s.checkSize(f); err != nil {
			return nil, err
		}
	}

	results := make([]StoredFile, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelUploads)
	for i, f := range files {
		g.Go(func() error {
			stored, err := s.save(gctx, path.Join("profiles", userID, "portfolio"), f)
			if err != nil {
				return err
			}
			results[i] = stored
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		saved := make([]StoredFile, 0, len(results))
		for _, r := range results {
			if r.Path != "" {
				saved = append(saved, r)
			}
		}
		s.Discard(ctx, saved...)
		return nil, err
	}
	return results, nil
}

func (s *uploadService) Discard(ctx context.Context, files ...StoredFile) {
	for _, f := range files {
		if err := s.storage.Delete(ctx, f.Path); err != nil {
			logger.CtxWithError(ctx, "Failed to delete stored file", err, "path", f.Path)
		}
	}
}

func (s *uploadService) checkSize(file *multipart.FileHeader) error {
	if s.config.MaxFileSize > 0 && file.Size > s.config.MaxFileSize {
		return apperrors.ErrFileTooLarge
	}
	return nil
}

func (s *uploadService) save(ctx context.Context, dir string, file *multipart.FileHeader) (StoredFile, error) {
	if err := s.checkSize(file); err != nil {
		return StoredFile{}, err
	}

	src, err := file.Open()
	if err != nil {
		return StoredFile{}, apperrors.InternalError(fmt.Errorf("failed to open uploaded file: %w", err))
	}
	defer src.Close()

	// Тип определяется по содержимому, заголовок Content-Type клиента не используется
	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return StoredFile{}, apperrors.InternalError(err)
	}
	if !s.allowed(mtype) {
		return StoredFile{}, apperrors.ErrInvalidFileType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return StoredFile{}, apperrors.InternalError(err)
	}

	key := path.Join(dir, uuid.NewString()+mtype.Extension())
	if err := s.storage.Save(ctx, key, src, mtype.String()); err != nil {
		return StoredFile{}, apperrors.InternalError(fmt.Errorf("failed to save file to storage: %w", err))
	}

	return StoredFile{Path: key, URL: s.storage.GetURL(key)}, nil
}

func (s *uploadService) allowed(mtype *mimetype.MIME) bool {
	for _, t := range s.config.AllowedTypes {
		if mtype.Is(t) {
			return true
		}
	}
	return false
}

// URLs - ссылки сохраненных файлов в исходном порядке
func URLs(files []StoredFile) []string {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		urls = append(urls, f.URL)
	}
	return urls
}
