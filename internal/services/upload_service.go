package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/config"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/storage"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/pkg/apperrors"
)

// UploadService validates incoming files and writes them to storage under
// canonical keys. Every other service that accepts files goes through it,
// so key layout and validation rules live in one place.
type UploadService interface {
	// SaveProfileDocument stores an applicant profile document under
	// users/{userID}/documents/.
	SaveProfileDocument(ctx context.Context, userID, fileName string, size int64, contentType string, r io.Reader) (key string, err error)

	// SaveApplicationDocument stores a per-application file under
	// users/{userID}/applications/{applicationID}/.
	SaveApplicationDocument(ctx context.Context, userID, applicationID, fileName string, size int64, contentType string, r io.Reader) (key string, err error)

	// SaveMessageAttachment stores a chat attachment under
	// users/{userID}/messages/{threadID}/.
	SaveMessageAttachment(ctx context.Context, userID, threadID, fileName string, size int64, contentType string, r io.Reader) (key string, err error)

	// SavePublicAsset stores a shared asset under public/. Reads from
	// public/ are not authenticated, so only moderation roles may write
	// there.
	SavePublicAsset(ctx context.Context, category, fileName string, size int64, contentType string, r io.Reader) (key string, err error)

	Delete(ctx context.Context, key string) error
}

type uploadService struct {
	storage storage.Storage
	cfg     config.UploadConfig
}

func NewUploadService(st storage.Storage, cfg config.UploadConfig) UploadService {
	return &uploadService{storage: st, cfg: cfg}
}

func (s *uploadService) SaveProfileDocument(ctx context.Context, userID, fileName string, size int64, contentType string, r io.Reader) (string, error) {
	if err := s.validate(fileName, size, contentType); err != nil {
		return "", err
	}
	key := fmt.Sprintf("users/%s/documents/%s", userID, uniqueName(fileName))
	return key, s.save(ctx, key, r, contentType)
}

func (s *uploadService) SaveApplicationDocument(ctx context.Context, userID, applicationID, fileName string, size int64, contentType string, r io.Reader) (string, error) {
	if err := s.validate(fileName, size, contentType); err != nil {
		return "", err
	}
	key := fmt.Sprintf("users/%s/applications/%s/%s", userID, applicationID, uniqueName(fileName))
	return key, s.save(ctx, key, r, contentType)
}

func (s *uploadService) SaveMessageAttachment(ctx context.Context, userID, threadID, fileName string, size int64, contentType string, r io.Reader) (string, error) {
	if err := s.validate(fileName, size, contentType); err != nil {
		return "", err
	}
	key := fmt.Sprintf("users/%s/messages/%s/%s", userID, threadID, uniqueName(fileName))
	return key, s.save(ctx, key, r, contentType)
}

func (s *uploadService) SavePublicAsset(ctx context.Context, category, fileName string, size int64, contentType string, r io.Reader) (string, error) {
	if err := s.validate(fileName, size, contentType); err != nil {
		return "", err
	}
	if category == "" || strings.ContainsAny(category, "/\\.") {
		return "", apperrors.NewBadRequestError("invalid asset category")
	}
	key := fmt.Sprintf("public/%s/%s", category, uniqueName(fileName))
	return key, s.save(ctx, key, r, contentType)
}

func (s *uploadService) Delete(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

func (s *uploadService) save(ctx context.Context, key string, r io.Reader, contentType string) error {
	if err := s.storage.Save(ctx, key, r, contentType); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *uploadService) validate(fileName string, size int64, contentType string) error {
	if size <= 0 || size > s.cfg.MaxSize {
		return apperrors.ErrFileTooLarge
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	if ext == "" {
		return apperrors.ErrInvalidFileType
	}
	for _, allowed := range s.cfg.AllowedTypes {
		if ext == allowed {
			return nil
		}
	}
	return apperrors.ErrInvalidFileType
}

// uniqueName keeps the original extension but replaces the base name with
// a random id, so keys never collide and never carry user-controlled path
// segments.
func uniqueName(fileName string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(fileName))
}
