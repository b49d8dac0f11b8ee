package services

import (
	"context"
	"errors"
	"io"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/logger"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/repositories"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/services/dto"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/pkg/apperrors"
)

// DocumentService manages applicant profile documents (transcripts, CVs,
// certificates). Application-scoped files are handled by the application
// service.
type DocumentService interface {
	Upload(ctx context.Context, applicantID, fileName string, size int64, contentType string, r io.Reader) (*dto.DocumentResponse, error)
	List(ctx context.Context, applicantID string) ([]dto.DocumentResponse, error)
	// Delete soft-deletes the document. The stored file is removed only
	// when no submitted application has it frozen in a snapshot.
	Delete(ctx context.Context, applicantID, documentID string) error
}

type documentService struct {
	documentRepo repositories.DocumentRepository
	snapshotRepo repositories.SnapshotRepository
	uploads      UploadService
}

func NewDocumentService(
	documentRepo repositories.DocumentRepository,
	snapshotRepo repositories.SnapshotRepository,
	uploads UploadService,
) DocumentService {
	return &documentService{
		documentRepo: documentRepo,
		snapshotRepo: snapshotRepo,
		uploads:      uploads,
	}
}

func (s *documentService) Upload(ctx context.Context, applicantID, fileName string, size int64, contentType string, r io.Reader) (*dto.DocumentResponse, error) {
	key, err := s.uploads.SaveProfileDocument(ctx, applicantID, fileName, size, contentType, r)
	if err != nil {
		return nil, err
	}

	doc := &models.ApplicantDocument{
		ApplicantID: applicantID,
		Name:        fileName,
		Path:        key,
		MimeType:    contentType,
		Size:        size,
		Active:      true,
	}
	if err := s.documentRepo.CreateApplicantDocument(ctx, doc); err != nil {
		if delErr := s.uploads.Delete(ctx, key); delErr != nil {
			logger.WithError(delErr).Warn("failed to clean up orphaned upload", "key", key)
		}
		return nil, apperrors.InternalError(err)
	}
	return documentResponse(doc), nil
}

func (s *documentService) List(ctx context.Context, applicantID string) ([]dto.DocumentResponse, error) {
	docs, err := s.documentRepo.ListActiveByApplicant(ctx, applicantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		out = append(out, *documentResponse(&docs[i]))
	}
	return out, nil
}

func (s *documentService) Delete(ctx context.Context, applicantID, documentID string) error {
	doc, err := s.documentRepo.FindApplicantDocumentByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			return apperrors.ErrDocumentNotFound
		}
		return apperrors.InternalError(err)
	}
	if doc.ApplicantID != applicantID {
		return apperrors.ErrForbidden
	}

	if err := s.documentRepo.SoftDelete(ctx, documentID, applicantID); err != nil {
		return apperrors.InternalError(err)
	}

	// The database row always survives, but the blob itself can go once
	// no snapshot references the document.
	snapshotted, err := s.documentRepo.ReferencedBySnapshot(ctx, documentID)
	if err != nil {
		logger.WithError(err).Warn("could not check snapshot references, keeping blob", "document_id", documentID)
		return nil
	}
	if !snapshotted {
		if err := s.uploads.Delete(ctx, doc.Path); err != nil {
			logger.WithError(err).Warn("failed to delete stored file", "key", doc.Path)
		}
	}
	return nil
}

func documentResponse(doc *models.ApplicantDocument) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		ID:        doc.ID,
		Name:      doc.Name,
		Path:      doc.Path,
		MimeType:  doc.MimeType,
		Size:      doc.Size,
		CreatedAt: doc.CreatedAt,
	}
}
