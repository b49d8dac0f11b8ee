package services

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/email"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/logger"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/repositories"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/services/dto"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/pkg/apperrors"
)

type ApplicationService interface {
	// Submit creates the application and freezes the applicant's active
	// profile documents into a snapshot. The snapshot is written exactly
	// once and never updated afterwards.
	Submit(ctx context.Context, applicantID string, req *dto.SubmitApplicationRequest) (*dto.ApplicationResponse, error)
	Get(ctx context.Context, requesterID string, requesterRole models.UserRole, institutionID, applicationID string) (*dto.ApplicationResponse, error)
	ListMine(ctx context.Context, applicantID string) ([]dto.ApplicationResponse, error)
	ListForPost(ctx context.Context, institutionID, postID string) ([]dto.ApplicationResponse, error)
	UpdateStatus(ctx context.Context, institutionID, applicationID string, status models.ApplicationStatus) error
	// AddDocument attaches a file to the application. Allowed at
	// submission and while the institution has requested updates.
	AddDocument(ctx context.Context, applicantID, applicationID, fileName string, size int64, contentType string, r io.Reader) (*dto.DocumentResponse, error)
}

type applicationService struct {
	applicationRepo repositories.ApplicationRepository
	postRepo        repositories.PostRepository
	documentRepo    repositories.DocumentRepository
	snapshotRepo    repositories.SnapshotRepository
	profileRepo     repositories.ProfileRepository
	userRepo        repositories.UserRepository
	uploads         UploadService
	emailProvider   email.Provider
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	postRepo repositories.PostRepository,
	documentRepo repositories.DocumentRepository,
	snapshotRepo repositories.SnapshotRepository,
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	uploads UploadService,
	emailProvider email.Provider,
) ApplicationService {
	return &applicationService{
		applicationRepo: applicationRepo,
		postRepo:        postRepo,
		documentRepo:    documentRepo,
		snapshotRepo:    snapshotRepo,
		profileRepo:     profileRepo,
		userRepo:        userRepo,
		uploads:         uploads,
		emailProvider:   emailProvider,
	}
}

func (s *applicationService) Submit(ctx context.Context, applicantID string, req *dto.SubmitApplicationRequest) (*dto.ApplicationResponse, error) {
	post, err := s.postRepo.FindByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if post.Status != models.PostStatusActive {
		return nil, apperrors.ErrPostNotActive
	}
	if post.Deadline != nil && post.Deadline.Before(time.Now()) {
		return nil, apperrors.ErrPostExpired
	}

	if _, err := s.applicationRepo.FindByApplicantAndPost(ctx, applicantID, req.PostID); err == nil {
		return nil, apperrors.ErrApplicationExists
	} else if !errors.Is(err, repositories.ErrApplicationNotFound) {
		return nil, apperrors.InternalError(err)
	}

	application := &models.Application{
		PostID:      req.PostID,
		ApplicantID: applicantID,
		Status:      models.ApplicationStatusSubmitted,
		Message:     req.Message,
	}
	if err := s.applicationRepo.Create(ctx, application); err != nil {
		return nil, apperrors.InternalError(err)
	}

	snapshotIDs, err := s.freezeProfileDocuments(ctx, applicantID, application.ID)
	if err != nil {
		return nil, err
	}

	s.notifyInstitution(ctx, post, application)

	return &dto.ApplicationResponse{
		ID:                  application.ID,
		PostID:              application.PostID,
		PostTitle:           post.Title,
		ApplicantID:         application.ApplicantID,
		Status:              application.Status,
		Message:             application.Message,
		SnapshotDocumentIDs: snapshotIDs,
		CreatedAt:           application.CreatedAt,
	}, nil
}

// freezeProfileDocuments records the ids of the applicant's currently
// active profile documents. The institution reviews against this frozen
// list even if the applicant later edits or removes documents.
func (s *applicationService) freezeProfileDocuments(ctx context.Context, applicantID, applicationID string) ([]string, error) {
	docs, err := s.documentRepo.ListActiveByApplicant(ctx, applicantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	ids := make([]string, 0, len(docs))
	for i := range docs {
		ids = append(ids, docs[i].ID)
	}

	snapshot := &models.ApplicationSnapshot{ApplicationID: applicationID}
	if err := snapshot.SetDocumentIDs(ids); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.snapshotRepo.Create(ctx, snapshot); err != nil {
		if errors.Is(err, repositories.ErrSnapshotExists) {
			return nil, apperrors.NewConflictError("application already has a snapshot")
		}
		return nil, apperrors.InternalError(err)
	}
	return ids, nil
}

func (s *applicationService) notifyInstitution(ctx context.Context, post *models.Post, application *models.Application) {
	institution, err := s.profileRepo.FindInstitutionByID(ctx, post.InstitutionID)
	if err != nil {
		logger.WithError(err).Warn("could not resolve institution for notification", "post_id", post.ID)
		return
	}
	data := email.TemplateData{
		"PostTitle":     post.Title,
		"ApplicationID": application.ID,
	}
	if err := s.emailProvider.SendTemplate([]string{institution.ContactEmail}, "New application received", "application_received", data); err != nil {
		logger.WithError(err).Warn("failed to send application notification", "post_id", post.ID)
	}
}

func (s *applicationService) Get(ctx context.Context, requesterID string, requesterRole models.UserRole, institutionID, applicationID string) (*dto.ApplicationResponse, error) {
	application, err := s.findApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	switch {
	case application.ApplicantID == requesterID:
	case requesterRole == models.UserRoleInstitution && application.Post != nil && application.Post.InstitutionID == institutionID:
	case requesterRole == models.UserRoleAdmin || requesterRole == models.UserRoleModerator:
	default:
		return nil, apperrors.ErrForbidden
	}

	return s.applicationResponse(ctx, application), nil
}

func (s *applicationService) ListMine(ctx context.Context, applicantID string) ([]dto.ApplicationResponse, error) {
	applications, err := s.applicationRepo.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		out = append(out, *s.applicationResponse(ctx, &applications[i]))
	}
	return out, nil
}

func (s *applicationService) ListForPost(ctx context.Context, institutionID, postID string) ([]dto.ApplicationResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if post.InstitutionID != institutionID {
		return nil, apperrors.ErrForbidden
	}

	applications, err := s.applicationRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		out = append(out, *s.applicationResponse(ctx, &applications[i]))
	}
	return out, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, institutionID, applicationID string, status models.ApplicationStatus) error {
	if !models.ValidApplicationStatus(status) || status == models.ApplicationStatusSubmitted {
		return apperrors.ErrInvalidApplicationStatus
	}

	application, err := s.findApplication(ctx, applicationID)
	if err != nil {
		return err
	}
	if application.Post == nil || application.Post.InstitutionID != institutionID {
		return apperrors.ErrForbidden
	}

	if err := s.applicationRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		return apperrors.InternalError(err)
	}

	s.notifyApplicant(ctx, application, status)
	return nil
}

func (s *applicationService) notifyApplicant(ctx context.Context, application *models.Application, status models.ApplicationStatus) {
	applicant, err := s.userRepo.FindByID(ctx, application.ApplicantID)
	if err != nil {
		logger.WithError(err).Warn("could not resolve applicant for notification", "application_id", application.ID)
		return
	}
	data := email.TemplateData{
		"PostTitle": application.Post.Title,
		"Status":    string(status),
	}
	if err := s.emailProvider.SendTemplate([]string{applicant.Email}, "Application status updated", "application_status_changed", data); err != nil {
		logger.WithError(err).Warn("failed to send status notification", "application_id", application.ID)
	}
}

func (s *applicationService) AddDocument(ctx context.Context, applicantID, applicationID, fileName string, size int64, contentType string, r io.Reader) (*dto.DocumentResponse, error) {
	application, err := s.findApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if application.ApplicantID != applicantID {
		return nil, apperrors.ErrForbidden
	}
	if application.Status != models.ApplicationStatusSubmitted && application.Status != models.ApplicationStatusUpdateRequested {
		return nil, apperrors.ErrNoUpdateRequested
	}

	key, err := s.uploads.SaveApplicationDocument(ctx, applicantID, applicationID, fileName, size, contentType, r)
	if err != nil {
		return nil, err
	}

	doc := &models.ApplicationDocument{
		ApplicationID: applicationID,
		UploaderID:    applicantID,
		Name:          fileName,
		Path:          key,
		MimeType:      contentType,
		Size:          size,
	}
	if err := s.documentRepo.CreateApplicationDocument(ctx, doc); err != nil {
		if delErr := s.uploads.Delete(ctx, key); delErr != nil {
			logger.WithError(delErr).Warn("failed to clean up orphaned upload", "key", key)
		}
		return nil, apperrors.InternalError(err)
	}

	return &dto.DocumentResponse{
		ID:        doc.ID,
		Name:      doc.Name,
		Path:      doc.Path,
		MimeType:  doc.MimeType,
		Size:      doc.Size,
		CreatedAt: doc.CreatedAt,
	}, nil
}

func (s *applicationService) findApplication(ctx context.Context, id string) (*models.Application, error) {
	application, err := s.applicationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return application, nil
}

func (s *applicationService) applicationResponse(ctx context.Context, application *models.Application) *dto.ApplicationResponse {
	resp := &dto.ApplicationResponse{
		ID:          application.ID,
		PostID:      application.PostID,
		ApplicantID: application.ApplicantID,
		Status:      application.Status,
		Message:     application.Message,
		CreatedAt:   application.CreatedAt,
	}
	if application.Post != nil {
		resp.PostTitle = application.Post.Title
	}

	docs, err := s.documentRepo.ListByApplication(ctx, application.ID)
	if err == nil {
		for i := range docs {
			resp.Documents = append(resp.Documents, dto.DocumentResponse{
				ID:        docs[i].ID,
				Name:      docs[i].Name,
				Path:      docs[i].Path,
				MimeType:  docs[i].MimeType,
				Size:      docs[i].Size,
				CreatedAt: docs[i].CreatedAt,
			})
		}
	}

	if snapshot, err := s.snapshotRepo.FindByApplication(ctx, application.ID); err == nil {
		if ids, err := snapshot.DocumentIDList(); err == nil {
			resp.SnapshotDocumentIDs = ids
		}
	}
	return resp
}
