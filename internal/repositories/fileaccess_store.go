package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/fileaccess"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models/chat"
)

// FileAccessStore answers the relationship questions the access resolver
// asks. It is the only read path the resolver has into the database, so
// every query here is scoped as narrowly as the question itself.
type FileAccessStore struct {
	db *gorm.DB
}

func NewFileAccessStore(db *gorm.DB) *FileAccessStore {
	return &FileAccessStore{db: db}
}

var _ fileaccess.RelationshipStore = (*FileAccessStore)(nil)

func (s *FileAccessStore) ApplicationDocumentExistsForApplicant(ctx context.Context, key, applicantID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.ApplicationDocument{}).
		Joins("JOIN applications a ON a.id = application_documents.application_id").
		Where("application_documents.path = ? AND a.applicant_id = ?", key, applicantID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *FileAccessStore) ActiveApplicantDocument(ctx context.Context, key, applicantID string) (*models.ApplicantDocument, error) {
	var doc models.ApplicantDocument
	err := s.db.WithContext(ctx).
		Where("path = ? AND applicant_id = ? AND active = ?", key, applicantID, true).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (s *FileAccessStore) ApplicationDocumentInstitution(ctx context.Context, key string) (string, bool, error) {
	var row struct {
		InstitutionID string
	}
	err := s.db.WithContext(ctx).Model(&models.ApplicationDocument{}).
		Select("p.institution_id").
		Joins("JOIN applications a ON a.id = application_documents.application_id").
		Joins("JOIN posts p ON p.id = a.post_id").
		Where("application_documents.path = ?", key).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return row.InstitutionID, true, nil
}

func (s *FileAccessStore) ApplicantDocumentByPath(ctx context.Context, key string) (*models.ApplicantDocument, error) {
	var doc models.ApplicantDocument
	err := s.db.WithContext(ctx).Where("path = ?", key).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// InstitutionSnapshotsContain scopes the candidate snapshots to the
// institution's own applications in SQL, then tests membership against the
// frozen id lists in Go. Snapshot contents are immutable JSON, so the
// membership test never touches the live document rows.
func (s *FileAccessStore) InstitutionSnapshotsContain(ctx context.Context, institutionID, documentID string) (bool, error) {
	var snapshots []models.ApplicationSnapshot
	err := s.db.WithContext(ctx).
		Joins("JOIN applications a ON a.id = application_snapshots.application_id").
		Joins("JOIN posts p ON p.id = a.post_id").
		Where("p.institution_id = ?", institutionID).
		Find(&snapshots).Error
	if err != nil {
		return false, err
	}
	for i := range snapshots {
		if snapshots[i].ContainsDocument(documentID) {
			return true, nil
		}
	}
	return false, nil
}

func (s *FileAccessStore) ThreadAttachmentParticipants(ctx context.Context, key string) (string, string, bool, error) {
	messageIDs := s.db.Table("chat.message_attachments").
		Select("message_id").
		Where("path = ?", key)
	threadIDs := s.db.Table("chat.messages").
		Select("thread_id").
		Where("id IN (?)", messageIDs)

	var thread chat.Thread
	err := s.db.WithContext(ctx).
		Where("id IN (?)", threadIDs).
		First(&thread).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", false, nil
		}
		return "", "", false, err
	}
	return thread.UserOneID, thread.UserTwoID, true, nil
}
