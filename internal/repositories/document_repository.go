package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
)

var ErrDocumentNotFound = errors.New("document not found")

// DocumentRepository covers both applicant profile documents and
// application-detail documents.
type DocumentRepository interface {
	CreateApplicantDocument(ctx context.Context, doc *models.ApplicantDocument) error
	FindApplicantDocumentByID(ctx context.Context, id string) (*models.ApplicantDocument, error)
	FindApplicantDocumentByPath(ctx context.Context, path string) (*models.ApplicantDocument, error)
	ListActiveByApplicant(ctx context.Context, applicantID string) ([]models.ApplicantDocument, error)
	// SoftDelete marks the document inactive. Rows are never hard-deleted
	// because snapshots may reference them.
	SoftDelete(ctx context.Context, id, applicantID string) error
	// ReferencedBySnapshot reports whether any application snapshot has
	// the document frozen in its id list.
	ReferencedBySnapshot(ctx context.Context, documentID string) (bool, error)

	CreateApplicationDocument(ctx context.Context, doc *models.ApplicationDocument) error
	ListByApplication(ctx context.Context, applicationID string) ([]models.ApplicationDocument, error)
	FindApplicationDocumentByPath(ctx context.Context, path string) (*models.ApplicationDocument, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) CreateApplicantDocument(ctx context.Context, doc *models.ApplicantDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) FindApplicantDocumentByID(ctx context.Context, id string) (*models.ApplicantDocument, error) {
	var doc models.ApplicantDocument
	err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) FindApplicantDocumentByPath(ctx context.Context, path string) (*models.ApplicantDocument, error) {
	var doc models.ApplicantDocument
	err := r.db.WithContext(ctx).First(&doc, "path = ?", path).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) ListActiveByApplicant(ctx context.Context, applicantID string) ([]models.ApplicantDocument, error) {
	var docs []models.ApplicantDocument
	err := r.db.WithContext(ctx).
		Where("applicant_id = ? AND active = ?", applicantID, true).
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}

func (r *documentRepository) SoftDelete(ctx context.Context, id, applicantID string) error {
	result := r.db.WithContext(ctx).Model(&models.ApplicantDocument{}).
		Where("id = ? AND applicant_id = ?", id, applicantID).
		Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepository) ReferencedBySnapshot(ctx context.Context, documentID string) (bool, error) {
	raw, err := json.Marshal([]string{documentID})
	if err != nil {
		return false, err
	}
	var count int64
	err = r.db.WithContext(ctx).Model(&models.ApplicationSnapshot{}).
		Where("document_ids @> ?", string(raw)).
		Count(&count).Error
	return count > 0, err
}

func (r *documentRepository) CreateApplicationDocument(ctx context.Context, doc *models.ApplicationDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) ListByApplication(ctx context.Context, applicationID string) ([]models.ApplicationDocument, error) {
	var docs []models.ApplicationDocument
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("created_at ASC").
		Find(&docs).Error
	return docs, err
}

func (r *documentRepository) FindApplicationDocumentByPath(ctx context.Context, path string) (*models.ApplicationDocument, error) {
	var doc models.ApplicationDocument
	err := r.db.WithContext(ctx).First(&doc, "path = ?", path).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}
