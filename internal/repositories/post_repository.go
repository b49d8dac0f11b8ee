package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
)

var ErrPostNotFound = errors.New("post not found")

type PostCriteria struct {
	Type   models.PostType
	Status models.PostStatus
	Limit  int
	Offset int
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, criteria PostCriteria) ([]models.Post, int64, error)
	ListByInstitution(ctx context.Context, institutionID string) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	CloseExpired(ctx context.Context, now time.Time) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, criteria PostCriteria) ([]models.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Post{})
	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if criteria.Limit > 0 {
		query = query.Limit(criteria.Limit)
	}
	if criteria.Offset > 0 {
		query = query.Offset(criteria.Offset)
	}

	var posts []models.Post
	err := query.Order("created_at DESC").Find(&posts).Error
	return posts, total, err
}

func (r *postRepository) ListByInstitution(ctx context.Context, institutionID string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("institution_id = ?", institutionID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("status = ? AND deadline IS NOT NULL AND deadline < ?", models.PostStatusActive, now).
		Updates(map[string]interface{}{"status": models.PostStatusClosed, "updated_at": now})
	return result.RowsAffected, result.Error
}
