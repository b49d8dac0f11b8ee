package dto

import (
	"time"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
)

type CreatePostRequest struct {
	Type        models.PostType `json:"type" binding:"required,is-post-type"`
	Title       string          `json:"title" binding:"required,min=3,max=200"`
	Description string          `json:"description"`
	Deadline    *time.Time      `json:"deadline"`
}

type UpdatePostRequest struct {
	Title       *string            `json:"title" binding:"omitempty,min=3,max=200"`
	Description *string            `json:"description"`
	Deadline    *time.Time         `json:"deadline"`
	Status      *models.PostStatus `json:"status" binding:"omitempty,oneof=draft active closed"`
}

type ListPostsRequest struct {
	Type   models.PostType   `form:"type"`
	Status models.PostStatus `form:"status"`
	Limit  int               `form:"limit"`
	Offset int               `form:"offset"`
}

type PostResponse struct {
	ID            string            `json:"id"`
	InstitutionID string            `json:"institutionId"`
	Institution   string            `json:"institution,omitempty"`
	Type          models.PostType   `json:"type"`
	Title         string            `json:"title"`
	Description   string            `json:"description,omitempty"`
	Deadline      *time.Time        `json:"deadline,omitempty"`
	Status        models.PostStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
}

type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
	Total int64          `json:"total"`
}
