package services

import (
	"context"
	"errors"
	"time"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/repositories"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/services/dto"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/pkg/apperrors"
)

type PostService interface {
	Create(ctx context.Context, institutionID string, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	Get(ctx context.Context, id string) (*dto.PostResponse, error)
	List(ctx context.Context, req *dto.ListPostsRequest) (*dto.PostListResponse, error)
	ListMine(ctx context.Context, institutionID string) ([]dto.PostResponse, error)
	Update(ctx context.Context, institutionID, id string, req *dto.UpdatePostRequest) (*dto.PostResponse, error)
	CloseExpired(ctx context.Context) (int64, error)
}

type postService struct {
	postRepo    repositories.PostRepository
	profileRepo repositories.ProfileRepository
}

func NewPostService(postRepo repositories.PostRepository, profileRepo repositories.ProfileRepository) PostService {
	return &postService{postRepo: postRepo, profileRepo: profileRepo}
}

func (s *postService) Create(ctx context.Context, institutionID string, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	if !models.ValidPostType(req.Type) {
		return nil, apperrors.ErrInvalidPostType
	}
	if req.Deadline != nil && req.Deadline.Before(time.Now()) {
		return nil, apperrors.NewBadRequestError("deadline cannot be in the past")
	}

	post := &models.Post{
		InstitutionID: institutionID,
		Type:          req.Type,
		Title:         req.Title,
		Description:   req.Description,
		Deadline:      req.Deadline,
		Status:        models.PostStatusActive,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return postResponse(post), nil
}

func (s *postService) Get(ctx context.Context, id string) (*dto.PostResponse, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return postResponse(post), nil
}

func (s *postService) List(ctx context.Context, req *dto.ListPostsRequest) (*dto.PostListResponse, error) {
	criteria := repositories.PostCriteria{
		Type:   req.Type,
		Status: req.Status,
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if criteria.Status == "" {
		criteria.Status = models.PostStatusActive
	}
	if criteria.Limit <= 0 || criteria.Limit > 100 {
		criteria.Limit = 20
	}

	posts, total, err := s.postRepo.List(ctx, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.PostListResponse{Total: total, Posts: make([]dto.PostResponse, 0, len(posts))}
	for i := range posts {
		resp.Posts = append(resp.Posts, *postResponse(&posts[i]))
	}
	return resp, nil
}

func (s *postService) ListMine(ctx context.Context, institutionID string) ([]dto.PostResponse, error) {
	posts, err := s.postRepo.ListByInstitution(ctx, institutionID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, *postResponse(&posts[i]))
	}
	return out, nil
}

func (s *postService) Update(ctx context.Context, institutionID, id string, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if post.InstitutionID != institutionID {
		return nil, apperrors.ErrForbidden
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Description != nil {
		post.Description = *req.Description
	}
	if req.Deadline != nil {
		post.Deadline = req.Deadline
	}
	if req.Status != nil {
		post.Status = *req.Status
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return postResponse(post), nil
}

func (s *postService) CloseExpired(ctx context.Context) (int64, error) {
	return s.postRepo.CloseExpired(ctx, time.Now())
}

func postResponse(post *models.Post) *dto.PostResponse {
	resp := &dto.PostResponse{
		ID:            post.ID,
		InstitutionID: post.InstitutionID,
		Type:          post.Type,
		Title:         post.Title,
		Description:   post.Description,
		Deadline:      post.Deadline,
		Status:        post.Status,
		CreatedAt:     post.CreatedAt,
	}
	if post.Institution != nil {
		resp.Institution = post.Institution.Name
	}
	return resp
}
