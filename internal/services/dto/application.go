package dto

import (
	"time"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
)

type SubmitApplicationRequest struct {
	PostID  string `json:"postId" binding:"required,uuid"`
	Message string `json:"message" binding:"max=2000"`
}

type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required,oneof=under_review update_requested accepted rejected"`
}

type ApplicationResponse struct {
	ID          string                   `json:"id"`
	PostID      string                   `json:"postId"`
	PostTitle   string                   `json:"postTitle,omitempty"`
	ApplicantID string                   `json:"applicantId"`
	Status      models.ApplicationStatus `json:"status"`
	Message     string                   `json:"message,omitempty"`
	Documents   []DocumentResponse       `json:"documents,omitempty"`
	// SnapshotDocumentIDs lists the profile documents frozen at
	// submission time.
	SnapshotDocumentIDs []string  `json:"snapshotDocumentIds,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}
