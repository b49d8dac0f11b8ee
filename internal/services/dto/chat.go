package dto

import "time"

type OpenThreadRequest struct {
	RecipientID string `json:"recipientId" binding:"required,uuid"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"max=5000"`
}

type ThreadResponse struct {
	ID        string    `json:"id"`
	UserOneID string    `json:"userOneId"`
	UserTwoID string    `json:"userTwoId"`
	CreatedAt time.Time `json:"createdAt"`
}

type MessageResponse struct {
	ID          string               `json:"id"`
	ThreadID    string               `json:"threadId"`
	SenderID    string               `json:"senderId"`
	Content     string               `json:"content,omitempty"`
	Attachments []AttachmentResponse `json:"attachments,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
}

type AttachmentResponse struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	Path     string `json:"path"`
	MimeType string `json:"mimeType,omitempty"`
	Size     int64  `json:"size"`
}
