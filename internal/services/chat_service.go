package services

import (
	"context"
	"errors"
	"io"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/logger"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models/chat"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/repositories"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/services/dto"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/pkg/apperrors"
)

type ChatService interface {
	// OpenThread returns the existing thread between the two users or
	// creates one.
	OpenThread(ctx context.Context, userID, recipientID string) (*dto.ThreadResponse, error)
	ListThreads(ctx context.Context, userID string) ([]dto.ThreadResponse, error)
	SendMessage(ctx context.Context, userID, threadID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	// SendAttachment stores the file and posts a message carrying it.
	SendAttachment(ctx context.Context, userID, threadID, fileName string, size int64, contentType string, r io.Reader) (*dto.MessageResponse, error)
	ListMessages(ctx context.Context, userID, threadID string, limit, offset int) ([]dto.MessageResponse, error)
}

type chatService struct {
	chatRepo repositories.ChatRepository
	userRepo repositories.UserRepository
	uploads  UploadService
}

func NewChatService(chatRepo repositories.ChatRepository, userRepo repositories.UserRepository, uploads UploadService) ChatService {
	return &chatService{chatRepo: chatRepo, userRepo: userRepo, uploads: uploads}
}

func (s *chatService) OpenThread(ctx context.Context, userID, recipientID string) (*dto.ThreadResponse, error) {
	if userID == recipientID {
		return nil, apperrors.ErrSelfThread
	}
	if _, err := s.userRepo.FindByID(ctx, recipientID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	thread, err := s.chatRepo.FindThreadBetween(ctx, userID, recipientID)
	if err == nil {
		return threadResponse(thread), nil
	}
	if !errors.Is(err, repositories.ErrThreadNotFound) {
		return nil, apperrors.InternalError(err)
	}

	thread = &chat.Thread{UserOneID: userID, UserTwoID: recipientID}
	if err := s.chatRepo.CreateThread(ctx, thread); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return threadResponse(thread), nil
}

func (s *chatService) ListThreads(ctx context.Context, userID string) ([]dto.ThreadResponse, error) {
	threads, err := s.chatRepo.ListThreadsByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.ThreadResponse, 0, len(threads))
	for i := range threads {
		out = append(out, *threadResponse(&threads[i]))
	}
	return out, nil
}

func (s *chatService) SendMessage(ctx context.Context, userID, threadID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if req.Content == "" {
		return nil, apperrors.NewBadRequestError("message content is empty")
	}
	if _, err := s.memberThread(ctx, userID, threadID); err != nil {
		return nil, err
	}

	message := &chat.Message{
		ThreadID: threadID,
		SenderID: userID,
		Content:  req.Content,
	}
	if err := s.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return messageResponse(message), nil
}

func (s *chatService) SendAttachment(ctx context.Context, userID, threadID, fileName string, size int64, contentType string, r io.Reader) (*dto.MessageResponse, error) {
	if _, err := s.memberThread(ctx, userID, threadID); err != nil {
		return nil, err
	}

	key, err := s.uploads.SaveMessageAttachment(ctx, userID, threadID, fileName, size, contentType, r)
	if err != nil {
		return nil, err
	}

	message := &chat.Message{ThreadID: threadID, SenderID: userID}
	if err := s.chatRepo.CreateMessage(ctx, message); err != nil {
		if delErr := s.uploads.Delete(ctx, key); delErr != nil {
			logger.WithError(delErr).Warn("failed to clean up orphaned attachment", "key", key)
		}
		return nil, apperrors.InternalError(err)
	}

	attachment := &chat.MessageAttachment{
		MessageID:  message.ID,
		UploaderID: userID,
		FileName:   fileName,
		MimeType:   contentType,
		Path:       key,
		Size:       size,
	}
	if err := s.chatRepo.CreateAttachment(ctx, attachment); err != nil {
		if delErr := s.chatRepo.DeleteMessage(ctx, message.ID); delErr != nil {
			logger.WithError(delErr).Warn("failed to roll back carrier message", "message_id", message.ID)
		}
		if delErr := s.uploads.Delete(ctx, key); delErr != nil {
			logger.WithError(delErr).Warn("failed to clean up orphaned attachment", "key", key)
		}
		return nil, apperrors.InternalError(err)
	}

	message.Attachments = []chat.MessageAttachment{*attachment}
	return messageResponse(message), nil
}

func (s *chatService) ListMessages(ctx context.Context, userID, threadID string, limit, offset int) ([]dto.MessageResponse, error) {
	if _, err := s.memberThread(ctx, userID, threadID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	messages, err := s.chatRepo.ListMessages(ctx, threadID, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, *messageResponse(&messages[i]))
	}
	return out, nil
}

func (s *chatService) memberThread(ctx context.Context, userID, threadID string) (*chat.Thread, error) {
	thread, err := s.chatRepo.FindThreadByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, repositories.ErrThreadNotFound) {
			return nil, apperrors.ErrThreadNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !thread.HasParticipant(userID) {
		return nil, apperrors.ErrNotThreadMember
	}
	return thread, nil
}

func threadResponse(thread *chat.Thread) *dto.ThreadResponse {
	return &dto.ThreadResponse{
		ID:        thread.ID,
		UserOneID: thread.UserOneID,
		UserTwoID: thread.UserTwoID,
		CreatedAt: thread.CreatedAt,
	}
}

func messageResponse(message *chat.Message) *dto.MessageResponse {
	resp := &dto.MessageResponse{
		ID:        message.ID,
		ThreadID:  message.ThreadID,
		SenderID:  message.SenderID,
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
	}
	for i := range message.Attachments {
		a := &message.Attachments[i]
		resp.Attachments = append(resp.Attachments, dto.AttachmentResponse{
			ID:       a.ID,
			FileName: a.FileName,
			Path:     a.Path,
			MimeType: a.MimeType,
			Size:     a.Size,
		})
	}
	return resp
}
