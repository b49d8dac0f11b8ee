package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models/chat"
)

var (
	ErrThreadNotFound     = errors.New("thread not found")
	ErrMessageNotFound    = errors.New("message not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
)

type ChatRepository interface {
	CreateThread(ctx context.Context, thread *chat.Thread) error
	FindThreadByID(ctx context.Context, id string) (*chat.Thread, error)
	FindThreadBetween(ctx context.Context, userA, userB string) (*chat.Thread, error)
	ListThreadsByUser(ctx context.Context, userID string) ([]chat.Thread, error)

	CreateMessage(ctx context.Context, message *chat.Message) error
	// DeleteMessage removes a message row; used to roll back a carrier
	// message whose attachment insert failed.
	DeleteMessage(ctx context.Context, id string) error
	ListMessages(ctx context.Context, threadID string, limit, offset int) ([]chat.Message, error)

	CreateAttachment(ctx context.Context, attachment *chat.MessageAttachment) error
	// FindAttachmentThread resolves the thread whose message history
	// references the storage path as an attachment.
	FindAttachmentThread(ctx context.Context, path string) (*chat.Thread, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateThread(ctx context.Context, thread *chat.Thread) error {
	return r.db.WithContext(ctx).Create(thread).Error
}

func (r *chatRepository) FindThreadByID(ctx context.Context, id string) (*chat.Thread, error) {
	var thread chat.Thread
	err := r.db.WithContext(ctx).First(&thread, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThreadNotFound
		}
		return nil, err
	}
	return &thread, nil
}

func (r *chatRepository) FindThreadBetween(ctx context.Context, userA, userB string) (*chat.Thread, error) {
	var thread chat.Thread
	err := r.db.WithContext(ctx).
		Where("(user_one_id = ? AND user_two_id = ?) OR (user_one_id = ? AND user_two_id = ?)",
			userA, userB, userB, userA).
		First(&thread).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThreadNotFound
		}
		return nil, err
	}
	return &thread, nil
}

func (r *chatRepository) ListThreadsByUser(ctx context.Context, userID string) ([]chat.Thread, error) {
	var threads []chat.Thread
	err := r.db.WithContext(ctx).
		Where("user_one_id = ? OR user_two_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&threads).Error
	return threads, err
}

func (r *chatRepository) CreateMessage(ctx context.Context, message *chat.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *chatRepository) DeleteMessage(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&chat.Message{}, "id = ?", id).Error
}

func (r *chatRepository) ListMessages(ctx context.Context, threadID string, limit, offset int) ([]chat.Message, error) {
	query := r.db.WithContext(ctx).
		Preload("Attachments").
		Where("thread_id = ?", threadID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var messages []chat.Message
	err := query.Find(&messages).Error
	return messages, err
}

func (r *chatRepository) CreateAttachment(ctx context.Context, attachment *chat.MessageAttachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *chatRepository) FindAttachmentThread(ctx context.Context, path string) (*chat.Thread, error) {
	messageIDs := r.db.Table("chat.message_attachments").
		Select("message_id").
		Where("path = ?", path)
	threadIDs := r.db.Table("chat.messages").
		Select("thread_id").
		Where("id IN (?)", messageIDs)

	var thread chat.Thread
	err := r.db.WithContext(ctx).
		Where("id IN (?)", threadIDs).
		First(&thread).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttachmentNotFound
		}
		return nil, err
	}
	return &thread, nil
}
