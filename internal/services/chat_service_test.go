package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models/chat"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/repositories"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/pkg/apperrors"
)

type fakeChatRepo struct {
	threads        map[string]*chat.Thread
	messages       map[string]*chat.Message
	nextID         int
	attachmentErr  error
	deletedMessage []string
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		threads:  make(map[string]*chat.Thread),
		messages: make(map[string]*chat.Message),
	}
}

func (r *fakeChatRepo) CreateThread(_ context.Context, thread *chat.Thread) error {
	r.nextID++
	thread.ID = fmt.Sprintf("t%d", r.nextID)
	r.threads[thread.ID] = thread
	return nil
}

func (r *fakeChatRepo) FindThreadByID(_ context.Context, id string) (*chat.Thread, error) {
	thread, ok := r.threads[id]
	if !ok {
		return nil, repositories.ErrThreadNotFound
	}
	return thread, nil
}

func (r *fakeChatRepo) FindThreadBetween(_ context.Context, userA, userB string) (*chat.Thread, error) {
	for _, t := range r.threads {
		if (t.UserOneID == userA && t.UserTwoID == userB) || (t.UserOneID == userB && t.UserTwoID == userA) {
			return t, nil
		}
	}
	return nil, repositories.ErrThreadNotFound
}

func (r *fakeChatRepo) ListThreadsByUser(_ context.Context, userID string) ([]chat.Thread, error) {
	var out []chat.Thread
	for _, t := range r.threads {
		if t.HasParticipant(userID) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) CreateMessage(_ context.Context, message *chat.Message) error {
	r.nextID++
	message.ID = fmt.Sprintf("m%d", r.nextID)
	r.messages[message.ID] = message
	return nil
}

func (r *fakeChatRepo) DeleteMessage(_ context.Context, id string) error {
	delete(r.messages, id)
	r.deletedMessage = append(r.deletedMessage, id)
	return nil
}

func (r *fakeChatRepo) ListMessages(_ context.Context, threadID string, _, _ int) ([]chat.Message, error) {
	var out []chat.Message
	for _, m := range r.messages {
		if m.ThreadID == threadID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) CreateAttachment(_ context.Context, _ *chat.MessageAttachment) error {
	return r.attachmentErr
}

func (r *fakeChatRepo) FindAttachmentThread(_ context.Context, _ string) (*chat.Thread, error) {
	return nil, repositories.ErrThreadNotFound
}

// trackingUploadService records deletions so tests can verify blob
// cleanup on failure paths.
type trackingUploadService struct {
	fakeUploadService
	deleted []string
}

func (s *trackingUploadService) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

func newChatFixture() (*fakeChatRepo, *trackingUploadService, ChatService) {
	chatRepo := newFakeChatRepo()
	chatRepo.threads["t1"] = &chat.Thread{ID: "t1", UserOneID: "a1", UserTwoID: "u9"}
	uploads := &trackingUploadService{}
	svc := NewChatService(chatRepo, &fakeUserRepo{users: map[string]*models.User{}}, uploads)
	return chatRepo, uploads, svc
}

func TestSendAttachment(t *testing.T) {
	chatRepo, uploads, svc := newChatFixture()

	resp, err := svc.SendAttachment(context.Background(), "a1", "t1", "photo.png", 4, "image/png", strings.NewReader("data"))
	require.NoError(t, err)
	require.Len(t, resp.Attachments, 1)
	assert.Equal(t, "photo.png", resp.Attachments[0].FileName)
	assert.Empty(t, uploads.deleted)
	assert.Empty(t, chatRepo.deletedMessage)
}

func TestSendAttachmentRollsBackOnInsertFailure(t *testing.T) {
	chatRepo, uploads, svc := newChatFixture()
	chatRepo.attachmentErr = errors.New("insert failed")

	_, err := svc.SendAttachment(context.Background(), "a1", "t1", "photo.png", 4, "image/png", strings.NewReader("data"))
	require.Error(t, err)

	assert.Len(t, chatRepo.deletedMessage, 1, "the carrier message must be rolled back")
	assert.Len(t, uploads.deleted, 1, "the stored blob must be cleaned up")
	assert.Empty(t, chatRepo.messages, "no empty message row may survive")
}

func TestSendAttachmentRequiresMembership(t *testing.T) {
	_, uploads, svc := newChatFixture()

	_, err := svc.SendAttachment(context.Background(), "stranger", "t1", "photo.png", 4, "image/png", strings.NewReader("data"))
	assert.ErrorIs(t, err, apperrors.ErrNotThreadMember)
	assert.Empty(t, uploads.deleted)

	_, err = svc.SendAttachment(context.Background(), "a1", "missing", "photo.png", 4, "image/png", strings.NewReader("data"))
	assert.ErrorIs(t, err, apperrors.ErrThreadNotFound)
}
