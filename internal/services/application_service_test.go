package services

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/email"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/repositories"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/services/dto"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/pkg/apperrors"
)

type fakeApplicationRepo struct {
	applications map[string]*models.Application
	posts        map[string]*models.Post
	nextID       int
}

func newFakeApplicationRepo(posts map[string]*models.Post) *fakeApplicationRepo {
	return &fakeApplicationRepo{
		applications: make(map[string]*models.Application),
		posts:        posts,
	}
}

func (r *fakeApplicationRepo) Create(_ context.Context, application *models.Application) error {
	r.nextID++
	application.ID = fmt.Sprintf("app%d", r.nextID)
	r.applications[application.ID] = application
	return nil
}

// FindByID mirrors the real repository, which preloads the post.
func (r *fakeApplicationRepo) FindByID(_ context.Context, id string) (*models.Application, error) {
	application, ok := r.applications[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	application.Post = r.posts[application.PostID]
	return application, nil
}

func (r *fakeApplicationRepo) FindByApplicantAndPost(_ context.Context, applicantID, postID string) (*models.Application, error) {
	for _, a := range r.applications {
		if a.ApplicantID == applicantID && a.PostID == postID {
			return a, nil
		}
	}
	return nil, repositories.ErrApplicationNotFound
}

func (r *fakeApplicationRepo) ListByApplicant(_ context.Context, applicantID string) ([]models.Application, error) {
	var out []models.Application
	for _, a := range r.applications {
		if a.ApplicantID == applicantID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByPost(_ context.Context, postID string) ([]models.Application, error) {
	var out []models.Application
	for _, a := range r.applications {
		if a.PostID == postID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) UpdateStatus(_ context.Context, id string, status models.ApplicationStatus) error {
	application, ok := r.applications[id]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	application.Status = status
	return nil
}

type fakePostRepo struct {
	posts map[string]*models.Post
}

func (r *fakePostRepo) Create(_ context.Context, _ *models.Post) error { return nil }

func (r *fakePostRepo) FindByID(_ context.Context, id string) (*models.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	return post, nil
}

func (r *fakePostRepo) List(_ context.Context, _ repositories.PostCriteria) ([]models.Post, int64, error) {
	return nil, 0, nil
}

func (r *fakePostRepo) ListByInstitution(_ context.Context, _ string) ([]models.Post, error) {
	return nil, nil
}

func (r *fakePostRepo) Update(_ context.Context, _ *models.Post) error { return nil }

func (r *fakePostRepo) CloseExpired(_ context.Context, _ time.Time) (int64, error) { return 0, nil }

type fakeDocumentRepo struct {
	activeByApplicant map[string][]models.ApplicantDocument
}

func (r *fakeDocumentRepo) CreateApplicantDocument(_ context.Context, _ *models.ApplicantDocument) error {
	return nil
}

func (r *fakeDocumentRepo) FindApplicantDocumentByID(_ context.Context, _ string) (*models.ApplicantDocument, error) {
	return nil, repositories.ErrDocumentNotFound
}

func (r *fakeDocumentRepo) FindApplicantDocumentByPath(_ context.Context, _ string) (*models.ApplicantDocument, error) {
	return nil, repositories.ErrDocumentNotFound
}

func (r *fakeDocumentRepo) ListActiveByApplicant(_ context.Context, applicantID string) ([]models.ApplicantDocument, error) {
	return r.activeByApplicant[applicantID], nil
}

func (r *fakeDocumentRepo) SoftDelete(_ context.Context, _, _ string) error { return nil }

func (r *fakeDocumentRepo) ReferencedBySnapshot(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (r *fakeDocumentRepo) CreateApplicationDocument(_ context.Context, _ *models.ApplicationDocument) error {
	return nil
}

func (r *fakeDocumentRepo) ListByApplication(_ context.Context, _ string) ([]models.ApplicationDocument, error) {
	return nil, nil
}

func (r *fakeDocumentRepo) FindApplicationDocumentByPath(_ context.Context, _ string) (*models.ApplicationDocument, error) {
	return nil, repositories.ErrDocumentNotFound
}

type fakeSnapshotRepo struct {
	snapshots map[string]*models.ApplicationSnapshot
	creates   int
}

func newFakeSnapshotRepo() *fakeSnapshotRepo {
	return &fakeSnapshotRepo{snapshots: make(map[string]*models.ApplicationSnapshot)}
}

func (r *fakeSnapshotRepo) Create(_ context.Context, snapshot *models.ApplicationSnapshot) error {
	if _, ok := r.snapshots[snapshot.ApplicationID]; ok {
		return repositories.ErrSnapshotExists
	}
	r.creates++
	r.snapshots[snapshot.ApplicationID] = snapshot
	return nil
}

func (r *fakeSnapshotRepo) FindByApplication(_ context.Context, applicationID string) (*models.ApplicationSnapshot, error) {
	snapshot, ok := r.snapshots[applicationID]
	if !ok {
		return nil, repositories.ErrSnapshotNotFound
	}
	return snapshot, nil
}

func (r *fakeSnapshotRepo) ListByInstitution(_ context.Context, _ string) ([]models.ApplicationSnapshot, error) {
	return nil, nil
}

type fakeProfileRepo struct {
	institution *models.InstitutionProfile
}

func (r *fakeProfileRepo) CreateApplicantProfile(_ context.Context, _ *models.ApplicantProfile) error {
	return nil
}

func (r *fakeProfileRepo) CreateInstitutionProfile(_ context.Context, _ *models.InstitutionProfile) error {
	return nil
}

func (r *fakeProfileRepo) FindApplicantByUserID(_ context.Context, _ string) (*models.ApplicantProfile, error) {
	return nil, repositories.ErrProfileNotFound
}

func (r *fakeProfileRepo) FindInstitutionByUserID(_ context.Context, _ string) (*models.InstitutionProfile, error) {
	return nil, repositories.ErrProfileNotFound
}

func (r *fakeProfileRepo) FindInstitutionByID(_ context.Context, _ string) (*models.InstitutionProfile, error) {
	if r.institution == nil {
		return nil, repositories.ErrProfileNotFound
	}
	return r.institution, nil
}

func (r *fakeProfileRepo) UpdateApplicantProfile(_ context.Context, _ *models.ApplicantProfile) error {
	return nil
}

func (r *fakeProfileRepo) UpdateInstitutionProfile(_ context.Context, _ *models.InstitutionProfile) error {
	return nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func (r *fakeUserRepo) Create(_ context.Context, _ *models.User) error { return nil }

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, _ string) (*models.User, error) {
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(_ context.Context, _ string) (bool, error) { return false, nil }

func (r *fakeUserRepo) Update(_ context.Context, _ *models.User) error { return nil }

type fakeUploadService struct{}

func (fakeUploadService) SaveProfileDocument(_ context.Context, userID, fileName string, _ int64, _ string, _ io.Reader) (string, error) {
	return "users/" + userID + "/documents/" + fileName, nil
}

func (fakeUploadService) SaveApplicationDocument(_ context.Context, userID, applicationID, fileName string, _ int64, _ string, _ io.Reader) (string, error) {
	return "users/" + userID + "/applications/" + applicationID + "/" + fileName, nil
}

func (fakeUploadService) SaveMessageAttachment(_ context.Context, userID, threadID, fileName string, _ int64, _ string, _ io.Reader) (string, error) {
	return "users/" + userID + "/messages/" + threadID + "/" + fileName, nil
}

func (fakeUploadService) SavePublicAsset(_ context.Context, category, fileName string, _ int64, _ string, _ io.Reader) (string, error) {
	return "public/" + category + "/" + fileName, nil
}

func (fakeUploadService) Delete(_ context.Context, _ string) error { return nil }

type recordingEmailProvider struct {
	templates []string
}

func (p *recordingEmailProvider) Send(_ *email.Email) error { return nil }

func (p *recordingEmailProvider) SendWithTemplate(_ string, _ email.TemplateData, _ *email.Email) error {
	return nil
}

func (p *recordingEmailProvider) SendVerification(_ string, _ string) error { return nil }

func (p *recordingEmailProvider) SendTemplate(_ []string, _ string, templateName string, _ email.TemplateData) error {
	p.templates = append(p.templates, templateName)
	return nil
}

func (p *recordingEmailProvider) Validate() error { return nil }

func (p *recordingEmailProvider) Close() error { return nil }

type applicationFixture struct {
	applications *fakeApplicationRepo
	posts        *fakePostRepo
	documents    *fakeDocumentRepo
	snapshots    *fakeSnapshotRepo
	emails       *recordingEmailProvider
	service      ApplicationService
}

func newApplicationFixture() *applicationFixture {
	deadline := time.Now().Add(24 * time.Hour)
	posts := map[string]*models.Post{
		"p1": {
			BaseModel:     models.BaseModel{ID: "p1"},
			InstitutionID: "inst1",
			Type:          models.PostTypeProgram,
			Title:         "MSc Computer Science",
			Deadline:      &deadline,
			Status:        models.PostStatusActive,
		},
	}
	f := &applicationFixture{
		applications: newFakeApplicationRepo(posts),
		posts:        &fakePostRepo{posts: posts},
		documents: &fakeDocumentRepo{activeByApplicant: map[string][]models.ApplicantDocument{
			"a1": {
				{BaseModel: models.BaseModel{ID: "d1"}},
				{BaseModel: models.BaseModel{ID: "d2"}},
			},
		}},
		snapshots: newFakeSnapshotRepo(),
		emails:    &recordingEmailProvider{},
	}
	f.service = NewApplicationService(
		f.applications,
		f.posts,
		f.documents,
		f.snapshots,
		&fakeProfileRepo{institution: &models.InstitutionProfile{ContactEmail: "admissions@uni.edu"}},
		&fakeUserRepo{users: map[string]*models.User{
			"a1": {BaseModel: models.BaseModel{ID: "a1"}, Email: "a1@mail.test"},
		}},
		fakeUploadService{},
		f.emails,
	)
	return f
}

func TestSubmitFreezesProfileDocuments(t *testing.T) {
	f := newApplicationFixture()

	resp, err := f.service.Submit(context.Background(), "a1", &dto.SubmitApplicationRequest{PostID: "p1"})
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationStatusSubmitted, resp.Status)
	assert.ElementsMatch(t, []string{"d1", "d2"}, resp.SnapshotDocumentIDs)
	assert.Equal(t, 1, f.snapshots.creates)
	assert.Equal(t, []string{"application_received"}, f.emails.templates)

	snapshot, err := f.snapshots.FindByApplication(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.True(t, snapshot.ContainsDocument("d1"))
}

func TestSubmitRejectsDuplicate(t *testing.T) {
	f := newApplicationFixture()

	_, err := f.service.Submit(context.Background(), "a1", &dto.SubmitApplicationRequest{PostID: "p1"})
	require.NoError(t, err)

	_, err = f.service.Submit(context.Background(), "a1", &dto.SubmitApplicationRequest{PostID: "p1"})
	assert.ErrorIs(t, err, apperrors.ErrApplicationExists)
	assert.Equal(t, 1, f.snapshots.creates, "a rejected submission must not touch the snapshot")
}

func TestSubmitRejectsExpiredPost(t *testing.T) {
	f := newApplicationFixture()
	past := time.Now().Add(-time.Hour)
	f.posts.posts["p1"].Deadline = &past

	_, err := f.service.Submit(context.Background(), "a1", &dto.SubmitApplicationRequest{PostID: "p1"})
	assert.ErrorIs(t, err, apperrors.ErrPostExpired)
}

func TestSubmitRejectsInactivePost(t *testing.T) {
	f := newApplicationFixture()
	f.posts.posts["p1"].Status = models.PostStatusClosed

	_, err := f.service.Submit(context.Background(), "a1", &dto.SubmitApplicationRequest{PostID: "p1"})
	assert.ErrorIs(t, err, apperrors.ErrPostNotActive)
}

func TestSubmitWithEmptyProfile(t *testing.T) {
	f := newApplicationFixture()

	resp, err := f.service.Submit(context.Background(), "a2", &dto.SubmitApplicationRequest{PostID: "p1"})
	require.NoError(t, err)
	assert.Empty(t, resp.SnapshotDocumentIDs)
	assert.Equal(t, 1, f.snapshots.creates, "an empty profile still gets its snapshot frozen")
}

func TestUpdateStatusOwnershipAndTransitions(t *testing.T) {
	f := newApplicationFixture()
	resp, err := f.service.Submit(context.Background(), "a1", &dto.SubmitApplicationRequest{PostID: "p1"})
	require.NoError(t, err)

	err = f.service.UpdateStatus(context.Background(), "inst2", resp.ID, models.ApplicationStatusAccepted)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	err = f.service.UpdateStatus(context.Background(), "inst1", resp.ID, models.ApplicationStatusSubmitted)
	assert.ErrorIs(t, err, apperrors.ErrInvalidApplicationStatus)

	err = f.service.UpdateStatus(context.Background(), "inst1", resp.ID, models.ApplicationStatusAccepted)
	require.NoError(t, err)

	got, err := f.service.Get(context.Background(), "a1", models.UserRoleApplicant, "", resp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, got.Status)
	assert.Equal(t, []string{"application_received", "application_status_changed"}, f.emails.templates)
}

func TestGetAccessControl(t *testing.T) {
	f := newApplicationFixture()
	resp, err := f.service.Submit(context.Background(), "a1", &dto.SubmitApplicationRequest{PostID: "p1"})
	require.NoError(t, err)

	_, err = f.service.Get(context.Background(), "a2", models.UserRoleApplicant, "", resp.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.service.Get(context.Background(), "u9", models.UserRoleInstitution, "inst1", resp.ID)
	assert.NoError(t, err)

	_, err = f.service.Get(context.Background(), "adm1", models.UserRoleAdmin, "", resp.ID)
	assert.NoError(t, err)
}
