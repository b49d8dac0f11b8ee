package fileaccess

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
)

// fakeRelationshipStore answers each resolver question with a
// per-scenario function, defaulting to "nothing found".
type fakeRelationshipStore struct {
	appDocForApplicant   func(key, applicantID string) (bool, error)
	activeApplicantDoc   func(key, applicantID string) (*models.ApplicantDocument, error)
	appDocInstitution    func(key string) (string, bool, error)
	applicantDocByPath   func(key string) (*models.ApplicantDocument, error)
	snapshotsContain     func(institutionID, documentID string) (bool, error)
	attachmentThreadUser func(key string) (string, string, bool, error)
}

func (s *fakeRelationshipStore) ApplicationDocumentExistsForApplicant(_ context.Context, key, applicantID string) (bool, error) {
	if s.appDocForApplicant == nil {
		return false, nil
	}
	return s.appDocForApplicant(key, applicantID)
}

func (s *fakeRelationshipStore) ActiveApplicantDocument(_ context.Context, key, applicantID string) (*models.ApplicantDocument, error) {
	if s.activeApplicantDoc == nil {
		return nil, nil
	}
	return s.activeApplicantDoc(key, applicantID)
}

func (s *fakeRelationshipStore) ApplicationDocumentInstitution(_ context.Context, key string) (string, bool, error) {
	if s.appDocInstitution == nil {
		return "", false, nil
	}
	return s.appDocInstitution(key)
}

func (s *fakeRelationshipStore) ApplicantDocumentByPath(_ context.Context, key string) (*models.ApplicantDocument, error) {
	if s.applicantDocByPath == nil {
		return nil, nil
	}
	return s.applicantDocByPath(key)
}

func (s *fakeRelationshipStore) InstitutionSnapshotsContain(_ context.Context, institutionID, documentID string) (bool, error) {
	if s.snapshotsContain == nil {
		return false, nil
	}
	return s.snapshotsContain(institutionID, documentID)
}

func (s *fakeRelationshipStore) ThreadAttachmentParticipants(_ context.Context, key string) (string, string, bool, error) {
	if s.attachmentThreadUser == nil {
		return "", "", false, nil
	}
	return s.attachmentThreadUser(key)
}

var (
	applicant   = Actor{ID: "a1", Role: models.UserRoleApplicant}
	institution = Actor{ID: "u9", Role: models.UserRoleInstitution, InstitutionID: "inst1"}
	admin       = Actor{ID: "adm1", Role: models.UserRoleAdmin}
)

func TestResolveApplicantApplicationDocument(t *testing.T) {
	store := &fakeRelationshipStore{
		appDocForApplicant: func(key, applicantID string) (bool, error) {
			return key == "users/a1/applications/app1/essay.pdf" && applicantID == "a1", nil
		},
	}
	r := NewResolver(store, nil)

	d := r.Resolve(context.Background(), applicant, "users/a1/applications/app1/essay.pdf", ModeStrictDocument)
	assert.True(t, d.Allowed)
	assert.Equal(t, RuleApplicationDocumentOwner, d.Rule)
}

func TestResolveApplicantProfileDocumentRequiresActive(t *testing.T) {
	store := &fakeRelationshipStore{
		activeApplicantDoc: func(key, applicantID string) (*models.ApplicantDocument, error) {
			// Simulates an inactive document: the active-only lookup
			// finds nothing.
			return nil, nil
		},
	}
	r := NewResolver(store, nil)

	d := r.Resolve(context.Background(), applicant, "users/a1/documents/old-cv.pdf", ModeStrictDocument)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonNoRelationship, d.Reason)
}

func TestResolveInstitutionApplicationDetail(t *testing.T) {
	store := &fakeRelationshipStore{
		appDocInstitution: func(key string) (string, bool, error) {
			return "inst1", true, nil
		},
	}
	r := NewResolver(store, nil)

	d := r.Resolve(context.Background(), institution, "users/a1/applications/app1/essay.pdf", ModeStrictDocument)
	assert.True(t, d.Allowed)
	assert.Equal(t, RuleInstitutionApplication, d.Rule)
}

func TestResolveForeignInstitutionIsTerminal(t *testing.T) {
	store := &fakeRelationshipStore{
		appDocInstitution: func(key string) (string, bool, error) {
			return "inst2", true, nil
		},
		// Even a thread match must not rescue a foreign application
		// document.
		attachmentThreadUser: func(key string) (string, string, bool, error) {
			return "u9", "a1", true, nil
		},
	}
	r := NewResolver(store, nil)

	d := r.Resolve(context.Background(), institution, "users/a1/applications/app1/essay.pdf", ModeStrictDocument)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonForeignInstitution, d.Reason)
}

func TestResolveInstitutionSnapshotSurvivesSoftDelete(t *testing.T) {
	store := &fakeRelationshipStore{
		applicantDocByPath: func(key string) (*models.ApplicantDocument, error) {
			doc := &models.ApplicantDocument{ApplicantID: "a1", Path: key, Active: false}
			doc.ID = "doc1"
			return doc, nil
		},
		snapshotsContain: func(institutionID, documentID string) (bool, error) {
			return institutionID == "inst1" && documentID == "doc1", nil
		},
	}
	r := NewResolver(store, nil)

	d := r.Resolve(context.Background(), institution, "users/a1/documents/cv.pdf", ModeStrictDocument)
	assert.True(t, d.Allowed, "snapshot membership grants access regardless of the active flag")
	assert.Equal(t, RuleInstitutionSnapshot, d.Rule)
}

func TestResolveInstitutionWithoutSnapshotMembership(t *testing.T) {
	store := &fakeRelationshipStore{
		applicantDocByPath: func(key string) (*models.ApplicantDocument, error) {
			doc := &models.ApplicantDocument{ApplicantID: "a1", Path: key, Active: true}
			doc.ID = "doc1"
			return doc, nil
		},
		snapshotsContain: func(institutionID, documentID string) (bool, error) {
			return false, nil
		},
	}
	r := NewResolver(store, nil)

	d := r.Resolve(context.Background(), institution, "users/a1/documents/cv.pdf", ModeStrictDocument)
	assert.False(t, d.Allowed, "an active profile document alone gives the institution nothing")
	assert.Equal(t, ReasonNoRelationship, d.Reason)
}

func TestResolveThreadParticipant(t *testing.T) {
	store := &fakeRelationshipStore{
		attachmentThreadUser: func(key string) (string, string, bool, error) {
			return "a1", "u9", true, nil
		},
	}
	r := NewResolver(store, nil)

	d := r.Resolve(context.Background(), institution, "users/a1/messages/t1/photo.png", ModeStrictDocument)
	assert.True(t, d.Allowed)
	assert.Equal(t, RuleThreadParticipant, d.Rule)
}

func TestResolveThreadNonParticipant(t *testing.T) {
	store := &fakeRelationshipStore{
		attachmentThreadUser: func(key string) (string, string, bool, error) {
			return "a1", "a2", true, nil
		},
	}
	r := NewResolver(store, nil)

	d := r.Resolve(context.Background(), institution, "users/a1/messages/t1/photo.png", ModeStrictDocument)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonNotThreadParty, d.Reason)
}

func TestResolveThreadRejectsForeignOwnerSegment(t *testing.T) {
	store := &fakeRelationshipStore{
		attachmentThreadUser: func(key string) (string, string, bool, error) {
			return "a1", "u9", true, nil
		},
	}
	r := NewResolver(store, nil)

	// The attachment row matches, but the key claims to belong to a
	// third user.
	d := r.Resolve(context.Background(), institution, "users/a3/messages/t1/photo.png", ModeStrictDocument)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonNotThreadParty, d.Reason)
}

func TestResolveAdminStrictModeHasNoFallback(t *testing.T) {
	store := &fakeRelationshipStore{
		applicantDocByPath: func(key string) (*models.ApplicantDocument, error) {
			doc := &models.ApplicantDocument{ApplicantID: "a1", Path: key, Active: true}
			doc.ID = "doc1"
			return doc, nil
		},
	}
	r := NewResolver(store, nil)

	d := r.Resolve(context.Background(), admin, "users/a1/documents/cv.pdf", ModeStrictDocument)
	assert.False(t, d.Allowed, "strict documents are never served through the moderation fallback")
}

func TestResolveAdminGeneralModeModeration(t *testing.T) {
	store := &fakeRelationshipStore{
		applicantDocByPath: func(key string) (*models.ApplicantDocument, error) {
			doc := &models.ApplicantDocument{ApplicantID: "a1", Path: key, Active: true}
			doc.ID = "doc1"
			return doc, nil
		},
	}
	r := NewResolver(store, nil)

	d := r.Resolve(context.Background(), admin, "users/a1/documents/avatar.png", ModeGeneralImage)
	assert.True(t, d.Allowed)
	assert.Equal(t, RuleModeration, d.Rule)
}

func TestResolveAdminGeneralModeUnknownObject(t *testing.T) {
	r := NewResolver(&fakeRelationshipStore{}, nil)

	d := r.Resolve(context.Background(), admin, "users/a1/documents/avatar.png", ModeGeneralImage)
	assert.False(t, d.Allowed, "the moderation fallback covers recorded profile documents only")
}

func TestResolveUnknownRole(t *testing.T) {
	r := NewResolver(&fakeRelationshipStore{}, nil)

	d := r.Resolve(context.Background(), Actor{ID: "x", Role: "intruder"}, "users/a1/documents/cv.pdf", ModeStrictDocument)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonRoleNotPermitted, d.Reason)
}

func TestResolveFailsClosedOnStoreError(t *testing.T) {
	boom := errors.New("connection reset")

	cases := map[string]*fakeRelationshipStore{
		"applicant lookup": {
			appDocForApplicant: func(string, string) (bool, error) { return false, boom },
		},
		"institution lookup": {
			appDocInstitution: func(string) (string, bool, error) { return "", false, boom },
		},
		"snapshot lookup": {
			applicantDocByPath: func(key string) (*models.ApplicantDocument, error) {
				doc := &models.ApplicantDocument{Active: true}
				doc.ID = "doc1"
				return doc, nil
			},
			snapshotsContain: func(string, string) (bool, error) { return false, boom },
		},
		"thread lookup": {
			attachmentThreadUser: func(string) (string, string, bool, error) { return "", "", false, boom },
		},
	}

	for name, store := range cases {
		r := NewResolver(store, nil)
		actor := applicant
		if name == "institution lookup" || name == "snapshot lookup" {
			actor = institution
		}
		d := r.Resolve(context.Background(), actor, "users/a1/documents/cv.pdf", ModeStrictDocument)
		assert.False(t, d.Allowed, "%s must deny", name)
		assert.Equal(t, ReasonLookupFailed, d.Reason, "%s reason", name)
	}
}

func TestResolveLookupFailureIsTerminal(t *testing.T) {
	// The applicant lookup fails while the thread rule would match; the
	// walk must stop at the failure instead of letting a later rule
	// allow.
	store := &fakeRelationshipStore{
		appDocForApplicant: func(string, string) (bool, error) {
			return false, errors.New("db down")
		},
		attachmentThreadUser: func(string) (string, string, bool, error) {
			return "a1", "u9", true, nil
		},
	}
	r := NewResolver(store, nil)

	d := r.Resolve(context.Background(), applicant, "users/u9/messages/t1/photo.png", ModeStrictDocument)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonLookupFailed, d.Reason)
}
