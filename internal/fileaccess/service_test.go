package fileaccess

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/storage"
)

// memObjectStore is an in-memory storage.Storage for service tests.
type memObjectStore struct {
	objects map[string][]byte
}

func newMemObjectStore() *memObjectStore {
	return &memObjectStore{objects: make(map[string][]byte)}
}

func (m *memObjectStore) Save(_ context.Context, path string, r io.Reader, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[path] = data
	return nil
}

func (m *memObjectStore) Get(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := m.objects[path]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memObjectStore) Delete(_ context.Context, path string) error {
	delete(m.objects, path)
	return nil
}

func (m *memObjectStore) Exists(_ context.Context, path string) (bool, error) {
	_, ok := m.objects[path]
	return ok, nil
}

func (m *memObjectStore) GetURL(_ context.Context, path string) (string, error) {
	return "mem://" + path, nil
}

func (m *memObjectStore) GetSignedURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return "mem://" + path + "?signed", nil
}

func (m *memObjectStore) GetSize(_ context.Context, path string) (int64, error) {
	data, ok := m.objects[path]
	if !ok {
		return 0, storage.ErrNotFound
	}
	return int64(len(data)), nil
}

func newTestService(store RelationshipStore, cache DecisionCache, objects *memObjectStore) *Service {
	if cache == nil {
		cache = NopDecisionCache{}
	}
	if objects == nil {
		objects = newMemObjectStore()
	}
	return NewService(NewKeyNormalizer("edumatch"), NewResolver(store, nil), cache, objects, nil)
}

func TestAuthorizeInvalidLocator(t *testing.T) {
	svc := newTestService(&fakeRelationshipStore{}, nil, nil)

	_, _, err := svc.Authorize(context.Background(), applicant, "../etc/passwd", ModeStrictDocument)
	assert.ErrorIs(t, err, ErrInvalidLocator)
}

func TestAuthorizeUnauthenticated(t *testing.T) {
	svc := newTestService(&fakeRelationshipStore{}, nil, nil)

	_, _, err := svc.Authorize(context.Background(), Actor{}, "users/a1/documents/cv.pdf", ModeStrictDocument)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthorizePublicObjectOnGeneralRoute(t *testing.T) {
	svc := newTestService(&fakeRelationshipStore{}, nil, nil)

	// Anonymous request for a public object succeeds on the image route.
	key, d, err := svc.Authorize(context.Background(), Actor{}, "public/banners/welcome.png", ModeGeneralImage)
	require.NoError(t, err)
	assert.Equal(t, "public/banners/welcome.png", key)
	assert.Equal(t, RulePublicObject, d.Rule)

	// The strict route grants no public bypass.
	_, _, err = svc.Authorize(context.Background(), Actor{}, "public/banners/welcome.png", ModeStrictDocument)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthorizeOwnerShortCircuit(t *testing.T) {
	calls := 0
	store := &fakeRelationshipStore{
		appDocForApplicant: func(string, string) (bool, error) {
			calls++
			return false, nil
		},
	}
	svc := newTestService(store, nil, nil)

	_, d, err := svc.Authorize(context.Background(), applicant, "users/a1/documents/cv.pdf", ModeStrictDocument)
	require.NoError(t, err)
	assert.Equal(t, RuleKeyOwner, d.Rule)
	assert.Zero(t, calls, "structural ownership must not consult the store")
}

func TestAuthorizeDenyIsGenericAccessDenied(t *testing.T) {
	svc := newTestService(&fakeRelationshipStore{}, nil, nil)

	_, _, err := svc.Authorize(context.Background(), applicant, "users/a2/documents/cv.pdf", ModeStrictDocument)
	reason, denied := IsAccessDenied(err)
	require.True(t, denied)
	assert.Equal(t, ReasonNoRelationship, reason)
}

func TestAuthorizeCachesDecisions(t *testing.T) {
	calls := 0
	store := &fakeRelationshipStore{
		appDocForApplicant: func(key, applicantID string) (bool, error) {
			calls++
			return true, nil
		},
	}
	svc := newTestService(store, NewMemoryDecisionCache(time.Minute), nil)

	locator := "users/a2/applications/app1/essay.pdf"
	_, _, err := svc.Authorize(context.Background(), applicant, locator, ModeStrictDocument)
	require.NoError(t, err)
	_, _, err = svc.Authorize(context.Background(), applicant, locator, ModeStrictDocument)
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "second request must be served from the cache")
}

func TestAuthorizeCacheKeyedByActor(t *testing.T) {
	calls := 0
	store := &fakeRelationshipStore{
		appDocForApplicant: func(key, applicantID string) (bool, error) {
			calls++
			return applicantID == "a1", nil
		},
	}
	svc := newTestService(store, NewMemoryDecisionCache(time.Minute), nil)

	locator := "users/a9/applications/app1/essay.pdf"
	_, _, err := svc.Authorize(context.Background(), applicant, locator, ModeStrictDocument)
	require.NoError(t, err)

	other := Actor{ID: "a2", Role: models.UserRoleApplicant}
	_, _, err = svc.Authorize(context.Background(), other, locator, ModeStrictDocument)
	_, denied := IsAccessDenied(err)
	assert.True(t, denied, "another actor must get its own decision")
	assert.Equal(t, 2, calls)
}

func TestAuthorizeAndFetchStreamsObject(t *testing.T) {
	objects := newMemObjectStore()
	objects.objects["users/a1/documents/cv.pdf"] = []byte("%PDF-1.4 test")

	svc := newTestService(&fakeRelationshipStore{}, nil, objects)

	result, err := svc.AuthorizeAndFetch(context.Background(), applicant, "s3://edumatch/users/a1/documents/cv.pdf", ModeStrictDocument)
	require.NoError(t, err)
	defer result.Stream.Close()

	assert.Equal(t, "users/a1/documents/cv.pdf", result.Key)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.Equal(t, int64(len("%PDF-1.4 test")), result.ContentLength)

	data, err := io.ReadAll(result.Stream)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(data))
}

func TestAuthorizeAndFetchMissingObject(t *testing.T) {
	svc := newTestService(&fakeRelationshipStore{}, nil, nil)

	_, err := svc.AuthorizeAndFetch(context.Background(), applicant, "users/a1/documents/ghost.pdf", ModeStrictDocument)
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestAuthorizeAndFetchDeniedBeforeStorage(t *testing.T) {
	objects := newMemObjectStore()
	objects.objects["users/a2/documents/cv.pdf"] = []byte("secret")

	svc := newTestService(&fakeRelationshipStore{}, nil, objects)

	_, err := svc.AuthorizeAndFetch(context.Background(), applicant, "users/a2/documents/cv.pdf", ModeStrictDocument)
	_, denied := IsAccessDenied(err)
	assert.True(t, denied)
}

func TestAuthorizeFailClosedNotCachedAsDeny(t *testing.T) {
	healthy := false
	store := &fakeRelationshipStore{
		appDocForApplicant: func(string, string) (bool, error) {
			if !healthy {
				return false, errors.New("db down")
			}
			return true, nil
		},
	}
	svc := newTestService(store, NewMemoryDecisionCache(time.Minute), nil)

	locator := "users/a2/applications/app1/essay.pdf"
	_, _, err := svc.Authorize(context.Background(), applicant, locator, ModeStrictDocument)
	reason, denied := IsAccessDenied(err)
	require.True(t, denied)
	assert.Equal(t, ReasonLookupFailed, reason)

	healthy = true
	_, _, err = svc.Authorize(context.Background(), applicant, locator, ModeStrictDocument)
	assert.NoError(t, err, "recovered store must be consulted again")
}
