package fileaccess

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"path"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/storage"
)

// FetchResult is the allowed outcome of AuthorizeAndFetch: an open stream
// onto the object plus the metadata the route needs for response headers.
type FetchResult struct {
	Key           string
	Stream        io.ReadCloser
	ContentType   string
	ContentLength int64
	Rule          Rule
}

// Service is the per-request document access decision procedure:
// normalize the locator, consult the decision cache, check structural
// ownership, walk the relationship rules, cache the outcome, and on allow
// open the object in storage.
type Service struct {
	keys     *KeyNormalizer
	resolver *Resolver
	cache    DecisionCache
	storage  storage.Storage
	log      *slog.Logger
}

func NewService(keys *KeyNormalizer, resolver *Resolver, cache DecisionCache, store storage.Storage, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		keys:     keys,
		resolver: resolver,
		cache:    cache,
		storage:  store,
		log:      log,
	}
}

// Authorize resolves the access decision for the locator without touching
// storage. Returns the canonical key alongside the decision; the error is
// ErrInvalidLocator, ErrUnauthenticated, or an *AccessDeniedError.
func (s *Service) Authorize(ctx context.Context, actor Actor, locator string, mode Mode) (string, Decision, error) {
	key, ok := s.keys.Normalize(locator)
	if !ok {
		return "", Decision{}, ErrInvalidLocator
	}

	// Public objects bypass authentication, but only on the general
	// image route.
	if mode == ModeGeneralImage && IsPublicKey(key) {
		return key, allow(RulePublicObject), nil
	}

	if !actor.Authenticated() {
		return key, Decision{}, ErrUnauthenticated
	}

	if allowed, found := s.cache.Get(actor.ID, mode, key); found {
		d := Decision{Allowed: allowed}
		if !allowed {
			d.Reason = ReasonNoRelationship
			return key, d, &AccessDeniedError{Reason: d.Reason}
		}
		return key, d, nil
	}

	d := s.decide(ctx, actor, key, mode)
	// Lookup failures are transient; caching them would keep denying
	// for the full TTL after the store recovers.
	if d.Reason != ReasonLookupFailed {
		s.cache.Put(actor.ID, mode, key, d.Allowed)
	}

	s.log.Info("file access decision",
		"actor_id", actor.ID,
		"role", actor.Role,
		"key", key,
		"mode", mode,
		"allowed", d.Allowed,
		"rule", d.Rule,
		"reason", d.Reason,
	)

	if !d.Allowed {
		return key, d, &AccessDeniedError{Reason: d.Reason}
	}
	return key, d, nil
}

func (s *Service) decide(ctx context.Context, actor Actor, key string, mode Mode) Decision {
	if IsOwner(actor, key) {
		return allow(RuleKeyOwner)
	}
	return s.resolver.Resolve(ctx, actor, key, mode)
}

// AuthorizeAndFetch runs Authorize and, on allow, opens the object in the
// storage backend. Storage failures after a successful authorization are
// surfaced as ErrObjectNotFound or the backend error; they never feed
// back into the decision.
func (s *Service) AuthorizeAndFetch(ctx context.Context, actor Actor, locator string, mode Mode) (*FetchResult, error) {
	key, d, err := s.Authorize(ctx, actor, locator, mode)
	if err != nil {
		return nil, err
	}

	stream, err := s.storage.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}

	length := int64(-1)
	if size, err := s.storage.GetSize(ctx, key); err == nil {
		length = size
	}

	return &FetchResult{
		Key:           key,
		Stream:        stream,
		ContentType:   contentTypeForKey(key),
		ContentLength: length,
		Rule:          d.Rule,
	}, nil
}

func contentTypeForKey(key string) string {
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
