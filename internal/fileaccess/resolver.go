package fileaccess

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
)

// RelationshipStore is the narrow query surface the resolver needs from
// the relational store. Implementations must scope searches to the given
// ids (never scan across institutions) and report absence as found=false
// or a nil document, reserving errors for genuine lookup failures.
type RelationshipStore interface {
	// ApplicationDocumentExistsForApplicant reports whether an
	// application-detail document at the key belongs to an application
	// owned by the applicant.
	ApplicationDocumentExistsForApplicant(ctx context.Context, key, applicantID string) (bool, error)

	// ActiveApplicantDocument returns the applicant's own non-deleted
	// profile document at the key, or nil when there is none.
	ActiveApplicantDocument(ctx context.Context, key, applicantID string) (*models.ApplicantDocument, error)

	// ApplicationDocumentInstitution returns the institution owning the
	// post of the application an application-detail document at the key
	// belongs to.
	ApplicationDocumentInstitution(ctx context.Context, key string) (institutionID string, found bool, err error)

	// ApplicantDocumentByPath resolves the profile document at the key
	// regardless of its active flag, or nil when there is none.
	ApplicantDocumentByPath(ctx context.Context, key string) (*models.ApplicantDocument, error)

	// InstitutionSnapshotsContain reports whether any snapshot belonging
	// to one of the institution's applications references the document.
	// The candidate set is institution-scoped before membership testing.
	InstitutionSnapshotsContain(ctx context.Context, institutionID, documentID string) (bool, error)

	// ThreadAttachmentParticipants resolves the two participants of the
	// thread whose message history actually references the key as an
	// attachment.
	ThreadAttachmentParticipants(ctx context.Context, key string) (userOne, userTwo string, found bool, err error)
}

// Resolver decides indirect access once ownership has failed: an explicit,
// ordered rule walk where the first match wins and every lookup failure
// folds into a Deny.
type Resolver struct {
	store RelationshipStore
	log   *slog.Logger
}

func NewResolver(store RelationshipStore, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{store: store, log: log}
}

// Resolve walks the access rules for the actor's role, then the shared
// thread-attachment rule, then (general-image mode only) the moderation
// fallback. A foreign-institution application-document match is a hard
// boundary: it terminates the walk without consulting later rules.
func (r *Resolver) Resolve(ctx context.Context, actor Actor, key string, mode Mode) Decision {
	var (
		d        Decision
		terminal bool
	)

	switch actor.Role {
	case models.UserRoleApplicant:
		d = r.resolveApplicant(ctx, actor, key)
	case models.UserRoleInstitution:
		d, terminal = r.resolveInstitution(ctx, actor, key)
	case models.UserRoleAdmin, models.UserRoleModerator:
		// Moderation roles have no direct relationship rules; they fall
		// through to the thread rule and the mode-dependent fallback.
		d = deny(ReasonNoRelationship)
	default:
		return deny(ReasonRoleNotPermitted)
	}
	// A failed lookup is a terminal deny: later rules must not get a
	// chance to allow what the store could not answer about.
	if d.Allowed || terminal || d.Reason == ReasonLookupFailed {
		return d
	}

	td := r.resolveThread(ctx, actor, key)
	if td.Allowed || td.Reason == ReasonLookupFailed {
		return td
	}

	if mode == ModeGeneralImage && (actor.Role == models.UserRoleAdmin || actor.Role == models.UserRoleModerator) {
		if md := r.resolveModeration(ctx, key); md.Allowed || md.Reason == ReasonLookupFailed {
			return md
		}
	}

	// Keep the most specific nearest-miss reason for the audit log.
	if td.Reason == ReasonNotThreadParty {
		return td
	}
	return d
}

// resolveApplicant covers self-access: first through submitted
// application-detail documents, then through the applicant's own active
// profile documents.
func (r *Resolver) resolveApplicant(ctx context.Context, actor Actor, key string) Decision {
	found, err := r.store.ApplicationDocumentExistsForApplicant(ctx, key, actor.ID)
	if err != nil {
		return r.failClosed(err, "application document lookup", actor, key)
	}
	if found {
		return allow(RuleApplicationDocumentOwner)
	}

	doc, err := r.store.ActiveApplicantDocument(ctx, key, actor.ID)
	if err != nil {
		return r.failClosed(err, "applicant document lookup", actor, key)
	}
	if doc != nil {
		return allow(RuleProfileDocumentOwner)
	}

	return deny(ReasonNoRelationship)
}

// resolveInstitution covers access through received applications. The two
// candidate lookups are independent and issued concurrently, then joined
// before the ordered evaluation: application-detail first, snapshot
// membership second. Snapshot access deliberately ignores the document's
// active flag so deleted-but-snapshotted documents stay visible to the
// institution that received them.
func (r *Resolver) resolveInstitution(ctx context.Context, actor Actor, key string) (Decision, bool) {
	var (
		detailInstitution string
		detailFound       bool
		doc               *models.ApplicantDocument
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detailInstitution, detailFound, err = r.store.ApplicationDocumentInstitution(gctx, key)
		return err
	})
	g.Go(func() error {
		var err error
		doc, err = r.store.ApplicantDocumentByPath(gctx, key)
		return err
	})
	if err := g.Wait(); err != nil {
		return r.failClosed(err, "institution candidate lookup", actor, key), true
	}

	if detailFound {
		if detailInstitution == actor.InstitutionID {
			return allow(RuleInstitutionApplication), false
		}
		// The document belongs to another institution's application.
		// Hard boundary: do not fall through to the snapshot or thread
		// rules.
		return deny(ReasonForeignInstitution), true
	}

	if doc != nil {
		inSnapshot, err := r.store.InstitutionSnapshotsContain(ctx, actor.InstitutionID, doc.ID)
		if err != nil {
			return r.failClosed(err, "snapshot membership lookup", actor, key), true
		}
		if inSnapshot {
			return allow(RuleInstitutionSnapshot), false
		}
	}

	return deny(ReasonNoRelationship), false
}

// resolveThread allows the two participants of the thread in which the
// key was actually sent as a message attachment. A thread merely existing
// between two users is not enough; the attachment row proves the file is
// part of that thread's message history, and the key's owner segment must
// be one of the participants.
func (r *Resolver) resolveThread(ctx context.Context, actor Actor, key string) Decision {
	userOne, userTwo, found, err := r.store.ThreadAttachmentParticipants(ctx, key)
	if err != nil {
		return r.failClosed(err, "thread attachment lookup", actor, key)
	}
	if !found {
		return deny(ReasonNoRelationship)
	}
	if actor.ID != userOne && actor.ID != userTwo {
		return deny(ReasonNotThreadParty)
	}
	if owner, ok := OwnerSegment(key); ok && owner != userOne && owner != userTwo {
		return deny(ReasonNotThreadParty)
	}
	return allow(RuleThreadParticipant)
}

// resolveModeration is the enumerated admin/moderator fallback on the
// general-image mode: profile documents only, never a blanket allow.
func (r *Resolver) resolveModeration(ctx context.Context, key string) Decision {
	doc, err := r.store.ApplicantDocumentByPath(ctx, key)
	if err != nil {
		return r.failClosed(err, "moderation document lookup", Actor{}, key)
	}
	if doc != nil {
		return allow(RuleModeration)
	}
	return deny(ReasonNoRelationship)
}

func (r *Resolver) failClosed(err error, op string, actor Actor, key string) Decision {
	r.log.Error("file access resolution failed, denying",
		"op", op,
		"actor_id", actor.ID,
		"key", key,
		"error", err,
	)
	return deny(ReasonLookupFailed)
}
