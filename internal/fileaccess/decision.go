package fileaccess

// Mode selects which decision-order variant applies. The strict-document
// mode is for application documents: owner and receiving institution
// only, no moderation fallback. The general-image mode covers broader
// profile-image use and additionally serves public objects and grants
// the moderation fallback.
type Mode string

const (
	ModeStrictDocument Mode = "strict-document"
	ModeGeneralImage   Mode = "general-image"
)

// Rule identifies which access rule produced an Allow. Logged for audit;
// never surfaced in responses.
type Rule string

const (
	RuleKeyOwner                 Rule = "key_owner"
	RulePublicObject             Rule = "public_object"
	RuleApplicationDocumentOwner Rule = "application_document_owner"
	RuleProfileDocumentOwner     Rule = "profile_document_owner"
	RuleInstitutionApplication   Rule = "institution_application"
	RuleInstitutionSnapshot      Rule = "institution_snapshot"
	RuleThreadParticipant        Rule = "thread_participant"
	RuleModeration               Rule = "moderation"
)

// Reason is the internal nearest-miss code attached to a Deny. Logged for
// audit; the external response is always a generic denial so relationship
// structure cannot be enumerated.
type Reason string

const (
	ReasonNoRelationship     Reason = "no_matching_relationship"
	ReasonForeignInstitution Reason = "application_document_of_other_institution"
	ReasonNotThreadParty     Reason = "not_thread_participant"
	ReasonRoleNotPermitted   Reason = "role_not_permitted"
	ReasonLookupFailed       Reason = "lookup_failed"
)

// Decision is the outcome of access resolution. An Allow carries the rule
// that fired; a Deny carries the nearest-miss reason.
type Decision struct {
	Allowed bool
	Rule    Rule
	Reason  Reason
}

func allow(rule Rule) Decision {
	return Decision{Allowed: true, Rule: rule}
}

func deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}
