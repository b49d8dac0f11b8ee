package models

type UserStatus string
type UserRole string
type PostType string
type PostStatus string
type ApplicationStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"

	UserRoleApplicant   UserRole = "applicant"
	UserRoleInstitution UserRole = "institution"
	UserRoleAdmin       UserRole = "admin"
	UserRoleModerator   UserRole = "moderator"

	PostTypeProgram     PostType = "program"
	PostTypeScholarship PostType = "scholarship"
	PostTypeResearch    PostType = "research"

	PostStatusDraft  PostStatus = "draft"
	PostStatusActive PostStatus = "active"
	PostStatusClosed PostStatus = "closed"

	ApplicationStatusSubmitted       ApplicationStatus = "submitted"
	ApplicationStatusUnderReview     ApplicationStatus = "under_review"
	ApplicationStatusUpdateRequested ApplicationStatus = "update_requested"
	ApplicationStatusAccepted        ApplicationStatus = "accepted"
	ApplicationStatusRejected        ApplicationStatus = "rejected"
)

func ValidUserRole(r UserRole) bool {
	switch r {
	case UserRoleApplicant, UserRoleInstitution, UserRoleAdmin, UserRoleModerator:
		return true
	}
	return false
}

func ValidPostType(t PostType) bool {
	switch t {
	case PostTypeProgram, PostTypeScholarship, PostTypeResearch:
		return true
	}
	return false
}

func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationStatusSubmitted, ApplicationStatusUnderReview,
		ApplicationStatusUpdateRequested, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}
