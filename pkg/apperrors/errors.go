package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the application error carried from services up to the HTTP
// boundary.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is wraps the standard errors.Is
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predefined errors
var (
	// Authentication
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Access denied", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)

	// Users
	ErrUserNotFound       = New(CodeNotFound, "User not found", http.StatusNotFound)
	ErrEmailAlreadyExists = New(CodeAlreadyExists, "Email already exists", http.StatusConflict)
	ErrUserSuspended      = New(CodeForbidden, "User account suspended", http.StatusForbidden)
	ErrProfileNotFound    = New(CodeNotFound, "Profile not found", http.StatusNotFound)
	ErrInvalidUserRole    = New(CodeValidationFailed, "Invalid user role", http.StatusBadRequest)
	ErrWeakPassword       = New(CodeValidationFailed, "Password must be at least 8 characters", http.StatusBadRequest)

	// Validation
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)

	// Posts
	ErrPostNotFound    = New(CodeNotFound, "Post not found", http.StatusNotFound)
	ErrPostNotActive   = New(CodeInvalidStatus, "Post is not accepting applications", http.StatusBadRequest)
	ErrPostExpired     = New(CodeInvalidStatus, "Post deadline has passed", http.StatusBadRequest)
	ErrInvalidPostType = New(CodeValidationFailed, "Invalid post type", http.StatusBadRequest)

	// Applications
	ErrApplicationNotFound      = New(CodeNotFound, "Application not found", http.StatusNotFound)
	ErrApplicationExists        = New(CodeAlreadyExists, "Application already submitted for this post", http.StatusConflict)
	ErrCannotApplyToOwnPost     = New(CodeInvalidOperation, "Cannot apply to your own post", http.StatusBadRequest)
	ErrInvalidApplicationStatus = New(CodeInvalidStatus, "Invalid application status", http.StatusBadRequest)
	ErrNoUpdateRequested        = New(CodeInvalidStatus, "No update was requested for this application", http.StatusBadRequest)

	// Documents and files
	ErrDocumentNotFound = New(CodeNotFound, "Document not found", http.StatusNotFound)
	ErrFileNotFound     = New(CodeNotFound, "File not found", http.StatusNotFound)
	ErrInvalidLocator   = New(CodeInvalidLocator, "Invalid file locator", http.StatusBadRequest)
	ErrFileTooLarge     = New(CodeFileTooLarge, "File too large", http.StatusBadRequest)
	ErrInvalidFileType  = New(CodeInvalidFileType, "Invalid file type", http.StatusBadRequest)

	// Messaging
	ErrThreadNotFound  = New(CodeNotFound, "Thread not found", http.StatusNotFound)
	ErrMessageNotFound = New(CodeNotFound, "Message not found", http.StatusNotFound)
	ErrNotThreadMember = New(CodeForbidden, "User is not a participant in this thread", http.StatusForbidden)
	ErrSelfThread      = New(CodeInvalidOperation, "Cannot open a thread with yourself", http.StatusBadRequest)
)

// Helper factories

func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func NewConflictError(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict)
}

func NewInternalError(message string) *AppError {
	return New(CodeInternalError, message, http.StatusInternalServerError)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NewNotFoundError(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}
