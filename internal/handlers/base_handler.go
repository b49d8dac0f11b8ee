package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/logger"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/validator"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/pkg/apperrors"
)

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBind(obj); err != nil {
		logger.CtxWithError(ctx, "failed to bind request body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

func (h *BaseHandler) BindAndValidateQuery(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWithError(ctx, "failed to bind query params", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}
	return true
}

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "service error",
			"error", appErr.Message,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
		return
	}
	logger.CtxWithError(ctx, "internal server error", err, "path", c.Request.URL.Path)
	apperrors.HandleError(c, apperrors.InternalError(err))
}

// GetAndAuthorizeUserID reads the authenticated user id set by the auth
// middleware.
func (h *BaseHandler) GetAndAuthorizeUserID(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("userID")
	if !exists {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Invalid user ID in context"))
		return "", false
	}
	return userID, true
}

// GetUserRole reads the authenticated role, defaulting to applicant when
// the middleware set nothing.
func (h *BaseHandler) GetUserRole(c *gin.Context) models.UserRole {
	roleVal, exists := c.Get("role")
	if !exists {
		return models.UserRoleApplicant
	}
	role, ok := roleVal.(models.UserRole)
	if !ok {
		return models.UserRoleApplicant
	}
	return role
}

// GetInstitutionID reads the institution profile id from the token claims.
// Empty for every non-institution account.
func (h *BaseHandler) GetInstitutionID(c *gin.Context) string {
	val, exists := c.Get("institutionID")
	if !exists {
		return ""
	}
	id, _ := val.(string)
	return id
}

// RequireInstitutionID is GetInstitutionID for endpoints that only make
// sense for institution accounts.
func (h *BaseHandler) RequireInstitutionID(c *gin.Context) (string, bool) {
	id := h.GetInstitutionID(c)
	if id == "" {
		apperrors.HandleError(c, apperrors.NewForbiddenError("Institution account required"))
		return "", false
	}
	return id, true
}

func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
