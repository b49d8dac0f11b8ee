package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/services"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/services/dto"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/pkg/apperrors"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{BaseHandler: base, profileService: profileService}
}

// GetMine returns the caller's own profile, applicant or institution
// depending on the account role.
func (h *ProfileHandler) GetMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	switch h.GetUserRole(c) {
	case models.UserRoleInstitution:
		institutionID, ok := h.RequireInstitutionID(c)
		if !ok {
			return
		}
		resp, err := h.profileService.GetInstitution(c.Request.Context(), institutionID)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	default:
		resp, err := h.profileService.GetApplicant(c.Request.Context(), userID)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetInstitution returns an institution's public profile.
func (h *ProfileHandler) GetInstitution(c *gin.Context) {
	resp, err := h.profileService.GetInstitution(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) UpdateMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	switch h.GetUserRole(c) {
	case models.UserRoleInstitution:
		var req dto.UpdateInstitutionProfileRequest
		if !h.BindAndValidateJSON(c, &req) {
			return
		}
		resp, err := h.profileService.UpdateInstitution(c.Request.Context(), userID, &req)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	case models.UserRoleApplicant:
		var req dto.UpdateApplicantProfileRequest
		if !h.BindAndValidateJSON(c, &req) {
			return
		}
		resp, err := h.profileService.UpdateApplicant(c.Request.Context(), userID, &req)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	default:
		apperrors.HandleError(c, apperrors.ErrForbidden)
	}
}
