package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/services"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/services/dto"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/pkg/apperrors"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{BaseHandler: base, applicationService: applicationService}
}

func (h *ApplicationHandler) Submit(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.SubmitApplicationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	resp, err := h.applicationService.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	resp, err := h.applicationService.Get(c.Request.Context(), userID, h.GetUserRole(c), h.GetInstitutionID(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	resp, err := h.applicationService.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": resp})
}

func (h *ApplicationHandler) ListForPost(c *gin.Context) {
	institutionID, ok := h.RequireInstitutionID(c)
	if !ok {
		return
	}
	resp, err := h.applicationService.ListForPost(c.Request.Context(), institutionID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": resp})
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	institutionID, ok := h.RequireInstitutionID(c)
	if !ok {
		return
	}
	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	if err := h.applicationService.UpdateStatus(c.Request.Context(), institutionID, c.Param("id"), req.Status); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

func (h *ApplicationHandler) UploadDocument(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("No file provided"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	resp, err := h.applicationService.AddDocument(
		c.Request.Context(),
		userID,
		c.Param("id"),
		fileHeader.Filename,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
