package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/services"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/services/dto"
)

type PostHandler struct {
	*BaseHandler
	postService services.PostService
}

func NewPostHandler(base *BaseHandler, postService services.PostService) *PostHandler {
	return &PostHandler{BaseHandler: base, postService: postService}
}

func (h *PostHandler) Create(c *gin.Context) {
	institutionID, ok := h.RequireInstitutionID(c)
	if !ok {
		return
	}
	var req dto.CreatePostRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	resp, err := h.postService.Create(c.Request.Context(), institutionID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PostHandler) Get(c *gin.Context) {
	resp, err := h.postService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) List(c *gin.Context) {
	var req dto.ListPostsRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}
	resp, err := h.postService.List(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) ListMine(c *gin.Context) {
	institutionID, ok := h.RequireInstitutionID(c)
	if !ok {
		return
	}
	resp, err := h.postService.ListMine(c.Request.Context(), institutionID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": resp})
}

func (h *PostHandler) Update(c *gin.Context) {
	institutionID, ok := h.RequireInstitutionID(c)
	if !ok {
		return
	}
	var req dto.UpdatePostRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	resp, err := h.postService.Update(c.Request.Context(), institutionID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
