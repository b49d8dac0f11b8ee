package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/fileaccess"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/logger"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/pkg/apperrors"
)

// FileHandler serves stored objects through the access decision service.
// Two routes share the implementation: the document route runs in strict
// mode, the image route in general mode.
type FileHandler struct {
	*BaseHandler
	access   *fileaccess.Service
	identity fileaccess.IdentityResolver
}

func NewFileHandler(base *BaseHandler, access *fileaccess.Service, identity fileaccess.IdentityResolver) *FileHandler {
	return &FileHandler{BaseHandler: base, access: access, identity: identity}
}

// ServeDocument handles GET /files/document?url=...
func (h *FileHandler) ServeDocument(c *gin.Context) {
	h.serve(c, fileaccess.ModeStrictDocument)
}

// ServeImage handles GET /files/image?url=...
func (h *FileHandler) ServeImage(c *gin.Context) {
	h.serve(c, fileaccess.ModeGeneralImage)
}

func (h *FileHandler) serve(c *gin.Context, mode fileaccess.Mode) {
	locator := c.Query("url")
	if locator == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing url parameter"))
		return
	}

	// An absent or invalid token leaves the actor empty; public objects
	// on the image route are still served.
	actor, _ := h.identity.Resolve(c.Request.Context())

	result, err := h.access.AuthorizeAndFetch(c.Request.Context(), actor, locator, mode)
	if err != nil {
		h.handleAccessError(c, err)
		return
	}
	defer result.Stream.Close()

	c.Header("Content-Type", result.ContentType)
	if result.ContentLength >= 0 {
		c.Header("Content-Length", strconv.FormatInt(result.ContentLength, 10))
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, path.Base(result.Key)))
	if mode == fileaccess.ModeGeneralImage && result.Rule == fileaccess.RulePublicObject {
		c.Header("Cache-Control", "public, max-age=3600")
	} else {
		c.Header("Cache-Control", "private, no-store")
	}

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, result.Stream); err != nil {
		// Headers are already written; all we can do is record it.
		logger.CtxWithError(c.Request.Context(), "failed to stream object", err, "key", result.Key)
	}
}

// handleAccessError maps decision errors to responses. Denials stay
// generic on purpose: the reason codes are for the audit log, not the
// client.
func (h *FileHandler) handleAccessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, fileaccess.ErrInvalidLocator):
		apperrors.HandleError(c, apperrors.ErrInvalidLocator)
	case errors.Is(err, fileaccess.ErrUnauthenticated):
		apperrors.HandleError(c, apperrors.ErrUnauthorized)
	case errors.Is(err, fileaccess.ErrObjectNotFound):
		apperrors.HandleError(c, apperrors.ErrFileNotFound)
	default:
		if _, denied := fileaccess.IsAccessDenied(err); denied {
			apperrors.HandleError(c, apperrors.ErrForbidden)
			return
		}
		h.HandleServiceError(c, err)
	}
}
