package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/snapsite/snapsite-backend/internal/application"
	"github.com/snapsite/snapsite-backend/internal/domain/repository"
	"github.com/snapsite/snapsite-backend/internal/interface/middleware"
	"github.com/snapsite/snapsite-backend/pkg/helpers"
	"github.com/snapsite/snapsite-backend/pkg/response"
	"github.com/snapsite/snapsite-backend/pkg/validation"
)

// TemplateHandler serves the saved-template routes. Create and the two
// thumbnail-bearing updates accept either JSON or multipart form bodies; a
// multipart "thumbnail" file wins over any submitted thumbnail string.
type TemplateHandler struct {
	Svc       *application.TemplateService
	Logger    *logrus.Logger
	UploadDir string
}

func NewTemplateHandler(svc *application.TemplateService, logger *logrus.Logger, uploadDir string) *TemplateHandler {
	return &TemplateHandler{Svc: svc, Logger: logger, UploadDir: uploadDir}
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// saveUploadedThumbnail stores the optional multipart thumbnail and writes the
// error response itself on failure. The bool result reports whether the
// request can proceed.
func (h *TemplateHandler) saveUploadedThumbnail(c *gin.Context) (string, bool) {
	path, err := helpers.SaveThumbnail(c, h.UploadDir)
	if err != nil {
		if errors.Is(err, helpers.ErrNotAnImage) || errors.Is(err, helpers.ErrUploadTooBig) {
			response.Error(c, http.StatusBadRequest, err.Error(), nil)
		} else {
			h.Logger.WithError(err).Error("thumbnail upload failed")
			response.Error(c, http.StatusInternalServerError, "server error saving thumbnail", nil)
		}
		return "", false
	}
	return path, true
}

type saveTemplateRequest struct {
	Name                 string `json:"name"`
	OriginalTemplateSlug string `json:"originalTemplateSlug"`
	Layout               []any  `json:"layout"`
	Thumbnail            string `json:"thumbnail"`
	IsPublic             bool   `json:"isPublic"`
}

// Save POST /api/templates/saved
func (h *TemplateHandler) Save(c *gin.Context) {
	var req saveTemplateRequest
	if isMultipart(c) {
		req.Name = c.PostForm("name")
		req.OriginalTemplateSlug = c.PostForm("originalTemplateSlug")
		req.Thumbnail = c.PostForm("thumbnail")
		req.IsPublic, _ = strconv.ParseBool(c.DefaultPostForm("isPublic", "false"))
		if raw := c.PostForm("layout"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Layout); err != nil {
				response.Error(c, http.StatusBadRequest, "invalid payload", gin.H{"layout": "must be valid JSON"})
				return
			}
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if req.Name == "" || len(req.Layout) == 0 {
		response.Error(c, http.StatusBadRequest, "name and layout are required", nil)
		return
	}

	uploaded, ok := h.saveUploadedThumbnail(c)
	if !ok {
		return
	}
	userID := c.GetString(middleware.CtxUserIDKey)

	t, err := h.Svc.SaveTemplate(c.Request.Context(), userID, application.SaveTemplateInput{
		Name:                 req.Name,
		OriginalTemplateSlug: req.OriginalTemplateSlug,
		Layout:               req.Layout,
		Thumbnail:            helpers.ResolveThumbnail(uploaded, req.Thumbnail),
		IsPublic:             req.IsPublic,
	})
	if err != nil {
		h.Logger.WithError(err).Error("save template failed")
		response.Error(c, http.StatusInternalServerError, "server error saving template", nil)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"template": templateJSON(t)}, "template saved")
}

// ListOwn GET /api/templates/saved
func (h *TemplateHandler) ListOwn(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)

	ts, err := h.Svc.OwnTemplates(c.Request.Context(), userID)
	if err != nil {
		h.Logger.WithError(err).Error("list own templates failed")
		response.Error(c, http.StatusInternalServerError, "server error fetching saved templates", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"templates": templatesJSON(ts)}, "saved templates")
}

// ListPublic GET /api/templates/saved/all
func (h *TemplateHandler) ListPublic(c *gin.Context) {
	ts, err := h.Svc.PublicTemplates(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list public templates failed")
		response.Error(c, http.StatusInternalServerError, "server error fetching saved templates", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"templates": templatesJSON(ts)}, "public templates")
}

// Get GET /api/templates/saved/:id — public templates for everyone, private
// ones only for their owner (identity comes from OptionalAuth).
func (h *TemplateHandler) Get(c *gin.Context) {
	viewerID := c.GetString(middleware.CtxUserIDKey)

	t, err := h.Svc.GetTemplate(c.Request.Context(), c.Param("id"), viewerID)
	if err != nil {
		if errors.Is(err, application.ErrTemplateNotFound) {
			response.Error(c, http.StatusNotFound, "template not found or access denied", nil)
			return
		}
		h.Logger.WithError(err).Error("get template failed")
		response.Error(c, http.StatusInternalServerError, "server error fetching template", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"template": templateJSON(t)}, "template")
}

type updateTemplateRequest struct {
	Name      *string `json:"name"`
	Layout    []any   `json:"layout"`
	Thumbnail *string `json:"thumbnail"`
	IsPublic  *bool   `json:"isPublic"`
}

func bindUpdateRequest(c *gin.Context) (*updateTemplateRequest, error) {
	var req updateTemplateRequest
	if !isMultipart(c) {
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		return &req, nil
	}
	if v, ok := c.GetPostForm("name"); ok {
		req.Name = &v
	}
	if v, ok := c.GetPostForm("thumbnail"); ok {
		req.Thumbnail = &v
	}
	if v, ok := c.GetPostForm("isPublic"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("isPublic must be a boolean")
		}
		req.IsPublic = &b
	}
	if raw, ok := c.GetPostForm("layout"); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Layout); err != nil {
			return nil, errors.New("layout must be valid JSON")
		}
	}
	return &req, nil
}

// Update PUT /api/templates/saved/:id — applies only the fields present.
func (h *TemplateHandler) Update(c *gin.Context) {
	req, err := bindUpdateRequest(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uploaded, ok := h.saveUploadedThumbnail(c)
	if !ok {
		return
	}

	patch := repository.TemplatePatch{
		Name:     req.Name,
		Layout:   req.Layout,
		IsPublic: req.IsPublic,
	}
	if uploaded != "" || req.Thumbnail != nil {
		submitted := ""
		if req.Thumbnail != nil {
			submitted = *req.Thumbnail
		}
		resolved := helpers.ResolveThumbnail(uploaded, submitted)
		patch.Thumbnail = &resolved
	}

	userID := c.GetString(middleware.CtxUserIDKey)
	t, err := h.Svc.UpdateTemplate(c.Request.Context(), c.Param("id"), userID, patch)
	if err != nil {
		if errors.Is(err, application.ErrTemplateNotFound) {
			response.Error(c, http.StatusNotFound, "template not found", nil)
			return
		}
		h.Logger.WithError(err).Error("update template failed")
		response.Error(c, http.StatusInternalServerError, "server error updating template", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"template": templateJSON(t)}, "template updated")
}

type visibilityRequest struct {
	IsPublic *bool `json:"isPublic" binding:"required"`
}

// UpdateVisibility PATCH /api/templates/saved/:id/visibility
func (h *TemplateHandler) UpdateVisibility(c *gin.Context) {
	var req visibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "isPublic must be a boolean", validation.ToDetails(err))
		return
	}

	userID := c.GetString(middleware.CtxUserIDKey)
	t, err := h.Svc.UpdateVisibility(c.Request.Context(), c.Param("id"), userID, *req.IsPublic)
	if err != nil {
		if errors.Is(err, application.ErrTemplateNotFound) {
			response.Error(c, http.StatusNotFound, "template not found", nil)
			return
		}
		h.Logger.WithError(err).Error("update visibility failed")
		response.Error(c, http.StatusInternalServerError, "server error updating visibility", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"template": templateJSON(t)}, "visibility updated")
}

// UpdateThumbnail PATCH /api/templates/saved/:id/thumbnail
func (h *TemplateHandler) UpdateThumbnail(c *gin.Context) {
	submitted := ""
	if isMultipart(c) {
		submitted = c.PostForm("thumbnail")
	} else {
		var req struct {
			Thumbnail string `json:"thumbnail"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
			return
		}
		submitted = req.Thumbnail
	}
	uploaded, ok := h.saveUploadedThumbnail(c)
	if !ok {
		return
	}

	userID := c.GetString(middleware.CtxUserIDKey)
	t, err := h.Svc.UpdateThumbnail(c.Request.Context(), c.Param("id"), userID,
		helpers.ResolveThumbnail(uploaded, submitted))
	if err != nil {
		if errors.Is(err, application.ErrTemplateNotFound) {
			response.Error(c, http.StatusNotFound, "template not found", nil)
			return
		}
		h.Logger.WithError(err).Error("update thumbnail failed")
		response.Error(c, http.StatusInternalServerError, "server error updating thumbnail", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"template": templateJSON(t)}, "thumbnail updated")
}

// Delete DELETE /api/templates/saved/:id
func (h *TemplateHandler) Delete(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)

	if err := h.Svc.DeleteTemplate(c.Request.Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, application.ErrTemplateNotFound) {
			response.Error(c, http.StatusNotFound, "template not found", nil)
			return
		}
		h.Logger.WithError(err).Error("delete template failed")
		response.Error(c, http.StatusInternalServerError, "server error deleting template", nil)
		return
	}

	response.Success[any](c, http.StatusOK, nil, "template deleted")
}
