package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/snapsite/snapsite-backend/internal/application"
	"github.com/snapsite/snapsite-backend/internal/interface/middleware"
	"github.com/snapsite/snapsite-backend/pkg/response"
	"github.com/snapsite/snapsite-backend/pkg/validation"
)

type ExportHandler struct {
	Svc    *application.TemplateService
	Logger *logrus.Logger
}

func NewExportHandler(svc *application.TemplateService, logger *logrus.Logger) *ExportHandler {
	return &ExportHandler{Svc: svc, Logger: logger}
}

type recordExportRequest struct {
	Name       string `json:"name" binding:"required"`
	ExportType string `json:"exportType" binding:"required,oneof=html react nextjs"`
	Status     string `json:"status" binding:"omitempty,oneof=completed failed"`
	FileSize   *int64 `json:"fileSize"`
	Layout     []any  `json:"layout"`
}

// Record POST /api/templates/exported
func (h *ExportHandler) Record(c *gin.Context) {
	var req recordExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "name and export type are required", validation.ToDetails(err))
		return
	}
	userID := c.GetString(middleware.CtxUserIDKey)

	e, err := h.Svc.RecordExport(c.Request.Context(), userID, application.RecordExportInput{
		Name:       req.Name,
		ExportType: req.ExportType,
		Status:     req.Status,
		FileSize:   req.FileSize,
		Layout:     req.Layout,
	})
	if err != nil {
		h.Logger.WithError(err).Error("record export failed")
		response.Error(c, http.StatusInternalServerError, "server error recording export", nil)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"export": exportJSON(e)}, "export recorded")
}

// List GET /api/templates/exported
func (h *ExportHandler) List(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)

	es, err := h.Svc.ListExports(c.Request.Context(), userID)
	if err != nil {
		h.Logger.WithError(err).Error("list exports failed")
		response.Error(c, http.StatusInternalServerError, "server error fetching exported templates", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exports": exportsJSON(es)}, "export history")
}

// Delete DELETE /api/templates/exported/:id
func (h *ExportHandler) Delete(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)

	if err := h.Svc.DeleteExport(c.Request.Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, application.ErrExportNotFound) {
			response.Error(c, http.StatusNotFound, "export not found", nil)
			return
		}
		h.Logger.WithError(err).Error("delete export failed")
		response.Error(c, http.StatusInternalServerError, "server error deleting export", nil)
		return
	}

	response.Success[any](c, http.StatusOK, nil, "export deleted")
}
