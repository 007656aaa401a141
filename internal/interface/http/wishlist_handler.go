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

type WishlistHandler struct {
	Svc    *application.TemplateService
	Logger *logrus.Logger
}

func NewWishlistHandler(svc *application.TemplateService, logger *logrus.Logger) *WishlistHandler {
	return &WishlistHandler{Svc: svc, Logger: logger}
}

type addWishlistRequest struct {
	TemplateSlug      string `json:"templateSlug" binding:"required"`
	TemplateName      string `json:"templateName" binding:"required"`
	TemplateThumbnail string `json:"templateThumbnail"`
	TemplateCategory  string `json:"templateCategory"`
}

// Add POST /api/templates/wishlist
func (h *WishlistHandler) Add(c *gin.Context) {
	var req addWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "template slug and name are required", validation.ToDetails(err))
		return
	}
	userID := c.GetString(middleware.CtxUserIDKey)

	e, err := h.Svc.AddToWishlist(c.Request.Context(), userID, application.WishlistInput{
		TemplateSlug:      req.TemplateSlug,
		TemplateName:      req.TemplateName,
		TemplateThumbnail: req.TemplateThumbnail,
		TemplateCategory:  req.TemplateCategory,
	})
	if err != nil {
		if errors.Is(err, application.ErrAlreadyInWishlist) {
			response.Error(c, http.StatusBadRequest, "template already in wishlist", nil)
			return
		}
		h.Logger.WithError(err).Error("add to wishlist failed")
		response.Error(c, http.StatusInternalServerError, "server error adding to wishlist", nil)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"wishlistItem": wishlistJSON(e)}, "added to wishlist")
}

// Remove DELETE /api/templates/wishlist/:templateSlug
func (h *WishlistHandler) Remove(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	slug := c.Param("templateSlug")

	if err := h.Svc.RemoveFromWishlist(c.Request.Context(), userID, slug); err != nil {
		if errors.Is(err, application.ErrWishlistNotFound) {
			response.Error(c, http.StatusNotFound, "template not found in wishlist", nil)
			return
		}
		h.Logger.WithError(err).Error("remove from wishlist failed")
		response.Error(c, http.StatusInternalServerError, "server error removing from wishlist", nil)
		return
	}

	response.Success[any](c, http.StatusOK, nil, "removed from wishlist")
}

// List GET /api/templates/wishlist
func (h *WishlistHandler) List(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)

	entries, err := h.Svc.ListWishlist(c.Request.Context(), userID)
	if err != nil {
		h.Logger.WithError(err).Error("list wishlist failed")
		response.Error(c, http.StatusInternalServerError, "server error fetching wishlist", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"wishlist": wishlistsJSON(entries)}, "wishlist")
}

// Check GET /api/templates/wishlist/check/:templateSlug
func (h *WishlistHandler) Check(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	slug := c.Param("templateSlug")

	in, err := h.Svc.InWishlist(c.Request.Context(), userID, slug)
	if err != nil {
		h.Logger.WithError(err).Error("check wishlist failed")
		response.Error(c, http.StatusInternalServerError, "server error checking wishlist status", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"inWishlist": in}, "wishlist status")
}
