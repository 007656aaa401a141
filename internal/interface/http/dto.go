package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/snapsite/snapsite-backend/internal/domain/entity"
)

// JSON shapes mirror the field names the front-end already consumes.

func userJSON(u *entity.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"name":      u.Name,
		"username":  u.Username,
		"email":     u.Email,
		"phone":     u.Phone,
		"createdAt": u.CreatedAt,
		"updatedAt": u.UpdatedAt,
	}
}

func ownerJSON(o *entity.UserSummary) gin.H {
	if o == nil {
		return nil
	}
	return gin.H{
		"id":       o.ID,
		"name":     o.Name,
		"username": o.Username,
		"email":    o.Email,
	}
}

func templateJSON(t *entity.SavedTemplate) gin.H {
	// user is the joined owner projection on read paths and falls back to
	// the raw id right after a write.
	var user any = t.UserID
	if t.Owner != nil {
		user = ownerJSON(t.Owner)
	}
	return gin.H{
		"id":                   t.ID,
		"user":                 user,
		"name":                 t.Name,
		"originalTemplateSlug": t.OriginalTemplateSlug,
		"layout":               t.Layout,
		"thumbnail":            t.Thumbnail,
		"isPublic":             t.IsPublic,
		"createdAt":            t.CreatedAt,
		"updatedAt":            t.UpdatedAt,
	}
}

func templatesJSON(ts []entity.SavedTemplate) []gin.H {
	out := make([]gin.H, 0, len(ts))
	for i := range ts {
		out = append(out, templateJSON(&ts[i]))
	}
	return out
}

func wishlistJSON(e *entity.WishlistEntry) gin.H {
	return gin.H{
		"id":                e.ID,
		"user":              e.UserID,
		"templateSlug":      e.TemplateSlug,
		"templateName":      e.TemplateName,
		"templateThumbnail": e.TemplateThumbnail,
		"templateCategory":  e.TemplateCategory,
		"createdAt":         e.CreatedAt,
		"updatedAt":         e.UpdatedAt,
	}
}

func wishlistsJSON(es []entity.WishlistEntry) []gin.H {
	out := make([]gin.H, 0, len(es))
	for i := range es {
		out = append(out, wishlistJSON(&es[i]))
	}
	return out
}

func exportJSON(e *entity.ExportedTemplate) gin.H {
	return gin.H{
		"id":         e.ID,
		"user":       e.UserID,
		"name":       e.Name,
		"exportType": e.ExportType,
		"status":     e.Status,
		"fileSize":   e.FileSize,
		"layout":     e.Layout,
		"createdAt":  e.CreatedAt,
		"updatedAt":  e.UpdatedAt,
	}
}

func exportsJSON(es []entity.ExportedTemplate) []gin.H {
	out := make([]gin.H, 0, len(es))
	for i := range es {
		out = append(out, exportJSON(&es[i]))
	}
	return out
}
