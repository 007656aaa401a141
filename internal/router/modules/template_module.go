package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/snapsite/snapsite-backend/internal/interface/http"
	"github.com/snapsite/snapsite-backend/internal/interface/middleware"
	"github.com/snapsite/snapsite-backend/pkg/helpers"
)

// TemplateModule wires the wishlist, saved-template, and export routes under
// /api/templates. Listing public templates is open; fetching a single
// template resolves identity when a token is present but never requires one;
// everything else is bearer-gated.
type TemplateModule struct {
	Wishlist  *handlers.WishlistHandler
	Templates *handlers.TemplateHandler
	Exports   *handlers.ExportHandler
	JWT       *helpers.JWTManager
}

func NewTemplateModule(wl *handlers.WishlistHandler, tpl *handlers.TemplateHandler, exp *handlers.ExportHandler, jwt *helpers.JWTManager) *TemplateModule {
	return &TemplateModule{Wishlist: wl, Templates: tpl, Exports: exp, JWT: jwt}
}

func (m *TemplateModule) Register(rg *gin.RouterGroup) {
	tpl := rg.Group("/templates")

	// Public
	tpl.GET("/saved/all", m.Templates.ListPublic)
	tpl.GET("/saved/:id", middleware.OptionalAuth(m.JWT), m.Templates.Get)

	// Protected
	auth := tpl.Group("/")
	auth.Use(middleware.RequireAuth(m.JWT))
	{
		auth.POST("/wishlist", m.Wishlist.Add)
		auth.DELETE("/wishlist/:templateSlug", m.Wishlist.Remove)
		auth.GET("/wishlist", m.Wishlist.List)
		auth.GET("/wishlist/check/:templateSlug", m.Wishlist.Check)

		auth.POST("/saved", m.Templates.Save)
		auth.GET("/saved", m.Templates.ListOwn)
		auth.PUT("/saved/:id", m.Templates.Update)
		auth.PATCH("/saved/:id/visibility", m.Templates.UpdateVisibility)
		auth.PATCH("/saved/:id/thumbnail", m.Templates.UpdateThumbnail)
		auth.DELETE("/saved/:id", m.Templates.Delete)

		auth.POST("/exported", m.Exports.Record)
		auth.GET("/exported", m.Exports.List)
		auth.DELETE("/exported/:id", m.Exports.Delete)
	}
}
