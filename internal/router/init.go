package router

import (
	"github.com/snapsite/snapsite-backend/internal/application"
	"github.com/snapsite/snapsite-backend/internal/container"
	"github.com/snapsite/snapsite-backend/internal/infrastructure/mongodb"
	handlers "github.com/snapsite/snapsite-backend/internal/interface/http"
	"github.com/snapsite/snapsite-backend/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup after the container singletons
// are in place.
func InitModules(r *Registry) {
	db := container.GetMongo()
	logger := container.GetLogger()
	cfg := container.GetConfig()

	users := mongodb.NewUserRepository(db)
	wishlist := mongodb.NewWishlistRepository(db)
	templates := mongodb.NewTemplateRepository(db)
	exports := mongodb.NewExportRepository(db)

	authSvc := application.NewAuthService(users, container.GetJWT(), logger)
	tplSvc := application.NewTemplateService(wishlist, templates, exports, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewTemplateModule(
		handlers.NewWishlistHandler(tplSvc, logger),
		handlers.NewTemplateHandler(tplSvc, logger, cfg.UploadDir),
		handlers.NewExportHandler(tplSvc, logger),
		container.GetJWT(),
	))
}
