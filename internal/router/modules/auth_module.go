package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/snapsite/snapsite-backend/internal/interface/http"
)

// AuthModule wires the public signup/login routes.
// Public: POST /api/auth/signup, POST /api/auth/login
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signup", m.Handler.Signup)
		auth.POST("/login", m.Handler.Login)
	}
}
