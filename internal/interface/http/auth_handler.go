package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/snapsite/snapsite-backend/internal/application"
	"github.com/snapsite/snapsite-backend/pkg/response"
	"github.com/snapsite/snapsite-backend/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type signupRequest struct {
	Name            string `json:"name" binding:"required"`
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "missing required fields", validation.ToDetails(err))
		return
	}

	u, token, _, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{
		Name:            req.Name,
		Username:        req.Username,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrPasswordMismatch):
			response.Error(c, http.StatusBadRequest, "passwords do not match", nil)
		case errors.Is(err, application.ErrEmailTaken):
			response.Error(c, http.StatusBadRequest, "email already in use", nil)
		case errors.Is(err, application.ErrUsernameTaken):
			response.Error(c, http.StatusBadRequest, "username already in use", nil)
		default:
			h.Logger.WithError(err).Error("signup failed")
			response.Error(c, http.StatusInternalServerError, "server error creating account", nil)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"token": token, "user": userJSON(u)}, "account created")
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "email and password are required", validation.ToDetails(err))
		return
	}

	u, token, _, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, application.ErrWrongPassword):
			response.Error(c, http.StatusBadRequest, "wrong password", nil)
		default:
			h.Logger.WithError(err).Error("login failed")
			response.Error(c, http.StatusInternalServerError, "server error during login", nil)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token, "user": userJSON(u)}, "login success")
}
