package handler

import (
	"errors"
	"net/http"

	"github.com/Smirnov-studio/property-store/internal/apierror"
	"github.com/Smirnov-studio/property-store/internal/dto"
	"github.com/Smirnov-studio/property-store/internal/middleware"
	"github.com/Smirnov-studio/property-store/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		case errors.Is(err, service.ErrAccountDisabled):
			c.JSON(http.StatusForbidden, apierror.New(err.Error()))
		default:
			_ = c.Error(err)
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProfile GET /api/auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("User not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateProfile PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("User not found"))
			return
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ChangePassword PUT /api/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ChangePassword(c.Request.Context(), userID, req); err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, apierror.New("User not found"))
		default:
			_ = c.Error(err)
		}
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password changed"})
}

func (h *AuthHandler) callerID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
		return uuid.Nil, false
	}
	return userID, true
}
