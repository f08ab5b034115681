// Package http exposes the identity operations as a JSON/form HTTP API.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/model"
	"github.com/dtroode/identity-server/internal/service"
	"github.com/dtroode/identity-server/internal/validator"
)

// InvalidCredentialsMessage is the only message a failed login ever returns.
const InvalidCredentialsMessage = "Invalid username or password"

// Handler wires HTTP routes to the identity services.
type Handler struct {
	registration   model.RegistrationService
	authentication model.AuthenticationService
	logger         *logger.Logger
}

// NewHandler creates a Handler.
func NewHandler(
	registration model.RegistrationService,
	authentication model.AuthenticationService,
	logger *logger.Logger,
) *Handler {
	return &Handler{
		registration:   registration,
		authentication: authentication,
		logger:         logger,
	}
}

// RegisterRoutes mounts the identity endpoints on router.
func (h *Handler) RegisterRoutes(router gin.IRoutes) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

type registerRequest struct {
	Username             string `json:"username" form:"username"`
	Email                string `json:"email" form:"email"`
	Password             string `json:"password" form:"password"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation"`
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	err := h.registration.Register(c.Request.Context(), model.RegisterRequest{
		Username:             req.Username,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		h.logger.Info("Identity HTTP handler: registration rejected",
			"username", req.Username,
			"error", err.Error())
		writeError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	ok, err := h.authentication.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Error("Identity HTTP handler: login failed",
			"username", req.Username,
			"error", err.Error())
		writeError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": InvalidCredentialsMessage})
		return
	}

	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error) {
	var verr *validator.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, service.ErrPasswordMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrPasswordMismatch.Error(), "field": "password_confirmation"})
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": service.ErrUsernameTaken.Error(), "field": validator.FieldUsername})
	case errors.Is(err, service.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable, try again later"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
