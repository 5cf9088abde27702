package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"fedblog-backend/internal/domains/blog"
	"fedblog-backend/internal/domains/federation"
	"fedblog-backend/internal/shared/response"
	"fedblog-backend/pkg/jwt"
	"fedblog-backend/pkg/logger"
)

// BlogHandler serves the setup/profile API.
type BlogHandler struct {
	service      blog.Service
	synchronizer federation.Synchronizer
	jwtManager   *jwt.Manager
	tokenExpiry  time.Duration
}

func NewBlogHandler(service blog.Service, synchronizer federation.Synchronizer, jwtManager *jwt.Manager, tokenExpiry time.Duration) *BlogHandler {
	return &BlogHandler{
		service:      service,
		synchronizer: synchronizer,
		jwtManager:   jwtManager,
		tokenExpiry:  tokenExpiry,
	}
}

// Setup handles POST /setup - first-time setup. Re-running it overwrites the
// profile (guarded by the current password inside the service).
func (h *BlogHandler) Setup(c *gin.Context) {
	var req blog.SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	identity, err := h.service.Setup(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, identity.ToDTO())
}

// GetProfile handles GET /profile.
func (h *BlogHandler) GetProfile(c *gin.Context) {
	identity, err := h.service.Get(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, identity.ToDTO())
}

// UpdateProfile handles POST /profile: rewrite the identity, then fan the
// signed Update(Person) out to every follower. The request returns once
// dispatch has been initiated for all of them, not once deliveries complete.
func (h *BlogHandler) UpdateProfile(c *gin.Context) {
	var req blog.SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	identity, err := h.service.Setup(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	report, err := h.synchronizer.PublishProfileUpdate(c.Request.Context(), identity)
	if err != nil {
		// The profile is already written; surface the failed fan-out rather
		// than pretending nothing changed.
		logger.Error("publish profile update", err)
		response.ErrorResponse(c, http.StatusBadGateway, "FEDERATION_DISPATCH_FAILED",
			"profile saved but could not be announced to followers")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"profile":  identity.ToDTO(),
		"delivery": report,
	})
}

// Login handles POST /auth/login - exchanges the operator password for a
// session token.
func (h *BlogHandler) Login(c *gin.Context) {
	var req blog.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.handleError(c, err)
		return
	}

	if !h.service.VerifyCurrentPassword(c.Request.Context(), req.Password) {
		response.Unauthorized(c, "invalid password")
		return
	}

	identity, err := h.service.Get(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	token, err := h.jwtManager.GenerateToken(identity.Handle)
	if err != nil {
		response.InternalServerError(c, "could not issue token")
		return
	}

	response.Success(c, http.StatusOK, blog.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.tokenExpiry),
	})
}

// handleError maps domain errors to HTTP status codes.
func (h *BlogHandler) handleError(c *gin.Context, err error) {
	var fieldErrs validation.Errors
	switch {
	case errors.As(err, &fieldErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"one or more fields are invalid", fieldErrs)
	case errors.Is(err, blog.ErrNoIdentity):
		response.ErrorResponse(c, http.StatusNotFound, "NO_IDENTITY",
			"blog has not been set up yet")
	case errors.Is(err, blog.ErrCorruptState):
		logger.Error("corrupt identity state", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "CORRUPT_STATE",
			"stored identity cannot be read")
	default:
		logger.Error("blog handler", err)
		response.InternalServerError(c, "internal server error")
	}
}
