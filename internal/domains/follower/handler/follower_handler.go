package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fedblog-backend/internal/domains/follower"
	"fedblog-backend/internal/shared/response"
	"fedblog-backend/pkg/logger"
)

// FollowerHandler serves the authenticated follower listing.
type FollowerHandler struct {
	repo follower.Repository
}

func NewFollowerHandler(repo follower.Repository) *FollowerHandler {
	return &FollowerHandler{repo: repo}
}

// List handles GET /followers.
func (h *FollowerHandler) List(c *gin.Context) {
	followers, err := h.repo.List(c.Request.Context())
	if err != nil {
		logger.Error("list followers", err)
		response.InternalServerError(c, "could not list followers")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"total":     len(followers),
		"followers": followers,
	})
}
