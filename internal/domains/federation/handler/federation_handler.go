package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fedblog-backend/internal/domains/blog"
	"fedblog-backend/internal/domains/federation"
	"fedblog-backend/internal/domains/follower"
	"fedblog-backend/pkg/logger"
)

// FederationHandler serves the endpoints remote servers talk to: webfinger
// discovery, the actor document, the inbox, and the followers collection.
type FederationHandler struct {
	blogs     blog.Service
	inbox     federation.Inbox
	followers follower.Repository
	addresser *federation.Addresser
	domain    string
}

func NewFederationHandler(blogs blog.Service, inbox federation.Inbox, followers follower.Repository, addresser *federation.Addresser, domain string) *FederationHandler {
	return &FederationHandler{
		blogs:     blogs,
		inbox:     inbox,
		followers: followers,
		addresser: addresser,
		domain:    domain,
	}
}

type webFingerResponse struct {
	Subject string          `json:"subject"`
	Links   []webFingerLink `json:"links"`
}

type webFingerLink struct {
	Rel  string `json:"rel"`
	Type string `json:"type"`
	Href string `json:"href"`
}

// WebFinger handles GET /.well-known/webfinger?resource=acct:handle@domain
func (h *FederationHandler) WebFinger(c *gin.Context) {
	resource := c.Query("resource")
	if resource == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing resource parameter"})
		return
	}

	identity, err := h.blogs.Get(c.Request.Context())
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	if resource != h.addresser.Subject(identity.Handle, h.domain) {
		c.Status(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, webFingerResponse{
		Subject: resource,
		Links: []webFingerLink{
			{
				Rel:  "self",
				Type: federation.ContentType,
				Href: h.addresser.ActorURI(identity.Handle),
			},
		},
	})
}

// Actor handles GET /users/:handle - the ActivityPub actor document.
func (h *FederationHandler) Actor(c *gin.Context) {
	identity, ok := h.matchIdentity(c)
	if !ok {
		return
	}

	person, err := federation.BuildPerson(identity, h.addresser)
	if err != nil {
		logger.Error("build actor document", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	person.Context = []string{federation.ContextActivityStreams, federation.ContextSecurity}

	c.Header("Content-Type", federation.ContentType)
	c.JSON(http.StatusOK, person)
}

// Inbox handles POST /users/:handle/inbox.
func (h *FederationHandler) Inbox(c *gin.Context) {
	if _, ok := h.matchIdentity(c); !ok {
		return
	}

	var activity federation.InboundActivity
	if err := c.ShouldBindJSON(&activity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity"})
		return
	}

	if err := h.inbox.Receive(c.Request.Context(), &activity); err != nil {
		// Unknown activity types are acknowledged and dropped; erroring
		// would just make well-behaved remote servers retry them forever.
		if errors.Is(err, federation.ErrUnsupportedActivity) {
			logger.Warn("ignoring activity", map[string]interface{}{
				"type":  activity.Type,
				"actor": activity.Actor,
			})
			c.Status(http.StatusAccepted)
			return
		}
		logger.Error("inbox", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusAccepted)
}

// Followers handles GET /users/:handle/followers - collection size only,
// member actors are not enumerated publicly.
func (h *FederationHandler) Followers(c *gin.Context) {
	identity, ok := h.matchIdentity(c)
	if !ok {
		return
	}

	total, err := h.followers.Count(c.Request.Context())
	if err != nil {
		logger.Error("count followers", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", federation.ContentType)
	c.JSON(http.StatusOK, gin.H{
		"@context":   federation.ContextActivityStreams,
		"id":         h.addresser.FollowersURI(identity.Handle),
		"type":       "OrderedCollection",
		"totalItems": total,
	})
}

// matchIdentity resolves the configured identity and checks the :handle
// parameter names it. Writes the error response itself on failure.
func (h *FederationHandler) matchIdentity(c *gin.Context) (*blog.Identity, bool) {
	identity, err := h.blogs.Get(c.Request.Context())
	if err != nil {
		if errors.Is(err, blog.ErrNoIdentity) {
			c.Status(http.StatusNotFound)
		} else {
			logger.Error("load identity", err)
			c.Status(http.StatusInternalServerError)
		}
		return nil, false
	}
	if c.Param("handle") != identity.Handle {
		c.Status(http.StatusNotFound)
		return nil, false
	}
	return identity, true
}
