package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fedblog-backend/internal/domains/blog"
	"fedblog-backend/internal/domains/federation"
	"fedblog-backend/internal/domains/follower"
	followerRepo "fedblog-backend/internal/domains/follower/repository"
	"fedblog-backend/pkg/keys"
	"fedblog-backend/pkg/kv"
)

type stubBlogService struct {
	identity *blog.Identity
}

func (s *stubBlogService) Setup(context.Context, blog.SetupRequest) (*blog.Identity, error) {
	return s.identity, nil
}

func (s *stubBlogService) Get(context.Context) (*blog.Identity, error) {
	if s.identity == nil {
		return nil, blog.ErrNoIdentity
	}
	return s.identity, nil
}

func (s *stubBlogService) VerifyCurrentPassword(context.Context, string) bool {
	return s.identity != nil
}

type recordingInbox struct {
	received []*federation.InboundActivity
	err      error
}

func (r *recordingInbox) Receive(_ context.Context, activity *federation.InboundActivity) error {
	r.received = append(r.received, activity)
	return r.err
}

func blogIdentity(t *testing.T) *blog.Identity {
	t.Helper()
	pair, err := keys.Generate()
	require.NoError(t, err)
	return &blog.Identity{
		Handle:      "alice",
		Title:       "Alice's Blog",
		Description: "posts about everything",
		Icon:        "https://ex.com/i.png",
		Image:       "https://ex.com/banner.png",
		PrivateKey:  pair.Private,
		PublicKey:   pair.Public,
		Published:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func newFederationRouter(t *testing.T, identity *blog.Identity, inbox federation.Inbox, followers follower.Repository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if followers == nil {
		followers = followerRepo.NewKVRepository(kv.NewMemoryStore())
	}
	h := NewFederationHandler(
		&stubBlogService{identity: identity},
		inbox,
		followers,
		federation.NewAddresser("https://blog.example.com"),
		"blog.example.com",
	)
	router := gin.New()
	router.GET("/.well-known/webfinger", h.WebFinger)
	router.GET("/users/:handle", h.Actor)
	router.POST("/users/:handle/inbox", h.Inbox)
	router.GET("/users/:handle/followers", h.Followers)
	return router
}

func TestWebFinger(t *testing.T) {
	router := newFederationRouter(t, blogIdentity(t), &recordingInbox{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/.well-known/webfinger?resource=acct:alice@blog.example.com", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Subject string `json:"subject"`
		Links   []struct {
			Rel  string `json:"rel"`
			Type string `json:"type"`
			Href string `json:"href"`
		} `json:"links"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "acct:alice@blog.example.com", body.Subject)
	require.Len(t, body.Links, 1)
	assert.Equal(t, "self", body.Links[0].Rel)
	assert.Equal(t, federation.ContentType, body.Links[0].Type)
	assert.Equal(t, "https://blog.example.com/users/alice", body.Links[0].Href)
}

func TestWebFingerUnknownResource(t *testing.T) {
	router := newFederationRouter(t, blogIdentity(t), &recordingInbox{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/.well-known/webfinger?resource=acct:mallory@blog.example.com", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWebFingerMissingResource(t *testing.T) {
	router := newFederationRouter(t, blogIdentity(t), &recordingInbox{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/.well-known/webfinger", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActorDocument(t *testing.T) {
	router := newFederationRouter(t, blogIdentity(t), &recordingInbox{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/alice", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/activity+json")

	var person federation.Person
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &person))
	assert.Contains(t, person.Context, federation.ContextActivityStreams)
	assert.Equal(t, "https://blog.example.com/users/alice", person.ID)
	assert.Equal(t, federation.TypePerson, person.Type)
	assert.Equal(t, "alice", person.PreferredUsername)
	assert.Equal(t, "Alice's Blog", person.Name)
	assert.Equal(t, "https://blog.example.com/users/alice/inbox", person.Inbox)
	require.NotNil(t, person.PublicKey)
	assert.Equal(t, "https://blog.example.com/users/alice#main-key", person.PublicKey.ID)
	assert.True(t, strings.HasPrefix(person.PublicKey.PublicKeyPem, "-----BEGIN PUBLIC KEY-----"))
}

func TestActorUnknownHandle(t *testing.T) {
	router := newFederationRouter(t, blogIdentity(t), &recordingInbox{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/mallory", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestActorBeforeSetup(t *testing.T) {
	router := newFederationRouter(t, nil, &recordingInbox{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/alice", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInboxAcceptsActivity(t *testing.T) {
	inbox := &recordingInbox{}
	router := newFederationRouter(t, blogIdentity(t), inbox, nil)

	body := `{"id":"https://remote.example/activities/f1","type":"Follow","actor":"https://remote.example/users/bob"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users/alice/inbox", strings.NewReader(body))
	req.Header.Set("Content-Type", federation.ContentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, inbox.received, 1)
	assert.Equal(t, federation.TypeFollow, inbox.received[0].Type)
	assert.Equal(t, "https://remote.example/users/bob", inbox.received[0].Actor)
}

func TestInboxUnsupportedActivityStillAccepted(t *testing.T) {
	inbox := &recordingInbox{err: federation.ErrUnsupportedActivity}
	router := newFederationRouter(t, blogIdentity(t), inbox, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users/alice/inbox", strings.NewReader(`{"type":"Like"}`))
	req.Header.Set("Content-Type", federation.ContentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestInboxMalformedBody(t *testing.T) {
	router := newFederationRouter(t, blogIdentity(t), &recordingInbox{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users/alice/inbox", strings.NewReader("not json"))
	req.Header.Set("Content-Type", federation.ContentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFollowersCollection(t *testing.T) {
	ctx := context.Background()
	followers := followerRepo.NewKVRepository(kv.NewMemoryStore())
	require.NoError(t, followers.Add(ctx, &follower.Follower{ActorURI: "https://a.example/u/1"}))
	require.NoError(t, followers.Add(ctx, &follower.Follower{ActorURI: "https://b.example/u/2"}))

	router := newFederationRouter(t, blogIdentity(t), &recordingInbox{}, followers)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/alice/followers", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Type       string `json:"type"`
		TotalItems int64  `json:"totalItems"`
		ID         string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "OrderedCollection", body.Type)
	assert.EqualValues(t, 2, body.TotalItems)
	assert.Equal(t, "https://blog.example.com/users/alice/followers", body.ID)
}
