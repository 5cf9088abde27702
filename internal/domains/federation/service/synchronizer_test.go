package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fedblog-backend/internal/domains/blog"
	"fedblog-backend/internal/domains/federation"
	"fedblog-backend/internal/domains/follower"
	followerRepo "fedblog-backend/internal/domains/follower/repository"
	"fedblog-backend/pkg/keys"
	"fedblog-backend/pkg/kv"
)

type fakeTransport struct {
	sender     string
	recipients []*follower.Follower
	activity   *federation.Activity
	calls      int
}

func (f *fakeTransport) SendActivity(_ context.Context, sender string, recipients []*follower.Follower, activity *federation.Activity) (*federation.DeliveryReport, error) {
	f.calls++
	f.sender = sender
	f.recipients = recipients
	f.activity = activity
	return &federation.DeliveryReport{
		Recipients: len(recipients),
		Dispatched: len(recipients),
	}, nil
}

func testIdentity(t *testing.T) *blog.Identity {
	t.Helper()
	pair, err := keys.Generate()
	require.NoError(t, err)
	return &blog.Identity{
		Handle:      "alice",
		Title:       "Alice's Blog",
		Description: "hi",
		Icon:        "https://ex.com/i.png",
		Image:       "https://ex.com/banner.unknownext",
		PrivateKey:  pair.Private,
		PublicKey:   pair.Public,
		Published:   time.Now().UTC(),
	}
}

func newSyncFixture(t *testing.T) (federation.Synchronizer, follower.Repository, *fakeTransport) {
	t.Helper()
	repo := followerRepo.NewKVRepository(kv.NewMemoryStore())
	transport := &fakeTransport{}
	addresser := federation.NewAddresser("https://blog.example.com")
	return NewSynchronizer(repo, transport, addresser), repo, transport
}

func TestPublishProfileUpdateNoIdentity(t *testing.T) {
	sync, _, transport := newSyncFixture(t)

	_, err := sync.PublishProfileUpdate(context.Background(), nil)
	assert.ErrorIs(t, err, blog.ErrNoIdentity)
	assert.Zero(t, transport.calls)
}

func TestPublishProfileUpdateEmptyFollowers(t *testing.T) {
	sync, _, transport := newSyncFixture(t)

	report, err := sync.PublishProfileUpdate(context.Background(), testIdentity(t))
	require.NoError(t, err)
	assert.Zero(t, report.Recipients)
	assert.Zero(t, report.Dispatched)
	assert.Zero(t, report.Failed)
	// The activity is still built and handed off, just with no recipients.
	assert.Equal(t, 1, transport.calls)
}

func TestPublishProfileUpdateFanOut(t *testing.T) {
	sync, repo, transport := newSyncFixture(t)
	ctx := context.Background()

	for _, uri := range []string{"https://a.example/u/1", "https://b.example/u/2", "https://c.example/u/3"} {
		require.NoError(t, repo.Add(ctx, &follower.Follower{
			ActorURI: uri,
			InboxURI: uri + "/inbox",
		}))
	}

	report, err := sync.PublishProfileUpdate(ctx, testIdentity(t))
	require.NoError(t, err)
	assert.Equal(t, 3, report.Recipients)
	assert.Equal(t, 3, report.Dispatched)
	assert.Equal(t, "alice", transport.sender)
	assert.Len(t, transport.recipients, 3)
}

func TestPublishProfileUpdateActivityShape(t *testing.T) {
	sync, _, transport := newSyncFixture(t)

	_, err := sync.PublishProfileUpdate(context.Background(), testIdentity(t))
	require.NoError(t, err)

	activity := transport.activity
	require.NotNil(t, activity)
	assert.Equal(t, federation.TypeUpdate, activity.Type)
	assert.Equal(t, "https://blog.example.com/users/alice", activity.Actor)
	assert.Contains(t, activity.ID, "https://blog.example.com/users/alice#updates/")
	assert.Equal(t, []string{federation.PublicAudience}, activity.To)

	person, ok := activity.Object.(*federation.Person)
	require.True(t, ok)
	assert.Equal(t, activity.Actor, person.ID, "activity actor and Person id are the same URI")
	assert.Equal(t, "Alice's Blog", person.Name)
	assert.Equal(t, "hi", person.Summary)
	assert.Equal(t, "alice", person.PreferredUsername)

	require.NotNil(t, person.Icon)
	assert.Equal(t, "https://ex.com/i.png", person.Icon.URL)
	assert.Equal(t, "image/png", person.Icon.MediaType)

	// Unknown extension fails soft: media type omitted, publish unaffected.
	require.NotNil(t, person.Image)
	assert.Empty(t, person.Image.MediaType)

	require.NotNil(t, person.PublicKey)
	assert.Equal(t, activity.Actor+"#main-key", person.PublicKey.ID)
	assert.Contains(t, person.PublicKey.PublicKeyPem, "PUBLIC KEY")
}
