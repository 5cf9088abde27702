package federation

import (
	"fmt"
	"time"

	"fedblog-backend/internal/domains/blog"
	"fedblog-backend/internal/shared/utils"
	"fedblog-backend/pkg/keys"
)

// BuildPerson renders the identity as the Person description remote servers
// see, both in the actor document and inside Update activities.
func BuildPerson(identity *blog.Identity, a *Addresser) (*Person, error) {
	actorURI := a.ActorURI(identity.Handle)

	publicPEM, err := keys.ExportPublic(identity.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("export public key: %w", err)
	}

	return &Person{
		ID:                actorURI,
		Type:              TypePerson,
		PreferredUsername: identity.Handle,
		Name:              identity.Title,
		Summary:           identity.Description,
		Inbox:             a.InboxURI(identity.Handle),
		Followers:         a.FollowersURI(identity.Handle),
		Published:         identity.Published.UTC().Format(time.RFC3339),
		// Media types come from the URL extension; an unknown extension
		// fails soft and omits the field.
		Icon: &Image{
			Type:      TypeImage,
			MediaType: utils.MediaTypeFromURL(identity.Icon),
			URL:       identity.Icon,
		},
		Image: &Image{
			Type:      TypeImage,
			MediaType: utils.MediaTypeFromURL(identity.Image),
			URL:       identity.Image,
		},
		PublicKey: &PublicKey{
			ID:           a.KeyID(identity.Handle),
			Owner:        actorURI,
			PublicKeyPem: publicPEM,
		},
	}, nil
}
