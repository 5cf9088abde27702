package federation

import (
	"encoding/json"
	"fmt"
)

// ActivityStreams constants.
const (
	ContextActivityStreams = "https://www.w3.org/ns/activitystreams"
	ContextSecurity        = "https://w3id.org/security/v1"
	PublicAudience         = "https://www.w3.org/ns/activitystreams#Public"

	TypeUpdate = "Update"
	TypeFollow = "Follow"
	TypeAccept = "Accept"
	TypeUndo   = "Undo"
	TypePerson = "Person"
	TypeImage  = "Image"
)

// ContentType is the media type federation peers exchange activities in.
const ContentType = `application/activity+json`

// Image is a typed media reference. MediaType is omitted when the URL
// extension is unrecognized; remote servers sniff it themselves.
type Image struct {
	Type      string `json:"type"`
	MediaType string `json:"mediaType,omitempty"`
	URL       string `json:"url"`
}

// PublicKey is the actor's signing key as embedded in the actor document.
type PublicKey struct {
	ID           string `json:"id"`
	Owner        string `json:"owner"`
	PublicKeyPem string `json:"publicKeyPem"`
}

// Person is the actor description published to the network.
type Person struct {
	Context           []string   `json:"@context,omitempty"`
	ID                string     `json:"id"`
	Type              string     `json:"type"`
	PreferredUsername string     `json:"preferredUsername"`
	Name              string     `json:"name"`
	Summary           string     `json:"summary"`
	Inbox             string     `json:"inbox,omitempty"`
	Followers         string     `json:"followers,omitempty"`
	Published         string     `json:"published,omitempty"`
	Icon              *Image     `json:"icon,omitempty"`
	Image             *Image     `json:"image,omitempty"`
	PublicKey         *PublicKey `json:"publicKey,omitempty"`
}

// Activity is an outgoing typed message wrapping an object.
type Activity struct {
	Context []string    `json:"@context"`
	ID      string      `json:"id"`
	Type    string      `json:"type"`
	Actor   string      `json:"actor"`
	To      []string    `json:"to,omitempty"`
	Object  interface{} `json:"object"`
}

// InboundActivity is a loosely typed incoming activity. Object stays raw:
// it can be a bare IRI string or a nested activity (Undo wraps Follow).
type InboundActivity struct {
	ID     string          `json:"id"`
	Type   string          `json:"type"`
	Actor  string          `json:"actor"`
	Object json.RawMessage `json:"object"`
}

// ObjectActivity decodes a nested activity from Object.
func (a *InboundActivity) ObjectActivity() (*InboundActivity, error) {
	var inner InboundActivity
	if err := json.Unmarshal(a.Object, &inner); err != nil {
		return nil, fmt.Errorf("decode nested object: %w", err)
	}
	return &inner, nil
}

// ObjectIRI decodes Object when it is a bare IRI string.
func (a *InboundActivity) ObjectIRI() (string, error) {
	var iri string
	if err := json.Unmarshal(a.Object, &iri); err != nil {
		return "", fmt.Errorf("object is not an IRI: %w", err)
	}
	return iri, nil
}
