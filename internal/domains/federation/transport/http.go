package transport

import (
	"bytes"
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fedblog-backend/internal/domains/federation"
)

// Deliverer performs one signed activity POST to one remote inbox.
// Used by the worker; the timeout bounds each attempt, asynq owns retries.
type Deliverer struct {
	client *http.Client
}

func NewDeliverer() *Deliverer {
	return &Deliverer{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Deliver posts the activity to inboxURI, signed with the actor's key.
// Any transport error or non-2xx status is returned so the queue can retry.
func (d *Deliverer) Deliver(ctx context.Context, inboxURI, keyID string, key *rsa.PrivateKey, activityJSON []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, inboxURI, bytes.NewReader(activityJSON))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", federation.ContentType)
	req.Header.Set("Accept", federation.ContentType)

	if err := SignRequest(req, keyID, key, activityJSON); err != nil {
		return err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", inboxURI, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("inbox %s answered %d", inboxURI, resp.StatusCode)
	}
	return nil
}

// HTTPResolver fetches remote actor documents.
type HTTPResolver struct {
	client *http.Client
}

func NewHTTPResolver() *HTTPResolver {
	return &HTTPResolver{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (r *HTTPResolver) ResolveActor(ctx context.Context, actorURI string) (*federation.RemoteActor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, actorURI, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", federation.ContentType)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch actor %s: %w", actorURI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("actor %s answered %d", actorURI, resp.StatusCode)
	}

	var actor federation.RemoteActor
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&actor); err != nil {
		return nil, fmt.Errorf("decode actor %s: %w", actorURI, err)
	}
	return &actor, nil
}

var _ federation.Resolver = (*HTTPResolver)(nil)
