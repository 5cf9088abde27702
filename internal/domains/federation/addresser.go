package federation

import "fmt"

// Addresser derives the canonical URIs of the local actor. The actor URI is
// identity: it appears in every signed activity and in remote follower
// records, so the base URL must stay stable for the lifetime of the blog.
type Addresser struct {
	baseURL string
}

func NewAddresser(baseURL string) *Addresser {
	return &Addresser{baseURL: baseURL}
}

func (a *Addresser) ActorURI(handle string) string {
	return fmt.Sprintf("%s/users/%s", a.baseURL, handle)
}

func (a *Addresser) InboxURI(handle string) string {
	return fmt.Sprintf("%s/users/%s/inbox", a.baseURL, handle)
}

func (a *Addresser) FollowersURI(handle string) string {
	return fmt.Sprintf("%s/users/%s/followers", a.baseURL, handle)
}

// KeyID names the actor's signing key inside the actor document.
func (a *Addresser) KeyID(handle string) string {
	return a.ActorURI(handle) + "#main-key"
}

func (a *Addresser) Subject(handle, domain string) string {
	return fmt.Sprintf("acct:%s@%s", handle, domain)
}
