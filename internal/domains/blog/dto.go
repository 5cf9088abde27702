package blog

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"fedblog-backend/internal/shared/utils"
)

var handlePattern = regexp.MustCompile(`^[A-Za-z._-]{3,20}$`)

// absoluteURL rejects anything that does not parse as scheme://host/...
var absoluteURL = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if !utils.IsValidURL(s) {
		return validation.NewError("validation_is_url", "must be a valid URL")
	}
	return nil
})

// ========================================
// SETUP / PROFILE DTOs
// ========================================

// SetupRequest is used for both first-time setup and profile updates;
// callers resupply every field they want retained.
//
// Password carries the current password: it becomes the credential on first
// setup and authorizes the rewrite afterwards. NewPassword optionally rotates
// the credential; when empty, the existing hash is carried forward unchanged.
type SetupRequest struct {
	Handle      string `json:"handle"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Image       string `json:"image"`
	Password    string `json:"password"`
	NewPassword string `json:"new_password,omitempty"`
}

// Validate collects all field errors at once (not fail-fast) so the caller
// can render every problem in a single round trip. Error keys are the json
// field names: handle, title, description, icon, image, password.
func (r SetupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Handle,
			validation.Required.Error("handle is required"),
			validation.Match(handlePattern).Error("handle must be 3-20 characters long and contain only letters, periods, underscores, and hyphens"),
		),
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
		),
		validation.Field(&r.Description,
			validation.Required.Error("description is required"),
		),
		validation.Field(&r.Icon,
			validation.Required.Error("icon is required"),
			absoluteURL,
		),
		validation.Field(&r.Image,
			validation.Required.Error("image is required"),
			absoluteURL,
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
		),
	)
}

// LoginRequest - operator session
type LoginRequest struct {
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse - session token
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IdentityDTO - public identity representation (no hash, no key material)
type IdentityDTO struct {
	Handle      string    `json:"handle"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Image       string    `json:"image"`
	Published   time.Time `json:"published"`
}

// ToDTO converts an Identity to its public representation.
func (i *Identity) ToDTO() IdentityDTO {
	return IdentityDTO{
		Handle:      i.Handle,
		Title:       i.Title,
		Description: i.Description,
		Icon:        i.Icon,
		Image:       i.Image,
		Published:   i.Published,
	}
}
