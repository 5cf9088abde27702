package utils

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path"

	"github.com/hibiken/asynq"
)

// GetEnvVariable reads an environment variable with a fallback default.
func GetEnvVariable(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// UnmarshalTask decodes an asynq task payload into dest.
func UnmarshalTask(t *asynq.Task, dest interface{}) error {
	if err := json.Unmarshal(t.Payload(), dest); err != nil {
		return fmt.Errorf("unmarshal %s payload: %w", t.Type(), err)
	}
	return nil
}

// IsValidURL reports whether s parses as an absolute URL.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// MediaTypeFromURL infers a MIME type from the extension of a URL path.
// Returns "" when the extension is unknown; callers treat that as
// "no media type" rather than an error.
func MediaTypeFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return mime.TypeByExtension(path.Ext(u.Path))
}
