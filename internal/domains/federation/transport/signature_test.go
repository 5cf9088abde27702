package transport

import (
	"bytes"
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fedblog-backend/pkg/keys"
)

func signedRequest(t *testing.T, pair *keys.KeyPair, body []byte) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "https://remote.example/users/bob/inbox", bytes.NewReader(body))
	require.NoError(t, err)
	require.NoError(t, SignRequest(req, "https://blog.example.com/users/alice#main-key", pair.Private, body))
	return req
}

func TestSignRequestVerifies(t *testing.T) {
	pair, err := keys.Generate()
	require.NoError(t, err)

	body := []byte(`{"type":"Update"}`)
	req := signedRequest(t, pair, body)

	// Rebuild the signing string the way a receiving server would.
	signingString := strings.Join([]string{
		"(request-target): post /users/bob/inbox",
		"host: remote.example",
		"date: " + req.Header.Get("Date"),
		"digest: " + req.Header.Get("Digest"),
	}, "\n")

	params := parseSignatureHeader(t, req.Header.Get("Signature"))
	assert.Equal(t, "https://blog.example.com/users/alice#main-key", params["keyId"])
	assert.Equal(t, "rsa-sha256", params["algorithm"])
	assert.Equal(t, signedHeaders, params["headers"])

	sig, err := base64.StdEncoding.DecodeString(params["signature"])
	require.NoError(t, err)

	hashed := sha256.Sum256([]byte(signingString))
	assert.NoError(t, rsa.VerifyPKCS1v15(pair.Public, crypto.SHA256, hashed[:], sig))
}

func TestSignRequestDigestMatchesBody(t *testing.T) {
	pair, err := keys.Generate()
	require.NoError(t, err)

	body := []byte(`{"type":"Accept"}`)
	req := signedRequest(t, pair, body)

	sum := sha256.Sum256(body)
	assert.Equal(t, "SHA-256="+base64.StdEncoding.EncodeToString(sum[:]), req.Header.Get("Digest"))
	assert.NotEmpty(t, req.Header.Get("Date"))
}

func TestSignRequestTamperedBodyFailsVerification(t *testing.T) {
	pair, err := keys.Generate()
	require.NoError(t, err)

	req := signedRequest(t, pair, []byte(`{"type":"Update"}`))
	params := parseSignatureHeader(t, req.Header.Get("Signature"))
	sig, err := base64.StdEncoding.DecodeString(params["signature"])
	require.NoError(t, err)

	// A tampered digest changes the signing string and breaks the signature.
	tampered := strings.Join([]string{
		"(request-target): post /users/bob/inbox",
		"host: remote.example",
		"date: " + req.Header.Get("Date"),
		"digest: " + bodyDigest([]byte(`{"type":"Delete"}`)),
	}, "\n")

	hashed := sha256.Sum256([]byte(tampered))
	assert.Error(t, rsa.VerifyPKCS1v15(pair.Public, crypto.SHA256, hashed[:], sig))
}

func parseSignatureHeader(t *testing.T, header string) map[string]string {
	t.Helper()
	require.NotEmpty(t, header)
	params := make(map[string]string)
	for _, part := range strings.Split(header, `",`) {
		key, value, found := strings.Cut(part, `="`)
		require.True(t, found, fmt.Sprintf("malformed signature param %q", part))
		params[key] = strings.TrimSuffix(value, `"`)
	}
	return params
}
