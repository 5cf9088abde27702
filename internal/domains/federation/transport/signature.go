package transport

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// signedHeaders is the fixed header set covered by the signature, in order.
const signedHeaders = "(request-target) host date digest"

// SignRequest adds Date, Digest and Signature headers to an outgoing
// activity POST, per the draft-cavage HTTP signature scheme fediverse
// servers verify against.
func SignRequest(req *http.Request, keyID string, key *rsa.PrivateKey, body []byte) error {
	date := time.Now().UTC().Format(http.TimeFormat)
	digest := bodyDigest(body)

	req.Header.Set("Date", date)
	req.Header.Set("Digest", digest)

	signingString := strings.Join([]string{
		fmt.Sprintf("(request-target): %s %s", strings.ToLower(req.Method), req.URL.RequestURI()),
		fmt.Sprintf("host: %s", req.URL.Host),
		fmt.Sprintf("date: %s", date),
		fmt.Sprintf("digest: %s", digest),
	}, "\n")

	hashed := sha256.Sum256([]byte(signingString))
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, hashed[:])
	if err != nil {
		return fmt.Errorf("sign request: %w", err)
	}

	req.Header.Set("Signature", fmt.Sprintf(
		`keyId="%s",algorithm="rsa-sha256",headers="%s",signature="%s"`,
		keyID, signedHeaders, base64.StdEncoding.EncodeToString(sig),
	))
	return nil
}

func bodyDigest(body []byte) string {
	sum := sha256.Sum256(body)
	return "SHA-256=" + base64.StdEncoding.EncodeToString(sum[:])
}
