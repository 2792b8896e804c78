package session

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

// CookieName is fixed and stable across the process lifetime; rotating it
// would orphan every live session.
const CookieName = "sessionId"

var errBadToken = errors.New("session: malformed or tampered cookie value")

// newSessionID mints a cryptographically unguessable session id.
func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// signToken produces the cookie value: the session id plus an HMAC-SHA256
// signature under the configured secret, dot-separated.
func signToken(id string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(id))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	return id + "." + sig
}

// verifyToken checks the signature and returns the embedded session id.
// Comparison is constant-time.
func verifyToken(value string, secret []byte) (string, error) {
	id, sig, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return "", errBadToken
	}
	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return "", errBadToken
	}
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(id))
	if !hmac.Equal(got, mac.Sum(nil)) {
		return "", errBadToken
	}
	return id, nil
}
