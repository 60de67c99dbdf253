package csrf

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Deriver computes CSRF tokens from session tokens under a process-wide
// secret. Tokens are never stored server-side: revoking the session revokes
// the derived token at the same time, since both come from the same cookie.
type Deriver struct {
	secret []byte
}

// NewDeriver creates a Deriver with the given signing secret.
func NewDeriver(secret string) *Deriver {
	return &Deriver{secret: []byte(secret)}
}

// Derive returns the hex-encoded HMAC-SHA-256 of the session token, or the
// empty string when no session token is present.
func (d *Deriver) Derive(sessionToken string) string {
	if sessionToken == "" {
		return ""
	}

	mac := hmac.New(sha256.New, d.secret)
	mac.Write([]byte(sessionToken))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares a caller-supplied token against the expected derivation
// for the session token, in constant time.
func (d *Deriver) Verify(sessionToken, token string) bool {
	if sessionToken == "" || token == "" {
		return false
	}

	expected := d.Derive(sessionToken)
	return hmac.Equal([]byte(expected), []byte(token))
}
