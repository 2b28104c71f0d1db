// Package payments integrates the cryptocurrency payment processor:
// hosted checkout creation and signed confirmation webhooks.
package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignatureHeader carries the processor's hex HMAC-SHA256 of the raw
// request body.
const SignatureHeader = "X-CC-Webhook-Signature"

// Verifier checks webhook authenticity with a pre-shared secret.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) Verifier {
	return Verifier{secret: []byte(secret)}
}

// Sign computes the hex HMAC-SHA256 of body.
func (v Verifier) Sign(body []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)

	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature matches the HMAC of the exact raw body
// bytes. Uses hmac.Equal for constant-time comparison.
func (v Verifier) Verify(body []byte, signature string) bool {
	expected := v.Sign(body)

	return hmac.Equal([]byte(expected), []byte(signature))
}
