package payments_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"flipscan/internal/infrastructure/payments"
)

func TestVerifier(t *testing.T) {
	rq := require.New(t)

	verifier := payments.NewVerifier("whsec_test")
	body := []byte(`{"id":"evt_1","type":"charge:confirmed","data":{"code":"ABC","metadata":{"user_id":"42"}}}`)

	signature := verifier.Sign(body)
	rq.Len(signature, 64)
	rq.True(verifier.Verify(body, signature))
}

func TestVerifierRejects(t *testing.T) {
	rq := require.New(t)

	verifier := payments.NewVerifier("whsec_test")
	body := []byte(`{"id":"evt_1"}`)
	signature := verifier.Sign(body)

	testCases := []struct {
		name      string
		body      []byte
		signature string
	}{
		{
			name:      "Tampered body",
			body:      []byte(`{"id":"evt_2"}`),
			signature: signature,
		},
		{
			name:      "Flipped signature byte",
			body:      body,
			signature: flipHexDigit(signature),
		},
		{
			name:      "Empty signature",
			body:      body,
			signature: "",
		},
		{
			name:      "Wrong secret",
			body:      body,
			signature: payments.NewVerifier("whsec_other").Sign(body),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.False(verifier.Verify(tc.body, tc.signature))
		})
	}
}

func flipHexDigit(s string) string {
	b := []byte(s)
	if b[0] == '0' {
		b[0] = '1'
	} else {
		b[0] = '0'
	}

	return string(b)
}

func TestEventUserID(t *testing.T) {
	rq := require.New(t)

	event := payments.Event{
		Type: payments.EventChargeConfirmed,
		Data: payments.EventData{
			Code:     "ABC",
			Metadata: map[string]string{"user_id": "1217838677"},
		},
	}
	rq.Equal("1217838677", event.UserID())

	rq.Empty(payments.Event{}.UserID())
}
