package server

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"

	"flipscan/internal/infrastructure/payments"
	"flipscan/internal/metrics"
	"flipscan/pkg/contextx"
	"flipscan/pkg/errcodes"
	"flipscan/pkg/httpx/reply"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals
)

type entitlementStore interface {
	GrantPro(ctx context.Context, userID string) error
}

type WebhookServer struct {
	verifier     payments.Verifier
	store        entitlementStore
	socialSecret string
}

func NewWebhookServer(
	verifier payments.Verifier,
	store entitlementStore,
	socialSecret string,
) WebhookServer {
	return WebhookServer{
		verifier:     verifier,
		store:        store,
		socialSecret: socialSecret,
	}
}

// postV1PaymentWebhook handles signed payment confirmations. The signature
// covers the exact raw body bytes; a mismatch rejects the request without
// touching any state. Only a confirmed charge grants the entitlement.
func (s WebhookServer) postV1PaymentWebhook(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("io.ReadAll: %w", err)
	}

	if !s.verifier.Verify(body, r.Header.Get(payments.SignatureHeader)) {
		metrics.PaymentEventsTotal.WithLabelValues("bad_signature").Inc()

		return failure.NewInvalidArgumentError(
			"signature mismatch",
			failure.WithCode(errcodes.InvalidSignature),
			failure.WithDescription("webhook signature verification failed"),
		)
	}

	var event payments.Event

	if err := json.Unmarshal(body, &event); err != nil {
		// Malformed but authentic payloads get a 200 so the processor
		// does not retry forever.
		logger(ctx).Error("malformed payment event", "error", err)
		metrics.PaymentEventsTotal.WithLabelValues("malformed").Inc()
		reply.OK(w)

		return nil
	}

	if event.Type != payments.EventChargeConfirmed {
		metrics.PaymentEventsTotal.WithLabelValues("ignored").Inc()
		reply.OK(w)

		return nil
	}

	userID := event.UserID()
	if userID == "" {
		metrics.PaymentEventsTotal.WithLabelValues("missing_user").Inc()

		return failure.NewInvalidArgumentError(
			"missing user id",
			failure.WithCode(errcodes.MissingUserID),
			failure.WithDescription("confirmed charge carries no user id metadata"),
		)
	}

	if err := s.store.GrantPro(ctx, userID); err != nil {
		return fmt.Errorf("store.GrantPro: %w", err)
	}

	logger(ctx).Info("pro entitlement granted", "user", userID, "charge", event.Data.Code)
	metrics.PaymentEventsTotal.WithLabelValues("granted").Inc()

	reply.OK(w)

	return nil
}

type socialChallengeResponse struct {
	ResponseToken string `json:"response_token"`
}

// getV1SocialChallenge answers the social platform's webhook verification
// handshake: HMAC-SHA256 the challenge token with the shared secret.
func (s WebhookServer) getV1SocialChallenge(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	token := r.URL.Query().Get("crc_token")
	if token == "" {
		return failure.NewInvalidArgumentError(
			"missing crc_token",
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("crc_token query parameter is required"),
		)
	}

	mac := hmac.New(sha256.New, []byte(s.socialSecret))
	mac.Write([]byte(token))

	reply.JSON(ctx, w, http.StatusOK, socialChallengeResponse{
		ResponseToken: "sha256=" + base64.StdEncoding.EncodeToString(mac.Sum(nil)),
	})

	return nil
}
