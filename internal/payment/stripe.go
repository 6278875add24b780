package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go-inventory-api/internal/model"
	"go-inventory-api/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Provider is what the API layer depends on; Service is the Stripe-backed
// implementation.
type Provider interface {
	ProcessPayment(ctx context.Context, transactionID uuid.UUID, amount float64) (*Intent, error)
	VerifyWebhook(payload []byte, sigHeader string) (*Event, error)
}

// Intent is the provider-side record for an attempted charge.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// Event is a verified webhook event mapped onto transaction state.
type Event struct {
	TransactionID uuid.UUID
	Status        model.PaymentStatus
	PaymentID     string
}

type stripeErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type Service struct {
	apiKey        string
	webhookSecret string
	baseURL       string
	client        *http.Client
	log           *zap.Logger
}

func NewService(apiKey, webhookSecret string, log *zap.Logger) *Service {
	return &Service{
		apiKey:        strings.TrimSpace(apiKey),
		webhookSecret: strings.TrimSpace(webhookSecret),
		baseURL:       "https://api.stripe.com",
		client:        &http.Client{Timeout: 12 * time.Second},
		log:           log,
	}
}

// ProcessPayment creates a payment intent for the transaction's total amount.
// This runs as a deferred task after the create-transaction response has been
// sent. There is no retry: a provider failure is logged and the transaction
// stays pending until the webhook or an operator resolves it.
func (s *Service) ProcessPayment(ctx context.Context, transactionID uuid.UUID, amount float64) (*Intent, error) {
	cents := int64(amount * 100) // provider expects minor units

	values := url.Values{}
	values.Set("amount", strconv.FormatInt(cents, 10))
	values.Set("currency", "usd")
	values.Set("metadata[transaction_id]", transactionID.String())

	intent, err := s.createIntent(ctx, values, "transaction:"+transactionID.String())
	if err != nil {
		s.log.Error("payment intent creation failed",
			zap.String("transaction_id", transactionID.String()),
			zap.Int64("amount_cents", cents),
			zap.Error(err))
		return nil, apperr.Provider(err)
	}

	s.log.Info("payment intent created",
		zap.String("transaction_id", transactionID.String()),
		zap.String("payment_intent_id", intent.ID))
	return intent, nil
}

func (s *Service) createIntent(ctx context.Context, values url.Values, idempotencyKey string) (*Intent, error) {
	if s.apiKey == "" {
		return nil, errors.New("stripe api key not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/v1/payment_intents", strings.NewReader(values.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var stripeErr stripeErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&stripeErr); err != nil {
			return nil, errors.New("stripe request failed")
		}
		message := strings.TrimSpace(stripeErr.Error.Message)
		if message == "" {
			message = "stripe request failed"
		}
		return nil, errors.New(message)
	}

	var intent Intent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, err
	}
	if intent.ID == "" {
		return nil, errors.New("stripe response invalid")
	}
	return &intent, nil
}

type stripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

type stripePaymentIntent struct {
	ID       string            `json:"id"`
	Metadata map[string]string `json:"metadata"`
}

// VerifyWebhook authenticates an inbound provider callback and maps it onto a
// transaction status change. Unknown event kinds return (nil, nil) and are
// only logged.
func (s *Service) VerifyWebhook(payload []byte, sigHeader string) (*Event, error) {
	if err := s.verifySignature(payload, sigHeader); err != nil {
		return nil, apperr.Webhook(err.Error())
	}

	var event stripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, apperr.Webhook("invalid webhook payload")
	}

	var status model.PaymentStatus
	switch strings.TrimSpace(event.Type) {
	case "payment_intent.succeeded":
		status = model.PaymentCompleted
	case "payment_intent.payment_failed":
		status = model.PaymentFailed
	default:
		s.log.Info("ignoring webhook event", zap.String("type", event.Type))
		return nil, nil
	}

	var intent stripePaymentIntent
	if err := json.Unmarshal(event.Data.Object, &intent); err != nil {
		return nil, apperr.Webhook("invalid webhook payload")
	}
	transactionID, err := uuid.Parse(intent.Metadata["transaction_id"])
	if err != nil {
		return nil, apperr.Webhook("webhook event has no transaction reference")
	}

	return &Event{
		TransactionID: transactionID,
		Status:        status,
		PaymentID:     intent.ID,
	}, nil
}

// verifySignature checks the t/v1 pairs of a Stripe-Signature header:
// HMAC-SHA256 over "<timestamp>.<payload>" with the webhook secret.
func (s *Service) verifySignature(payload []byte, sigHeader string) error {
	timestamp, signatures, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return err
	}

	signedPayload := fmt.Sprintf("%s.%s", timestamp, string(payload))
	mac := hmac.New(sha256.New, []byte(s.webhookSecret))
	_, _ = mac.Write([]byte(signedPayload))
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, signature := range signatures {
		if hmac.Equal([]byte(signature), []byte(expected)) {
			return nil
		}
	}
	return errors.New("webhook signature mismatch")
}

func parseSignatureHeader(header string) (string, []string, error) {
	var timestamp string
	signatures := []string{}
	for _, part := range strings.Split(header, ",") {
		piece := strings.TrimSpace(part)
		if piece == "" {
			continue
		}
		keyValue := strings.SplitN(piece, "=", 2)
		if len(keyValue) != 2 {
			continue
		}
		switch strings.TrimSpace(keyValue[0]) {
		case "t":
			timestamp = strings.TrimSpace(keyValue[1])
		case "v1":
			signatures = append(signatures, strings.TrimSpace(keyValue[1]))
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return "", nil, errors.New("malformed webhook signature header")
	}
	return timestamp, signatures, nil
}
