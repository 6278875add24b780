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
	"net/http/httptest"
	"testing"
	"time"

	"go-inventory-api/internal/model"
	"go-inventory-api/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func signPayload(secret string, payload []byte, timestamp int64) string {
	signed := fmt.Sprintf("%d.%s", timestamp, payload)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signed))
	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

func intentPayload(eventType, intentID string, transactionID uuid.UUID) []byte {
	payload, _ := json.Marshal(map[string]interface{}{
		"id":   "evt_1",
		"type": eventType,
		"data": map[string]interface{}{
			"object": map[string]interface{}{
				"id":       intentID,
				"metadata": map[string]string{"transaction_id": transactionID.String()},
			},
		},
	})
	return payload
}

func TestVerifyWebhookSucceededEvent(t *testing.T) {
	svc := NewService("sk_test", "whsec_test", zap.NewNop())
	txID := uuid.New()
	payload := intentPayload("payment_intent.succeeded", "pi_123", txID)
	header := signPayload("whsec_test", payload, time.Now().Unix())

	event, err := svc.VerifyWebhook(payload, header)
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, txID, event.TransactionID)
	assert.Equal(t, model.PaymentCompleted, event.Status)
	assert.Equal(t, "pi_123", event.PaymentID)
}

func TestVerifyWebhookFailedEvent(t *testing.T) {
	svc := NewService("sk_test", "whsec_test", zap.NewNop())
	txID := uuid.New()
	payload := intentPayload("payment_intent.payment_failed", "pi_456", txID)
	header := signPayload("whsec_test", payload, time.Now().Unix())

	event, err := svc.VerifyWebhook(payload, header)
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, model.PaymentFailed, event.Status)
	assert.Equal(t, "pi_456", event.PaymentID)
}

func TestVerifyWebhookUnknownEventIsIgnored(t *testing.T) {
	svc := NewService("sk_test", "whsec_test", zap.NewNop())
	payload := intentPayload("charge.refunded", "ch_1", uuid.New())
	header := signPayload("whsec_test", payload, time.Now().Unix())

	event, err := svc.VerifyWebhook(payload, header)
	require.NoError(t, err)
	assert.Nil(t, event)
}

func TestVerifyWebhookRejectsBadSignature(t *testing.T) {
	svc := NewService("sk_test", "whsec_test", zap.NewNop())
	payload := intentPayload("payment_intent.succeeded", "pi_123", uuid.New())

	cases := map[string]string{
		"wrong secret": signPayload("whsec_other", payload, time.Now().Unix()),
		"garbage":      "not-a-signature",
		"empty":        "",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			event, err := svc.VerifyWebhook(payload, header)
			assert.Nil(t, event)
			var appErr *apperr.Error
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperr.CodeWebhook, appErr.Code)
		})
	}
}

func TestVerifyWebhookRejectsMissingTransactionReference(t *testing.T) {
	svc := NewService("sk_test", "whsec_test", zap.NewNop())
	payload, _ := json.Marshal(map[string]interface{}{
		"id":   "evt_1",
		"type": "payment_intent.succeeded",
		"data": map[string]interface{}{
			"object": map[string]interface{}{"id": "pi_1", "metadata": map[string]string{}},
		},
	})
	header := signPayload("whsec_test", payload, time.Now().Unix())

	event, err := svc.VerifyWebhook(payload, header)
	assert.Nil(t, event)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.CodeWebhook, appErr.Code)
}

func TestProcessPaymentCreatesIntentInMinorUnits(t *testing.T) {
	txID := uuid.New()
	var gotForm map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payment_intents", r.URL.Path)
		require.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"amount":                   r.PostFormValue("amount"),
			"currency":                 r.PostFormValue("currency"),
			"metadata[transaction_id]": r.PostFormValue("metadata[transaction_id]"),
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "pi_789",
			"status":   "requires_payment_method",
			"amount":   1998,
			"currency": "usd",
		})
	}))
	defer server.Close()

	svc := NewService("sk_test", "whsec_test", zap.NewNop())
	svc.baseURL = server.URL

	intent, err := svc.ProcessPayment(context.Background(), txID, 19.98)
	require.NoError(t, err)
	assert.Equal(t, "pi_789", intent.ID)
	assert.Equal(t, "1998", gotForm["amount"])
	assert.Equal(t, "usd", gotForm["currency"])
	assert.Equal(t, txID.String(), gotForm["metadata[transaction_id]"])
}

func TestProcessPaymentSurfacesProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "Your card was declined."},
		})
	}))
	defer server.Close()

	svc := NewService("sk_test", "whsec_test", zap.NewNop())
	svc.baseURL = server.URL

	intent, err := svc.ProcessPayment(context.Background(), uuid.New(), 10)
	assert.Nil(t, intent)

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.CodeProvider, appErr.Code)
	assert.Equal(t, "Your card was declined.", appErr.Message)
}

func TestProcessPaymentRequiresAPIKey(t *testing.T) {
	svc := NewService("", "whsec_test", zap.NewNop())

	_, err := svc.ProcessPayment(context.Background(), uuid.New(), 10)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.CodeProvider, appErr.Code)
}
