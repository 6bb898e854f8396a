package stripe

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/simplu-io/simplu-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfirmer(t *testing.T, handler http.HandlerFunc) *Confirmer {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	confirmer, err := New("pk_test_123", WithBackendURL(server.URL), WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return confirmer
}

func TestNewRejectsNonPublishableKeys(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"", "   ", "sk_live_abc", "rk_test_abc"} {
		_, err := New(key)
		assert.ErrorIs(t, err, ErrNotConfigured, key)
	}
}

func TestPaymentIntentID(t *testing.T) {
	t.Parallel()

	id, err := PaymentIntentID("pi_3Nabc_secret_xyz")
	require.NoError(t, err)
	assert.Equal(t, "pi_3Nabc", id)

	_, err = PaymentIntentID("seti_1_secret_x")
	assert.ErrorIs(t, err, ErrInvalidSecret)
	_, err = PaymentIntentID("garbage")
	assert.ErrorIs(t, err, ErrInvalidSecret)
}

func TestConfirmCardPaymentSucceeds(t *testing.T) {
	t.Parallel()

	var form url.Values
	var path, auth string
	confirmer := newTestConfirmer(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		form, _ = url.ParseQuery(string(body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"pi_123","object":"payment_intent","status":"succeeded"}`)
	})

	got, err := confirmer.ConfirmCardPayment(context.Background(), "pi_123_secret_abc", "pm_card_visa")
	require.NoError(t, err)

	assert.Equal(t, "/v1/payment_intents/pi_123/confirm", path)
	assert.Equal(t, "Bearer pk_test_123", auth)
	assert.Equal(t, "pm_card_visa", form.Get("payment_method"))
	assert.Equal(t, "pi_123_secret_abc", form.Get("client_secret"))
	assert.Equal(t, domain.CardConfirmation{PaymentIntentID: "pi_123", Status: "succeeded"}, got)
}

func TestConfirmCardPaymentStatuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  string
		wantErr error
	}{
		{name: "processing counts as success", status: "processing"},
		{name: "3ds needed", status: "requires_action", wantErr: ErrPaymentRequiresAction},
		{name: "needs another card", status: "requires_payment_method", wantErr: ErrPaymentDeclined},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			confirmer := newTestConfirmer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, `{"id":"pi_1","object":"payment_intent","status":"`+tc.status+`"}`)
			})

			got, err := confirmer.ConfirmCardPayment(context.Background(), "pi_1_secret_x", "pm_1")
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.wantErr)
			}
			assert.Equal(t, tc.status, got.Status)
		})
	}
}

func TestConfirmCardPaymentMapsCardErrors(t *testing.T) {
	t.Parallel()

	confirmer := newTestConfirmer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = io.WriteString(w, `{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`)
	})

	_, err := confirmer.ConfirmCardPayment(context.Background(), "pi_1_secret_x", "pm_1")
	require.ErrorIs(t, err, ErrPaymentDeclined)
	assert.Contains(t, err.Error(), "Your card was declined.")
}

func TestConfirmCardPaymentValidatesInput(t *testing.T) {
	t.Parallel()

	confirmer, err := New("pk_test_123", WithBackendURL("http://127.0.0.1:1"))
	require.NoError(t, err)

	_, err = confirmer.ConfirmCardPayment(context.Background(), "bad", "pm_1")
	require.ErrorIs(t, err, ErrInvalidSecret)

	_, err = confirmer.ConfirmCardPayment(context.Background(), "pi_1_secret_x", " ")
	require.ErrorIs(t, err, domain.ErrValidation)
}
