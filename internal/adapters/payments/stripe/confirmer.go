package stripe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/simplu-io/simplu-cli/internal/domain"
	"github.com/simplu-io/simplu-cli/internal/ports"
	stripego "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
	"go.uber.org/zap"
)

const publishableKeyPrefix = "pk_"

var (
	ErrNotConfigured         = errors.New("payment provider is not configured: set stripe.publishable_key to a pk_ key")
	ErrPaymentRequiresAction = errors.New("payment requires additional authentication in a browser")
	ErrInvalidSecret         = errors.New("invalid payment client secret")
	ErrPaymentDeclined       = errors.New("payment was declined")
)

// Confirmer confirms payment intents client-side with the publishable key,
// the same way a browser checkout would.
type Confirmer struct {
	api    *client.API
	logger *zap.Logger
}

var _ ports.CardConfirmer = (*Confirmer)(nil)

type Option func(*options)

type options struct {
	backendURL string
	httpClient *http.Client
	logger     *zap.Logger
}

// WithBackendURL points the client at another API host, e.g. a local stub.
func WithBackendURL(url string) Option {
	return func(o *options) {
		o.backendURL = url
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New rejects anything but a publishable key; secret keys must never reach
// the console.
func New(publishableKey string, opts ...Option) (*Confirmer, error) {
	publishableKey = strings.TrimSpace(publishableKey)
	if !strings.HasPrefix(publishableKey, publishableKeyPrefix) {
		return nil, ErrNotConfigured
	}

	cfg := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	backendConfig := &stripego.BackendConfig{
		MaxNetworkRetries: stripego.Int64(0),
		LeveledLogger:     cfg.logger.Sugar(),
	}
	if cfg.backendURL != "" {
		backendConfig.URL = stripego.String(cfg.backendURL)
	}
	if cfg.httpClient != nil {
		backendConfig.HTTPClient = cfg.httpClient
	}
	backend := stripego.GetBackendWithConfig(stripego.APIBackend, backendConfig)

	var api client.API
	api.Init(publishableKey, &stripego.Backends{API: backend, Connect: backend, Uploads: backend})

	return &Confirmer{api: &api, logger: cfg.logger}, nil
}

// PaymentIntentID recovers "pi_123" from "pi_123_secret_abc".
func PaymentIntentID(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret_")
	if !found || !strings.HasPrefix(id, "pi_") {
		return "", ErrInvalidSecret
	}
	return id, nil
}

func (c *Confirmer) ConfirmCardPayment(ctx context.Context, clientSecret string, paymentMethodID string) (domain.CardConfirmation, error) {
	intentID, err := PaymentIntentID(clientSecret)
	if err != nil {
		return domain.CardConfirmation{}, err
	}
	if strings.TrimSpace(paymentMethodID) == "" {
		return domain.CardConfirmation{}, fmt.Errorf("%w: payment method id is required", domain.ErrValidation)
	}

	params := &stripego.PaymentIntentConfirmParams{
		PaymentMethod: stripego.String(paymentMethodID),
	}
	params.Context = ctx
	params.AddExtra("client_secret", clientSecret)

	intent, err := c.api.PaymentIntents.Confirm(intentID, params)
	if err != nil {
		var stripeErr *stripego.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripego.ErrorTypeCard {
			return domain.CardConfirmation{}, fmt.Errorf("%w: %s", ErrPaymentDeclined, stripeErr.Msg)
		}
		return domain.CardConfirmation{}, fmt.Errorf("confirm payment intent: %w", err)
	}

	c.logger.Debug("payment intent confirmed", zap.String("payment_intent", intent.ID), zap.String("status", string(intent.Status)))

	confirmation := domain.CardConfirmation{PaymentIntentID: intent.ID, Status: string(intent.Status)}
	switch intent.Status {
	case stripego.PaymentIntentStatusSucceeded, stripego.PaymentIntentStatusProcessing:
		return confirmation, nil
	case stripego.PaymentIntentStatusRequiresAction:
		return confirmation, ErrPaymentRequiresAction
	default:
		return confirmation, fmt.Errorf("%w: payment intent status %s", ErrPaymentDeclined, intent.Status)
	}
}
