package ports

import (
	"context"

	"github.com/simplu-io/simplu-cli/internal/domain"
)

// CardConfirmer completes a payment intent client-side with a saved card.
type CardConfirmer interface {
	ConfirmCardPayment(ctx context.Context, clientSecret string, paymentMethodID string) (domain.CardConfirmation, error)
}
