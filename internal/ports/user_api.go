package ports

import (
	"context"

	"github.com/simplu-io/simplu-cli/internal/domain"
)

type UserAPI interface {
	Me(ctx context.Context) (domain.User, error)
	UpdateMe(ctx context.Context, user domain.User) (domain.User, error)
	GetPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)
	AddPaymentMethod(ctx context.Context, paymentMethodID string, description string) (domain.PaymentMethod, error)
	SetDefaultPaymentMethod(ctx context.Context, paymentMethodID string) error
}
