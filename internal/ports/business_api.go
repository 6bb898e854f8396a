package ports

import (
	"context"

	"github.com/simplu-io/simplu-cli/internal/domain"
)

// BusinessAPI is the remote business registry.
type BusinessAPI interface {
	ConfigureBusiness(ctx context.Context, payload domain.BusinessPayload, idempotencyKey string) (domain.Business, error)
	UpdateBusiness(ctx context.Context, id domain.BusinessID, payload domain.BusinessPayload) (domain.Business, error)
	GetBusiness(ctx context.Context, id domain.BusinessID) (domain.Business, error)
	ListBusinesses(ctx context.Context) ([]domain.Business, error)
	SetupPayment(ctx context.Context, id domain.BusinessID, req domain.PaymentSetupRequest) (domain.PaymentSetup, error)
	LaunchBusiness(ctx context.Context, id domain.BusinessID) (domain.Business, error)
}
