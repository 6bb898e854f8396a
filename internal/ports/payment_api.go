package ports

import (
	"context"

	"github.com/simplu-io/simplu-cli/internal/domain"
)

type PaymentAPI interface {
	GetPlans(ctx context.Context) ([]domain.Plan, error)
	GetPlansByCategory(ctx context.Context) (map[string][]domain.Plan, error)
	CreateSubscription(ctx context.Context, req domain.CreateSubscriptionRequest) (domain.Subscription, error)
	GetSubscription(ctx context.Context, id string) (domain.Subscription, error)
	CancelSubscription(ctx context.Context, id string) (domain.Subscription, error)
	GetCustomerSubscriptions(ctx context.Context, customerID string, activeOnly bool) ([]domain.Subscription, error)
	GetInvoices(ctx context.Context) ([]domain.Invoice, error)
	GetBusinessSubscriptionStatus(ctx context.Context, businessID domain.BusinessID) (domain.SubscriptionStatus, error)
	ValidateSubscription(ctx context.Context, subscriptionID string) (domain.SubscriptionValidation, error)
	PayWithSavedCard(ctx context.Context, businessID domain.BusinessID, req domain.SavedCardPaymentRequest) (domain.SavedCardPayment, error)
}
