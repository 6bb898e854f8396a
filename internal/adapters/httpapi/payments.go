package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/simplu-io/simplu-cli/internal/domain"
	"github.com/simplu-io/simplu-cli/internal/ports"
)

var _ ports.PaymentAPI = (*Client)(nil)

func (c *Client) GetPlans(ctx context.Context) ([]domain.Plan, error) {
	body, err := c.do(ctx, request{method: http.MethodGet, path: "/payments/plans"})
	if err != nil {
		return nil, err
	}

	items, err := decodeList[planDTO](c, "plans", body)
	if err != nil {
		return nil, err
	}
	return plansToDomain(items), nil
}

func (c *Client) GetPlansByCategory(ctx context.Context) (map[string][]domain.Plan, error) {
	body, err := c.do(ctx, request{method: http.MethodGet, path: "/payments/plans/categories"})
	if err != nil {
		return nil, err
	}

	var grouped map[string][]planDTO
	if err := json.Unmarshal(body, &grouped); err != nil {
		return nil, &SchemaError{Resource: "plan categories", Cause: err}
	}

	out := make(map[string][]domain.Plan, len(grouped))
	for category, plans := range grouped {
		for i := range plans {
			if err := c.validate.Struct(&plans[i]); err != nil {
				return nil, &SchemaError{Resource: "plan categories." + category, Cause: err}
			}
		}
		mapped := plansToDomain(plans)
		for i := range mapped {
			if mapped[i].Category == "" {
				mapped[i].Category = category
			}
		}
		out[category] = mapped
	}
	return out, nil
}

func plansToDomain(items []planDTO) []domain.Plan {
	plans := make([]domain.Plan, 0, len(items))
	for _, item := range items {
		plans = append(plans, item.toDomain())
	}
	return plans
}

func (c *Client) CreateSubscription(ctx context.Context, req domain.CreateSubscriptionRequest) (domain.Subscription, error) {
	body, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/payments/create-subscription",
		body: map[string]string{
			"priceId":       req.PriceID,
			"customerEmail": req.CustomerEmail,
			"customerName":  req.CustomerName,
			"currency":      strings.ToLower(req.Currency),
		},
	})
	if err != nil {
		return domain.Subscription{}, err
	}

	dto, err := decodeOne[createSubscriptionDTO](c, "subscription", body)
	if err != nil {
		return domain.Subscription{}, err
	}
	return dto.Subscription.toDomain(), nil
}

func (c *Client) GetSubscription(ctx context.Context, id string) (domain.Subscription, error) {
	return c.subscription(ctx, request{method: http.MethodGet, path: "/payments/subscription/" + url.PathEscape(id)})
}

func (c *Client) CancelSubscription(ctx context.Context, id string) (domain.Subscription, error) {
	return c.subscription(ctx, request{method: http.MethodPost, path: "/payments/subscription/" + url.PathEscape(id) + "/cancel"})
}

func (c *Client) GetCustomerSubscriptions(ctx context.Context, customerID string, activeOnly bool) ([]domain.Subscription, error) {
	path := "/payments/customer/" + url.PathEscape(customerID) + "/subscriptions"
	if activeOnly {
		path += "/active"
	}

	body, err := c.do(ctx, request{method: http.MethodGet, path: path})
	if err != nil {
		return nil, err
	}

	items, err := decodeList[subscriptionDTO](c, "subscriptions", body)
	if err != nil {
		return nil, err
	}

	subs := make([]domain.Subscription, 0, len(items))
	for _, item := range items {
		subs = append(subs, item.toDomain())
	}
	return subs, nil
}

func (c *Client) GetInvoices(ctx context.Context) ([]domain.Invoice, error) {
	body, err := c.do(ctx, request{method: http.MethodGet, path: "/payments/invoices"})
	if err != nil {
		return nil, err
	}

	items, err := decodeList[invoiceDTO](c, "invoices", body)
	if err != nil {
		return nil, err
	}

	invoices := make([]domain.Invoice, 0, len(items))
	for _, item := range items {
		invoices = append(invoices, item.toDomain())
	}
	return invoices, nil
}

func (c *Client) PayWithSavedCard(ctx context.Context, businessID domain.BusinessID, req domain.SavedCardPaymentRequest) (domain.SavedCardPayment, error) {
	body, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/payments/business/" + url.PathEscape(string(businessID)) + "/pay-with-saved-card",
		body: map[string]string{
			"paymentMethodId": req.PaymentMethodID,
			"priceId":         req.PriceID,
		},
	})
	if err != nil {
		return domain.SavedCardPayment{}, err
	}

	dto, err := decodeOne[savedCardPaymentDTO](c, "saved card payment", body)
	if err != nil {
		return domain.SavedCardPayment{}, err
	}
	return dto.toDomain(), nil
}

func (c *Client) subscription(ctx context.Context, req request) (domain.Subscription, error) {
	body, err := c.do(ctx, req)
	if err != nil {
		return domain.Subscription{}, err
	}

	dto, err := decodeOne[subscriptionDTO](c, "subscription", body)
	if err != nil {
		return domain.Subscription{}, err
	}
	return dto.toDomain(), nil
}

func (c *Client) GetBusinessSubscriptionStatus(ctx context.Context, businessID domain.BusinessID) (domain.SubscriptionStatus, error) {
	body, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/payments/business/" + url.PathEscape(string(businessID)) + "/subscription/status",
	})
	if err != nil {
		return domain.SubscriptionStatus{}, err
	}

	dto, err := decodeOne[subscriptionStatusDTO](c, "subscription status", body)
	if err != nil {
		return domain.SubscriptionStatus{}, err
	}
	return dto.toDomain(), nil
}

func (c *Client) ValidateSubscription(ctx context.Context, subscriptionID string) (domain.SubscriptionValidation, error) {
	body, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/payments/validate-subscription",
		body:   map[string]string{"subscriptionId": subscriptionID},
	})
	if err != nil {
		return domain.SubscriptionValidation{}, err
	}

	dto, err := decodeOne[subscriptionValidationDTO](c, "subscription validation", body)
	if err != nil {
		return domain.SubscriptionValidation{}, err
	}
	return domain.SubscriptionValidation{Valid: dto.Valid, Status: dto.Status, Message: dto.Message}, nil
}
