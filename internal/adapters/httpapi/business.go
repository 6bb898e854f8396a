package httpapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/simplu-io/simplu-cli/internal/domain"
	"github.com/simplu-io/simplu-cli/internal/ports"
)

var (
	_ ports.BusinessAPI = (*Client)(nil)
	_ ports.StatusAPI   = (*Client)(nil)
)

func businessPath(id domain.BusinessID, suffix ...string) string {
	parts := append([]string{"/businesses", url.PathEscape(string(id))}, suffix...)
	return strings.Join(parts, "/")
}

func (c *Client) ConfigureBusiness(ctx context.Context, payload domain.BusinessPayload, idempotencyKey string) (domain.Business, error) {
	req := request{method: http.MethodPost, path: "/businesses/configure", body: fromPayload(payload)}
	if idempotencyKey != "" {
		req.headers = map[string]string{headerIdempotencyKey: idempotencyKey}
	}
	return c.business(ctx, req)
}

func (c *Client) UpdateBusiness(ctx context.Context, id domain.BusinessID, payload domain.BusinessPayload) (domain.Business, error) {
	return c.business(ctx, request{method: http.MethodPut, path: businessPath(id), body: fromPayload(payload)})
}

func (c *Client) GetBusiness(ctx context.Context, id domain.BusinessID) (domain.Business, error) {
	return c.business(ctx, request{method: http.MethodGet, path: businessPath(id)})
}

func (c *Client) LaunchBusiness(ctx context.Context, id domain.BusinessID) (domain.Business, error) {
	return c.business(ctx, request{method: http.MethodPost, path: businessPath(id, "launch")})
}

func (c *Client) ListBusinesses(ctx context.Context) ([]domain.Business, error) {
	body, err := c.do(ctx, request{method: http.MethodGet, path: "/businesses"})
	if err != nil {
		return nil, err
	}

	items, err := decodeList[businessDTO](c, "business list", body)
	if err != nil {
		return nil, err
	}

	businesses := make([]domain.Business, 0, len(items))
	for _, item := range items {
		businesses = append(businesses, item.toDomain())
	}
	return businesses, nil
}

func (c *Client) SetupPayment(ctx context.Context, id domain.BusinessID, setup domain.PaymentSetupRequest) (domain.PaymentSetup, error) {
	interval := setup.BillingInterval
	if interval == "" {
		interval = domain.BillingMonthly
	}

	body, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   businessPath(id, "payment"),
		body: paymentSetupRequestDTO{
			SubscriptionType: string(setup.SubscriptionType),
			BillingInterval:  string(interval),
			Currency:         strings.ToLower(setup.Currency),
		},
	})
	if err != nil {
		return domain.PaymentSetup{}, err
	}

	dto, err := decodeOne[paymentSetupDTO](c, "payment setup", body)
	if err != nil {
		return domain.PaymentSetup{}, err
	}
	return dto.toDomain(), nil
}

// BusinessStatus fetches the lightweight status view of a business.
func (c *Client) BusinessStatus(ctx context.Context, id domain.BusinessID) (domain.StatusSnapshot, error) {
	body, err := c.do(ctx, request{method: http.MethodGet, path: businessPath(id, "status")})
	if err != nil {
		return domain.StatusSnapshot{}, err
	}

	dto, err := decodeOne[businessStatusDTO](c, "business status", body)
	if err != nil {
		return domain.StatusSnapshot{}, err
	}
	return domain.StatusSnapshot{
		Status:        domain.BusinessStatus(dto.Status),
		PaymentStatus: domain.PaymentStatus(dto.PaymentStatus),
	}, nil
}

func (c *Client) GetInvitationInfo(ctx context.Context, id domain.BusinessID, email string) (domain.Invitation, error) {
	body, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   businessPath(id, "invitation"),
		query:  map[string]string{"email": email},
	})
	if err != nil {
		return domain.Invitation{}, err
	}

	dto, err := decodeOne[invitationDTO](c, "invitation", body)
	if err != nil {
		return domain.Invitation{}, err
	}
	invitation := dto.toDomain()
	if invitation.BusinessID == "" {
		invitation.BusinessID = id
	}
	if invitation.Email == "" {
		invitation.Email = email
	}
	return invitation, nil
}

func (c *Client) business(ctx context.Context, req request) (domain.Business, error) {
	body, err := c.do(ctx, req)
	if err != nil {
		return domain.Business{}, err
	}

	dto, err := decodeOne[businessDTO](c, "business", body)
	if err != nil {
		return domain.Business{}, err
	}
	return dto.toDomain(), nil
}
