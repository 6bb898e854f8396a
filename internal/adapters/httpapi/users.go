package httpapi

import (
	"context"
	"net/http"

	"github.com/simplu-io/simplu-cli/internal/domain"
	"github.com/simplu-io/simplu-cli/internal/ports"
)

var _ ports.UserAPI = (*Client)(nil)

func (c *Client) Me(ctx context.Context) (domain.User, error) {
	return c.user(ctx, request{method: http.MethodGet, path: "/users/me"})
}

func (c *Client) UpdateMe(ctx context.Context, user domain.User) (domain.User, error) {
	return c.user(ctx, request{method: http.MethodPut, path: "/users/me", body: fromUser(user)})
}

func (c *Client) GetPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	body, err := c.do(ctx, request{method: http.MethodGet, path: "/users/me/payment-methods"})
	if err != nil {
		return nil, err
	}

	items, err := decodeList[paymentMethodDTO](c, "payment methods", body)
	if err != nil {
		return nil, err
	}

	methods := make([]domain.PaymentMethod, 0, len(items))
	for _, item := range items {
		methods = append(methods, item.toDomain())
	}
	return methods, nil
}

func (c *Client) AddPaymentMethod(ctx context.Context, paymentMethodID string, description string) (domain.PaymentMethod, error) {
	body, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/users/me/payment-methods",
		body: map[string]string{
			"paymentMethodId": paymentMethodID,
			"description":     description,
		},
	})
	if err != nil {
		return domain.PaymentMethod{}, err
	}

	dto, err := decodeOne[paymentMethodDTO](c, "payment method", body)
	if err != nil {
		return domain.PaymentMethod{}, err
	}
	return dto.toDomain(), nil
}

func (c *Client) SetDefaultPaymentMethod(ctx context.Context, paymentMethodID string) error {
	_, err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/users/me/payment-methods/default",
		body:   map[string]string{"paymentMethodId": paymentMethodID},
	})
	if err != nil {
		return err
	}
	return nil
}

func (c *Client) user(ctx context.Context, req request) (domain.User, error) {
	body, err := c.do(ctx, req)
	if err != nil {
		return domain.User{}, err
	}

	dto, err := decodeOne[userDTO](c, "user", body)
	if err != nil {
		return domain.User{}, err
	}
	return dto.toDomain(), nil
}
