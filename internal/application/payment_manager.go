package application

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/simplu-io/simplu-cli/internal/domain"
	"github.com/simplu-io/simplu-cli/internal/ports"
	"go.uber.org/zap"
)

// PaymentManager covers billing outside the wizard: plans, invoices,
// subscriptions, saved cards and the user's billing profile.
type PaymentManager struct {
	payments       ports.PaymentAPI
	users          ports.UserAPI
	businesses     ports.BusinessAPI
	cards          ports.CardConfirmer
	identity       ports.IdentityProvider
	defaultPriceID string
	logger         *zap.Logger
}

type PaymentManagerConfig struct {
	Payments       ports.PaymentAPI
	Users          ports.UserAPI
	Businesses     ports.BusinessAPI
	Cards          ports.CardConfirmer
	Identity       ports.IdentityProvider
	DefaultPriceID string
	Logger         *zap.Logger
}

func NewPaymentManager(cfg PaymentManagerConfig) *PaymentManager {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &PaymentManager{
		payments:       cfg.Payments,
		users:          cfg.Users,
		businesses:     cfg.Businesses,
		cards:          cfg.Cards,
		identity:       cfg.Identity,
		defaultPriceID: cfg.DefaultPriceID,
		logger:         logger,
	}
}

func (m *PaymentManager) Plans(ctx context.Context) ([]domain.Plan, error) {
	return m.payments.GetPlans(ctx)
}

func (m *PaymentManager) PlansByCategory(ctx context.Context) (map[string][]domain.Plan, error) {
	return m.payments.GetPlansByCategory(ctx)
}

// Invoices returns invoices newest first, optionally only the unpaid ones.
func (m *PaymentManager) Invoices(ctx context.Context, unpaidOnly bool) ([]domain.Invoice, error) {
	invoices, err := m.payments.GetInvoices(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].Created.After(invoices[j].Created)
	})
	if unpaidOnly {
		return domain.UnpaidInvoices(invoices), nil
	}
	return invoices, nil
}

func (m *PaymentManager) Profile(ctx context.Context) (domain.User, error) {
	return m.users.Me(ctx)
}

func (m *PaymentManager) UpdateProfile(ctx context.Context, fields map[string]string) (domain.User, error) {
	if len(fields) == 0 {
		return domain.User{}, fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}

	user, err := m.users.Me(ctx)
	if err != nil {
		return domain.User{}, err
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := user.SetField(name, strings.TrimSpace(fields[name])); err != nil {
			return domain.User{}, err
		}
	}

	return m.users.UpdateMe(ctx, user)
}

// Cards lists the saved cards with the default one flagged.
func (m *PaymentManager) Cards(ctx context.Context) ([]domain.PaymentMethod, error) {
	user, err := m.users.Me(ctx)
	if err != nil {
		return nil, err
	}

	methods, err := m.users.GetPaymentMethods(ctx)
	if err != nil {
		return nil, err
	}
	return user.MarkDefault(methods), nil
}

// AddCard attaches a provider payment method and returns the refreshed list.
func (m *PaymentManager) AddCard(ctx context.Context, paymentMethodID string, description string) ([]domain.PaymentMethod, error) {
	paymentMethodID = strings.TrimSpace(paymentMethodID)
	if !strings.HasPrefix(paymentMethodID, "pm_") {
		return nil, fmt.Errorf("%w: %q is not a payment method id", domain.ErrValidation, paymentMethodID)
	}

	if _, err := m.users.AddPaymentMethod(ctx, paymentMethodID, description); err != nil {
		return nil, err
	}
	m.logger.Info("card added", zap.String("payment_method", paymentMethodID))

	return m.Cards(ctx)
}

// SetDefaultCard makes one of the saved cards the default and returns the refreshed list.
func (m *PaymentManager) SetDefaultCard(ctx context.Context, paymentMethodID string) ([]domain.PaymentMethod, error) {
	cards, err := m.Cards(ctx)
	if err != nil {
		return nil, err
	}
	card, err := SelectCard(cards, paymentMethodID)
	if err != nil {
		return nil, err
	}
	if card.Default {
		return cards, nil
	}

	if err := m.users.SetDefaultPaymentMethod(ctx, card.ID); err != nil {
		return nil, err
	}
	return m.Cards(ctx)
}

// SelectCard picks the card with the given id, or the default card when id is
// empty.
func SelectCard(cards []domain.PaymentMethod, id string) (domain.PaymentMethod, error) {
	id = strings.TrimSpace(id)
	for _, card := range cards {
		if (id == "" && card.Default) || (id != "" && card.ID == id) {
			return card, nil
		}
	}

	if id == "" {
		return domain.PaymentMethod{}, fmt.Errorf("%w: select a card", domain.ErrValidation)
	}
	return domain.PaymentMethod{}, fmt.Errorf("%w: card %s is not saved on this account", domain.ErrValidation, id)
}

func (m *PaymentManager) resolvePrice(ctx context.Context, priceID string) (domain.Plan, domain.Price, error) {
	if priceID == "" {
		priceID = m.defaultPriceID
	}
	if priceID == "" {
		return domain.Plan{}, domain.Price{}, fmt.Errorf("%w: a price is required", domain.ErrValidation)
	}

	plans, err := m.payments.GetPlans(ctx)
	if err != nil {
		return domain.Plan{}, domain.Price{}, err
	}
	plan, price, ok := domain.PriceByID(plans, priceID)
	if !ok {
		return domain.Plan{}, domain.Price{}, fmt.Errorf("%w: price %s is not offered by any plan", domain.ErrValidation, priceID)
	}
	return plan, price, nil
}

type SubscribeCommand struct {
	PriceID string
	// PaymentMethodID, when set, confirms the new subscription's first payment.
	PaymentMethodID string
}

// Subscribe creates a subscription for the current user on a listed price.
func (m *PaymentManager) Subscribe(ctx context.Context, cmd SubscribeCommand) (domain.Subscription, error) {
	_, price, err := m.resolvePrice(ctx, cmd.PriceID)
	if err != nil {
		return domain.Subscription{}, err
	}

	user, err := m.users.Me(ctx)
	if err != nil {
		return domain.Subscription{}, err
	}

	sub, err := m.payments.CreateSubscription(ctx, domain.CreateSubscriptionRequest{
		PriceID:       price.ID,
		CustomerEmail: user.Email,
		CustomerName:  user.DisplayName(),
		Currency:      price.Currency,
	})
	if err != nil {
		return domain.Subscription{}, err
	}

	if cmd.PaymentMethodID == "" || sub.ClientSecret == "" {
		return sub, nil
	}
	if m.cards == nil {
		return sub, ErrPaymentsUnavailable
	}
	confirmation, err := m.cards.ConfirmCardPayment(ctx, sub.ClientSecret, cmd.PaymentMethodID)
	if err != nil {
		return sub, fmt.Errorf("card payment failed: %w", err)
	}
	sub.Status = confirmation.Status
	return sub, nil
}

// Subscriptions lists the current user's subscriptions at the payment provider.
func (m *PaymentManager) Subscriptions(ctx context.Context, activeOnly bool) ([]domain.Subscription, error) {
	user, err := m.users.Me(ctx)
	if err != nil {
		return nil, err
	}
	if user.StripeCustomerID == "" {
		return []domain.Subscription{}, nil
	}
	return m.payments.GetCustomerSubscriptions(ctx, user.StripeCustomerID, activeOnly)
}

func (m *PaymentManager) CancelSubscription(ctx context.Context, id string) (domain.Subscription, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Subscription{}, fmt.Errorf("%w: a subscription id is required", domain.ErrValidation)
	}
	return m.payments.CancelSubscription(ctx, id)
}

func (m *PaymentManager) ValidateSubscription(ctx context.Context, id string) (domain.SubscriptionValidation, error) {
	if strings.TrimSpace(id) == "" {
		return domain.SubscriptionValidation{}, fmt.Errorf("%w: a subscription id is required", domain.ErrValidation)
	}
	return m.payments.ValidateSubscription(ctx, id)
}

func (m *PaymentManager) BusinessSubscriptionStatus(ctx context.Context, id domain.BusinessID) (domain.SubscriptionStatus, error) {
	return m.payments.GetBusinessSubscriptionStatus(ctx, id)
}

type SavedCardCommand struct {
	BusinessID      domain.BusinessID
	PaymentMethodID string
	PriceID         string
}

// PayWithSavedCard charges a saved card for a business. The card defaults to
// the user's default card and the price to the configured default price.
func (m *PaymentManager) PayWithSavedCard(ctx context.Context, cmd SavedCardCommand) (domain.SavedCardPayment, error) {
	business, err := m.businesses.GetBusiness(ctx, cmd.BusinessID)
	if err != nil {
		return domain.SavedCardPayment{}, err
	}
	if m.identity != nil {
		if identity, err := m.identity.Identity(ctx); err == nil && identity.Known() && !domain.CanManageBilling(business, identity) {
			return domain.SavedCardPayment{}, domain.ErrForbidden
		}
	}
	if !business.NeedsPayment() {
		return domain.SavedCardPayment{}, fmt.Errorf("%w: business %s is not awaiting payment", domain.ErrValidation, cmd.BusinessID)
	}

	cards, err := m.Cards(ctx)
	if err != nil {
		return domain.SavedCardPayment{}, err
	}
	card, err := SelectCard(cards, cmd.PaymentMethodID)
	if err != nil {
		return domain.SavedCardPayment{}, err
	}

	_, price, err := m.resolvePrice(ctx, cmd.PriceID)
	if err != nil {
		return domain.SavedCardPayment{}, err
	}

	result, err := m.payments.PayWithSavedCard(ctx, cmd.BusinessID, domain.SavedCardPaymentRequest{
		PaymentMethodID: card.ID,
		PriceID:         price.ID,
	})
	if err != nil {
		return domain.SavedCardPayment{}, err
	}

	if !result.Success && result.ClientSecret != "" && m.cards != nil {
		confirmation, err := m.cards.ConfirmCardPayment(ctx, result.ClientSecret, card.ID)
		if err != nil {
			return result, fmt.Errorf("card payment failed: %w", err)
		}
		result.Success = true
		result.Status = confirmation.Status
	}
	return result, nil
}
