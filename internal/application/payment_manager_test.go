package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/simplu-io/simplu-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayments struct {
	plans         []domain.Plan
	invoices      []domain.Invoice
	subscriptions []domain.Subscription
	created       []domain.CreateSubscriptionRequest
	saved         []domain.SavedCardPaymentRequest
	savedResult   domain.SavedCardPayment
	customerQuery string
}

func (f *fakePayments) GetPlans(context.Context) ([]domain.Plan, error) {
	return f.plans, nil
}

func (f *fakePayments) GetPlansByCategory(context.Context) (map[string][]domain.Plan, error) {
	byCategory := map[string][]domain.Plan{}
	for _, plan := range f.plans {
		byCategory[plan.Category] = append(byCategory[plan.Category], plan)
	}
	return byCategory, nil
}

func (f *fakePayments) CreateSubscription(_ context.Context, req domain.CreateSubscriptionRequest) (domain.Subscription, error) {
	f.created = append(f.created, req)
	return domain.Subscription{ID: "sub_new", Status: "incomplete", PriceID: req.PriceID, ClientSecret: "pi_sub_secret"}, nil
}

func (f *fakePayments) GetSubscription(_ context.Context, id string) (domain.Subscription, error) {
	for _, sub := range f.subscriptions {
		if sub.ID == id {
			return sub, nil
		}
	}
	return domain.Subscription{}, errors.New("Subscription not found")
}

func (f *fakePayments) CancelSubscription(_ context.Context, id string) (domain.Subscription, error) {
	return domain.Subscription{ID: id, Status: "active", CancelAtPeriodEnd: true}, nil
}

func (f *fakePayments) GetCustomerSubscriptions(_ context.Context, customerID string, activeOnly bool) ([]domain.Subscription, error) {
	f.customerQuery = customerID
	if !activeOnly {
		return f.subscriptions, nil
	}
	active := []domain.Subscription{}
	for _, sub := range f.subscriptions {
		if sub.Status == "active" {
			active = append(active, sub)
		}
	}
	return active, nil
}

func (f *fakePayments) GetInvoices(context.Context) ([]domain.Invoice, error) {
	return f.invoices, nil
}

func (f *fakePayments) GetBusinessSubscriptionStatus(_ context.Context, id domain.BusinessID) (domain.SubscriptionStatus, error) {
	return domain.SubscriptionStatus{SubscriptionID: "sub_" + string(id), Status: "active", PaymentStatus: domain.PaymentStatusPaid, Active: true}, nil
}

func (f *fakePayments) ValidateSubscription(_ context.Context, id string) (domain.SubscriptionValidation, error) {
	return domain.SubscriptionValidation{Valid: id == "sub_ok", Status: "active"}, nil
}

func (f *fakePayments) PayWithSavedCard(_ context.Context, _ domain.BusinessID, req domain.SavedCardPaymentRequest) (domain.SavedCardPayment, error) {
	f.saved = append(f.saved, req)
	return f.savedResult, nil
}

type fakeUsers struct {
	user       domain.User
	methods    []domain.PaymentMethod
	updates    []domain.User
	added      []string
	setDefault []string
}

func (f *fakeUsers) Me(context.Context) (domain.User, error) {
	return f.user, nil
}

func (f *fakeUsers) UpdateMe(_ context.Context, user domain.User) (domain.User, error) {
	f.updates = append(f.updates, user)
	f.user = user
	return user, nil
}

func (f *fakeUsers) GetPaymentMethods(context.Context) ([]domain.PaymentMethod, error) {
	return f.methods, nil
}

func (f *fakeUsers) AddPaymentMethod(_ context.Context, id string, _ string) (domain.PaymentMethod, error) {
	f.added = append(f.added, id)
	method := domain.PaymentMethod{ID: id, Brand: "visa", Last4: "4242"}
	f.methods = append(f.methods, method)
	return method, nil
}

func (f *fakeUsers) SetDefaultPaymentMethod(_ context.Context, id string) error {
	f.setDefault = append(f.setDefault, id)
	f.user.DefaultPaymentMethodID = id
	return nil
}

var testPlans = []domain.Plan{
	{
		ID:       "prod_solo",
		Key:      "solo",
		Name:     "Solo",
		Category: "dental",
		Prices: []domain.Price{
			{ID: "price_solo_month", Interval: domain.BillingMonthly, Currency: "ron", UnitAmount: 9900},
			{ID: "price_solo_year", Interval: domain.BillingYearly, Currency: "ron", UnitAmount: 99000},
		},
	},
	{
		ID:       "prod_gym",
		Key:      "gym",
		Name:     "Gym",
		Category: "gym",
		Prices:   []domain.Price{{ID: "price_gym_month", Interval: domain.BillingMonthly, Currency: "eur", UnitAmount: 4900}},
	},
}

type paymentFixture struct {
	manager   *PaymentManager
	payments  *fakePayments
	users     *fakeUsers
	backend   *fakeBackend
	confirmer *fakeConfirmer
}

func newPaymentFixture(t *testing.T, identity domain.Identity) *paymentFixture {
	t.Helper()

	f := &paymentFixture{
		payments: &fakePayments{plans: testPlans},
		users: &fakeUsers{
			user: domain.User{Email: "ana@example.com", FirstName: "Ana", LastName: "Pop", StripeCustomerID: "cus_1", DefaultPaymentMethodID: "pm_default"},
			methods: []domain.PaymentMethod{
				{ID: "pm_other", Brand: "mastercard", Last4: "4444"},
				{ID: "pm_default", Brand: "visa", Last4: "4242"},
			},
		},
		backend:   newFakeBackend(),
		confirmer: &fakeConfirmer{},
	}
	f.manager = NewPaymentManager(PaymentManagerConfig{
		Payments:       f.payments,
		Users:          f.users,
		Businesses:     f.backend,
		Cards:          f.confirmer,
		Identity:       staticIdentity{identity: identity},
		DefaultPriceID: "price_solo_month",
	})
	return f
}

func TestPaymentManagerInvoicesNewestFirst(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture(t, ana)
	f.payments.invoices = []domain.Invoice{
		{ID: "in_1", Status: domain.InvoiceStatusPaid, Created: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "in_3", Status: domain.InvoiceStatusOpen, Created: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "in_2", Status: domain.InvoiceStatusUncollectible, Created: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
	}

	all, err := f.manager.Invoices(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"in_3", "in_2", "in_1"}, invoiceIDs(all))

	unpaid, err := f.manager.Invoices(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, []string{"in_3", "in_2"}, invoiceIDs(unpaid))
}

func invoiceIDs(invoices []domain.Invoice) []string {
	ids := make([]string, 0, len(invoices))
	for _, invoice := range invoices {
		ids = append(ids, invoice.ID)
	}
	return ids
}

func TestPaymentManagerCardsFlagDefault(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture(t, ana)
	cards, err := f.manager.Cards(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.False(t, cards[0].Default)
	assert.True(t, cards[1].Default)

	card, err := SelectCard(cards, "")
	require.NoError(t, err)
	assert.Equal(t, "pm_default", card.ID)

	_, err = SelectCard(cards, "pm_missing")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "not saved")

	_, err = SelectCard([]domain.PaymentMethod{{ID: "pm_1"}}, "")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "select a card")
}

func TestPaymentManagerAddAndDefaultCard(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture(t, ana)
	ctx := context.Background()

	_, err := f.manager.AddCard(ctx, "tok_visa", "")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.users.added)

	cards, err := f.manager.AddCard(ctx, " pm_new ", "work card")
	require.NoError(t, err)
	assert.Equal(t, []string{"pm_new"}, f.users.added)
	assert.Len(t, cards, 3)

	_, err = f.manager.SetDefaultCard(ctx, "pm_default")
	require.NoError(t, err)
	assert.Empty(t, f.users.setDefault)

	cards, err = f.manager.SetDefaultCard(ctx, "pm_new")
	require.NoError(t, err)
	assert.Equal(t, []string{"pm_new"}, f.users.setDefault)
	card, err := SelectCard(cards, "")
	require.NoError(t, err)
	assert.Equal(t, "pm_new", card.ID)
}

func TestPaymentManagerUpdateProfile(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture(t, ana)
	ctx := context.Background()

	user, err := f.manager.UpdateProfile(ctx, map[string]string{
		"phone":                  "+40 700 000 000",
		"billingAddress.city":    " Cluj ",
		"billingAddress.country": "ro",
	})
	require.NoError(t, err)
	assert.Equal(t, "Cluj", user.BillingAddress.City)
	assert.Equal(t, "RO", user.BillingAddress.Country)
	assert.Equal(t, "+40 700 000 000", user.Phone)
	require.Len(t, f.users.updates, 1)

	_, err = f.manager.UpdateProfile(ctx, map[string]string{"email": "x@example.com"})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, f.users.updates, 1)
}

func TestPaymentManagerSubscribe(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture(t, ana)
	ctx := context.Background()

	sub, err := f.manager.Subscribe(ctx, SubscribeCommand{})
	require.NoError(t, err)
	assert.Equal(t, "incomplete", sub.Status)
	require.Len(t, f.payments.created, 1)
	assert.Equal(t, domain.CreateSubscriptionRequest{
		PriceID:       "price_solo_month",
		CustomerEmail: "ana@example.com",
		CustomerName:  "Ana Pop",
		Currency:      "ron",
	}, f.payments.created[0])
	assert.Empty(t, f.confirmer.calls)

	sub, err = f.manager.Subscribe(ctx, SubscribeCommand{PriceID: "price_gym_month", PaymentMethodID: "pm_default"})
	require.NoError(t, err)
	assert.Equal(t, "succeeded", sub.Status)
	assert.Equal(t, []string{"pi_sub_secret|pm_default"}, f.confirmer.calls)

	_, err = f.manager.Subscribe(ctx, SubscribeCommand{PriceID: "price_unknown"})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, f.payments.created, 2)
}

func TestPaymentManagerSubscriptions(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture(t, ana)
	ctx := context.Background()
	f.payments.subscriptions = []domain.Subscription{{ID: "sub_a", Status: "active"}, {ID: "sub_b", Status: "canceled"}}

	active, err := f.manager.Subscriptions(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 1)
	assert.Equal(t, "cus_1", f.payments.customerQuery)

	f.users.user.StripeCustomerID = ""
	none, err := f.manager.Subscriptions(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.manager.CancelSubscription(ctx, " ")
	require.ErrorIs(t, err, domain.ErrValidation)

	canceled, err := f.manager.CancelSubscription(ctx, "sub_a")
	require.NoError(t, err)
	assert.True(t, canceled.CancelAtPeriodEnd)

	validation, err := f.manager.ValidateSubscription(ctx, "sub_ok")
	require.NoError(t, err)
	assert.True(t, validation.Valid)

	status, err := f.manager.BusinessSubscriptionStatus(ctx, "biz-1")
	require.NoError(t, err)
	assert.True(t, status.Active)
}

func TestPaymentManagerPayWithSavedCard(t *testing.T) {
	t.Parallel()

	t.Run("confirms when the provider asks for it", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t, ana)
		f.backend.businesses["biz-1"] = suspendedUnpaid("biz-1")
		f.payments.savedResult = domain.SavedCardPayment{Status: "requires_action", ClientSecret: "pi_saved_secret"}

		result, err := f.manager.PayWithSavedCard(context.Background(), SavedCardCommand{BusinessID: "biz-1"})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "succeeded", result.Status)
		assert.Equal(t, []domain.SavedCardPaymentRequest{{PaymentMethodID: "pm_default", PriceID: "price_solo_month"}}, f.payments.saved)
		assert.Equal(t, []string{"pi_saved_secret|pm_default"}, f.confirmer.calls)
	})

	t.Run("immediate success", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t, ana)
		f.backend.businesses["biz-1"] = suspendedUnpaid("biz-1")
		f.payments.savedResult = domain.SavedCardPayment{Success: true, Status: "active", SubscriptionID: "sub_9"}

		result, err := f.manager.PayWithSavedCard(context.Background(), SavedCardCommand{BusinessID: "biz-1", PaymentMethodID: "pm_other", PriceID: "price_solo_year"})
		require.NoError(t, err)
		assert.Equal(t, "sub_9", result.SubscriptionID)
		assert.Equal(t, "pm_other", f.payments.saved[0].PaymentMethodID)
		assert.Empty(t, f.confirmer.calls)
	})

	t.Run("foreign business", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t, domain.Identity{Subject: "sub-bob"})
		f.backend.businesses["biz-1"] = suspendedUnpaid("biz-1")

		_, err := f.manager.PayWithSavedCard(context.Background(), SavedCardCommand{BusinessID: "biz-1"})
		require.ErrorIs(t, err, domain.ErrForbidden)
		assert.Empty(t, f.payments.saved)
	})

	t.Run("already paid", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t, ana)
		paid := suspendedUnpaid("biz-1")
		paid.PaymentStatus = domain.PaymentStatusPaid
		f.backend.businesses["biz-1"] = paid

		_, err := f.manager.PayWithSavedCard(context.Background(), SavedCardCommand{BusinessID: "biz-1"})
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, f.payments.saved)
	})
}
