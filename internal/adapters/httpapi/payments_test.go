package httpapi

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/simplu-io/simplu-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlansMapsBothPriceShapes(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/plans", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":"plan_solo","key":"solo","name":"Solo","businessType":"dental","prices":[
			{"id":"price_m","currency":"ron","unitAmount":9900,"recurring":{"interval":"month"}},
			{"id":"price_y","currency":"ron","unit_amount":99000,"interval":"year"}
		]}]`)
	}, "")

	plans, err := client.GetPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 1)

	assert.Equal(t, "dental", plans[0].Category)
	assert.Equal(t, []domain.Price{
		{ID: "price_m", Interval: domain.BillingMonthly, Currency: "RON", UnitAmount: 9900},
		{ID: "price_y", Interval: domain.BillingYearly, Currency: "RON", UnitAmount: 99000},
	}, plans[0].Prices)
}

func TestGetPlansRejectsPriceWithoutID(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"id":"plan_solo","prices":[{"currency":"ron"}]}]`)
	}, "")

	_, err := client.GetPlans(context.Background())
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestGetPlansByCategory(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"gym":[{"id":"plan_gym","prices":[]}]}`)
	}, "")

	grouped, err := client.GetPlansByCategory(context.Background())
	require.NoError(t, err)
	require.Len(t, grouped["gym"], 1)
	assert.Equal(t, "gym", grouped["gym"][0].Category)
}

func TestCreateSubscriptionExtractsClientSecret(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody = decodeBody(t, r)
		_, _ = io.WriteString(w, `{"subscription":{"id":"sub_1","status":"incomplete","latest_invoice":{"payment_intent":{"client_secret":"pi_9_secret_x"}}}}`)
	}, "token")

	sub, err := client.CreateSubscription(context.Background(), domain.CreateSubscriptionRequest{
		PriceID:       "price_basic_monthly",
		CustomerEmail: "ana@example.com",
		CustomerName:  "Ana",
		Currency:      "RON",
	})
	require.NoError(t, err)

	assert.Equal(t, "ron", gotBody["currency"])
	assert.Equal(t, "price_basic_monthly", gotBody["priceId"])
	assert.Equal(t, "sub_1", sub.ID)
	assert.Equal(t, "pi_9_secret_x", sub.ClientSecret)
}

func TestGetCustomerSubscriptionsActivePath(t *testing.T) {
	t.Parallel()

	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":"sub_1","status":"active","current_period_end":1767225600,"items":{"data":[{"price":{"id":"price_m"}}]}}]`)
	}, "")

	subs, err := client.GetCustomerSubscriptions(context.Background(), "cus_1", true)
	require.NoError(t, err)
	_, err = client.GetCustomerSubscriptions(context.Background(), "cus_1", false)
	require.NoError(t, err)

	assert.Equal(t, []string{"/payments/customer/cus_1/subscriptions/active", "/payments/customer/cus_1/subscriptions"}, paths)
	require.Len(t, subs, 1)
	assert.Equal(t, "price_m", subs[0].PriceID)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), subs[0].CurrentPeriodEnd)
}

func TestGetInvoices(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"id":"in_1","number":"SMP-001","status":"open","total":14900,"currency":"ron","hostedInvoiceUrl":"https://pay.example/in_1","invoicePdf":"https://pay.example/in_1.pdf"}]`)
	}, "")

	invoices, err := client.GetInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, domain.Invoice{
		ID:        "in_1",
		Number:    "SMP-001",
		Status:    domain.InvoiceStatusOpen,
		Total:     14900,
		Currency:  "RON",
		HostedURL: "https://pay.example/in_1",
		PDFURL:    "https://pay.example/in_1.pdf",
	}, invoices[0])
}

func TestPayWithSavedCard(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody = decodeBody(t, r)
		_, _ = io.WriteString(w, `{"success":true,"status":"active","subscriptionId":"sub_2"}`)
	}, "token")

	result, err := client.PayWithSavedCard(context.Background(), "biz-1", domain.SavedCardPaymentRequest{PaymentMethodID: "pm_1", PriceID: "price_m"})
	require.NoError(t, err)

	assert.Equal(t, "/payments/business/biz-1/pay-with-saved-card", gotPath)
	assert.Equal(t, map[string]any{"paymentMethodId": "pm_1", "priceId": "price_m"}, gotBody)
	assert.True(t, result.Success)
	assert.Equal(t, "sub_2", result.SubscriptionID)
}

func TestUserEndpoints(t *testing.T) {
	t.Parallel()

	var defaultBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /users/me":
			_, _ = io.WriteString(w, `{"email":"ana@example.com","firstName":"Ana","lastName":"Pop","defaultPaymentMethodId":"pm_2","billingAddress":{"city":"Cluj"}}`)
		case "GET /users/me/payment-methods":
			_, _ = io.WriteString(w, `[{"id":"pm_1","card":{"brand":"visa","last4":"4242","exp_month":4,"exp_year":2030}},{"id":"pm_2","card":{"brand":"mastercard","last4":"4444"}}]`)
		case "PUT /users/me/payment-methods/default":
			defaultBody = decodeBody(t, r)
			_, _ = io.WriteString(w, `{"ok":true}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, "token")

	ctx := context.Background()
	user, err := client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana Pop", user.DisplayName())
	assert.Equal(t, "RO", user.BillingAddress.Country)

	methods, err := client.GetPaymentMethods(ctx)
	require.NoError(t, err)
	marked := user.MarkDefault(methods)
	require.Len(t, marked, 2)
	assert.False(t, marked[0].Default)
	assert.True(t, marked[1].Default)
	assert.Equal(t, "VISA •••• 4242 (04/30)", marked[0].Label())

	require.NoError(t, client.SetDefaultPaymentMethod(ctx, "pm_1"))
	assert.Equal(t, map[string]any{"paymentMethodId": "pm_1"}, defaultBody)
}

func TestSubscriptionStatusAndValidation(t *testing.T) {
	t.Parallel()

	var validateBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /payments/business/biz-1/subscription/status":
			_, _ = io.WriteString(w, `{"subscriptionId":"sub_1","status":"trialing","paymentStatus":"trialing"}`)
		case "POST /payments/validate-subscription":
			validateBody = decodeBody(t, r)
			_, _ = io.WriteString(w, `{"valid":false,"status":"incomplete","message":"Payment pending"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, "token")

	status, err := client.GetBusinessSubscriptionStatus(context.Background(), "biz-1")
	require.NoError(t, err)
	assert.True(t, status.Active)
	assert.Equal(t, domain.PaymentStatusTrialing, status.PaymentStatus)

	validation, err := client.ValidateSubscription(context.Background(), "sub_1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"subscriptionId": "sub_1"}, validateBody)
	assert.Equal(t, domain.SubscriptionValidation{Valid: false, Status: "incomplete", Message: "Payment pending"}, validation)
}
