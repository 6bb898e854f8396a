package domain

import (
	"fmt"
	"strings"
	"time"
)

type BillingInterval string

const (
	BillingMonthly BillingInterval = "month"
	BillingYearly  BillingInterval = "year"
)

type Price struct {
	ID         string
	Interval   BillingInterval
	Currency   string
	UnitAmount int64
}

type Plan struct {
	ID       string
	Key      string
	Name     string
	Category string
	Prices   []Price
}

// PriceByID looks a price up across plans, returning the owning plan too.
func PriceByID(plans []Plan, priceID string) (Plan, Price, bool) {
	for _, plan := range plans {
		for _, price := range plan.Prices {
			if price.ID == priceID {
				return plan, price, true
			}
		}
	}
	return Plan{}, Price{}, false
}

type PaymentMethod struct {
	ID       string
	Brand    string
	Last4    string
	ExpMonth int
	ExpYear  int
	Default  bool
}

func (m PaymentMethod) Label() string {
	label := fmt.Sprintf("%s •••• %s", strings.ToUpper(m.Brand), m.Last4)
	if m.ExpMonth > 0 && m.ExpYear > 0 {
		label += fmt.Sprintf(" (%02d/%d)", m.ExpMonth, m.ExpYear%100)
	}
	return label
}

type InvoiceStatus string

const (
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusOpen          InvoiceStatus = "open"
	InvoiceStatusDraft         InvoiceStatus = "draft"
	InvoiceStatusUncollectible InvoiceStatus = "uncollectible"
	InvoiceStatusVoid          InvoiceStatus = "void"
)

type Invoice struct {
	ID        string
	Number    string
	Status    InvoiceStatus
	Total     int64
	Currency  string
	HostedURL string
	PDFURL    string
	Created   time.Time
}

func (i Invoice) Paid() bool {
	return i.Status == InvoiceStatusPaid
}

func UnpaidInvoices(invoices []Invoice) []Invoice {
	unpaid := make([]Invoice, 0, len(invoices))
	for _, invoice := range invoices {
		if !invoice.Paid() {
			unpaid = append(unpaid, invoice)
		}
	}
	return unpaid
}

type Subscription struct {
	ID                string
	Status            string
	PriceID           string
	CustomerID        string
	CurrentPeriodEnd  time.Time
	CancelAtPeriodEnd bool
	ClientSecret      string
}

type PaymentSetupRequest struct {
	SubscriptionType SubscriptionType
	BillingInterval  BillingInterval
	Currency         string
}

// PaymentSetup is the server-side subscription intent created for a business.
type PaymentSetup struct {
	SubscriptionID string
	Status         string
	ClientSecret   string
	// Confirmed is set once the card confirmation went through.
	Confirmed      bool
}

type SavedCardPaymentRequest struct {
	PaymentMethodID string
	PriceID         string
}

type SavedCardPayment struct {
	Success        bool
	Status         string
	SubscriptionID string
	ClientSecret   string
	Message        string
}

type CreateSubscriptionRequest struct {
	PriceID       string
	CustomerEmail string
	CustomerName  string
	Currency      string
}

type CardConfirmation struct {
	PaymentIntentID string
	Status          string
}

// FormatMinorUnits renders an amount held in minor units, e.g. 1250 RON -> "12.50 RON".
func FormatMinorUnits(amount int64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, amount/100, amount%100, strings.ToUpper(currency))
}

type SubscriptionStatus struct {
	SubscriptionID string
	Status         string
	PaymentStatus  PaymentStatus
	Active         bool
}

type SubscriptionValidation struct {
	Valid   bool
	Status  string
	Message string
}
