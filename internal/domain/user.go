package domain

import (
	"fmt"
	"strings"
)

type BillingAddress struct {
	Company    string
	Street     string
	City       string
	District   string
	PostalCode string
	Country    string
}

type User struct {
	Email              string
	Name               string
	FirstName          string
	LastName           string
	Phone              string
	EntityType         string
	RegistrationNumber string
	TaxCode            string
	BillingAddress     BillingAddress
	StripeCustomerID   string

	// DefaultPaymentMethodID is read-only; change it via the payment-methods endpoint.
	DefaultPaymentMethodID string
}

// MarkDefault flags the user's default card within methods.
func (u User) MarkDefault(methods []PaymentMethod) []PaymentMethod {
	marked := make([]PaymentMethod, len(methods))
	for i, method := range methods {
		method.Default = u.DefaultPaymentMethodID != "" && method.ID == u.DefaultPaymentMethodID
		marked[i] = method
	}
	return marked
}

func (u User) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	if full := strings.TrimSpace(u.FirstName + " " + u.LastName); full != "" {
		return full
	}
	return u.Email
}

// SetField applies a single named profile edit. Billing address fields are
// addressed as billingAddress.<field>.
func (u *User) SetField(name string, value string) error {
	switch name {
	case "name":
		u.Name = value
	case "firstName":
		u.FirstName = value
	case "lastName":
		u.LastName = value
	case "phone":
		u.Phone = value
	case "entityType":
		u.EntityType = value
	case "registrationNumber":
		u.RegistrationNumber = value
	case "taxCode":
		u.TaxCode = value
	case "billingAddress.company":
		u.BillingAddress.Company = value
	case "billingAddress.street":
		u.BillingAddress.Street = value
	case "billingAddress.city":
		u.BillingAddress.City = value
	case "billingAddress.district":
		u.BillingAddress.District = value
	case "billingAddress.postalCode":
		u.BillingAddress.PostalCode = value
	case "billingAddress.country":
		u.BillingAddress.Country = strings.ToUpper(value)
	default:
		return fmt.Errorf("%w: unknown profile field %q", ErrValidation, name)
	}
	return nil
}

// Identity is who the current session belongs to, as claimed by the ID token.
type Identity struct {
	Subject string
	Email   string
}

func (i Identity) Known() bool {
	return i.Subject != "" || i.Email != ""
}

// CanManageBilling decides whether identity may pay for or launch b. When
// billing was delegated to an email, only that email qualifies; otherwise the
// creator does. Records that carry no creator information pass and leave the
// decision to the backend.
func CanManageBilling(b Business, identity Identity) bool {
	if delegated := strings.TrimSpace(b.ConfigureForEmail); delegated != "" {
		return identity.Email != "" && strings.EqualFold(delegated, strings.TrimSpace(identity.Email))
	}

	if b.CreatedBy == "" && b.OwnerEmail == "" {
		return true
	}
	if b.CreatedBy != "" && b.CreatedBy == identity.Subject {
		return true
	}
	return b.OwnerEmail != "" && strings.EqualFold(b.OwnerEmail, strings.TrimSpace(identity.Email))
}
