package httpapi

import (
	"strings"
	"time"

	"github.com/simplu-io/simplu-cli/internal/domain"
)

type locationDTO struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Timezone string `json:"timezone"`
	Active   bool   `json:"active"`
}

type settingsDTO struct {
	Currency string `json:"currency"`
	Language string `json:"language"`
}

// businessDTO accepts both "businessId" and "id"; the backend has used both.
type businessDTO struct {
	BusinessID         string        `json:"businessId" validate:"required_without=ID"`
	ID                 string        `json:"id" validate:"required_without=BusinessID"`
	CompanyName        string        `json:"companyName"`
	RegistrationNumber string        `json:"registrationNumber"`
	TaxCode            string        `json:"taxCode"`
	BusinessType       string        `json:"businessType"`
	SubscriptionType   string        `json:"subscriptionType"`
	Locations          []locationDTO `json:"locations"`
	DomainType         string        `json:"domainType"`
	DomainLabel        string        `json:"domainLabel"`
	CustomTLD          string        `json:"customTld"`
	ClientPageType     string        `json:"clientPageType"`
	ConfigureForEmail  string        `json:"configureForEmail"`
	Settings           settingsDTO   `json:"settings"`
	Status             string        `json:"status" validate:"required,oneof=suspended active deleted"`
	PaymentStatus      string        `json:"paymentStatus" validate:"required,oneof=unpaid paid trialing"`
	CreatedBy          string        `json:"createdBy"`
	OwnerEmail         string        `json:"ownerEmail"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

func (d businessDTO) toDomain() domain.Business {
	id := d.BusinessID
	if id == "" {
		id = d.ID
	}

	locations := make([]domain.Location, 0, len(d.Locations))
	for _, location := range d.Locations {
		locations = append(locations, domain.Location{
			ID:       location.ID,
			Name:     location.Name,
			Address:  location.Address,
			Timezone: location.Timezone,
			Active:   location.Active,
		})
	}

	return domain.Business{
		ID:                 domain.BusinessID(id),
		CompanyName:        d.CompanyName,
		RegistrationNumber: d.RegistrationNumber,
		TaxCode:            d.TaxCode,
		BusinessType:       domain.BusinessType(d.BusinessType),
		SubscriptionType:   domain.SubscriptionType(d.SubscriptionType),
		Locations:          locations,
		DomainType:         domain.DomainType(d.DomainType),
		DomainLabel:        d.DomainLabel,
		CustomTLD:          d.CustomTLD,
		ClientPageType:     domain.ClientPageType(d.ClientPageType),
		ConfigureForEmail:  d.ConfigureForEmail,
		Settings:           domain.BusinessSettings{Currency: d.Settings.Currency, Language: d.Settings.Language},
		Status:             domain.BusinessStatus(d.Status),
		PaymentStatus:      domain.PaymentStatus(d.PaymentStatus),
		CreatedBy:          d.CreatedBy,
		OwnerEmail:         d.OwnerEmail,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

type businessPayloadDTO struct {
	CompanyName        string        `json:"companyName"`
	RegistrationNumber string        `json:"registrationNumber"`
	TaxCode            string        `json:"taxCode"`
	BusinessType       string        `json:"businessType"`
	SubscriptionType   string        `json:"subscriptionType"`
	Locations          []locationDTO `json:"locations"`
	DomainType         string        `json:"domainType"`
	DomainLabel        string        `json:"domainLabel"`
	CustomTLD          string        `json:"customTld,omitempty"`
	ClientPageType     string        `json:"clientPageType"`
	ConfigureForEmail  string        `json:"configureForEmail,omitempty"`
	Settings           settingsDTO   `json:"settings"`
}

func fromPayload(p domain.BusinessPayload) businessPayloadDTO {
	locations := make([]locationDTO, 0, len(p.Locations))
	for _, location := range p.Locations {
		locations = append(locations, locationDTO{
			Name:     location.Name,
			Address:  location.Address,
			Timezone: location.Timezone,
			Active:   location.Active,
		})
	}

	tld := p.CustomTLD
	if p.DomainType != domain.DomainTypeCustom {
		tld = ""
	}

	return businessPayloadDTO{
		CompanyName:        p.CompanyName,
		RegistrationNumber: p.RegistrationNumber,
		TaxCode:            p.TaxCode,
		BusinessType:       string(p.BusinessType),
		SubscriptionType:   string(p.SubscriptionType),
		Locations:          locations,
		DomainType:         string(p.DomainType),
		DomainLabel:        p.DomainLabel,
		CustomTLD:          tld,
		ClientPageType:     string(p.ClientPageType),
		ConfigureForEmail:  p.ConfigureForEmail,
		Settings:           settingsDTO{Currency: p.Settings.Currency, Language: p.Settings.Language},
	}
}

type paymentSetupRequestDTO struct {
	SubscriptionType string `json:"subscriptionType"`
	BillingInterval  string `json:"billingInterval"`
	Currency         string `json:"currency"`
}

type paymentSetupDTO struct {
	SubscriptionID string `json:"subscriptionId"`
	Status         string `json:"status"`
	ClientSecret   string `json:"clientSecret" validate:"required"`
}

func (d paymentSetupDTO) toDomain() domain.PaymentSetup {
	return domain.PaymentSetup{
		SubscriptionID: d.SubscriptionID,
		Status:         d.Status,
		ClientSecret:   d.ClientSecret,
	}
}

type recurringDTO struct {
	Interval string `json:"interval"`
}

type priceDTO struct {
	ID         string        `json:"id" validate:"required"`
	Currency   string        `json:"currency"`
	UnitAmount *int64        `json:"unitAmount"`
	UnitAmnt   *int64        `json:"unit_amount"`
	Interval   string        `json:"interval"`
	Recurring  *recurringDTO `json:"recurring"`
}

func (d priceDTO) toDomain() domain.Price {
	interval := d.Interval
	if interval == "" && d.Recurring != nil {
		interval = d.Recurring.Interval
	}

	var amount int64
	switch {
	case d.UnitAmount != nil:
		amount = *d.UnitAmount
	case d.UnitAmnt != nil:
		amount = *d.UnitAmnt
	}

	return domain.Price{
		ID:         d.ID,
		Interval:   domain.BillingInterval(interval),
		Currency:   strings.ToUpper(d.Currency),
		UnitAmount: amount,
	}
}

type planDTO struct {
	ID           string     `json:"id" validate:"required"`
	Key          string     `json:"key"`
	Name         string     `json:"name"`
	BusinessType string     `json:"businessType"`
	Prices       []priceDTO `json:"prices" validate:"dive"`
}

func (d planDTO) toDomain() domain.Plan {
	prices := make([]domain.Price, 0, len(d.Prices))
	for _, price := range d.Prices {
		prices = append(prices, price.toDomain())
	}
	return domain.Plan{
		ID:       d.ID,
		Key:      d.Key,
		Name:     d.Name,
		Category: d.BusinessType,
		Prices:   prices,
	}
}

type invoiceDTO struct {
	ID               string `json:"id" validate:"required"`
	Number           string `json:"number"`
	Status           string `json:"status" validate:"required"`
	Total            int64  `json:"total"`
	Currency         string `json:"currency"`
	HostedInvoiceURL string `json:"hostedInvoiceUrl"`
	InvoicePDF       string `json:"invoicePdf"`
	Created          int64  `json:"created"`
}

func (d invoiceDTO) toDomain() domain.Invoice {
	invoice := domain.Invoice{
		ID:        d.ID,
		Number:    d.Number,
		Status:    domain.InvoiceStatus(d.Status),
		Total:     d.Total,
		Currency:  strings.ToUpper(d.Currency),
		HostedURL: d.HostedInvoiceURL,
		PDFURL:    d.InvoicePDF,
	}
	if d.Created > 0 {
		invoice.Created = time.Unix(d.Created, 0).UTC()
	}
	return invoice
}

type subscriptionItemDTO struct {
	Price struct {
		ID string `json:"id"`
	} `json:"price"`
}

type subscriptionDTO struct {
	ID                string `json:"id" validate:"required"`
	Status            string `json:"status"`
	Customer          string `json:"customer"`
	CurrentPeriodEnd  int64  `json:"current_period_end"`
	CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
	Items             struct {
		Data []subscriptionItemDTO `json:"data"`
	} `json:"items"`
	LatestInvoice *struct {
		PaymentIntent *struct {
			ClientSecret string `json:"client_secret"`
		} `json:"payment_intent"`
	} `json:"latest_invoice"`
}

func (d subscriptionDTO) toDomain() domain.Subscription {
	sub := domain.Subscription{
		ID:                d.ID,
		Status:            d.Status,
		CustomerID:        d.Customer,
		CancelAtPeriodEnd: d.CancelAtPeriodEnd,
	}
	if d.CurrentPeriodEnd > 0 {
		sub.CurrentPeriodEnd = time.Unix(d.CurrentPeriodEnd, 0).UTC()
	}
	if len(d.Items.Data) > 0 {
		sub.PriceID = d.Items.Data[0].Price.ID
	}
	if d.LatestInvoice != nil && d.LatestInvoice.PaymentIntent != nil {
		sub.ClientSecret = d.LatestInvoice.PaymentIntent.ClientSecret
	}
	return sub
}

// createSubscriptionDTO is the create-subscription answer, which nests the
// provider subscription object.
type createSubscriptionDTO struct {
	Subscription subscriptionDTO `json:"subscription"`
}

type savedCardPaymentDTO struct {
	Success        bool   `json:"success"`
	Status         string `json:"status"`
	SubscriptionID string `json:"subscriptionId"`
	ClientSecret   string `json:"clientSecret"`
	Message        string `json:"message"`
}

func (d savedCardPaymentDTO) toDomain() domain.SavedCardPayment {
	return domain.SavedCardPayment{
		Success:        d.Success,
		Status:         d.Status,
		SubscriptionID: d.SubscriptionID,
		ClientSecret:   d.ClientSecret,
		Message:        d.Message,
	}
}

type billingAddressDTO struct {
	Company    string `json:"company"`
	Street     string `json:"street"`
	City       string `json:"city"`
	District   string `json:"district"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type userDTO struct {
	Email              string            `json:"email" validate:"required"`
	Name               string            `json:"name"`
	FirstName          string            `json:"firstName"`
	LastName           string            `json:"lastName"`
	Phone              string            `json:"phone"`
	EntityType         string            `json:"entityType"`
	RegistrationNumber string            `json:"registrationNumber"`
	TaxCode            string            `json:"taxCode"`
	BillingAddress     billingAddressDTO `json:"billingAddress"`
	StripeCustomerID   string            `json:"stripeCustomerId,omitempty"`
	DefaultPaymentID   string            `json:"defaultPaymentMethodId,omitempty"`
}

func (d userDTO) toDomain() domain.User {
	country := d.BillingAddress.Country
	if country == "" {
		country = "RO"
	}
	return domain.User{
		Email:              d.Email,
		Name:               d.Name,
		FirstName:          d.FirstName,
		LastName:           d.LastName,
		Phone:              d.Phone,
		EntityType:         d.EntityType,
		RegistrationNumber: d.RegistrationNumber,
		TaxCode:            d.TaxCode,
		BillingAddress: domain.BillingAddress{
			Company:    d.BillingAddress.Company,
			Street:     d.BillingAddress.Street,
			City:       d.BillingAddress.City,
			District:   d.BillingAddress.District,
			PostalCode: d.BillingAddress.PostalCode,
			Country:    country,
		},
		StripeCustomerID:       d.StripeCustomerID,
		DefaultPaymentMethodID: d.DefaultPaymentID,
	}
}

// userUpdateDTO omits read-only identity fields.
type userUpdateDTO struct {
	FirstName          string            `json:"firstName"`
	LastName           string            `json:"lastName"`
	Phone              string            `json:"phone"`
	EntityType         string            `json:"entityType"`
	RegistrationNumber string            `json:"registrationNumber"`
	TaxCode            string            `json:"taxCode"`
	BillingAddress     billingAddressDTO `json:"billingAddress"`
}

func fromUser(u domain.User) userUpdateDTO {
	return userUpdateDTO{
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Phone:              u.Phone,
		EntityType:         u.EntityType,
		RegistrationNumber: u.RegistrationNumber,
		TaxCode:            u.TaxCode,
		BillingAddress: billingAddressDTO{
			Company:    u.BillingAddress.Company,
			Street:     u.BillingAddress.Street,
			City:       u.BillingAddress.City,
			District:   u.BillingAddress.District,
			PostalCode: u.BillingAddress.PostalCode,
			Country:    u.BillingAddress.Country,
		},
	}
}

type paymentMethodDTO struct {
	ID   string `json:"id" validate:"required"`
	Card struct {
		Brand    string `json:"brand"`
		Last4    string `json:"last4"`
		ExpMonth int    `json:"exp_month"`
		ExpYear  int    `json:"exp_year"`
	} `json:"card"`
}

func (d paymentMethodDTO) toDomain() domain.PaymentMethod {
	return domain.PaymentMethod{
		ID:       d.ID,
		Brand:    d.Card.Brand,
		Last4:    d.Card.Last4,
		ExpMonth: d.Card.ExpMonth,
		ExpYear:  d.Card.ExpYear,
	}
}

type businessStatusDTO struct {
	Status        string `json:"status" validate:"required,oneof=suspended active deleted"`
	PaymentStatus string `json:"paymentStatus" validate:"required,oneof=unpaid paid trialing"`
}

type invitationDTO struct {
	BusinessID  string `json:"businessId"`
	CompanyName string `json:"companyName"`
	Email       string `json:"email" validate:"omitempty,email"`
	Status      string `json:"status"`
}

func (d invitationDTO) toDomain() domain.Invitation {
	return domain.Invitation{
		BusinessID:  domain.BusinessID(d.BusinessID),
		CompanyName: d.CompanyName,
		Email:       d.Email,
		Status:      d.Status,
	}
}

type subscriptionStatusDTO struct {
	SubscriptionID string `json:"subscriptionId"`
	Status         string `json:"status" validate:"required"`
	PaymentStatus  string `json:"paymentStatus"`
	Active         bool   `json:"active"`
}

func (d subscriptionStatusDTO) toDomain() domain.SubscriptionStatus {
	return domain.SubscriptionStatus{
		SubscriptionID: d.SubscriptionID,
		Status:         d.Status,
		PaymentStatus:  domain.PaymentStatus(d.PaymentStatus),
		Active:         d.Active || d.Status == "active" || d.Status == "trialing",
	}
}

type subscriptionValidationDTO struct {
	Valid   bool   `json:"valid"`
	Status  string `json:"status"`
	Message string `json:"message"`
}
