package domain

import (
	"strings"
	"time"
)

const SubdomainSuffix = "simplu.io"

type BusinessID string

type BusinessType string

const (
	BusinessTypeDental BusinessType = "dental"
	BusinessTypeGym    BusinessType = "gym"
	BusinessTypeHotel  BusinessType = "hotel"
	BusinessTypeSalon  BusinessType = "salon"
	BusinessTypeClinic BusinessType = "clinic"
	BusinessTypeOther  BusinessType = "other"
)

type SubscriptionType string

const (
	SubscriptionSolo       SubscriptionType = "solo"
	SubscriptionTeam       SubscriptionType = "team"
	SubscriptionEnterprise SubscriptionType = "enterprise"
)

type DomainType string

const (
	DomainTypeSubdomain DomainType = "subdomain"
	DomainTypeCustom    DomainType = "custom"
)

type ClientPageType string

const (
	ClientPageWebsite ClientPageType = "website"
	ClientPageForm    ClientPageType = "form"
)

type BusinessStatus string

const (
	BusinessStatusSuspended BusinessStatus = "suspended"
	BusinessStatusActive    BusinessStatus = "active"
	BusinessStatusDeleted   BusinessStatus = "deleted"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusTrialing PaymentStatus = "trialing"
)

type Location struct {
	ID       string
	Name     string
	Address  string
	Timezone string
	Active   bool
}

type BusinessSettings struct {
	Currency string
	Language string
}

type Business struct {
	ID                 BusinessID
	CompanyName        string
	RegistrationNumber string
	TaxCode            string
	BusinessType       BusinessType
	SubscriptionType   SubscriptionType
	Locations          []Location
	DomainType         DomainType
	DomainLabel        string
	CustomTLD          string
	ClientPageType     ClientPageType
	ConfigureForEmail  string
	Settings           BusinessSettings
	Status             BusinessStatus
	PaymentStatus      PaymentStatus
	CreatedBy          string
	OwnerEmail         string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Launchable reports whether the backend will accept a launch for b.
func (b Business) Launchable() bool {
	return b.Status == BusinessStatusSuspended && b.PaymentStatus != PaymentStatusUnpaid
}

func (b Business) NeedsPayment() bool {
	return b.Status == BusinessStatusSuspended && b.PaymentStatus == PaymentStatusUnpaid
}

func (b Business) ActiveLocations() []Location {
	active := make([]Location, 0, len(b.Locations))
	for _, location := range b.Locations {
		if location.Active {
			active = append(active, location)
		}
	}
	return active
}

func (b Business) PublicURL() string {
	return PublicURL(b.DomainType, b.DomainLabel, b.CustomTLD)
}

// PublicURL derives the host a launched business is served on. It returns an
// empty string while the label (or the custom TLD) is still missing.
func PublicURL(domainType DomainType, label string, tld string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}

	if domainType == DomainTypeCustom {
		tld = strings.TrimPrefix(strings.TrimSpace(tld), ".")
		if tld == "" {
			return ""
		}
		return label + "." + tld
	}

	return label + "." + SubdomainSuffix
}

// StatusSnapshot is the lightweight status view of a business.
type StatusSnapshot struct {
	Status        BusinessStatus
	PaymentStatus PaymentStatus
}

// Invitation describes a business configured on behalf of another email.
type Invitation struct {
	BusinessID  BusinessID
	CompanyName string
	Email       string
	Status      string
}
