package domain

import (
	"fmt"
	"strings"
)

const (
	DefaultTimezone = "Europe/Bucharest"
	DefaultCurrency = "RON"
	DefaultLanguage = "ro"
	DefaultTLD      = "ro"
)

// BusinessForm is the editable copy of a business held by the wizard.
type BusinessForm struct {
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
}

// BusinessPayload is the body of configure and update requests.
type BusinessPayload struct {
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
}

func NewBusinessForm() BusinessForm {
	return BusinessForm{
		BusinessType:     BusinessTypeDental,
		SubscriptionType: SubscriptionSolo,
		Locations: []Location{
			{ID: "loc-1", Name: "Location 1", Timezone: DefaultTimezone, Active: true},
		},
		DomainType:     DomainTypeSubdomain,
		CustomTLD:      DefaultTLD,
		ClientPageType: ClientPageWebsite,
		Settings: BusinessSettings{
			Currency: DefaultCurrency,
			Language: DefaultLanguage,
		},
	}
}

// FormFromBusiness seeds an edit form, filling the gaps with the same
// defaults a new form starts with.
func FormFromBusiness(b Business) BusinessForm {
	form := NewBusinessForm()
	form.CompanyName = b.CompanyName
	form.RegistrationNumber = b.RegistrationNumber
	form.TaxCode = b.TaxCode
	form.ConfigureForEmail = b.ConfigureForEmail
	form.DomainLabel = b.DomainLabel

	if b.BusinessType != "" {
		form.BusinessType = b.BusinessType
	}
	if b.SubscriptionType != "" {
		form.SubscriptionType = b.SubscriptionType
	}
	if b.DomainType != "" {
		form.DomainType = b.DomainType
	}
	if b.CustomTLD != "" {
		form.CustomTLD = b.CustomTLD
	}
	if b.ClientPageType != "" {
		form.ClientPageType = b.ClientPageType
	}
	if b.Settings.Currency != "" {
		form.Settings.Currency = b.Settings.Currency
	}
	if b.Settings.Language != "" {
		form.Settings.Language = b.Settings.Language
	}

	if len(b.Locations) > 0 {
		form.Locations = make([]Location, 0, len(b.Locations))
		for i, location := range b.Locations {
			if location.ID == "" {
				location.ID = fmt.Sprintf("loc-%d", i+1)
			}
			if location.Timezone == "" {
				location.Timezone = DefaultTimezone
			}
			form.Locations = append(form.Locations, location)
		}
	}

	return form
}

func (f BusinessForm) Payload() BusinessPayload {
	locations := make([]Location, 0, len(f.Locations))
	for _, location := range f.Locations {
		timezone := location.Timezone
		if timezone == "" {
			timezone = DefaultTimezone
		}
		locations = append(locations, Location{
			Name:     location.Name,
			Address:  location.Address,
			Timezone: timezone,
			Active:   location.Active,
		})
	}

	return BusinessPayload{
		CompanyName:        strings.TrimSpace(f.CompanyName),
		RegistrationNumber: strings.TrimSpace(f.RegistrationNumber),
		TaxCode:            strings.TrimSpace(f.TaxCode),
		BusinessType:       f.BusinessType,
		SubscriptionType:   f.SubscriptionType,
		Locations:          locations,
		DomainType:         f.DomainType,
		DomainLabel:        strings.TrimSpace(f.DomainLabel),
		CustomTLD:          strings.TrimSpace(f.CustomTLD),
		ClientPageType:     f.ClientPageType,
		ConfigureForEmail:  strings.TrimSpace(f.ConfigureForEmail),
		Settings:           f.Settings,
	}
}

func (f BusinessForm) PublicURL() string {
	return PublicURL(f.DomainType, f.DomainLabel, f.CustomTLD)
}

// AddLocation appends a location with the next free "loc-N" id.
func (f *BusinessForm) AddLocation(location Location) Location {
	used := make(map[string]struct{}, len(f.Locations))
	for _, existing := range f.Locations {
		used[existing.ID] = struct{}{}
	}

	for i := len(f.Locations) + 1; ; i++ {
		id := fmt.Sprintf("loc-%d", i)
		if _, ok := used[id]; !ok {
			location.ID = id
			break
		}
	}
	if location.Timezone == "" {
		location.Timezone = DefaultTimezone
	}
	if strings.TrimSpace(location.Name) == "" {
		location.Name = fmt.Sprintf("Location %d", len(f.Locations)+1)
	}

	f.Locations = append(f.Locations, location)
	return location
}

func (f *BusinessForm) UpdateLocation(id string, patch func(*Location)) error {
	for i := range f.Locations {
		if f.Locations[i].ID == id {
			patch(&f.Locations[i])
			f.Locations[i].ID = id
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrLocationNotFound, id)
}

func (f *BusinessForm) RemoveLocation(id string) error {
	for i := range f.Locations {
		if f.Locations[i].ID == id {
			f.Locations = append(f.Locations[:i], f.Locations[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrLocationNotFound, id)
}

// SetField applies a single named form edit, using the same field names the
// backend uses on the wire.
func (f *BusinessForm) SetField(name string, value string) error {
	switch name {
	case "companyName":
		f.CompanyName = value
	case "registrationNumber":
		f.RegistrationNumber = value
	case "taxCode":
		f.TaxCode = value
	case "businessType":
		f.BusinessType = BusinessType(value)
	case "subscriptionType":
		f.SubscriptionType = SubscriptionType(value)
	case "domainType":
		f.DomainType = DomainType(value)
	case "domainLabel":
		f.DomainLabel = value
	case "customTld":
		f.CustomTLD = value
	case "clientPageType":
		f.ClientPageType = ClientPageType(value)
	case "configureForEmail":
		f.ConfigureForEmail = value
	case "currency":
		f.Settings.Currency = value
	case "language":
		f.Settings.Language = value
	default:
		return fmt.Errorf("%w: unknown form field %q", ErrValidation, name)
	}
	return nil
}

func FormFields() []string {
	return []string{
		"companyName",
		"registrationNumber",
		"taxCode",
		"businessType",
		"subscriptionType",
		"domainType",
		"domainLabel",
		"customTld",
		"clientPageType",
		"configureForEmail",
		"currency",
		"language",
	}
}
