package application

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/simplu-io/simplu-cli/internal/domain"
)

var dnsLabelPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

type formRules struct {
	CompanyName       string          `validate:"required"`
	BusinessType      string          `validate:"oneof=dental gym hotel salon clinic other"`
	SubscriptionType  string          `validate:"oneof=solo team enterprise"`
	DomainType        string          `validate:"oneof=subdomain custom"`
	DomainLabel       string          `validate:"required,dns_label"`
	CustomTLD         string          `validate:"required_if=DomainType custom"`
	ClientPageType    string          `validate:"oneof=website form"`
	ConfigureForEmail string          `validate:"omitempty,email"`
	Currency          string          `validate:"required,len=3"`
	Language          string          `validate:"required"`
	Locations         []locationRules `validate:"min=1,dive"`
}

type locationRules struct {
	Name     string `validate:"required"`
	Timezone string `validate:"required"`
}

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("dns_label", func(fl validator.FieldLevel) bool {
		return dnsLabelPattern.MatchString(fl.Field().String())
	})
	return v
}

// validatePayload runs the client-side checks a configure or update request
// must pass before it is sent.
func validatePayload(v *validator.Validate, payload domain.BusinessPayload) error {
	rules := formRules{
		CompanyName:       payload.CompanyName,
		BusinessType:      string(payload.BusinessType),
		SubscriptionType:  string(payload.SubscriptionType),
		DomainType:        string(payload.DomainType),
		DomainLabel:       payload.DomainLabel,
		CustomTLD:         payload.CustomTLD,
		ClientPageType:    string(payload.ClientPageType),
		ConfigureForEmail: payload.ConfigureForEmail,
		Currency:          payload.Settings.Currency,
		Language:          payload.Settings.Language,
	}
	for _, location := range payload.Locations {
		rules.Locations = append(rules.Locations, locationRules{Name: location.Name, Timezone: location.Timezone})
	}

	err := v.Struct(rules)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		problems = append(problems, describeFieldError(fieldErr))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(problems, "; "))
}

func describeFieldError(fieldErr validator.FieldError) string {
	field := fieldErr.Field()
	if strings.HasPrefix(fieldErr.Namespace(), "formRules.Locations[") {
		field = strings.TrimPrefix(fieldErr.Namespace(), "formRules.")
	}

	switch fieldErr.Tag() {
	case "required", "required_if":
		return field + " is required"
	case "min":
		if field == "Locations" {
			return "at least one location is required"
		}
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fieldErr.Param())
	case "dns_label":
		return field + " may contain only lowercase letters, digits and inner hyphens"
	case "email":
		return field + " must be an email address"
	case "len":
		return fmt.Sprintf("%s must be %s characters long", field, fieldErr.Param())
	}
	return fmt.Sprintf("%s failed %s", field, fieldErr.Tag())
}
