package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Drafts  []draftSchema `toml:"drafts"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported drafts schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type draftSchema struct {
	ID              string              `toml:"id"`
	Mode            string              `toml:"mode"`
	Step            int                 `toml:"step"`
	IdempotencyKey  string              `toml:"idempotency_key"`
	LaunchConfirmed bool                `toml:"launch_confirmed"`
	Closed          bool                `toml:"closed"`
	LastError       string              `toml:"last_error,omitempty"`
	Message         string              `toml:"message,omitempty"`
	UpdatedAt       string              `toml:"updated_at"`
	Form            formSchema          `toml:"form"`
	Business        *businessSchema     `toml:"business,omitempty"`
	PaymentSetup    *paymentSetupSchema `toml:"payment_setup,omitempty"`
}

type formSchema struct {
	CompanyName        string           `toml:"company_name"`
	RegistrationNumber string           `toml:"registration_number"`
	TaxCode            string           `toml:"tax_code"`
	BusinessType       string           `toml:"business_type"`
	SubscriptionType   string           `toml:"subscription_type"`
	DomainType         string           `toml:"domain_type"`
	DomainLabel        string           `toml:"domain_label"`
	CustomTLD          string           `toml:"custom_tld"`
	ClientPageType     string           `toml:"client_page_type"`
	ConfigureForEmail  string           `toml:"configure_for_email,omitempty"`
	Currency           string           `toml:"currency"`
	Language           string           `toml:"language"`
	Locations          []locationSchema `toml:"locations"`
}

type locationSchema struct {
	ID       string `toml:"id"`
	Name     string `toml:"name"`
	Address  string `toml:"address"`
	Timezone string `toml:"timezone"`
	Active   bool   `toml:"active"`
}

type businessSchema struct {
	ID            string     `toml:"id"`
	Status        string     `toml:"status"`
	PaymentStatus string     `toml:"payment_status"`
	CreatedBy     string     `toml:"created_by,omitempty"`
	OwnerEmail    string     `toml:"owner_email,omitempty"`
	CreatedAt     string     `toml:"created_at,omitempty"`
	UpdatedAt     string     `toml:"updated_at,omitempty"`
	Snapshot      formSchema `toml:"snapshot"`
}

type paymentSetupSchema struct {
	SubscriptionID string `toml:"subscription_id"`
	Status         string `toml:"status"`
	ClientSecret   string `toml:"client_secret"`
	Confirmed      bool   `toml:"confirmed,omitempty"`
}
