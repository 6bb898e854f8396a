package domain

import "time"

type DraftID string

type WizardMode string

const (
	WizardModeCreate WizardMode = "create"
	WizardModeEdit   WizardMode = "edit"
)

type Step int

const (
	StepCompany Step = iota + 1
	StepLocations
	StepDomain
	StepSettings
	StepReview
	StepPayment
	StepLaunch
	// StepFinished is terminal and sits outside the numbered steps.
	StepFinished
)

func (s Step) Title() string {
	switch s {
	case StepCompany:
		return "Company"
	case StepLocations:
		return "Locations"
	case StepDomain:
		return "Domain"
	case StepSettings:
		return "Settings"
	case StepReview:
		return "Review"
	case StepPayment:
		return "Payment"
	case StepLaunch:
		return "Launch"
	case StepFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

func (s Step) String() string {
	return s.Title()
}

func TotalSteps(mode WizardMode) int {
	if mode == WizardModeEdit {
		return int(StepReview)
	}
	return int(StepLaunch)
}

// WizardDraft is everything the provisioning wizard knows between actions.
type WizardDraft struct {
	ID              DraftID
	Mode            WizardMode
	Step            Step
	Form            BusinessForm
	Business        *Business
	IdempotencyKey  string
	PaymentSetup    *PaymentSetup
	LaunchConfirmed bool
	Closed          bool
	LastError       string
	Message         string
	UpdatedAt       time.Time
}

func (d WizardDraft) TotalSteps() int {
	return TotalSteps(d.Mode)
}
