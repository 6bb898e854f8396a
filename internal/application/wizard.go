package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/qmuntal/stateless"
	"github.com/simplu-io/simplu-cli/internal/domain"
	"github.com/simplu-io/simplu-cli/internal/ports"
	"go.uber.org/zap"
)

type wizardTrigger string

const (
	triggerContinue  wizardTrigger = "continue"
	triggerBack      wizardTrigger = "back"
	triggerSubmitted wizardTrigger = "submitted"
	triggerPaid      wizardTrigger = "paid"
	triggerLaunched  wizardTrigger = "launched"
)

// PayCommand selects the card and billing terms for the wizard's payment step.
// Empty terms fall back to the form's subscription and currency, billed monthly.
type PayCommand struct {
	PaymentMethodID  string
	BillingInterval  domain.BillingInterval
	Currency         string
	SubscriptionType domain.SubscriptionType
}

type WizardOption func(*Wizard)

func WithWizardClock(clock ports.Clock) WizardOption {
	return func(w *Wizard) {
		if clock != nil {
			w.clock = clock
		}
	}
}

func WithWizardLogger(logger *zap.Logger) WizardOption {
	return func(w *Wizard) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithWizardIdentity enables the billing gate on the payment step.
func WithWizardIdentity(identity ports.IdentityProvider) WizardOption {
	return func(w *Wizard) {
		w.identity = identity
	}
}

func WithIDGenerator(newID func() string) WizardOption {
	return func(w *Wizard) {
		if newID != nil {
			w.newID = newID
		}
	}
}

// OnUpdated is called after an edit-mode review is accepted by the backend.
func OnUpdated(fn func(domain.Business)) WizardOption {
	return func(w *Wizard) {
		w.onUpdated = fn
	}
}

// OnLaunched is called after the backend accepted a launch.
func OnLaunched(fn func(domain.Business)) WizardOption {
	return func(w *Wizard) {
		w.onLaunched = fn
	}
}

// Wizard drives a WizardDraft through the provisioning steps. The draft's
// Step is the machine state, so whatever is persisted is the truth.
type Wizard struct {
	businesses ports.BusinessAPI
	drafts     ports.DraftRepository
	cards      ports.CardConfirmer
	identity   ports.IdentityProvider
	clock      ports.Clock
	logger     *zap.Logger
	validate   *validator.Validate
	newID      func() string
	onUpdated  func(domain.Business)
	onLaunched func(domain.Business)

	mu   sync.Mutex
	busy bool
}

func NewWizard(businesses ports.BusinessAPI, drafts ports.DraftRepository, cards ports.CardConfirmer, opts ...WizardOption) *Wizard {
	w := &Wizard{
		businesses: businesses,
		drafts:     drafts,
		cards:      cards,
		clock:      ports.SystemClock{},
		logger:     zap.NewNop(),
		validate:   newFormValidator(),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Wizard) acquire() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.busy {
		return ErrBusy
	}
	w.busy = true
	return nil
}

func (w *Wizard) release() {
	w.mu.Lock()
	w.busy = false
	w.mu.Unlock()
}

// Busy reports whether an action is outstanding.
func (w *Wizard) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// CanLaunch is true only for a launchable business whose launch the operator confirmed.
func CanLaunch(draft domain.WizardDraft) bool {
	return draft.Business != nil && draft.Business.Launchable() && draft.LaunchConfirmed
}

func (w *Wizard) machine(draft *domain.WizardDraft) *stateless.StateMachine {
	sm := stateless.NewStateMachineWithExternalStorage(
		func(context.Context) (stateless.State, error) {
			return draft.Step, nil
		},
		func(_ context.Context, state stateless.State) error {
			step, ok := state.(domain.Step)
			if !ok {
				return fmt.Errorf("unexpected wizard state %v", state)
			}
			draft.Step = step
			return nil
		},
		stateless.FiringImmediate,
	)

	last := domain.Step(draft.TotalSteps())
	for step := domain.StepCompany; step <= last; step++ {
		cfg := sm.Configure(step)

		if step == domain.StepCompany {
			cfg.Ignore(triggerBack)
		} else {
			cfg.Permit(triggerBack, step-1)
		}

		switch {
		case step == last:
			cfg.Ignore(triggerContinue)
		case step == domain.StepReview:
			cfg.Permit(triggerContinue, step+1, func(context.Context, ...any) bool {
				return draft.Business != nil
			})
		case step == domain.StepPayment:
			cfg.Permit(triggerContinue, step+1, func(context.Context, ...any) bool {
				return draft.Business != nil && draft.Business.PaymentStatus != domain.PaymentStatusUnpaid
			})
		default:
			cfg.Permit(triggerContinue, step+1)
		}
	}

	if draft.Mode == domain.WizardModeEdit {
		sm.Configure(domain.StepReview).Permit(triggerSubmitted, domain.StepFinished)
	} else {
		sm.Configure(domain.StepReview).Permit(triggerSubmitted, domain.StepPayment)
		sm.Configure(domain.StepPayment).Permit(triggerPaid, domain.StepLaunch)
		sm.Configure(domain.StepLaunch).Permit(triggerLaunched, domain.StepFinished)
	}

	sm.OnUnhandledTrigger(func(_ context.Context, state stateless.State, trigger stateless.Trigger, _ []string) error {
		return refusal(state, trigger)
	})

	return sm
}

func refusal(state stateless.State, trigger stateless.Trigger) error {
	step, _ := state.(domain.Step)
	switch {
	case trigger == triggerContinue && step == domain.StepReview:
		return fmt.Errorf("%w: submit the review before continuing", domain.ErrValidation)
	case trigger == triggerContinue && step == domain.StepPayment:
		return fmt.Errorf("%w: payment is still pending", domain.ErrValidation)
	case trigger == triggerSubmitted:
		return fmt.Errorf("%w: only the review step can be submitted (current step: %s)", domain.ErrValidation, step)
	case trigger == triggerPaid:
		return fmt.Errorf("%w: payment is only taken on the payment step (current step: %s)", domain.ErrValidation, step)
	case trigger == triggerLaunched:
		return fmt.Errorf("%w: launch happens on the launch step (current step: %s)", domain.ErrValidation, step)
	default:
		return fmt.Errorf("%w: %v is not possible from step %s", domain.ErrValidation, trigger, step)
	}
}

// run loads the draft, applies action under the busy guard, and persists the
// outcome. A failing action records its message and leaves the step alone.
func (w *Wizard) run(ctx context.Context, id domain.DraftID, action func(*domain.WizardDraft) error) (domain.WizardDraft, error) {
	if err := w.acquire(); err != nil {
		return domain.WizardDraft{}, err
	}
	defer w.release()

	draft, err := w.drafts.GetByID(ctx, id)
	if err != nil {
		return domain.WizardDraft{}, fmt.Errorf("load wizard draft: %w", err)
	}
	if draft.Closed {
		return draft, ErrWizardFinished
	}

	working := draft
	working.Form.Locations = slices.Clone(draft.Form.Locations)
	working.LastError = ""
	working.Message = ""

	if err := action(&working); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return draft, ctxErr
		}

		draft.LastError = err.Error()
		draft.Message = ""
		if working.PaymentSetup != nil {
			draft.PaymentSetup = working.PaymentSetup
		}
		draft.UpdatedAt = w.clock.Now()
		if saveErr := w.drafts.Save(ctx, draft); saveErr != nil {
			return draft, errors.Join(err, fmt.Errorf("save wizard draft: %w", saveErr))
		}
		return draft, err
	}

	working.UpdatedAt = w.clock.Now()
	if err := w.drafts.Save(ctx, working); err != nil {
		return draft, fmt.Errorf("save wizard draft: %w", err)
	}
	return working, nil
}

// Start opens a create-mode draft seeded with the default form.
func (w *Wizard) Start(ctx context.Context) (domain.WizardDraft, error) {
	if err := w.acquire(); err != nil {
		return domain.WizardDraft{}, err
	}
	defer w.release()

	draft := domain.WizardDraft{
		ID:             domain.DraftID(w.newID()),
		Mode:           domain.WizardModeCreate,
		Step:           domain.StepCompany,
		Form:           domain.NewBusinessForm(),
		IdempotencyKey: w.newID(),
		UpdatedAt:      w.clock.Now(),
	}
	if err := w.drafts.Save(ctx, draft); err != nil {
		return domain.WizardDraft{}, fmt.Errorf("save wizard draft: %w", err)
	}

	w.logger.Debug("wizard started", zap.String("draft", string(draft.ID)))
	return draft, nil
}

// Edit opens an edit-mode draft for an existing business.
func (w *Wizard) Edit(ctx context.Context, businessID domain.BusinessID) (domain.WizardDraft, error) {
	if err := w.acquire(); err != nil {
		return domain.WizardDraft{}, err
	}
	defer w.release()

	business, err := w.businesses.GetBusiness(ctx, businessID)
	if err != nil {
		return domain.WizardDraft{}, err
	}

	draft := domain.WizardDraft{
		ID:        domain.DraftID(w.newID()),
		Mode:      domain.WizardModeEdit,
		Step:      domain.StepCompany,
		Form:      domain.FormFromBusiness(business),
		Business:  &business,
		UpdatedAt: w.clock.Now(),
	}
	if err := w.drafts.Save(ctx, draft); err != nil {
		return domain.WizardDraft{}, fmt.Errorf("save wizard draft: %w", err)
	}

	w.logger.Debug("wizard editing business", zap.String("draft", string(draft.ID)), zap.String("business", string(business.ID)))
	return draft, nil
}

func (w *Wizard) Get(ctx context.Context, id domain.DraftID) (domain.WizardDraft, error) {
	return w.drafts.GetByID(ctx, id)
}

func (w *Wizard) List(ctx context.Context) ([]domain.WizardDraft, error) {
	return w.drafts.List(ctx)
}

// Current returns the most recently touched draft that is still open.
func (w *Wizard) Current(ctx context.Context) (domain.WizardDraft, error) {
	drafts, err := w.drafts.List(ctx)
	if err != nil {
		return domain.WizardDraft{}, err
	}
	for _, draft := range drafts {
		if !draft.Closed {
			return draft, nil
		}
	}
	return domain.WizardDraft{}, domain.ErrDraftNotFound
}

func (w *Wizard) Discard(ctx context.Context, id domain.DraftID) error {
	if err := w.acquire(); err != nil {
		return err
	}
	defer w.release()

	return w.drafts.Delete(ctx, id)
}

func (w *Wizard) SetField(ctx context.Context, id domain.DraftID, name string, value string) (domain.WizardDraft, error) {
	return w.run(ctx, id, func(draft *domain.WizardDraft) error {
		return draft.Form.SetField(name, value)
	})
}

func (w *Wizard) AddLocation(ctx context.Context, id domain.DraftID, location domain.Location) (domain.WizardDraft, error) {
	return w.run(ctx, id, func(draft *domain.WizardDraft) error {
		draft.Form.AddLocation(location)
		return nil
	})
}

func (w *Wizard) UpdateLocation(ctx context.Context, id domain.DraftID, locationID string, patch func(*domain.Location)) (domain.WizardDraft, error) {
	return w.run(ctx, id, func(draft *domain.WizardDraft) error {
		return draft.Form.UpdateLocation(locationID, patch)
	})
}

func (w *Wizard) RemoveLocation(ctx context.Context, id domain.DraftID, locationID string) (domain.WizardDraft, error) {
	return w.run(ctx, id, func(draft *domain.WizardDraft) error {
		return draft.Form.RemoveLocation(locationID)
	})
}

// Next moves one step forward, staying put on the last step.
func (w *Wizard) Next(ctx context.Context, id domain.DraftID) (domain.WizardDraft, error) {
	return w.run(ctx, id, func(draft *domain.WizardDraft) error {
		return w.machine(draft).FireCtx(ctx, triggerContinue)
	})
}

// Back moves one step backward, staying put on the first step.
func (w *Wizard) Back(ctx context.Context, id domain.DraftID) (domain.WizardDraft, error) {
	return w.run(ctx, id, func(draft *domain.WizardDraft) error {
		return w.machine(draft).FireCtx(ctx, triggerBack)
	})
}

// Submit sends the review. In create mode the first submit configures the
// business under the draft's idempotency key and later submits update that
// same record. In edit mode the submit updates the business and finishes.
func (w *Wizard) Submit(ctx context.Context, id domain.DraftID) (domain.WizardDraft, error) {
	var updated *domain.Business

	draft, err := w.run(ctx, id, func(draft *domain.WizardDraft) error {
		sm := w.machine(draft)
		if ok, _ := sm.CanFireCtx(ctx, triggerSubmitted); !ok {
			return refusal(draft.Step, triggerSubmitted)
		}

		payload := draft.Form.Payload()
		if err := validatePayload(w.validate, payload); err != nil {
			return err
		}

		var (
			business domain.Business
			err      error
		)
		switch {
		case draft.Mode == domain.WizardModeEdit:
			business, err = w.businesses.UpdateBusiness(ctx, draft.Business.ID, payload)
			if err != nil {
				return fmt.Errorf("updating the business failed: %w", err)
			}
			draft.Message = "Business updated."
		case draft.Business != nil:
			business, err = w.businesses.UpdateBusiness(ctx, draft.Business.ID, payload)
			if err != nil {
				return fmt.Errorf("updating the business failed: %w", err)
			}
			draft.Message = "Business updated. Status: " + string(business.Status) + "."
		default:
			business, err = w.businesses.ConfigureBusiness(ctx, payload, draft.IdempotencyKey)
			if err != nil {
				return fmt.Errorf("configuring the business failed: %w", err)
			}
			draft.Message = "Business configured. Status: " + string(business.Status) + ". You can now set up payment."
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		draft.Business = &business
		if err := sm.FireCtx(ctx, triggerSubmitted); err != nil {
			return err
		}
		if draft.Step == domain.StepFinished {
			draft.Closed = true
			updated = &business
		}
		return nil
	})
	if err != nil {
		return draft, err
	}

	w.logger.Info("wizard review submitted",
		zap.String("draft", string(draft.ID)),
		zap.String("business", string(draft.Business.ID)),
		zap.String("mode", string(draft.Mode)),
	)
	if updated != nil && w.onUpdated != nil {
		w.onUpdated(*updated)
	}
	return draft, nil
}

// Pay creates the subscription intent once per draft, confirms it with the
// selected card, re-fetches the business and moves on to the launch step.
func (w *Wizard) Pay(ctx context.Context, id domain.DraftID, cmd PayCommand) (domain.WizardDraft, error) {
	return w.run(ctx, id, func(draft *domain.WizardDraft) error {
		sm := w.machine(draft)
		if ok, _ := sm.CanFireCtx(ctx, triggerPaid); !ok {
			return refusal(draft.Step, triggerPaid)
		}
		if draft.Business == nil {
			return fmt.Errorf("%w: submit the review before paying", domain.ErrValidation)
		}
		if !draft.Business.NeedsPayment() {
			return fmt.Errorf("%w: business is not awaiting payment", domain.ErrValidation)
		}
		if strings.TrimSpace(cmd.PaymentMethodID) == "" {
			return fmt.Errorf("%w: select a card", domain.ErrValidation)
		}
		if w.cards == nil {
			return ErrPaymentsUnavailable
		}
		if err := w.checkBilling(ctx, *draft.Business); err != nil {
			return err
		}

		if draft.PaymentSetup == nil {
			setup, err := w.businesses.SetupPayment(ctx, draft.Business.ID, paymentSetupRequest(draft.Form, cmd))
			if err != nil {
				return fmt.Errorf("setting up the payment failed: %w", err)
			}
			draft.PaymentSetup = &setup
		}

		if !draft.PaymentSetup.Confirmed {
			if _, err := w.cards.ConfirmCardPayment(ctx, draft.PaymentSetup.ClientSecret, cmd.PaymentMethodID); err != nil {
				return fmt.Errorf("card payment failed: %w", err)
			}
			confirmed := *draft.PaymentSetup
			confirmed.Confirmed = true
			draft.PaymentSetup = &confirmed
		}

		business, err := w.businesses.GetBusiness(ctx, draft.Business.ID)
		if err != nil {
			return fmt.Errorf("refreshing the business failed: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		draft.Business = &business

		if err := sm.FireCtx(ctx, triggerPaid); err != nil {
			return err
		}
		draft.Message = "Payment confirmed. Payment status: " + string(business.PaymentStatus) + "."
		return nil
	})
}

func paymentSetupRequest(form domain.BusinessForm, cmd PayCommand) domain.PaymentSetupRequest {
	req := domain.PaymentSetupRequest{
		SubscriptionType: cmd.SubscriptionType,
		BillingInterval:  cmd.BillingInterval,
		Currency:         strings.ToLower(cmd.Currency),
	}
	if req.SubscriptionType == "" {
		req.SubscriptionType = form.SubscriptionType
	}
	if req.BillingInterval == "" {
		req.BillingInterval = domain.BillingMonthly
	}
	if req.Currency == "" {
		req.Currency = strings.ToLower(form.Settings.Currency)
	}
	return req
}

func (w *Wizard) checkBilling(ctx context.Context, business domain.Business) error {
	if w.identity == nil {
		return nil
	}

	identity, err := w.identity.Identity(ctx)
	if err != nil || !identity.Known() {
		return nil
	}
	if !domain.CanManageBilling(business, identity) {
		return domain.ErrForbidden
	}
	return nil
}

// Refresh re-fetches the draft's business without moving the step.
func (w *Wizard) Refresh(ctx context.Context, id domain.DraftID) (domain.WizardDraft, error) {
	return w.run(ctx, id, func(draft *domain.WizardDraft) error {
		if draft.Business == nil {
			return fmt.Errorf("%w: the business has not been created yet", domain.ErrValidation)
		}

		business, err := w.businesses.GetBusiness(ctx, draft.Business.ID)
		if err != nil {
			return fmt.Errorf("refreshing the business failed: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		draft.Business = &business
		return nil
	})
}

// ConfirmLaunch records the operator's explicit go-ahead for the launch.
func (w *Wizard) ConfirmLaunch(ctx context.Context, id domain.DraftID, confirmed bool) (domain.WizardDraft, error) {
	return w.run(ctx, id, func(draft *domain.WizardDraft) error {
		if draft.Step != domain.StepLaunch {
			return fmt.Errorf("%w: launch can only be confirmed on the launch step", domain.ErrValidation)
		}
		draft.LaunchConfirmed = confirmed
		return nil
	})
}

func (w *Wizard) Launch(ctx context.Context, id domain.DraftID) (domain.WizardDraft, error) {
	var launched *domain.Business

	draft, err := w.run(ctx, id, func(draft *domain.WizardDraft) error {
		sm := w.machine(draft)
		if ok, _ := sm.CanFireCtx(ctx, triggerLaunched); !ok {
			return refusal(draft.Step, triggerLaunched)
		}
		switch {
		case draft.Business == nil || !draft.Business.Launchable():
			return fmt.Errorf("%w: the business can be launched only while suspended and paid", domain.ErrValidation)
		case !draft.LaunchConfirmed:
			return fmt.Errorf("%w: confirm the launch first", domain.ErrValidation)
		}

		business, err := w.businesses.LaunchBusiness(ctx, draft.Business.ID)
		if err != nil {
			return fmt.Errorf("launching the business failed: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		draft.Business = &business
		if err := sm.FireCtx(ctx, triggerLaunched); err != nil {
			return err
		}
		draft.Closed = true
		draft.Message = "Business launched. Status: " + string(business.Status) + "."
		launched = &business
		return nil
	})
	if err != nil {
		return draft, err
	}

	w.logger.Info("business launched", zap.String("business", string(draft.Business.ID)))
	if launched != nil && w.onLaunched != nil {
		w.onLaunched(*launched)
	}
	return draft, nil
}
