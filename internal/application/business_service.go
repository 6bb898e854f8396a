package application

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/simplu-io/simplu-cli/internal/domain"
	"github.com/simplu-io/simplu-cli/internal/ports"
	"go.uber.org/zap"
)

type BusinessAction string

const (
	ActionEdit         BusinessAction = "edit"
	ActionSetupPayment BusinessAction = "setup-payment"
	ActionLaunch       BusinessAction = "launch"
)

// BusinessView is a business together with what the current identity may do with it.
type BusinessView struct {
	Business  domain.Business
	CanBill   bool
	Actions   []BusinessAction
	PublicURL string
}

func (v BusinessView) Allows(action BusinessAction) bool {
	for _, allowed := range v.Actions {
		if allowed == action {
			return true
		}
	}
	return false
}

type BusinessService struct {
	api      ports.BusinessAPI
	status   ports.StatusAPI
	identity ports.IdentityProvider
	validate *validator.Validate
	logger   *zap.Logger
}

func NewBusinessService(api ports.BusinessAPI, status ports.StatusAPI, identity ports.IdentityProvider, logger *zap.Logger) *BusinessService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &BusinessService{
		api:      api,
		status:   status,
		identity: identity,
		validate: newFormValidator(),
		logger:   logger,
	}
}

func (s *BusinessService) currentIdentity(ctx context.Context) domain.Identity {
	if s.identity == nil {
		return domain.Identity{}
	}

	identity, err := s.identity.Identity(ctx)
	if err != nil {
		s.logger.Debug("identity unavailable", zap.Error(err))
		return domain.Identity{}
	}
	return identity
}

func view(business domain.Business, identity domain.Identity) BusinessView {
	canBill := !identity.Known() || domain.CanManageBilling(business, identity)

	v := BusinessView{
		Business:  business,
		CanBill:   canBill,
		PublicURL: business.PublicURL(),
	}
	if business.Status != domain.BusinessStatusDeleted {
		v.Actions = append(v.Actions, ActionEdit)
	}
	if canBill && business.NeedsPayment() {
		v.Actions = append(v.Actions, ActionSetupPayment)
	}
	if canBill && business.Launchable() {
		v.Actions = append(v.Actions, ActionLaunch)
	}
	return v
}

// List returns every business visible to the session, newest first.
func (s *BusinessService) List(ctx context.Context) ([]BusinessView, error) {
	businesses, err := s.api.ListBusinesses(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(businesses, func(i, j int) bool {
		return businesses[i].CreatedAt.After(businesses[j].CreatedAt)
	})

	identity := s.currentIdentity(ctx)
	views := make([]BusinessView, 0, len(businesses))
	for _, business := range businesses {
		views = append(views, view(business, identity))
	}
	return views, nil
}

func (s *BusinessService) Get(ctx context.Context, id domain.BusinessID) (BusinessView, error) {
	business, err := s.api.GetBusiness(ctx, id)
	if err != nil {
		return BusinessView{}, err
	}
	return view(business, s.currentIdentity(ctx)), nil
}

// Update applies named form edits on top of the stored business and sends
// the result.
func (s *BusinessService) Update(ctx context.Context, id domain.BusinessID, fields map[string]string) (domain.Business, error) {
	if len(fields) == 0 {
		return domain.Business{}, fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}

	business, err := s.api.GetBusiness(ctx, id)
	if err != nil {
		return domain.Business{}, err
	}

	form := domain.FormFromBusiness(business)
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := form.SetField(name, fields[name]); err != nil {
			return domain.Business{}, err
		}
	}

	payload := form.Payload()
	if err := validatePayload(s.validate, payload); err != nil {
		return domain.Business{}, err
	}

	return s.api.UpdateBusiness(ctx, id, payload)
}

// SetupPayment creates the subscription intent for a business awaiting payment.
func (s *BusinessService) SetupPayment(ctx context.Context, id domain.BusinessID, req domain.PaymentSetupRequest) (domain.PaymentSetup, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return domain.PaymentSetup{}, err
	}
	if !v.CanBill {
		return domain.PaymentSetup{}, domain.ErrForbidden
	}
	if !v.Business.NeedsPayment() {
		return domain.PaymentSetup{}, fmt.Errorf("%w: business %s is not awaiting payment", domain.ErrValidation, id)
	}

	if req.SubscriptionType == "" {
		req.SubscriptionType = v.Business.SubscriptionType
	}
	if req.Currency == "" {
		req.Currency = v.Business.Settings.Currency
	}
	return s.api.SetupPayment(ctx, id, req)
}

// Launch refuses client-side unless the business is suspended and paid and
// the current identity may manage it.
func (s *BusinessService) Launch(ctx context.Context, id domain.BusinessID) (domain.Business, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return domain.Business{}, err
	}
	if !v.CanBill {
		return domain.Business{}, domain.ErrForbidden
	}
	if !v.Business.Launchable() {
		return domain.Business{}, fmt.Errorf("%w: business %s is %s with payment %s and cannot be launched",
			domain.ErrValidation, id, v.Business.Status, v.Business.PaymentStatus)
	}

	business, err := s.api.LaunchBusiness(ctx, id)
	if err != nil {
		return domain.Business{}, err
	}
	s.logger.Info("business launched", zap.String("business", string(id)))
	return business, nil
}

func (s *BusinessService) Status(ctx context.Context, id domain.BusinessID) (domain.StatusSnapshot, error) {
	return s.status.BusinessStatus(ctx, id)
}

// Invitation looks up a business configured on behalf of email, defaulting
// to the current identity's email.
func (s *BusinessService) Invitation(ctx context.Context, id domain.BusinessID, email string) (domain.Invitation, error) {
	if email == "" {
		email = s.currentIdentity(ctx).Email
	}
	if email == "" {
		return domain.Invitation{}, fmt.Errorf("%w: an email is required", domain.ErrValidation)
	}
	return s.status.GetInvitationInfo(ctx, id, email)
}
