package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/simplu-io/simplu-cli/internal/domain"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

var testNow = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

type memoryDrafts struct {
	mu     sync.Mutex
	drafts map[domain.DraftID]domain.WizardDraft
	saves  int
}

func newMemoryDrafts() *memoryDrafts {
	return &memoryDrafts{drafts: map[domain.DraftID]domain.WizardDraft{}}
}

func (m *memoryDrafts) GetByID(_ context.Context, id domain.DraftID) (domain.WizardDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	draft, ok := m.drafts[id]
	if !ok {
		return domain.WizardDraft{}, domain.ErrDraftNotFound
	}
	return draft, nil
}

func (m *memoryDrafts) List(context.Context) ([]domain.WizardDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	drafts := make([]domain.WizardDraft, 0, len(m.drafts))
	for _, draft := range m.drafts {
		drafts = append(drafts, draft)
	}
	slices.SortFunc(drafts, func(a, b domain.WizardDraft) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return drafts, nil
}

func (m *memoryDrafts) Save(_ context.Context, draft domain.WizardDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	draft.Form.Locations = slices.Clone(draft.Form.Locations)
	m.drafts[draft.ID] = draft
	m.saves++
	return nil
}

func (m *memoryDrafts) Delete(_ context.Context, id domain.DraftID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.drafts[id]; !ok {
		return domain.ErrDraftNotFound
	}
	delete(m.drafts, id)
	return nil
}

// fakeBackend behaves like the business API: configure creates a suspended,
// unpaid business, a confirmed card marks it paid and launch requires both.
type fakeBackend struct {
	mu sync.Mutex

	businesses      map[domain.BusinessID]domain.Business
	secrets         map[string]domain.BusinessID
	configureCalls  int
	updateCalls     int
	setupCalls      int
	launchCalls     int
	idempotencyKeys []string
	lastPayload     domain.BusinessPayload
	lastSetup       domain.PaymentSetupRequest

	failNext error
	block    chan struct{}
	entered  chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		businesses: map[domain.BusinessID]domain.Business{},
		secrets:    map[string]domain.BusinessID{},
	}
}

func (f *fakeBackend) failNextCall(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failNext = err
}

func (f *fakeBackend) takeFailure() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeBackend) wait(ctx context.Context) error {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block == nil {
		return nil
	}
	select {
	case <-f.block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeBackend) ConfigureBusiness(ctx context.Context, payload domain.BusinessPayload, idempotencyKey string) (domain.Business, error) {
	if err := f.wait(ctx); err != nil {
		return domain.Business{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.configureCalls++
	f.idempotencyKeys = append(f.idempotencyKeys, idempotencyKey)
	f.lastPayload = payload
	if err := f.takeFailure(); err != nil {
		return domain.Business{}, err
	}

	id := domain.BusinessID(fmt.Sprintf("biz-%d", len(f.businesses)+1))
	business := businessFromPayload(id, payload)
	business.Status = domain.BusinessStatusSuspended
	business.PaymentStatus = domain.PaymentStatusUnpaid
	business.CreatedBy = "sub-ana"
	f.businesses[id] = business
	return business, nil
}

func (f *fakeBackend) UpdateBusiness(_ context.Context, id domain.BusinessID, payload domain.BusinessPayload) (domain.Business, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updateCalls++
	f.lastPayload = payload
	if err := f.takeFailure(); err != nil {
		return domain.Business{}, err
	}

	existing, ok := f.businesses[id]
	if !ok {
		return domain.Business{}, errors.New("Business not found")
	}
	updated := businessFromPayload(id, payload)
	updated.Status = existing.Status
	updated.PaymentStatus = existing.PaymentStatus
	updated.CreatedBy = existing.CreatedBy
	f.businesses[id] = updated
	return updated, nil
}

func (f *fakeBackend) GetBusiness(_ context.Context, id domain.BusinessID) (domain.Business, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.takeFailure(); err != nil {
		return domain.Business{}, err
	}
	business, ok := f.businesses[id]
	if !ok {
		return domain.Business{}, errors.New("Business not found")
	}
	return business, nil
}

func (f *fakeBackend) ListBusinesses(context.Context) ([]domain.Business, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	businesses := make([]domain.Business, 0, len(f.businesses))
	for _, business := range f.businesses {
		businesses = append(businesses, business)
	}
	return businesses, nil
}

func (f *fakeBackend) SetupPayment(_ context.Context, id domain.BusinessID, req domain.PaymentSetupRequest) (domain.PaymentSetup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.setupCalls++
	f.lastSetup = req
	if err := f.takeFailure(); err != nil {
		return domain.PaymentSetup{}, err
	}

	secret := fmt.Sprintf("pi_%d_secret_test", f.setupCalls)
	f.secrets[secret] = id
	return domain.PaymentSetup{SubscriptionID: fmt.Sprintf("sub_%d", f.setupCalls), Status: "incomplete", ClientSecret: secret}, nil
}

func (f *fakeBackend) LaunchBusiness(_ context.Context, id domain.BusinessID) (domain.Business, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.launchCalls++
	if err := f.takeFailure(); err != nil {
		return domain.Business{}, err
	}

	business := f.businesses[id]
	if !business.Launchable() {
		return domain.Business{}, errors.New("Payment required before launch")
	}
	business.Status = domain.BusinessStatusActive
	f.businesses[id] = business
	return business, nil
}

func (f *fakeBackend) markPaid(secret string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, ok := f.secrets[secret]
	if !ok {
		return false
	}
	business := f.businesses[id]
	business.PaymentStatus = domain.PaymentStatusPaid
	f.businesses[id] = business
	return true
}

func businessFromPayload(id domain.BusinessID, payload domain.BusinessPayload) domain.Business {
	locations := make([]domain.Location, 0, len(payload.Locations))
	for i, location := range payload.Locations {
		location.ID = fmt.Sprintf("srv-loc-%d", i+1)
		locations = append(locations, location)
	}

	return domain.Business{
		ID:                 id,
		CompanyName:        payload.CompanyName,
		RegistrationNumber: payload.RegistrationNumber,
		TaxCode:            payload.TaxCode,
		BusinessType:       payload.BusinessType,
		SubscriptionType:   payload.SubscriptionType,
		Locations:          locations,
		DomainType:         payload.DomainType,
		DomainLabel:        payload.DomainLabel,
		CustomTLD:          payload.CustomTLD,
		ClientPageType:     payload.ClientPageType,
		ConfigureForEmail:  payload.ConfigureForEmail,
		Settings:           payload.Settings,
	}
}

// fakeConfirmer marks the backend business paid when the card goes through.
type fakeConfirmer struct {
	backend *fakeBackend
	calls   []string
	err     error
	// afterConfirm runs once a confirmation succeeds.
	afterConfirm func()
}

func (c *fakeConfirmer) ConfirmCardPayment(_ context.Context, clientSecret string, paymentMethodID string) (domain.CardConfirmation, error) {
	c.calls = append(c.calls, clientSecret+"|"+paymentMethodID)
	if c.err != nil {
		return domain.CardConfirmation{}, c.err
	}
	if c.backend != nil && !c.backend.markPaid(clientSecret) {
		return domain.CardConfirmation{}, errors.New("unknown client secret")
	}
	if c.afterConfirm != nil {
		c.afterConfirm()
	}
	return domain.CardConfirmation{PaymentIntentID: "pi_x", Status: "succeeded"}, nil
}

type staticIdentity struct {
	identity domain.Identity
	err      error
}

func (s staticIdentity) Identity(context.Context) (domain.Identity, error) {
	return s.identity, s.err
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	next := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		next++
		return fmt.Sprintf("id-%d", next)
	}
}
