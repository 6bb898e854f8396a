package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/simplu-io/simplu-cli/internal/config"
	"github.com/simplu-io/simplu-cli/internal/domain"
	"github.com/simplu-io/simplu-cli/internal/ports"
	"github.com/spf13/viper"
)

const (
	draftsFileMode   = 0o600
	draftsDirMode    = 0o700
	draftsConfigDir  = ".simplu"
	draftsConfigFile = "drafts.toml"
	tempFilePattern  = ".drafts-*.toml.tmp"
)

// DraftRepository keeps wizard drafts in a single TOML file so a wizard
// survives between CLI invocations.
type DraftRepository struct {
	draftsPath string
	mu         *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.DraftRepository = (*DraftRepository)(nil)

func NewDraftRepository(cfg *viper.Viper) (*DraftRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	draftsPath := cfg.GetString(config.KeyDraftsPath)
	if draftsPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		draftsPath = filepath.Join(homeDir, draftsConfigDir, draftsConfigFile)
	}

	draftsPath, err := normalizeDraftsPath(draftsPath)
	if err != nil {
		return nil, err
	}

	return &DraftRepository{draftsPath: draftsPath, mu: lockForPath(draftsPath)}, nil
}

func (r *DraftRepository) Path() string {
	return r.draftsPath
}

func (r *DraftRepository) Save(ctx context.Context, draft domain.WizardDraft) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if draft.ID == "" {
		return fmt.Errorf("%w: draft id is empty", domain.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(draft)
	updated := false
	for i := range file.Drafts {
		if file.Drafts[i].ID == encoded.ID {
			file.Drafts[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Drafts = append(file.Drafts, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *DraftRepository) GetByID(ctx context.Context, id domain.DraftID) (domain.WizardDraft, error) {
	if err := ctx.Err(); err != nil {
		return domain.WizardDraft{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.WizardDraft{}, err
	}

	for _, entry := range file.Drafts {
		if entry.ID == string(id) {
			return fromSchema(entry), nil
		}
	}

	return domain.WizardDraft{}, fmt.Errorf("%w: %s", domain.ErrDraftNotFound, id)
}

// List returns drafts with the most recently touched first.
func (r *DraftRepository) List(ctx context.Context) ([]domain.WizardDraft, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	drafts := make([]domain.WizardDraft, 0, len(file.Drafts))
	for _, entry := range file.Drafts {
		drafts = append(drafts, fromSchema(entry))
	}
	slices.SortStableFunc(drafts, func(a, b domain.WizardDraft) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})

	return drafts, nil
}

func (r *DraftRepository) Delete(ctx context.Context, id domain.DraftID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	kept := file.Drafts[:0]
	found := false
	for _, entry := range file.Drafts {
		if entry.ID == string(id) {
			found = true
			continue
		}
		kept = append(kept, entry)
	}
	if !found {
		return fmt.Errorf("%w: %s", domain.ErrDraftNotFound, id)
	}
	file.Drafts = kept

	return r.writeSchema(file)
}

func (r *DraftRepository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.draftsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read drafts file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode drafts file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeDraftsPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve drafts path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *DraftRepository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.draftsPath), draftsDirMode); err != nil {
		return fmt.Errorf("create drafts directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode drafts file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.draftsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp drafts file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp drafts file: %w", err)
	}

	if err := tempFile.Chmod(draftsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp drafts file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp drafts file: %w", err)
	}

	if err := os.Rename(tempName, r.draftsPath); err != nil {
		return fmt.Errorf("replace drafts file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.draftsPath, draftsFileMode); err != nil {
		return fmt.Errorf("chmod drafts file: %w", err)
	}

	return nil
}

func toSchema(draft domain.WizardDraft) draftSchema {
	encoded := draftSchema{
		ID:              string(draft.ID),
		Mode:            string(draft.Mode),
		Step:            int(draft.Step),
		IdempotencyKey:  draft.IdempotencyKey,
		LaunchConfirmed: draft.LaunchConfirmed,
		Closed:          draft.Closed,
		LastError:       draft.LastError,
		Message:         draft.Message,
		UpdatedAt:       formatTime(draft.UpdatedAt),
		Form:            toFormSchema(draft.Form),
	}

	if draft.Business != nil {
		b := draft.Business
		encoded.Business = &businessSchema{
			ID:            string(b.ID),
			Status:        string(b.Status),
			PaymentStatus: string(b.PaymentStatus),
			CreatedBy:     b.CreatedBy,
			OwnerEmail:    b.OwnerEmail,
			CreatedAt:     formatTime(b.CreatedAt),
			UpdatedAt:     formatTime(b.UpdatedAt),
			Snapshot: toFormSchema(domain.BusinessForm{
				CompanyName:        b.CompanyName,
				RegistrationNumber: b.RegistrationNumber,
				TaxCode:            b.TaxCode,
				BusinessType:       b.BusinessType,
				SubscriptionType:   b.SubscriptionType,
				Locations:          b.Locations,
				DomainType:         b.DomainType,
				DomainLabel:        b.DomainLabel,
				CustomTLD:          b.CustomTLD,
				ClientPageType:     b.ClientPageType,
				ConfigureForEmail:  b.ConfigureForEmail,
				Settings:           b.Settings,
			}),
		}
	}

	if draft.PaymentSetup != nil {
		encoded.PaymentSetup = &paymentSetupSchema{
			SubscriptionID: draft.PaymentSetup.SubscriptionID,
			Status:         draft.PaymentSetup.Status,
			ClientSecret:   draft.PaymentSetup.ClientSecret,
			Confirmed:      draft.PaymentSetup.Confirmed,
		}
	}

	return encoded
}

func fromSchema(entry draftSchema) domain.WizardDraft {
	draft := domain.WizardDraft{
		ID:              domain.DraftID(entry.ID),
		Mode:            domain.WizardMode(entry.Mode),
		Step:            domain.Step(entry.Step),
		IdempotencyKey:  entry.IdempotencyKey,
		LaunchConfirmed: entry.LaunchConfirmed,
		Closed:          entry.Closed,
		LastError:       entry.LastError,
		Message:         entry.Message,
		UpdatedAt:       parseTime(entry.UpdatedAt),
		Form:            fromFormSchema(entry.Form),
	}
	if draft.Mode == "" {
		draft.Mode = domain.WizardModeCreate
	}
	if draft.Step < domain.StepCompany {
		draft.Step = domain.StepCompany
	}

	if entry.Business != nil {
		snapshot := fromFormSchema(entry.Business.Snapshot)
		draft.Business = &domain.Business{
			ID:                 domain.BusinessID(entry.Business.ID),
			CompanyName:        snapshot.CompanyName,
			RegistrationNumber: snapshot.RegistrationNumber,
			TaxCode:            snapshot.TaxCode,
			BusinessType:       snapshot.BusinessType,
			SubscriptionType:   snapshot.SubscriptionType,
			Locations:          snapshot.Locations,
			DomainType:         snapshot.DomainType,
			DomainLabel:        snapshot.DomainLabel,
			CustomTLD:          snapshot.CustomTLD,
			ClientPageType:     snapshot.ClientPageType,
			ConfigureForEmail:  snapshot.ConfigureForEmail,
			Settings:           snapshot.Settings,
			Status:             domain.BusinessStatus(entry.Business.Status),
			PaymentStatus:      domain.PaymentStatus(entry.Business.PaymentStatus),
			CreatedBy:          entry.Business.CreatedBy,
			OwnerEmail:         entry.Business.OwnerEmail,
			CreatedAt:          parseTime(entry.Business.CreatedAt),
			UpdatedAt:          parseTime(entry.Business.UpdatedAt),
		}
	}

	if entry.PaymentSetup != nil {
		draft.PaymentSetup = &domain.PaymentSetup{
			SubscriptionID: entry.PaymentSetup.SubscriptionID,
			Status:         entry.PaymentSetup.Status,
			ClientSecret:   entry.PaymentSetup.ClientSecret,
			Confirmed:      entry.PaymentSetup.Confirmed,
		}
	}

	return draft
}

func toFormSchema(form domain.BusinessForm) formSchema {
	locations := make([]locationSchema, 0, len(form.Locations))
	for _, location := range form.Locations {
		locations = append(locations, locationSchema{
			ID:       location.ID,
			Name:     location.Name,
			Address:  location.Address,
			Timezone: location.Timezone,
			Active:   location.Active,
		})
	}

	return formSchema{
		CompanyName:        form.CompanyName,
		RegistrationNumber: form.RegistrationNumber,
		TaxCode:            form.TaxCode,
		BusinessType:       string(form.BusinessType),
		SubscriptionType:   string(form.SubscriptionType),
		DomainType:         string(form.DomainType),
		DomainLabel:        form.DomainLabel,
		CustomTLD:          form.CustomTLD,
		ClientPageType:     string(form.ClientPageType),
		ConfigureForEmail:  form.ConfigureForEmail,
		Currency:           form.Settings.Currency,
		Language:           form.Settings.Language,
		Locations:          locations,
	}
}

func fromFormSchema(entry formSchema) domain.BusinessForm {
	var locations []domain.Location
	for _, location := range entry.Locations {
		locations = append(locations, domain.Location{
			ID:       location.ID,
			Name:     location.Name,
			Address:  location.Address,
			Timezone: location.Timezone,
			Active:   location.Active,
		})
	}

	return domain.BusinessForm{
		CompanyName:        entry.CompanyName,
		RegistrationNumber: entry.RegistrationNumber,
		TaxCode:            entry.TaxCode,
		BusinessType:       domain.BusinessType(entry.BusinessType),
		SubscriptionType:   domain.SubscriptionType(entry.SubscriptionType),
		Locations:          locations,
		DomainType:         domain.DomainType(entry.DomainType),
		DomainLabel:        entry.DomainLabel,
		CustomTLD:          entry.CustomTLD,
		ClientPageType:     domain.ClientPageType(entry.ClientPageType),
		ConfigureForEmail:  entry.ConfigureForEmail,
		Settings: domain.BusinessSettings{
			Currency: entry.Currency,
			Language: entry.Language,
		},
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
