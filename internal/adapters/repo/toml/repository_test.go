package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/simplu-io/simplu-cli/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, draftsPath string) *DraftRepository {
	t.Helper()

	config := viper.New()
	config.Set("drafts.path", draftsPath)

	repo, err := NewDraftRepository(config)
	require.NoError(t, err)
	return repo
}

func TestDraftRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "drafts.toml"))
	now := time.Date(2026, 10, 2, 9, 30, 0, 0, time.UTC)

	form := domain.NewBusinessForm()
	form.CompanyName = "Clinica Zambet"
	form.DomainLabel = "clinica-zambet"
	form.AddLocation(domain.Location{Name: "Cluj", Address: "Str. Memorandumului 1", Active: true})

	business := domain.Business{
		ID:               "biz-1",
		CompanyName:      "Clinica Zambet",
		BusinessType:     domain.BusinessTypeDental,
		SubscriptionType: domain.SubscriptionSolo,
		Locations:        []domain.Location{{ID: "srv-1", Name: "Location 1", Timezone: domain.DefaultTimezone, Active: true}},
		DomainType:       domain.DomainTypeSubdomain,
		DomainLabel:      "clinica-zambet",
		Settings:         domain.BusinessSettings{Currency: "RON", Language: "ro"},
		Status:           domain.BusinessStatusSuspended,
		PaymentStatus:    domain.PaymentStatusUnpaid,
		CreatedBy:        "sub-ana",
		CreatedAt:        now,
	}

	first := domain.WizardDraft{
		ID:             "draft-1",
		Mode:           domain.WizardModeCreate,
		Step:           domain.StepPayment,
		Form:           form,
		Business:       &business,
		IdempotencyKey: "key-1",
		PaymentSetup:   &domain.PaymentSetup{SubscriptionID: "sub_1", Status: "incomplete", ClientSecret: "pi_1_secret_x", Confirmed: true},
		Message:        "Business created",
		UpdatedAt:      now,
	}
	second := domain.WizardDraft{
		ID:        "draft-2",
		Mode:      domain.WizardModeEdit,
		Step:      domain.StepCompany,
		Form:      domain.NewBusinessForm(),
		UpdatedAt: now.Add(time.Hour),
	}

	require.NoError(t, repo.Save(context.Background(), first))
	require.NoError(t, repo.Save(context.Background(), second))

	got, err := repo.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	drafts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, domain.DraftID("draft-2"), drafts[0].ID)
	assert.Equal(t, second, drafts[0])
}

func TestDraftRepositorySaveReplacesExisting(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "drafts.toml"))
	draft := domain.WizardDraft{ID: "draft-1", Mode: domain.WizardModeCreate, Step: domain.StepCompany, Form: domain.NewBusinessForm()}

	require.NoError(t, repo.Save(context.Background(), draft))
	draft.Step = domain.StepDomain
	draft.LastError = "Business not found"
	require.NoError(t, repo.Save(context.Background(), draft))

	drafts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, domain.StepDomain, drafts[0].Step)
	assert.Equal(t, "Business not found", drafts[0].LastError)
}

func TestDraftRepositoryDelete(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "drafts.toml"))
	require.NoError(t, repo.Save(context.Background(), domain.WizardDraft{ID: "draft-1", Step: domain.StepCompany}))

	require.NoError(t, repo.Delete(context.Background(), "draft-1"))

	_, err := repo.GetByID(context.Background(), "draft-1")
	require.ErrorIs(t, err, domain.ErrDraftNotFound)

	err = repo.Delete(context.Background(), "draft-1")
	require.ErrorIs(t, err, domain.ErrDraftNotFound)
}

func TestDraftRepositoryRejectsEmptyID(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "drafts.toml"))
	err := repo.Save(context.Background(), domain.WizardDraft{})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestDraftRepositoryFillsMissingModeAndStep(t *testing.T) {
	t.Parallel()

	draftsPath := filepath.Join(t.TempDir(), "drafts.toml")
	require.NoError(t, os.WriteFile(draftsPath, []byte(strings.Join([]string{
		"version = 1",
		"",
		"[[drafts]]",
		"id = \"draft-1\"",
		"",
		"[drafts.form]",
		"company_name = \"Gym Max\"",
		"",
	}, "\n")), 0o600))

	repo := newTestRepository(t, draftsPath)

	draft, err := repo.GetByID(context.Background(), "draft-1")
	require.NoError(t, err)
	assert.Equal(t, domain.WizardModeCreate, draft.Mode)
	assert.Equal(t, domain.StepCompany, draft.Step)
	assert.Equal(t, "Gym Max", draft.Form.CompanyName)
	assert.Nil(t, draft.Business)
	assert.Nil(t, draft.PaymentSetup)
}

func TestDraftRepositorySaveCreatesDefaultPathAndEnforcesPermissions(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	repo, err := NewDraftRepository(viper.New())
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), domain.WizardDraft{ID: "draft-1", Step: domain.StepCompany}))

	draftsPath := filepath.Join(homeDir, ".simplu", "drafts.toml")
	assert.Equal(t, draftsPath, repo.Path())
	info, err := os.Stat(draftsPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestDraftRepositoryMissingFileBehaviors(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "missing", "drafts.toml"))

	drafts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, drafts)

	_, err = repo.GetByID(context.Background(), "draft-1")
	require.ErrorIs(t, err, domain.ErrDraftNotFound)
}

func TestDraftRepositoryListMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	draftsPath := filepath.Join(t.TempDir(), "drafts.toml")
	require.NoError(t, os.WriteFile(draftsPath, []byte("drafts = ["), 0o600))

	repo := newTestRepository(t, draftsPath)

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode drafts file")
}

func TestDraftRepositorySaveCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "drafts.toml"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, domain.WizardDraft{ID: "draft-1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestDraftRepositoryConcurrentSavesAcrossInstancesPreserveBothDrafts(t *testing.T) {
	t.Parallel()

	draftsPath := filepath.Join(t.TempDir(), "drafts.toml")
	repoA := newTestRepository(t, draftsPath)
	repoB := newTestRepository(t, draftsPath)

	const perRepoWrites = 50
	start := make(chan struct{})
	errCh := make(chan error, perRepoWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	write := func(repo *DraftRepository, prefix string) {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			errCh <- repo.Save(context.Background(), domain.WizardDraft{
				ID:   domain.DraftID(prefix + strconv.Itoa(i)),
				Step: domain.StepCompany,
			})
		}
	}

	go write(repoA, "draft-a-")
	go write(repoB, "draft-b-")

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	drafts, err := repoA.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, drafts, perRepoWrites*2)
}

func TestDraftRepositorySerializedTOMLIncludesVersion(t *testing.T) {
	t.Parallel()

	draftsPath := filepath.Join(t.TempDir(), "drafts.toml")
	repo := newTestRepository(t, draftsPath)

	require.NoError(t, repo.Save(context.Background(), domain.WizardDraft{ID: "draft-1", Step: domain.StepCompany}))

	data, err := os.ReadFile(draftsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
}

func TestDraftRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	draftsPath := filepath.Join(t.TempDir(), "drafts.toml")
	require.NoError(t, os.WriteFile(draftsPath, []byte("version = 999\n\ndrafts = []\n"), 0o600))

	repo := newTestRepository(t, draftsPath)

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported drafts schema version")
}
