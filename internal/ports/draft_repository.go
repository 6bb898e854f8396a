package ports

import (
	"context"

	"github.com/simplu-io/simplu-cli/internal/domain"
)

type DraftRepository interface {
	GetByID(ctx context.Context, id domain.DraftID) (domain.WizardDraft, error)
	List(ctx context.Context) ([]domain.WizardDraft, error)
	Save(ctx context.Context, draft domain.WizardDraft) error
	Delete(ctx context.Context, id domain.DraftID) error
}
