package ports

import (
	"context"

	"github.com/simplu-io/simplu-cli/internal/domain"
)

type SessionStore interface {
	Load(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
}
