package ports

import (
	"context"

	"github.com/simplu-io/simplu-cli/internal/domain"
)

// StatusAPI serves the lightweight lookups that do not need a full business record.
type StatusAPI interface {
	BusinessStatus(ctx context.Context, id domain.BusinessID) (domain.StatusSnapshot, error)
	GetInvitationInfo(ctx context.Context, id domain.BusinessID, email string) (domain.Invitation, error)
}
