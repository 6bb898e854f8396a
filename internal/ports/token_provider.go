package ports

import (
	"context"

	"github.com/simplu-io/simplu-cli/internal/domain"
)

// TokenProvider yields the bearer token for the next request. An empty token
// means the request goes out unauthenticated.
type TokenProvider interface {
	AccessToken(ctx context.Context) string
}

type IdentityProvider interface {
	Identity(ctx context.Context) (domain.Identity, error)
}
