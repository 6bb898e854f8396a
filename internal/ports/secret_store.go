package ports

import "context"

// SecretStore holds opaque string secrets under slash-separated keys such as
// "cognito/<client-id>/session". Get reports a missing key with an error
// wrapping domain.ErrSecretNotFound; Delete of a missing key is not an error.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
