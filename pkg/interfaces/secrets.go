//go:generate mockgen -source=secrets.go -destination=../../internal/mock/secret_provider_mock.go -package=mock

package interfaces

import "time"

// SecretProvider serves named groups of secrets.
type SecretProvider interface {
	// GetSecret returns the secrets stored under secretName. When keys are
	// given only those are returned and each one must exist.
	GetSecret(secretName string, keys ...string) (map[string]string, error)
	StoreSecret(secretName string, secrets map[string]string) error
	// SecretsLastUpdated reports when any secret last changed.
	SecretsLastUpdated() time.Time
	HasSecret(secretName string) (bool, error)
}
