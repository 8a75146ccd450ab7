//go:generate mockgen -source=interfaces.go -destination=../mock/store_client_mock.go -package=mock

package store

import (
	"context"

	"github.com/MKhiriev/app-functions-sdk-go/models"
)

// StoreClient persists export payloads for store-and-forward retries.
type StoreClient interface {
	// Store validates o and saves it. An empty id is replaced by a new uuid,
	// which is returned.
	Store(ctx context.Context, o models.StoredObject) (string, error)
	RetrieveFromStore(ctx context.Context, appServiceKey string) ([]models.StoredObject, error)
	Update(ctx context.Context, o models.StoredObject) error
	RemoveFromStore(ctx context.Context, o models.StoredObject) error
	Disconnect() error
}

// ErrorClassificator decides whether a failed statement can be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
