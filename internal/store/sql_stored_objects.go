package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/MKhiriev/app-functions-sdk-go/internal/validators"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// sqlStoreClient keeps stored objects in the store_and_forward table of a
// SQLite or PostgreSQL database.
type sqlStoreClient struct {
	db        *DB
	validator validators.Validator
	logger    *logger.Logger
}

func NewSQLStoreClient(db *DB, log *logger.Logger) StoreClient {
	return &sqlStoreClient{
		db:        db,
		validator: validators.NewStoredObjectValidator(),
		logger:    log,
	}
}

func (s *sqlStoreClient) Store(ctx context.Context, o models.StoredObject) (string, error) {
	if err := s.validator.Validate(ctx, o); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidObject, err)
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	contextData, err := json.Marshal(o.ContextData)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodingObject, err)
	}

	query, args, err := buildInsertStoredObjectQuery(s.db.builder(), o, contextData)
	if err != nil {
		return "", err
	}

	if _, err = s.db.execContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "*sqlStoreClient.Store").Str("id", o.ID).Msg("failed to store object")
		return "", err
	}

	return o.ID, nil
}

func (s *sqlStoreClient) RetrieveFromStore(ctx context.Context, appServiceKey string) ([]models.StoredObject, error) {
	query, args, err := buildSelectByServiceKeyQuery(s.db.builder(), appServiceKey)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.queryContext(ctx, query, args...)
	if err != nil {
		s.logger.Err(err).Str("func", "*sqlStoreClient.RetrieveFromStore").Str("app_service_key", appServiceKey).Msg("failed to query stored objects")
		return nil, err
	}
	defer rows.Close()

	objects := make([]models.StoredObject, 0)
	for rows.Next() {
		var (
			o           models.StoredObject
			contextData []byte
		)
		if err = rows.Scan(
			&o.ID,
			&o.AppServiceKey,
			&o.Payload,
			&o.RetryCount,
			&o.PipelineID,
			&o.PipelinePosition,
			&o.Version,
			&o.CorrelationID,
			&contextData,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if len(contextData) > 0 {
			if err = json.Unmarshal(contextData, &o.ContextData); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrDecodingObject, err)
			}
		}
		objects = append(objects, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return objects, nil
}

func (s *sqlStoreClient) Update(ctx context.Context, o models.StoredObject) error {
	if err := s.validator.Validate(ctx, o, validators.UpdateFields...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidObject, err)
	}

	contextData, err := json.Marshal(o.ContextData)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingObject, err)
	}

	query, args, err := buildUpdateStoredObjectQuery(s.db.builder(), o, contextData)
	if err != nil {
		return err
	}

	result, err := s.db.execContext(ctx, query, args...)
	if err != nil {
		s.logger.Err(err).Str("func", "*sqlStoreClient.Update").Str("id", o.ID).Msg("failed to update stored object")
		return err
	}
	return requireAffected(result, o.ID)
}

func (s *sqlStoreClient) RemoveFromStore(ctx context.Context, o models.StoredObject) error {
	if err := s.validator.Validate(ctx, o, validators.FieldID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidObject, err)
	}

	query, args, err := buildDeleteStoredObjectQuery(s.db.builder(), o.ID)
	if err != nil {
		return err
	}

	result, err := s.db.execContext(ctx, query, args...)
	if err != nil {
		s.logger.Err(err).Str("func", "*sqlStoreClient.RemoveFromStore").Str("id", o.ID).Msg("failed to remove stored object")
		return err
	}
	return requireAffected(result, o.ID)
}

func (s *sqlStoreClient) Disconnect() error {
	return s.db.Close()
}

type rowsAffecter interface {
	RowsAffected() (int64, error)
}

func requireAffected(result rowsAffecter, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, id)
	}
	return nil
}
