package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/app-functions-sdk-go/internal/validators"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

const redisKeyPrefix = "store-and-forward"

func redisObjectKey(id string) string {
	return redisKeyPrefix + ":" + id
}

func redisServiceKey(appServiceKey string) string {
	return redisKeyPrefix + ":service:" + appServiceKey
}

// redisStoreClient keeps every object as a JSON value and indexes the ids
// of each service in a set.
type redisStoreClient struct {
	client    *redis.Client
	validator validators.Validator
	logger    *logger.Logger
}

func NewRedisStoreClient(client *redis.Client, log *logger.Logger) StoreClient {
	return &redisStoreClient{
		client:    client,
		validator: validators.NewStoredObjectValidator(),
		logger:    log,
	}
}

func (r *redisStoreClient) Store(ctx context.Context, o models.StoredObject) (string, error) {
	if err := r.validator.Validate(ctx, o); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidObject, err)
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	data, err := json.Marshal(o)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodingObject, err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisObjectKey(o.ID), data, 0)
		pipe.SAdd(ctx, redisServiceKey(o.AppServiceKey), o.ID)
		return nil
	})
	if err != nil {
		r.logger.Err(err).Str("func", "*redisStoreClient.Store").Str("id", o.ID).Msg("failed to store object")
		return "", fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return o.ID, nil
}

func (r *redisStoreClient) RetrieveFromStore(ctx context.Context, appServiceKey string) ([]models.StoredObject, error) {
	ids, err := r.client.SMembers(ctx, redisServiceKey(appServiceKey)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	objects := make([]models.StoredObject, 0, len(ids))
	if len(ids) == 0 {
		return objects, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = redisObjectKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// index entry without object
			r.logger.Warn().Str("func", "*redisStoreClient.RetrieveFromStore").Str("id", ids[i]).Msg("stored object is missing, skipping")
			continue
		}

		var o models.StoredObject
		if err = json.Unmarshal([]byte(raw), &o); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecodingObject, err)
		}
		objects = append(objects, o)
	}

	return objects, nil
}

func (r *redisStoreClient) Update(ctx context.Context, o models.StoredObject) error {
	if err := r.validator.Validate(ctx, o, validators.UpdateFields...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidObject, err)
	}

	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingObject, err)
	}

	updated, err := r.client.SetXX(ctx, redisObjectKey(o.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if !updated {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, o.ID)
	}
	return nil
}

func (r *redisStoreClient) RemoveFromStore(ctx context.Context, o models.StoredObject) error {
	if err := r.validator.Validate(ctx, o, validators.FieldID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidObject, err)
	}

	var deleted *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, redisObjectKey(o.ID))
		pipe.SRem(ctx, redisServiceKey(o.AppServiceKey), o.ID)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if deleted.Val() == 0 {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, o.ID)
	}
	return nil
}

func (r *redisStoreClient) Disconnect() error {
	return r.client.Close()
}
