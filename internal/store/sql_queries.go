// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/app-functions-sdk-go/models"
)

const tableStoreAndForward = "store_and_forward"

const (
	columnID               = "id"
	columnAppServiceKey    = "app_service_key"
	columnPayload          = "payload"
	columnRetryCount       = "retry_count"
	columnPipelineID       = "pipeline_id"
	columnPipelinePosition = "pipeline_position"
	columnVersion          = "version"
	columnCorrelationID    = "correlation_id"
	columnContextData      = "context_data"
)

// storedObjectColumns is the column order used by inserts and selects.
var storedObjectColumns = []string{
	columnID,
	columnAppServiceKey,
	columnPayload,
	columnRetryCount,
	columnPipelineID,
	columnPipelinePosition,
	columnVersion,
	columnCorrelationID,
	columnContextData,
}

func buildInsertStoredObjectQuery(b sq.StatementBuilderType, o models.StoredObject, contextData []byte) (string, []any, error) {
	query, args, err := b.Insert(tableStoreAndForward).
		Columns(storedObjectColumns...).
		Values(o.ID, o.AppServiceKey, o.Payload, o.RetryCount, o.PipelineID, o.PipelinePosition, o.Version, o.CorrelationID, contextData).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSelectByServiceKeyQuery(b sq.StatementBuilderType, appServiceKey string) (string, []any, error) {
	query, args, err := b.Select(storedObjectColumns...).
		From(tableStoreAndForward).
		Where(sq.Eq{columnAppServiceKey: appServiceKey}).
		OrderBy(columnID).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpdateStoredObjectQuery(b sq.StatementBuilderType, o models.StoredObject, contextData []byte) (string, []any, error) {
	query, args, err := b.Update(tableStoreAndForward).
		SetMap(map[string]any{
			columnAppServiceKey:    o.AppServiceKey,
			columnPayload:          o.Payload,
			columnRetryCount:       o.RetryCount,
			columnPipelineID:       o.PipelineID,
			columnPipelinePosition: o.PipelinePosition,
			columnVersion:          o.Version,
			columnCorrelationID:    o.CorrelationID,
			columnContextData:      contextData,
		}).
		Where(sq.Eq{columnID: o.ID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteStoredObjectQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	query, args, err := b.Delete(tableStoreAndForward).
		Where(sq.Eq{columnID: id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
