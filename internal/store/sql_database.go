package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/app-functions-sdk-go/migrations"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

type DB struct {
	*sql.DB
	dialect            string
	placeholder        sq.PlaceholderFormat
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

func (db *DB) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.placeholder)
}

// execContext runs a statement, repeating it once when the driver reports
// a retryable error.
func (db *DB) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil && db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		db.logger.Warn().Err(err).Str("func", "*DB.execContext").Msg("retrying statement after retryable error")
		result, err = db.ExecContext(ctx, query, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return result, nil
}

func (db *DB) queryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil && db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		db.logger.Warn().Err(err).Str("func", "*DB.queryContext").Msg("retrying query after retryable error")
		rows, err = db.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return rows, nil
}
