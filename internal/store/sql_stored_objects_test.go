package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

func newTestSQLStore(t *testing.T, placeholder sq.PlaceholderFormat, classifier ErrorClassificator) (StoreClient, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	l := logger.Nop()
	return NewSQLStoreClient(&DB{
		DB:                 db,
		placeholder:        placeholder,
		errorClassificator: classifier,
		logger:             l,
	}, l), mock
}

func testStoredObject() models.StoredObject {
	return models.StoredObject{
		AppServiceKey:    "app-sample",
		Payload:          []byte(`{"a":1}`),
		PipelineID:       "default-pipeline",
		PipelinePosition: 1,
		Version:          "Pipeline-functions: a",
		CorrelationID:    "c-1",
		ContextData:      map[string]string{"devicename": "d1"},
	}
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestSQLStore_Store_AssignsID(t *testing.T) {
	s, mock := newTestSQLStore(t, sq.Question, nil)

	mock.ExpectExec("INSERT INTO store_and_forward").
		WithArgs(sqlmock.AnyArg(), "app-sample", []byte(`{"a":1}`), 0, "default-pipeline", 1,
			"Pipeline-functions: a", "c-1", []byte(`{"devicename":"d1"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := s.Store(context.Background(), testStoredObject())
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Store_KeepsID(t *testing.T) {
	s, mock := newTestSQLStore(t, sq.Question, nil)
	o := testStoredObject()
	o.ID = "fixed"

	mock.ExpectExec("INSERT INTO store_and_forward").WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := s.Store(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, "fixed", id)
}

func TestSQLStore_Store_InvalidObject(t *testing.T) {
	s, mock := newTestSQLStore(t, sq.Question, nil)
	o := testStoredObject()
	o.Payload = nil

	_, err := s.Store(context.Background(), o)
	assert.ErrorIs(t, err, ErrInvalidObject)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Store_RetriesRetryableError(t *testing.T) {
	s, mock := newTestSQLStore(t, sq.Dollar, NewPostgresErrorClassifier())

	mock.ExpectExec("INSERT INTO store_and_forward").WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectExec("INSERT INTO store_and_forward").WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := s.Store(context.Background(), testStoredObject())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Store_NonRetryableError(t *testing.T) {
	s, mock := newTestSQLStore(t, sq.Dollar, NewPostgresErrorClassifier())

	mock.ExpectExec("INSERT INTO store_and_forward").WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := s.Store(context.Background(), testStoredObject())
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_RetrieveFromStore(t *testing.T) {
	s, mock := newTestSQLStore(t, sq.Question, nil)

	rows := sqlmock.NewRows(storedObjectColumns).
		AddRow("id-1", "app-sample", []byte("p1"), 2, "default-pipeline", 0, "v1", "c-1", []byte(`{"devicename":"d1"}`)).
		AddRow("id-2", "app-sample", []byte("p2"), 0, "other", 3, "v2", "", nil)

	mock.ExpectQuery("SELECT (.+) FROM store_and_forward WHERE app_service_key = \\?").
		WithArgs("app-sample").
		WillReturnRows(rows)

	objects, err := s.RetrieveFromStore(context.Background(), "app-sample")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "id-1", objects[0].ID)
	assert.Equal(t, 2, objects[0].RetryCount)
	assert.Equal(t, map[string]string{"devicename": "d1"}, objects[0].ContextData)
	assert.Equal(t, 3, objects[1].PipelinePosition)
	assert.Nil(t, objects[1].ContextData)
}

func TestSQLStore_RetrieveFromStore_QueryError(t *testing.T) {
	s, mock := newTestSQLStore(t, sq.Question, nil)
	mock.ExpectQuery("SELECT").WillReturnError(sql.ErrConnDone)

	_, err := s.RetrieveFromStore(context.Background(), "app-sample")
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestSQLStore_Update(t *testing.T) {
	s, mock := newTestSQLStore(t, sq.Question, nil)
	o := testStoredObject()
	o.ID = "id-1"
	o.RetryCount = 3

	mock.ExpectExec("UPDATE store_and_forward SET (.+) WHERE id = \\?").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.Update(context.Background(), o))

	mock.ExpectExec("UPDATE store_and_forward").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, s.Update(context.Background(), o), ErrObjectNotFound)

	o.ID = ""
	assert.ErrorIs(t, s.Update(context.Background(), o), ErrInvalidObject)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_RemoveFromStore(t *testing.T) {
	s, mock := newTestSQLStore(t, sq.Question, nil)

	mock.ExpectExec("DELETE FROM store_and_forward WHERE id = \\?").
		WithArgs("id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.RemoveFromStore(context.Background(), models.StoredObject{ID: "id-1"}))

	mock.ExpectExec("DELETE FROM store_and_forward").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, s.RemoveFromStore(context.Background(), models.StoredObject{ID: "id-2"}), ErrObjectNotFound)
}

func TestSQLStore_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := NewConnectSQLite(ctx, filepath.Join(t.TempDir(), "data", "sf.db"), logger.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	s := NewSQLStoreClient(db, logger.Nop())
	defer s.Disconnect()

	id, err := s.Store(ctx, testStoredObject())
	require.NoError(t, err)

	objects, err := s.RetrieveFromStore(ctx, "app-sample")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, id, objects[0].ID)
	assert.Equal(t, []byte(`{"a":1}`), objects[0].Payload)

	objects[0].RetryCount++
	require.NoError(t, s.Update(ctx, objects[0]))

	objects, err = s.RetrieveFromStore(ctx, "app-sample")
	require.NoError(t, err)
	assert.Equal(t, 1, objects[0].RetryCount)

	require.NoError(t, s.RemoveFromStore(ctx, objects[0]))
	objects, err = s.RetrieveFromStore(ctx, "app-sample")
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestClassifyPgError(t *testing.T) {
	tests := []struct {
		code     string
		expected ErrorClassification
	}{
		{pgerrcode.ConnectionFailure, Retryable},
		{pgerrcode.DeadlockDetected, Retryable},
		{pgerrcode.CannotConnectNow, Retryable},
		{pgerrcode.UniqueViolation, NonRetryable},
		{pgerrcode.SyntaxError, NonRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewPostgresErrorClassifier().Classify(pgError(tt.code)))
		})
	}

	assert.Equal(t, NonRetryable, NewPostgresErrorClassifier().Classify(nil))
	assert.Equal(t, NonRetryable, NewPostgresErrorClassifier().Classify(assert.AnError))
}
