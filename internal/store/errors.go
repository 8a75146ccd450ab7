package store

import "errors"

var (
	ErrUnsupportedDatabase = errors.New("unsupported database type")
	ErrObjectNotFound      = errors.New("stored object was not found")
	ErrInvalidObject       = errors.New("invalid stored object")
	ErrConnecting          = errors.New("failed to connect to database")
	ErrReadingCredentials  = errors.New("failed to read database credentials")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when a squirrel builder fails to
	// produce SQL.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	ErrExecutingQuery     = errors.New("error executing sql query")
	ErrExecutingStatement = errors.New("failed to executing statement")
	ErrScanningRows       = errors.New("failed to scan stored object rows")

	ErrEncodingObject = errors.New("failed to encode stored object")
	ErrDecodingObject = errors.New("failed to decode stored object")
)
