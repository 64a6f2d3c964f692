package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new
	// identity fails because an identity with the same login already exists.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoIdentityWasFound is returned when a query expected to match at
	// least one identity record produces an empty result set.
	ErrNoIdentityWasFound = errors.New("no identity was found")

	// ErrSessionNotFound is returned when no session record matches the
	// presented token digest, or a rotation targets a record that is no
	// longer valid.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrCredentialNotFound is returned when a query or update targets a
	// credential (identified by credential_id and owner_id) that does not
	// exist.
	ErrCredentialNotFound = errors.New("credential was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
