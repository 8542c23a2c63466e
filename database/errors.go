package database

import "errors"

// Sentinel errors returned by the database facade. They can be used
// with errors.Is() for programmatic error checking.
var (
	// ErrConnectionFailed is returned when a connection to the database
	// cannot be established. This is the only unrecoverable failure
	// class: the facade is useless until connectivity returns, and the
	// caller decides whether to terminate, retry, or degrade.
	ErrConnectionFailed = errors.New("database connection failed")

	// ErrMalformedBinding is returned when a parameter binding does not
	// carry a well-formed (marker, value, type tag) triple.
	ErrMalformedBinding = errors.New("malformed parameter binding")

	// ErrMissingBinding is returned when the SQL text contains a named
	// marker with no matching binding.
	ErrMissingBinding = errors.New("no binding for statement marker")

	// ErrUnknownMarker is returned when a binding names a marker that
	// does not appear in the SQL text.
	ErrUnknownMarker = errors.New("binding references unknown marker")

	// ErrInvalidFetchShape is returned when a read operation is asked
	// for an unrecognized fetch shape.
	ErrInvalidFetchShape = errors.New("unrecognized fetch shape")

	// ErrNoRows is returned by read operations that matched no rows.
	// It is distinct from query failure: the statement executed fine.
	ErrNoRows = errors.New("no rows in result set")
)

// IsFatal reports whether err belongs to the unrecoverable failure
// class. All other errors leave the facade usable for subsequent
// operations.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConnectionFailed)
}
