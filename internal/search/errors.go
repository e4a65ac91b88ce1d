package search

import "fmt"

// ErrorKind distinguishes the failure classes the engine can surface.
type ErrorKind string

const (
	// ErrKindGeoResolution is a zip code without a coordinate row; shown
	// to the user verbatim.
	ErrKindGeoResolution ErrorKind = "geo_resolution"
	// ErrKindDatastore covers connectivity, timeout and query failures;
	// detail is hidden from callers unless debug is on.
	ErrKindDatastore ErrorKind = "datastore"
)

// Error is a typed search failure carrying its kind and the underlying
// cause. It is the only error shape that crosses the engine boundary.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func geoError(zip string, cause error) *Error {
	return &Error{
		Kind:    ErrKindGeoResolution,
		Message: fmt.Sprintf("no coordinates found for zip code %q", zip),
		Cause:   cause,
	}
}

func datastoreError(cause error) *Error {
	return &Error{
		Kind:    ErrKindDatastore,
		Message: "search temporarily unavailable",
		Cause:   cause,
	}
}
