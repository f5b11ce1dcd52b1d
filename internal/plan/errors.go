package plan

import "github.com/pkg/errors"

var (
	// ErrNotBound is returned when a node is used before its catalog binding is set.
	ErrNotBound = errors.New("plan node is not bound to the catalog")
	// ErrNoSearchKeys is returned by Validate for an index scan without search keys.
	ErrNoSearchKeys = errors.New("no search key expressions")
	// ErrTooManySearchKeys is returned when there are more search keys than indexed columns.
	ErrTooManySearchKeys = errors.New("more search keys than indexed columns")
	// ErrColumnNotFound is returned when a column reference is not in the target schema.
	ErrColumnNotFound = errors.New("column not found")
	// ErrTableNotFound is returned when a serialized node names a table the schema lacks.
	ErrTableNotFound = errors.New("table not found")
	// ErrIndexNotFound is returned when a serialized node names an index the table lacks.
	ErrIndexNotFound = errors.New("index not found")
	// ErrInvalidTree is returned for a plan graph that is not a strict tree.
	ErrInvalidTree = errors.New("invalid plan tree")
)
