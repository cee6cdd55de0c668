package catalog

import "errors"

var (
	// ErrInvalidRef marks a handbook reference that is malformed: an index
	// below 1 or a table that is not a single upper-case letter.
	ErrInvalidRef = errors.New("catalog: invalid reference")

	// ErrUnknownRef marks a well-formed reference with no catalog entry.
	ErrUnknownRef = errors.New("catalog: unknown reference")

	// ErrInvalidRelation marks a relation index entry that cannot be used:
	// a blank or repeated name, or no references.
	ErrInvalidRelation = errors.New("catalog: invalid relation")

	// ErrUnknownRelation is returned when looking up a name not in the index.
	ErrUnknownRelation = errors.New("catalog: unknown relation")
)
