package reviews

import "errors"

var (
	// ErrNotFound covers both a missing record and a record owned by someone
	// else. Collapsing the two keeps record existence unleakable.
	ErrNotFound = errors.New("review not found")

	// ErrPersistence marks storage failures during the upload pipeline.
	ErrPersistence = errors.New("failed to persist review")
)
