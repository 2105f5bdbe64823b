package mesh

import "errors"

var (
	// ErrMeshRead wraps any failure of the external mesh provider to parse
	// its input. There is no recovery; a failed read aborts the run.
	ErrMeshRead = errors.New("mesh read failure")

	// ErrInvalidTopology signals a Triangle constructed with a vertex count
	// other than 3. Fatal at construction, never coerced.
	ErrInvalidTopology = errors.New("invalid cell topology")

	// ErrGeometryUnavailable signals access to derived geometry on a
	// topology-only Triangle. The accessors panic with this error since it
	// is a misuse of the two-mode construction, not a runtime condition.
	ErrGeometryUnavailable = errors.New("triangle geometry unavailable")
)
