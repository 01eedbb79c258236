package columnar

import "errors"

var (
	// ErrInvalidColumnName is returned when a column name contains the
	// reserved 0x00 key separator. Such a name would make the column key
	// ambiguous, so it is rejected instead of silently truncated.
	ErrInvalidColumnName = errors.New("columnar: column name contains reserved separator byte")

	// ErrColumnOpen is returned by BeginColumn while a previous
	// ColumnWriter has not been closed. At most one column may be open
	// per serializer.
	ErrColumnOpen = errors.New("columnar: previous column writer still open")

	// ErrColumnClosed is returned when writing through a ColumnWriter
	// after it was closed.
	ErrColumnClosed = errors.New("columnar: column writer closed")

	// ErrSerializerFinalized is returned when using a serializer after
	// Finalize. A serializer writes exactly one segment.
	ErrSerializerFinalized = errors.New("columnar: serializer already finalized")

	// ErrInvalidCode is returned when decoding a byte that is not a valid
	// type and cardinality code.
	ErrInvalidCode = errors.New("columnar: invalid column type code")

	// ErrInvalidSegment is returned when segment bytes fail structural
	// validation (truncated trailer, index out of bounds, corrupt index).
	ErrInvalidSegment = errors.New("columnar: invalid segment")

	// ErrColumnNotFound is returned when a reader lookup misses.
	ErrColumnNotFound = errors.New("columnar: column not found")
)
