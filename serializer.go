package columnar

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"

	"github.com/hupe1980/columnar/internal/countio"
	"github.com/hupe1980/columnar/rangetable"
)

// trailerSize is the fixed size of the segment trailer: a little-endian
// uint64 holding the byte length of the serialized index.
const trailerSize = 8

// Serializer writes one columnar segment to an output stream. It owns the
// stream, the running write offset and the in-progress range index.
//
// Usage is single-threaded and strictly sequential: begin a column, write
// its payload through the returned ColumnWriter, close it, repeat, then
// call Finalize exactly once. The serializer is not reusable afterward.
type Serializer struct {
	wrt       *countio.CountingWriter
	index     *rangetable.Builder
	keyBuf    []byte
	logger    *slog.Logger
	open      bool
	finalized bool
	columns   int
}

// NewSerializer creates a serializer writing to w. The writer is wrapped
// with a byte counter; nothing else may write to w while the serializer
// is live, or the recorded offsets become meaningless.
func NewSerializer(w io.Writer, opts ...Option) *Serializer {
	o := applyOptions(opts)
	return &Serializer{
		wrt:    countio.NewCountingWriter(w),
		index:  rangetable.NewBuilder(o.indexCapacity),
		logger: o.logger,
	}
}

// Offset returns the total number of bytes written to the stream so far.
func (s *Serializer) Offset() uint64 {
	return s.wrt.BytesWritten()
}

// BeginColumn starts a new column and returns the writer for its payload
// bytes. It writes nothing itself; the current offset becomes the column's
// start offset.
//
// Columns must be begun in strictly increasing column key order
// (lexicographic over name ++ 0x00 ++ code). The order is checked when the
// column is closed and a violation panics.
//
// The name must not contain the 0x00 separator byte. The previous column's
// writer must have been closed.
func (s *Serializer) BeginColumn(name []byte, tc ColumnTypeAndCardinality) (*ColumnWriter, error) {
	if s.finalized {
		return nil, ErrSerializerFinalized
	}
	if s.open {
		return nil, ErrColumnOpen
	}
	if bytes.IndexByte(name, keySeparator) >= 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColumnName, name)
	}

	s.keyBuf = appendColumnKey(s.keyBuf[:0], name, tc)
	s.open = true
	return &ColumnWriter{
		s:     s,
		start: s.wrt.BytesWritten(),
	}, nil
}

// Finalize serializes the index, appends it to the stream followed by the
// 8-byte little-endian length trailer, and consumes the serializer.
//
// Calling Finalize while a ColumnWriter is still open is a programming
// error and panics. On an I/O error the segment is invalid and must be
// discarded; there is no partial-success mode.
func (s *Serializer) Finalize() error {
	if s.finalized {
		return ErrSerializerFinalized
	}
	if s.open {
		panic("columnar: Finalize called with an open column writer")
	}
	s.finalized = true

	payloadBytes := s.wrt.BytesWritten()
	indexBytes, err := s.index.Finish()
	if err != nil {
		return err
	}
	if _, err := s.wrt.Write(indexBytes); err != nil {
		return fmt.Errorf("columnar: writing index: %w", err)
	}

	var trailer [trailerSize]byte
	binary.LittleEndian.PutUint64(trailer[:], uint64(len(indexBytes)))
	if _, err := s.wrt.Write(trailer[:]); err != nil {
		return fmt.Errorf("columnar: writing trailer: %w", err)
	}

	s.logger.Info("segment finalized",
		"columns", s.columns,
		"payload_bytes", payloadBytes,
		"index_bytes", len(indexBytes),
	)
	return nil
}

// ColumnWriter forwards one column's payload bytes to the segment stream
// and registers the column's byte range in the index when closed.
type ColumnWriter struct {
	s      *Serializer
	start  uint64
	closed bool
}

// Write forwards payload bytes to the stream. Any chunking is permitted;
// the column's payload is the total of all writes.
func (cw *ColumnWriter) Write(p []byte) (int, error) {
	if cw.closed {
		return 0, ErrColumnClosed
	}
	return cw.s.wrt.Write(p)
}

// Flush forwards to the underlying stream's flush, if any.
func (cw *ColumnWriter) Flush() error {
	if cw.closed {
		return ErrColumnClosed
	}
	return cw.s.wrt.Flush()
}

// Close records the column's byte range under its key. It is idempotent:
// the range is registered exactly once no matter how often Close is
// called. Registration is pure in-memory bookkeeping and cannot fail; the
// returned error exists only to satisfy io.Closer and is always nil.
//
// Closing a column whose key is not strictly greater than the previously
// registered key panics (caller enumeration bug).
func (cw *ColumnWriter) Close() error {
	if cw.closed {
		return nil
	}
	cw.closed = true

	s := cw.s
	end := s.wrt.BytesWritten()
	s.index.Insert(s.keyBuf, rangetable.ByteRange{Start: cw.start, End: end})
	s.keyBuf = s.keyBuf[:0]
	s.open = false
	s.columns++

	s.logger.Debug("column serialized",
		"start", cw.start,
		"end", end,
		"bytes", end-cw.start,
	)
	return nil
}
