// Package countio provides a byte-counting wrapper around an io.Writer.
package countio

import "io"

// CountingWriter wraps an io.Writer and tracks the total number of bytes
// successfully written to it. Offsets derived from BytesWritten are only
// meaningful as long as nothing else writes to the underlying writer.
type CountingWriter struct {
	w io.Writer
	n uint64
}

// NewCountingWriter wraps w.
func NewCountingWriter(w io.Writer) *CountingWriter {
	return &CountingWriter{w: w}
}

// Write forwards to the underlying writer and counts the bytes it accepted.
// Short writes still advance the counter by the accepted amount, so the
// counter stays consistent with the stream even on error.
func (cw *CountingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	if n > 0 {
		cw.n += uint64(n)
	}
	return n, err
}

// Flush forwards to the underlying writer if it supports flushing.
func (cw *CountingWriter) Flush() error {
	if f, ok := cw.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// BytesWritten returns the total number of bytes written so far.
func (cw *CountingWriter) BytesWritten() uint64 {
	return cw.n
}
