// Package columnar implements the write path of a self-describing columnar
// storage segment: an arbitrary number of named, typed columns written as
// opaque byte runs, followed by a sorted range index and a fixed-size
// trailer recording the index length.
//
// A segment is written in a single forward pass. The Serializer tracks the
// absolute write offset; each column is written through a short-lived
// ColumnWriter that registers the column's byte range in the index when it
// is closed. Finalize appends the serialized index and the trailer.
//
//	s := columnar.NewSerializer(w)
//	cw, _ := s.BeginColumn([]byte("price"), columnar.ColumnTypeAndCardinality{
//		Type:        columnar.ColumnTypeU64,
//		Cardinality: columnar.CardinalityRequired,
//	})
//	cw.Write(values)
//	cw.Close()
//	err := s.Finalize()
//
// Columns must be begun in strictly increasing column key order (name, then
// type and cardinality code). Violating the order is a caller defect and
// panics; it is never reported as a recoverable error.
//
// Readers locate the index by reading the last 8 bytes of the segment and
// seeking back; see OpenReader.
package columnar
