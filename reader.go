package columnar

import (
	"encoding/binary"
	"fmt"

	"github.com/hupe1980/columnar/rangetable"
)

// Reader provides random access to the columns of a finished segment held
// in memory. It decodes the trailer and index once; column lookups never
// scan the payload section.
type Reader struct {
	data       []byte
	index      *rangetable.Table
	payloadEnd uint64
}

// ColumnRef describes one column in a segment.
type ColumnRef struct {
	Name               []byte
	TypeAndCardinality ColumnTypeAndCardinality
	Range              rangetable.ByteRange
}

// OpenReader validates the trailer and decodes the index of a serialized
// segment.
func OpenReader(data []byte) (*Reader, error) {
	if len(data) < trailerSize {
		return nil, fmt.Errorf("%w: %d bytes is smaller than the trailer", ErrInvalidSegment, len(data))
	}
	indexLen := binary.LittleEndian.Uint64(data[len(data)-trailerSize:])
	if indexLen > uint64(len(data)-trailerSize) {
		return nil, fmt.Errorf("%w: index length %d exceeds segment size", ErrInvalidSegment, indexLen)
	}

	payloadEnd := uint64(len(data)-trailerSize) - indexLen
	index, err := rangetable.Open(data[payloadEnd : uint64(len(data))-trailerSize])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSegment, err)
	}

	return &Reader{
		data:       data,
		index:      index,
		payloadEnd: payloadEnd,
	}, nil
}

// NumColumns returns the number of columns in the segment.
func (r *Reader) NumColumns() int {
	return r.index.Len()
}

// Column returns the raw payload bytes of the column identified by name
// and type. The returned slice aliases the segment data.
func (r *Reader) Column(name []byte, tc ColumnTypeAndCardinality) ([]byte, error) {
	key := appendColumnKey(nil, name, tc)
	rng, ok := r.index.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q (%s)", ErrColumnNotFound, name, tc)
	}
	return r.slice(rng)
}

// Columns lists all columns in ascending key order.
func (r *Reader) Columns() ([]ColumnRef, error) {
	refs := make([]ColumnRef, 0, r.index.Len())
	for i := 0; i < r.index.Len(); i++ {
		entry := r.index.Entry(i)
		ref, err := decodeColumnKey(entry.Key)
		if err != nil {
			return nil, err
		}
		ref.Range = entry.Range
		refs = append(refs, ref)
	}
	return refs, nil
}

func (r *Reader) slice(rng rangetable.ByteRange) ([]byte, error) {
	if rng.End < rng.Start || rng.End > r.payloadEnd {
		return nil, fmt.Errorf("%w: column range [%d, %d) outside payload section", ErrInvalidSegment, rng.Start, rng.End)
	}
	return r.data[rng.Start:rng.End], nil
}

// decodeColumnKey splits a column key back into name and code. The
// separator is located from the end: the name may never contain 0x00, so
// the byte before the code is always the separator.
func decodeColumnKey(key []byte) (ColumnRef, error) {
	if len(key) < 2 || key[len(key)-2] != keySeparator {
		return ColumnRef{}, fmt.Errorf("%w: malformed column key %q", ErrInvalidSegment, key)
	}
	tc, err := ColumnTypeAndCardinalityFromCode(key[len(key)-1])
	if err != nil {
		return ColumnRef{}, fmt.Errorf("%w: %w", ErrInvalidSegment, err)
	}
	return ColumnRef{
		Name:               key[:len(key)-2],
		TypeAndCardinality: tc,
	}, nil
}
