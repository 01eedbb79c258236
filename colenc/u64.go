package colenc

import (
	"encoding/binary"
	"fmt"
	"io"
)

// U64Column buffers unsigned 64-bit values and encodes them as packed
// little-endian words preceded by a uvarint count.
type U64Column struct {
	values []uint64
}

// NewU64Column creates an empty u64 column.
func NewU64Column() *U64Column {
	return &U64Column{}
}

// Append adds one value.
func (c *U64Column) Append(v uint64) {
	c.values = append(c.values, v)
}

// NumValues returns the number of appended values.
func (c *U64Column) NumValues() int {
	return len(c.values)
}

// Encode writes the payload to w.
func (c *U64Column) Encode(w io.Writer) error {
	buf := binary.AppendUvarint(nil, uint64(len(c.values)))
	for _, v := range c.values {
		buf = binary.LittleEndian.AppendUint64(buf, v)
	}
	_, err := w.Write(buf)
	return err
}

// DecodeU64Column decodes a payload produced by U64Column.Encode.
func DecodeU64Column(data []byte) ([]uint64, error) {
	count, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, fmt.Errorf("colenc: truncated u64 column header")
	}
	// Divide instead of multiplying: count*8 can wrap for crafted counts.
	if count != uint64(len(data)-n)/8 || (len(data)-n)%8 != 0 {
		return nil, fmt.Errorf("colenc: u64 column size mismatch: %d values, %d payload bytes", count, len(data)-n)
	}
	values := make([]uint64, count)
	for i := range values {
		values[i] = binary.LittleEndian.Uint64(data[n+i*8:])
	}
	return values, nil
}
