package colenc

import (
	"encoding/binary"
	"fmt"
	"io"
)

// BytesColumn buffers variable-length values and encodes them as a payload
// of uvarint value lengths followed by the concatenated value bytes.
type BytesColumn struct {
	lengths []uint64
	blob    []byte
}

// NewBytesColumn creates an empty bytes column.
func NewBytesColumn() *BytesColumn {
	return &BytesColumn{}
}

// Append adds one value. The bytes are copied.
func (c *BytesColumn) Append(v []byte) {
	c.lengths = append(c.lengths, uint64(len(v)))
	c.blob = append(c.blob, v...)
}

// NumValues returns the number of appended values.
func (c *BytesColumn) NumValues() int {
	return len(c.lengths)
}

// Encode writes the payload to w.
func (c *BytesColumn) Encode(w io.Writer) error {
	header := binary.AppendUvarint(nil, uint64(len(c.lengths)))
	for _, l := range c.lengths {
		header = binary.AppendUvarint(header, l)
	}
	if _, err := w.Write(header); err != nil {
		return err
	}
	if len(c.blob) > 0 {
		if _, err := w.Write(c.blob); err != nil {
			return err
		}
	}
	return nil
}

// DecodeBytesColumn decodes a payload produced by BytesColumn.Encode.
// The returned values alias data.
func DecodeBytesColumn(data []byte) ([][]byte, error) {
	count, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, fmt.Errorf("colenc: truncated bytes column header")
	}
	pos := n

	// Every value contributes at least one byte to the length stream, so
	// a count beyond the remaining bytes is corruption.
	if count > uint64(len(data)-pos) {
		return nil, fmt.Errorf("colenc: bytes column count %d exceeds payload", count)
	}

	lengths := make([]uint64, count)
	for i := range lengths {
		l, n := binary.Uvarint(data[pos:])
		if n <= 0 {
			return nil, fmt.Errorf("colenc: truncated bytes column length stream")
		}
		pos += n
		lengths[i] = l
	}

	// Slice the blob length by length; comparing each length against the
	// remaining bytes cannot overflow, unlike summing the lengths.
	blob := data[pos:]
	values := make([][]byte, count)
	var off uint64
	for i, l := range lengths {
		if l > uint64(len(blob))-off {
			return nil, fmt.Errorf("colenc: bytes column value %d of length %d exceeds blob", i, l)
		}
		values[i] = blob[off : off+l]
		off += l
	}
	if off != uint64(len(blob)) {
		return nil, fmt.Errorf("colenc: bytes column blob has %d trailing bytes", uint64(len(blob))-off)
	}
	return values, nil
}
