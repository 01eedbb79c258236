package colenc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/RoaringBitmap/roaring/v2"
)

// Presence records which rows of an optional or multivalued column carry a
// value, as a roaring bitmap over row ids.
type Presence struct {
	rb *roaring.Bitmap
}

// NewPresence creates an empty presence set.
func NewPresence() *Presence {
	return &Presence{rb: roaring.New()}
}

// Set marks row as carrying a value.
func (p *Presence) Set(row uint32) {
	p.rb.Add(row)
}

// Contains reports whether row carries a value.
func (p *Presence) Contains(row uint32) bool {
	return p.rb.Contains(row)
}

// Cardinality returns the number of rows carrying a value.
func (p *Presence) Cardinality() uint64 {
	return p.rb.GetCardinality()
}

// Encode writes the presence section: a uvarint byte length followed by
// the serialized bitmap.
func (p *Presence) Encode(w io.Writer) error {
	var body bytes.Buffer
	if _, err := p.rb.WriteTo(&body); err != nil {
		return err
	}
	if _, err := w.Write(binary.AppendUvarint(nil, uint64(body.Len()))); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

// DecodePresence decodes a presence section from the start of data and
// returns the remaining bytes.
func DecodePresence(data []byte) (*Presence, []byte, error) {
	size, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, nil, fmt.Errorf("colenc: truncated presence header")
	}
	if size > uint64(len(data)-n) {
		return nil, nil, fmt.Errorf("colenc: presence section exceeds payload")
	}
	rb := roaring.New()
	if err := rb.UnmarshalBinary(data[n : n+int(size)]); err != nil {
		return nil, nil, fmt.Errorf("colenc: decoding presence bitmap: %w", err)
	}
	return &Presence{rb: rb}, data[n+int(size):], nil
}

// OptionalBytesColumn combines a presence set with a bytes column: one
// value per present row, in ascending row order.
type OptionalBytesColumn struct {
	presence *Presence
	values   *BytesColumn
	lastRow  uint32
	any      bool
}

// NewOptionalBytesColumn creates an empty optional bytes column.
func NewOptionalBytesColumn() *OptionalBytesColumn {
	return &OptionalBytesColumn{
		presence: NewPresence(),
		values:   NewBytesColumn(),
	}
}

// Append records a value for row. Rows must be strictly ascending.
func (c *OptionalBytesColumn) Append(row uint32, v []byte) error {
	if c.any && row <= c.lastRow {
		return fmt.Errorf("colenc: row %d not greater than previous row %d", row, c.lastRow)
	}
	c.presence.Set(row)
	c.values.Append(v)
	c.lastRow = row
	c.any = true
	return nil
}

// Encode writes the presence section followed by the value section.
func (c *OptionalBytesColumn) Encode(w io.Writer) error {
	if err := c.presence.Encode(w); err != nil {
		return err
	}
	return c.values.Encode(w)
}

// DecodeOptionalBytesColumn decodes a payload produced by
// OptionalBytesColumn.Encode into the presence set and the values of the
// present rows.
func DecodeOptionalBytesColumn(data []byte) (*Presence, [][]byte, error) {
	presence, rest, err := DecodePresence(data)
	if err != nil {
		return nil, nil, err
	}
	values, err := DecodeBytesColumn(rest)
	if err != nil {
		return nil, nil, err
	}
	if uint64(len(values)) != presence.Cardinality() {
		return nil, nil, fmt.Errorf("colenc: %d values for %d present rows", len(values), presence.Cardinality())
	}
	return presence, values, nil
}
