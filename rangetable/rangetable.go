// Package rangetable implements a compact sorted dictionary mapping byte
// keys to byte ranges.
//
// The builder is append-only and requires keys in strictly increasing
// lexicographic order; inserting out of order is a caller bug and panics.
// The serialized table is immutable and supports exact lookup and ordered
// iteration without decompressing more than the key stream.
package rangetable

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"sort"
)

const (
	tableMagic   = 0x43525442 // "CRTB"
	tableVersion = 1
	headerSize   = 16
)

var (
	// ErrInvalidMagic is returned when the data is not a range table.
	ErrInvalidMagic = errors.New("rangetable: invalid magic number")

	// ErrInvalidVersion is returned for an unsupported format version.
	ErrInvalidVersion = errors.New("rangetable: unsupported version")

	// ErrCorrupted is returned when the payload fails checksum or bounds
	// validation.
	ErrCorrupted = errors.New("rangetable: corrupted table")
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// ByteRange is a half-open interval [Start, End) of absolute offsets.
type ByteRange struct {
	Start uint64
	End   uint64
}

// Len returns the length of the range in bytes.
func (r ByteRange) Len() uint64 {
	return r.End - r.Start
}

// Entry is one key to range mapping in a table.
type Entry struct {
	Key   []byte
	Range ByteRange
}

// Builder accumulates sorted entries and serializes them once.
//
// Format:
//
//	Magic (4 bytes)
//	Version (4 bytes)
//	Checksum (4 bytes) - CRC32C of payload
//	PayloadLength (4 bytes)
//	Payload:
//	  EntryCount (uvarint)
//	  Entries...
//	    SharedPrefixLen (uvarint) - bytes shared with the previous key
//	    SuffixLen (uvarint)
//	    Suffix (bytes)
//	    Start (uvarint)
//	    Length (uvarint) - End - Start
type Builder struct {
	buf      []byte
	lastKey  []byte
	count    uint64
	finished bool
}

// NewBuilder creates a builder. capacity pre-sizes the output buffer.
func NewBuilder(capacity int) *Builder {
	return &Builder{buf: make([]byte, 0, capacity)}
}

// Insert appends an entry. The key must be strictly greater than the
// previously inserted key; a violation indicates a caller defect and
// panics rather than corrupting the table. The key bytes are copied.
func (b *Builder) Insert(key []byte, r ByteRange) {
	if b.finished {
		panic("rangetable: Insert after Finish")
	}
	if b.count > 0 && bytes.Compare(key, b.lastKey) <= 0 {
		panic(fmt.Sprintf("rangetable: key %q not greater than previous key %q", key, b.lastKey))
	}
	if r.End < r.Start {
		panic(fmt.Sprintf("rangetable: inverted range [%d, %d)", r.Start, r.End))
	}

	shared := sharedPrefixLen(b.lastKey, key)
	b.buf = binary.AppendUvarint(b.buf, uint64(shared))
	b.buf = binary.AppendUvarint(b.buf, uint64(len(key)-shared))
	b.buf = append(b.buf, key[shared:]...)
	b.buf = binary.AppendUvarint(b.buf, r.Start)
	b.buf = binary.AppendUvarint(b.buf, r.End-r.Start)

	b.lastKey = append(b.lastKey[:0], key...)
	b.count++
}

// Count returns the number of entries inserted so far.
func (b *Builder) Count() uint64 {
	return b.count
}

// Finish serializes the table. The builder is consumed; further use panics.
func (b *Builder) Finish() ([]byte, error) {
	if b.finished {
		panic("rangetable: Finish called twice")
	}
	b.finished = true

	payload := binary.AppendUvarint(nil, b.count)
	payload = append(payload, b.buf...)
	if len(payload) > int(^uint32(0)) {
		return nil, fmt.Errorf("rangetable: payload too large: %d bytes", len(payload))
	}

	out := make([]byte, headerSize, headerSize+len(payload))
	binary.LittleEndian.PutUint32(out[0:4], tableMagic)
	binary.LittleEndian.PutUint32(out[4:8], tableVersion)
	binary.LittleEndian.PutUint32(out[8:12], crc32.Checksum(payload, castagnoli))
	binary.LittleEndian.PutUint32(out[12:16], uint32(len(payload)))
	return append(out, payload...), nil
}

func sharedPrefixLen(a, b []byte) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// Table is a decoded, immutable range table.
type Table struct {
	entries []Entry
}

// Open decodes a serialized table. The entry keys are copied out of data.
func Open(data []byte) (*Table, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is smaller than the header", ErrCorrupted, len(data))
	}
	if binary.LittleEndian.Uint32(data[0:4]) != tableMagic {
		return nil, ErrInvalidMagic
	}
	if v := binary.LittleEndian.Uint32(data[4:8]); v != tableVersion {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVersion, v)
	}
	checksum := binary.LittleEndian.Uint32(data[8:12])
	payloadLen := binary.LittleEndian.Uint32(data[12:16])
	if int(payloadLen) != len(data)-headerSize {
		return nil, fmt.Errorf("%w: payload length mismatch", ErrCorrupted)
	}

	payload := data[headerSize:]
	if crc32.Checksum(payload, castagnoli) != checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupted)
	}

	dec := decoder{buf: payload}
	count := dec.uvarint()
	// An entry occupies at least four bytes (three uvarints plus the
	// suffix length), so a count the remaining payload cannot hold is
	// corruption, not a reason to allocate.
	if count > uint64(len(payload)-dec.pos)/4 {
		return nil, fmt.Errorf("%w: entry count %d exceeds payload capacity", ErrCorrupted, count)
	}
	entries := make([]Entry, 0, count)
	var lastKey []byte
	for i := uint64(0); i < count; i++ {
		shared := dec.uvarint()
		suffixLen := dec.uvarint()
		suffix := dec.bytes(suffixLen)
		start := dec.uvarint()
		length := dec.uvarint()
		if dec.err != nil {
			break
		}
		if shared > uint64(len(lastKey)) {
			dec.err = fmt.Errorf("%w: shared prefix exceeds previous key", ErrCorrupted)
			break
		}
		key := make([]byte, 0, shared+suffixLen)
		key = append(key, lastKey[:shared]...)
		key = append(key, suffix...)
		entries = append(entries, Entry{
			Key:   key,
			Range: ByteRange{Start: start, End: start + length},
		})
		lastKey = key
	}
	if dec.err != nil {
		return nil, dec.err
	}
	if dec.pos != len(payload) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupted, len(payload)-dec.pos)
	}
	return &Table{entries: entries}, nil
}

// Get returns the range stored under key.
func (t *Table) Get(key []byte) (ByteRange, bool) {
	i := sort.Search(len(t.entries), func(i int) bool {
		return bytes.Compare(t.entries[i].Key, key) >= 0
	})
	if i < len(t.entries) && bytes.Equal(t.entries[i].Key, key) {
		return t.entries[i].Range, true
	}
	return ByteRange{}, false
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entry returns the i-th entry in ascending key order.
func (t *Table) Entry(i int) Entry {
	return t.entries[i]
}

type decoder struct {
	buf []byte
	pos int
	err error
}

func (d *decoder) uvarint() uint64 {
	if d.err != nil {
		return 0
	}
	v, n := binary.Uvarint(d.buf[d.pos:])
	if n <= 0 {
		d.err = fmt.Errorf("%w: truncated varint", ErrCorrupted)
		return 0
	}
	d.pos += n
	return v
}

func (d *decoder) bytes(n uint64) []byte {
	if d.err != nil {
		return nil
	}
	if n > uint64(len(d.buf)-d.pos) {
		d.err = fmt.Errorf("%w: truncated entry", ErrCorrupted)
		return nil
	}
	b := d.buf[d.pos : d.pos+int(n)]
	d.pos += int(n)
	return b
}
