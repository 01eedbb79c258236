package rangetable

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frameTable wraps a raw payload in valid header framing, the way an
// attacker with knowledge of the format would.
func frameTable(payload []byte) []byte {
	data := make([]byte, headerSize, headerSize+len(payload))
	binary.LittleEndian.PutUint32(data[0:4], tableMagic)
	binary.LittleEndian.PutUint32(data[4:8], tableVersion)
	binary.LittleEndian.PutUint32(data[8:12], crc32.Checksum(payload, castagnoli))
	binary.LittleEndian.PutUint32(data[12:16], uint32(len(payload)))
	return append(data, payload...)
}

func TestBuildAndOpen(t *testing.T) {
	b := NewBuilder(0)
	b.Insert([]byte("alpha"), ByteRange{Start: 0, End: 4})
	b.Insert([]byte("alphabet"), ByteRange{Start: 4, End: 4})
	b.Insert([]byte("beta"), ByteRange{Start: 4, End: 14})
	require.Equal(t, uint64(3), b.Count())

	data, err := b.Finish()
	require.NoError(t, err)

	tbl, err := Open(data)
	require.NoError(t, err)
	require.Equal(t, 3, tbl.Len())

	r, ok := tbl.Get([]byte("alpha"))
	require.True(t, ok)
	assert.Equal(t, ByteRange{Start: 0, End: 4}, r)

	r, ok = tbl.Get([]byte("alphabet"))
	require.True(t, ok)
	assert.Equal(t, uint64(0), r.Len())

	r, ok = tbl.Get([]byte("beta"))
	require.True(t, ok)
	assert.Equal(t, ByteRange{Start: 4, End: 14}, r)

	_, ok = tbl.Get([]byte("alp"))
	assert.False(t, ok)
	_, ok = tbl.Get([]byte("gamma"))
	assert.False(t, ok)
}

func TestEmptyTable(t *testing.T) {
	b := NewBuilder(16)
	data, err := b.Finish()
	require.NoError(t, err)

	tbl, err := Open(data)
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())

	_, ok := tbl.Get([]byte("anything"))
	assert.False(t, ok)
}

func TestPrefixCompressionRoundTrip(t *testing.T) {
	b := NewBuilder(0)
	var keys [][]byte
	for i := 0; i < 100; i++ {
		key := fmt.Appendf(nil, "column/%04d", i)
		keys = append(keys, key)
		b.Insert(key, ByteRange{Start: uint64(i * 10), End: uint64(i*10 + 10)})
	}

	data, err := b.Finish()
	require.NoError(t, err)

	tbl, err := Open(data)
	require.NoError(t, err)
	require.Equal(t, 100, tbl.Len())

	for i, key := range keys {
		assert.Equal(t, key, tbl.Entry(i).Key)
		r, ok := tbl.Get(key)
		require.True(t, ok, "key %q", key)
		assert.Equal(t, ByteRange{Start: uint64(i * 10), End: uint64(i*10 + 10)}, r)
	}
}

func TestInsertOutOfOrderPanics(t *testing.T) {
	b := NewBuilder(0)
	b.Insert([]byte("b"), ByteRange{Start: 0, End: 1})

	assert.Panics(t, func() {
		b.Insert([]byte("a"), ByteRange{Start: 1, End: 2})
	})
	assert.Panics(t, func() {
		b.Insert([]byte("b"), ByteRange{Start: 1, End: 2})
	})
}

func TestInsertInvertedRangePanics(t *testing.T) {
	b := NewBuilder(0)
	assert.Panics(t, func() {
		b.Insert([]byte("a"), ByteRange{Start: 2, End: 1})
	})
}

func TestBuilderConsumedOnFinish(t *testing.T) {
	b := NewBuilder(0)
	_, err := b.Finish()
	require.NoError(t, err)

	assert.Panics(t, func() { b.Finish() })
	assert.Panics(t, func() { b.Insert([]byte("a"), ByteRange{}) })
}

func TestOpenRejectsCorruptData(t *testing.T) {
	b := NewBuilder(0)
	b.Insert([]byte("key"), ByteRange{Start: 0, End: 7})
	data, err := b.Finish()
	require.NoError(t, err)

	t.Run("too short", func(t *testing.T) {
		_, err := Open(data[:8])
		assert.ErrorIs(t, err, ErrCorrupted)
	})

	t.Run("bad magic", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[0] ^= 0xff
		_, err := Open(bad)
		assert.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("bad version", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		binary.LittleEndian.PutUint32(bad[4:8], 99)
		_, err := Open(bad)
		assert.ErrorIs(t, err, ErrInvalidVersion)
	})

	t.Run("flipped payload byte", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[len(bad)-1] ^= 0xff
		_, err := Open(bad)
		assert.ErrorIs(t, err, ErrCorrupted)
	})

	t.Run("truncated payload", func(t *testing.T) {
		_, err := Open(data[:len(data)-2])
		assert.ErrorIs(t, err, ErrCorrupted)
	})

	// A valid checksum does not make a table trustworthy: anyone can
	// frame arbitrary bytes. A huge declared count must not drive the
	// entry allocation.
	t.Run("oversized entry count", func(t *testing.T) {
		crafted := frameTable(binary.AppendUvarint(nil, 1<<62))
		assert.NotPanics(t, func() {
			_, err := Open(crafted)
			assert.ErrorIs(t, err, ErrCorrupted)
		})
	})

	t.Run("count beyond payload capacity", func(t *testing.T) {
		// Count claims more entries than the remaining bytes can encode.
		payload := binary.AppendUvarint(nil, 100)
		payload = append(payload, make([]byte, 20)...)
		_, err := Open(frameTable(payload))
		assert.ErrorIs(t, err, ErrCorrupted)
	})
}
