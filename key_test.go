package columnar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendColumnKey(t *testing.T) {
	tc := ColumnTypeAndCardinality{
		Type:        ColumnTypeBytes,
		Cardinality: CardinalityOptional,
	}

	// Key encoding itself is pure: it does not validate the name. The
	// embedded zero byte exercises exactly that.
	name := []byte("root\x00child")
	buf := append([]byte(nil), "somegarbage"...)
	buf = appendColumnKey(buf[:0], name, tc)

	require.Len(t, buf, len(name)+2)
	assert.Equal(t, name, buf[:len(name)])
	assert.Equal(t, byte(0), buf[len(name)])
	assert.Equal(t, tc.Code(), buf[len(name)+1])
}

func TestAppendColumnKeyOrdering(t *testing.T) {
	// A short name followed by the separator sorts before any longer name
	// sharing the prefix, regardless of the code byte.
	tcHigh := ColumnTypeAndCardinality{Type: ColumnTypeIPAddr, Cardinality: CardinalityMultivalued}
	tcLow := ColumnTypeAndCardinality{Type: ColumnTypeBytes, Cardinality: CardinalityRequired}

	short := appendColumnKey(nil, []byte("ab"), tcHigh)
	long := appendColumnKey(nil, []byte("abc"), tcLow)
	assert.Less(t, string(short), string(long))
}
