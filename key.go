package columnar

// keySeparator terminates the column name inside a column key. It
// guarantees that keys compare lexicographically by name first: a short
// name followed by the separator always sorts before any longer name
// sharing the same prefix.
const keySeparator = 0x00

// appendColumnKey appends the column key for (name, tc) to buf:
// the name bytes, the separator, and the type and cardinality code.
// Name validation is the caller's job; see Serializer.BeginColumn.
func appendColumnKey(buf []byte, name []byte, tc ColumnTypeAndCardinality) []byte {
	buf = append(buf, name...)
	buf = append(buf, keySeparator)
	buf = append(buf, tc.Code())
	return buf
}
