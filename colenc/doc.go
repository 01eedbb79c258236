// Package colenc provides baseline encoders that turn column values into
// the opaque payload bytes a columnar.ColumnWriter expects.
//
// The serializer treats every column as an opaque byte run; these encoders
// are one way to produce those runs. Variable-length values are stored as
// a length stream followed by a value blob, fixed-width values as packed
// little-endian words, and row presence for optional and multivalued
// columns as a roaring bitmap.
package colenc
