package columnar

import "fmt"

// ColumnType identifies the value type of a column.
type ColumnType uint8

const (
	ColumnTypeBytes ColumnType = iota
	ColumnTypeStr
	ColumnTypeU64
	ColumnTypeI64
	ColumnTypeF64
	ColumnTypeBool
	ColumnTypeDateTime
	ColumnTypeIPAddr

	numColumnTypes
)

// String returns a human-readable name for the column type.
func (t ColumnType) String() string {
	switch t {
	case ColumnTypeBytes:
		return "bytes"
	case ColumnTypeStr:
		return "str"
	case ColumnTypeU64:
		return "u64"
	case ColumnTypeI64:
		return "i64"
	case ColumnTypeF64:
		return "f64"
	case ColumnTypeBool:
		return "bool"
	case ColumnTypeDateTime:
		return "datetime"
	case ColumnTypeIPAddr:
		return "ipaddr"
	default:
		return fmt.Sprintf("ColumnType(%d)", uint8(t))
	}
}

// Cardinality describes how many values a column holds per record.
type Cardinality uint8

const (
	// CardinalityRequired means exactly one value per record.
	CardinalityRequired Cardinality = iota
	// CardinalityOptional means zero or one value per record.
	CardinalityOptional
	// CardinalityMultivalued means any number of values per record.
	CardinalityMultivalued

	numCardinalities
)

// String returns a human-readable name for the cardinality.
func (c Cardinality) String() string {
	switch c {
	case CardinalityRequired:
		return "required"
	case CardinalityOptional:
		return "optional"
	case CardinalityMultivalued:
		return "multivalued"
	default:
		return fmt.Sprintf("Cardinality(%d)", uint8(c))
	}
}

// ColumnTypeAndCardinality is the typed identity of a column. Together with
// the column name it forms the column key in the segment index.
type ColumnTypeAndCardinality struct {
	Type        ColumnType
	Cardinality Cardinality
}

// Code packs the pair into a single byte: the cardinality occupies the low
// two bits, the type the bits above. The mapping is a bijection over valid
// pairs; ColumnTypeAndCardinalityFromCode is its inverse.
func (tc ColumnTypeAndCardinality) Code() uint8 {
	return uint8(tc.Type)<<2 | uint8(tc.Cardinality)
}

// String returns "type/cardinality", e.g. "u64/optional".
func (tc ColumnTypeAndCardinality) String() string {
	return tc.Type.String() + "/" + tc.Cardinality.String()
}

// ColumnTypeAndCardinalityFromCode decodes a code byte produced by Code.
func ColumnTypeAndCardinalityFromCode(code uint8) (ColumnTypeAndCardinality, error) {
	tc := ColumnTypeAndCardinality{
		Type:        ColumnType(code >> 2),
		Cardinality: Cardinality(code & 0b11),
	}
	if tc.Type >= numColumnTypes || tc.Cardinality >= numCardinalities {
		return ColumnTypeAndCardinality{}, fmt.Errorf("%w: 0x%02x", ErrInvalidCode, code)
	}
	return tc, nil
}
