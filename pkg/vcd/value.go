package vcd

import "strconv"

// ValueKind discriminates the closed set of sample value types.
type ValueKind uint8

const (
	KindBits ValueKind = iota
	KindInteger
	KindReal
	KindBoolean
)

var kindNames = map[ValueKind]string{
	KindBits:    "bits",
	KindInteger: "integer",
	KindReal:    "real",
	KindBoolean: "boolean",
}

func (k ValueKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "ValueKind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a sample value decoded once at the parser boundary. All body
// record payloads are converted into one of the four kinds here so the
// rest of the pipeline never probes for shape.
type Value struct {
	kind    ValueKind
	bits    string
	integer int64
	real    float64
	boolean bool
}

// Bits builds a value from a scalar or vector bit string ("0", "1", "x",
// "z", "1010", "10xz"). Unexpected payload text is also carried through
// this kind so it survives as its textual form.
func Bits(s string) Value {
	return Value{kind: KindBits, bits: s}
}

// Integer builds a decimal integer value.
func Integer(i int64) Value {
	return Value{kind: KindInteger, integer: i}
}

// Real builds a floating-point value.
func Real(f float64) Value {
	return Value{kind: KindReal, real: f}
}

// Boolean builds a true/false value.
func Boolean(b bool) Value {
	return Value{kind: KindBoolean, boolean: b}
}

// Kind reports which variant the value holds.
func (v Value) Kind() ValueKind {
	return v.kind
}

// String renders the value in the textual form used by extraction
// results.
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.integer, 10)
	case KindReal:
		return strconv.FormatFloat(v.real, 'g', -1, 64)
	case KindBoolean:
		return strconv.FormatBool(v.boolean)
	default:
		return v.bits
	}
}
