package dbc

import (
	"strconv"
)

// AttributeValue is a literal attribute value. The zero value has kind
// ValueNone.
type AttributeValue struct {
	kind AttributeValueKind
	f    float64
	u    uint64
	i    int64
	s    string
}

// FloatValue returns a numeric attribute value.
func FloatValue(v float64) AttributeValue { return AttributeValue{kind: ValueFloat, f: v} }

// StringValue returns a string attribute value.
func StringValue(v string) AttributeValue { return AttributeValue{kind: ValueString, s: v} }

// UintValue returns an unsigned integer attribute value.
func UintValue(v uint64) AttributeValue { return AttributeValue{kind: ValueUint, u: v} }

// IntValue returns a signed integer attribute value.
func IntValue(v int64) AttributeValue { return AttributeValue{kind: ValueInt, i: v} }

func (v AttributeValue) Kind() AttributeValueKind { return v.kind }
func (v AttributeValue) IsNone() bool             { return v.kind == ValueNone }

// Float returns the value as a float64. Integer kinds are converted;
// strings and absent values return 0.
func (v AttributeValue) Float() float64 {
	switch v.kind {
	case ValueFloat:
		return v.f
	case ValueUint:
		return float64(v.u)
	case ValueInt:
		return float64(v.i)
	default:
		return 0
	}
}

// Uint returns the unsigned integer value, or 0 for other kinds.
func (v AttributeValue) Uint() uint64 {
	if v.kind == ValueUint {
		return v.u
	}
	return 0
}

// Int returns the signed integer value, or 0 for other kinds.
func (v AttributeValue) Int() int64 {
	if v.kind == ValueInt {
		return v.i
	}
	return 0
}

// Text returns the string value, or "" for other kinds.
func (v AttributeValue) Text() string {
	if v.kind == ValueString {
		return v.s
	}
	return ""
}

// Interface returns the value as float64, string, uint64 or int64, or nil
// when absent.
func (v AttributeValue) Interface() any {
	switch v.kind {
	case ValueFloat:
		return v.f
	case ValueString:
		return v.s
	case ValueUint:
		return v.u
	case ValueInt:
		return v.i
	default:
		return nil
	}
}

// String formats the value as it would appear in a DBC file.
func (v AttributeValue) String() string {
	switch v.kind {
	case ValueFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case ValueString:
		return strconv.Quote(v.s)
	case ValueUint:
		return strconv.FormatUint(v.u, 10)
	case ValueInt:
		return strconv.FormatInt(v.i, 10)
	default:
		return ""
	}
}
