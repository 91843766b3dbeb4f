// Package ast provides syntax tree types for parsed DBC files.
package ast

import (
	"github.com/golangcan/godbc/internal/types"
)

// Ident is an identifier with source location.
type Ident struct {
	Name string
	Span types.Span
}

// NewIdent creates a new identifier.
func NewIdent(name string, span types.Span) Ident {
	return Ident{Name: name, Span: span}
}

// QuotedString is a quoted string literal with source location.
// Value holds the bytes between the quotes.
type QuotedString struct {
	Value string
	Span  types.Span
}

// NewQuotedString creates a new quoted string.
func NewQuotedString(value string, span types.Span) QuotedString {
	return QuotedString{Value: value, Span: span}
}

// ValuePair maps a raw value to a label in a value table or value
// description.
type ValuePair struct {
	Value float64
	Label QuotedString
}

// ObjectKind identifies the kind of object an annotation refers to.
// ObjectNone marks the plain (network-wide) forms.
type ObjectKind int

const (
	ObjectNone ObjectKind = iota
	ObjectNode
	ObjectMessage
	ObjectSignal
	ObjectEnvVar
)

// String returns the DBC keyword of the object kind.
func (k ObjectKind) String() string {
	switch k {
	case ObjectNode:
		return "BU_"
	case ObjectMessage:
		return "BO_"
	case ObjectSignal:
		return "SG_"
	case ObjectEnvVar:
		return "EV_"
	default:
		return "plain"
	}
}
