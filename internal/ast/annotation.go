package ast

import (
	"github.com/golangcan/godbc/internal/types"
)

// Comment is a CM_ line. Target selects which of MessageID and Name are
// meaningful: Name is the node, signal or environment variable name.
type Comment struct {
	Target    ObjectKind
	MessageID uint64
	Name      Ident
	Text      QuotedString
	Span      types.Span
}

// AttributeDefinition is a BA_DEF_ line. Text holds everything between the
// object keyword and the terminating semicolon, unparsed.
type AttributeDefinition struct {
	Target ObjectKind
	Text   string
	Span   types.Span
}

// ValueKind tags the alternatives of an attribute value.
type ValueKind int

const (
	ValueFloat ValueKind = iota
	ValueString
	ValueUint
	ValueInt
)

// AttributeValue is a literal attribute value.
type AttributeValue struct {
	Kind  ValueKind
	Float float64
	Uint  uint64
	Int   int64
	Str   string
	Span  types.Span
}

// AttributeDefault is a BA_DEF_DEF_ line.
type AttributeDefault struct {
	Name  QuotedString
	Value AttributeValue
	Span  types.Span
}

// AttributeAssignment is a BA_ line. Target ObjectNone is the raw form.
// Value is nil only for a message target without a value.
type AttributeAssignment struct {
	Name      QuotedString
	Target    ObjectKind
	MessageID uint64
	Object    Ident
	Value     *AttributeValue
	Span      types.Span
}

// ValueDescription is a VAL_ line for a signal (Target ObjectSignal, with
// MessageID) or an environment variable (Target ObjectEnvVar).
type ValueDescription struct {
	Target    ObjectKind
	MessageID uint64
	Name      Ident
	Pairs     []ValuePair
	Span      types.Span
}
