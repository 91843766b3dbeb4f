package dbc

import (
	"slices"
)

// ValuePair maps a raw value to a label.
type ValuePair struct {
	Value float64
	Label string
}

// ValueTable is a named VAL_TABLE_ shared by signals.
type ValueTable struct {
	name  string
	pairs []ValuePair
	pos   Position
}

func (t *ValueTable) Name() string       { return t.name }
func (t *ValueTable) Pairs() []ValuePair { return slices.Clone(t.pairs) }
func (t *ValueTable) Position() Position { return t.pos }

// Label returns the label for a raw value.
func (t *ValueTable) Label(value float64) (string, bool) {
	return lookupLabel(t.pairs, value)
}

func lookupLabel(pairs []ValuePair, value float64) (string, bool) {
	for _, p := range pairs {
		if p.Value == value {
			return p.Label, true
		}
	}
	return "", false
}

// Comment is a CM_ annotation. Kind selects which of MessageID and Name
// are meaningful: Name is the node, signal or environment variable name.
type Comment struct {
	kind      ObjectKind
	messageID MessageID
	name      string
	text      string
	pos       Position
}

func (c *Comment) Kind() ObjectKind     { return c.kind }
func (c *Comment) MessageID() MessageID { return c.messageID }
func (c *Comment) Name() string         { return c.name }
func (c *Comment) Text() string         { return c.text }
func (c *Comment) Position() Position   { return c.pos }

// AttributeDefinition is a BA_DEF_ line. The definition body is kept as
// written; Domain decodes it.
type AttributeDefinition struct {
	kind ObjectKind
	text string
	pos  Position
}

func (d *AttributeDefinition) Kind() ObjectKind   { return d.kind }
func (d *AttributeDefinition) Text() string       { return d.text }
func (d *AttributeDefinition) Position() Position { return d.pos }

// Domain decodes the attribute name and value type from the definition
// text.
func (d *AttributeDefinition) Domain() (AttributeDomain, error) {
	return ParseAttributeDomain(d.text)
}

// AttributeDefault is a BA_DEF_DEF_ line.
type AttributeDefault struct {
	name  string
	value AttributeValue
	pos   Position
}

func (d *AttributeDefault) Name() string          { return d.name }
func (d *AttributeDefault) Value() AttributeValue { return d.value }
func (d *AttributeDefault) Position() Position    { return d.pos }

// AttributeValueForObject is a BA_ line assigning an attribute value to an
// object. Target ObjectNetwork is the raw form. The value has kind
// ValueNone only for a message target written without a value.
type AttributeValueForObject struct {
	name      string
	target    ObjectKind
	messageID MessageID
	object    string
	value     AttributeValue
	pos       Position
}

func (a *AttributeValueForObject) Name() string          { return a.name }
func (a *AttributeValueForObject) Target() ObjectKind    { return a.target }
func (a *AttributeValueForObject) MessageID() MessageID  { return a.messageID }
func (a *AttributeValueForObject) Object() string        { return a.object }
func (a *AttributeValueForObject) Value() AttributeValue { return a.value }
func (a *AttributeValueForObject) Position() Position    { return a.pos }

// ValueDescription is a VAL_ line for a signal (Kind ObjectSignal) or an
// environment variable (Kind ObjectEnvVar).
type ValueDescription struct {
	kind      ObjectKind
	messageID MessageID
	name      string
	pairs     []ValuePair
	pos       Position
}

func (v *ValueDescription) Kind() ObjectKind     { return v.kind }
func (v *ValueDescription) MessageID() MessageID { return v.messageID }
func (v *ValueDescription) Name() string         { return v.name }
func (v *ValueDescription) Pairs() []ValuePair   { return slices.Clone(v.pairs) }
func (v *ValueDescription) Position() Position   { return v.pos }

// Label returns the label for a raw value.
func (v *ValueDescription) Label(value float64) (string, bool) {
	return lookupLabel(v.pairs, value)
}

// SignalType is an SGTYPE_ definition.
type SignalType struct {
	name         string
	size         uint64
	byteOrder    ByteOrder
	valueType    ValueType
	factor       float64
	offset       float64
	min          float64
	max          float64
	unit         string
	defaultValue float64
	valueTable   string
	pos          Position
}

func (t *SignalType) Name() string          { return t.name }
func (t *SignalType) Size() uint64          { return t.size }
func (t *SignalType) ByteOrder() ByteOrder  { return t.byteOrder }
func (t *SignalType) ValueType() ValueType  { return t.valueType }
func (t *SignalType) Factor() float64       { return t.factor }
func (t *SignalType) Offset() float64       { return t.offset }
func (t *SignalType) Min() float64          { return t.min }
func (t *SignalType) Max() float64          { return t.max }
func (t *SignalType) Unit() string          { return t.unit }
func (t *SignalType) DefaultValue() float64 { return t.defaultValue }
func (t *SignalType) ValueTable() string    { return t.valueTable }
func (t *SignalType) Position() Position    { return t.pos }

// SignalTypeRef binds a signal to a signal type.
type SignalTypeRef struct {
	messageID  MessageID
	signalName string
	typeName   string
	pos        Position
}

func (r *SignalTypeRef) MessageID() MessageID { return r.messageID }
func (r *SignalTypeRef) SignalName() string   { return r.signalName }
func (r *SignalTypeRef) TypeName() string     { return r.typeName }
func (r *SignalTypeRef) Position() Position   { return r.pos }

// SignalGroups is a SIG_GROUP_ line grouping signals of one message.
type SignalGroups struct {
	messageID   MessageID
	name        string
	repetitions uint64
	signals     []string
	pos         Position
}

func (g *SignalGroups) MessageID() MessageID { return g.messageID }
func (g *SignalGroups) Name() string         { return g.name }
func (g *SignalGroups) Repetitions() uint64  { return g.repetitions }
func (g *SignalGroups) Signals() []string    { return slices.Clone(g.signals) }
func (g *SignalGroups) Position() Position   { return g.pos }

// SignalExtendedValueTypeList is a SIG_VALTYPE_ line.
type SignalExtendedValueTypeList struct {
	messageID  MessageID
	signalName string
	typ        ExtendedValueType
	pos        Position
}

func (l *SignalExtendedValueTypeList) MessageID() MessageID    { return l.messageID }
func (l *SignalExtendedValueTypeList) SignalName() string      { return l.signalName }
func (l *SignalExtendedValueTypeList) Type() ExtendedValueType { return l.typ }
func (l *SignalExtendedValueTypeList) Position() Position      { return l.pos }
