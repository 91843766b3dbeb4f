package ast

import (
	"github.com/golangcan/godbc/internal/types"
)

// ByteOrder is the bit layout of a signal.
type ByteOrder int

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

// ValueType is the signedness of a signal's raw value.
type ValueType int

const (
	Signed ValueType = iota
	Unsigned
)

// MultiplexKind distinguishes plain, multiplexor and multiplexed signals.
type MultiplexKind int

const (
	MultiplexPlain MultiplexKind = iota
	MultiplexMultiplexor
	MultiplexMultiplexed
)

// Multiplex is a signal's multiplex indicator. Selector is set only for
// MultiplexMultiplexed.
type Multiplex struct {
	Kind     MultiplexKind
	Selector uint64
}

// EnvType is the value type of an environment variable.
type EnvType int

const (
	EnvFloat EnvType = iota
	EnvInteger
	EnvData
)

// ExtValueType is an extended signal value type.
type ExtValueType int

const (
	ExtInteger ExtValueType = iota
	ExtFloat32
	ExtFloat64
)

// Transmitter names the sending node of a message. VectorXXX marks a
// message without a sender, in which case Node is empty.
type Transmitter struct {
	VectorXXX bool
	Node      Ident
}

// AccessNode names a node with access to an environment variable.
// VectorXXX marks the VECTOR_XXX placeholder.
type AccessNode struct {
	VectorXXX bool
	Node      Ident
}

// BitTiming is the BS_ section. Baudrates is empty for a bare "BS_:".
type BitTiming struct {
	Baudrates []uint64
	Span      types.Span
}

// NodeList is one BU_ line.
type NodeList struct {
	Names []Ident
	Span  types.Span
}

// ValueTable is a VAL_TABLE_ definition.
type ValueTable struct {
	Name  Ident
	Pairs []ValuePair
	Span  types.Span
}

// Signal is an SG_ line inside a message.
type Signal struct {
	Name      Ident
	Multiplex Multiplex
	StartBit  uint64
	Size      uint64
	ByteOrder ByteOrder
	ValueType ValueType
	Factor    float64
	Offset    float64
	Min       float64
	Max       float64
	Unit      QuotedString
	Receivers []Ident
	Span      types.Span
}

// Message is a BO_ definition with its signals.
type Message struct {
	ID          uint64
	Name        Ident
	Size        uint64
	Transmitter Transmitter
	Signals     []Signal
	Span        types.Span
}

// MessageTransmitter is a BO_TX_BU_ line.
type MessageTransmitter struct {
	MessageID   uint64
	Transmitter Transmitter
	Span        types.Span
}

// EnvVar is an EV_ definition.
type EnvVar struct {
	Name        Ident
	Type        EnvType
	Min         int64
	Max         int64
	Unit        QuotedString
	Initial     float64
	ID          int64
	AccessType  int
	AccessNodes []AccessNode
	Span        types.Span
}

// EnvVarData is an ENVVAR_DATA_ line.
type EnvVarData struct {
	Name Ident
	Size uint64
	Span types.Span
}

// SignalType is an SGTYPE_ definition.
type SignalType struct {
	Name       Ident
	Size       uint64
	ByteOrder  ByteOrder
	ValueType  ValueType
	Factor     float64
	Offset     float64
	Min        float64
	Max        float64
	Unit       QuotedString
	Default    float64
	ValueTable Ident
	Span       types.Span
}

// SignalTypeRef binds a signal to a signal type.
type SignalTypeRef struct {
	MessageID  uint64
	SignalName Ident
	TypeName   Ident
	Span       types.Span
}

// SignalGroups is a SIG_GROUP_ line.
type SignalGroups struct {
	MessageID   uint64
	Name        Ident
	Repetitions uint64
	Signals     []Ident
	Span        types.Span
}

// SignalExtValueType is a SIG_VALTYPE_ line.
type SignalExtValueType struct {
	MessageID  uint64
	SignalName Ident
	Type       ExtValueType
	Span       types.Span
}
