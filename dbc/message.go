package dbc

import (
	"fmt"
	"slices"
)

// VectorXXX is the placeholder node name for "no node".
const VectorXXX = "Vector__XXX"

// MessageID is the identifier of a message as written in the file. For
// extended (29-bit) frames bit 31 is set.
type MessageID uint64

const (
	extendedFlag = 1 << 31
	canIDMask    = 1<<29 - 1
)

// IsExtended reports whether the id carries the extended frame flag.
func (id MessageID) IsExtended() bool {
	return id&extendedFlag != 0
}

// CANID returns the identifier without the extended frame flag.
func (id MessageID) CANID() uint32 {
	return uint32(id & canIDMask)
}

func (id MessageID) String() string {
	if id.IsExtended() {
		return fmt.Sprintf("0x%08X (extended)", id.CANID())
	}
	return fmt.Sprintf("0x%03X", uint64(id))
}

// Position is a 1-based line and column in the source text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position was recorded.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Transmitter is the sending node of a message, or no node at all
// (written Vector__XXX).
type Transmitter struct {
	node string
}

// NodeTransmitter returns a transmitter for the named node.
func NodeTransmitter(name string) Transmitter {
	return Transmitter{node: name}
}

// IsVectorXXX reports whether the message has no sender.
func (t Transmitter) IsVectorXXX() bool { return t.node == "" }

// Node returns the transmitting node, or "" for Vector__XXX.
func (t Transmitter) Node() string { return t.node }

func (t Transmitter) String() string {
	if t.IsVectorXXX() {
		return VectorXXX
	}
	return t.node
}

// Multiplex is a signal's multiplex indicator. Selector is meaningful only
// for MultiplexedSignal.
type Multiplex struct {
	Kind     MultiplexKind
	Selector uint64
}

func (m Multiplex) String() string {
	switch m.Kind {
	case MultiplexSwitch:
		return "M"
	case MultiplexedSignal:
		return fmt.Sprintf("m%d", m.Selector)
	default:
		return ""
	}
}

// Message is a BO_ frame definition.
type Message struct {
	id          MessageID
	name        string
	size        uint64
	transmitter Transmitter
	signals     []*Signal
	pos         Position
}

func (m *Message) ID() MessageID            { return m.id }
func (m *Message) Name() string             { return m.name }
func (m *Message) Size() uint64             { return m.size }
func (m *Message) Transmitter() Transmitter { return m.transmitter }
func (m *Message) Position() Position       { return m.pos }
func (m *Message) Signals() []*Signal       { return slices.Clone(m.signals) }
func (m *Message) SignalCount() int         { return len(m.signals) }
func (m *Message) String() string           { return fmt.Sprintf("%s (%s)", m.name, m.id) }

// Signal returns the first signal with the given name, or nil.
func (m *Message) Signal(name string) *Signal {
	for _, s := range m.signals {
		if s.name == name {
			return s
		}
	}
	return nil
}

// Multiplexor returns the multiplexor switch signal, or nil if the message
// is not multiplexed.
func (m *Message) Multiplexor() *Signal {
	for _, s := range m.signals {
		if s.mux.Kind == MultiplexSwitch {
			return s
		}
	}
	return nil
}

// Signal is an SG_ definition inside a message.
type Signal struct {
	name      string
	mux       Multiplex
	startBit  uint64
	size      uint64
	byteOrder ByteOrder
	valueType ValueType
	factor    float64
	offset    float64
	min       float64
	max       float64
	unit      string
	receivers []string
	pos       Position
}

func (s *Signal) Name() string         { return s.name }
func (s *Signal) Multiplex() Multiplex { return s.mux }
func (s *Signal) StartBit() uint64     { return s.startBit }
func (s *Signal) Size() uint64         { return s.size }
func (s *Signal) ByteOrder() ByteOrder { return s.byteOrder }
func (s *Signal) ValueType() ValueType { return s.valueType }
func (s *Signal) Factor() float64      { return s.factor }
func (s *Signal) Offset() float64      { return s.offset }
func (s *Signal) Min() float64         { return s.min }
func (s *Signal) Max() float64         { return s.max }
func (s *Signal) Unit() string         { return s.unit }
func (s *Signal) Receivers() []string  { return slices.Clone(s.receivers) }
func (s *Signal) Position() Position   { return s.pos }

// MessageTransmitter is a BO_TX_BU_ line naming an additional sender.
type MessageTransmitter struct {
	messageID   MessageID
	transmitter Transmitter
	pos         Position
}

func (t *MessageTransmitter) MessageID() MessageID     { return t.messageID }
func (t *MessageTransmitter) Transmitter() Transmitter { return t.transmitter }
func (t *MessageTransmitter) Position() Position       { return t.pos }
