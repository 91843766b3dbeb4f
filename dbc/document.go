package dbc

import (
	"iter"
	"slices"

	"github.com/golangcan/godbc/internal/lexer"
)

// Symbol is a name listed in the NS_ block.
type Symbol string

// IsKnown reports whether the symbol is one defined by the DBC format.
func (s Symbol) IsKnown() bool {
	return lexer.IsKnownSymbol(string(s))
}

// Baudrate is a bit timing value in kbit/s.
type Baudrate uint64

// Node is one BU_ line: an ordered list of node names.
type Node struct {
	names []string
	pos   Position
}

func (n *Node) Names() []string    { return slices.Clone(n.names) }
func (n *Node) Position() Position { return n.pos }

// Document is a parsed DBC file. It is immutable once built and safe for
// concurrent reads.
type Document struct {
	version              string
	newSymbols           []Symbol
	bitTiming            []Baudrate
	hasBitTiming         bool
	nodes                []*Node
	valueTables          []*ValueTable
	messages             []*Message
	messageTransmitters  []*MessageTransmitter
	envVars              []*EnvironmentVariable
	envVarData           []*EnvironmentVariableData
	signalTypes          []*SignalType
	comments             []*Comment
	attributeDefinitions []*AttributeDefinition
	attributeDefaults    []*AttributeDefault
	attributeValues      []*AttributeValueForObject
	valueDescriptions    []*ValueDescription
	signalTypeRefs       []*SignalTypeRef
	signalGroups         *SignalGroups
	extValueTypes        *SignalExtendedValueTypeList

	messageByID   map[MessageID]*Message
	messageByName map[string]*Message
}

func newDocument() *Document {
	return &Document{
		messageByID:   make(map[MessageID]*Message),
		messageByName: make(map[string]*Message),
	}
}

func (d *Document) Version() string      { return d.version }
func (d *Document) NewSymbols() []Symbol { return slices.Clone(d.newSymbols) }
func (d *Document) Nodes() []*Node       { return slices.Clone(d.nodes) }
func (d *Document) ValueTables() []*ValueTable {
	return slices.Clone(d.valueTables)
}
func (d *Document) Messages() []*Message { return slices.Clone(d.messages) }
func (d *Document) MessageTransmitters() []*MessageTransmitter {
	return slices.Clone(d.messageTransmitters)
}
func (d *Document) EnvironmentVariables() []*EnvironmentVariable {
	return slices.Clone(d.envVars)
}
func (d *Document) EnvironmentVariableData() []*EnvironmentVariableData {
	return slices.Clone(d.envVarData)
}
func (d *Document) SignalTypes() []*SignalType { return slices.Clone(d.signalTypes) }
func (d *Document) Comments() []*Comment       { return slices.Clone(d.comments) }
func (d *Document) AttributeDefinitions() []*AttributeDefinition {
	return slices.Clone(d.attributeDefinitions)
}
func (d *Document) AttributeDefaults() []*AttributeDefault {
	return slices.Clone(d.attributeDefaults)
}
func (d *Document) AttributeValues() []*AttributeValueForObject {
	return slices.Clone(d.attributeValues)
}
func (d *Document) ValueDescriptions() []*ValueDescription {
	return slices.Clone(d.valueDescriptions)
}
func (d *Document) SignalTypeRefs() []*SignalTypeRef { return slices.Clone(d.signalTypeRefs) }

// BitTiming returns the baudrates of the BS_ section and whether the
// section was present. A bare "BS_:" yields an empty list and true.
func (d *Document) BitTiming() ([]Baudrate, bool) {
	return slices.Clone(d.bitTiming), d.hasBitTiming
}

// SignalGroups returns the SIG_GROUP_ entry, or nil.
func (d *Document) SignalGroups() *SignalGroups { return d.signalGroups }

// SignalExtendedValueTypeList returns the SIG_VALTYPE_ entry, or nil.
func (d *Document) SignalExtendedValueTypeList() *SignalExtendedValueTypeList {
	return d.extValueTypes
}

// Message returns the first message with the given id, or nil.
func (d *Document) Message(id MessageID) *Message {
	return d.messageByID[id]
}

// MessageByName returns the first message with the given name, or nil.
func (d *Document) MessageByName(name string) *Message {
	return d.messageByName[name]
}

// NodeNames returns the names of all BU_ lines in order.
func (d *Document) NodeNames() []string {
	var names []string
	for _, n := range d.nodes {
		names = append(names, n.names...)
	}
	return names
}

// Signals yields every signal with its message, in declaration order.
func (d *Document) Signals() iter.Seq2[*Message, *Signal] {
	return func(yield func(*Message, *Signal) bool) {
		for _, m := range d.messages {
			for _, s := range m.signals {
				if !yield(m, s) {
					return
				}
			}
		}
	}
}

// CommentFor returns the comment text attached to the given object, if
// any. For ObjectMessage only id is used; for ObjectSignal both id and
// name; for the other kinds only name.
func (d *Document) CommentFor(kind ObjectKind, id MessageID, name string) (string, bool) {
	for _, c := range d.comments {
		if c.kind != kind {
			continue
		}
		switch kind {
		case ObjectMessage:
			if c.messageID == id {
				return c.text, true
			}
		case ObjectSignal:
			if c.messageID == id && c.name == name {
				return c.text, true
			}
		case ObjectNetwork:
			return c.text, true
		default:
			if c.name == name {
				return c.text, true
			}
		}
	}
	return "", false
}

// SignalValueDescription returns the VAL_ entry of a signal, or nil.
func (d *Document) SignalValueDescription(id MessageID, signal string) *ValueDescription {
	for _, v := range d.valueDescriptions {
		if v.kind == ObjectSignal && v.messageID == id && v.name == signal {
			return v
		}
	}
	return nil
}
