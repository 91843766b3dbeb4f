package dbc

import (
	"log/slog"

	"github.com/golangcan/godbc/internal/ast"
	"github.com/golangcan/godbc/internal/types"
)

// lowerer carries the line table used to turn byte offsets into positions.
type lowerer struct {
	lines *types.LineTable
	types.Logger
}

// Lower builds a Document from a syntax tree. lines maps span offsets to
// positions and may be nil, in which case positions are left unset.
//
// Lower is used by the godbc package; it is exported so tools built on the
// internal parser can construct documents directly.
func Lower(f *ast.File, lines *types.LineTable, logger *slog.Logger) *Document {
	l := &lowerer{lines: lines, Logger: types.Logger{L: logger}}
	doc := newDocument()
	if f == nil {
		return doc
	}

	doc.version = f.Version.Value
	for _, s := range f.NewSymbols {
		doc.newSymbols = append(doc.newSymbols, Symbol(s.Name))
	}
	if f.BitTiming != nil {
		doc.hasBitTiming = true
		for _, b := range f.BitTiming.Baudrates {
			doc.bitTiming = append(doc.bitTiming, Baudrate(b))
		}
	}
	for _, n := range f.Nodes {
		doc.nodes = append(doc.nodes, &Node{names: identNames(n.Names), pos: l.pos(n.Span)})
	}
	for _, t := range f.ValueTables {
		doc.valueTables = append(doc.valueTables, &ValueTable{
			name:  t.Name.Name,
			pairs: lowerPairs(t.Pairs),
			pos:   l.pos(t.Span),
		})
	}
	for i := range f.Messages {
		m := l.message(&f.Messages[i])
		doc.messages = append(doc.messages, m)
		if _, ok := doc.messageByID[m.id]; !ok {
			doc.messageByID[m.id] = m
		}
		if _, ok := doc.messageByName[m.name]; !ok {
			doc.messageByName[m.name] = m
		}
	}
	for _, t := range f.MessageTransmitters {
		doc.messageTransmitters = append(doc.messageTransmitters, &MessageTransmitter{
			messageID:   MessageID(t.MessageID),
			transmitter: lowerTransmitter(t.Transmitter),
			pos:         l.pos(t.Span),
		})
	}
	for i := range f.EnvVars {
		doc.envVars = append(doc.envVars, l.envVar(&f.EnvVars[i]))
	}
	for _, d := range f.EnvVarData {
		doc.envVarData = append(doc.envVarData, &EnvironmentVariableData{
			name: d.Name.Name,
			size: d.Size,
			pos:  l.pos(d.Span),
		})
	}
	for i := range f.SignalTypes {
		doc.signalTypes = append(doc.signalTypes, l.signalType(&f.SignalTypes[i]))
	}
	for _, c := range f.Comments {
		doc.comments = append(doc.comments, &Comment{
			kind:      lowerObjectKind(c.Target),
			messageID: MessageID(c.MessageID),
			name:      c.Name.Name,
			text:      c.Text.Value,
			pos:       l.pos(c.Span),
		})
	}
	for _, d := range f.AttributeDefinitions {
		doc.attributeDefinitions = append(doc.attributeDefinitions, &AttributeDefinition{
			kind: lowerObjectKind(d.Target),
			text: d.Text,
			pos:  l.pos(d.Span),
		})
	}
	for _, d := range f.AttributeDefaults {
		doc.attributeDefaults = append(doc.attributeDefaults, &AttributeDefault{
			name:  d.Name.Value,
			value: lowerValue(&d.Value),
			pos:   l.pos(d.Span),
		})
	}
	for _, a := range f.AttributeValues {
		doc.attributeValues = append(doc.attributeValues, &AttributeValueForObject{
			name:      a.Name.Value,
			target:    lowerObjectKind(a.Target),
			messageID: MessageID(a.MessageID),
			object:    a.Object.Name,
			value:     lowerValue(a.Value),
			pos:       l.pos(a.Span),
		})
	}
	for _, v := range f.ValueDescriptions {
		doc.valueDescriptions = append(doc.valueDescriptions, &ValueDescription{
			kind:      lowerObjectKind(v.Target),
			messageID: MessageID(v.MessageID),
			name:      v.Name.Name,
			pairs:     lowerPairs(v.Pairs),
			pos:       l.pos(v.Span),
		})
	}
	for _, r := range f.SignalTypeRefs {
		doc.signalTypeRefs = append(doc.signalTypeRefs, &SignalTypeRef{
			messageID:  MessageID(r.MessageID),
			signalName: r.SignalName.Name,
			typeName:   r.TypeName.Name,
			pos:        l.pos(r.Span),
		})
	}
	if g := f.SignalGroups; g != nil {
		doc.signalGroups = &SignalGroups{
			messageID:   MessageID(g.MessageID),
			name:        g.Name.Name,
			repetitions: g.Repetitions,
			signals:     identNames(g.Signals),
			pos:         l.pos(g.Span),
		}
	}
	if e := f.ExtValueTypes; e != nil {
		doc.extValueTypes = &SignalExtendedValueTypeList{
			messageID:  MessageID(e.MessageID),
			signalName: e.SignalName.Name,
			typ:        lowerExtValueType(e.Type),
			pos:        l.pos(e.Span),
		}
	}

	l.Log(slog.LevelDebug, "lowering complete",
		slog.Int("messages", len(doc.messages)),
		slog.Int("comments", len(doc.comments)),
		slog.Int("attributes", len(doc.attributeValues)))
	return doc
}

func (l *lowerer) pos(s types.Span) Position {
	line, col := l.lines.Position(s.Start)
	return Position{Line: line, Column: col}
}

func (l *lowerer) message(m *ast.Message) *Message {
	out := &Message{
		id:          MessageID(m.ID),
		name:        m.Name.Name,
		size:        m.Size,
		transmitter: lowerTransmitter(m.Transmitter),
		pos:         l.pos(m.Span),
	}
	if len(m.Signals) > 0 {
		out.signals = make([]*Signal, 0, len(m.Signals))
	}
	for i := range m.Signals {
		s := &m.Signals[i]
		out.signals = append(out.signals, &Signal{
			name:      s.Name.Name,
			mux:       lowerMultiplex(s.Multiplex),
			startBit:  s.StartBit,
			size:      s.Size,
			byteOrder: lowerByteOrder(s.ByteOrder),
			valueType: lowerValueType(s.ValueType),
			factor:    s.Factor,
			offset:    s.Offset,
			min:       s.Min,
			max:       s.Max,
			unit:      s.Unit.Value,
			receivers: identNames(s.Receivers),
			pos:       l.pos(s.Span),
		})
	}
	if l.TraceEnabled() {
		l.Trace("lowered message",
			slog.String("name", out.name),
			slog.Int("signals", len(out.signals)))
	}
	return out
}

func (l *lowerer) envVar(e *ast.EnvVar) *EnvironmentVariable {
	out := &EnvironmentVariable{
		name:       e.Name.Name,
		typ:        lowerEnvType(e.Type),
		min:        e.Min,
		max:        e.Max,
		unit:       e.Unit.Value,
		initial:    e.Initial,
		id:         e.ID,
		accessType: AccessType(e.AccessType),
		pos:        l.pos(e.Span),
	}
	for _, n := range e.AccessNodes {
		if n.VectorXXX {
			out.nodes = append(out.nodes, AccessNode{})
		} else {
			out.nodes = append(out.nodes, AccessNode{node: n.Node.Name})
		}
	}
	return out
}

func (l *lowerer) signalType(t *ast.SignalType) *SignalType {
	return &SignalType{
		name:         t.Name.Name,
		size:         t.Size,
		byteOrder:    lowerByteOrder(t.ByteOrder),
		valueType:    lowerValueType(t.ValueType),
		factor:       t.Factor,
		offset:       t.Offset,
		min:          t.Min,
		max:          t.Max,
		unit:         t.Unit.Value,
		defaultValue: t.Default,
		valueTable:   t.ValueTable.Name,
		pos:          l.pos(t.Span),
	}
}

func identNames(ids []ast.Ident) []string {
	if len(ids) == 0 {
		return nil
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.Name
	}
	return names
}

func lowerPairs(pairs []ast.ValuePair) []ValuePair {
	if len(pairs) == 0 {
		return nil
	}
	out := make([]ValuePair, len(pairs))
	for i, p := range pairs {
		out[i] = ValuePair{Value: p.Value, Label: p.Label.Value}
	}
	return out
}

func lowerTransmitter(t ast.Transmitter) Transmitter {
	if t.VectorXXX {
		return Transmitter{}
	}
	return Transmitter{node: t.Node.Name}
}

func lowerValue(v *ast.AttributeValue) AttributeValue {
	if v == nil {
		return AttributeValue{}
	}
	switch v.Kind {
	case ast.ValueString:
		return StringValue(v.Str)
	case ast.ValueUint:
		return UintValue(v.Uint)
	case ast.ValueInt:
		return IntValue(v.Int)
	default:
		return FloatValue(v.Float)
	}
}

func lowerObjectKind(k ast.ObjectKind) ObjectKind {
	switch k {
	case ast.ObjectNode:
		return ObjectNode
	case ast.ObjectMessage:
		return ObjectMessage
	case ast.ObjectSignal:
		return ObjectSignal
	case ast.ObjectEnvVar:
		return ObjectEnvVar
	default:
		return ObjectNetwork
	}
}

func lowerMultiplex(m ast.Multiplex) Multiplex {
	switch m.Kind {
	case ast.MultiplexMultiplexor:
		return Multiplex{Kind: MultiplexSwitch}
	case ast.MultiplexMultiplexed:
		return Multiplex{Kind: MultiplexedSignal, Selector: m.Selector}
	default:
		return Multiplex{Kind: MultiplexPlain}
	}
}

func lowerByteOrder(b ast.ByteOrder) ByteOrder {
	if b == ast.BigEndian {
		return BigEndian
	}
	return LittleEndian
}

func lowerValueType(v ast.ValueType) ValueType {
	if v == ast.Unsigned {
		return Unsigned
	}
	return Signed
}

func lowerEnvType(t ast.EnvType) EnvType {
	switch t {
	case ast.EnvInteger:
		return EnvInteger
	case ast.EnvData:
		return EnvData
	default:
		return EnvFloat
	}
}

func lowerExtValueType(t ast.ExtValueType) ExtendedValueType {
	switch t {
	case ast.ExtFloat32:
		return ExtFloat32
	case ast.ExtFloat64:
		return ExtFloat64
	default:
		return ExtInteger
	}
}
