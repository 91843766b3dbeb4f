package main

import (
	"encoding/json"

	"github.com/golangcan/godbc/dbc"
)

// DumpOutput is the top-level output of the dump command. The same shape is
// written as JSON or YAML.
type DumpOutput struct {
	Version                  string                   `json:"version" yaml:"version"`
	NewSymbols               []string                 `json:"newSymbols,omitempty" yaml:"newSymbols,omitempty"`
	BitTiming                []uint64                 `json:"bitTiming,omitempty" yaml:"bitTiming,omitempty"`
	Nodes                    []string                 `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	ValueTables              []ValueTableJSON         `json:"valueTables,omitempty" yaml:"valueTables,omitempty"`
	Messages                 []MessageJSON            `json:"messages,omitempty" yaml:"messages,omitempty"`
	MessageTransmitters      []MessageTransmitterJSON `json:"messageTransmitters,omitempty" yaml:"messageTransmitters,omitempty"`
	EnvironmentVariables     []EnvVarJSON             `json:"environmentVariables,omitempty" yaml:"environmentVariables,omitempty"`
	EnvironmentVariableData  []EnvVarDataJSON         `json:"environmentVariableData,omitempty" yaml:"environmentVariableData,omitempty"`
	SignalTypes              []SignalTypeJSON         `json:"signalTypes,omitempty" yaml:"signalTypes,omitempty"`
	Comments                 []CommentJSON            `json:"comments,omitempty" yaml:"comments,omitempty"`
	AttributeDefinitions     []AttributeDefJSON       `json:"attributeDefinitions,omitempty" yaml:"attributeDefinitions,omitempty"`
	AttributeDefaults        []AttributeJSON          `json:"attributeDefaults,omitempty" yaml:"attributeDefaults,omitempty"`
	AttributeValues          []AttributeJSON          `json:"attributeValues,omitempty" yaml:"attributeValues,omitempty"`
	ValueDescriptions        []ValueDescriptionJSON   `json:"valueDescriptions,omitempty" yaml:"valueDescriptions,omitempty"`
	SignalTypeRefs           []SignalTypeRefJSON      `json:"signalTypeRefs,omitempty" yaml:"signalTypeRefs,omitempty"`
	SignalGroups             *SignalGroupJSON         `json:"signalGroups,omitempty" yaml:"signalGroups,omitempty"`
	SignalExtendedValueTypes *ExtValueTypeJSON        `json:"signalExtendedValueTypes,omitempty" yaml:"signalExtendedValueTypes,omitempty"`
}

// PairJSON holds one value/label entry.
type PairJSON struct {
	Value float64 `json:"value" yaml:"value"`
	Label string  `json:"label" yaml:"label"`
}

// ValueTableJSON holds a VAL_TABLE_ entry.
type ValueTableJSON struct {
	Name  string     `json:"name" yaml:"name"`
	Pairs []PairJSON `json:"pairs,omitempty" yaml:"pairs,omitempty"`
}

// MessageJSON holds a message with its signals.
type MessageJSON struct {
	ID          uint64       `json:"id" yaml:"id"`
	Extended    bool         `json:"extended,omitempty" yaml:"extended,omitempty"`
	Name        string       `json:"name" yaml:"name"`
	Size        uint64       `json:"size" yaml:"size"`
	Transmitter string       `json:"transmitter" yaml:"transmitter"`
	Line        int          `json:"line,omitempty" yaml:"line,omitempty"`
	Signals     []SignalJSON `json:"signals,omitempty" yaml:"signals,omitempty"`
}

// SignalJSON holds one signal of a message.
type SignalJSON struct {
	Name      string   `json:"name" yaml:"name"`
	Multiplex string   `json:"multiplex,omitempty" yaml:"multiplex,omitempty"`
	StartBit  uint64   `json:"startBit" yaml:"startBit"`
	Size      uint64   `json:"size" yaml:"size"`
	ByteOrder string   `json:"byteOrder" yaml:"byteOrder"`
	ValueType string   `json:"valueType" yaml:"valueType"`
	Factor    float64  `json:"factor" yaml:"factor"`
	Offset    float64  `json:"offset" yaml:"offset"`
	Min       float64  `json:"min" yaml:"min"`
	Max       float64  `json:"max" yaml:"max"`
	Unit      string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	Receivers []string `json:"receivers,omitempty" yaml:"receivers,omitempty"`
}

// MessageTransmitterJSON holds a BO_TX_BU_ entry.
type MessageTransmitterJSON struct {
	MessageID   uint64 `json:"messageId" yaml:"messageId"`
	Transmitter string `json:"transmitter" yaml:"transmitter"`
}

// EnvVarJSON holds an EV_ entry.
type EnvVarJSON struct {
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type" yaml:"type"`
	Min         int64    `json:"min" yaml:"min"`
	Max         int64    `json:"max" yaml:"max"`
	Unit        string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	Initial     float64  `json:"initial" yaml:"initial"`
	ID          int64    `json:"id" yaml:"id"`
	AccessType  string   `json:"accessType" yaml:"accessType"`
	AccessNodes []string `json:"accessNodes,omitempty" yaml:"accessNodes,omitempty"`
}

// EnvVarDataJSON holds an ENVVAR_DATA_ entry.
type EnvVarDataJSON struct {
	Name string `json:"name" yaml:"name"`
	Size uint64 `json:"size" yaml:"size"`
}

// SignalTypeJSON holds an SGTYPE_ definition.
type SignalTypeJSON struct {
	Name         string  `json:"name" yaml:"name"`
	Size         uint64  `json:"size" yaml:"size"`
	ByteOrder    string  `json:"byteOrder" yaml:"byteOrder"`
	ValueType    string  `json:"valueType" yaml:"valueType"`
	Factor       float64 `json:"factor" yaml:"factor"`
	Offset       float64 `json:"offset" yaml:"offset"`
	Min          float64 `json:"min" yaml:"min"`
	Max          float64 `json:"max" yaml:"max"`
	Unit         string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	DefaultValue float64 `json:"defaultValue" yaml:"defaultValue"`
	ValueTable   string  `json:"valueTable,omitempty" yaml:"valueTable,omitempty"`
}

// CommentJSON holds a CM_ entry.
type CommentJSON struct {
	Kind      string `json:"kind" yaml:"kind"`
	MessageID uint64 `json:"messageId,omitempty" yaml:"messageId,omitempty"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Text      string `json:"text" yaml:"text"`
}

// AttributeDefJSON holds a BA_DEF_ entry with its raw text.
type AttributeDefJSON struct {
	Kind string `json:"kind" yaml:"kind"`
	Text string `json:"text" yaml:"text"`
}

// AttributeJSON holds a BA_DEF_DEF_ or BA_ entry. Target, MessageID and
// Object are empty for defaults.
type AttributeJSON struct {
	Name      string `json:"name" yaml:"name"`
	Target    string `json:"target,omitempty" yaml:"target,omitempty"`
	MessageID uint64 `json:"messageId,omitempty" yaml:"messageId,omitempty"`
	Object    string `json:"object,omitempty" yaml:"object,omitempty"`
	Value     any    `json:"value" yaml:"value"`
}

// ValueDescriptionJSON holds a VAL_ entry.
type ValueDescriptionJSON struct {
	Kind      string     `json:"kind" yaml:"kind"`
	MessageID uint64     `json:"messageId,omitempty" yaml:"messageId,omitempty"`
	Name      string     `json:"name" yaml:"name"`
	Pairs     []PairJSON `json:"pairs,omitempty" yaml:"pairs,omitempty"`
}

// SignalTypeRefJSON holds an SGTYPE_ reference.
type SignalTypeRefJSON struct {
	MessageID uint64 `json:"messageId" yaml:"messageId"`
	Signal    string `json:"signal" yaml:"signal"`
	Type      string `json:"type" yaml:"type"`
}

// SignalGroupJSON holds the SIG_GROUP_ entry.
type SignalGroupJSON struct {
	MessageID   uint64   `json:"messageId" yaml:"messageId"`
	Name        string   `json:"name" yaml:"name"`
	Repetitions uint64   `json:"repetitions" yaml:"repetitions"`
	Signals     []string `json:"signals,omitempty" yaml:"signals,omitempty"`
}

// ExtValueTypeJSON holds the SIG_VALTYPE_ entry.
type ExtValueTypeJSON struct {
	MessageID uint64 `json:"messageId" yaml:"messageId"`
	Signal    string `json:"signal" yaml:"signal"`
	Type      string `json:"type" yaml:"type"`
}

func buildDumpOutput(doc *dbc.Document) *DumpOutput {
	out := &DumpOutput{
		Version: doc.Version(),
		Nodes:   doc.NodeNames(),
	}
	for _, s := range doc.NewSymbols() {
		out.NewSymbols = append(out.NewSymbols, string(s))
	}
	if rates, ok := doc.BitTiming(); ok {
		out.BitTiming = []uint64{}
		for _, r := range rates {
			out.BitTiming = append(out.BitTiming, uint64(r))
		}
	}
	for _, t := range doc.ValueTables() {
		out.ValueTables = append(out.ValueTables, ValueTableJSON{Name: t.Name(), Pairs: buildPairs(t.Pairs())})
	}
	for _, m := range doc.Messages() {
		out.Messages = append(out.Messages, buildMessageJSON(m))
	}
	for _, t := range doc.MessageTransmitters() {
		out.MessageTransmitters = append(out.MessageTransmitters, MessageTransmitterJSON{
			MessageID:   uint64(t.MessageID()),
			Transmitter: t.Transmitter().String(),
		})
	}
	for _, e := range doc.EnvironmentVariables() {
		out.EnvironmentVariables = append(out.EnvironmentVariables, buildEnvVarJSON(e))
	}
	for _, d := range doc.EnvironmentVariableData() {
		out.EnvironmentVariableData = append(out.EnvironmentVariableData, EnvVarDataJSON{Name: d.Name(), Size: d.DataSize()})
	}
	for _, t := range doc.SignalTypes() {
		out.SignalTypes = append(out.SignalTypes, SignalTypeJSON{
			Name:         t.Name(),
			Size:         t.Size(),
			ByteOrder:    t.ByteOrder().String(),
			ValueType:    t.ValueType().String(),
			Factor:       t.Factor(),
			Offset:       t.Offset(),
			Min:          t.Min(),
			Max:          t.Max(),
			Unit:         t.Unit(),
			DefaultValue: t.DefaultValue(),
			ValueTable:   t.ValueTable(),
		})
	}
	for _, c := range doc.Comments() {
		out.Comments = append(out.Comments, CommentJSON{
			Kind:      c.Kind().String(),
			MessageID: uint64(c.MessageID()),
			Name:      c.Name(),
			Text:      c.Text(),
		})
	}
	for _, d := range doc.AttributeDefinitions() {
		out.AttributeDefinitions = append(out.AttributeDefinitions, AttributeDefJSON{Kind: d.Kind().String(), Text: d.Text()})
	}
	for _, d := range doc.AttributeDefaults() {
		out.AttributeDefaults = append(out.AttributeDefaults, AttributeJSON{Name: d.Name(), Value: d.Value().Interface()})
	}
	for _, a := range doc.AttributeValues() {
		out.AttributeValues = append(out.AttributeValues, AttributeJSON{
			Name:      a.Name(),
			Target:    a.Target().String(),
			MessageID: uint64(a.MessageID()),
			Object:    a.Object(),
			Value:     a.Value().Interface(),
		})
	}
	for _, v := range doc.ValueDescriptions() {
		out.ValueDescriptions = append(out.ValueDescriptions, ValueDescriptionJSON{
			Kind:      v.Kind().String(),
			MessageID: uint64(v.MessageID()),
			Name:      v.Name(),
			Pairs:     buildPairs(v.Pairs()),
		})
	}
	for _, r := range doc.SignalTypeRefs() {
		out.SignalTypeRefs = append(out.SignalTypeRefs, SignalTypeRefJSON{
			MessageID: uint64(r.MessageID()),
			Signal:    r.SignalName(),
			Type:      r.TypeName(),
		})
	}
	if g := doc.SignalGroups(); g != nil {
		out.SignalGroups = &SignalGroupJSON{
			MessageID:   uint64(g.MessageID()),
			Name:        g.Name(),
			Repetitions: g.Repetitions(),
			Signals:     g.Signals(),
		}
	}
	if l := doc.SignalExtendedValueTypeList(); l != nil {
		out.SignalExtendedValueTypes = &ExtValueTypeJSON{
			MessageID: uint64(l.MessageID()),
			Signal:    l.SignalName(),
			Type:      l.Type().String(),
		}
	}
	return out
}

func buildMessageJSON(m *dbc.Message) MessageJSON {
	mj := MessageJSON{
		ID:          uint64(m.ID()),
		Extended:    m.ID().IsExtended(),
		Name:        m.Name(),
		Size:        m.Size(),
		Transmitter: m.Transmitter().String(),
		Line:        m.Position().Line,
	}
	for _, s := range m.Signals() {
		sj := SignalJSON{
			Name:      s.Name(),
			StartBit:  s.StartBit(),
			Size:      s.Size(),
			ByteOrder: s.ByteOrder().String(),
			ValueType: s.ValueType().String(),
			Factor:    s.Factor(),
			Offset:    s.Offset(),
			Min:       s.Min(),
			Max:       s.Max(),
			Unit:      s.Unit(),
			Receivers: s.Receivers(),
			Multiplex: s.Multiplex().String(),
		}
		mj.Signals = append(mj.Signals, sj)
	}
	return mj
}

func buildEnvVarJSON(e *dbc.EnvironmentVariable) EnvVarJSON {
	ej := EnvVarJSON{
		Name:       e.Name(),
		Type:       e.Type().String(),
		Min:        e.Min(),
		Max:        e.Max(),
		Unit:       e.Unit(),
		Initial:    e.InitialValue(),
		ID:         e.ID(),
		AccessType: e.AccessType().Keyword(),
	}
	for _, n := range e.AccessNodes() {
		ej.AccessNodes = append(ej.AccessNodes, n.String())
	}
	return ej
}

func buildPairs(pairs []dbc.ValuePair) []PairJSON {
	var out []PairJSON
	for _, p := range pairs {
		out = append(out, PairJSON{Value: p.Value, Label: p.Label})
	}
	return out
}

func marshalJSON(v any, indent bool) ([]byte, error) {
	if indent {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
