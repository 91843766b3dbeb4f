package dbc

import (
	"fmt"
	"math"

	"github.com/agnivade/levenshtein"
)

// Diagnostic codes reported by Validate.
const (
	CodeUnknownMessage      = "unknown-message"
	CodeUnknownSignal       = "unknown-signal"
	CodeUnknownNode         = "unknown-node"
	CodeUnknownEnvVar       = "unknown-env-var"
	CodeUnknownSignalType   = "unknown-signal-type"
	CodeUnknownValueTable   = "unknown-value-table"
	CodeUnknownAttribute    = "unknown-attribute"
	CodeInvalidAttribute    = "invalid-attribute-definition"
	CodeAttributeOutOfRange = "attribute-out-of-domain"
	CodeSignalOutOfRange    = "signal-out-of-range"
	CodeUnknownSymbol       = "unknown-symbol"
)

// maxSuggestionDistance is the edit distance below which a declared name is
// offered as a suggestion.
const maxSuggestionDistance = 3

// Validate checks that the annotations of doc refer to declared objects and
// that signals fit in their messages. It never modifies doc. Diagnostics are
// grouped by section and filtered by cfg.
func Validate(doc *Document, cfg ValidateConfig) []Diagnostic {
	v := &validator{doc: doc, filter: cfg.compile()}
	v.index()
	v.symbols()
	v.messages()
	v.transmitters()
	v.envVars()
	v.signalTypes()
	v.comments()
	v.attributes()
	v.valueDescriptions()
	v.signalTypeRefs()
	v.groups()
	return v.diags
}

type validator struct {
	doc    *Document
	filter filter
	diags  []Diagnostic

	nodes       map[string]bool
	envVars     map[string]bool
	signalTypes map[string]bool
	valueTables map[string]bool
	domains     map[string]AttributeDomain
}

func (v *validator) index() {
	v.nodes = make(map[string]bool)
	for _, n := range v.doc.NodeNames() {
		v.nodes[n] = true
	}
	v.envVars = make(map[string]bool)
	for _, e := range v.doc.envVars {
		v.envVars[e.name] = true
	}
	v.signalTypes = make(map[string]bool)
	for _, t := range v.doc.signalTypes {
		v.signalTypes[t.name] = true
	}
	v.valueTables = make(map[string]bool)
	for _, t := range v.doc.valueTables {
		v.valueTables[t.name] = true
	}
	v.domains = make(map[string]AttributeDomain)
	for _, d := range v.doc.attributeDefinitions {
		dom, err := d.Domain()
		if err != nil {
			v.report(SeverityWarning, CodeInvalidAttribute, d.pos, "", "%v", err)
			continue
		}
		if _, ok := v.domains[dom.Name]; !ok {
			v.domains[dom.Name] = dom
		}
	}
}

func (v *validator) report(sev Severity, code string, pos Position, suggestion string, format string, args ...any) {
	sev, ok := v.filter.report(code, sev)
	if !ok {
		return
	}
	v.diags = append(v.diags, Diagnostic{
		Severity:   sev,
		Code:       code,
		Message:    fmt.Sprintf(format, args...),
		Line:       pos.Line,
		Column:     pos.Column,
		Suggestion: suggestion,
	})
}

func (v *validator) symbols() {
	for _, s := range v.doc.newSymbols {
		if !s.IsKnown() {
			v.report(SeverityInfo, CodeUnknownSymbol, Position{}, "",
				"new symbol %s is not a DBC keyword", s)
		}
	}
}

func (v *validator) messages() {
	for _, m := range v.doc.messages {
		v.checkTransmitter(m.transmitter, m.pos)
		for _, s := range m.signals {
			for _, r := range s.receivers {
				if r != VectorXXX {
					v.checkNode(r, s.pos)
				}
			}
			if !signalFits(s, m.size) {
				v.report(SeverityWarning, CodeSignalOutOfRange, s.pos, "",
					"signal %s (start %d, size %d) exceeds the %d byte payload of message %s",
					s.name, s.startBit, s.size, m.size, m.name)
			}
		}
	}
}

// signalFits reports whether the bits of s lie inside a payload of size
// bytes. Big-endian start bits name the most significant bit in the
// sawtooth numbering used by DBC files.
func signalFits(s *Signal, size uint64) bool {
	limit := 8 * size
	if s.size == 0 {
		return true
	}
	if s.byteOrder == LittleEndian {
		return s.startBit+s.size <= limit
	}
	msb := (s.startBit/8)*8 + (7 - s.startBit%8)
	return msb+s.size <= limit
}

func (v *validator) transmitters() {
	for _, t := range v.doc.messageTransmitters {
		v.checkMessage(t.messageID, t.pos)
		v.checkTransmitter(t.transmitter, t.pos)
	}
}

func (v *validator) envVars() {
	for _, e := range v.doc.envVars {
		for _, n := range e.nodes {
			if !n.IsVectorXXX() {
				v.checkNode(n.node, e.pos)
			}
		}
	}
	for _, d := range v.doc.envVarData {
		v.checkEnvVar(d.name, d.pos)
	}
}

func (v *validator) signalTypes() {
	for _, t := range v.doc.signalTypes {
		if t.valueTable != "" && !v.valueTables[t.valueTable] {
			v.report(SeverityError, CodeUnknownValueTable, t.pos, suggest(t.valueTable, v.valueTables),
				"signal type %s refers to unknown value table %s", t.name, t.valueTable)
		}
	}
}

func (v *validator) comments() {
	for _, c := range v.doc.comments {
		v.checkObject(c.kind, c.messageID, c.name, c.pos)
	}
}

func (v *validator) attributes() {
	for _, d := range v.doc.attributeDefaults {
		v.checkAttribute(d.name, d.value, d.pos)
	}
	for _, a := range v.doc.attributeValues {
		v.checkObject(a.target, a.messageID, a.object, a.pos)
		if !a.value.IsNone() {
			v.checkAttribute(a.name, a.value, a.pos)
		}
	}
}

func (v *validator) checkAttribute(name string, value AttributeValue, pos Position) {
	dom, ok := v.domains[name]
	if !ok {
		v.report(SeverityWarning, CodeUnknownAttribute, pos, suggestKeys(name, v.domains),
			"attribute %q is not defined", name)
		return
	}
	if !dom.Contains(value) {
		v.report(SeverityWarning, CodeAttributeOutOfRange, pos, "",
			"value %s is outside the %s domain of attribute %q", value, dom.Type, name)
	}
}

func (v *validator) valueDescriptions() {
	for _, d := range v.doc.valueDescriptions {
		v.checkObject(d.kind, d.messageID, d.name, d.pos)
	}
}

func (v *validator) signalTypeRefs() {
	for _, r := range v.doc.signalTypeRefs {
		v.checkSignal(r.messageID, r.signalName, r.pos)
		if !v.signalTypes[r.typeName] {
			v.report(SeverityError, CodeUnknownSignalType, r.pos, suggest(r.typeName, v.signalTypes),
				"unknown signal type %s", r.typeName)
		}
	}
}

func (v *validator) groups() {
	if g := v.doc.signalGroups; g != nil {
		if m := v.checkMessage(g.messageID, g.pos); m != nil {
			for _, s := range g.signals {
				v.checkSignal(g.messageID, s, g.pos)
			}
		}
	}
	if e := v.doc.extValueTypes; e != nil {
		v.checkSignal(e.messageID, e.signalName, e.pos)
	}
}

func (v *validator) checkObject(kind ObjectKind, id MessageID, name string, pos Position) {
	switch kind {
	case ObjectNode:
		v.checkNode(name, pos)
	case ObjectMessage:
		v.checkMessage(id, pos)
	case ObjectSignal:
		v.checkSignal(id, name, pos)
	case ObjectEnvVar:
		v.checkEnvVar(name, pos)
	}
}

func (v *validator) checkTransmitter(t Transmitter, pos Position) {
	if !t.IsVectorXXX() {
		v.checkNode(t.node, pos)
	}
}

func (v *validator) checkNode(name string, pos Position) {
	if !v.nodes[name] {
		v.report(SeverityError, CodeUnknownNode, pos, suggest(name, v.nodes),
			"unknown node %s", name)
	}
}

func (v *validator) checkEnvVar(name string, pos Position) {
	if !v.envVars[name] {
		v.report(SeverityError, CodeUnknownEnvVar, pos, suggest(name, v.envVars),
			"unknown environment variable %s", name)
	}
}

func (v *validator) checkMessage(id MessageID, pos Position) *Message {
	m := v.doc.Message(id)
	if m == nil {
		v.report(SeverityError, CodeUnknownMessage, pos, "", "unknown message %d", uint64(id))
	}
	return m
}

func (v *validator) checkSignal(id MessageID, name string, pos Position) {
	m := v.checkMessage(id, pos)
	if m == nil || m.Signal(name) != nil {
		return
	}
	names := make(map[string]bool, len(m.signals))
	for _, s := range m.signals {
		names[s.name] = true
	}
	v.report(SeverityError, CodeUnknownSignal, pos, suggest(name, names),
		"message %s has no signal %s", m.name, name)
}

// suggest returns the candidate closest to name, or "" if none is within
// maxSuggestionDistance. Ties go to the lexically smallest candidate.
func suggest(name string, candidates map[string]bool) string {
	best, bestDist := "", math.MaxInt
	for c := range candidates {
		d := levenshtein.ComputeDistance(name, c)
		if d < bestDist || d == bestDist && c < best {
			best, bestDist = c, d
		}
	}
	if bestDist > maxSuggestionDistance || bestDist >= len(name) {
		return ""
	}
	return best
}

func suggestKeys[V any](name string, m map[string]V) string {
	set := make(map[string]bool, len(m))
	for k := range m {
		set[k] = true
	}
	return suggest(name, set)
}
