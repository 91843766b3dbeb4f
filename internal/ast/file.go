package ast

import (
	"github.com/golangcan/godbc/internal/types"
)

// File is the top-level AST node for a parsed DBC file. Sections keep
// the order in which they appear in the source.
type File struct {
	Version              QuotedString
	NewSymbols           []Ident
	BitTiming            *BitTiming
	Nodes                []NodeList
	ValueTables          []ValueTable
	Messages             []Message
	MessageTransmitters  []MessageTransmitter
	EnvVars              []EnvVar
	EnvVarData           []EnvVarData
	SignalTypes          []SignalType
	Comments             []Comment
	AttributeDefinitions []AttributeDefinition
	AttributeDefaults    []AttributeDefault
	AttributeValues      []AttributeAssignment
	ValueDescriptions    []ValueDescription
	SignalTypeRefs       []SignalTypeRef
	SignalGroups         *SignalGroups
	ExtValueTypes        *SignalExtValueType
	Span                 types.Span
}

// Counts returns the number of entries of each repeated section, keyed by
// section name. Used for logging and summaries.
func (f *File) Counts() map[string]int {
	return map[string]int{
		"nodes":                 len(f.Nodes),
		"value_tables":          len(f.ValueTables),
		"messages":              len(f.Messages),
		"message_transmitters":  len(f.MessageTransmitters),
		"environment_variables": len(f.EnvVars),
		"env_var_data":          len(f.EnvVarData),
		"signal_types":          len(f.SignalTypes),
		"comments":              len(f.Comments),
		"attribute_definitions": len(f.AttributeDefinitions),
		"attribute_defaults":    len(f.AttributeDefaults),
		"attribute_values":      len(f.AttributeValues),
		"value_descriptions":    len(f.ValueDescriptions),
		"signal_type_refs":      len(f.SignalTypeRefs),
	}
}
