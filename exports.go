package godbc

import "github.com/golangcan/godbc/dbc"

// Type aliases for the public API. All model types live in the dbc
// subpackage.

// Document is a parsed DBC file.
type Document = dbc.Document

// Message is a BO_ frame definition.
type Message = dbc.Message

// Signal is an SG_ definition inside a message.
type Signal = dbc.Signal

// MessageID is a message identifier as written in the file.
type MessageID = dbc.MessageID

// EnvironmentVariable is an EV_ definition.
type EnvironmentVariable = dbc.EnvironmentVariable

// AttributeValue is a literal attribute value.
type AttributeValue = dbc.AttributeValue

// Diagnostic is an issue reported by Validate.
type Diagnostic = dbc.Diagnostic

// ValidateConfig controls which diagnostics Validate reports.
type ValidateConfig = dbc.ValidateConfig

// Validate runs the referential-integrity checks on doc.
func Validate(doc *Document, cfg ValidateConfig) []Diagnostic {
	return dbc.Validate(doc, cfg)
}
