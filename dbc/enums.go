// Package dbc provides the read-only model of a parsed CAN database file.
package dbc

import "fmt"

// ByteOrder is the bit layout of a signal within its message.
type ByteOrder int

const (
	LittleEndian ByteOrder = iota // Intel, "@1"
	BigEndian                     // Motorola, "@0"
)

func (b ByteOrder) String() string {
	switch b {
	case LittleEndian:
		return "little-endian"
	case BigEndian:
		return "big-endian"
	default:
		return fmt.Sprintf("ByteOrder(%d)", b)
	}
}

// ValueType is the signedness of a signal's raw value.
type ValueType int

const (
	Signed   ValueType = iota // "-"
	Unsigned                  // "+"
)

func (v ValueType) String() string {
	switch v {
	case Signed:
		return "signed"
	case Unsigned:
		return "unsigned"
	default:
		return fmt.Sprintf("ValueType(%d)", v)
	}
}

// MultiplexKind classifies a signal's role in multiplexing.
type MultiplexKind int

const (
	MultiplexPlain    MultiplexKind = iota // not multiplexed
	MultiplexSwitch                        // the multiplexor ("M")
	MultiplexedSignal                      // present for one selector value ("m<n>")
)

func (k MultiplexKind) String() string {
	switch k {
	case MultiplexPlain:
		return "plain"
	case MultiplexSwitch:
		return "multiplexor"
	case MultiplexedSignal:
		return "multiplexed"
	default:
		return fmt.Sprintf("MultiplexKind(%d)", k)
	}
}

// EnvType is the value type of an environment variable.
type EnvType int

const (
	EnvFloat   EnvType = iota // 0
	EnvInteger                // 1
	EnvData                   // 2
)

func (e EnvType) String() string {
	switch e {
	case EnvFloat:
		return "float"
	case EnvInteger:
		return "integer"
	case EnvData:
		return "data"
	default:
		return fmt.Sprintf("EnvType(%d)", e)
	}
}

// AccessType is the access mode of an environment variable, written
// DUMMY_NODE_VECTOR0 through DUMMY_NODE_VECTOR3.
type AccessType int

const (
	AccessUnrestricted AccessType = iota
	AccessRead
	AccessWrite
	AccessReadWrite
)

func (a AccessType) String() string {
	switch a {
	case AccessUnrestricted:
		return "unrestricted"
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	case AccessReadWrite:
		return "read-write"
	default:
		return fmt.Sprintf("AccessType(%d)", a)
	}
}

// Keyword returns the source spelling of the access type.
func (a AccessType) Keyword() string {
	return fmt.Sprintf("DUMMY_NODE_VECTOR%d", int(a))
}

// ExtendedValueType is the raw value encoding declared by SIG_VALTYPE_.
type ExtendedValueType int

const (
	ExtInteger ExtendedValueType = iota // signed or unsigned integer
	ExtFloat32                          // IEEE 754 single precision
	ExtFloat64                          // IEEE 754 double precision
)

func (e ExtendedValueType) String() string {
	switch e {
	case ExtInteger:
		return "integer"
	case ExtFloat32:
		return "float32"
	case ExtFloat64:
		return "float64"
	default:
		return fmt.Sprintf("ExtendedValueType(%d)", e)
	}
}

// ObjectKind identifies what a comment, attribute or value description
// refers to. ObjectNetwork is the plain form that applies to the whole
// network (or the raw form of an attribute value).
type ObjectKind int

const (
	ObjectNetwork ObjectKind = iota
	ObjectNode
	ObjectMessage
	ObjectSignal
	ObjectEnvVar
)

func (k ObjectKind) String() string {
	switch k {
	case ObjectNetwork:
		return "network"
	case ObjectNode:
		return "node"
	case ObjectMessage:
		return "message"
	case ObjectSignal:
		return "signal"
	case ObjectEnvVar:
		return "env-var"
	default:
		return fmt.Sprintf("ObjectKind(%d)", k)
	}
}

// AttributeValueKind tags the alternatives of an AttributeValue.
type AttributeValueKind int

const (
	ValueNone AttributeValueKind = iota // absent (message attributes only)
	ValueFloat
	ValueString
	ValueUint
	ValueInt
)

func (k AttributeValueKind) String() string {
	switch k {
	case ValueNone:
		return "none"
	case ValueFloat:
		return "float"
	case ValueString:
		return "string"
	case ValueUint:
		return "uint"
	case ValueInt:
		return "int"
	default:
		return fmt.Sprintf("AttributeValueKind(%d)", k)
	}
}

// AttributeType is the value type of an attribute definition.
type AttributeType int

const (
	AttributeInt AttributeType = iota
	AttributeHex
	AttributeFloat
	AttributeString
	AttributeEnum
)

func (t AttributeType) String() string {
	switch t {
	case AttributeInt:
		return "INT"
	case AttributeHex:
		return "HEX"
	case AttributeFloat:
		return "FLOAT"
	case AttributeString:
		return "STRING"
	case AttributeEnum:
		return "ENUM"
	default:
		return fmt.Sprintf("AttributeType(%d)", t)
	}
}

// Severity levels for validation diagnostics. Lower values are more severe.
type Severity int

const (
	SeverityError   Severity = 0 // reference cannot be resolved
	SeverityWarning Severity = 1 // probably a mistake
	SeverityInfo    Severity = 2 // informational notice
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("Severity(%d)", s)
	}
}
