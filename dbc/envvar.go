package dbc

import "slices"

// AccessVectorXXX is the placeholder access node name.
const AccessVectorXXX = "VECTOR_XXX"

// AccessNode is a node with access to an environment variable, or the
// VECTOR_XXX placeholder.
type AccessNode struct {
	node string
}

// IsVectorXXX reports whether this is the VECTOR_XXX placeholder.
func (a AccessNode) IsVectorXXX() bool { return a.node == "" }

// Node returns the node name, or "" for the placeholder.
func (a AccessNode) Node() string { return a.node }

func (a AccessNode) String() string {
	if a.IsVectorXXX() {
		return AccessVectorXXX
	}
	return a.node
}

// EnvironmentVariable is an EV_ definition.
type EnvironmentVariable struct {
	name       string
	typ        EnvType
	min        int64
	max        int64
	unit       string
	initial    float64
	id         int64
	accessType AccessType
	nodes      []AccessNode
	pos        Position
}

func (e *EnvironmentVariable) Name() string              { return e.name }
func (e *EnvironmentVariable) Type() EnvType             { return e.typ }
func (e *EnvironmentVariable) Min() int64                { return e.min }
func (e *EnvironmentVariable) Max() int64                { return e.max }
func (e *EnvironmentVariable) Unit() string              { return e.unit }
func (e *EnvironmentVariable) InitialValue() float64     { return e.initial }
func (e *EnvironmentVariable) ID() int64                 { return e.id }
func (e *EnvironmentVariable) AccessType() AccessType    { return e.accessType }
func (e *EnvironmentVariable) AccessNodes() []AccessNode { return slices.Clone(e.nodes) }
func (e *EnvironmentVariable) Position() Position        { return e.pos }

// EnvironmentVariableData is an ENVVAR_DATA_ line declaring the data size
// of an environment variable.
type EnvironmentVariableData struct {
	name string
	size uint64
	pos  Position
}

func (d *EnvironmentVariableData) Name() string       { return d.name }
func (d *EnvironmentVariableData) DataSize() uint64   { return d.size }
func (d *EnvironmentVariableData) Position() Position { return d.pos }
