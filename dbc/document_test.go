package dbc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/golangcan/godbc/internal/parser"
	"github.com/golangcan/godbc/internal/types"
)

const networkDBC = `VERSION "1.0"

NS_ :
	CM_
	BA_DEF_
	FOO_

BS_: 500,250
BU_: ECU1 ECU2 Dash

VAL_TABLE_ GearTable 0 "Park" 1 "Drive" ;

BO_ 100 Engine: 8 ECU1
 SG_ Speed : 0|16@1+ (0.1,0) [0|6553.5] "km/h" Dash,ECU2
 SG_ Temp : 16|8@1- (1,-40) [-40|215] "C" Dash

BO_ 2147484160 Gearbox: 2 Vector__XXX
 SG_ Mode M : 0|4@1+ (1,0) [0|15] "" Dash
 SG_ Gear m1 : 7|4@0+ (1,0) [0|15] "" Dash

BO_TX_BU_ 100 : ECU2;

EV_ Volume: 1 [0|100] "dB" 10 3 DUMMY_NODE_VECTOR3 ECU1,VECTOR_XXX;
ENVVAR_DATA_ Volume: 4;

SGTYPE_ TempType: 8@1- (1,-40) [-40|215] "C" 0 GearTable;

CM_ "network comment";
CM_ BU_ ECU1 "engine controller";
CM_ BO_ 100 "engine frame";
CM_ SG_ 100 Speed "vehicle speed";
CM_ EV_ Volume "volume";

BA_DEF_ BO_ "GenMsgCycleTime" INT 0 65535;
BA_DEF_  "BusType" STRING ;
BA_DEF_DEF_ "GenMsgCycleTime" 100;
BA_ "GenMsgCycleTime" BO_ 100 10;
BA_ "BusType" "CAN";
BA_ "GenMsgCycleTime" BO_ 512 ;

VAL_ 2147484160 Gear 0 "Neutral" 1 "First" ;
VAL_ Volume 0 "Mute" ;

SGTYPE_ 100 Temp : TempType;
SIG_GROUP_ 100 Powertrain 1 : Speed Temp;
SIG_VALTYPE_ 100 Speed : 1;
`

func lowerSource(t *testing.T, src string) *Document {
	t.Helper()
	res, err := parser.New([]byte(src), nil, parser.Options{}).Parse()
	require.NoError(t, err)
	require.Nil(t, res.Cause, "unexpected remainder %q", src[res.Rest:])
	return Lower(res.File, types.NewLineTable([]byte(src)), nil)
}

func TestLowerNetwork(t *testing.T) {
	doc := lowerSource(t, networkDBC)

	require.Equal(t, "1.0", doc.Version())
	require.Equal(t, []Symbol{"CM_", "BA_DEF_", "FOO_"}, doc.NewSymbols())

	rates, ok := doc.BitTiming()
	require.True(t, ok)
	require.Equal(t, []Baudrate{500, 250}, rates)

	require.Equal(t, []string{"ECU1", "ECU2", "Dash"}, doc.NodeNames())
	require.Len(t, doc.Nodes(), 1)
	require.Equal(t, Position{Line: 9, Column: 1}, doc.Nodes()[0].Position())

	tables := doc.ValueTables()
	require.Len(t, tables, 1)
	label, ok := tables[0].Label(1)
	require.True(t, ok)
	require.Equal(t, "Drive", label)

	msgs := doc.Messages()
	require.Len(t, msgs, 2)
	require.Equal(t, "Engine", msgs[0].Name())
	require.Equal(t, uint64(8), msgs[0].Size())
	require.Equal(t, "ECU1", msgs[0].Transmitter().Node())
	require.Equal(t, Position{Line: 13, Column: 1}, msgs[0].Position())
	require.True(t, msgs[1].Transmitter().IsVectorXXX())
	require.Equal(t, VectorXXX, msgs[1].Transmitter().String())

	speed := msgs[0].Signal("Speed")
	require.NotNil(t, speed)
	require.Equal(t, uint64(0), speed.StartBit())
	require.Equal(t, uint64(16), speed.Size())
	require.Equal(t, LittleEndian, speed.ByteOrder())
	require.Equal(t, Unsigned, speed.ValueType())
	require.Equal(t, 0.1, speed.Factor())
	require.Equal(t, 6553.5, speed.Max())
	require.Equal(t, "km/h", speed.Unit())
	require.Equal(t, []string{"Dash", "ECU2"}, speed.Receivers())

	temp := msgs[0].Signal("Temp")
	require.Equal(t, Signed, temp.ValueType())
	require.Equal(t, -40.0, temp.Offset())

	require.Nil(t, msgs[0].Multiplexor())
	mux := msgs[1].Multiplexor()
	require.NotNil(t, mux)
	require.Equal(t, "Mode", mux.Name())
	gear := msgs[1].Signal("Gear")
	require.Equal(t, Multiplex{Kind: MultiplexedSignal, Selector: 1}, gear.Multiplex())
	require.Equal(t, BigEndian, gear.ByteOrder())

	tx := doc.MessageTransmitters()
	require.Len(t, tx, 1)
	require.Equal(t, MessageID(100), tx[0].MessageID())
	require.Equal(t, "ECU2", tx[0].Transmitter().Node())

	envs := doc.EnvironmentVariables()
	require.Len(t, envs, 1)
	require.Equal(t, EnvInteger, envs[0].Type())
	require.Equal(t, int64(100), envs[0].Max())
	require.Equal(t, 10.0, envs[0].InitialValue())
	require.Equal(t, int64(3), envs[0].ID())
	require.Equal(t, AccessReadWrite, envs[0].AccessType())
	require.Equal(t, []AccessNode{{node: "ECU1"}, {}}, envs[0].AccessNodes())

	data := doc.EnvironmentVariableData()
	require.Len(t, data, 1)
	require.Equal(t, uint64(4), data[0].DataSize())

	sts := doc.SignalTypes()
	require.Len(t, sts, 1)
	require.Equal(t, "GearTable", sts[0].ValueTable())

	require.Len(t, doc.Comments(), 5)
	require.Len(t, doc.AttributeDefinitions(), 2)
	require.Len(t, doc.AttributeDefaults(), 1)
	require.Len(t, doc.AttributeValues(), 3)
	require.Len(t, doc.ValueDescriptions(), 2)

	refs := doc.SignalTypeRefs()
	require.Len(t, refs, 1)
	require.Equal(t, "TempType", refs[0].TypeName())

	g := doc.SignalGroups()
	require.NotNil(t, g)
	require.Equal(t, "Powertrain", g.Name())
	require.Equal(t, []string{"Speed", "Temp"}, g.Signals())

	ext := doc.SignalExtendedValueTypeList()
	require.NotNil(t, ext)
	require.Equal(t, ExtFloat32, ext.Type())
}

func TestDocumentLookups(t *testing.T) {
	doc := lowerSource(t, networkDBC)

	require.Equal(t, "Engine", doc.Message(100).Name())
	require.Nil(t, doc.Message(101))
	gearbox := doc.MessageByName("Gearbox")
	require.NotNil(t, gearbox)
	require.True(t, gearbox.ID().IsExtended())
	require.Equal(t, uint32(0x200), gearbox.ID().CANID())

	tests := []struct {
		kind ObjectKind
		id   MessageID
		name string
		want string
	}{
		{ObjectNetwork, 0, "", "network comment"},
		{ObjectNode, 0, "ECU1", "engine controller"},
		{ObjectMessage, 100, "", "engine frame"},
		{ObjectSignal, 100, "Speed", "vehicle speed"},
		{ObjectEnvVar, 0, "Volume", "volume"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got, ok := doc.CommentFor(tt.kind, tt.id, tt.name)
			require.True(t, ok)
			require.Equal(t, tt.want, got)
		})
	}
	_, ok := doc.CommentFor(ObjectSignal, 100, "Temp")
	require.False(t, ok)

	vd := doc.SignalValueDescription(2147484160, "Gear")
	require.NotNil(t, vd)
	label, ok := vd.Label(1)
	require.True(t, ok)
	require.Equal(t, "First", label)
	require.Nil(t, doc.SignalValueDescription(100, "Gear"))

	var names []string
	for m, s := range doc.Signals() {
		names = append(names, m.Name()+"."+s.Name())
	}
	require.Equal(t, []string{"Engine.Speed", "Engine.Temp", "Gearbox.Mode", "Gearbox.Gear"}, names)
}

func TestLowerAttributeValues(t *testing.T) {
	doc := lowerSource(t, networkDBC)
	vals := doc.AttributeValues()

	require.Equal(t, ObjectMessage, vals[0].Target())
	require.Equal(t, MessageID(100), vals[0].MessageID())
	require.Equal(t, FloatValue(10), vals[0].Value())

	require.Equal(t, ObjectNetwork, vals[1].Target())
	require.Equal(t, StringValue("CAN"), vals[1].Value())

	require.Equal(t, ObjectMessage, vals[2].Target())
	require.True(t, vals[2].Value().IsNone())

	def := doc.AttributeDefinitions()[1]
	require.Equal(t, ObjectNetwork, def.Kind())
	dom, err := def.Domain()
	require.NoError(t, err)
	require.Equal(t, "BusType", dom.Name)
	require.Equal(t, AttributeString, dom.Type)
}

func TestDocumentSlicesAreCopies(t *testing.T) {
	doc := lowerSource(t, networkDBC)

	msgs := doc.Messages()
	msgs[0] = nil
	require.NotNil(t, doc.Messages()[0])

	sigs := doc.Message(100).Signals()
	sigs[0] = nil
	require.NotNil(t, doc.Message(100).Signals()[0])

	recv := doc.Message(100).Signal("Speed").Receivers()
	recv[0] = "X"
	require.Equal(t, "Dash", doc.Message(100).Signal("Speed").Receivers()[0])
}

func TestLowerNilFile(t *testing.T) {
	doc := Lower(nil, nil, nil)
	require.NotNil(t, doc)
	require.Empty(t, doc.Messages())
	_, ok := doc.BitTiming()
	require.False(t, ok)
	require.Nil(t, doc.Message(1))
}

func TestSymbolIsKnown(t *testing.T) {
	require.True(t, Symbol("BA_DEF_").IsKnown())
	require.False(t, Symbol("FOO_").IsKnown())
}
