package lexer

import "sort"

// Section keywords of the DBC grammar.
const (
	KwVersion             = "VERSION"
	KwNewSymbols          = "NS_ :"
	KwBitTiming           = "BS_:"
	KwNodes               = "BU_:"
	KwValueTable          = "VAL_TABLE_"
	KwMessage             = "BO_"
	KwSignal              = "SG_"
	KwMessageTransmitter  = "BO_TX_BU_"
	KwEnvVar              = "EV_"
	KwEnvVarData          = "ENVVAR_DATA_"
	KwSignalType          = "SGTYPE_"
	KwComment             = "CM_"
	KwAttributeDefinition = "BA_DEF_"
	KwAttributeDefault    = "BA_DEF_DEF_"
	KwAttributeValue      = "BA_"
	KwValueDescription    = "VAL_"
	KwSignalGroup         = "SIG_GROUP_"
	KwSignalValueType     = "SIG_VALTYPE_"
	KwNode                = "BU_"
	KwAccessType          = "DUMMY_NODE_VECTOR"
	KwVectorXXX           = "Vector__XXX"
	KwAccessVectorXXX     = "VECTOR_XXX"
)

// symbols is the sorted table of symbol names that may appear in the
// NS_ block of a DBC file.
// IMPORTANT: This slice MUST remain sorted in ASCII byte order.
var symbols = []string{
	"BA_",
	"BA_DEF_",
	"BA_DEF_DEF_",
	"BA_DEF_DEF_REL_",
	"BA_DEF_REL_",
	"BA_DEF_SGTYPE_",
	"BA_REL_",
	"BA_SGTYPE_",
	"BO_TX_BU_",
	"BU_BO_REL_",
	"BU_EV_REL_",
	"BU_SG_REL_",
	"CAT_",
	"CAT_DEF_",
	"CM_",
	"ENVVAR_DATA_",
	"EV_DATA_",
	"FILTER",
	"NS_DESC_",
	"SGTYPE_",
	"SGTYPE_VAL_",
	"SG_MUL_VAL_",
	"SIGTYPE_VALTYPE_",
	"SIG_GROUP_",
	"SIG_TYPE_REF_",
	"SIG_VALTYPE_",
	"VAL_",
	"VAL_TABLE_",
}

// IsKnownSymbol reports whether name is a symbol defined by the DBC format.
func IsKnownSymbol(name string) bool {
	i := sort.SearchStrings(symbols, name)
	return i < len(symbols) && symbols[i] == name
}
