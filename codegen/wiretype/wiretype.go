// Package wiretype is the TypeCodeTable leaf component (§2): a constant
// table mapping each Thrift type category to its on-wire type code byte
// and symbolic name, exactly mirroring the categoryToTType table the
// gateway reference repo's runtime codec uses (internal/proxy/protocol
// /thrift/codec.go categoryToTType), except the names here are the
// Thrift protocol's own wire constants rather than apache/thrift's Go
// TType — generated code imports thrift.TType directly, so emitters
// only need the numeric code and the symbolic Go expression that
// produces it.
package wiretype

import (
	"fmt"

	"github.com/cloudwego/thriftgo/parser"
)

// Code is a Thrift on-wire type code byte (§4.1).
type Code byte

// The standard Thrift wire type codes. Enums are written as I32 (the
// generator resolves Category_Enum to CodeI32, matching §4.1: "16=enum→treated
// as i32").
const (
	CodeStop   Code = 0
	CodeBool   Code = 1
	CodeByte   Code = 3
	CodeDouble Code = 4
	CodeI16    Code = 6
	CodeI32    Code = 8
	CodeI64    Code = 10
	CodeString Code = 11 // binary shares this code; see Of below
	CodeStruct Code = 12
	CodeMap    Code = 13
	CodeSet    Code = 14
	CodeList   Code = 15

	// thrift.go's enum wire representation; not a distinct wire code.
	codeEnum Code = CodeI32
)

// thriftTypeExpr is the apache/thrift Go constant expression a generated
// Adapter references for a given wire code (e.g. "thrift.BOOL").
var thriftTypeExpr = map[Code]string{
	CodeStop:   "thrift.STOP",
	CodeBool:   "thrift.BOOL",
	CodeByte:   "thrift.BYTE",
	CodeDouble: "thrift.DOUBLE",
	CodeI16:    "thrift.I16",
	CodeI32:    "thrift.I32",
	CodeI64:    "thrift.I64",
	CodeString: "thrift.STRING",
	CodeStruct: "thrift.STRUCT",
	CodeMap:    "thrift.MAP",
	CodeSet:    "thrift.SET",
	CodeList:   "thrift.LIST",
}

// Expr returns the apache/thrift Go source expression for a wire code,
// e.g. CodeI32.Expr() == "thrift.I32". Generated code emits this verbatim
// wherever a WriteFieldBegin/ReadFieldBegin type-code argument is needed.
func (c Code) Expr() string {
	if e, ok := thriftTypeExpr[c]; ok {
		return e
	}
	return "thrift.STOP"
}

// String names the wire code symbolically, for diagnostics.
func (c Code) String() string {
	for name, expr := range thriftTypeExpr {
		if name == c {
			return expr
		}
	}
	return fmt.Sprintf("Code(%d)", byte(c))
}

// Of maps a resolved Thrift type's Category to its wire code. The caller
// MUST have already unwrapped typedefs (schema.TrueType) — a typedef
// Category reaching this function is an InternalInvariant violation (§7)
// mirrored from resolver.SurfaceTypeOf's own check.
func Of(cat parser.Category) (Code, error) {
	switch {
	case cat.IsBool():
		return CodeBool, nil
	case cat.IsByte():
		return CodeByte, nil
	case cat.IsI16():
		return CodeI16, nil
	case cat.IsI32():
		return CodeI32, nil
	case cat.IsI64():
		return CodeI64, nil
	case cat.IsDouble():
		return CodeDouble, nil
	case cat.IsString(), cat.IsBinary():
		// Thrift's wire format has no distinct binary type code; STRING (11)
		// carries both, disambiguated by the IDL type rather than the wire code.
		return CodeString, nil
	case cat.IsEnum():
		return codeEnum, nil
	case cat.IsStruct(), cat.IsUnion(), cat.IsException():
		return CodeStruct, nil
	case cat.IsMap():
		return CodeMap, nil
	case cat.IsSet():
		return CodeSet, nil
	case cat.IsList():
		return CodeList, nil
	default:
		return CodeStop, fmt.Errorf("wiretype: no wire code for category %s", cat.String())
	}
}
