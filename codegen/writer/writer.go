// Package writer implements WriterEmitter (§4.3): given a field (or a
// collection element/entry), it emits the Go statements that write that
// value through a thrift.TProtocol, following the same ctx-first,
// error-last TProtocol calling convention a runtime Thrift codec uses.
package writer

import (
	"fmt"

	"github.com/cloudwego/thriftgo/parser"

	"github.com/thriftygo/thriftygo/codegen/resolver"
)

// NameAllocator hands out collision-free loop variable names for nested
// collection writes, so two list fields in the same struct don't reuse
// "item" and shadow each other's loop variable.
type NameAllocator interface {
	Alloc(hint string) string
}

// Emitter implements WriterEmitter against one resolver.
type Emitter struct {
	res *resolver.Resolver
}

func New(res *resolver.Resolver) *Emitter {
	return &Emitter{res: res}
}

// FieldStmts emits the full write sequence for one struct field (§4.3
// steps 1-4): the optional guard, writeFieldBegin, the type dispatch, and
// writeFieldEnd. protoVar and valueExpr are Go expressions already in
// scope (e.g. "oprot" and "v.Name").
func (e *Emitter) FieldStmts(protoVar, valueExpr string, field *parser.Field, names NameAllocator) ([]string, error) {
	wireCode, err := e.res.WireCodeOf(field.Type)
	if err != nil {
		return nil, err
	}

	body, err := e.writeValue(protoVar, valueExpr, field.Type, names, "return err")
	if err != nil {
		return nil, err
	}

	stmts := []string{
		fmt.Sprintf("if err := %s.WriteFieldBegin(ctx, %q, %s, %d); err != nil { return err }",
			protoVar, field.Name, wireCode.Expr(), field.ID),
	}
	stmts = append(stmts, body...)
	stmts = append(stmts, fmt.Sprintf("if err := %s.WriteFieldEnd(ctx); err != nil { return err }", protoVar))

	if isOptional(field) {
		guarded := []string{fmt.Sprintf("if %s != nil {", valueExpr)}
		guarded = append(guarded, stmts...)
		guarded = append(guarded, "}")
		return guarded, nil
	}
	return stmts, nil
}

// StructTrailer emits the statements written once, after every field of a
// struct: writeFieldStop followed by writeStructEnd.
func StructTrailer(protoVar string) []string {
	return []string{
		fmt.Sprintf("if err := %s.WriteFieldStop(ctx); err != nil { return err }", protoVar),
		fmt.Sprintf("return %s.WriteStructEnd(ctx)", protoVar),
	}
}

func isOptional(f *parser.Field) bool {
	return f.Requiredness == parser.FieldType_Optional
}

// writeValue emits the statements that write one value of type t,
// dispatching on its true (typedef-unwrapped) category, per §4.3 step 3.
// onErr is the statement run when a write call fails: "return err" at
// field scope, or an assign-and-break-loop statement inside a Range
// closure, since a closure can't "return err" out of its enclosing method.
func (e *Emitter) writeValue(protoVar, valueExpr string, t *parser.Type, names NameAllocator, onErr string) ([]string, error) {
	true_ := e.res.TrueType(t)
	cat := true_.Category

	switch {
	case cat.IsBool():
		return []string{call(protoVar, "WriteBool", valueExpr, onErr)}, nil
	case cat.IsByte():
		return []string{call(protoVar, "WriteByte", valueExpr, onErr)}, nil
	case cat.IsI16():
		return []string{call(protoVar, "WriteI16", valueExpr, onErr)}, nil
	case cat.IsI32():
		return []string{call(protoVar, "WriteI32", valueExpr, onErr)}, nil
	case cat.IsI64():
		return []string{call(protoVar, "WriteI64", valueExpr, onErr)}, nil
	case cat.IsDouble():
		return []string{call(protoVar, "WriteDouble", valueExpr, onErr)}, nil
	case cat.IsString():
		return []string{call(protoVar, "WriteString", valueExpr, onErr)}, nil
	case cat.IsBinary():
		return []string{call(protoVar, "WriteBinary", valueExpr, onErr)}, nil
	case cat.IsEnum():
		return []string{call(protoVar, "WriteI32", valueExpr+".Code()", onErr)}, nil
	case cat.IsList():
		return e.writeContainer(protoVar, valueExpr, true_.ValueType, "WriteListBegin", "WriteListEnd", names)
	case cat.IsSet():
		return e.writeContainer(protoVar, valueExpr, true_.ValueType, "WriteSetBegin", "WriteSetEnd", names)
	case cat.IsMap():
		return e.writeMap(protoVar, valueExpr, true_.KeyType, true_.ValueType, names)
	case cat.IsStruct(), cat.IsUnion(), cat.IsException():
		return []string{
			fmt.Sprintf("if err := %sADAPTER.Write(ctx, %s, %s); err != nil { %s }", true_.Name, protoVar, valueExpr, onErr),
		}, nil
	default:
		return nil, fmt.Errorf("writer: unsupported category %s", cat.String())
	}
}

func (e *Emitter) writeContainer(protoVar, valueExpr string, elemType *parser.Type, begin, end string, names NameAllocator) ([]string, error) {
	elemCode, err := e.res.WireCodeOf(elemType)
	if err != nil {
		return nil, err
	}
	loopVar := names.Alloc("item")
	elemStmts, err := e.writeValue(protoVar, loopVar, elemType, names, "rangeErr = err; return false")
	if err != nil {
		return nil, err
	}

	stmts := []string{
		fmt.Sprintf("if err := %s.%s(ctx, %s, %s.Len()); err != nil { return err }", protoVar, begin, elemCode.Expr(), valueExpr),
		"var rangeErr error",
		fmt.Sprintf("%s.Range(func(_ int, %s interface{}) bool {", valueExpr, loopVar),
	}
	stmts = append(stmts, elemStmts...)
	stmts = append(stmts,
		"return true",
		"})",
		"if rangeErr != nil { return rangeErr }",
		fmt.Sprintf("if err := %s.%s(ctx); err != nil { return err }", protoVar, end),
	)
	return stmts, nil
}

func (e *Emitter) writeMap(protoVar, valueExpr string, keyType, valType *parser.Type, names NameAllocator) ([]string, error) {
	keyCode, err := e.res.WireCodeOf(keyType)
	if err != nil {
		return nil, err
	}
	valCode, err := e.res.WireCodeOf(valType)
	if err != nil {
		return nil, err
	}
	kVar := names.Alloc("k")
	vVar := names.Alloc("v")
	kStmts, err := e.writeValue(protoVar, kVar, keyType, names, "rangeErr = err; return false")
	if err != nil {
		return nil, err
	}
	vStmts, err := e.writeValue(protoVar, vVar, valType, names, "rangeErr = err; return false")
	if err != nil {
		return nil, err
	}

	stmts := []string{
		fmt.Sprintf("if err := %s.WriteMapBegin(ctx, %s, %s, %s.Len()); err != nil { return err }", protoVar, keyCode.Expr(), valCode.Expr(), valueExpr),
		"var rangeErr error",
		fmt.Sprintf("%s.Range(func(%s, %s interface{}) bool {", valueExpr, kVar, vVar),
	}
	stmts = append(stmts, kStmts...)
	stmts = append(stmts, vStmts...)
	stmts = append(stmts,
		"return true",
		"})",
		"if rangeErr != nil { return rangeErr }",
		fmt.Sprintf("if err := %s.WriteMapEnd(ctx); err != nil { return err }", protoVar),
	)
	return stmts, nil
}

func call(protoVar, method, arg, onErr string) string {
	return fmt.Sprintf("if err := %s.%s(ctx, %s); err != nil { %s }", protoVar, method, arg, onErr)
}
