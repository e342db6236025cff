// Package reader implements ReaderEmitter (§4.4): the read-side mirror of
// writer.Emitter, producing the field loop body and per-type read
// dispatch for a struct's Adapter.Read method.
package reader

import (
	"fmt"

	"github.com/cloudwego/thriftgo/parser"

	"github.com/thriftygo/thriftygo/codegen/ident"
	"github.com/thriftygo/thriftygo/codegen/resolver"
)

// NameAllocator hands out collision-free local variable names, shared
// with writer.NameAllocator's role but kept as a separate type so this
// package has no import-time dependency on writer.
type NameAllocator interface {
	Alloc(hint string) string
}

// Emitter implements ReaderEmitter against one resolver.
type Emitter struct {
	res *resolver.Resolver
}

func New(res *resolver.Resolver) *Emitter {
	return &Emitter{res: res}
}

// FieldCase pairs one known field id with its declared field, the two
// things a dispatch arm is built from.
type FieldCase struct {
	FieldID int16
	Field   *parser.Field
}

// StructLoopStmts emits the whole field loop (§4.4): readStructBegin,
// repeated readFieldBegin/dispatch/readFieldEnd until STOP, readStructEnd,
// then "return builder.build()". builderVar is the in-scope Builder value
// each known field assigns into via its typed setter.
func (e *Emitter) StructLoopStmts(protoVar, builderVar string, fields []*parser.Field, names NameAllocator) ([]string, error) {
	stmts := []string{
		fmt.Sprintf("if _, err := %s.ReadStructBegin(ctx); err != nil { return nil, err }", protoVar),
		"for {",
		fmt.Sprintf("_, fieldType, fieldID, err := %s.ReadFieldBegin(ctx)", protoVar),
		"if err != nil { return nil, err }",
		"if fieldType == thrift.STOP { break }",
		"switch fieldID {",
	}

	for _, f := range fields {
		wireCode, err := e.res.WireCodeOf(f.Type)
		if err != nil {
			return nil, err
		}
		caseStmts, err := e.fieldCaseStmts(protoVar, builderVar, f, wireCode.Expr(), names)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, fmt.Sprintf("case %d:", f.ID))
		stmts = append(stmts, caseStmts...)
	}

	stmts = append(stmts,
		"default:",
		fmt.Sprintf("if err := %s.Skip(ctx, fieldType); err != nil { return nil, err }", protoVar),
		"}",
		fmt.Sprintf("if err := %s.ReadFieldEnd(ctx); err != nil { return nil, err }", protoVar),
		"}",
		fmt.Sprintf("if err := %s.ReadStructEnd(ctx); err != nil { return nil, err }", protoVar),
		fmt.Sprintf("return %s.build()", builderVar),
	)
	return stmts, nil
}

// fieldCaseStmts emits one known-field-id case: validate the wire type
// against the declared field's expected code, skip-and-continue on
// mismatch, otherwise read the value and assign it via the builder's
// typed setter (§4.4).
func (e *Emitter) fieldCaseStmts(protoVar, builderVar string, f *parser.Field, wireCodeExpr string, names NameAllocator) ([]string, error) {
	readStmts, resultVar, err := e.readValue(protoVar, f.Type, names, "return nil, err")
	if err != nil {
		return nil, err
	}

	stmts := []string{
		fmt.Sprintf("if fieldType != %s {", wireCodeExpr),
		fmt.Sprintf("if err := %s.Skip(ctx, fieldType); err != nil { return nil, err }", protoVar),
		"break",
		"}",
	}
	stmts = append(stmts, readStmts...)
	stmts = append(stmts, fmt.Sprintf("%s.Set%s(%s)", builderVar, ident.Exported(f.Name), resultVar))
	return stmts, nil
}

// readValue emits the statements that read one value of type t,
// dispatching on its true category (the mirror image of §4.3's write
// dispatch), and returns the name of the local variable holding the
// result. onErr is the statement run when a read call fails.
func (e *Emitter) readValue(protoVar string, t *parser.Type, names NameAllocator, onErr string) ([]string, string, error) {
	true_ := e.res.TrueType(t)
	cat := true_.Category

	switch {
	case cat.IsBool():
		return e.readScalarPtr(protoVar, "ReadBool", names, onErr)
	case cat.IsByte():
		return e.readScalarPtr(protoVar, "ReadByte", names, onErr)
	case cat.IsI16():
		return e.readScalarPtr(protoVar, "ReadI16", names, onErr)
	case cat.IsI32():
		return e.readScalarPtr(protoVar, "ReadI32", names, onErr)
	case cat.IsI64():
		return e.readScalarPtr(protoVar, "ReadI64", names, onErr)
	case cat.IsDouble():
		return e.readScalarPtr(protoVar, "ReadDouble", names, onErr)
	case cat.IsString():
		return e.readScalarPtr(protoVar, "ReadString", names, onErr)
	case cat.IsBinary():
		return e.readScalar(protoVar, "ReadBinary", names, onErr)
	case cat.IsEnum():
		code := names.Alloc("code")
		val := names.Alloc("val")
		stmts := []string{
			fmt.Sprintf("%s, err := %s.ReadI32(ctx)", code, protoVar),
			fmt.Sprintf("if err != nil { %s }", onErr),
			fmt.Sprintf("%s := %sFromCode(%s)", val, true_.Name, code),
		}
		return stmts, val, nil
	case cat.IsList():
		return e.readContainer(protoVar, true_.ValueType, "ReadListBegin", "ReadListEnd", names, onErr, false)
	case cat.IsSet():
		return e.readContainer(protoVar, true_.ValueType, "ReadSetBegin", "ReadSetEnd", names, onErr, true)
	case cat.IsMap():
		return e.readMap(protoVar, true_.KeyType, true_.ValueType, names, onErr)
	case cat.IsStruct(), cat.IsUnion(), cat.IsException():
		val := names.Alloc("val")
		stmts := []string{
			fmt.Sprintf("%s, err := %sADAPTER.read(ctx, %s)", val, true_.Name, protoVar),
			fmt.Sprintf("if err != nil { %s }", onErr),
		}
		return stmts, val, nil
	default:
		return nil, "", fmt.Errorf("reader: unsupported category %s", cat.String())
	}
}

func (e *Emitter) readScalar(protoVar, method string, names NameAllocator, onErr string) ([]string, string, error) {
	v := names.Alloc("val")
	return []string{
		fmt.Sprintf("%s, err := %s.%s(ctx)", v, protoVar, method),
		fmt.Sprintf("if err != nil { %s }", onErr),
	}, v, nil
}

// readScalarPtr is readScalar's counterpart for the boxed builtins
// (§4.1's pointer surface types): it reads the raw value and takes its
// address so the result matches the pointer-typed field/setter it feeds.
func (e *Emitter) readScalarPtr(protoVar, method string, names NameAllocator, onErr string) ([]string, string, error) {
	raw := names.Alloc("raw")
	v := names.Alloc("val")
	return []string{
		fmt.Sprintf("%s, err := %s.%s(ctx)", raw, protoVar, method),
		fmt.Sprintf("if err != nil { %s }", onErr),
		fmt.Sprintf("%s := &%s", v, raw),
	}, v, nil
}

func (e *Emitter) readContainer(protoVar string, elemType *parser.Type, begin, end string, names NameAllocator, onErr string, isSet bool) ([]string, string, error) {
	size := names.Alloc("size")
	items := names.Alloc("items")

	stmts := []string{
		fmt.Sprintf("_, %s, err := %s.%s(ctx)", size, protoVar, begin),
		fmt.Sprintf("if err != nil { %s }", onErr),
	}

	elemGoType, err := e.res.SurfaceTypeOf(elemType)
	if err != nil {
		return nil, "", err
	}
	if isSet {
		stmts = append(stmts, fmt.Sprintf("%s := %s(%s, %s)", items, "make", e.res.SetOf(elemGoType), size))
	} else {
		stmts = append(stmts, fmt.Sprintf("%s := make(%s, 0, %s)", items, e.res.ListOf(elemGoType), size))
	}

	elemStmts, elemVar, err := e.readValue(protoVar, elemType, names, onErr)
	if err != nil {
		return nil, "", err
	}

	stmts = append(stmts, fmt.Sprintf("for i := 0; i < %s; i++ {", size))
	stmts = append(stmts, elemStmts...)
	if isSet {
		stmts = append(stmts, fmt.Sprintf("%s[%s] = struct{}{}", items, elemVar))
	} else {
		stmts = append(stmts, fmt.Sprintf("%s = append(%s, %s)", items, items, elemVar))
	}
	stmts = append(stmts, "}")
	stmts = append(stmts, fmt.Sprintf("if err := %s.%s(ctx); err != nil { %s }", protoVar, end, onErr))

	result := names.Alloc("view")
	ctor := "runtime.NewList"
	if isSet {
		ctor = "runtime.NewSet"
	}
	stmts = append(stmts, fmt.Sprintf("%s := %s(%s)", result, ctor, items))
	return stmts, result, nil
}

func (e *Emitter) readMap(protoVar string, keyType, valType *parser.Type, names NameAllocator, onErr string) ([]string, string, error) {
	size := names.Alloc("size")
	entries := names.Alloc("entries")

	keyGoType, err := e.res.SurfaceTypeOf(keyType)
	if err != nil {
		return nil, "", err
	}
	valGoType, err := e.res.SurfaceTypeOf(valType)
	if err != nil {
		return nil, "", err
	}

	stmts := []string{
		fmt.Sprintf("_, _, %s, err := %s.ReadMapBegin(ctx)", size, protoVar),
		fmt.Sprintf("if err != nil { %s }", onErr),
		fmt.Sprintf("%s := make(%s, %s)", entries, e.res.MapOf(keyGoType, valGoType), size),
		fmt.Sprintf("for i := 0; i < %s; i++ {", size),
	}

	kStmts, kVar, err := e.readValue(protoVar, keyType, names, onErr)
	if err != nil {
		return nil, "", err
	}
	vStmts, vVar, err := e.readValue(protoVar, valType, names, onErr)
	if err != nil {
		return nil, "", err
	}
	stmts = append(stmts, kStmts...)
	stmts = append(stmts, vStmts...)
	stmts = append(stmts, fmt.Sprintf("%s[%s] = %s", entries, kVar, vVar))
	stmts = append(stmts, "}")
	stmts = append(stmts, fmt.Sprintf("if err := %s.ReadMapEnd(ctx); err != nil { %s }", protoVar, onErr))

	result := names.Alloc("view")
	stmts = append(stmts, fmt.Sprintf("%s := runtime.NewMap(%s)", result, entries))
	return stmts, result, nil
}
