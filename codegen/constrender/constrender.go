// Package constrender implements ConstRenderer (§4.2): turning a parsed
// Thrift constant value into Go source, either as a single expression or,
// for collections, as a short statement block that builds and assigns a
// named variable.
package constrender

import (
	"fmt"
	"strconv"

	"github.com/cloudwego/thriftgo/parser"

	"github.com/thriftygo/thriftygo/codegen/resolver"
)

// EnumLookup resolves an enum member either by numeric id or by name,
// returning its Go constant identifier. Supplied by whatever already
// indexes the schema's enums, so this package stays free of schema
// iteration concerns.
type EnumLookup interface {
	MemberByValue(enumName string, value int64) (string, bool)
	MemberByName(enumName string, name string) (string, bool)
}

// Renderer implements ConstRenderer against one resolver and one enum index.
type Renderer struct {
	res   *resolver.Resolver
	enums EnumLookup
}

func New(res *resolver.Resolver, enums EnumLookup) *Renderer {
	return &Renderer{res: res, enums: enums}
}

// RenderExpr implements expression mode: a constant that fits in a single
// Go expression. Scalars get an explicit cast for the narrower numeric
// types, strings are quoted and escaped by strconv, booleans normalize
// both identifier and integer spellings, and enum members resolve by id
// when the value is an integer and by name when it is an identifier
// (§4.2 tie-break); there is no fallback from one lookup to the other.
func (r *Renderer) RenderExpr(t *parser.Type, v *parser.ConstValue) (string, error) {
	true_ := r.res.TrueType(t)
	cat := true_.Category

	switch {
	case cat.IsVoid():
		return "", fmt.Errorf("constrender: void has no constant expression")
	case cat.IsBool():
		return r.renderBool(v)
	case cat.IsByte():
		n, err := r.intValue(v)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("int8(%d)", n), nil
	case cat.IsI16():
		n, err := r.intValue(v)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("int16(%d)", n), nil
	case cat.IsI32():
		n, err := r.intValue(v)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("int32(%d)", n), nil
	case cat.IsI64():
		n, err := r.intValue(v)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(n, 10), nil
	case cat.IsDouble():
		d, err := r.doubleValue(v)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("float64(%s)", strconv.FormatFloat(d, 'g', -1, 64)), nil
	case cat.IsString():
		lit, err := r.literalValue(v)
		if err != nil {
			return "", err
		}
		return strconv.Quote(lit), nil
	case cat.IsBinary():
		return "", fmt.Errorf("constrender: binary literals are not supported")
	case cat.IsEnum():
		return r.renderEnumMember(true_.Name, v)
	case cat.IsList(), cat.IsSet(), cat.IsMap():
		return "", fmt.Errorf("constrender: %s constant requires statement mode", cat.String())
	case cat.IsStruct(), cat.IsUnion(), cat.IsException():
		return "", fmt.Errorf("constrender: struct-typed constant defaults are not supported")
	default:
		return "", fmt.Errorf("constrender: unsupported category %s", cat.String())
	}
}

// Stmt is one line of rendered Go source, already indented by the caller's
// emission context.
type Stmt string

// NameAllocator hands out collision-free local identifiers for the
// intermediate variables statement mode needs. Shared across a single
// Constants holder (or struct initializer) so two collection constants
// never clash.
type NameAllocator interface {
	Alloc(hint string) string
}

// RenderInit implements statement mode (§4.2): builds a concrete container
// sized to the element count and assigns it to targetName. Nested
// collections and any element that isn't a scalar or enum are rejected,
// per the version's documented restriction (§9).
func (r *Renderer) RenderInit(targetName string, t *parser.Type, v *parser.ConstValue, names NameAllocator) ([]Stmt, error) {
	true_ := r.res.TrueType(t)
	cat := true_.Category

	switch {
	case cat.IsList(), cat.IsSet():
		elems, err := r.listElements(v)
		if err != nil {
			return nil, err
		}
		elemType := true_.ValueType
		if err := r.rejectNested(elemType); err != nil {
			return nil, err
		}
		elemGoType, err := r.res.SurfaceTypeOf(elemType)
		if err != nil {
			return nil, err
		}
		raw := names.Alloc(targetName + "Items")
		concrete := r.res.ListOf(elemGoType)
		if cat.IsSet() {
			concrete = r.res.SetOf(elemGoType)
		}
		stmts := []Stmt{Stmt(fmt.Sprintf("%s := make(%s, 0, %d)", raw, concrete, len(elems)))}
		for _, ev := range elems {
			expr, err := r.RenderExpr(elemType, ev)
			if err != nil {
				return nil, err
			}
			if cat.IsSet() {
				stmts = append(stmts, Stmt(fmt.Sprintf("%s[%s] = struct{}{}", raw, expr)))
			} else {
				stmts = append(stmts, Stmt(fmt.Sprintf("%s = append(%s, %s)", raw, raw, expr)))
			}
		}
		ctor := "runtime.NewList"
		if cat.IsSet() {
			ctor = "runtime.NewSet"
		}
		stmts = append(stmts, Stmt(fmt.Sprintf("%s = %s(%s)", targetName, ctor, raw)))
		return stmts, nil

	case cat.IsMap():
		pairs, err := r.mapEntries(v)
		if err != nil {
			return nil, err
		}
		if err := r.rejectNested(true_.KeyType); err != nil {
			return nil, err
		}
		if err := r.rejectNested(true_.ValueType); err != nil {
			return nil, err
		}
		keyGoType, err := r.res.SurfaceTypeOf(true_.KeyType)
		if err != nil {
			return nil, err
		}
		valGoType, err := r.res.SurfaceTypeOf(true_.ValueType)
		if err != nil {
			return nil, err
		}
		raw := names.Alloc(targetName + "Entries")
		stmts := []Stmt{Stmt(fmt.Sprintf("%s := make(%s, %d)", raw, r.res.MapOf(keyGoType, valGoType), len(pairs)))}
		for _, kv := range pairs {
			kExpr, err := r.RenderExpr(true_.KeyType, kv.Key)
			if err != nil {
				return nil, err
			}
			vExpr, err := r.RenderExpr(true_.ValueType, kv.Value)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, Stmt(fmt.Sprintf("%s[%s] = %s", raw, kExpr, vExpr)))
		}
		stmts = append(stmts, Stmt(fmt.Sprintf("%s = runtime.NewMap(%s)", targetName, raw)))
		return stmts, nil

	default:
		expr, err := r.RenderExpr(t, v)
		if err != nil {
			return nil, err
		}
		return []Stmt{Stmt(fmt.Sprintf("%s = %s", targetName, expr))}, nil
	}
}

func (r *Renderer) rejectNested(elem *parser.Type) error {
	true_ := r.res.TrueType(elem)
	cat := true_.Category
	if cat.IsList() || cat.IsSet() || cat.IsMap() {
		return fmt.Errorf("constrender: nested %s constants are not supported", cat.String())
	}
	if cat.IsStruct() || cat.IsUnion() || cat.IsException() {
		return fmt.Errorf("constrender: struct-typed collection elements are not supported in constants")
	}
	return nil
}

func (r *Renderer) renderBool(v *parser.ConstValue) (string, error) {
	switch v.Type {
	case parser.ConstType_ConstInt:
		return strconv.FormatBool(*v.TypedValue.Int != 0), nil
	case parser.ConstType_ConstIdentifier:
		id := *v.TypedValue.Identifier
		switch id {
		case "true":
			return "true", nil
		case "false":
			return "false", nil
		default:
			return "", fmt.Errorf("constrender: %q is not a boolean literal", id)
		}
	default:
		return "", fmt.Errorf("constrender: invalid value kind for bool constant")
	}
}

func (r *Renderer) renderEnumMember(enumName string, v *parser.ConstValue) (string, error) {
	switch v.Type {
	case parser.ConstType_ConstInt:
		n := *v.TypedValue.Int
		member, ok := r.enums.MemberByValue(enumName, n)
		if !ok {
			return "", fmt.Errorf("constrender: %s has no member with value %d", enumName, n)
		}
		return member, nil
	case parser.ConstType_ConstIdentifier:
		name := *v.TypedValue.Identifier
		member, ok := r.enums.MemberByName(enumName, name)
		if !ok {
			return "", fmt.Errorf("constrender: %s has no member named %q", enumName, name)
		}
		return member, nil
	default:
		return "", fmt.Errorf("constrender: invalid value kind for enum constant")
	}
}

func (r *Renderer) intValue(v *parser.ConstValue) (int64, error) {
	if v.Type != parser.ConstType_ConstInt {
		return 0, fmt.Errorf("constrender: invalid value kind for integer constant")
	}
	return *v.TypedValue.Int, nil
}

func (r *Renderer) doubleValue(v *parser.ConstValue) (float64, error) {
	switch v.Type {
	case parser.ConstType_ConstDouble:
		return *v.TypedValue.Double, nil
	case parser.ConstType_ConstInt:
		return float64(*v.TypedValue.Int), nil
	default:
		return 0, fmt.Errorf("constrender: invalid value kind for double constant")
	}
}

func (r *Renderer) literalValue(v *parser.ConstValue) (string, error) {
	if v.Type != parser.ConstType_ConstLiteral {
		return "", fmt.Errorf("constrender: invalid value kind for string constant")
	}
	return *v.TypedValue.Literal, nil
}

func (r *Renderer) listElements(v *parser.ConstValue) ([]*parser.ConstValue, error) {
	if v.Type != parser.ConstType_ConstList {
		return nil, fmt.Errorf("constrender: invalid value kind for list/set constant")
	}
	return v.TypedValue.List, nil
}

func (r *Renderer) mapEntries(v *parser.ConstValue) ([]*parser.MapConstValue, error) {
	if v.Type != parser.ConstType_ConstMap {
		return nil, fmt.Errorf("constrender: invalid value kind for map constant")
	}
	return v.TypedValue.Map, nil
}
