// Package structgen implements StructEmitter (§4.5): the value type,
// Builder and Adapter trio for one Thrift struct, union or exception.
package structgen

import (
	"fmt"
	"strings"

	"github.com/cloudwego/thriftgo/parser"

	"github.com/thriftygo/thriftygo/codegen/constrender"
	"github.com/thriftygo/thriftygo/codegen/ident"
	"github.com/thriftygo/thriftygo/codegen/reader"
	"github.com/thriftygo/thriftygo/codegen/resolver"
	"github.com/thriftygo/thriftygo/codegen/schema"
	"github.com/thriftygo/thriftygo/codegen/writer"
)

// Emitter implements StructEmitter, composing TypeResolver, ConstRenderer,
// WriterEmitter and ReaderEmitter the way §4.5 describes.
type Emitter struct {
	res    *resolver.Resolver
	consts *constrender.Renderer
	w      *writer.Emitter
	rd     *reader.Emitter
}

func New(res *resolver.Resolver, consts *constrender.Renderer, w *writer.Emitter, rd *reader.Emitter) *Emitter {
	return &Emitter{res: res, consts: consts, w: w, rd: rd}
}

// Unit is one struct's complete rendered Go source.
type Unit struct {
	Source string
}

type fieldPlan struct {
	field      *parser.Field
	goName     string
	surfaceGo  string // field type as it appears on the value type
	builderGo  string // field type as it appears on the Builder (raw container for collections)
	isPointer  bool   // true for the boxed builtins and enum/struct references
	isBinary   bool
	isList     bool
	isSet      bool
	isMap      bool
	isStruct   bool
}

// Emit renders s as a value type, Builder and Adapter (§4.5).
func (g *Emitter) Emit(s *parser.StructLike) (Unit, error) {
	isUnion := schema.IsUnion(s)
	isException := schema.IsException(s)

	plans, err := g.plan(s)
	if err != nil {
		return Unit{}, err
	}

	var b strings.Builder
	g.emitValueType(&b, s, plans, isException)
	if err := g.emitEquality(&b, s, plans); err != nil {
		return Unit{}, err
	}
	if err := g.emitHash(&b, s, plans); err != nil {
		return Unit{}, err
	}
	g.emitString(&b, s, plans)
	if isException {
		fmt.Fprintf(&b, "func (v *%s) Error() string { return v.String() }\n\n", s.Name)
	}
	g.emitBuilder(&b, s, plans, isUnion)
	if err := g.emitAdapter(&b, s, plans); err != nil {
		return Unit{}, err
	}

	return Unit{Source: b.String()}, nil
}

func (g *Emitter) plan(s *parser.StructLike) ([]fieldPlan, error) {
	plans := make([]fieldPlan, 0, len(s.Fields))
	for _, f := range s.Fields {
		surface, err := g.res.SurfaceTypeOf(f.Type)
		if err != nil {
			return nil, fmt.Errorf("struct %s field %s: %w", s.Name, f.Name, err)
		}
		true_ := g.res.TrueType(f.Type)
		cat := true_.Category

		p := fieldPlan{
			field:     f,
			goName:    ident.Exported(f.Name),
			surfaceGo: surface,
			builderGo: surface,
			isPointer: cat.IsBool() || cat.IsByte() || cat.IsI16() || cat.IsI32() || cat.IsI64() ||
				cat.IsDouble() || cat.IsString() || cat.IsEnum() || cat.IsStruct() || cat.IsUnion() || cat.IsException(),
			isBinary: cat.IsBinary(),
			isList:   cat.IsList(),
			isSet:    cat.IsSet(),
			isMap:    cat.IsMap(),
			isStruct: cat.IsStruct() || cat.IsUnion() || cat.IsException(),
		}

		switch {
		case p.isList:
			elemGo, err := g.res.SurfaceTypeOf(true_.ValueType)
			if err != nil {
				return nil, err
			}
			p.builderGo = g.res.ListOf(elemGo)
		case p.isSet:
			elemGo, err := g.res.SurfaceTypeOf(true_.ValueType)
			if err != nil {
				return nil, err
			}
			p.builderGo = g.res.SetOf(elemGo)
		case p.isMap:
			keyGo, err := g.res.SurfaceTypeOf(true_.KeyType)
			if err != nil {
				return nil, err
			}
			valGo, err := g.res.SurfaceTypeOf(true_.ValueType)
			if err != nil {
				return nil, err
			}
			p.builderGo = g.res.MapOf(keyGo, valGo)
		}

		plans = append(plans, p)
	}
	return plans, nil
}

func (g *Emitter) emitValueType(b *strings.Builder, s *parser.StructLike, plans []fieldPlan, isException bool) {
	fmt.Fprintf(b, "type %s struct {\n", s.Name)
	if isException {
		b.WriteString("\truntime.BaseException\n")
	}
	for _, p := range plans {
		fmt.Fprintf(b, "\t%s %s\n", p.goName, p.surfaceGo)
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "func new%s(b *%sBuilder) *%s {\n", s.Name, s.Name, s.Name)
	fmt.Fprintf(b, "\treturn &%s{\n", s.Name)
	for _, p := range plans {
		switch {
		case p.isList:
			fmt.Fprintf(b, "\t\t%s: runtime.NewList(b.%s),\n", p.goName, unexported(p.goName))
		case p.isSet:
			fmt.Fprintf(b, "\t\t%s: runtime.NewSet(b.%s),\n", p.goName, unexported(p.goName))
		case p.isMap:
			fmt.Fprintf(b, "\t\t%s: runtime.NewMap(b.%s),\n", p.goName, unexported(p.goName))
		default:
			fmt.Fprintf(b, "\t\t%s: b.%s,\n", p.goName, unexported(p.goName))
		}
	}
	b.WriteString("\t}\n}\n\n")
}

func (g *Emitter) emitEquality(b *strings.Builder, s *parser.StructLike, plans []fieldPlan) error {
	fmt.Fprintf(b, "func (v *%s) Equal(other *%s) bool {\n", s.Name, s.Name)
	b.WriteString("\tif v == other {\n\t\treturn true\n\t}\n")
	b.WriteString("\tif v == nil || other == nil {\n\t\treturn false\n\t}\n")
	for _, p := range plans {
		switch {
		case p.isList, p.isSet, p.isMap:
			fmt.Fprintf(b, "\tif !v.%s.Equal(other.%s) {\n\t\treturn false\n\t}\n", p.goName, p.goName)
		case p.isBinary:
			fmt.Fprintf(b, "\tif !bytes.Equal(v.%s, other.%s) {\n\t\treturn false\n\t}\n", p.goName, p.goName)
		case p.isStruct:
			fmt.Fprintf(b, "\tif (v.%s == nil) != (other.%s == nil) {\n\t\treturn false\n\t}\n", p.goName, p.goName)
			fmt.Fprintf(b, "\tif v.%s != nil && !v.%s.Equal(other.%s) {\n\t\treturn false\n\t}\n", p.goName, p.goName, p.goName)
		case p.isPointer:
			fmt.Fprintf(b, "\tif (v.%s == nil) != (other.%s == nil) {\n\t\treturn false\n\t}\n", p.goName, p.goName)
			fmt.Fprintf(b, "\tif v.%s != nil && *v.%s != *other.%s {\n\t\treturn false\n\t}\n", p.goName, p.goName, p.goName)
		}
	}
	b.WriteString("\treturn true\n}\n\n")
	return nil
}

func (g *Emitter) emitHash(b *strings.Builder, s *parser.StructLike, plans []fieldPlan) error {
	fmt.Fprintf(b, "func (v *%s) Hash() int32 {\n", s.Name)
	b.WriteString("\th := runtime.NewHash()\n")
	for _, p := range plans {
		expr, ok := hashExprForScalar(p)
		switch {
		case p.isStruct:
			fmt.Fprintf(b, "\tif v.%s != nil {\n\t\th = runtime.CombineHash(h, v.%s.Hash())\n\t} else {\n\t\th = runtime.CombineHash(h, 0)\n\t}\n", p.goName, p.goName)
		case p.isBinary:
			fmt.Fprintf(b, "\th = runtime.CombineHash(h, runtime.BinaryHash(v.%s))\n", p.goName)
		case p.isList:
			fmt.Fprintf(b, "\th = runtime.CombineHash(h, v.%s.HashWith(func(e %s) int32 { return %s }))\n",
				p.goName, elemGoType(p), elemHashExpr(p, "e"))
		case p.isSet:
			fmt.Fprintf(b, "\th = runtime.CombineHash(h, v.%s.HashWith(func(e %s) int32 { return %s }))\n",
				p.goName, elemGoType(p), elemHashExpr(p, "e"))
		case p.isMap:
			keyGo, valGo := mapElemGoTypes(p)
			fmt.Fprintf(b, "\th = runtime.CombineHash(h, v.%s.HashWith(func(k %s) int32 { return %s }, func(e %s) int32 { return %s }))\n",
				p.goName, keyGo, elemHashExpr(fieldPlan{surfaceGo: "runtime.List[" + keyGo + "]"}, "k"),
				valGo, elemHashExpr(fieldPlan{surfaceGo: "runtime.List[" + valGo + "]"}, "e"))
		case p.isPointer && ok:
			fmt.Fprintf(b, "\tif v.%s != nil {\n\t\th = runtime.CombineHash(h, %s)\n\t} else {\n\t\th = runtime.CombineHash(h, 0)\n\t}\n", p.goName, fmt.Sprintf(expr, "*v."+p.goName))
		}
	}
	b.WriteString("\treturn h\n}\n\n")
	return nil
}

// hashExprForScalar returns a %s-templated expression converting a
// dereferenced scalar/enum field to its int32 hash contribution.
func hashExprForScalar(p fieldPlan) (string, bool) {
	switch p.surfaceGo {
	case "*bool":
		return "runtime.BoolHash(%s)", true
	case "*int8", "*int16", "*int32":
		return "int32(%s)", true
	case "*int64":
		return "runtime.Int64Hash(%s)", true
	case "*float64":
		return "runtime.DoubleHash(%s)", true
	case "*string":
		return "runtime.StringHash(%s)", true
	default:
		if p.field.Type != nil {
			return "int32((%s).Code())", true
		}
		return "", false
	}
}

func elemGoType(p fieldPlan) string {
	inner := strings.TrimPrefix(p.surfaceGo, "runtime.List[")
	inner = strings.TrimPrefix(inner, "runtime.Set[")
	inner = strings.TrimSuffix(inner, "]")
	return inner
}

// mapElemGoTypes splits a "runtime.Map[K, V]" surface type back into its
// key and value Go type expressions.
func mapElemGoTypes(p fieldPlan) (string, string) {
	inner := strings.TrimPrefix(p.surfaceGo, "runtime.Map[")
	inner = strings.TrimSuffix(inner, "]")
	parts := strings.SplitN(inner, ", ", 2)
	if len(parts) != 2 {
		return "interface{}", "interface{}"
	}
	return parts[0], parts[1]
}

func elemHashExpr(p fieldPlan, varName string) string {
	elem := elemGoType(p)
	switch elem {
	case "*bool":
		return fmt.Sprintf("runtime.BoolHash(*%s)", varName)
	case "*int8", "*int16", "*int32":
		return fmt.Sprintf("int32(*%s)", varName)
	case "*int64":
		return fmt.Sprintf("runtime.Int64Hash(*%s)", varName)
	case "*float64":
		return fmt.Sprintf("runtime.DoubleHash(*%s)", varName)
	case "*string":
		return fmt.Sprintf("runtime.StringHash(*%s)", varName)
	case "[]byte":
		return fmt.Sprintf("runtime.BinaryHash(%s)", varName)
	default:
		return fmt.Sprintf("(%s).Hash()", varName)
	}
}

func (g *Emitter) emitString(b *strings.Builder, s *parser.StructLike, plans []fieldPlan) {
	fmt.Fprintf(b, "func (v *%s) String() string {\n", s.Name)
	if len(plans) == 0 {
		fmt.Fprintf(b, "\treturn %q\n}\n\n", s.Name+"{}")
		return
	}
	b.WriteString("\tvar b strings.Builder\n")
	fmt.Fprintf(b, "\tb.WriteString(%q)\n", s.Name+"{\n")
	for _, p := range plans {
		fmt.Fprintf(b, "\tb.WriteString(%q)\n", "  "+p.field.Name+"=")
		switch {
		case p.isBinary:
			fmt.Fprintf(b, "\tif v.%s == nil {\n\t\tb.WriteString(\"null\")\n\t} else {\n\t\tfmt.Fprintf(&b, \"%%v\", v.%s)\n\t}\n", p.goName, p.goName)
		case p.isPointer:
			fmt.Fprintf(b, "\tif v.%s == nil {\n\t\tb.WriteString(\"null\")\n\t} else {\n\t\tfmt.Fprintf(&b, \"%%v\", *v.%s)\n\t}\n", p.goName, p.goName)
		default:
			fmt.Fprintf(b, "\tfmt.Fprintf(&b, \"%%v\", v.%s)\n", p.goName)
		}
		b.WriteString("\tb.WriteString(\",\\n\")\n")
	}
	b.WriteString("\tb.WriteString(\"}\")\n")
	b.WriteString("\treturn b.String()\n}\n\n")
}

func (g *Emitter) emitBuilder(b *strings.Builder, s *parser.StructLike, plans []fieldPlan, isUnion bool) {
	builderName := s.Name + "Builder"

	fmt.Fprintf(b, "type %s struct {\n", builderName)
	for _, p := range plans {
		fmt.Fprintf(b, "\t%s %s\n", unexported(p.goName), p.builderGo)
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "func New%s() *%s {\n\tb := &%s{}\n\tb.reset()\n\treturn b\n}\n\n", builderName, builderName, builderName)

	fmt.Fprintf(b, "func %sFrom(v *%s) *%s {\n", unexported(builderName), s.Name, builderName)
	fmt.Fprintf(b, "\tb := &%s{}\n", builderName)
	for _, p := range plans {
		switch {
		case p.isList:
			fmt.Fprintf(b, "\tb.%s = v.%s.Slice()\n", unexported(p.goName), p.goName)
		case p.isSet:
			fmt.Fprintf(b, "\tb.%s = v.%s.Items()\n", unexported(p.goName), p.goName)
		case p.isMap:
			fmt.Fprintf(b, "\tb.%s = v.%s.Entries()\n", unexported(p.goName), p.goName)
		default:
			fmt.Fprintf(b, "\tb.%s = v.%s\n", unexported(p.goName), p.goName)
		}
	}
	b.WriteString("\treturn b\n}\n\n")

	for _, p := range plans {
		fmt.Fprintf(b, "func (b *%s) Set%s(val %s) *%s {\n", builderName, p.goName, p.builderGo, builderName)
		if isRequired(p.field) && p.isPointer {
			fmt.Fprintf(b, "\tif val == nil {\n\t\tpanic(%q)\n\t}\n", fmt.Sprintf("%s: %s is required and must not be nil", s.Name, p.field.Name))
		}
		fmt.Fprintf(b, "\tb.%s = val\n\treturn b\n}\n\n", unexported(p.goName))
	}

	fmt.Fprintf(b, "func (b *%s) reset() {\n", builderName)
	for _, p := range plans {
		if p.field.Default != nil && !p.isList && !p.isSet && !p.isMap {
			expr, err := g.consts.RenderExpr(p.field.Type, p.field.Default)
			if err == nil {
				if p.isPointer {
					tmp := unexported(p.goName) + "Default"
					fmt.Fprintf(b, "\t%s := %s\n\tb.%s = &%s\n", tmp, expr, unexported(p.goName), tmp)
					continue
				}
				fmt.Fprintf(b, "\tb.%s = %s\n", unexported(p.goName), expr)
				continue
			}
		}
		fmt.Fprintf(b, "\tb.%s = %s\n", unexported(p.goName), zeroValue(p.builderGo))
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "func (b *%s) build() (*%s, error) {\n", builderName, s.Name)
	if isUnion {
		b.WriteString("\tset := 0\n")
		for _, p := range plans {
			fmt.Fprintf(b, "\tif b.%s != nil {\n\t\tset++\n\t}\n", unexported(p.goName))
		}
		fmt.Fprintf(b, "\tif set != 1 {\n\t\treturn nil, runtime.UnionArityError(%q, set)\n\t}\n", s.Name)
	} else {
		for _, p := range plans {
			if isRequired(p.field) {
				if p.isPointer {
					fmt.Fprintf(b, "\tif b.%s == nil {\n\t\treturn nil, runtime.FieldRequiredError(%q, %q)\n\t}\n", unexported(p.goName), s.Name, p.field.Name)
				} else if p.isBinary {
					fmt.Fprintf(b, "\tif b.%s == nil {\n\t\treturn nil, runtime.FieldRequiredError(%q, %q)\n\t}\n", unexported(p.goName), s.Name, p.field.Name)
				}
			}
		}
	}
	fmt.Fprintf(b, "\treturn new%s(b), nil\n}\n\n", s.Name)
}

func (g *Emitter) emitAdapter(b *strings.Builder, s *parser.StructLike, plans []fieldPlan) error {
	adapterType := unexported(s.Name) + "Adapter"
	fmt.Fprintf(b, "type %s struct{}\n\n", adapterType)
	fmt.Fprintf(b, "var %sADAPTER = %s{}\n\n", s.Name, adapterType)

	fmt.Fprintf(b, "func (%s) Write(ctx context.Context, p thrift.TProtocol, v *%s) error {\n", adapterType, s.Name)
	fmt.Fprintf(b, "\tif err := p.WriteStructBegin(ctx, %q); err != nil {\n\t\treturn err\n\t}\n", s.Name)
	names := ident.NewAllocator()
	for _, p := range plans {
		stmts, err := g.w.FieldStmts("p", "v."+p.goName, p.field, names)
		if err != nil {
			return err
		}
		for _, st := range stmts {
			fmt.Fprintf(b, "\t%s\n", st)
		}
	}
	for _, st := range writer.StructTrailer("p") {
		fmt.Fprintf(b, "\t%s\n", st)
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "func (%s) Read(ctx context.Context, p thrift.TProtocol, b *%sBuilder) (*%s, error) {\n", adapterType, s.Name, s.Name)
	loopStmts, err := g.rd.StructLoopStmts("p", "b", fieldsOf(plans), ident.NewAllocator())
	if err != nil {
		return err
	}
	for _, st := range loopStmts {
		fmt.Fprintf(b, "\t%s\n", st)
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "func (a %s) read(ctx context.Context, p thrift.TProtocol) (*%s, error) {\n", adapterType, s.Name)
	fmt.Fprintf(b, "\treturn a.Read(ctx, p, New%sBuilder())\n}\n\n", s.Name)

	return nil
}

func fieldsOf(plans []fieldPlan) []*parser.Field {
	out := make([]*parser.Field, len(plans))
	for i, p := range plans {
		out[i] = p.field
	}
	return out
}

func isRequired(f *parser.Field) bool {
	return f.Requiredness == parser.FieldType_Required
}

func unexported(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func zeroValue(goType string) string {
	switch {
	case strings.HasPrefix(goType, "*"):
		return "nil"
	case strings.HasPrefix(goType, "[]"):
		return "nil"
	case strings.HasPrefix(goType, "map["):
		return "nil"
	default:
		return goType + "{}"
	}
}
