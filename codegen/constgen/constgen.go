// Package constgen implements ConstantsEmitter (§4.7): one uninstantiable
// holder per output package, gathering every constant declared for it.
package constgen

import (
	"fmt"
	"strings"

	"github.com/cloudwego/thriftgo/parser"

	"github.com/thriftygo/thriftygo/codegen/constrender"
	"github.com/thriftygo/thriftygo/codegen/ident"
	"github.com/thriftygo/thriftygo/codegen/resolver"
)

// Emitter implements ConstantsEmitter against one resolver/renderer pair.
type Emitter struct {
	res    *resolver.Resolver
	consts *constrender.Renderer
}

func New(res *resolver.Resolver, consts *constrender.Renderer) *Emitter {
	return &Emitter{res: res, consts: consts}
}

// Unit is the rendered Go source for one package's Constants holder.
type Unit struct {
	Source string
}

// Emit renders one "constants" holder type and its single "Constants"
// instance for every Constant in order. Scalar and enum constants are
// inlined into the struct literal; collection constants are zeroed there
// and assigned inside a single init() using ConstRenderer statement mode,
// order preserved (§4.7).
func (g *Emitter) Emit(consts []*parser.Constant) (Unit, error) {
	var inline strings.Builder
	var deferred strings.Builder
	names := ident.NewAllocator()
	hasDeferred := false

	var fields strings.Builder

	for _, c := range consts {
		goName := ident.Exported(c.Name)
		goType, err := g.res.SurfaceTypeOf(c.Type)
		if err != nil {
			return Unit{}, fmt.Errorf("const %s: %w", c.Name, err)
		}
		true_ := g.res.TrueType(c.Type)
		cat := true_.Category

		fmt.Fprintf(&fields, "\t%s %s\n", goName, goType)

		if cat.IsList() || cat.IsSet() || cat.IsMap() {
			hasDeferred = true
			stmts, err := g.consts.RenderInit("Constants."+goName, c.Type, c.Value, names)
			if err != nil {
				return Unit{}, fmt.Errorf("const %s: %w", c.Name, err)
			}
			for _, st := range stmts {
				fmt.Fprintf(&deferred, "\t%s\n", st)
			}
			fmt.Fprintf(&inline, "\t\t%s: %s,\n", goName, zeroLiteral(goType))
			continue
		}

		expr, err := g.consts.RenderExpr(c.Type, c.Value)
		if err != nil {
			return Unit{}, fmt.Errorf("const %s: %w", c.Name, err)
		}
		if strings.HasPrefix(goType, "*") {
			fmt.Fprintf(&inline, "\t\t%s: runtime.Ref(%s),\n", goName, expr)
		} else {
			fmt.Fprintf(&inline, "\t\t%s: %s,\n", goName, expr)
		}
	}

	var b strings.Builder
	b.WriteString("type constants struct {\n")
	b.WriteString(fields.String())
	b.WriteString("}\n\n")
	b.WriteString("var Constants = &constants{\n")
	b.WriteString(inline.String())
	b.WriteString("}\n\n")

	if hasDeferred {
		b.WriteString("func init() {\n")
		b.WriteString(deferred.String())
		b.WriteString("}\n\n")
	}

	return Unit{Source: b.String()}, nil
}

func zeroLiteral(goType string) string {
	switch {
	case strings.HasPrefix(goType, "*"):
		return "nil"
	default:
		return goType + "{}"
	}
}
