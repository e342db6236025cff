// Package enumgen implements EnumEmitter (§4.6): one Go source block per
// Thrift enum, following the same switch-over-declared-codes dispatch a
// runtime Thrift codec already uses to validate wire data against an IDL
// enum (categoryToTType-style lookup tables, generalized to a value
// lookup).
package enumgen

import (
	"fmt"
	"strings"

	"github.com/cloudwego/thriftgo/parser"

	"github.com/thriftygo/thriftygo/codegen/ident"
)

// Emitter implements EnumEmitter. It holds no state: every enum is
// self-contained, so unlike structgen there's no resolver dependency.
type Emitter struct{}

func New() *Emitter { return &Emitter{} }

// Unit is the rendered Go source for one enum, plus a parallel index that
// constrender consults (through Registry) when it needs to resolve a
// member by id or name without re-parsing source text.
type Unit struct {
	Source string
	Index  MemberIndex
}

// MemberIndex maps a member's declared value to its Go constant
// identifier, and its declared Thrift name to the same, satisfying
// constrender.EnumLookup for one enum.
type MemberIndex struct {
	ByValue map[int64]string
	ByName  map[string]string
}

// Emit renders enum e as a Go type with one constant per member, a Code
// accessor, and a fromCode lookup (§4.6).
func (g *Emitter) Emit(e *parser.Enum) (Unit, error) {
	if len(e.Values) == 0 {
		return Unit{}, fmt.Errorf("enumgen: %s declares no members", e.Name)
	}

	idx := MemberIndex{ByValue: make(map[int64]string, len(e.Values)), ByName: make(map[string]string, len(e.Values))}
	var b strings.Builder

	fmt.Fprintf(&b, "type %s int32\n\n", e.Name)
	b.WriteString("const (\n")
	for _, v := range e.Values {
		memberName := e.Name + ident.Exported(v.Name)
		idx.ByValue[v.Value] = memberName
		idx.ByName[v.Name] = memberName
		fmt.Fprintf(&b, "\t%s %s = %d\n", memberName, e.Name, v.Value)
	}
	b.WriteString(")\n\n")

	fmt.Fprintf(&b, "func (c %s) Code() int32 { return int32(c) }\n\n", e.Name)

	fmt.Fprintf(&b, "func (c %s) String() string {\n\tswitch c {\n", e.Name)
	for _, v := range e.Values {
		fmt.Fprintf(&b, "\tcase %s:\n\t\treturn %q\n", idx.ByValue[v.Value], v.Name)
	}
	b.WriteString("\tdefault:\n\t\treturn fmt.Sprintf(\"")
	b.WriteString(e.Name)
	b.WriteString("(%d)\", int32(c))\n\t}\n}\n\n")

	fmt.Fprintf(&b, "func %sFromCode(code int32) *%s {\n", e.Name, e.Name)
	b.WriteString("\tswitch " + e.Name + "(code) {\n")
	for _, v := range e.Values {
		fmt.Fprintf(&b, "\tcase %s:\n\t\tv := %s(code)\n\t\treturn &v\n", idx.ByValue[v.Value], e.Name)
	}
	b.WriteString("\tdefault:\n\t\treturn nil\n\t}\n}\n")

	return Unit{Source: b.String(), Index: idx}, nil
}

// Registry aggregates every enum's MemberIndex under its declared name,
// implementing constrender.EnumLookup for a whole schema.
type Registry struct {
	byEnum map[string]MemberIndex
}

func NewRegistry() *Registry {
	return &Registry{byEnum: make(map[string]MemberIndex)}
}

// Add records enumName's index, overwriting any prior entry of the same name.
func (r *Registry) Add(enumName string, idx MemberIndex) {
	r.byEnum[enumName] = idx
}

func (r *Registry) MemberByValue(enumName string, value int64) (string, bool) {
	m, ok := r.byEnum[enumName].ByValue[value]
	return m, ok
}

func (r *Registry) MemberByName(enumName string, name string) (string, bool) {
	m, ok := r.byEnum[enumName].ByName[name]
	return m, ok
}
