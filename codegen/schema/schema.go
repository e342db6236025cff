// Package schema adapts a resolved Thrift AST into the read-only shape the
// rest of the generator needs (§3: "Input, consumed not defined here").
//
// The AST itself is *parser.Thrift from github.com/cloudwego/thriftgo —
// the same package the gateway reference implementation (internal/proxy
// /protocol/thrift in the corpus) uses to drive a runtime Thrift codec.
// Parsing the IDL and resolving symbols (filling in every Type.Category)
// is the external collaborator's job; this package assumes both are
// already done and only adds the iteration order and classification
// helpers §4.8's Orchestrator needs.
package schema

import (
	"fmt"
	"sort"

	"github.com/cloudwego/thriftgo/parser"
)

// categoryStruct, categoryUnion and categoryException are the three string
// tags parser.StructLike.Category carries (set by the parser, not by us).
const (
	categoryStruct    = "struct"
	categoryUnion     = "union"
	categoryException = "exception"
)

// Schema wraps a resolved Thrift AST and exposes it in the fixed
// enums-then-structs-then-exceptions-then-unions-then-constants order
// §4.8 requires.
type Schema struct {
	AST *parser.Thrift

	typedefs map[string]*parser.Type
}

// New wraps an already-parsed, already-resolved Thrift AST.
func New(ast *parser.Thrift) (*Schema, error) {
	if ast == nil {
		return nil, fmt.Errorf("schema: nil AST")
	}
	s := &Schema{AST: ast, typedefs: make(map[string]*parser.Type, len(ast.Typedefs))}
	for _, td := range ast.Typedefs {
		s.typedefs[td.Alias] = td.Type
	}
	return s, nil
}

// Enums returns declared enums, sorted by name for determinism.
func (s *Schema) Enums() []*parser.Enum {
	out := append([]*parser.Enum(nil), s.AST.Enums...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Structs returns plain (non-union, non-exception) struct declarations,
// sorted by name.
func (s *Schema) Structs() []*parser.StructLike {
	return sortedStructs(s.AST.Structs)
}

// Exceptions returns exception declarations, sorted by name.
func (s *Schema) Exceptions() []*parser.StructLike {
	return sortedStructs(s.AST.Exceptions)
}

// Unions returns union declarations, sorted by name.
func (s *Schema) Unions() []*parser.StructLike {
	return sortedStructs(s.AST.Unions)
}

// Constants returns declared IDL constants, sorted by name.
func (s *Schema) Constants() []*parser.Constant {
	out := append([]*parser.Constant(nil), s.AST.Constants...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func sortedStructs(in []*parser.StructLike) []*parser.StructLike {
	out := append([]*parser.StructLike(nil), in...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// IsUnion reports whether a StructLike was declared as a Thrift union.
func IsUnion(s *parser.StructLike) bool { return s.Category == categoryUnion }

// IsException reports whether a StructLike was declared as a Thrift exception.
func IsException(s *parser.StructLike) bool { return s.Category == categoryException }

// FindEnum looks up an enum by name across the schema. Returns nil if absent.
func (s *Schema) FindEnum(name string) *parser.Enum {
	for _, e := range s.AST.Enums {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// TrueType follows a typedef chain to the underlying Thrift type, per the
// "true type" glossary entry and §3's acyclic-typedef invariant. A typedef
// name the schema can't resolve is returned as-is — the generator does not
// re-validate what the external linker already guaranteed.
func (s *Schema) TrueType(t *parser.Type) *parser.Type {
	seen := make(map[string]bool)
	for t != nil && t.Category.IsTypedef() {
		if seen[t.Name] {
			break // acyclic per §3; guard anyway rather than infinite-loop on a bad input
		}
		seen[t.Name] = true
		underlying, ok := s.typedefs[t.Name]
		if !ok {
			break
		}
		t = underlying
	}
	return t
}
