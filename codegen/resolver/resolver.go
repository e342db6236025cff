// Package resolver implements TypeResolver (§4.1): mapping a Thrift type
// to the Go surface type expression used in emitted fields, builders and
// constant initializers.
package resolver

import (
	"fmt"

	"github.com/cloudwego/thriftgo/parser"

	"github.com/thriftygo/thriftygo/codegen/schema"
	"github.com/thriftygo/thriftygo/codegen/wiretype"
)

// Config holds the three configurable container implementations (§6:
// listClass/setClass/mapClass), defaulting to Go's conventional
// dynamic-array, hash-set and hash-map. Each template takes one "%s" per
// type parameter it needs.
type Config struct {
	// ListClass is the concrete list allocation template, e.g. "[]%s".
	ListClass string
	// SetClass is the concrete set allocation template, e.g. "map[%s]struct{}".
	SetClass string
	// MapClass is the concrete map allocation template, e.g. "map[%s]%s".
	MapClass string
}

// DefaultConfig returns Go's conventional container implementations.
func DefaultConfig() Config {
	return Config{
		ListClass: "[]%s",
		SetClass:  "map[%s]struct{}",
		MapClass:  "map[%s]%s",
	}
}

// Resolver resolves Thrift types to Go TypeExpressions for one package's
// worth of emission, using sch to unwrap typedefs and look up named types.
type Resolver struct {
	sch    *schema.Schema
	cfg    Config
	goPkg  string // this schema's own output package, for same-package reference elision
}

// New creates a Resolver. If cfg is the zero Config, DefaultConfig is used.
func New(sch *schema.Schema, goPkg string, cfg Config) (*Resolver, error) {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	if cfg.ListClass == "" || cfg.SetClass == "" || cfg.MapClass == "" {
		return nil, fmt.Errorf("resolver: listClass/setClass/mapClass must all be non-empty")
	}
	return &Resolver{sch: sch, cfg: cfg, goPkg: goPkg}, nil
}

// SurfaceTypeOf recursively resolves a field's declared type to the Go
// surface type, unwrapping typedefs to their true underlying type.
// Builtins resolve to pointer types so nullability expresses optionality
// uniformly, the same trick the distilled source's boxed-reference
// builtins play in a surface where every scalar is already a reference.
// Resolving void is an InternalInvariant violation (§4.1).
func (r *Resolver) SurfaceTypeOf(t *parser.Type) (string, error) {
	true_ := r.sch.TrueType(t)
	cat := true_.Category

	switch {
	case cat.IsVoid():
		return "", fmt.Errorf("resolver: void is not a valid field type")
	case cat.IsBool():
		return "*bool", nil
	case cat.IsByte():
		return "*int8", nil
	case cat.IsI16():
		return "*int16", nil
	case cat.IsI32():
		return "*int32", nil
	case cat.IsI64():
		return "*int64", nil
	case cat.IsDouble():
		return "*float64", nil
	case cat.IsString():
		return "*string", nil
	case cat.IsBinary():
		return "[]byte", nil
	case cat.IsEnum():
		return "*" + r.namedType(true_.Name), nil
	case cat.IsList():
		elem, err := r.SurfaceTypeOf(true_.ValueType)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("runtime.List[%s]", elem), nil
	case cat.IsSet():
		elem, err := r.SurfaceTypeOf(true_.ValueType)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("runtime.Set[%s]", elem), nil
	case cat.IsMap():
		key, err := r.SurfaceTypeOf(true_.KeyType)
		if err != nil {
			return "", err
		}
		val, err := r.SurfaceTypeOf(true_.ValueType)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("runtime.Map[%s, %s]", key, val), nil
	case cat.IsStruct(), cat.IsUnion(), cat.IsException():
		return "*" + r.namedType(true_.Name), nil
	default:
		return "", fmt.Errorf("resolver: unsupported category %s", cat.String())
	}
}

// TrueType unwraps t through any typedefs, for callers (ConstRenderer,
// WriterEmitter, ReaderEmitter) that need the underlying category without
// going through SurfaceTypeOf's Go-type-string projection.
func (r *Resolver) TrueType(t *parser.Type) *parser.Type {
	return r.sch.TrueType(t)
}

// namedType returns how to reference a user-defined type from this
// schema's own output package: unqualified, since §2's Orchestrator
// emits one compilation unit per package and cross-package Thrift
// includes are resolved by the external linker before the generator
// ever sees the schema.
func (r *Resolver) namedType(name string) string {
	return name
}

// ListOf, SetOf and MapOf produce the concrete implementation type used
// in an initializer allocation (ConstRenderer's statement mode, §4.2),
// as opposed to the abstract runtime.List/Set/Map view SurfaceTypeOf
// returns for struct fields.
func (r *Resolver) ListOf(elem string) string { return fmt.Sprintf(r.cfg.ListClass, elem) }
func (r *Resolver) SetOf(elem string) string  { return fmt.Sprintf(r.cfg.SetClass, elem) }
func (r *Resolver) MapOf(key, val string) string {
	return fmt.Sprintf(r.cfg.MapClass, key, val)
}

// WireCodeOf returns the Thrift on-wire type code for t, after unwrapping
// typedefs. It delegates to wiretype.Of for the actual table lookup.
func (r *Resolver) WireCodeOf(t *parser.Type) (wiretype.Code, error) {
	return wiretype.Of(r.sch.TrueType(t).Category)
}
