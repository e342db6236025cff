package thriftygen

import (
	"github.com/cloudwego/thriftgo/parser"
	"github.com/go-playground/validator/v10"

	"github.com/thriftygo/thriftygo/codegen/resolver"
	"github.com/thriftygo/thriftygo/codegen/sink"
)

var validate = validator.New()

// Config holds the configuration surface §6 recognizes: the three
// pluggable container implementations and the output destination.
// Empty ListClass/SetClass/MapClass fall back to resolver.DefaultConfig
// (Go's dynamic-array, hash-set, hash-map).
type Config struct {
	ListClass  string
	SetClass   string
	MapClass   string
	OutputSink sink.OutputSink `validate:"required"`
}

func (c Config) resolverConfig() resolver.Config {
	cfg := resolver.DefaultConfig()
	if c.ListClass != "" {
		cfg.ListClass = c.ListClass
	}
	if c.SetClass != "" {
		cfg.SetClass = c.SetClass
	}
	if c.MapClass != "" {
		cfg.MapClass = c.MapClass
	}
	return cfg
}

// Generator provides a fluent API over Generate, mirroring the teacher's
// FromApp/WithFlavor chaining (tygorgen.Generator).
//
// Example:
//
//	thriftygen.FromSchema(ast).
//	    WithSetClass("map[%s]bool").
//	    ToDir("./gen")
type Generator struct {
	ast *parser.Thrift
	cfg Config
}

// FromSchema creates a new Generator for an already-parsed, already-
// resolved Thrift AST. Parsing and symbol resolution are the external
// collaborator's job (§1); this entry point only consumes the result.
func FromSchema(ast *parser.Thrift) *Generator {
	return &Generator{ast: ast}
}

// WithListClass overrides the concrete list implementation template,
// e.g. "[]%s" (default).
func (g *Generator) WithListClass(class string) *Generator {
	g.cfg.ListClass = class
	return g
}

// WithSetClass overrides the concrete set implementation template,
// e.g. "map[%s]struct{}" (default).
func (g *Generator) WithSetClass(class string) *Generator {
	g.cfg.SetClass = class
	return g
}

// WithMapClass overrides the concrete map implementation template,
// e.g. "map[%s]%s" (default).
func (g *Generator) WithMapClass(class string) *Generator {
	g.cfg.MapClass = class
	return g
}

// ToDir generates into a directory on disk. Terminal operation.
func (g *Generator) ToDir(dir string) (*Result, error) {
	g.cfg.OutputSink = sink.NewFilesystemSink(dir)
	return Generate(g.ast, g.cfg)
}

// ToMemory generates into an in-memory sink, returning it alongside the
// Result so callers can inspect file contents without touching disk.
func (g *Generator) ToMemory() (*Result, *sink.MemorySink, error) {
	mem := sink.NewMemorySink()
	g.cfg.OutputSink = mem
	res, err := Generate(g.ast, g.cfg)
	return res, mem, err
}
