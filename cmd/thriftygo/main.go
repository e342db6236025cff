// Command thriftygo parses a Thrift IDL file and generates Go source
// for it: the thin CLI collaborator SPEC §1 treats as external to the
// generator core. Lexing, parsing and symbol resolution are delegated
// to github.com/cloudwego/thriftgo, exactly as the gateway reference
// implementation in the corpus does at runtime; this command drives
// the same two calls ahead of time, at generation time, instead.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/cloudwego/thriftgo/parser"
	"github.com/cloudwego/thriftgo/semantic"

	thriftygen "github.com/thriftygo/thriftygo"
)

type CLI struct {
	Gen GenCmd `cmd:"" default:"1" help:"Generate Go source from a Thrift IDL file."`
}

// GenCmd generates Go source for one Thrift IDL file into a directory.
type GenCmd struct {
	IDL string `arg:"" help:"Path to the .thrift input file."`
	Out string `arg:"" help:"Output directory for generated files."`

	ListClass string `help:"Concrete list implementation template, e.g. \"[]%s\"." name:"list-class"`
	SetClass  string `help:"Concrete set implementation template, e.g. \"map[%s]struct{}\"." name:"set-class"`
	MapClass  string `help:"Concrete map implementation template, e.g. \"map[%s]%s\"." name:"map-class"`
}

func (c *GenCmd) Run() error {
	ast, err := parser.ParseFile(c.IDL, nil, true)
	if err != nil {
		return fmt.Errorf("parse %s: %w", c.IDL, err)
	}
	if err := semantic.ResolveSymbols(ast); err != nil {
		return fmt.Errorf("resolve %s: %w", c.IDL, err)
	}

	result, err := thriftygen.FromSchema(ast).
		WithListClass(c.ListClass).
		WithSetClass(c.SetClass).
		WithMapClass(c.MapClass).
		ToDir(c.Out)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", w.Code, w.Message)
	}
	for _, f := range result.Files {
		fmt.Println(f)
	}
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("thriftygo"),
		kong.Description("Generates Go source from a Thrift IDL schema."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
