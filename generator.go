package thriftygen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/thriftgo/parser"
	"golang.org/x/tools/imports"

	"github.com/thriftygo/thriftygo/codegen/constgen"
	"github.com/thriftygo/thriftygo/codegen/constrender"
	"github.com/thriftygo/thriftygo/codegen/enumgen"
	"github.com/thriftygo/thriftygo/codegen/reader"
	"github.com/thriftygo/thriftygo/codegen/resolver"
	"github.com/thriftygo/thriftygo/codegen/schema"
	"github.com/thriftygo/thriftygo/codegen/sink"
	"github.com/thriftygo/thriftygo/codegen/structgen"
	"github.com/thriftygo/thriftygo/codegen/writer"
)

// fileComment is the fixed leading comment §4.8 and §6 require on every
// compilation unit.
const fileComment = "Automatically generated by the Thrifty compiler; do not edit!"

// Warning is a non-fatal diagnostic surfaced alongside a successful
// Result, the way the teacher's ir.Warning rides along GenerateResult.
type Warning struct {
	Code    string
	Message string
}

// Result reports what one Generate invocation produced: every path
// handed to the sink, plus any non-fatal warnings.
type Result struct {
	Files    []string
	Warnings []Warning
}

// Generate drives the pipeline of §4.8 deterministically: enums, then
// plain structs, then exception structs, then unions, then (last)
// constants — against ast, validating cfg first (§7 ConfigurationError)
// and writing every resulting compilation unit to cfg.OutputSink.
//
// The generator is single-threaded and synchronous (§5): one call
// consumes the schema and emits all outputs before returning, or aborts
// on the first error with no partial cleanup. Two Generate calls over
// disjoint schemas may run concurrently but must not share an
// OutputSink.
func Generate(ast *parser.Thrift, cfg Config) (*Result, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, wrapConfigError(err)
	}

	sch, err := schema.New(ast)
	if err != nil {
		return nil, NewError(CodeConfiguration, "", "", err.Error())
	}
	goPkg, err := schema.OutputPackage(ast)
	if err != nil {
		return nil, NewError(CodeConfiguration, "", "", err.Error())
	}
	res, err := resolver.New(sch, goPkg, cfg.resolverConfig())
	if err != nil {
		return nil, NewError(CodeConfiguration, "", "", err.Error())
	}

	// The date stamp is captured once per invocation and never mutated
	// afterward (§5, §9 "process-wide state").
	stamp := time.Now().UTC().Format("2006-01-02")
	ctx := context.Background()
	result := &Result{}

	enumReg := enumgen.NewRegistry()
	consts := constrender.New(res, enumReg)
	eg := enumgen.New()
	wr := writer.New(res)
	rd := reader.New(res)
	sg := structgen.New(res, consts, wr, rd)
	cg := constgen.New(res, consts)

	entityCount := 0

	// Enums first: struct field defaults referencing enum members must
	// resolve against already-visible declarations (§4.8 ordering
	// rationale).
	for _, e := range sch.Enums() {
		unit, err := eg.Emit(e)
		if err != nil {
			return nil, Errorf(CodeSchemaViolation, e.Name, "", "%v", err)
		}
		enumReg.Add(e.Name, unit.Index)
		if err := writeUnit(ctx, cfg.OutputSink, goPkg, e.Name, unit.Source, stamp, schema.Location(ast, e.Name), result); err != nil {
			return nil, err
		}
		entityCount++
	}

	for _, s := range sch.Structs() {
		if err := emitStruct(ctx, sg, cfg.OutputSink, goPkg, ast, s, stamp, result); err != nil {
			return nil, err
		}
		entityCount++
	}
	for _, s := range sch.Exceptions() {
		if err := emitStruct(ctx, sg, cfg.OutputSink, goPkg, ast, s, stamp, result); err != nil {
			return nil, err
		}
		entityCount++
	}
	for _, s := range sch.Unions() {
		if err := emitStruct(ctx, sg, cfg.OutputSink, goPkg, ast, s, stamp, result); err != nil {
			return nil, err
		}
		entityCount++
	}

	// Constants last: they may reference any type (§4.8 ordering
	// rationale). Grouped into a single holder — this generator resolves
	// exactly one schema per call, hence exactly one output package.
	if declared := sch.Constants(); len(declared) > 0 {
		unit, err := cg.Emit(declared)
		if err != nil {
			return nil, Errorf(CodeSchemaViolation, "Constants", "", "%v", err)
		}
		if err := writeUnit(ctx, cfg.OutputSink, goPkg, "constants", unit.Source, stamp, "", result); err != nil {
			return nil, err
		}
		entityCount++
	}

	if entityCount == 0 {
		result.Warnings = append(result.Warnings, Warning{
			Code:    "empty_schema",
			Message: "schema declared no enums, structs, exceptions, unions or constants",
		})
	}

	return result, nil
}

// emitStruct dispatches to structgen for any of the three StructLike
// categories (plain, exception, union) — StructEmitter itself branches
// on s.Category (§4.5).
func emitStruct(ctx context.Context, sg *structgen.Emitter, out sink.OutputSink, goPkg string, ast *parser.Thrift, s *parser.StructLike, stamp string, result *Result) error {
	unit, err := sg.Emit(s)
	if err != nil {
		return Errorf(CodeSchemaViolation, s.Name, "", "%v", err)
	}
	return writeUnit(ctx, out, goPkg, s.Name, unit.Source, stamp, schema.Location(ast, s.Name), result)
}

// writeUnit assembles one CompilationUnit (header, optional Source
// line, package clause, body), formats it, and hands it to out. Imports
// of the surface's own output package are never referenced by the body
// the emitters produce — every same-package reference resolver emits is
// unqualified (§4.8's "imports of the surface's intrinsic namespace are
// suppressed") — so imports.Process only ever needs to add imports for
// runtime/thrift/context, never strip a self-import.
func writeUnit(ctx context.Context, out sink.OutputSink, goPkg, baseName, body, stamp, location string, result *Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "// %s\n", fileComment)
	if location != "" {
		fmt.Fprintf(&b, "// Source: %s\n", location)
	}
	fmt.Fprintf(&b, "// Generated: %s\n\n", stamp)
	fmt.Fprintf(&b, "package %s\n\n", goPkg)
	b.WriteString(body)

	path := strings.ToLower(baseName) + ".go"
	formatted, err := imports.Process(path, []byte(b.String()), nil)
	if err != nil {
		return Errorf(CodeInternalInvariant, baseName, "", "formatting generated source: %v", err)
	}
	if err := out.WriteFile(ctx, path, formatted); err != nil {
		return Errorf(CodeIOFailure, baseName, "", "%v", err)
	}
	result.Files = append(result.Files, path)
	return nil
}
