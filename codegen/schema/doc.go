package schema

import (
	"fmt"
	"strings"

	"github.com/cloudwego/thriftgo/parser"
)

// goNamespaceLanguage is the IDL `namespace go ...` tag that names the
// surface output package for this generator.
const goNamespaceLanguage = "go"

// OutputPackage resolves the declared output package for the schema,
// per §3 invariant 1: every emitted entity must have a non-empty
// output-package name, sourced from the IDL's `namespace go <pkg>` line.
func OutputPackage(ast *parser.Thrift) (string, error) {
	for _, ns := range ast.Namespaces {
		if ns.Language == goNamespaceLanguage {
			if ns.Name == "" {
				return "", fmt.Errorf("schema: empty go namespace in %s", ast.Filename)
			}
			return ns.Name, nil
		}
	}
	return "", fmt.Errorf("schema: no `namespace go` declaration in %s", ast.Filename)
}

// Doc renders a ReservedComments blob (the parser's verbatim capture of the
// doc-comment preceding a declaration) into an emittable summary. Thrift
// IDL comments are not required, so an empty string is common and valid.
func Doc(raw string) string {
	return strings.TrimSpace(raw)
}

// Location formats a human-readable source reference for the
// "Source: <location>" header line §4.8 adds to schema-originating
// compilation units. The parser AST does not carry per-declaration line
// numbers, so the file name is the finest granularity available.
func Location(ast *parser.Thrift, name string) string {
	return fmt.Sprintf("%s (%s)", ast.Filename, name)
}
