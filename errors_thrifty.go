// Package thriftygen implements the core of a Thrift IDL code generator
// (see SPEC_FULL.md): it consumes an already-parsed, already-resolved
// Thrift schema and emits Go source modeling that schema's types, their
// wire adapters, and its constant declarations.
package thriftygen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorCode is a machine-readable error kind (§7). Unlike the teacher's
// transport-facing ErrorCode, these name generator failure modes, not
// RPC statuses — there is no HTTP surface to map them onto.
type ErrorCode string

const (
	CodeConfiguration        ErrorCode = "configuration"
	CodeSchemaViolation      ErrorCode = "schema_violation"
	CodeUnsupportedConstruct ErrorCode = "unsupported_construct"
	CodeInternalInvariant    ErrorCode = "internal_invariant"
	CodeIOFailure            ErrorCode = "io_failure"
)

// Error is the envelope every generator failure surfaces as. Entity and
// Field identify the offending declaration, per §7's propagation rule:
// "a message identifying the offending entity and field".
type Error struct {
	Code    ErrorCode
	Entity  string
	Field   string
	Message string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	if e.Entity != "" {
		fmt.Fprintf(&b, " (%s", e.Entity)
		if e.Field != "" {
			fmt.Fprintf(&b, ".%s", e.Field)
		}
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// NewError builds an Error identifying the offending entity/field.
func NewError(code ErrorCode, entity, field, message string) *Error {
	return &Error{Code: code, Entity: entity, Field: field, Message: message}
}

// Errorf is NewError with a formatted message.
func Errorf(code ErrorCode, entity, field, format string, args ...any) *Error {
	return &Error{Code: code, Entity: entity, Field: field, Message: fmt.Sprintf(format, args...)}
}

// wrapConfigError folds a validator.ValidationErrors into a
// CodeConfiguration Error, the same recognition the teacher's
// DefaultErrorTransformer performs for its invalid_argument code.
func wrapConfigError(err error) *Error {
	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) {
		fields := make([]string, 0, len(valErrs))
		for _, ve := range valErrs {
			fields = append(fields, fmt.Sprintf("%s(%s)", ve.Field(), ve.Tag()))
		}
		return &Error{Code: CodeConfiguration, Message: "invalid configuration: " + strings.Join(fields, ", ")}
	}
	return &Error{Code: CodeConfiguration, Message: err.Error()}
}
