package thriftygen

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	err := NewError(CodeSchemaViolation, "Person", "age", "unknown enum member")
	require.Equal(t, "schema_violation (Person.age): unknown enum member", err.Error())
}

func TestErrorMessageWithoutField(t *testing.T) {
	err := NewError(CodeIOFailure, "Person", "", "disk full")
	require.Equal(t, "io_failure (Person): disk full", err.Error())
}

func TestErrorfFormats(t *testing.T) {
	err := Errorf(CodeUnsupportedConstruct, "Msg", "body", "nested %s constants are unsupported", "list")
	require.Equal(t, "unsupported_construct (Msg.body): nested list constants are unsupported", err.Error())
}

type configFixture struct {
	OutputSink string `validate:"required"`
}

func TestWrapConfigErrorFoldsValidationErrors(t *testing.T) {
	v := validator.New()
	err := v.Struct(configFixture{})
	require.Error(t, err)

	wrapped := wrapConfigError(err)
	require.Equal(t, CodeConfiguration, wrapped.Code)
	require.Contains(t, wrapped.Message, "OutputSink")
}
