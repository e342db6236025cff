package structgen

import (
	"strings"
	"testing"

	"github.com/cloudwego/thriftgo/parser"
	"github.com/stretchr/testify/require"

	"github.com/thriftygo/thriftygo/codegen/constrender"
	"github.com/thriftygo/thriftygo/codegen/reader"
	"github.com/thriftygo/thriftygo/codegen/resolver"
	"github.com/thriftygo/thriftygo/codegen/schema"
	"github.com/thriftygo/thriftygo/codegen/writer"
)

type noEnums struct{}

func (noEnums) MemberByValue(string, int64) (string, bool) { return "", false }
func (noEnums) MemberByName(string, string) (string, bool) { return "", false }

func newTestEmitter(t *testing.T) *Emitter {
	t.Helper()
	sch, err := schema.New(&parser.Thrift{})
	require.NoError(t, err)
	res, err := resolver.New(sch, "models", resolver.Config{})
	require.NoError(t, err)
	consts := constrender.New(res, noEnums{})
	return New(res, consts, writer.New(res), reader.New(res))
}

func personStruct() *parser.StructLike {
	return &parser.StructLike{
		Category: "struct",
		Name:     "Person",
		Fields: []*parser.Field{
			{ID: 1, Name: "name", Type: &parser.Type{Category: parser.Category_String}, Requiredness: parser.FieldType_Required},
			{ID: 2, Name: "age", Type: &parser.Type{Category: parser.Category_I32}, Requiredness: parser.FieldType_Optional},
			{ID: 3, Name: "tags", Type: &parser.Type{Category: parser.Category_List, ValueType: &parser.Type{Category: parser.Category_String}}},
		},
	}
}

func TestEmitStruct(t *testing.T) {
	g := newTestEmitter(t)
	unit, err := g.Emit(personStruct())
	require.NoError(t, err)

	src := unit.Source
	require.Contains(t, src, "type Person struct {")
	require.Contains(t, src, "Name *string")
	require.Contains(t, src, "Age *int32")
	require.Contains(t, src, "Tags runtime.List[*string]")
	require.Contains(t, src, "func newPerson(b *PersonBuilder) *Person {")
	require.Contains(t, src, "func (v *Person) Equal(other *Person) bool {")
	require.Contains(t, src, "func (v *Person) Hash() int32 {")
	require.Contains(t, src, "func (v *Person) String() string {")
	require.Contains(t, src, "type PersonBuilder struct {")
	require.Contains(t, src, "func NewPersonBuilder() *PersonBuilder {")
	require.Contains(t, src, "func (b *PersonBuilder) SetName(val *string) *PersonBuilder {")
	require.Contains(t, src, "panic(")
	require.Contains(t, src, "func (b *PersonBuilder) build() (*Person, error) {")
	require.Contains(t, src, "runtime.FieldRequiredError(\"Person\", \"name\")")
	require.Contains(t, src, "var PersonADAPTER = personAdapter{}")
	require.Contains(t, src, "func (personAdapter) Write(ctx context.Context, p thrift.TProtocol, v *Person) error {")
	require.Contains(t, src, "func (personAdapter) Read(ctx context.Context, p thrift.TProtocol, b *PersonBuilder) (*Person, error) {")
}

func TestEmitUnion(t *testing.T) {
	g := newTestEmitter(t)
	u := &parser.StructLike{
		Category: "union",
		Name:     "Either",
		Fields: []*parser.Field{
			{ID: 1, Name: "left", Type: &parser.Type{Category: parser.Category_String}},
			{ID: 2, Name: "right", Type: &parser.Type{Category: parser.Category_I32}},
		},
	}
	unit, err := g.Emit(u)
	require.NoError(t, err)
	require.Contains(t, unit.Source, "runtime.UnionArityError(\"Either\", set)")
	require.NotContains(t, unit.Source, "FieldRequiredError")
}

func TestEmitException(t *testing.T) {
	g := newTestEmitter(t)
	e := &parser.StructLike{
		Category: "exception",
		Name:     "NotFound",
		Fields: []*parser.Field{
			{ID: 1, Name: "message", Type: &parser.Type{Category: parser.Category_String}},
		},
	}
	unit, err := g.Emit(e)
	require.NoError(t, err)
	require.Contains(t, unit.Source, "runtime.BaseException")
	require.True(t, strings.Contains(unit.Source, "func (v *NotFound) Error() string { return v.String() }"))
}
