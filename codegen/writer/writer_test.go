package writer

import (
	"strings"
	"testing"

	"github.com/cloudwego/thriftgo/parser"
	"github.com/stretchr/testify/require"

	"github.com/thriftygo/thriftygo/codegen/resolver"
	"github.com/thriftygo/thriftygo/codegen/schema"
)

type seqAlloc struct{ n int }

func (s *seqAlloc) Alloc(hint string) string {
	s.n++
	return hint
}

func newTestEmitter(t *testing.T) *Emitter {
	t.Helper()
	sch, err := schema.New(&parser.Thrift{})
	require.NoError(t, err)
	res, err := resolver.New(sch, "models", resolver.Config{})
	require.NoError(t, err)
	return New(res)
}

func scalarField(id int16, name string, cat parser.Category, req parser.FieldType) *parser.Field {
	return &parser.Field{ID: id, Name: name, Type: &parser.Type{Category: cat}, Requiredness: req}
}

func TestFieldStmtsScalarRequired(t *testing.T) {
	e := newTestEmitter(t)
	f := scalarField(1, "age", parser.Category_I32, parser.FieldType_Required)
	stmts, err := e.FieldStmts("oprot", "v.Age", f, &seqAlloc{})
	require.NoError(t, err)
	joined := strings.Join(stmts, "\n")
	require.Contains(t, joined, "WriteFieldBegin(ctx, \"age\", thrift.I32, 1)")
	require.Contains(t, joined, "WriteI32(ctx, v.Age)")
	require.Contains(t, joined, "WriteFieldEnd")
	require.NotContains(t, joined, "if v.Age != nil {")
}

func TestFieldStmtsOptionalGuard(t *testing.T) {
	e := newTestEmitter(t)
	f := scalarField(2, "nick", parser.Category_String, parser.FieldType_Optional)
	stmts, err := e.FieldStmts("oprot", "v.Nick", f, &seqAlloc{})
	require.NoError(t, err)
	joined := strings.Join(stmts, "\n")
	require.True(t, strings.HasPrefix(joined, "if v.Nick != nil {"))
	require.True(t, strings.HasSuffix(joined, "}"))
}

func TestFieldStmtsList(t *testing.T) {
	e := newTestEmitter(t)
	f := &parser.Field{
		ID:   3,
		Name: "tags",
		Type: &parser.Type{Category: parser.Category_List, ValueType: &parser.Type{Category: parser.Category_String}},
	}
	stmts, err := e.FieldStmts("oprot", "v.Tags", f, &seqAlloc{})
	require.NoError(t, err)
	joined := strings.Join(stmts, "\n")
	require.Contains(t, joined, "WriteListBegin")
	require.Contains(t, joined, "v.Tags.Range(func(_ int, item interface{}) bool {")
	require.Contains(t, joined, "WriteListEnd")
}

func TestFieldStmtsStructDelegatesToAdapter(t *testing.T) {
	e := newTestEmitter(t)
	f := &parser.Field{
		ID:   4,
		Name: "addr",
		Type: &parser.Type{Category: parser.Category_Struct, Name: "Address"},
	}
	stmts, err := e.FieldStmts("oprot", "v.Addr", f, &seqAlloc{})
	require.NoError(t, err)
	require.Contains(t, strings.Join(stmts, "\n"), "AddressADAPTER.Write(ctx, oprot, v.Addr)")
}

func TestStructTrailer(t *testing.T) {
	stmts := StructTrailer("oprot")
	require.Contains(t, stmts[0], "WriteFieldStop")
	require.Contains(t, stmts[1], "WriteStructEnd")
}
