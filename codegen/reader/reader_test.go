package reader

import (
	"strings"
	"testing"

	"github.com/cloudwego/thriftgo/parser"
	"github.com/stretchr/testify/require"

	"github.com/thriftygo/thriftygo/codegen/ident"
	"github.com/thriftygo/thriftygo/codegen/resolver"
	"github.com/thriftygo/thriftygo/codegen/schema"
)

func newTestEmitter(t *testing.T) *Emitter {
	t.Helper()
	sch, err := schema.New(&parser.Thrift{})
	require.NoError(t, err)
	res, err := resolver.New(sch, "models", resolver.Config{})
	require.NoError(t, err)
	return New(res)
}

func TestStructLoopStmtsScalarField(t *testing.T) {
	e := newTestEmitter(t)
	fields := []*parser.Field{
		{ID: 1, Name: "age", Type: &parser.Type{Category: parser.Category_I32}},
	}
	stmts, err := e.StructLoopStmts("iprot", "b", fields, ident.NewAllocator())
	require.NoError(t, err)
	joined := strings.Join(stmts, "\n")
	require.Contains(t, joined, "ReadStructBegin")
	require.Contains(t, joined, "ReadFieldBegin")
	require.Contains(t, joined, "case 1:")
	require.Contains(t, joined, "thrift.I32")
	require.Contains(t, joined, "ReadI32(ctx)")
	require.Contains(t, joined, "b.SetAge(val)")
	require.Contains(t, joined, "b.build()")
	require.Contains(t, joined, "default:")
	require.Contains(t, joined, "iprot.Skip(ctx, fieldType)")
}

func TestStructLoopStmtsListField(t *testing.T) {
	e := newTestEmitter(t)
	fields := []*parser.Field{
		{ID: 2, Name: "tags", Type: &parser.Type{
			Category:  parser.Category_List,
			ValueType: &parser.Type{Category: parser.Category_String},
		}},
	}
	stmts, err := e.StructLoopStmts("iprot", "b", fields, ident.NewAllocator())
	require.NoError(t, err)
	joined := strings.Join(stmts, "\n")
	require.Contains(t, joined, "ReadListBegin")
	require.Contains(t, joined, "ReadListEnd")
	require.Contains(t, joined, "runtime.NewList")
	require.Contains(t, joined, "b.SetTags(")
}

func TestStructLoopStmtsStructField(t *testing.T) {
	e := newTestEmitter(t)
	fields := []*parser.Field{
		{ID: 3, Name: "addr", Type: &parser.Type{Category: parser.Category_Struct, Name: "Address"}},
	}
	stmts, err := e.StructLoopStmts("iprot", "b", fields, ident.NewAllocator())
	require.NoError(t, err)
	require.Contains(t, strings.Join(stmts, "\n"), "AddressADAPTER.read(ctx, iprot)")
}
