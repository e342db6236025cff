package resolver

import (
	"testing"

	"github.com/cloudwego/thriftgo/parser"
	"github.com/stretchr/testify/require"

	"github.com/thriftygo/thriftygo/codegen/schema"
)

func bt(cat parser.Category, name string) *parser.Type {
	return &parser.Type{Name: name, Category: cat}
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	ast := &parser.Thrift{
		Typedefs: []*parser.Typedef{
			{Alias: "UserID", Type: bt(parser.Category_I64, "i64")},
		},
	}
	sch, err := schema.New(ast)
	require.NoError(t, err)
	r, err := New(sch, "models", Config{})
	require.NoError(t, err)
	return r
}

func TestSurfaceTypeOfScalars(t *testing.T) {
	r := newTestResolver(t)

	got, err := r.SurfaceTypeOf(bt(parser.Category_I32, "i32"))
	require.NoError(t, err)
	require.Equal(t, "*int32", got)

	got, err = r.SurfaceTypeOf(bt(parser.Category_String, "string"))
	require.NoError(t, err)
	require.Equal(t, "*string", got)

	got, err = r.SurfaceTypeOf(bt(parser.Category_Binary, "binary"))
	require.NoError(t, err)
	require.Equal(t, "[]byte", got)
}

func TestSurfaceTypeOfUnwrapsTypedef(t *testing.T) {
	r := newTestResolver(t)
	td := &parser.Type{Name: "UserID", Category: parser.Category_Typedef}
	got, err := r.SurfaceTypeOf(td)
	require.NoError(t, err)
	require.Equal(t, "*int64", got)
}

func TestSurfaceTypeOfCollections(t *testing.T) {
	r := newTestResolver(t)

	list := &parser.Type{Category: parser.Category_List, ValueType: bt(parser.Category_I32, "i32")}
	got, err := r.SurfaceTypeOf(list)
	require.NoError(t, err)
	require.Equal(t, "runtime.List[*int32]", got)

	m := &parser.Type{
		Category:  parser.Category_Map,
		KeyType:   bt(parser.Category_String, "string"),
		ValueType: bt(parser.Category_I32, "i32"),
	}
	got, err = r.SurfaceTypeOf(m)
	require.NoError(t, err)
	require.Equal(t, "runtime.Map[*string, *int32]", got)
}

func TestSurfaceTypeOfVoidIsInvariantViolation(t *testing.T) {
	r := newTestResolver(t)
	_, err := r.SurfaceTypeOf(bt(parser.Category_Void, "void"))
	require.Error(t, err)
}

func TestWireCodeOf(t *testing.T) {
	r := newTestResolver(t)
	code, err := r.WireCodeOf(bt(parser.Category_I32, "i32"))
	require.NoError(t, err)
	require.Equal(t, "thrift.I32", code.Expr())
}

func TestContainerTemplates(t *testing.T) {
	r := newTestResolver(t)
	require.Equal(t, "[]int32", r.ListOf("int32"))
	require.Equal(t, "map[int32]struct{}", r.SetOf("int32"))
	require.Equal(t, "map[string]int32", r.MapOf("string", "int32"))
}

func TestNewRejectsEmptyContainerConfig(t *testing.T) {
	ast := &parser.Thrift{}
	sch, err := schema.New(ast)
	require.NoError(t, err)
	_, err = New(sch, "models", Config{ListClass: "[]%s"})
	require.Error(t, err)
}
