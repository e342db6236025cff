package wiretype

import (
	"testing"

	"github.com/cloudwego/thriftgo/parser"
	"github.com/stretchr/testify/require"
)

func TestOf(t *testing.T) {
	cases := []struct {
		cat  parser.Category
		want Code
	}{
		{parser.Category_Bool, CodeBool},
		{parser.Category_Byte, CodeByte},
		{parser.Category_I16, CodeI16},
		{parser.Category_I32, CodeI32},
		{parser.Category_I64, CodeI64},
		{parser.Category_Double, CodeDouble},
		{parser.Category_String, CodeString},
		{parser.Category_Binary, CodeString},
		{parser.Category_Struct, CodeStruct},
		{parser.Category_Map, CodeMap},
		{parser.Category_Set, CodeSet},
		{parser.Category_List, CodeList},
	}
	for _, c := range cases {
		got, err := Of(c.cat)
		require.NoError(t, err)
		require.Equal(t, c.want, got)
	}
}

func TestOfUnknown(t *testing.T) {
	_, err := Of(parser.Category_Void)
	require.Error(t, err)
}

func TestExpr(t *testing.T) {
	require.Equal(t, "thrift.BOOL", CodeBool.Expr())
	require.Equal(t, "thrift.I32", CodeI32.Expr())
}
