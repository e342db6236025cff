package constgen

import (
	"testing"

	"github.com/cloudwego/thriftgo/parser"
	"github.com/stretchr/testify/require"

	"github.com/thriftygo/thriftygo/codegen/constrender"
	"github.com/thriftygo/thriftygo/codegen/resolver"
	"github.com/thriftygo/thriftygo/codegen/schema"
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
	return New(res, constrender.New(res, noEnums{}))
}

func intVal(n int64) *parser.ConstValue {
	return &parser.ConstValue{Type: parser.ConstType_ConstInt, TypedValue: &parser.ConstTypedValue{Int: &n}}
}

func TestEmitScalarAndCollectionConstants(t *testing.T) {
	g := newTestEmitter(t)
	consts := []*parser.Constant{
		{Name: "MaxRetries", Type: &parser.Type{Category: parser.Category_I32}, Value: intVal(3)},
		{Name: "DefaultTags", Type: &parser.Type{
			Category:  parser.Category_List,
			ValueType: &parser.Type{Category: parser.Category_I32},
		}, Value: &parser.ConstValue{
			Type:       parser.ConstType_ConstList,
			TypedValue: &parser.ConstTypedValue{List: []*parser.ConstValue{intVal(1), intVal(2)}},
		}},
	}

	unit, err := g.Emit(consts)
	require.NoError(t, err)
	require.Contains(t, unit.Source, "type constants struct {")
	require.Contains(t, unit.Source, "MaxRetries *int32")
	require.Contains(t, unit.Source, "var Constants = &constants{")
	require.Contains(t, unit.Source, "MaxRetries: runtime.Ref(int32(3)),")
	require.Contains(t, unit.Source, "func init() {")
	require.Contains(t, unit.Source, "runtime.NewList")
}

func TestEmitScalarOnlySkipsInit(t *testing.T) {
	g := newTestEmitter(t)
	consts := []*parser.Constant{
		{Name: "MaxRetries", Type: &parser.Type{Category: parser.Category_I32}, Value: intVal(3)},
	}
	unit, err := g.Emit(consts)
	require.NoError(t, err)
	require.NotContains(t, unit.Source, "func init()")
}
