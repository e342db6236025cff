package enumgen

import (
	"testing"

	"github.com/cloudwego/thriftgo/parser"
	"github.com/stretchr/testify/require"
)

func colorEnum() *parser.Enum {
	return &parser.Enum{
		Name: "Color",
		Values: []*parser.EnumValue{
			{Name: "RED", Value: 0},
			{Name: "GREEN", Value: 1},
		},
	}
}

func TestEmit(t *testing.T) {
	g := New()
	unit, err := g.Emit(colorEnum())
	require.NoError(t, err)
	require.Contains(t, unit.Source, "type Color int32")
	require.Contains(t, unit.Source, "ColorRed Color = 0")
	require.Contains(t, unit.Source, "ColorGreen Color = 1")
	require.Contains(t, unit.Source, "func (c Color) Code() int32")
	require.Contains(t, unit.Source, "func (c Color) String() string")
	require.Contains(t, unit.Source, "func ColorFromCode(code int32) *Color")

	name, ok := unit.Index.ByValue[1]
	require.True(t, ok)
	require.Equal(t, "ColorGreen", name)

	name, ok = unit.Index.ByName["RED"]
	require.True(t, ok)
	require.Equal(t, "ColorRed", name)
}

func TestEmitRejectsEmptyEnum(t *testing.T) {
	g := New()
	_, err := g.Emit(&parser.Enum{Name: "Empty"})
	require.Error(t, err)
}

func TestRegistry(t *testing.T) {
	g := New()
	unit, err := g.Emit(colorEnum())
	require.NoError(t, err)

	reg := NewRegistry()
	reg.Add("Color", unit.Index)

	name, ok := reg.MemberByValue("Color", 0)
	require.True(t, ok)
	require.Equal(t, "ColorRed", name)

	_, ok = reg.MemberByValue("Unknown", 0)
	require.False(t, ok)
}
