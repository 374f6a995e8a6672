package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDelta_PisoEnCero(t *testing.T) {
	u := &Usuario{Figuras: []FiguraUsuario{{FiguraID: "f1", Count: 2}}}

	count, ok := u.ApplyDelta("f1", -5)
	assert.True(t, ok)
	assert.Equal(t, 0, count)

	count, ok = u.ApplyDelta("f1", 3)
	assert.True(t, ok)
	assert.Equal(t, 3, count)

	_, ok = u.ApplyDelta("nope", 1)
	assert.False(t, ok)
}

func TestAddAlbum_SemanticaAddToSet(t *testing.T) {
	u := &Usuario{}
	u.AddAlbum("a1")
	u.AddAlbum("a1")
	u.AddAlbum("a2")
	assert.Equal(t, []string{"a1", "a2"}, u.Albumes)
}

func TestRemoveFigura(t *testing.T) {
	u := &Usuario{Figuras: []FiguraUsuario{
		{FiguraID: "f1", Count: 1},
		{FiguraID: "f2", Count: 2},
	}}
	u.RemoveFigura("f1")
	assert.Nil(t, u.FindFigura("f1"))
	assert.NotNil(t, u.FindFigura("f2"))

	u.RemoveFigura("nope") // no-op
	assert.Len(t, u.Figuras, 1)
}

func TestOrderTerminal(t *testing.T) {
	assert.False(t, (&Order{Status: OrderPending}).Terminal())
	assert.True(t, (&Order{Status: OrderDelivered}).Terminal())
	assert.True(t, (&Order{Status: OrderCancelled}).Terminal())
}
