package glkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/glkit"
)

type position struct{ X, Y float32 }

type health int

func TestWorldComponents(t *testing.T) {
	w := glkit.NewWorld()
	e := w.Spawn()
	require.NoError(t, glkit.AddComponent(w, e, position{X: 1}))
	require.NoError(t, glkit.AddComponent(w, e, health(10)))

	p, ok := glkit.Component[position](w, e)
	require.True(t, ok)
	p.X = 5
	p, _ = glkit.Component[position](w, e)
	assert.Equal(t, float32(5), p.X)

	h, ok := glkit.Component[health](w, e)
	require.True(t, ok)
	assert.Equal(t, health(10), *h)

	assert.True(t, glkit.RemoveComponent[health](w, e))
	assert.False(t, glkit.RemoveComponent[health](w, e))
	_, ok = glkit.Component[health](w, e)
	assert.False(t, ok)

	_, ok = glkit.Component[string](w, e)
	assert.False(t, ok)
}

func TestWorldDestroy(t *testing.T) {
	w := glkit.NewWorld()
	e := w.Spawn()
	require.NoError(t, glkit.AddComponent(w, e, position{}))
	assert.True(t, w.Destroy(e))
	assert.False(t, w.Alive(e))
	assert.False(t, w.Destroy(e))

	// The slot is reused with a new generation.
	e2 := w.Spawn()
	assert.NotEqual(t, e, e2)
	_, ok := glkit.Component[position](w, e2)
	assert.False(t, ok)
	assert.ErrorIs(t, glkit.AddComponent(w, e, position{}), glkit.ErrStaleHandle)
	assert.False(t, w.Alive(glkit.Entity{}))
}

func TestWorldEach(t *testing.T) {
	w := glkit.NewWorld()
	var es []glkit.Entity
	for i := 0; i < 4; i++ {
		e := w.Spawn()
		es = append(es, e)
		if i != 2 {
			require.NoError(t, glkit.AddComponent(w, e, position{X: float32(i)}))
		}
	}

	var seen []glkit.Entity
	glkit.Each(w, func(e glkit.Entity, p *position) {
		seen = append(seen, e)
		p.Y = 1
	})
	assert.Equal(t, []glkit.Entity{es[0], es[1], es[3]}, seen)

	p, _ := glkit.Component[position](w, es[3])
	assert.Equal(t, position{X: 3, Y: 1}, *p)

	glkit.Each(w, func(glkit.Entity, *health) { t.Fatal("no health components") })
}
