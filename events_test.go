package glkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/glkit"
)

func TestEventTreeDispatchOrder(t *testing.T) {
	tree := glkit.NewEventTree[string]()
	var got []string
	record := func(name string, consume bool) glkit.Handler[string] {
		return func(e string) bool {
			got = append(got, name+":"+e)
			return consume
		}
	}

	a, err := tree.Add(glkit.HandlerID{}, record("a", false))
	require.NoError(t, err)
	_, err = tree.Add(a, record("a1", false))
	require.NoError(t, err)
	b, err := tree.Add(glkit.HandlerID{}, record("b", true))
	require.NoError(t, err)
	_, err = tree.Add(b, record("b1", false))
	require.NoError(t, err)
	_, err = tree.Add(glkit.HandlerID{}, record("c", false))
	require.NoError(t, err)

	consumed := tree.Dispatch("x")
	assert.True(t, consumed)
	// b consumes, so b1 never sees the event; c still does.
	assert.Equal(t, []string{"a:x", "a1:x", "b:x", "c:x"}, got)
	assert.Equal(t, 5, tree.Len())
}

func TestEventTreeRemoveSubtree(t *testing.T) {
	tree := glkit.NewEventTree[int]()
	calls := 0
	count := func(int) bool { calls++; return false }

	parent, _ := tree.Add(glkit.HandlerID{}, count)
	child, _ := tree.Add(parent, count)
	grandchild, _ := tree.Add(child, count)

	assert.True(t, tree.Remove(child))
	assert.False(t, tree.Contains(child))
	assert.False(t, tree.Contains(grandchild))
	assert.True(t, tree.Contains(parent))
	assert.Equal(t, 1, tree.Len())

	assert.False(t, tree.Dispatch(0))
	assert.Equal(t, 1, calls)

	// Stale IDs are ignored, even after their slot is reused.
	assert.False(t, tree.Remove(child))
	reused, err := tree.Add(glkit.HandlerID{}, count)
	require.NoError(t, err)
	assert.NotEqual(t, child, reused)
	assert.False(t, tree.Contains(child))
	_, err = tree.Add(grandchild, count)
	assert.ErrorIs(t, err, glkit.ErrStaleHandle)
}

func TestEventTreeMutationDuringDispatch(t *testing.T) {
	tree := glkit.NewEventTree[int]()
	var got []string
	var second glkit.HandlerID
	first, _ := tree.Add(glkit.HandlerID{}, func(int) bool {
		got = append(got, "first")
		tree.Remove(second)
		return false
	})
	second, _ = tree.Add(glkit.HandlerID{}, func(int) bool {
		got = append(got, "second")
		return false
	})
	_, _ = tree.Add(first, func(int) bool {
		got = append(got, "child")
		return false
	})

	tree.Dispatch(1)
	assert.Equal(t, []string{"first", "child"}, got)
}

func TestEventTreeGroupNode(t *testing.T) {
	tree := glkit.NewEventTree[glkit.Event]()
	group, _ := tree.Add(glkit.HandlerID{}, nil)
	var keys []glkit.Key
	_, _ = tree.Add(group, func(e glkit.Event) bool {
		if e.Kind == glkit.EventKey {
			keys = append(keys, e.Key)
			return true
		}
		return false
	})
	assert.True(t, tree.Dispatch(glkit.Event{Kind: glkit.EventKey, Key: glkit.KeyEscape, Action: glkit.Press}))
	assert.False(t, tree.Dispatch(glkit.Event{Kind: glkit.EventMouseMove}))
	assert.Equal(t, []glkit.Key{glkit.KeyEscape}, keys)
}
