package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewListEditorEmptySeed(t *testing.T) {
	e := NewListEditor(nil)
	assert.Equal(t, 1, e.Len())
	assert.Equal(t, []string{""}, e.Items())
}

func TestNewListEditorCopiesSeed(t *testing.T) {
	seed := []string{"flour", "water"}
	e := NewListEditor(seed)
	seed[0] = "mutated"
	assert.Equal(t, []string{"flour", "water"}, e.Items())
}

func TestListEditorAddAndSet(t *testing.T) {
	e := NewListEditor(nil)
	e.SetAt(0, "flour")
	e.Add()
	e.SetAt(1, "water")

	assert.Equal(t, []string{"flour", "water"}, e.Items())
}

func TestListEditorSetAtOutOfRange(t *testing.T) {
	e := NewListEditor([]string{"flour"})
	e.SetAt(-1, "x")
	e.SetAt(5, "y")
	assert.Equal(t, []string{"flour"}, e.Items())
}

func TestListEditorRemoveAtPreservesOrder(t *testing.T) {
	e := NewListEditor([]string{"a", "b", "c", "d"})

	assert.True(t, e.RemoveAt(1))
	assert.Equal(t, []string{"a", "c", "d"}, e.Items())

	assert.True(t, e.RemoveAt(2))
	assert.Equal(t, []string{"a", "c"}, e.Items())
}

func TestListEditorNeverShrinksBelowOne(t *testing.T) {
	e := NewListEditor([]string{"a", "b"})

	assert.True(t, e.RemoveAt(0))
	assert.Equal(t, 1, e.Len())

	// The last slot cannot be removed.
	assert.False(t, e.RemoveAt(0))
	assert.Equal(t, 1, e.Len())
	assert.Equal(t, []string{"b"}, e.Items())
}

func TestListEditorRemoveAtOutOfRange(t *testing.T) {
	e := NewListEditor([]string{"a", "b"})
	assert.False(t, e.RemoveAt(-1))
	assert.False(t, e.RemoveAt(2))
	assert.Equal(t, 2, e.Len())
}

func TestListEditorFiltered(t *testing.T) {
	e := NewListEditor([]string{"  flour  ", "", "   ", "water"})
	assert.Equal(t, []string{"flour", "water"}, e.Filtered())
	// Filtering never mutates the slots themselves.
	assert.Equal(t, 4, e.Len())
}
