package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection_Explicit(t *testing.T) {
	s := ExplicitSelection("b", "a", "", "b")
	assert.False(t, s.IsAll())
	assert.False(t, s.IsEmpty())
	assert.Equal(t, []string{"b", "a"}, s.IDs(), "selection order, duplicates dropped")

	s.Deselect("a")
	assert.Equal(t, []string{"b"}, s.Resolve([]string{"x", "y"}))

	s.Clear()
	assert.True(t, s.IsEmpty())
	assert.Empty(t, s.Resolve([]string{"x"}))
}

func TestSelection_AllResolvesAgainstCurrent(t *testing.T) {
	s := AllSelection()
	assert.True(t, s.IsAll())
	assert.False(t, s.IsEmpty())

	current := []string{"c", "a", "b", "a"}
	assert.Equal(t, []string{"c", "a", "b"}, s.Resolve(current))

	s.Deselect("a")
	assert.Equal(t, []string{"c", "b"}, s.Resolve(current))
	assert.Equal(t, []string{"a"}, s.IDs())

	s.Select("a")
	assert.Equal(t, []string{"c", "a", "b"}, s.Resolve(current))
	assert.Empty(t, s.Resolve(nil))
}

func TestSelection_ResolveKeepsSelectionOrder(t *testing.T) {
	s := ExplicitSelection("videos/z.mp4", "videos/a.mp4", "videos/m.mp4")
	s.Select("videos/a.mp4", "videos/b.mp4")
	assert.Equal(t, []string{"videos/z.mp4", "videos/a.mp4", "videos/m.mp4", "videos/b.mp4"}, s.Resolve(nil))

	s.Deselect("videos/a.mp4")
	s.Select("videos/a.mp4")
	assert.Equal(t, []string{"videos/z.mp4", "videos/m.mp4", "videos/b.mp4", "videos/a.mp4"}, s.Resolve(nil))
}

func TestSelection_ZeroValue(t *testing.T) {
	var s Selection
	assert.True(t, s.IsEmpty())

	s.Select("v1")
	assert.Equal(t, []string{"v1"}, s.IDs())

	s.SelectAll()
	assert.True(t, s.IsAll())
	assert.Empty(t, s.IDs())
}
