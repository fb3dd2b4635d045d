package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayout_ContentHeight(t *testing.T) {
	assert.Equal(t, 22, NewLayout(80, 24).ContentHeight())
	assert.Equal(t, 0, NewLayout(80, 1).ContentHeight())
}

func TestLayout_Overlay(t *testing.T) {
	r := NewLayout(80, 24).Overlay()

	assert.Equal(t, Rect{X: 2, Y: 3, Width: 76, Height: 18}, r)
	assert.True(t, r.Contains(2, 3))
	assert.True(t, r.Contains(77, 20))
	assert.False(t, r.Contains(1, 10))
	assert.False(t, r.Contains(78, 10))
	assert.False(t, r.Contains(10, 0))
	assert.False(t, r.Contains(10, 21))
}
