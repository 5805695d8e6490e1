package viewport

import (
	"testing"

	"github.com/jwebster45206/wizard-village/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClipper(t *testing.T) {
	c, err := NewClipper("log", scene.Rect{X: 5, Y: 5, W: 100, H: 50})
	require.NoError(t, err)
	assert.Equal(t, c.Content().Parent(), c.Node())

	assert.True(t, c.Shows(scene.Rect{Y: 40, W: 10, H: 20}))
	assert.False(t, c.Shows(scene.Rect{Y: 50, W: 10, H: 20}))

	c.SetOffset(45)
	assert.Equal(t, 45.0, c.Offset())
	assert.True(t, c.Shows(scene.Rect{Y: 50, W: 10, H: 20}))
	assert.False(t, c.Shows(scene.Rect{Y: 0, W: 10, H: 20}))
}

func TestNewClipper_Invalid(t *testing.T) {
	_, err := NewClipper("bad", scene.Rect{W: -1, H: 10})
	assert.ErrorIs(t, err, ErrInvalidViewport)
}
