package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPlaceholder(t *testing.T) {
	img, err := renderPlaceholder()
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, 340, bounds.Dx())
	assert.Equal(t, 220, bounds.Dy())

	// Background outside any drawn element.
	assert.Equal(t, placeholderBackground, img.RGBAAt(5, 5))
	assert.Equal(t, placeholderBackground, img.RGBAAt(330, 10))

	// The gold chip covers (20,20)-(70,60).
	assert.Equal(t, placeholderChip, img.RGBAAt(40, 40))
	assert.Equal(t, placeholderChip, img.RGBAAt(21, 21))
	assert.Equal(t, placeholderBackground, img.RGBAAt(19, 19))
}

func TestCopyImage(t *testing.T) {
	src, err := renderPlaceholder()
	require.NoError(t, err)

	dst := copyImage(src)
	require.Equal(t, src.Bounds(), dst.Bounds())
	assert.Equal(t, src.Pix, dst.Pix)

	dst.Pix[0] ^= 0xff
	assert.NotEqual(t, src.Pix[0], dst.Pix[0])
}
