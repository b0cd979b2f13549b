package raster

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio-tiles/internal/tile"
)

func TestRenderSize(t *testing.T) {
	img, err := Render(tile.New("Portfolio Engine"))
	require.NoError(t, err)
	assert.Equal(t, tile.Width, img.Bounds().Dx())
	assert.Equal(t, tile.Height, img.Bounds().Dy())

	img, err = Render(tile.New("Portfolio Engine"), WithScale(2))
	require.NoError(t, err)
	assert.Equal(t, 2*tile.Width, img.Bounds().Dx())
	assert.Equal(t, 2*tile.Height, img.Bounds().Dy())
}

func TestRenderIgnoresBadScale(t *testing.T) {
	img, err := Render(tile.New("x"), WithScale(-3))
	require.NoError(t, err)
	assert.Equal(t, tile.Width, img.Bounds().Dx())
}

func TestEncodePNGEveryStyle(t *testing.T) {
	for _, name := range []string{"Portfolio Engine", "😀", ""} {
		var buf bytes.Buffer
		require.NoError(t, EncodePNG(&buf, tile.New(name)), name)

		img, err := png.Decode(&buf)
		require.NoError(t, err, name)
		assert.Equal(t, tile.Width, img.Bounds().Dx())

		_, _, _, a := img.At(10, 10).RGBA()
		assert.Equal(t, uint32(0xffff), a, "background should be opaque for %q", name)
	}
}

func TestEncodePNGDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, EncodePNG(&a, tile.New("zach-dev")))
	require.NoError(t, EncodePNG(&b, tile.New("zach-dev")))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestHexColor(t *testing.T) {
	c, err := hexColor("#ffffff")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.R, 1e-9)
	assert.InDelta(t, 1.0, c.A, 1e-9)

	_, err = hexColor("not-a-colour")
	assert.Error(t, err)
}

func TestEncodePNGMatchesRender(t *testing.T) {
	l := tile.New("repo-73")
	want, err := Render(l)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, l))
	got, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, want.Bounds(), got.Bounds())

	for y := 0; y < tile.Height; y += 7 {
		for x := 0; x < tile.Width; x += 7 {
			wr, wg, wb, wa := want.At(x, y).RGBA()
			gr, gg, gb, ga := got.At(x, y).RGBA()
			require.Equal(t, [4]uint32{wr, wg, wb, wa}, [4]uint32{gr, gg, gb, ga}, "pixel %d,%d", x, y)
		}
	}
}
