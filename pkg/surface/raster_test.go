package surface

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRaster(t *testing.T, w, h int) *Raster {
	t.Helper()
	data, err := LoadFontData("")
	require.NoError(t, err)
	r, err := NewRaster(w, h, data)
	require.NoError(t, err)
	return r
}

func pixelAt(buf []byte, w, x, y int) color.RGBA {
	i := (x + y*w) * 4
	return color.RGBA{buf[i], buf[i+1], buf[i+2], buf[i+3]}
}

func TestRasterSizeAndResize(t *testing.T) {
	r := newTestRaster(t, 64, 32)
	w, h := r.Size()
	assert.Equal(t, 64, w)
	assert.Equal(t, 32, h)

	r.Resize(10, 20)
	w, h = r.Size()
	assert.Equal(t, 10, w)
	assert.Equal(t, 20, h)
}

func TestRasterFillAndClear(t *testing.T) {
	r := newTestRaster(t, 4, 4)
	buf := make([]byte, 4*4*4)

	r.Fill(color.White)
	r.ReadPixels(buf)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, pixelAt(buf, 4, 3, 3))

	r.Clear()
	r.ReadPixels(buf)
	assert.Equal(t, color.RGBA{}, pixelAt(buf, 4, 0, 0))
}

func TestRasterFillCircle(t *testing.T) {
	r := newTestRaster(t, 40, 40)
	r.FillCircle(20, 20, 5, color.Black)

	buf := make([]byte, 40*40*4)
	r.ReadPixels(buf)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, pixelAt(buf, 40, 20, 20), "center is filled")
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, pixelAt(buf, 40, 23, 20))
	assert.Equal(t, color.RGBA{}, pixelAt(buf, 40, 26, 20), "outside radius stays clear")
	assert.Equal(t, color.RGBA{}, pixelAt(buf, 40, 24, 24), "corner of bounding box stays clear")

	// 超出画布的圆不会 panic
	r.FillCircle(-100, -100, 5, color.Black)
	r.FillCircle(39, 39, 10, color.Black)
	r.FillCircle(10, 10, 0, color.Black)
}

func TestRasterFillCircleBlendsTranslucent(t *testing.T) {
	r := newTestRaster(t, 10, 10)
	r.Fill(color.White)
	r.FillCircle(5, 5, 3, color.NRGBA{R: 0x54, G: 0x45, B: 0x54, A: 0x4d})

	buf := make([]byte, 10*10*4)
	r.ReadPixels(buf)
	px := pixelAt(buf, 10, 5, 5)
	assert.Equal(t, uint8(255), px.A)
	assert.Less(t, px.R, uint8(255))
	assert.Greater(t, px.R, uint8(0x54))
}

// TestRasterFillTextProducesGlyphPixels 黑色文字的笔画内部是完全不透明的纯黑
func TestRasterFillTextProducesGlyphPixels(t *testing.T) {
	const w, h = 400, 200
	r := newTestRaster(t, w, h)
	r.FillText("12:00:00", w/2, h/2, 60, color.Black)

	buf := make([]byte, w*h*4)
	r.ReadPixels(buf)

	black := 0
	minX, maxX, minY, maxY := w, 0, h, 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if pixelAt(buf, w, x, y) == (color.RGBA{0, 0, 0, 255}) {
				black++
				minX, maxX = min(minX, x), max(maxX, x)
				minY, maxY = min(minY, y), max(maxY, y)
			}
		}
	}
	require.Greater(t, black, 500)

	// 文字大致居中
	assert.InDelta(t, w/2, (minX+maxX)/2, 20)
	assert.InDelta(t, h/2, (minY+maxY)/2, 20)
}

func TestNewRasterBadFont(t *testing.T) {
	_, err := NewRaster(10, 10, []byte("not a font"))
	assert.Error(t, err)
}

func TestNewRasterEmptyFontUsesBuiltin(t *testing.T) {
	for _, data := range [][]byte{nil, {}} {
		r, err := NewRaster(200, 80, data)
		require.NoError(t, err)

		r.FillText("8", 100, 40, 40, color.Black)
		buf := make([]byte, 4*200*80)
		r.ReadPixels(buf)
		black := 0
		for i := 0; i < len(buf); i += 4 {
			if buf[i] == 0 && buf[i+3] == 255 {
				black++
			}
		}
		assert.Positive(t, black)
	}
}

func TestLoadFontDataMissingFile(t *testing.T) {
	_, err := LoadFontData("/nonexistent/font.ttf")
	assert.Error(t, err)
}
