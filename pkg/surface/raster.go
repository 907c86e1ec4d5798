package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var _ Resizable = (*Raster)(nil)

// Raster 基于 image.RGBA 的软件绘制表面
type Raster struct {
	img   *image.RGBA
	font  *opentype.Font
	faces map[float64]font.Face
}

// NewRaster 创建软件绘制表面
//
// 参数:
//   - width, height: 画布尺寸（像素）
//   - fontData: TTF/OTF 字体数据，为空时使用内置 Go Bold
func NewRaster(width, height int, fontData []byte) (*Raster, error) {
	f, err := opentype.Parse(defaultFont(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Raster{
		img:   image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0))),
		font:  f,
		faces: make(map[float64]font.Face),
	}, nil
}

// Image 底层图像（截图工具用它编码 PNG）
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Size 画布尺寸
func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize 改变画布尺寸，内容被清空
func (r *Raster) Resize(width, height int) {
	if w, h := r.Size(); w == width && h == height {
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
}

// Clear 清空为完全透明
func (r *Raster) Clear() {
	clear(r.img.Pix)
}

// Fill 用纯色填满
func (r *Raster) Fill(clr color.Color) {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(clr), image.Point{}, draw.Src)
}

// FillCircle 画实心圆（source-over 混合，无抗锯齿）
func (r *Raster) FillCircle(cx, cy, radius float64, clr color.Color) {
	if radius <= 0 {
		return
	}
	rect := image.Rect(
		int(math.Floor(cx-radius)), int(math.Floor(cy-radius)),
		int(math.Ceil(cx+radius))+1, int(math.Ceil(cy+radius))+1,
	).Intersect(r.img.Bounds())
	if rect.Empty() {
		return
	}
	mask := &circleMask{cx: cx, cy: cy, r: radius, rect: rect}
	draw.DrawMask(r.img, rect, image.NewUniform(clr), image.Point{}, mask, rect.Min, draw.Over)
}

// FillText 以 (cx, cy) 为中心绘制一行文字
func (r *Raster) FillText(text string, cx, cy, size float64, clr color.Color) {
	face, err := r.face(size)
	if err != nil {
		return
	}
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(clr),
		Face: face,
	}
	advance := d.MeasureString(text)
	m := face.Metrics()
	d.Dot = fixed.Point26_6{
		X: fixed.Int26_6(cx*64) - advance/2,
		Y: fixed.Int26_6(cy*64) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(text)
}

// ReadPixels 复制整个画布
func (r *Raster) ReadPixels(dst []byte) {
	copy(dst, r.img.Pix)
}

func (r *Raster) face(size float64) (font.Face, error) {
	if f, ok := r.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face (size %.1f): %w", size, err)
	}
	r.faces[size] = f
	return f, nil
}

// circleMask 圆形遮罩，像素中心落在圆内即不透明
type circleMask struct {
	cx, cy, r float64
	rect      image.Rectangle
}

func (m *circleMask) ColorModel() color.Model { return color.AlphaModel }

func (m *circleMask) Bounds() image.Rectangle { return m.rect }

func (m *circleMask) At(x, y int) color.Color {
	dx := float64(x) + 0.5 - m.cx
	dy := float64(y) + 0.5 - m.cy
	if dx*dx+dy*dy <= m.r*m.r {
		return color.Alpha{A: 255}
	}
	return color.Alpha{}
}
