package surface

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var _ Resizable = (*EbitenSurface)(nil)

// EbitenSurface 窗口模式的绘制表面
//
// 所有绘制都落在离屏 canvas 上，App.Draw 再把 canvas 贴到屏幕。
// ReadPixels 只能在游戏循环启动后调用（Update/Draw 内）。
type EbitenSurface struct {
	canvas *ebiten.Image
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

// NewEbitenSurface 创建窗口模式绘制表面，fontData 为空时使用内置 Go Bold
func NewEbitenSurface(width, height int, fontData []byte) (*EbitenSurface, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(defaultFont(fontData)))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source: %w", err)
	}
	return &EbitenSurface{
		canvas: ebiten.NewImage(max(width, 1), max(height, 1)),
		source: source,
		faces:  make(map[float64]*text.GoTextFace),
	}, nil
}

// Image 离屏画布
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.canvas
}

// Size 画布尺寸
func (s *EbitenSurface) Size() (int, int) {
	b := s.canvas.Bounds()
	return b.Dx(), b.Dy()
}

// Resize 重新分配画布
func (s *EbitenSurface) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if w, h := s.Size(); w == width && h == height {
		return
	}
	s.canvas.Deallocate()
	s.canvas = ebiten.NewImage(width, height)
}

// Clear 清空为透明
func (s *EbitenSurface) Clear() {
	s.canvas.Clear()
}

// Fill 用纯色填满
func (s *EbitenSurface) Fill(clr color.Color) {
	s.canvas.Fill(clr)
}

// FillCircle 画抗锯齿实心圆
func (s *EbitenSurface) FillCircle(cx, cy, radius float64, clr color.Color) {
	vector.DrawFilledCircle(s.canvas, float32(cx), float32(cy), float32(radius), clr, true)
}

// FillText 居中绘制文字
func (s *EbitenSurface) FillText(str string, cx, cy, size float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(s.canvas, str, s.face(size), op)
}

// ReadPixels 读取画布像素
func (s *EbitenSurface) ReadPixels(dst []byte) {
	s.canvas.ReadPixels(dst)
}

func (s *EbitenSurface) face(size float64) *text.GoTextFace {
	if f, ok := s.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{
		Source:    s.source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	s.faces[size] = f
	return f
}
