// Package terminal 在终端里运行粒子时钟
//
// 终端只有字符网格，这里把每个字符格看作 CellWidth x CellHeight 个虚拟像素：
// 文字仍在虚拟像素上栅格化和采样，粒子则按覆盖的字符格混色显示。
package terminal

import (
	"image/color"
	"math"

	"github.com/decker502/particleclock/pkg/surface"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// 每个字符格对应的虚拟像素（字符格大约是 1:2 的长方形）
const (
	CellWidth  = 4
	CellHeight = 8
)

var _ surface.Surface = (*Surface)(nil)

type cell struct {
	clr     colorful.Color
	painted bool
}

// Surface 终端绘制表面
type Surface struct {
	raster     *surface.Raster
	textDirty  bool
	cols, rows int
	cells      []cell
}

// NewSurface 创建 cols x rows 字符格的终端表面
func NewSurface(cols, rows int, fontData []byte) (*Surface, error) {
	cols, rows = max(cols, 0), max(rows, 0)
	r, err := surface.NewRaster(cols*CellWidth, rows*CellHeight, fontData)
	if err != nil {
		return nil, err
	}
	return &Surface{
		raster: r,
		cols:   cols,
		rows:   rows,
		cells:  make([]cell, cols*rows),
	}, nil
}

// Grid 字符网格尺寸
func (s *Surface) Grid() (cols, rows int) {
	return s.cols, s.rows
}

// Size 虚拟像素尺寸
func (s *Surface) Size() (int, int) {
	return s.cols * CellWidth, s.rows * CellHeight
}

// Resize 按字符网格尺寸重建表面
func (s *Surface) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	if cols == s.cols && rows == s.rows {
		return
	}
	s.cols, s.rows = cols, rows
	s.cells = make([]cell, cols*rows)
	s.raster.Resize(cols*CellWidth, rows*CellHeight)
	s.textDirty = false
}

// Clear 清空所有字符格
func (s *Surface) Clear() {
	clear(s.cells)
	if s.textDirty {
		s.raster.Clear()
		s.textDirty = false
	}
}

// Fill 所有字符格填成纯色
func (s *Surface) Fill(clr color.Color) {
	c, ok := colorful.MakeColor(clr)
	if !ok {
		return
	}
	for i := range s.cells {
		s.cells[i] = cell{clr: c, painted: true}
	}
}

// FillCircle 把圆覆盖到的字符格向 clr 混合
// 圆太小覆盖不到任何格子中心时，至少涂上圆心所在的格子
func (s *Surface) FillCircle(cx, cy, radius float64, clr color.Color) {
	c, ok := colorful.MakeColor(clr)
	if !ok {
		return
	}
	_, _, _, a := clr.RGBA()
	alpha := float64(a) / 0xffff

	col0 := max(int(math.Floor((cx-radius)/CellWidth)), 0)
	col1 := min(int(math.Floor((cx+radius)/CellWidth)), s.cols-1)
	row0 := max(int(math.Floor((cy-radius)/CellHeight)), 0)
	row1 := min(int(math.Floor((cy+radius)/CellHeight)), s.rows-1)

	hit := false
	for row := row0; row <= row1; row++ {
		for col := col0; col <= col1; col++ {
			dx := (float64(col)+0.5)*CellWidth - cx
			dy := (float64(row)+0.5)*CellHeight - cy
			if dx*dx+dy*dy <= radius*radius {
				s.blend(col, row, c, alpha)
				hit = true
			}
		}
	}

	if !hit {
		col := int(math.Floor(cx / CellWidth))
		row := int(math.Floor(cy / CellHeight))
		if col >= 0 && col < s.cols && row >= 0 && row < s.rows {
			s.blend(col, row, c, alpha)
		}
	}
}

func (s *Surface) blend(col, row int, c colorful.Color, alpha float64) {
	cl := &s.cells[row*s.cols+col]
	if !cl.painted {
		cl.clr = c
		cl.painted = true
		return
	}
	cl.clr = cl.clr.BlendRgb(c, alpha).Clamped()
}

// FillText 在虚拟像素上栅格化文字（不显示，只用于采样）
func (s *Surface) FillText(text string, cx, cy, size float64, clr color.Color) {
	s.raster.FillText(text, cx, cy, size, clr)
	s.textDirty = true
}

// ReadPixels 读取虚拟像素
func (s *Surface) ReadPixels(dst []byte) {
	s.raster.ReadPixels(dst)
}

// CellColor 返回字符格当前颜色，未涂色时 ok 为 false
func (s *Surface) CellColor(col, row int) (colorful.Color, bool) {
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return colorful.Color{}, false
	}
	cl := s.cells[row*s.cols+col]
	return cl.clr, cl.painted
}

// Present 把字符格输出到 tcell 屏幕
func (s *Surface) Present(screen tcell.Screen) {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			style := tcell.StyleDefault
			if cl := s.cells[row*s.cols+col]; cl.painted {
				r, g, b := cl.clr.RGB255()
				style = style.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
			}
			screen.SetContent(col, row, ' ', nil, style)
		}
	}
	screen.Show()
}
