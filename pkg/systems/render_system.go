package systems

import (
	"image/color"

	"github.com/decker502/particleclock/pkg/components"
)

// CircleFiller 能画实心圆的绘制目标
type CircleFiller interface {
	FillCircle(cx, cy, radius float64, clr color.Color)
}

// RenderSystem 按池顺序绘制所有粒子
type RenderSystem struct {
	field *ParticleField
	color color.Color
}

// NewRenderSystem 创建粒子渲染系统
func NewRenderSystem(field *ParticleField, clr color.Color) *RenderSystem {
	return &RenderSystem{field: field, color: clr}
}

// Draw 把每个粒子当前位置画成半透明实心圆，无论是否在运动
func (s *RenderSystem) Draw(dst CircleFiller) {
	for _, p := range s.field.Particles() {
		DrawParticle(dst, p, s.color)
	}
}

// DrawParticle 绘制单个粒子
func DrawParticle(dst CircleFiller, p *components.Particle, clr color.Color) {
	dst.FillCircle(p.Position.X, p.Position.Y, p.Radius, clr)
}
