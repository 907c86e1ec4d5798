package systems

import (
	"image"
	"math/rand/v2"
	"time"

	"github.com/decker502/particleclock/pkg/components"
	"github.com/rs/zerolog"
)

// ParticleField 管理有序的粒子池
//
// 槽位是粒子与目标之间唯一的对应关系：粒子 i 总是飞向目标 i。
// 不做最近邻重新分配，字形变化时远处的粒子会长距离飞行。
type ParticleField struct {
	particles []*components.Particle
	nextID    uint64
	rng       *rand.Rand
	area      components.SpawnArea
	logger    zerolog.Logger
}

// NewParticleField 创建空粒子池
//
// 参数:
//   - rng: 新粒子半径和入场角度的随机源
//   - area: 新粒子的生成参数（画布尺寸可稍后通过 SetArea 更新）
//   - logger: 日志
func NewParticleField(rng *rand.Rand, area components.SpawnArea, logger zerolog.Logger) *ParticleField {
	return &ParticleField{
		particles: make([]*components.Particle, 0, 1024),
		nextID:    1, // 0 保留为无效 ID
		rng:       rng,
		area:      area,
		logger:    logger.With().Str("component", "field").Logger(),
	}
}

// SetArea 更新新粒子的生成区域（画布尺寸变化后调用）
func (f *ParticleField) SetArea(width, height int) {
	f.area.Width = width
	f.area.Height = height
}

// SetScale 更新新粒子的设备像素比
func (f *ParticleField) SetScale(scale float64) {
	f.area.Scale = scale
}

// Area 返回当前的生成参数
func (f *ParticleField) Area() components.SpawnArea {
	return f.area
}

// Len 粒子数量
func (f *ParticleField) Len() int {
	return len(f.particles)
}

// Particles 按池顺序返回所有粒子（只读，不要修改返回的切片）
func (f *ParticleField) Particles() []*components.Particle {
	return f.particles
}

// InFlight 正在运动中的粒子数量
func (f *ParticleField) InFlight() int {
	n := 0
	for _, p := range f.particles {
		if p.InMotion() {
			n++
		}
	}
	return n
}

// Reconcile 让粒子池与目标列表对齐
//
//  1. 槽位 i 没有粒子时创建并追加，然后让槽位 i 的粒子运动到 targets[i]
//  2. 目标少于粒子时截断尾部，多余粒子的运动直接丢弃
//
// 完成后 Len() == len(targets)。
func (f *ParticleField) Reconcile(targets []image.Point, now time.Time, duration time.Duration) {
	before := len(f.particles)

	for i, pt := range targets {
		if i >= len(f.particles) {
			f.particles = append(f.particles, components.NewParticle(f.nextID, f.rng, f.area))
			f.nextID++
		}
		f.particles[i].MoveTo(components.Point{X: float64(pt.X), Y: float64(pt.Y)}, now, duration)
	}

	if len(targets) < len(f.particles) {
		// 释放引用，让被截掉的粒子可以被回收
		clear(f.particles[len(targets):])
		f.particles = f.particles[:len(targets)]
	}

	if after := len(f.particles); after != before {
		f.logger.Debug().Int("from", before).Int("to", after).Msg("particle pool resized")
	}
}

// AdvanceAll 用同一帧时间推进所有粒子
func (f *ParticleField) AdvanceAll(now time.Time) {
	for _, p := range f.particles {
		p.Advance(now)
	}
}
