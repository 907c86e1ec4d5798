// Package clock 粒子时钟的帧循环
//
// ParticleClock 持有绘制表面、粒子池和上一次采样的文字，
// 每帧由驱动（Ebitengine 或终端）调用一次 Step。
package clock

import (
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/decker502/particleclock/pkg/components"
	"github.com/decker502/particleclock/pkg/config"
	"github.com/decker502/particleclock/pkg/surface"
	"github.com/decker502/particleclock/pkg/systems"
	"github.com/decker502/particleclock/pkg/utils"
	"github.com/rs/zerolog"
)

// glyphColor 文字栅格化颜色，必须与采样器识别的纯黑一致
var glyphColor = color.RGBA{A: 255}

// Options 创建 ParticleClock 的参数
type Options struct {
	// Config 时钟配置，为 nil 时使用默认配置
	Config *config.ClockConfig
	// Scale 设备像素比，<= 0 时按 1 处理
	Scale float64
	// Rand 随机源，为 nil 时使用随机种子
	Rand *rand.Rand
	// Logger 日志
	Logger zerolog.Logger
}

// Stats 帧循环统计
type Stats struct {
	Frames    int // Step 调用次数
	Resamples int // 文字变化导致的重新栅格化次数
}

// ParticleClock 粒子时钟
type ParticleClock struct {
	surface  surface.Surface
	field    *systems.ParticleField
	renderer *systems.RenderSystem
	snapshot components.TargetSnapshot

	cfg        *config.ClockConfig
	scale      float64
	background color.NRGBA
	pixels     []byte
	stats      Stats
	logger     zerolog.Logger
}

// New 创建粒子时钟
//
// 返回:
//   - *ParticleClock: 时钟实例
//   - error: s 为 nil 时返回 surface.ErrNoSurface
func New(s surface.Surface, opts Options) (*ParticleClock, error) {
	if s == nil {
		return nil, surface.ErrNoSurface
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultClockConfig()
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	rng := opts.Rand
	if rng == nil {
		rng = utils.NewRand(0)
	}
	logger := opts.Logger.With().Str("component", "clock").Logger()

	w, h := s.Size()
	field := systems.NewParticleField(rng, components.SpawnArea{
		Width:     w,
		Height:    h,
		MinRadius: cfg.MinRadius,
		MaxRadius: cfg.MaxRadius,
		Scale:     scale,
	}, opts.Logger)

	logger.Info().Int("width", w).Int("height", h).Float64("scale", scale).Msg("particle clock ready")

	return &ParticleClock{
		surface:    s,
		field:      field,
		renderer:   systems.NewRenderSystem(field, cfg.ParticleRGBA()),
		cfg:        cfg,
		scale:      scale,
		background: cfg.BackgroundRGBA(),
		logger:     logger,
	}, nil
}

// Field 粒子池
func (c *ParticleClock) Field() *systems.ParticleField {
	return c.field
}

// Snapshot 上一次采样结果
func (c *ParticleClock) Snapshot() components.TargetSnapshot {
	return c.snapshot
}

// Stats 帧循环统计
func (c *ParticleClock) Stats() Stats {
	return c.stats
}

// Scale 设备像素比
func (c *ParticleClock) Scale() float64 {
	return c.scale
}

// SetScale 修改设备像素比（窗口移到另一块屏幕时）
// 已有粒子保持原半径，新粒子和文字字号使用新比例
func (c *ParticleClock) SetScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	if scale == c.scale {
		return
	}
	c.scale = scale
	c.field.SetScale(scale)
	c.Invalidate()
}

// Invalidate 丢弃缓存的文字，下一帧重新采样
// 画布尺寸变化后调用，粒子会飞向新布局
func (c *ParticleClock) Invalidate() {
	w, h := c.surface.Size()
	c.field.SetArea(w, h)
	c.snapshot = components.TargetSnapshot{}
	c.logger.Debug().Int("width", w).Int("height", h).Msg("layout invalidated")
}

// Step 执行一帧：推进粒子 → 检查文字变化 → 绘制
func (c *ParticleClock) Step(now time.Time) {
	c.stats.Frames++
	c.Update(now)
	c.Draw()
}

// Update 推进所有粒子；显示文字变化时重新采样并调和粒子池
//
// 返回:
//   - bool: 本帧是否发生了重新采样
func (c *ParticleClock) Update(now time.Time) bool {
	// 先推进到本帧时间，中途换目标时以实时位置为起点
	c.field.AdvanceAll(now)

	text := FormatClock(now)
	if text == c.snapshot.Text {
		return false
	}

	c.retarget(text, now)
	return true
}

// retarget 栅格化文字、采样目标点、调和粒子池
func (c *ParticleClock) retarget(text string, now time.Time) {
	w, h := c.surface.Size()
	if w <= 0 || h <= 0 {
		return
	}

	c.surface.Clear()
	c.surface.FillText(text, float64(w)/2, float64(h)/2, c.cfg.FontSize*c.scale, glyphColor)

	need := 4 * w * h
	if cap(c.pixels) < need {
		c.pixels = make([]byte, need)
	}
	c.pixels = c.pixels[:need]
	c.surface.ReadPixels(c.pixels)

	points := systems.SampleTargets(c.pixels, w, h, c.cfg.StrideGap)

	// 文字只用来取点，不直接显示
	c.surface.Clear()

	c.field.SetArea(w, h)
	c.field.Reconcile(points, now, c.cfg.MoveDuration())

	c.snapshot = components.TargetSnapshot{Text: text, Points: points}
	c.stats.Resamples++
	c.logger.Debug().Str("text", text).Int("targets", len(points)).Msg("display text changed")
}

// Draw 清屏并按池顺序绘制所有粒子
func (c *ParticleClock) Draw() {
	c.surface.Clear()
	if c.background.A > 0 {
		c.surface.Fill(c.background)
	}
	c.renderer.Draw(c.surface)
}
