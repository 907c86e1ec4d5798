package components

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/decker502/particleclock/pkg/utils"
)

// Point 二维坐标（像素，浮点）
type Point struct {
	X, Y float64
}

// Add 返回 p + q
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub 返回 p - q
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul 返回 p * k
func (p Point) Mul(k float64) Point { return Point{p.X * k, p.Y * k} }

// Motion 粒子的运动状态
// 为 nil 时粒子处于空闲状态
type Motion struct {
	Origin      Point         // 运动起点（发起运动时粒子的实时位置）
	Destination Point         // 运动终点
	Velocity    Point         // 每轴速度（像素/秒）
	StartTime   time.Time     // 运动开始时间
	Duration    time.Duration // 运动总时长
}

// SpawnArea 新粒子的生成参数
//
// 新粒子半径取 [MinRadius*Scale, MaxRadius*Scale]，
// 初始位置在以画布中心为圆心、min(Width, Height)/2 为半径的圆周上随机分布。
type SpawnArea struct {
	Width, Height        int
	MinRadius, MaxRadius float64
	Scale                float64 // 设备像素比
}

// Particle 组成数字的单个圆形粒子
//
// 粒子只会在池尾部追加或截断，不会被单独销毁。
// Motion 在每次 MoveTo 时被整体替换，不排队。
type Particle struct {
	ID       uint64
	Radius   float64
	Position Point
	Motion   *Motion
}

// NewParticle 创建新粒子
// 半径和入场角度都取整数，角度单位为度
func NewParticle(id uint64, rng *rand.Rand, area SpawnArea) *Particle {
	scale := area.Scale
	if scale <= 0 {
		scale = 1
	}
	radius := utils.RandomInt(rng, int(math.Round(area.MinRadius*scale)), int(math.Round(area.MaxRadius*scale)))

	// 大圈半径和圆心
	r := float64(min(area.Width, area.Height)) / 2
	cx := float64(area.Width) / 2
	cy := float64(area.Height) / 2
	rad := utils.DegToRad(float64(utils.RandomInt(rng, 0, 360)))

	return &Particle{
		ID:     id,
		Radius: float64(radius),
		Position: Point{
			X: cx + r*math.Cos(rad),
			Y: cy + r*math.Sin(rad),
		},
	}
}

// InMotion 粒子是否有进行中的运动
func (p *Particle) InMotion() bool {
	return p.Motion != nil
}

// MoveTo 让粒子在 duration 内匀速运动到 dest
//
// 先把位置推进到 now 时刻，再以实时位置为起点重新计算速度，
// 因此中途改变目标不会让粒子跳回上一次运动的起点。
func (p *Particle) MoveTo(dest Point, now time.Time, duration time.Duration) {
	p.Advance(now)

	if duration <= 0 {
		p.Position = dest
		p.Motion = nil
		return
	}

	secs := duration.Seconds()
	p.Motion = &Motion{
		Origin:      p.Position,
		Destination: dest,
		Velocity:    dest.Sub(p.Position).Mul(1 / secs),
		StartTime:   now,
		Duration:    duration,
	}
}

// Advance 把位置推进到 now 时刻
//
// 位置 = 起点 + 速度 * 已运动时间；运动时间达到总时长后直接设为终点并清除运动状态。
func (p *Particle) Advance(now time.Time) {
	m := p.Motion
	if m == nil {
		return
	}

	elapsed := now.Sub(m.StartTime)
	if elapsed >= m.Duration {
		p.Position = m.Destination
		p.Motion = nil
		return
	}
	if elapsed < 0 {
		elapsed = 0
	}

	p.Position = m.Origin.Add(m.Velocity.Mul(elapsed.Seconds()))
}
