package systems

import (
	"image"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/decker502/particleclock/pkg/components"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testArea = components.SpawnArea{Width: 800, Height: 600, MinRadius: 2, MaxRadius: 7, Scale: 1}

func newTestField() *ParticleField {
	return NewParticleField(rand.New(rand.NewPCG(3, 4)), testArea, zerolog.Nop())
}

func makeTargets(n int) []image.Point {
	pts := make([]image.Point, n)
	for i := range pts {
		pts[i] = image.Point{X: i % 97, Y: i / 97}
	}
	return pts
}

// TestReconcileLength 任意目标数量下调和后池长度等于目标数
func TestReconcileLength(t *testing.T) {
	now := time.Now()
	f := newTestField()

	for _, n := range []int{0, 1, 37, 500, 12, 12, 0, 250} {
		f.Reconcile(makeTargets(n), now, 500*time.Millisecond)
		assert.Equal(t, n, f.Len(), "after reconcile with %d targets", n)
	}
}

// TestReconcileFirstCallCreatesAll 首次调和时所有粒子都是新建的
func TestReconcileFirstCallCreatesAll(t *testing.T) {
	now := time.Now()
	f := newTestField()
	targets := makeTargets(50)
	f.Reconcile(targets, now, 500*time.Millisecond)

	ids := make(map[uint64]bool)
	for i, p := range f.Particles() {
		require.NotNil(t, p.Motion, "slot %d must have a motion", i)
		assert.Equal(t, components.Point{X: float64(targets[i].X), Y: float64(targets[i].Y)}, p.Motion.Destination)
		assert.False(t, ids[p.ID], "ids must be unique")
		ids[p.ID] = true
	}
	assert.Equal(t, 50, f.InFlight())
}

// TestReconcileGrowThenShrinkKeepsPrefix 先增长到 500 再缩到 100，保留前 100 个且顺序不变
func TestReconcileGrowThenShrinkKeepsPrefix(t *testing.T) {
	now := time.Now()
	f := newTestField()

	f.Reconcile(makeTargets(500), now, 500*time.Millisecond)
	require.Equal(t, 500, f.Len())
	firstHundred := append([]*components.Particle(nil), f.Particles()[:100]...)

	f.Reconcile(makeTargets(100), now.Add(100*time.Millisecond), 500*time.Millisecond)
	require.Equal(t, 100, f.Len())
	for i, p := range f.Particles() {
		assert.Same(t, firstHundred[i], p, "slot %d must hold the original particle", i)
	}

	// 再次增长时只追加新粒子
	f.Reconcile(makeTargets(120), now.Add(200*time.Millisecond), 500*time.Millisecond)
	for i := 0; i < 100; i++ {
		assert.Same(t, firstHundred[i], f.Particles()[i])
	}
	for _, p := range f.Particles()[100:] {
		assert.Greater(t, p.ID, uint64(500), "grown slots get fresh particles")
	}
}

// TestReconcileRetargetsEverySlot 每个槽位都收到新的运动并最终停在新目标上
func TestReconcileRetargetsEverySlot(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	d := 500 * time.Millisecond
	f := newTestField()

	first := []image.Point{{10, 10}, {20, 20}, {30, 30}}
	f.Reconcile(first, t0, d)

	t1 := t0.Add(time.Second)
	f.AdvanceAll(t1)
	assert.Zero(t, f.InFlight())

	second := []image.Point{{10, 10}, {25, 40}, {30, 30}, {50, 60}}
	f.Reconcile(second, t1, d)
	for i, p := range f.Particles() {
		require.NotNil(t, p.Motion, "slot %d", i)
		assert.Equal(t, t1, p.Motion.StartTime)
	}

	f.AdvanceAll(t1.Add(d))
	for i, p := range f.Particles() {
		assert.Equal(t, components.Point{X: float64(second[i].X), Y: float64(second[i].Y)}, p.Position)
		assert.False(t, p.InMotion())
	}
}

func TestSetAreaAffectsNewParticles(t *testing.T) {
	f := newTestField()
	f.SetArea(100, 40)
	assert.Equal(t, 100, f.Area().Width)
	assert.Equal(t, 40, f.Area().Height)

	f.Reconcile(makeTargets(20), time.Now(), time.Second)
	for _, p := range f.Particles() {
		assert.InDelta(t, 50, p.Position.X, 20.0001)
		assert.InDelta(t, 20, p.Position.Y, 20.0001)
	}
}
