// Package app 提供窗口模式的应用包装器
//
// App 实现 ebiten.Game 接口：Layout 按设备像素比放大画布，
// Update 每帧推进一次粒子时钟，Draw 把离屏画布贴到屏幕。
// 启动前应调用 ebiten.SetTPS(ebiten.SyncWithFPS)，让 Update 与刷新率同步。
package app

import (
	"fmt"
	"math"

	"github.com/decker502/particleclock/pkg/clock"
	"github.com/decker502/particleclock/pkg/config"
	"github.com/decker502/particleclock/pkg/surface"
	"github.com/decker502/particleclock/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
)

// Config 定义应用启动配置
type Config struct {
	// Clock 时钟配置，为 nil 时使用默认配置
	Clock *config.ClockConfig
	// WindowWidth / WindowHeight 窗口逻辑尺寸
	WindowWidth  int
	WindowHeight int
	// Scale 固定设备像素比，<= 0 时从当前显示器读取
	Scale float64
	// Seed 随机种子，0 表示随机
	Seed uint64
	// Source 时间来源，为 nil 时使用系统时间
	Source clock.Clock
	// Logger 日志
	Logger zerolog.Logger
}

// App 是粒子时钟的窗口包装器，实现 ebiten.Game 接口
type App struct {
	surface *surface.EbitenSurface
	clock   *clock.ParticleClock
	source  clock.Clock
	logger  zerolog.Logger

	fixedScale bool
	scale      float64

	// Layout 计算出的画布尺寸，在 Update 中应用
	layoutWidth  int
	layoutHeight int

	windowWidth              int
	windowHeight             int
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化窗口应用
func NewApp(cfg Config) (*App, error) {
	clockCfg := cfg.Clock
	if clockCfg == nil {
		clockCfg = config.DefaultClockConfig()
	}
	if cfg.WindowWidth <= 0 {
		cfg.WindowWidth = config.DefaultWindowWidth
	}
	if cfg.WindowHeight <= 0 {
		cfg.WindowHeight = config.DefaultWindowHeight
	}
	source := cfg.Source
	if source == nil {
		source = clock.SystemClock{}
	}
	logger := cfg.Logger.With().Str("component", "app").Logger()

	scale := cfg.Scale
	fixedScale := scale > 0
	if !fixedScale {
		// 真实比例在第一次 Layout 时从显示器读取
		scale = 1
	}

	fontData, err := surface.LoadFontData(clockCfg.FontPath)
	if err != nil {
		return nil, err
	}

	width := int(math.Ceil(float64(cfg.WindowWidth) * scale))
	height := int(math.Ceil(float64(cfg.WindowHeight) * scale))
	surf, err := surface.NewEbitenSurface(width, height, fontData)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", surface.ErrNoSurface, err)
	}

	pc, err := clock.New(surf, clock.Options{
		Config: clockCfg,
		Scale:  scale,
		Rand:   utils.NewRand(cfg.Seed),
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int("width", width).Int("height", height).Bool("fixedScale", fixedScale).Msg("window app initialized")

	return &App{
		surface:      surf,
		clock:        pc,
		source:       source,
		logger:       logger,
		fixedScale:   fixedScale,
		scale:        scale,
		layoutWidth:  width,
		layoutHeight: height,
		windowWidth:  cfg.WindowWidth,
		windowHeight: cfg.WindowHeight,
	}, nil
}

// Update 每帧调用一次
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.logger.Info().Msg("quit requested")
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.windowWidth, a.windowHeight)
			a.logger.Debug().Int("width", a.windowWidth).Int("height", a.windowHeight).Msg("delayed SetWindowSize")
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			a.logger.Debug().Msg("exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.applyLayout()
	a.clock.Step(a.source.Now())
	return nil
}

// layoutChange applyLayout 需要执行的动作
type layoutChange int

const (
	layoutUnchanged layoutChange = iota
	layoutRescale                // 设备像素比变化：重建画布并 SetScale
	layoutResize                 // 只有尺寸变化：重建画布并 Invalidate
)

// decideLayout 比较时钟当前状态和 Layout 的结果
// 比例变化优先，SetScale 本身会触发重新采样
func decideLayout(clockScale, scale float64, surfW, surfH, layoutW, layoutH int) layoutChange {
	if clockScale != scale {
		return layoutRescale
	}
	if surfW != layoutW || surfH != layoutH {
		return layoutResize
	}
	return layoutUnchanged
}

// applyLayout 把 Layout 得到的尺寸和比例应用到画布和时钟
func (a *App) applyLayout() {
	w, h := a.surface.Size()
	switch decideLayout(a.clock.Scale(), a.scale, w, h, a.layoutWidth, a.layoutHeight) {
	case layoutRescale:
		a.logger.Debug().Float64("scale", a.scale).Msg("device scale changed")
		a.surface.Resize(a.layoutWidth, a.layoutHeight)
		a.clock.SetScale(a.scale)
	case layoutResize:
		a.logger.Debug().Int("width", a.layoutWidth).Int("height", a.layoutHeight).Msg("surface resized")
		a.surface.Resize(a.layoutWidth, a.layoutHeight)
		a.clock.Invalidate()
	}
}

// Draw 把离屏画布绘制到屏幕
func (a *App) Draw(screen *ebiten.Image) {
	screen.DrawImage(a.surface.Image(), &ebiten.DrawImageOptions{})
}

// Layout 返回物理像素尺寸，保证文字和粒子在高分屏上清晰
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if !a.fixedScale {
		if m := ebiten.Monitor(); m != nil {
			if s := m.DeviceScaleFactor(); s > 0 {
				a.scale = s
			}
		}
	}
	a.layoutWidth = max(int(math.Ceil(float64(outsideWidth)*a.scale)), 1)
	a.layoutHeight = max(int(math.Ceil(float64(outsideHeight)*a.scale)), 1)
	return a.layoutWidth, a.layoutHeight
}

// Clock 返回粒子时钟
func (a *App) Clock() *clock.ParticleClock {
	return a.clock
}
