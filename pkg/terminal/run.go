package terminal

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/decker502/particleclock/pkg/clock"
	"github.com/decker502/particleclock/pkg/config"
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
)

// Options 终端运行参数
type Options struct {
	Config *config.ClockConfig
	// Scale > 0 时固定缩放，否则按终端宽度自动适配
	Scale  float64
	Rand   *rand.Rand
	Clock  clock.Clock
	Logger zerolog.Logger
	// FontData 为空时使用内置 Go Bold
	FontData []byte
}

// FitScale 让 8 个字符的 "HH:MM:SS" 占满约 90% 的宽度，最大为 1
func FitScale(width int, fontSize float64) float64 {
	if width <= 0 || fontSize <= 0 {
		return 1
	}
	return min(1, 0.9*float64(width)/(4.2*fontSize))
}

type runner struct {
	screen tcell.Screen
	surf   *Surface
	clock  *clock.ParticleClock
	source clock.Clock
	cfg    *config.ClockConfig
	scale  float64
	fixed  bool
	logger zerolog.Logger
}

// Run 在 screen 上运行粒子时钟，直到 ctx 结束或用户按下 Esc / Ctrl-C / q
//
// 调用方负责 screen.Init 和 screen.Fini
func Run(ctx context.Context, screen tcell.Screen, opts Options) error {
	r, err := newRunner(screen, opts)
	if err != nil {
		return err
	}

	fps := r.cfg.TerminalFPS
	if fps <= 0 {
		fps = config.DefaultClockConfig().TerminalFPS
	}

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	r.frame()
	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("context done, leaving terminal")
			return nil
		case ev := <-events:
			if r.handleEvent(ev) {
				r.logger.Info().Msg("quit requested")
				return nil
			}
		case <-ticker.C:
			r.frame()
		}
	}
}

func newRunner(screen tcell.Screen, opts Options) (*runner, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultClockConfig()
	}
	source := opts.Clock
	if source == nil {
		source = clock.SystemClock{}
	}

	cols, rows := screen.Size()
	surf, err := NewSurface(cols, rows, opts.FontData)
	if err != nil {
		return nil, err
	}

	fixed := opts.Scale > 0
	scale := opts.Scale
	if !fixed {
		w, _ := surf.Size()
		scale = FitScale(w, cfg.FontSize)
	}

	pc, err := clock.New(surf, clock.Options{
		Config: cfg,
		Scale:  scale,
		Rand:   opts.Rand,
		Logger: opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &runner{
		screen: screen,
		surf:   surf,
		clock:  pc,
		source: source,
		cfg:    cfg,
		scale:  scale,
		fixed:  fixed,
		logger: opts.Logger.With().Str("component", "terminal").Logger(),
	}, nil
}

func (r *runner) frame() {
	r.clock.Step(r.source.Now())
	r.surf.Present(r.screen)
}

// handleEvent 处理一个终端事件，返回 true 表示退出
func (r *runner) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			return ev.Rune() == 'q' || ev.Rune() == 'Q'
		}
	case *tcell.EventResize:
		r.screen.Sync()
		cols, rows := ev.Size()
		r.resize(cols, rows)
	}
	return false
}

func (r *runner) resize(cols, rows int) {
	oldCols, oldRows := r.surf.Grid()
	if cols == oldCols && rows == oldRows {
		return
	}
	r.surf.Resize(cols, rows)
	r.logger.Debug().Int("cols", cols).Int("rows", rows).Msg("terminal resized")

	if !r.fixed {
		w, _ := r.surf.Size()
		if scale := FitScale(w, r.cfg.FontSize); scale != r.scale {
			r.scale = scale
			r.clock.SetScale(scale)
			return
		}
	}
	r.clock.Invalidate()
}
