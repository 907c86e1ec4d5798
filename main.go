package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/decker502/particleclock/pkg/app"
	"github.com/decker502/particleclock/pkg/config"
	"github.com/decker502/particleclock/pkg/logging"
	"github.com/decker502/particleclock/pkg/surface"
	"github.com/decker502/particleclock/pkg/terminal"
	"github.com/decker502/particleclock/pkg/utils"
	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	verbose      bool
	logLevel     string
	logFile      string
	terminalMode bool
	windowWidth  int
	windowHeight int
	scale        float64
	seed         uint64
)

var rootCmd = &cobra.Command{
	Use:           "particleclock",
	Short:         "Particle clock - HH:MM:SS drawn by particles that fly into place",
	Long:          `Particle clock renders the local time as a cloud of small circles. Every second the text is rasterized offscreen, sampled into target points, and the particles glide to their new positions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to clock config YAML (defaults are used when empty)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides --verbose")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file (terminal mode discards logs otherwise)")
	rootCmd.Flags().BoolVarP(&terminalMode, "terminal", "t", false, "Render in the terminal instead of a window")
	rootCmd.Flags().IntVar(&windowWidth, "width", config.DefaultWindowWidth, "Window width in logical pixels")
	rootCmd.Flags().IntVar(&windowHeight, "height", config.DefaultWindowHeight, "Window height in logical pixels")
	rootCmd.Flags().Float64Var(&scale, "scale", 0, "Fixed device pixel ratio (0 = detect)")
	rootCmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed for particle spawning (0 = random)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	out, closeLog, err := logOutput()
	if err != nil {
		return err
	}
	defer closeLog()

	logger := logging.New(logging.Options{
		Verbose: verbose,
		Level:   logLevel,
		Out:     out,
		NoColor: logFile != "",
	})

	cfg, err := config.LoadClockConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("failed to load config")
		return err
	}

	if terminalMode {
		return runTerminal(cmd.Context(), cfg, logger)
	}
	return runWindow(cfg, logger)
}

// logOutput 终端模式下日志不能写到屏幕上
func logOutput() (io.Writer, func(), error) {
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return f, func() { f.Close() }, nil
	}
	if terminalMode {
		return io.Discard, func() {}, nil
	}
	return os.Stderr, func() {}, nil
}

func runWindow(cfg *config.ClockConfig, logger zerolog.Logger) error {
	a, err := app.NewApp(app.Config{
		Clock:        cfg,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		Scale:        scale,
		Seed:         seed,
		Logger:       logger,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to create app")
		return err
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Particle Clock")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	if err := ebiten.RunGame(a); err != nil {
		logger.Error().Err(err).Msg("game loop exited with error")
		return err
	}
	return nil
}

func runTerminal(ctx context.Context, cfg *config.ClockConfig, logger zerolog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fontData, err := surface.LoadFontData(cfg.FontPath)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("%w: %w", surface.ErrNoSurface, err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("%w: %w", surface.ErrNoSurface, err)
	}
	defer screen.Fini()

	return terminal.Run(ctx, screen, terminal.Options{
		Config:   cfg,
		Scale:    scale,
		Rand:     utils.NewRand(seed),
		Logger:   logger,
		FontData: fontData,
	})
}
