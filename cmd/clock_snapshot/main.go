// Package main 把粒子时钟渲染到离屏画布并保存为 PNG，不需要窗口或显卡
//
// 用法:
//
//	go run ./cmd/clock_snapshot [flags]
//
// 参数:
//
//	--time <HH:MM:SS>   显示的时间（默认当前时间）
//	--after <duration>  从第一帧开始经过的时间，粒子飞行 500ms 后到位（默认 1s）
//	--fps <n>           模拟帧率（默认 60）
//	--width/--height    画布尺寸
//	--scale <f>         设备像素比
//	--seed <n>          随机种子
//	--config <path>     时钟配置
//	--out <path>        输出文件（默认 clock.png）
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/decker502/particleclock/pkg/clock"
	"github.com/decker502/particleclock/pkg/config"
	"github.com/decker502/particleclock/pkg/logging"
	"github.com/decker502/particleclock/pkg/surface"
	"github.com/decker502/particleclock/pkg/utils"
)

func main() {
	timeFlag := flag.String("time", "", "Time to display as HH:MM:SS (default: now)")
	after := flag.Duration("after", time.Second, "Simulated time since the first frame")
	fps := flag.Int("fps", 60, "Simulated frame rate")
	width := flag.Int("width", config.DefaultWindowWidth, "Canvas width in logical pixels")
	height := flag.Int("height", config.DefaultWindowHeight, "Canvas height in logical pixels")
	scale := flag.Float64("scale", 1, "Device pixel ratio")
	seed := flag.Uint64("seed", 1, "Random seed (0 = random)")
	configPath := flag.String("config", "", "Path to clock config YAML")
	out := flag.String("out", "clock.png", "Output PNG path")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	logger := logging.New(logging.Options{Verbose: *verbose})

	cfg, err := config.LoadClockConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	start, err := parseStart(*timeFlag)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid --time, want HH:MM:SS")
	}

	fontData, err := surface.LoadFontData(cfg.FontPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load font")
	}

	if *scale <= 0 {
		*scale = 1
	}
	w := int(float64(*width) * *scale)
	h := int(float64(*height) * *scale)
	raster, err := surface.NewRaster(w, h, fontData)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create raster")
	}

	pc, err := clock.New(raster, clock.Options{
		Config: cfg,
		Scale:  *scale,
		Rand:   utils.NewRand(*seed),
		Logger: logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create clock")
	}

	if *fps <= 0 {
		*fps = 60
	}
	frame := time.Second / time.Duration(*fps)
	end := start.Add(*after)
	for now := start; !now.After(end); now = now.Add(frame) {
		pc.Step(now)
	}

	f, err := os.Create(*out)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *out).Msg("failed to create output file")
	}
	defer f.Close()
	if err := png.Encode(f, raster.Image()); err != nil {
		logger.Fatal().Err(err).Msg("failed to encode PNG")
	}

	stats := pc.Stats()
	fmt.Printf("%s -> %s (%dx%d, %d particles, %d frames, %d resamples)\n",
		pc.Snapshot().Text, *out, w, h, pc.Field().Len(), stats.Frames, stats.Resamples)
}

// parseStart 把 HH:MM:SS 解析为今天的本地时间
func parseStart(s string) (time.Time, error) {
	now := time.Now()
	if s == "" {
		return now, nil
	}
	t, err := time.ParseInLocation(clock.TimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local), nil
}
