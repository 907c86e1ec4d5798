package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// 默认窗口尺寸（逻辑像素）
const (
	DefaultWindowWidth  = 1024
	DefaultWindowHeight = 480
)

// ClockConfig 粒子时钟配置
//
// 所有尺寸都是逻辑像素，运行时再乘以设备像素比。
// 配置文件中未出现的字段保留默认值。
type ClockConfig struct {
	// MinRadius / MaxRadius 粒子半径范围
	MinRadius float64 `yaml:"minRadius"`
	MaxRadius float64 `yaml:"maxRadius"`

	// StrideGap 采样文字像素的间隔
	StrideGap int `yaml:"strideGap"`

	// MoveDurationMs 粒子飞向新目标的时长（毫秒）
	MoveDurationMs int `yaml:"moveDurationMs"`

	// FontSize 文字字号
	FontSize float64 `yaml:"fontSize"`

	// ParticleColor 粒子颜色（#rrggbb），ParticleAlpha 为不透明度 0~1
	ParticleColor string  `yaml:"particleColor"`
	ParticleAlpha float64 `yaml:"particleAlpha"`

	// BackgroundColor 背景色（#rrggbb），为空时保持透明
	BackgroundColor string `yaml:"backgroundColor"`

	// FontPath TTF/OTF 字体路径，为空时使用内置 Go Bold
	FontPath string `yaml:"fontPath"`

	// TerminalFPS 终端模式的帧率（终端没有垂直同步）
	TerminalFPS int `yaml:"terminalFPS"`
}

// DefaultClockConfig 返回默认配置
// 粒子颜色 #5445544d 拆成 RGB 与 0x4d/255 的不透明度
func DefaultClockConfig() *ClockConfig {
	return &ClockConfig{
		MinRadius:       2,
		MaxRadius:       7,
		StrideGap:       6,
		MoveDurationMs:  500,
		FontSize:        140,
		ParticleColor:   "#544554",
		ParticleAlpha:   0x4d / 255.0,
		BackgroundColor: "#ffffff",
		TerminalFPS:     60,
	}
}

// LoadClockConfig 加载时钟配置
//
// path 为空时直接返回默认配置。文件中的字段覆盖默认值。
//
// 返回:
//   - *ClockConfig: 加载并校验后的配置
//   - error: 读取、解析或校验失败
func LoadClockConfig(path string) (*ClockConfig, error) {
	cfg := DefaultClockConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read clock config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse clock config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid clock config: %w", err)
	}

	return cfg, nil
}

// Validate 校验配置
func (c *ClockConfig) Validate() error {
	var errs []error

	if c.MinRadius < 1 {
		errs = append(errs, fmt.Errorf("minRadius must be >= 1, got %.1f", c.MinRadius))
	}
	if c.MinRadius > c.MaxRadius {
		errs = append(errs, fmt.Errorf("radius range invalid: min(%.1f) > max(%.1f)", c.MinRadius, c.MaxRadius))
	}
	if c.StrideGap < 1 {
		errs = append(errs, fmt.Errorf("strideGap must be >= 1, got %d", c.StrideGap))
	}
	if c.MoveDurationMs < 0 {
		errs = append(errs, fmt.Errorf("moveDurationMs must be >= 0, got %d", c.MoveDurationMs))
	}
	if c.FontSize <= 0 || math.IsNaN(c.FontSize) {
		errs = append(errs, fmt.Errorf("fontSize must be > 0, got %.1f", c.FontSize))
	}
	if c.ParticleAlpha < 0 || c.ParticleAlpha > 1 {
		errs = append(errs, fmt.Errorf("particleAlpha must be within [0, 1], got %.2f", c.ParticleAlpha))
	}
	if _, err := colorful.Hex(c.ParticleColor); err != nil {
		errs = append(errs, fmt.Errorf("particleColor %q: %w", c.ParticleColor, err))
	}
	if c.BackgroundColor != "" {
		if _, err := colorful.Hex(c.BackgroundColor); err != nil {
			errs = append(errs, fmt.Errorf("backgroundColor %q: %w", c.BackgroundColor, err))
		}
	}
	if c.TerminalFPS < 1 || c.TerminalFPS > 240 {
		errs = append(errs, fmt.Errorf("terminalFPS must be within [1, 240], got %d", c.TerminalFPS))
	}

	return errors.Join(errs...)
}

// MoveDuration 粒子运动时长
func (c *ClockConfig) MoveDuration() time.Duration {
	return time.Duration(c.MoveDurationMs) * time.Millisecond
}

// ParticleRGBA 粒子填充色（非预乘 alpha）
func (c *ClockConfig) ParticleRGBA() color.NRGBA {
	return hexToNRGBA(c.ParticleColor, c.ParticleAlpha)
}

// BackgroundRGBA 背景色，未配置时为完全透明
func (c *ClockConfig) BackgroundRGBA() color.NRGBA {
	if c.BackgroundColor == "" {
		return color.NRGBA{}
	}
	return hexToNRGBA(c.BackgroundColor, 1)
}

// hexToNRGBA 解析失败时返回透明色（Validate 已拦截非法值）
func hexToNRGBA(hex string, alpha float64) color.NRGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(alpha * 255))}
}
