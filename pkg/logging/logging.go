// Package logging 统一的日志初始化
//
// 默认只输出 warn 及以上级别，--verbose 时输出 debug。
// 终端模式下屏幕被 tcell 占用，日志写到文件或直接丢弃。
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options 日志配置
type Options struct {
	Verbose bool
	// Level 显式指定级别（debug/info/warn/error/trace），优先于 Verbose
	Level string
	// Out 输出目标，为 nil 时使用 stderr
	Out io.Writer
	// NoColor 关闭控制台颜色（写文件时使用）
	NoColor bool
}

// ParseLevel 把级别字符串转换为 zerolog 级别，未知值返回 fallback
func ParseLevel(level string, fallback zerolog.Level) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return fallback
	}
}

// New 创建控制台格式的 logger
func New(opts Options) zerolog.Logger {
	level := zerolog.WarnLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	level = ParseLevel(opts.Level, level)

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	w := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    opts.NoColor,
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
