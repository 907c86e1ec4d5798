// Package surface 定义粒子时钟使用的绘制表面
//
// 核心只依赖 Surface 接口，具体实现有三种：
//   - EbitenSurface: 窗口模式，离屏 ebiten.Image
//   - Raster: 纯软件 image.RGBA，用于测试、截图工具和终端模式的文字栅格化
//   - terminal.Surface: tcell 字符网格（见 pkg/terminal）
package surface

import (
	"errors"
	"image/color"
)

// ErrNoSurface 没有可用的绘制表面
// 这是唯一的致命前置条件，启动时报告一次，不重试
var ErrNoSurface = errors.New("drawing surface unavailable")

// Surface 绘制表面
//
// 所有坐标和尺寸都是物理像素（已乘以设备像素比）。
type Surface interface {
	// Size 画布尺寸
	Size() (width, height int)
	// Clear 清空为完全透明
	Clear()
	// Fill 用纯色填满画布
	Fill(clr color.Color)
	// FillCircle 以 (cx, cy) 为圆心画实心圆
	FillCircle(cx, cy, radius float64, clr color.Color)
	// FillText 以 (cx, cy) 为中心（水平居中、垂直居中）绘制文字
	FillText(text string, cx, cy, size float64, clr color.Color)
	// ReadPixels 读取整个画布，行优先 RGBA，每像素 4 字节
	// dst 长度必须为 4*width*height
	ReadPixels(dst []byte)
}

// Resizable 可以改变尺寸的表面
type Resizable interface {
	Surface
	Resize(width, height int)
}
