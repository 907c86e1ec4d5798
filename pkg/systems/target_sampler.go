package systems

import "image"

// DefaultStrideGap 默认采样间隔（像素）
// 间隔越小粒子越多、字形越清晰，但每帧开销越大
const DefaultStrideGap = 6

// SampleTargets 从栅格化后的文字像素中提取目标坐标
//
// 参数:
//   - pixels: 行优先的 RGBA 像素缓冲，每像素 4 字节
//   - width, height: 缓冲对应的画布尺寸
//   - gap: 行列采样间隔，小于 1 时按 1 处理
//
// 返回:
//   - []image.Point: 所有完全不透明的纯黑像素坐标 (列, 行)
//
// 扫描顺序为先列后行（外层 x，内层 y）。槽位 i 对应第 i 个目标，
// 顺序改变会打乱粒子与目标的对应关系，因此必须保持。
func SampleTargets(pixels []byte, width, height, gap int) []image.Point {
	if gap < 1 {
		gap = 1
	}
	if width <= 0 || height <= 0 {
		return nil
	}

	points := make([]image.Point, 0, (width/gap+1)*(height/gap+1)/8)
	for x := 0; x < width; x += gap {
		for y := 0; y < height; y += gap {
			i := (x + y*width) * 4
			if i+3 >= len(pixels) {
				// 缓冲不足时后续行都不存在
				break
			}
			if isGlyphPixel(pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]) {
				points = append(points, image.Point{X: x, Y: y})
			}
		}
	}
	return points
}

// isGlyphPixel RGB 都为 0 且 A 为 255 的像素属于文字
func isGlyphPixel(r, g, b, a byte) bool {
	return r == 0 && g == 0 && b == 0 && a == 255
}
