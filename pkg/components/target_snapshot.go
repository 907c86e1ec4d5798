package components

import "image"

// TargetSnapshot 上一次采样的结果
// Text 用于脏检查：显示文字没变就不重新栅格化和采样
type TargetSnapshot struct {
	Text   string
	Points []image.Point
}

// IsEmpty 是否还没有采样过
func (s TargetSnapshot) IsEmpty() bool {
	return s.Text == ""
}
