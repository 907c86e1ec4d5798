package clock

import "time"

// TimeLayout 显示格式 HH:MM:SS
const TimeLayout = "15:04:05"

// Clock 时间来源
type Clock interface {
	Now() time.Time
}

// SystemClock 使用本地系统时间
type SystemClock struct{}

// Now 当前本地时间
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ClockFunc 把普通函数适配为 Clock
type ClockFunc func() time.Time

// Now 调用函数本身
func (f ClockFunc) Now() time.Time {
	return f()
}

// FormatClock 把时间格式化为 "HH:MM:SS"，精确到秒
func FormatClock(t time.Time) string {
	return t.Format(TimeLayout)
}
