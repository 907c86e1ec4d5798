package utils

import (
	"math"
	"math/rand/v2"
)

// RandomInt 返回 [min, max] 闭区间内均匀分布的随机整数
//
// 参数:
//   - rng: 随机数生成器（测试时传入固定种子的生成器以保证可复现）
//   - min, max: 区间端点，min > max 时自动交换
func RandomInt(rng *rand.Rand, min, max int) int {
	if min > max {
		min, max = max, min
	}
	return min + rng.IntN(max-min+1)
}

// NewRand 创建一个以 seed 为种子的 PCG 随机数生成器
// seed 为 0 时使用随机种子
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// DegToRad 角度转弧度: 1° = π/180 rad
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
