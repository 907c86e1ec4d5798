package utils

import (
	"math"
	"testing"
)

// TestRandomIntRange 测试随机整数始终落在闭区间内，且两端点都能取到
func TestRandomIntRange(t *testing.T) {
	rng := NewRand(42)

	tests := []struct {
		name string
		min  int
		max  int
	}{
		{"粒子半径", 2, 7},
		{"角度", 0, 360},
		{"单点区间", 5, 5},
		{"反向区间", 9, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := tt.min, tt.max
			if lo > hi {
				lo, hi = hi, lo
			}
			seen := make(map[int]bool)
			for i := 0; i < 5000; i++ {
				v := RandomInt(rng, tt.min, tt.max)
				if v < lo || v > hi {
					t.Fatalf("RandomInt(%d, %d) = %d, 超出区间", tt.min, tt.max, v)
				}
				seen[v] = true
			}
			if !seen[lo] || !seen[hi] {
				t.Errorf("端点未被取到: min=%v max=%v", seen[lo], seen[hi])
			}
		})
	}
}

func TestNewRandDeterministic(t *testing.T) {
	a := NewRand(7)
	b := NewRand(7)
	for i := 0; i < 100; i++ {
		if RandomInt(a, 0, 1000) != RandomInt(b, 0, 1000) {
			t.Fatal("相同种子应产生相同序列")
		}
	}
}

func TestDegToRad(t *testing.T) {
	if math.Abs(DegToRad(180)-math.Pi) > 1e-12 {
		t.Errorf("DegToRad(180) = %v, 期望 π", DegToRad(180))
	}
	if DegToRad(0) != 0 {
		t.Errorf("DegToRad(0) = %v, 期望 0", DegToRad(0))
	}
}
