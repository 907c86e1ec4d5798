package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultClockConfigIsValid(t *testing.T) {
	cfg := DefaultClockConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 6, cfg.StrideGap)
	assert.Equal(t, 500*time.Millisecond, cfg.MoveDuration())
	assert.Equal(t, 140.0, cfg.FontSize)
	assert.Equal(t, color.NRGBA{R: 0x54, G: 0x45, B: 0x54, A: 0x4d}, cfg.ParticleRGBA())
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, cfg.BackgroundRGBA())
}

func TestLoadClockConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *ClockConfig)
	}{
		{
			name: "partial override keeps defaults",
			yamlContent: `
strideGap: 4
moveDurationMs: 800
particleColor: "#ff0000"
`,
			validate: func(t *testing.T, cfg *ClockConfig) {
				assert.Equal(t, 4, cfg.StrideGap)
				assert.Equal(t, 800*time.Millisecond, cfg.MoveDuration())
				assert.Equal(t, color.NRGBA{R: 255, A: 0x4d}, cfg.ParticleRGBA())
				assert.Equal(t, 2.0, cfg.MinRadius)
				assert.Equal(t, 7.0, cfg.MaxRadius)
				assert.Equal(t, 140.0, cfg.FontSize)
			},
		},
		{
			name: "transparent background",
			yamlContent: `
backgroundColor: ""
`,
			validate: func(t *testing.T, cfg *ClockConfig) {
				assert.Equal(t, color.NRGBA{}, cfg.BackgroundRGBA())
			},
		},
		{
			name: "inverted radius range",
			yamlContent: `
minRadius: 9
maxRadius: 3
`,
			wantErr:     true,
			errContains: "radius range invalid",
		},
		{
			name:        "zero stride",
			yamlContent: "strideGap: 0\n",
			wantErr:     true,
			errContains: "strideGap",
		},
		{
			name:        "bad color",
			yamlContent: "particleColor: purple\n",
			wantErr:     true,
			errContains: "particleColor",
		},
		{
			name:        "alpha out of range",
			yamlContent: "particleAlpha: 1.5\n",
			wantErr:     true,
			errContains: "particleAlpha",
		},
		{
			name:        "terminal fps out of range",
			yamlContent: "terminalFPS: 0\n",
			wantErr:     true,
			errContains: "terminalFPS",
		},
		{
			name:        "malformed yaml",
			yamlContent: "strideGap: [1, 2\n",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "clock.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yamlContent), 0o644))

			cfg, err := LoadClockConfig(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadClockConfigEmptyPath(t *testing.T) {
	cfg, err := LoadClockConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultClockConfig(), cfg)
}

func TestLoadClockConfigMissingFile(t *testing.T) {
	_, err := LoadClockConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read clock config")
}

func TestValidateReportsAllErrors(t *testing.T) {
	cfg := DefaultClockConfig()
	cfg.StrideGap = 0
	cfg.FontSize = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strideGap")
	assert.Contains(t, err.Error(), "fontSize")
}
