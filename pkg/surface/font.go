package surface

import (
	"fmt"
	"os"

	"golang.org/x/image/font/gofont/gobold"
)

// LoadFontData 读取字体数据
// path 为空时返回内置的 Go Bold 字体
func LoadFontData(path string) ([]byte, error) {
	if path == "" {
		return gobold.TTF, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
	}
	return data, nil
}

func defaultFont(data []byte) []byte {
	if len(data) == 0 {
		return gobold.TTF
	}
	return data
}
