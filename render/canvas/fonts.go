package canvasrender

import (
	"strings"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/tapelabel/fonts"
)

// FontCache 按名称缓存已加载的字体族，可被多个 Text 共享。
type FontCache struct {
	mu       sync.Mutex
	families map[string]*canvas.FontFamily
}

// NewFontCache returns an empty cache.
func NewFontCache() *FontCache {
	return &FontCache{families: map[string]*canvas.FontFamily{}}
}

var defaultFonts = NewFontCache()

// Family 返回内置字体 name 对应的字体族，空名称使用 fonts.Default。
func (fc *FontCache) Family(name string) (*canvas.FontFamily, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = fonts.Default
	}
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if family, ok := fc.families[key]; ok {
		return family, nil
	}
	data, err := fonts.Load(key)
	if err != nil {
		return nil, err
	}
	// 每个内置字体都是独立文件，统一以 Regular 样式载入。
	family := canvas.NewFontFamily("tapelabel-" + key)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, err
	}
	fc.families[key] = family
	return family, nil
}
