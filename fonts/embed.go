package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Default 是未指定字体时使用的内置字体。
const Default = "regular"

var builtin = map[string][]byte{
	"regular": goregular.TTF,
	"bold":    gobold.TTF,
	"italic":  goitalic.TTF,
	"mono":    gomono.TTF,
}

// Load 返回内置字体的 TTF 数据，name 可写为 "bold" 或 "builtin:bold"。
func Load(name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.TrimPrefix(strings.TrimPrefix(key, "builtin:"), "built-in:")
	if key == "" {
		key = Default
	}
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("unknown built-in font %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return data, nil
}

// Names lists the built-in font names.
func Names() []string {
	out := make([]string, 0, len(builtin))
	for k := range builtin {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
