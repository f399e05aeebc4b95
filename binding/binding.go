package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// ${path|fallback} 在路径不存在时使用 fallback；没有 fallback 时保留原占位符。
func Interpolate(text string, data any) string {
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		expr := strings.TrimSpace(match[2 : len(match)-1])
		path, fallback, hasFallback := strings.Cut(expr, "|")
		path = strings.TrimSpace(path)
		if path != "" && data != nil {
			if val, ok := Resolve(data, path); ok {
				return format(val)
			}
		}
		if hasFallback {
			return strings.TrimSpace(fallback)
		}
		return match
	})
}

// Missing lists the placeholders of text that data cannot resolve and that carry no fallback.
func Missing(text string, data any) []string {
	var out []string
	for _, groups := range exprPattern.FindAllStringSubmatch(text, -1) {
		expr := strings.TrimSpace(groups[1])
		if strings.Contains(expr, "|") {
			continue
		}
		if _, ok := Resolve(data, expr); !ok {
			out = append(out, expr)
		}
	}
	return out
}

// Resolve walks a dotted path with optional [i] indexes through decoded JSON.
func Resolve(data any, path string) (any, bool) {
	if data == nil {
		return nil, false
	}
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes := parseSegment(segment)
		if name != "" {
			m, ok := current.(map[string]any)
			if !ok {
				return nil, false
			}
			if current, ok = m[name]; !ok {
				return nil, false
			}
		}
		for _, idxStr := range indexes {
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, false
			}
			arr, ok := current.([]any)
			if !ok || idx < 0 || idx >= len(arr) {
				return nil, false
			}
			current = arr[idx]
		}
	}
	return current, true
}

// format prints JSON numbers without a trailing ".0" so ids stay readable on labels.
func format(val any) string {
	switch v := val.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func parseSegment(segment string) (string, []string) {
	name := segment
	var indexes []string
	if i := strings.Index(segment, "["); i != -1 {
		name = segment[:i]
		rest := segment[i:]
		for len(rest) > 0 && rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				break
			}
			indexes = append(indexes, rest[1:end])
			rest = rest[end+1:]
		}
	}
	return name, indexes
}
