package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Resolver 按点号路径在已反序列化的 JSON 数据（map/slice）里取值。
// 零值（data 为 nil）的 Resolver 可用：所有查找都失败，占位符原样保留。
type Resolver struct {
	data any
}

// NewResolver 包装一份数据源，通常是 json.Unmarshal 到 any 的结果。
func NewResolver(data any) *Resolver {
	return &Resolver{data: data}
}

// Interpolate 将文本中的 ${path.to[0].value} 替换为数据中的值。
// 路径不存在时保留原占位符，方便排查模板问题。
func (r *Resolver) Interpolate(text string) string {
	if r == nil || r.data == nil || !strings.Contains(text, "${") {
		return text
	}
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path == "" {
			return match
		}
		val, ok := r.Lookup(path)
		if !ok {
			return match
		}
		return formatValue(val)
	})
}

// Lookup 解析形如 a.b[2].c 的路径并逐层下降。
func (r *Resolver) Lookup(path string) (any, bool) {
	if r == nil {
		return nil, false
	}
	current := r.data
	for _, segment := range strings.Split(path, ".") {
		name, indexes, ok := splitSegment(segment)
		if !ok {
			return nil, false
		}
		if name != "" {
			m, isMap := current.(map[string]any)
			if !isMap {
				return nil, false
			}
			current, isMap = m[name]
			if !isMap {
				return nil, false
			}
		}
		for _, idx := range indexes {
			arr, isArr := current.([]any)
			if !isArr || idx < 0 || idx >= len(arr) {
				return nil, false
			}
			current = arr[idx]
		}
	}
	return current, true
}

// splitSegment 把 items[0][1] 拆成名字和下标序列。
func splitSegment(segment string) (string, []int, bool) {
	name := segment
	var indexes []int
	if i := strings.IndexByte(segment, '['); i != -1 {
		name = segment[:i]
		rest := segment[i:]
		for strings.HasPrefix(rest, "[") {
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				return "", nil, false
			}
			idx, err := strconv.Atoi(rest[1:end])
			if err != nil {
				return "", nil, false
			}
			indexes = append(indexes, idx)
			rest = rest[end+1:]
		}
		if rest != "" {
			return "", nil, false
		}
	}
	return name, indexes, true
}

// formatValue 把 JSON 数值中的整数打印成无小数点形式。
func formatValue(val any) string {
	if f, ok := val.(float64); ok && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return fmt.Sprint(val)
}

// Interpolate 是一次性的便捷入口。
func Interpolate(text string, data any) string {
	return NewResolver(data).Interpolate(text)
}
