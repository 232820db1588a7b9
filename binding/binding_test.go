package binding

import (
	"encoding/json"
	"testing"
)

func dataFromJSON(t *testing.T, raw string) any {
	t.Helper()
	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		t.Fatalf("解析测试数据失败: %v", err)
	}
	return data
}

// TestInterpolateBasic 验证占位符替换与缺失路径的原样保留。
func TestInterpolateBasic(t *testing.T) {
	data := dataFromJSON(t, `{"user":{"name":"Ada"},"total":12.5,"count":3}`)
	r := NewResolver(data)

	cases := map[string]string{
		"Hello, ${user.name}!":        "Hello, Ada!",
		"Total: ${total}":             "Total: 12.5",
		"Count: ${count}":             "Count: 3",
		"Missing: ${user.age}":        "Missing: ${user.age}",
		"No placeholder":              "No placeholder",
		"${user.name} & ${user.name}": "Ada & Ada",
		"Empty: ${}":                  "Empty: ${}",
		"Bad root: ${nothing.at.all}": "Bad root: ${nothing.at.all}",
	}
	for in, want := range cases {
		if got := r.Interpolate(in); got != want {
			t.Fatalf("Interpolate(%q) = %q, want %q", in, got, want)
		}
	}
}

// TestLookupArrayPaths 验证 a.b[0].c 形式的下标路径。
func TestLookupArrayPaths(t *testing.T) {
	data := dataFromJSON(t, `{"items":[{"name":"tea","qty":2},{"name":"coffee","qty":1}],"grid":[[1,2],[3,4]]}`)
	r := NewResolver(data)

	if got := r.Interpolate("${items[1].name} x${items[1].qty}"); got != "coffee x1" {
		t.Fatalf("数组路径插值错误: %q", got)
	}
	if got := r.Interpolate("${grid[1][0]}"); got != "3" {
		t.Fatalf("多级下标插值错误: %q", got)
	}
	// 越界与非法下标保留原占位符。
	if got := r.Interpolate("${items[5].name}"); got != "${items[5].name}" {
		t.Fatalf("越界下标应保留占位符: %q", got)
	}
	if got := r.Interpolate("${items[x].name}"); got != "${items[x].name}" {
		t.Fatalf("非法下标应保留占位符: %q", got)
	}
}

// TestNilResolver 验证空数据源下插值是恒等变换。
func TestNilResolver(t *testing.T) {
	if got := NewResolver(nil).Interpolate("${a.b}"); got != "${a.b}" {
		t.Fatalf("空数据源应保留占位符: %q", got)
	}
	if got := Interpolate("${a}", nil); got != "${a}" {
		t.Fatalf("便捷入口空数据源应保留占位符: %q", got)
	}
}

// TestIntegerFormatting 验证 JSON 整数不带小数点输出。
func TestIntegerFormatting(t *testing.T) {
	data := dataFromJSON(t, `{"n":42,"f":3.14}`)
	r := NewResolver(data)
	if got := r.Interpolate("${n}"); got != "42" {
		t.Fatalf("整数格式化错误: %q", got)
	}
	if got := r.Interpolate("${f}"); got != "3.14" {
		t.Fatalf("小数格式化错误: %q", got)
	}
}
