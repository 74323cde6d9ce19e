package extractor

import (
	"strings"
	"testing"
)

func TestBalancedObject(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{"simple", `{"a":1}; rest`, `{"a":1}`, true},
		{"nested", `{"a":{"b":[1,2]}}x`, `{"a":{"b":[1,2]}}`, true},
		{"brace in string", `{"a":"}"} tail`, `{"a":"}"}`, true},
		{"escaped quote", `{"a":"\"}"}`, `{"a":"\"}"}`, true},
		{"single quotes", `{'a': '{'}; x`, `{'a': '{'}`, true},
		{"template literal", "{a: `}`} y", "{a: `}`}", true},
		{"not an object", `[1, 2]`, "", false},
		{"unterminated", `{"a":1`, "", false},
		{"empty", ``, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := balancedObject(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("balancedObject(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestInlineDescription(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		minChars int
		want     string
	}{
		{
			name:     "product data with markup",
			script:   `window.productData = {"content":"<b>Soft</b> cotton tee with a relaxed fit."};`,
			minChars: 10,
			want:     "Soft cotton tee with a relaxed fit.",
		},
		{
			name:     "theme config call",
			script:   `window.themeConfig('product', {"id":7,"description":"Hand-thrown stoneware mug glazed in sea green."});`,
			minChars: 10,
			want:     "Hand-thrown stoneware mug glazed in sea green.",
		},
		{
			name:     "key order with short first key",
			script:   `var product = {"description":"Short.","content":"A longer body describing the lamp shade."};`,
			minChars: 20,
			want:     "A longer body describing the lamp shade.",
		},
		{
			name:     "entities decoded",
			script:   `window.product = {"body_html":"Salt &amp; pepper grinder set in walnut."};`,
			minChars: 10,
			want:     "Salt & pepper grinder set in walnut.",
		},
		{
			name:     "later assignment used when first is not JSON",
			script:   `var product = {title: 'x'}; __INITIAL_STATE__ = {"details":"Waxed canvas tote with leather handles."};`,
			minChars: 10,
			want:     "Waxed canvas tote with leather handles.",
		},
		{
			name:     "javascript-only syntax",
			script:   `var product = {description: 'Unquoted keys are not parsed here at all.'};`,
			minChars: 10,
			want:     "",
		},
		{
			name:     "too short everywhere",
			script:   `var product = {"description":"Tiny."};`,
			minChars: 10,
			want:     "",
		},
		{
			name:     "no assignment",
			script:   `console.log("description")`,
			minChars: 1,
			want:     "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inlineDescription(tt.script, tt.minChars); got != tt.want {
				t.Errorf("inlineDescription() = %q, want %q", got, tt.want)
			}
		})
	}
}

func FuzzBalancedObject(f *testing.F) {
	for _, seed := range []string{`{"a":1}`, `{'a':'}'}`, "{`", `{{}}}`, `{"\\"}`, ``} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		lit, ok := balancedObject(s)
		if !ok {
			if lit != "" {
				t.Fatalf("failed match returned %q", lit)
			}
			return
		}
		if !strings.HasPrefix(s, lit) || !strings.HasPrefix(lit, "{") || !strings.HasSuffix(lit, "}") {
			t.Fatalf("literal %q is not a braced prefix of %q", lit, s)
		}
	})
}

func FuzzInlineDescription(f *testing.F) {
	f.Add(`var product = {"description":"A sturdy oak bench for the hallway."};`, 10)
	f.Add(`window.productData = {"content":"<p>x</p>"`, 1)
	f.Add(`__INITIAL_STATE__ = {"details":"<b>Bold</b> claims"}`, 3)
	f.Fuzz(func(t *testing.T, script string, minChars int) {
		if minChars < 0 || minChars > 1000 {
			return
		}
		got := inlineDescription(script, minChars)
		if got != "" && len([]rune(got)) < minChars {
			t.Fatalf("description %q shorter than %d", got, minChars)
		}
	})
}
