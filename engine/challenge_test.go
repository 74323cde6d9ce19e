package engine

import (
	"strings"
	"testing"
)

func TestLooksLikeChallenge(t *testing.T) {
	pad := func(n int) string { return strings.Repeat("x", n) }

	tests := []struct {
		name   string
		markup string
		want   bool
	}{
		{"short access denied", "<h1>Access Denied</h1>" + pad(1900), true},
		{"short just a moment", "<title>Just a moment...</title>", true},
		{"long access denied is content", "access denied" + pad(5000), false},
		{"browser check on long page", "Checking your browser before accessing" + pad(50000), true},
		{"captcha under limit", "verify you are human" + pad(8000), true},
		{"captcha over limit", "verify you are human" + pad(12000), false},
		{"cloudflare ray id", "cloudflare ray id: 1234" + pad(14000), true},
		{"cloudflare without ray id", "cloudflare" + pad(5000), false},
		{"cloudflare ray id over limit", "cloudflare ray id" + pad(16000), false},
		{"plain product page", "<h1>Wireless Mouse</h1><p>Great mouse.</p>", false},
		{"empty", "", false},
		{"multibyte short page", "<html><body>access denied " + strings.Repeat("é", 1500) + "</body></html>", true},
		{"multibyte captcha under limit", "verify you are human" + strings.Repeat("ü", 9000), true},
		{"multibyte over limit", "access denied" + strings.Repeat("é", 3000), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LooksLikeChallenge(tt.markup); got != tt.want {
				t.Errorf("LooksLikeChallenge = %v, want %v", got, tt.want)
			}
		})
	}
}
