package cleaner

import "testing"

func TestStripSiteSuffix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Wireless Mouse - Acme Store", "Wireless Mouse"},
		{"Wireless Mouse | Acme", "Wireless Mouse"},
		{"Wireless Mouse – Black – Acme", "Wireless Mouse"},
		{"Wi-Fi Range Extender", "Wi-Fi Range Extender"},
		{"| Acme", "| Acme"},
	}
	for _, tt := range tests {
		if got := StripSiteSuffix(tt.in); got != tt.want {
			t.Errorf("StripSiteSuffix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveTitle(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{
			"heading first",
			`<html><head><title>Page</title><meta property="og:title" content="OG Name"></head><body><h1>Wireless Mouse</h1></body></html>`,
			"Wireless Mouse",
		},
		{
			"short heading falls through to og:title",
			`<html><head><meta property="og:title" content="Wireless Mouse - Acme"></head><body><h1>Hi</h1></body></html>`,
			"Wireless Mouse",
		},
		{
			"page title last",
			`<html><head><title>Wireless Mouse | Acme</title></head><body></body></html>`,
			"Wireless Mouse",
		},
		{"nothing", `<html><body><p>x</p></body></html>`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveTitle(mustDoc(t, tt.markup)); got != tt.want {
				t.Errorf("ResolveTitle = %q, want %q", got, tt.want)
			}
		})
	}
}
