package extractor

import (
	"math"
	"strings"
	"testing"

	"github.com/surejsai/GenericProductFluxer/models"
)

func TestIsRelevant(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		title     string
		threshold float64
		want      bool
	}{
		{"no title", "anything at all", "", 0.3, true},
		{"no text", "", "Wireless Mouse", 0.3, true},
		{"half the words", "a great wireless gadget", "Wireless Mouse", 0.3, true},
		{"unrelated", "bluetooth headphones with deep bass", "Wireless Mouse", 0.3, false},
		{"stopword-only title", "whatever", "The Of And", 0.3, true},
		{"short title words", "anything", "A to Z", 0.3, true},
		{"strict threshold", "a great wireless gadget", "Wireless Mouse", 1.0, false},
		{"case insensitive", "WIRELESS MOUSE", "wireless mouse", 1.0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRelevant(tt.text, tt.title, tt.threshold); got != tt.want {
				t.Errorf("IsRelevant(%q, %q, %v) = %v, want %v", tt.text, tt.title, tt.threshold, got, tt.want)
			}
		})
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		method string
		length int
		want   float64
	}{
		{models.MethodJSONLD, 100, 0.95},
		{models.MethodJSONLD, 600, 1.0},
		{models.MethodJavaScript, 250, 0.95},
		{models.MethodSemantic, 500, 0.95},
		{models.MethodMeta, 100, 0.60},
		{models.MethodBestBlock, 250, 0.55},
		{models.MethodMainSection, 10, 0.50},
		{"unknown", 10, 0.50},
	}
	for _, tt := range tests {
		got := Confidence(tt.method, strings.Repeat("é", tt.length))
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Confidence(%s, %d runes) = %v, want %v", tt.method, tt.length, got, tt.want)
		}
		if got < 0 || got > 1 {
			t.Errorf("Confidence(%s) = %v out of range", tt.method, got)
		}
	}
}

func TestNameScore(t *testing.T) {
	tests := []struct {
		name, title string
		want        float64
	}{
		{"Wireless Mouse", "wireless mouse", 2.0},
		{"Mouse", "Wireless Mouse Pro", 1.5},
		{"Ergo Wireless Mouse", "Wireless Mouse Pro", 1.0 + 2.0/3.0},
		{"USB Hub", "Wireless Mouse", 1.0},
		{"", "Wireless Mouse", 1.0},
		{"Wireless Mouse", "", 1.0},
	}
	for _, tt := range tests {
		if got := nameScore(tt.name, tt.title); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("nameScore(%q, %q) = %v, want %v", tt.name, tt.title, got, tt.want)
		}
	}
}

func TestLabelScore(t *testing.T) {
	tests := []struct {
		label string
		want  float64
	}{
		{"description", 1.0},
		{"product details", 1.0},
		{"more about this", 0.7},
		{"key specs", 0.7},
		{"shipping", 0},
		{"returns", 0},
	}
	for _, tt := range tests {
		if got := labelScore(tt.label); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("labelScore(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestWordOverlap(t *testing.T) {
	if got := wordOverlap("key features", "key features"); got != 1 {
		t.Errorf("identical overlap = %v, want 1", got)
	}
	if got := wordOverlap("key specs", "key features"); math.Abs(got-1.0/3.0) > 1e-9 {
		t.Errorf("partial overlap = %v, want 1/3", got)
	}
	if got := wordOverlap("", "x"); got != 0 {
		t.Errorf("empty overlap = %v, want 0", got)
	}
}
