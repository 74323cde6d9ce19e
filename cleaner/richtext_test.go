package cleaner

import (
	"strings"
	"testing"
)

func TestRichText_Table(t *testing.T) {
	doc := mustDoc(t, `<div id="d"><table>
		<tr><th>Weight</th><td>85 g</td></tr>
		<tr><th>Battery</th><td>AA</td></tr>
		<tr><th>Empty</th><td></td></tr>
	</table></div>`)

	got := RichText(doc.Find("#d"))
	if got != "Weight: 85 g | Battery: AA" {
		t.Errorf("RichText = %q", got)
	}
}

func TestRichText_ListsAndParagraphs(t *testing.T) {
	doc := mustDoc(t, `<div id="d">
		<p>Ergonomic shape for <strong>all-day</strong> comfort.</p>
		<ul><li>Silent clicks</li><li>Two-year battery</li></ul>
		<p>Ergonomic shape for all-day comfort.</p>
		<p>Short.</p>
	</div>`)

	got := RichText(doc.Find("#d"))
	if !strings.Contains(got, "• Silent clicks • Two-year battery") {
		t.Errorf("list not bullet-joined: %q", got)
	}
	if strings.Count(got, "Ergonomic shape") != 1 {
		t.Errorf("duplicate paragraph kept: %q", got)
	}
	if strings.Contains(got, "Short.") {
		t.Errorf("paragraph under minimum length kept: %q", got)
	}
}

func TestRichText_PlainFallback(t *testing.T) {
	doc := mustDoc(t, `<div id="d"><div>Just</div><div>words</div></div>`)
	if got := RichText(doc.Find("#d")); got != "Just words" {
		t.Errorf("RichText = %q, want %q", got, "Just words")
	}
}
