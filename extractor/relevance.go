package extractor

import (
	"regexp"
	"strings"
)

var titleWordRe = regexp.MustCompile(`\b[a-z]{3,}\b`)

var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {},
	"at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {}, "from": {}, "is": {},
	"are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "this": {}, "that": {},
	"it": {}, "its": {}, "as": {}, "if": {}, "not": {}, "no": {}, "so": {}, "up": {},
	"out": {},
}

// IsRelevant reports whether text mentions at least threshold of the
// significant words of title. Words are lowercase runs of three or more
// letters minus stopwords. With no title, or no significant word in it,
// every text is relevant.
func IsRelevant(text, title string, threshold float64) bool {
	if title == "" || text == "" {
		return true
	}
	words := significantWords(title)
	if len(words) == 0 {
		return true
	}
	body := strings.ToLower(text)
	matches := 0
	for w := range words {
		if strings.Contains(body, w) {
			matches++
		}
	}
	return float64(matches)/float64(len(words)) >= threshold
}

func significantWords(title string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range titleWordRe.FindAllString(strings.ToLower(title), -1) {
		if _, stop := stopwords[w]; !stop {
			words[w] = struct{}{}
		}
	}
	return words
}
