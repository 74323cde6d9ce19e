package engine

import (
	"strings"
	"unicode/utf8"
)

const (
	shortPageLimit   = 3000
	captchaPageLimit = 10000
	rayIDPageLimit   = 15000
)

// shortPagePhrases flag a page only when it is small enough to be a block page.
var shortPagePhrases = []string{
	"access denied",
	"checking your browser",
	"just a moment",
	"please enable javascript to continue",
}

// LooksLikeChallenge reports whether markup looks like an anti-bot challenge
// instead of the requested page. Long pages are only flagged on specific
// combined signals, since product pages routinely mention these words.
func LooksLikeChallenge(markup string) bool {
	h := strings.ToLower(markup)
	// Limits are in characters, not bytes.
	n := utf8.RuneCountInString(markup)

	if n < shortPageLimit {
		for _, phrase := range shortPagePhrases {
			if strings.Contains(h, phrase) {
				return true
			}
		}
	}

	switch {
	case strings.Contains(h, "checking your browser before accessing"):
		return true
	case n < captchaPageLimit && strings.Contains(h, "verify you are human"):
		return true
	case n < captchaPageLimit && strings.Contains(h, "please complete the captcha"):
		return true
	case n < rayIDPageLimit && strings.Contains(h, "cloudflare") && strings.Contains(h, "ray id"):
		return true
	}
	return false
}
