package assess

import (
	"math"
	"strings"
)

// normalizeText lowercases the transcript and flattens punctuation to single
// spaces so phrase patterns match across clause boundaries.
func normalizeText(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(".,;:!?¿¡\"'()«»", r) {
			b.WriteRune(' ')
		} else {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// tokenize splits the transcript into lowercased punctuation-free tokens.
func tokenize(s string) []string {
	return strings.Fields(normalizeText(s))
}

func wordCount(s string) int {
	return len(tokenize(s))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
