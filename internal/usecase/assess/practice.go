package assess

import (
	"sort"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/hablalab/speech-coach/internal/domain/entities"
)

// tokenSortRatio normalizes both strings, sorts their tokens, and returns a
// 0..100 similarity from the Levenshtein distance of the rebuilt strings.
// Token sorting makes the measure robust to word-order changes.
func tokenSortRatio(a, b string) float64 {
	sa := sortedTokenString(a)
	sb := sortedTokenString(b)
	if sa == "" && sb == "" {
		return 100
	}
	if sa == "" || sb == "" {
		return 0
	}
	dist := matchr.Levenshtein(sa, sb)
	longer := len([]rune(sa))
	if l := len([]rune(sb)); l > longer {
		longer = l
	}
	if longer == 0 {
		return 100
	}
	sim := (1 - float64(dist)/float64(longer)) * 100
	return clamp(sim, 0, 100)
}

func sortedTokenString(s string) string {
	tokens := tokenize(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// applyPracticeAdjustment rewards close reproduction of the reference phrase
// and reframes the feedback when the speaker diverged. The bonus only applies
// above 70% similarity and never pushes the score past 100.
func applyPracticeAdjustment(result *entities.AssessmentResult, similarity float64) {
	if similarity > 70 {
		bonus := (similarity - 70) / 3
		if bonus > 10 {
			bonus = 10
		}
		result.Score = round1(clamp(result.Score+bonus, 0, 100))
	}

	switch {
	case similarity < 50:
		result.AreasForImprovement = prepend(result.AreasForImprovement,
			"Your response differed significantly from the reference phrase")
	case similarity < 75:
		result.AreasForImprovement = prepend(result.AreasForImprovement,
			"Try to follow the reference phrase more closely")
	default:
		result.Strengths = prepend(result.Strengths,
			"Good reproduction of the reference phrase")
	}
}

// prepend inserts at the front, keeping the feedback lists at three entries.
func prepend(list []string, s string) []string {
	list = append([]string{s}, list...)
	if len(list) > 3 {
		list = list[:3]
	}
	return list
}
