package assess

import "github.com/hablalab/speech-coach/internal/domain/entities"

// speechPattern is a diagnostic observation derived from the clarity signals.
// Patterns annotate the result; they never move the score.
type speechPattern struct {
	id       string
	category string
	priority int
	message  string
}

const (
	priorityFundamentals = iota
	priorityProsody
	priorityConsonantFlow
	priorityRhotic
)

// detectPatterns inspects the clarity details and returns the most relevant
// observations, fewest for the strongest speakers.
func detectPatterns(clarity entities.CriterionResult, score float64) []string {
	var found []speechPattern

	// Detail values are percentages (confidence and ratios scaled to 0..100).
	if conf, ok := clarity.Details["mean_confidence"].(float64); ok && conf > 0 && conf < 70 {
		found = append(found, speechPattern{
			id:       "articulation_fundamentals",
			category: "fundamentals",
			priority: priorityFundamentals,
			message:  "Several segments were hard to recognize; practice articulating complete syllables.",
		})
	}
	if d, ok := clarity.Details["disruptive_pauses"].(int); ok && d >= 2 {
		found = append(found, speechPattern{
			id:       "broken_phrasing",
			category: "fundamentals",
			priority: priorityFundamentals,
			message:  "Long pauses break your sentences mid-idea; try planning the phrase before starting it.",
		})
	}
	if stddev, ok := clarity.Details["rhythm_stddev"].(float64); ok {
		if windows, ok2 := clarity.Details["rhythm_windows"].(int); ok2 && windows >= 2 && stddev > 80 {
			found = append(found, speechPattern{
				id:       "uneven_rhythm",
				category: "prosody",
				priority: priorityProsody,
				message:  "Your pacing speeds up and slows down unevenly; read aloud while keeping a steady beat.",
			})
		}
	}
	if micro, ok := clarity.Details["micro_pauses"].(int); ok && micro > 6 {
		found = append(found, speechPattern{
			id:       "choppy_consonant_flow",
			category: "consonant_flow",
			priority: priorityConsonantFlow,
			message:  "Many short breaks between words; link final consonants into the following vowel.",
		})
	}
	if ratio, ok := clarity.Details["speech_ratio"].(float64); ok && ratio > 0 && ratio < 50 {
		found = append(found, speechPattern{
			id:       "rhotic_hesitation",
			category: "rhotic_articulation",
			priority: priorityRhotic,
			message:  "You spend more time silent than speaking; drill r-clusters (tres, ahora, pero) until they come out without a pause.",
		})
	}

	if len(found) == 0 {
		return nil
	}

	// Highest-priority first, then cap by how well the speaker did overall.
	for i := 1; i < len(found); i++ {
		for j := i; j > 0 && found[j].priority < found[j-1].priority; j-- {
			found[j], found[j-1] = found[j-1], found[j]
		}
	}

	limit := 3
	switch {
	case score >= 90:
		limit = 1
	case score >= 80:
		limit = 2
	}
	if len(found) > limit {
		found = found[:limit]
	}

	out := make([]string, 0, len(found))
	for _, p := range found {
		out = append(out, p.message)
	}
	return out
}
