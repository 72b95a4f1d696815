package assess

import (
	"strings"

	"github.com/hablalab/speech-coach/internal/domain/entities"
)

// Utterances below this length cannot be meaningfully organized; the gate
// caps the subcriteria instead of defaulting them.
const discourseMinWords = 12

// Connector vocabulary by category. Multi-word connectors are matched as
// padded phrases, single words as tokens.
var connectorCategories = map[string][]string{
	"temporal":    {"primero", "después", "luego", "entonces", "antes", "mientras", "finalmente", "ahora", "ayer", "hoy", "mañana", "cuando"},
	"causal":      {"porque", "por eso", "ya que", "así que", "debido a", "como resultado", "por lo tanto"},
	"adversative": {"pero", "aunque", "sin embargo", "no obstante", "a pesar de", "en cambio", "sino"},
	"additive":    {"y", "también", "además", "incluso", "asimismo", "igualmente"},
	"conclusive":  {"en conclusión", "en resumen", "por último", "en definitiva", "al final", "en fin"},
}

// Connector profile each prompt's discourse type rewards.
var promptDiscourseProfile = map[entities.PromptType][]string{
	entities.PromptFreeSpeech:        {"temporal", "additive", "causal"},
	entities.PromptIntroduceYourself: {"additive"},
	entities.PromptDescribeYourDay:   {"temporal", "additive"},
	entities.PromptOpinionTechnology: {"causal", "adversative", "conclusive"},
}

// evaluateDiscourse scores how logically ordered, connected and developed the
// speech is, using connector vocabulary plus pause-inferred sentence bounds.
func evaluateDiscourse(transcript string, words []entities.WordTiming, prompt entities.PromptType) entities.CriterionResult {
	tokens := tokenize(transcript)
	counts, totalConnectors := countConnectors(transcript, tokens)

	details := map[string]interface{}{
		"connectors":       counts,
		"total_connectors": totalConnectors,
		"word_count":       len(tokens),
	}

	if len(tokens) < discourseMinWords {
		const gated = 40.0
		return entities.CriterionResult{
			Score: gated,
			Subcriteria: map[string]float64{
				"logical_sequencing": gated,
				"cohesion":           gated,
				"development":        gated,
				"type_alignment":     gated,
			},
			Details: details,
		}
	}

	sequencing := scoreSequencing(counts, len(tokens))
	cohesion := scoreCohesion(counts, totalConnectors, len(tokens))
	development := scoreDevelopment(tokens, words, totalConnectors)
	alignment := scoreTypeAlignment(counts, prompt)

	score := 0.30*sequencing + 0.30*cohesion + 0.20*development + 0.20*alignment
	return entities.CriterionResult{
		Score: score,
		Subcriteria: map[string]float64{
			"logical_sequencing": sequencing,
			"cohesion":           cohesion,
			"development":        development,
			"type_alignment":     alignment,
		},
		Details: details,
	}
}

func countConnectors(transcript string, tokens []string) (map[string]int, int) {
	padded := " " + normalizeText(transcript) + " "
	counts := make(map[string]int, len(connectorCategories))
	total := 0
	for category, connectors := range connectorCategories {
		n := 0
		for _, c := range connectors {
			if len(tokenizeConnector(c)) > 1 {
				n += countPhrase(padded, c)
				continue
			}
			for _, tok := range tokens {
				if tok == c {
					n++
				}
			}
		}
		counts[category] = n
		total += n
	}
	return counts, total
}

func tokenizeConnector(c string) []string {
	return tokenize(c)
}

func countPhrase(padded, phrase string) int {
	return strings.Count(padded, " "+phrase+" ")
}

// scoreSequencing converts temporal/causal connector density into a banded
// subscore.
func scoreSequencing(counts map[string]int, words int) float64 {
	density := float64(counts["temporal"]+counts["causal"]) / float64(words)
	switch {
	case density >= 0.08:
		return 92
	case density >= 0.05:
		return 84
	case density >= 0.025:
		return 74
	case density > 0:
		return 64
	default:
		return 55
	}
}

// scoreCohesion combines overall connector density with category variety.
func scoreCohesion(counts map[string]int, total, words int) float64 {
	density := float64(total) / float64(words)
	variety := 0
	for _, n := range counts {
		if n > 0 {
			variety++
		}
	}
	base := 55.0
	switch {
	case density >= 0.10:
		base = 88
	case density >= 0.06:
		base = 80
	case density >= 0.03:
		base = 70
	case density > 0:
		base = 62
	}
	return clamp(base+float64(variety-1)*2, 0, 95)
}

// scoreDevelopment measures average idea length: words per functional
// sentence. Sentence bounds come from long pauses when timing data exists,
// otherwise from the connector count.
func scoreDevelopment(tokens []string, words []entities.WordTiming, totalConnectors int) float64 {
	sentences := 1
	if len(words) > 1 {
		for i := 1; i < len(words); i++ {
			if words[i].Start-words[i-1].End >= longPauseGap {
				sentences++
			}
		}
	} else {
		sentences = totalConnectors + 1
	}
	ideaLen := float64(len(tokens)) / float64(sentences)
	switch {
	case ideaLen >= 8 && ideaLen <= 22:
		return 90
	case ideaLen >= 5 && ideaLen < 8, ideaLen > 22 && ideaLen <= 30:
		return 78
	case ideaLen >= 3:
		return 68
	default:
		return 58
	}
}

// scoreTypeAlignment checks the connector profile against what the prompt's
// discourse type expects.
func scoreTypeAlignment(counts map[string]int, prompt entities.PromptType) float64 {
	profile := promptDiscourseProfile[prompt]
	if len(profile) == 0 {
		profile = promptDiscourseProfile[entities.PromptFreeSpeech]
	}
	matched := 0
	for _, category := range profile {
		if counts[category] > 0 {
			matched++
		}
	}
	frac := float64(matched) / float64(len(profile))
	switch {
	case frac >= 0.999:
		return 92
	case frac >= 0.5:
		return 80
	case frac > 0:
		return 70
	default:
		return 58
	}
}
