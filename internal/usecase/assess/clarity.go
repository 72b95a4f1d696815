package assess

import (
	"math"
	"strings"

	"github.com/hablalab/speech-coach/internal/domain/entities"
)

// Timing thresholds for pause classification, in seconds.
const (
	longPauseGap   = 1.2
	microPauseMin  = 0.3
	rhythmWindow   = 3.0
	neutralClarity = 70.0
)

// Discourse connectors that make a long pause read as "thinking" rather than
// disruptive when they precede the gap.
var thinkingMarkers = map[string]struct{}{
	"entonces": {}, "bueno": {}, "pues": {}, "porque": {}, "y": {}, "pero": {},
	"además": {}, "luego": {}, "después": {}, "así": {}, "mira": {}, "vale": {},
}

// evaluateClarity scores listener effort from word timings alone. With no
// timing data every subcriterion takes the neutral default.
func evaluateClarity(transcript string, words []entities.WordTiming) entities.CriterionResult {
	if len(words) == 0 {
		return entities.CriterionResult{
			Score: neutralClarity,
			Subcriteria: map[string]float64{
				"intelligibility":  neutralClarity,
				"thought_grouping": neutralClarity,
				"flow_continuity":  neutralClarity,
				"stability":        neutralClarity,
			},
			Details: map[string]interface{}{"timing_available": false},
		}
	}

	meanConf := meanConfidence(words)
	intelligibility := scoreIntelligibility(meanConf)

	thinking, disruptive := classifyLongPauses(words)
	grouping := scoreThoughtGrouping(disruptive)

	ratio, microPauses := flowSignals(words)
	flow := scoreFlowContinuity(ratio, microPauses)

	stddev, windows := rhythmVariance(words)
	stability := scoreStability(stddev, windows)

	score := 0.30*intelligibility + 0.25*grouping + 0.25*flow + 0.20*stability

	// Guard against systematic under-scoring of fluent speakers: high
	// confidence with clean rhythm floors the criterion.
	if meanConf >= 0.9 && disruptive == 0 && score < 80 {
		score = 80
	}

	return entities.CriterionResult{
		Score: score,
		Subcriteria: map[string]float64{
			"intelligibility":  intelligibility,
			"thought_grouping": grouping,
			"flow_continuity":  flow,
			"stability":        stability,
		},
		Details: map[string]interface{}{
			"timing_available":  true,
			"mean_confidence":   round1(meanConf * 100),
			"thinking_pauses":   thinking,
			"disruptive_pauses": disruptive,
			"speech_ratio":      round1(ratio * 100),
			"micro_pauses":      microPauses,
			"rhythm_stddev":     round1(stddev * 100),
			"rhythm_windows":    windows,
		},
	}
}

func meanConfidence(words []entities.WordTiming) float64 {
	var sum float64
	for _, w := range words {
		sum += w.Confidence
	}
	return sum / float64(len(words))
}

// scoreIntelligibility treats recognizer confidence as a ceiling on an
// otherwise-high base: any transcript at all evidences comprehensible speech,
// so low confidence caps optimism instead of punishing directly.
func scoreIntelligibility(meanConf float64) float64 {
	const base = 95.0
	switch {
	case meanConf >= 0.85:
		return base
	case meanConf >= 0.75:
		return math.Min(base, 90)
	case meanConf >= 0.65:
		return math.Min(base, 80)
	default:
		return math.Min(base, 70)
	}
}

// classifyLongPauses splits inter-word gaps of at least longPauseGap into
// thinking pauses (preceded by a sentence boundary or discourse connector)
// and disruptive pauses (everything else).
func classifyLongPauses(words []entities.WordTiming) (thinking, disruptive int) {
	for i := 1; i < len(words); i++ {
		gap := words[i].Start - words[i-1].End
		if gap < longPauseGap {
			continue
		}
		prev := strings.ToLower(strings.TrimSpace(words[i-1].Word))
		if strings.ContainsAny(prev, ".!?") {
			thinking++
			continue
		}
		prev = strings.Trim(prev, ".,;:!?¿¡")
		if _, ok := thinkingMarkers[prev]; ok {
			thinking++
		} else {
			disruptive++
		}
	}
	return thinking, disruptive
}

func scoreThoughtGrouping(disruptive int) float64 {
	switch {
	case disruptive == 0:
		return 95
	case disruptive == 1:
		return 85
	case disruptive == 2:
		return 75
	case disruptive == 3:
		return 68
	default:
		return 60
	}
}

// flowSignals computes the phonated-to-elapsed time ratio and the count of
// micro-pauses (gaps between microPauseMin and longPauseGap).
func flowSignals(words []entities.WordTiming) (ratio float64, microPauses int) {
	var phonated float64
	for _, w := range words {
		phonated += w.End - w.Start
	}
	elapsed := words[len(words)-1].End - words[0].Start
	if elapsed <= 0 {
		return 1, 0
	}
	for i := 1; i < len(words); i++ {
		gap := words[i].Start - words[i-1].End
		if gap >= microPauseMin && gap < longPauseGap {
			microPauses++
		}
	}
	return math.Min(1, phonated/elapsed), microPauses
}

func scoreFlowContinuity(ratio float64, microPauses int) float64 {
	switch {
	case ratio >= 0.75 && microPauses <= 4:
		return 92
	case ratio >= 0.60 && microPauses <= 8:
		return 82
	case ratio >= 0.45:
		return 72
	default:
		return 62
	}
}

// rhythmVariance returns the standard deviation of words-per-second over
// fixed sliding windows, and how many windows the sample produced.
func rhythmVariance(words []entities.WordTiming) (stddev float64, windows int) {
	start := words[0].Start
	end := words[len(words)-1].End
	if end-start < rhythmWindow {
		return 0, 0
	}

	var rates []float64
	for t := start; t+rhythmWindow <= end+1e-9; t += rhythmWindow {
		count := 0
		for _, w := range words {
			if w.Start >= t && w.Start < t+rhythmWindow {
				count++
			}
		}
		rates = append(rates, float64(count)/rhythmWindow)
	}
	if len(rates) < 2 {
		return 0, len(rates)
	}

	var mean float64
	for _, r := range rates {
		mean += r
	}
	mean /= float64(len(rates))
	var variance float64
	for _, r := range rates {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(rates))
	return math.Sqrt(variance), len(rates)
}

func scoreStability(stddev float64, windows int) float64 {
	if windows < 2 {
		// Sample too short to measure variance.
		return 80
	}
	switch {
	case stddev <= 0.4:
		return 92
	case stddev <= 0.8:
		return 84
	case stddev <= 1.2:
		return 74
	default:
		return 64
	}
}
