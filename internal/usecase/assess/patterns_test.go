package assess

import (
	"testing"

	"github.com/hablalab/speech-coach/internal/domain/entities"
)

func hesitantClarity() entities.CriterionResult {
	return entities.CriterionResult{
		Score: 55,
		Details: map[string]interface{}{
			"timing_available":  true,
			"mean_confidence":   60.0,
			"thinking_pauses":   1,
			"disruptive_pauses": 3,
			"speech_ratio":      40.0,
			"micro_pauses":      9,
			"rhythm_stddev":     120.0,
			"rhythm_windows":    4,
		},
	}
}

func TestDetectPatternsLimitsByScore(t *testing.T) {
	clarity := hesitantClarity()

	if n := len(detectPatterns(clarity, 50)); n > 3 {
		t.Fatalf("low scores surface at most 3 patterns, got %d", n)
	}
	if n := len(detectPatterns(clarity, 85)); n > 2 {
		t.Fatalf("scores of 80+ surface at most 2 patterns, got %d", n)
	}
	if n := len(detectPatterns(clarity, 95)); n > 1 {
		t.Fatalf("scores of 90+ surface at most 1 pattern, got %d", n)
	}
}

func TestDetectPatternsCleanSpeech(t *testing.T) {
	clean := entities.CriterionResult{
		Score: 90,
		Details: map[string]interface{}{
			"timing_available":  true,
			"mean_confidence":   95.0,
			"thinking_pauses":   0,
			"disruptive_pauses": 0,
			"speech_ratio":      80.0,
			"micro_pauses":      1,
			"rhythm_stddev":     20.0,
			"rhythm_windows":    4,
		},
	}
	if got := detectPatterns(clean, 90); len(got) != 0 {
		t.Fatalf("clean speech should surface no patterns, got %v", got)
	}
}

func TestDetectPatternsMissingTimings(t *testing.T) {
	clarity := entities.CriterionResult{
		Score:   70,
		Details: map[string]interface{}{"timing_available": false},
	}
	if got := detectPatterns(clarity, 70); len(got) != 0 {
		t.Fatalf("no timing data means no patterns, got %v", got)
	}
}

func TestDetectPatternsDoesNotMutateClarity(t *testing.T) {
	clarity := hesitantClarity()
	before := clarity.Score
	detectPatterns(clarity, 50)
	if clarity.Score != before {
		t.Fatalf("pattern detection must not alter the criterion score")
	}
}
