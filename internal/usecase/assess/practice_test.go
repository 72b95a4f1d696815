package assess

import (
	"testing"

	"github.com/hablalab/speech-coach/internal/domain/entities"
)

func TestTokenSortRatioIdentical(t *testing.T) {
	if got := tokenSortRatio("hola me llamo ana", "hola me llamo ana"); got != 100 {
		t.Fatalf("identical strings should be 100, got %v", got)
	}
}

func TestTokenSortRatioWordOrderInsensitive(t *testing.T) {
	a := tokenSortRatio("me llamo ana hola", "hola me llamo ana")
	if a != 100 {
		t.Fatalf("reordered words should still be 100, got %v", a)
	}
}

func TestTokenSortRatioCaseAndPunctuation(t *testing.T) {
	got := tokenSortRatio("¡Hola! Me llamo Ana.", "hola me llamo ana")
	if got != 100 {
		t.Fatalf("punctuation and case should not matter, got %v", got)
	}
}

func TestTokenSortRatioDisjoint(t *testing.T) {
	got := tokenSortRatio("hola buenos días", "el tren llega tarde")
	if got > 50 {
		t.Fatalf("unrelated strings should score low, got %v", got)
	}
}

func TestApplyPracticeAdjustmentBonus(t *testing.T) {
	result := &entities.AssessmentResult{Score: 80}
	applyPracticeAdjustment(result, 100)
	if result.Score != 90 {
		t.Fatalf("full similarity should add the capped 10-point bonus, got %v", result.Score)
	}
	if len(result.Strengths) == 0 || result.Strengths[0] != "Good reproduction of the reference phrase" {
		t.Fatalf("high similarity should prepend the reproduction strength, got %v", result.Strengths)
	}
}

func TestApplyPracticeAdjustmentNoBonusAtOrBelow70(t *testing.T) {
	result := &entities.AssessmentResult{Score: 80}
	applyPracticeAdjustment(result, 70)
	if result.Score != 80 {
		t.Fatalf("similarity of 70 should add no bonus, got %v", result.Score)
	}
}

func TestApplyPracticeAdjustmentCappedAt100(t *testing.T) {
	result := &entities.AssessmentResult{Score: 97}
	applyPracticeAdjustment(result, 100)
	if result.Score != 100 {
		t.Fatalf("bonus should never exceed 100, got %v", result.Score)
	}
}

func TestApplyPracticeAdjustmentDivergenceFeedback(t *testing.T) {
	result := &entities.AssessmentResult{
		Score:               60,
		AreasForImprovement: []string{"existing"},
	}
	applyPracticeAdjustment(result, 30)
	if result.AreasForImprovement[0] != "Your response differed significantly from the reference phrase" {
		t.Fatalf("low similarity should prepend the divergence note, got %v", result.AreasForImprovement)
	}
	if result.AreasForImprovement[1] != "existing" {
		t.Fatalf("existing improvements should be preserved, got %v", result.AreasForImprovement)
	}
}

func TestApplyPracticeAdjustmentKeepsFeedbackCapped(t *testing.T) {
	result := &entities.AssessmentResult{
		Score:               60,
		AreasForImprovement: []string{"first", "second", "third"},
	}
	applyPracticeAdjustment(result, 30)
	if len(result.AreasForImprovement) != 3 {
		t.Fatalf("improvements should stay capped at three, got %v", result.AreasForImprovement)
	}
	if result.AreasForImprovement[0] != "Your response differed significantly from the reference phrase" {
		t.Fatalf("divergence note should lead the list, got %v", result.AreasForImprovement)
	}
	if result.AreasForImprovement[2] != "second" {
		t.Fatalf("the lowest-priority entry should be dropped, got %v", result.AreasForImprovement)
	}
}

func TestApplyPracticeAdjustmentModerateSimilarity(t *testing.T) {
	result := &entities.AssessmentResult{Score: 60}
	applyPracticeAdjustment(result, 60)
	if result.AreasForImprovement[0] != "Try to follow the reference phrase more closely" {
		t.Fatalf("moderate similarity should nudge toward the reference, got %v", result.AreasForImprovement)
	}
	if result.Score != 60 {
		t.Fatalf("no bonus below 70 similarity, got %v", result.Score)
	}
}
