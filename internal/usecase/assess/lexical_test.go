package assess

import (
	"testing"

	"github.com/hablalab/speech-coach/internal/domain/entities"
)

func TestEvaluateLexiconShortUtteranceGated(t *testing.T) {
	result := evaluateLexicon("hola buenos días", entities.LevelBeginner, nil)
	if result.Subcriteria["lexical_variety"] != 0 {
		t.Fatalf("variety should not be computed for short utterances, got %v",
			result.Subcriteria["lexical_variety"])
	}
	if result.Subcriteria["lexical_fit"] != 30 || result.Subcriteria["lexical_sufficiency"] != 30 {
		t.Fatalf("fit and sufficiency should be capped low: %v", result.Subcriteria)
	}
}

func TestEvaluateLexiconBeginnerPersonalTopics(t *testing.T) {
	transcript := "me llamo ana tengo veinte años vivo con mi familia mi madre mi padre y mi hermana en una casa"
	result := evaluateLexicon(transcript, entities.LevelBeginner, nil)

	if result.Subcriteria["lexical_fit"] < 80 {
		t.Fatalf("personal vocabulary fits the beginner rubric, got %v", result.Subcriteria["lexical_fit"])
	}
	if result.Subcriteria["conceptual_level"] < 85 {
		t.Fatalf("personal tier matches the beginner expectation, got %v",
			result.Subcriteria["conceptual_level"])
	}
}

func TestEvaluateLexiconAdvancedExpectsAbstract(t *testing.T) {
	personal := "me llamo ana tengo veinte años vivo con mi familia mi madre y mi hermana en una casa"
	abstract := "en mi opinión la tecnología transforma la educación y la sociedad porque el desarrollo " +
		"del conocimiento crea nuevas soluciones para cada problema de la economía"

	low := evaluateLexicon(personal, entities.LevelAdvanced, nil)
	high := evaluateLexicon(abstract, entities.LevelAdvanced, nil)

	if low.Subcriteria["conceptual_level"] >= high.Subcriteria["conceptual_level"] {
		t.Fatalf("abstract vocabulary should outscore personal for advanced: personal=%v abstract=%v",
			low.Subcriteria["conceptual_level"], high.Subcriteria["conceptual_level"])
	}
}

func TestScoreLexicalVariety(t *testing.T) {
	repetitive := []string{"casa", "casa", "casa", "casa", "perro", "perro", "perro", "perro"}
	varied := []string{"casa", "perro", "mercado", "trabajo", "escuela", "comida", "ciudad", "viaje"}

	if scoreLexicalVariety(repetitive) >= scoreLexicalVariety(varied) {
		t.Fatalf("repetition should lower variety: repetitive=%v varied=%v",
			scoreLexicalVariety(repetitive), scoreLexicalVariety(varied))
	}
}

func TestEvaluateLexiconOOVDetail(t *testing.T) {
	// Nil store means no dictionary; the detail list stays empty.
	result := evaluateLexicon("me llamo ana tengo veinte años vivo con mi familia aquí cerca", entities.LevelBeginner, nil)
	oov, ok := result.Details["oov_words"].([]string)
	if !ok && result.Details["oov_words"] != nil {
		t.Fatalf("oov_words detail has unexpected type: %T", result.Details["oov_words"])
	}
	if len(oov) != 0 {
		t.Fatalf("expected no oov words without a dictionary, got %v", oov)
	}
}
