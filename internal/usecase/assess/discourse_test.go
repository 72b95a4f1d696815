package assess

import (
	"testing"

	"github.com/hablalab/speech-coach/internal/domain/entities"
)

func TestEvaluateDiscourseShortUtteranceGated(t *testing.T) {
	result := evaluateDiscourse("hola buenos días", nil, entities.PromptFreeSpeech)
	if result.Score != 40 {
		t.Fatalf("expected gated score 40, got %v", result.Score)
	}
	for name, sub := range result.Subcriteria {
		if sub != 40 {
			t.Fatalf("expected gated subcriterion %s=40, got %v", name, sub)
		}
	}
}

func TestEvaluateDiscourseConnectedNarration(t *testing.T) {
	transcript := "primero me levanto y desayuno en casa después voy al trabajo en autobús " +
		"luego como con mis compañeros y finalmente vuelvo a casa porque estoy cansado"
	result := evaluateDiscourse(transcript, nil, entities.PromptDescribeYourDay)

	if result.Subcriteria["logical_sequencing"] < 80 {
		t.Fatalf("heavy sequencing connectors should score well, got %v",
			result.Subcriteria["logical_sequencing"])
	}
	if result.Subcriteria["type_alignment"] < 80 {
		t.Fatalf("temporal narration matches the describe-your-day profile, got %v",
			result.Subcriteria["type_alignment"])
	}
}

func TestEvaluateDiscourseNoConnectors(t *testing.T) {
	transcript := "casa perro gato mesa silla libro puerta ventana calle coche agua pan"
	bare := evaluateDiscourse(transcript, nil, entities.PromptFreeSpeech)

	connected := "primero fui a casa y luego porque tenía hambre comí pan además bebí agua"
	linked := evaluateDiscourse(connected, nil, entities.PromptFreeSpeech)

	if bare.Score >= linked.Score {
		t.Fatalf("disconnected word list should score below connected speech: bare=%v linked=%v",
			bare.Score, linked.Score)
	}
}

func TestCountConnectorsMultiWord(t *testing.T) {
	transcript := normalizeText("estudio mucho por eso apruebo los exámenes y por lo tanto estoy contento")
	counts, total := countConnectors(transcript, tokenize(transcript))
	if counts["causal"] < 2 {
		t.Fatalf("expected multi-word causal connectors to be counted, got %v", counts)
	}
	if total < 3 {
		t.Fatalf("expected at least 3 connectors including y, got %d", total)
	}
}
