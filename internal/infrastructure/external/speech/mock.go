package speech

import (
	"context"

	"github.com/hablalab/speech-coach/internal/domain/entities"
)

// MockRecognizer returns a fixed transcription. Used for local development
// without cloud credentials and in tests.
type MockRecognizer struct {
	Result entities.TranscriptionResult
	Err    error
}

func NewMockRecognizer() *MockRecognizer {
	words := []string{"hola", "me", "llamo", "ana", "y", "soy", "estudiante"}
	timings := make([]entities.WordTiming, 0, len(words))
	t := 0.0
	for _, w := range words {
		timings = append(timings, entities.WordTiming{
			Word:       w,
			Start:      t,
			End:        t + 0.4,
			Confidence: 0.92,
		})
		t += 0.5
	}
	return &MockRecognizer{
		Result: entities.TranscriptionResult{
			Transcript: "Hola, me llamo Ana y soy estudiante.",
			Words:      timings,
		},
	}
}

func (m *MockRecognizer) Recognize(ctx context.Context, audio []byte) (entities.TranscriptionResult, error) {
	if m.Err != nil {
		return entities.TranscriptionResult{}, m.Err
	}
	return m.Result, nil
}

func (m *MockRecognizer) Close() error { return nil }
