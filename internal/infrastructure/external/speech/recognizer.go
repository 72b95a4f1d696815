package speech

import (
	"context"

	"github.com/hablalab/speech-coach/internal/domain/entities"
)

// Recognizer transcribes an audio payload into text with word-level timing
// and confidence. Implementations must be safe for concurrent use.
type Recognizer interface {
	Recognize(ctx context.Context, audio []byte) (entities.TranscriptionResult, error)
	Close() error
}
