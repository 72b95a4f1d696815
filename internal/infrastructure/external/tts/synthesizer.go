package tts

import "context"

// Synthesizer turns coaching text into spoken audio. Rate below 1.0 slows
// the speech down for lower-level learners.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, rate float64) ([]byte, error)
	Close() error
}
