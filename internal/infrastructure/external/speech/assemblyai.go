package speech

import (
	"bytes"
	"context"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"go.uber.org/zap"

	"github.com/hablalab/speech-coach/errors"
	"github.com/hablalab/speech-coach/internal/domain/entities"
	"github.com/hablalab/speech-coach/pkg/config"
)

// AssemblyAIRecognizer transcribes through the AssemblyAI SDK. It is the
// alternate provider; word offsets arrive in milliseconds and are converted
// to seconds.
type AssemblyAIRecognizer struct {
	client *aai.Client
	cfg    config.SpeechConfig
	logger *zap.Logger
}

func NewAssemblyAIRecognizer(cfg config.SpeechConfig, logger *zap.Logger) *AssemblyAIRecognizer {
	return &AssemblyAIRecognizer{
		client: aai.NewClient(cfg.AssemblyAIKey),
		cfg:    cfg,
		logger: logger,
	}
}

func (a *AssemblyAIRecognizer) Close() error { return nil }

func (a *AssemblyAIRecognizer) Recognize(ctx context.Context, audio []byte) (entities.TranscriptionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.LongRunningWait)
	defer cancel()

	langCode := baseLanguage(a.cfg.LanguageCode)
	transcript, err := a.client.Transcripts.TranscribeFromReader(ctx, bytes.NewReader(audio), &aai.TranscriptOptionalParams{
		LanguageCode: aai.TranscriptLanguageCode(langCode),
		Punctuate:    aai.Bool(true),
		FormatText:   aai.Bool(true),
	})
	if err != nil {
		return entities.TranscriptionResult{}, errors.ErrTranscriptionFailed(err)
	}

	var out entities.TranscriptionResult
	if transcript.Text != nil {
		out.Transcript = *transcript.Text
	}
	for _, w := range transcript.Words {
		wt := entities.WordTiming{}
		if w.Text != nil {
			wt.Word = *w.Text
		}
		if w.Start != nil {
			wt.Start = float64(*w.Start) / 1000.0
		}
		if w.End != nil {
			wt.End = float64(*w.End) / 1000.0
		}
		if w.Confidence != nil {
			wt.Confidence = *w.Confidence
		}
		out.Words = append(out.Words, wt)
	}
	return out, nil
}

// baseLanguage strips the region from a BCP-47 tag; AssemblyAI expects plain
// language codes ("es", not "es-ES").
func baseLanguage(code string) string {
	for i := 0; i < len(code); i++ {
		if code[i] == '-' {
			return code[:i]
		}
	}
	return code
}
