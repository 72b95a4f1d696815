package speech

import (
	"context"

	gspeech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/hablalab/speech-coach/errors"
	"github.com/hablalab/speech-coach/internal/domain/entities"
	"github.com/hablalab/speech-coach/pkg/config"
)

// GoogleRecognizer wraps the Cloud Speech-to-Text API. Small payloads use the
// synchronous call; larger payloads go through long-running recognition with
// a bounded wait, falling back to one synchronous retry when the payload is
// still small enough.
type GoogleRecognizer struct {
	client *gspeech.Client
	cfg    config.SpeechConfig
	logger *zap.Logger
}

func NewGoogleRecognizer(ctx context.Context, cfg config.SpeechConfig, logger *zap.Logger) (*GoogleRecognizer, error) {
	client, err := gspeech.NewClient(ctx)
	if err != nil {
		return nil, errors.ErrTranscriptionFailed(err)
	}
	return &GoogleRecognizer{client: client, cfg: cfg, logger: logger}, nil
}

func (g *GoogleRecognizer) Close() error {
	return g.client.Close()
}

func (g *GoogleRecognizer) Recognize(ctx context.Context, audio []byte) (entities.TranscriptionResult, error) {
	if int64(len(audio)) < g.cfg.SyncThresholdBytes {
		return g.recognizeSync(ctx, audio)
	}

	result, err := g.recognizeLongRunning(ctx, audio)
	if err == nil {
		return result, nil
	}
	g.logger.Warn("long-running recognition failed", zap.Error(err))

	if int64(len(audio)) <= g.cfg.RetryCapBytes {
		var retried entities.TranscriptionResult
		op := func() error {
			var rerr error
			retried, rerr = g.recognizeSync(ctx, audio)
			return rerr
		}
		// MaxRetries of 0 bounds the fallback to a single synchronous attempt.
		if rerr := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 0), ctx)); rerr == nil {
			return retried, nil
		}
	}
	return entities.TranscriptionResult{}, err
}

func (g *GoogleRecognizer) recognitionConfig() *speechpb.RecognitionConfig {
	return &speechpb.RecognitionConfig{
		LanguageCode:               g.cfg.LanguageCode,
		AlternativeLanguageCodes:   g.cfg.AltLanguageCodes,
		EnableWordTimeOffsets:      true,
		EnableWordConfidence:       true,
		EnableAutomaticPunctuation: true,
	}
}

func (g *GoogleRecognizer) recognizeSync(ctx context.Context, audio []byte) (entities.TranscriptionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.RequestTimeout)
	defer cancel()

	resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: g.recognitionConfig(),
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return entities.TranscriptionResult{}, errors.ErrTranscriptionFailed(err)
	}
	return collectResults(resp.GetResults()), nil
}

func (g *GoogleRecognizer) recognizeLongRunning(ctx context.Context, audio []byte) (entities.TranscriptionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.LongRunningWait)
	defer cancel()

	op, err := g.client.LongRunningRecognize(ctx, &speechpb.LongRunningRecognizeRequest{
		Config: g.recognitionConfig(),
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return entities.TranscriptionResult{}, errors.ErrTranscriptionFailed(err)
	}

	resp, err := op.Wait(ctx)
	if err != nil {
		return entities.TranscriptionResult{}, errors.ErrTranscriptionFailed(err)
	}
	return collectResults(resp.GetResults()), nil
}

// collectResults flattens the per-segment alternatives into one transcript
// with a single word-timing stream.
func collectResults(results []*speechpb.SpeechRecognitionResult) entities.TranscriptionResult {
	var out entities.TranscriptionResult
	for _, res := range results {
		alts := res.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		best := alts[0]
		if out.Transcript != "" && best.GetTranscript() != "" {
			out.Transcript += " "
		}
		out.Transcript += best.GetTranscript()
		for _, w := range best.GetWords() {
			out.Words = append(out.Words, entities.WordTiming{
				Word:       w.GetWord(),
				Start:      w.GetStartTime().AsDuration().Seconds(),
				End:        w.GetEndTime().AsDuration().Seconds(),
				Confidence: float64(w.GetConfidence()),
			})
		}
	}
	return out
}
