package tts

import (
	"context"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"go.uber.org/zap"

	"github.com/hablalab/speech-coach/errors"
	"github.com/hablalab/speech-coach/pkg/config"
)

// GoogleSynthesizer produces MP3 audio with a Spanish female voice through
// the Cloud Text-to-Speech API.
type GoogleSynthesizer struct {
	client *texttospeech.Client
	cfg    config.TTSConfig
	logger *zap.Logger
}

func NewGoogleSynthesizer(ctx context.Context, cfg config.TTSConfig, logger *zap.Logger) (*GoogleSynthesizer, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, errors.ErrSynthesisFailed(err)
	}
	return &GoogleSynthesizer{client: client, cfg: cfg, logger: logger}, nil
}

func (g *GoogleSynthesizer) Close() error {
	return g.client.Close()
}

func (g *GoogleSynthesizer) Synthesize(ctx context.Context, text string, rate float64) ([]byte, error) {
	if rate <= 0 {
		rate = 1.0
	}
	ctx, cancel := context.WithTimeout(ctx, g.cfg.RequestTimeout)
	defer cancel()

	resp, err := g.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: g.cfg.LanguageCode,
			SsmlGender:   texttospeechpb.SsmlVoiceGender_FEMALE,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  rate,
		},
	})
	if err != nil {
		return nil, errors.ErrSynthesisFailed(err)
	}
	return resp.GetAudioContent(), nil
}
