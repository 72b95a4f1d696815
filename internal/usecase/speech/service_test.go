package speech

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/hablalab/speech-coach/internal/domain/entities"
	"github.com/hablalab/speech-coach/internal/lexicon"
	"github.com/hablalab/speech-coach/internal/usecase/assess"
	"github.com/hablalab/speech-coach/pkg/config"
)

type fakeRecognizer struct {
	result entities.TranscriptionResult
	err    error
}

func (f fakeRecognizer) Recognize(ctx context.Context, audio []byte) (entities.TranscriptionResult, error) {
	return f.result, f.err
}

type fakeCorrector struct {
	corrected string
	err       error
	called    bool
}

func (f *fakeCorrector) Configured() bool { return true }

func (f *fakeCorrector) CorrectSpanish(ctx context.Context, text string) (string, error) {
	f.called = true
	return f.corrected, f.err
}

type fakeSynthesizer struct {
	audio []byte
	err   error
	rate  float64
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text string, rate float64) ([]byte, error) {
	f.rate = rate
	return f.audio, f.err
}

type fakeSaver struct {
	name string
	err  error
}

func (f fakeSaver) Save(audio []byte) (string, error) {
	return f.name, f.err
}

func fluentTranscription() entities.TranscriptionResult {
	words := []string{"hola", "me", "llamo", "juan", "tengo", "veinte", "años", "vivo", "con",
		"mi", "familia", "y", "soy", "estudiante", "en", "la", "universidad", "también",
		"trabajo", "en", "una", "tienda", "porque", "necesito", "dinero"}
	timings := make([]entities.WordTiming, 0, len(words))
	at := 0.0
	for _, w := range words {
		timings = append(timings, entities.WordTiming{Word: w, Start: at, End: at + 0.3, Confidence: 0.93})
		at += 0.4
	}
	return entities.TranscriptionResult{
		Transcript: strings.Join(words, " "),
		Words:      timings,
	}
}

func testService(t *testing.T, rec Recognizer, cor Corrector, syn Synthesizer, saver AudioSaver) *Service {
	t.Helper()
	cfg := config.AssessConfig{
		WeightClarity:   0.25,
		WeightFunction:  0.30,
		WeightDiscourse: 0.20,
		WeightLexicon:   0.25,
		FeedbackSeed:    1,
		DataDir:         "no-such-dir",
	}
	lex := lexicon.Load(context.Background(), cfg, nil, zap.NewNop())
	engine := assess.NewEngine(cfg, lex, zap.NewNop())
	ttsCfg := config.TTSConfig{SlowScoreCutoff: 65, SlowRate: 0.8}
	return NewService(rec, engine, cor, syn, saver, nil, ttsCfg, zap.NewNop())
}

func TestProcessAudioFullPipeline(t *testing.T) {
	cor := &fakeCorrector{corrected: "Hola, me llamo Juan."}
	syn := &fakeSynthesizer{audio: []byte("mp3")}
	svc := testService(t, fakeRecognizer{result: fluentTranscription()}, cor, syn, fakeSaver{name: "tts_x.mp3"})

	result, err := svc.ProcessAudio(context.Background(), ProcessRequest{Audio: []byte("audio"), Level: "beginner"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score <= 0 {
		t.Fatalf("expected positive score, got %v", result.Score)
	}
	if !cor.called {
		t.Fatalf("free speech should go through grammar correction")
	}
	if result.CorrectedText != "Hola, me llamo Juan." {
		t.Fatalf("unexpected corrected text: %q", result.CorrectedText)
	}
	if result.TTSAudioURL == nil || *result.TTSAudioURL != "/get-tts-audio/tts_x.mp3" {
		t.Fatalf("unexpected tts url: %v", result.TTSAudioURL)
	}
}

func TestProcessAudioRecognizerErrorDegrades(t *testing.T) {
	svc := testService(t, fakeRecognizer{err: errors.New("upstream down")}, &fakeCorrector{}, &fakeSynthesizer{}, fakeSaver{})

	result, err := svc.ProcessAudio(context.Background(), ProcessRequest{Audio: []byte("audio")})
	if err != nil {
		t.Fatalf("provider failure should degrade, not error: %v", err)
	}
	if result.Score != 70 || result.Level != "Novice Mid" {
		t.Fatalf("unexpected degraded payload: score=%v level=%q", result.Score, result.Level)
	}
	if result.TTSAudioURL != nil {
		t.Fatalf("degraded payload should carry no tts url")
	}
}

func TestProcessAudioEmptyTranscriptDegrades(t *testing.T) {
	svc := testService(t, fakeRecognizer{}, &fakeCorrector{}, &fakeSynthesizer{}, fakeSaver{})

	result, err := svc.ProcessAudio(context.Background(), ProcessRequest{Audio: []byte("audio")})
	if err != nil {
		t.Fatalf("empty transcript should not error: %v", err)
	}
	if result.Score != 70 || result.Level != "Novice Mid" {
		t.Fatalf("unexpected degraded payload: score=%v level=%q", result.Score, result.Level)
	}
	if result.TTSAudioURL != nil {
		t.Fatalf("degraded payload should carry no tts url")
	}
	if result.Error == "" {
		t.Fatalf("degraded payload should carry the error message")
	}
}

func TestProcessAudioCorrectionFallsBackToTranscript(t *testing.T) {
	cor := &fakeCorrector{err: errors.New("llm down")}
	svc := testService(t, fakeRecognizer{result: fluentTranscription()}, cor, &fakeSynthesizer{audio: []byte("mp3")}, fakeSaver{name: "tts_x.mp3"})

	result, err := svc.ProcessAudio(context.Background(), ProcessRequest{Audio: []byte("audio"), Level: "beginner"})
	if err != nil {
		t.Fatalf("correction failure should degrade, not error: %v", err)
	}
	if result.CorrectedText != result.TranscribedText {
		t.Fatalf("expected identity fallback, got %q vs %q", result.CorrectedText, result.TranscribedText)
	}
}

func TestProcessAudioPracticeUsesReference(t *testing.T) {
	cor := &fakeCorrector{corrected: "should not be used"}
	svc := testService(t, fakeRecognizer{result: fluentTranscription()}, cor, &fakeSynthesizer{audio: []byte("mp3")}, fakeSaver{name: "tts_x.mp3"})

	result, err := svc.ProcessAudio(context.Background(), ProcessRequest{Audio: []byte("audio"), PracticeLevel: "beginner"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cor.called {
		t.Fatalf("practice mode should not call the corrector")
	}
	if result.ReferenceText == "" || result.CorrectedText != result.ReferenceText {
		t.Fatalf("practice mode should use the reference as corrected text, got %q", result.CorrectedText)
	}
	if result.Similarity == nil {
		t.Fatalf("practice mode should report similarity")
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	var wire map[string]interface{}
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if _, ok := wire["reference_similarity"]; !ok {
		t.Fatalf("similarity should serialize as reference_similarity, got keys %v", wire)
	}
	if _, ok := wire["similarity"]; ok {
		t.Fatalf("response should not carry a bare similarity field")
	}
}

func TestProcessAudioSynthesisFailureOmitsAudio(t *testing.T) {
	syn := &fakeSynthesizer{err: errors.New("tts down")}
	svc := testService(t, fakeRecognizer{result: fluentTranscription()}, &fakeCorrector{corrected: "ok"}, syn, fakeSaver{name: "tts_x.mp3"})

	result, err := svc.ProcessAudio(context.Background(), ProcessRequest{Audio: []byte("audio"), Level: "beginner"})
	if err != nil {
		t.Fatalf("synthesis failure should degrade, not error: %v", err)
	}
	if result.TTSAudioURL != nil {
		t.Fatalf("expected no tts url after synthesis failure, got %v", *result.TTSAudioURL)
	}
}

func TestSynthesizeSlowRateForLowScores(t *testing.T) {
	syn := &fakeSynthesizer{audio: []byte("mp3")}
	svc := testService(t, fakeRecognizer{}, &fakeCorrector{}, syn, fakeSaver{name: "tts_x.mp3"})

	svc.synthesize(context.Background(), "texto", 50)
	if syn.rate != 0.8 {
		t.Fatalf("scores below the cutoff should slow speech to 0.8, got %v", syn.rate)
	}
	svc.synthesize(context.Background(), "texto", 90)
	if syn.rate != 1.0 {
		t.Fatalf("scores above the cutoff should use normal rate, got %v", syn.rate)
	}
}
