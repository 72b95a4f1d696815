package speech

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hablalab/speech-coach/internal/domain/entities"
	"github.com/hablalab/speech-coach/internal/usecase/assess"
	"github.com/hablalab/speech-coach/pkg/config"
)

// Recognizer transcribes audio into text with word timings.
type Recognizer interface {
	Recognize(ctx context.Context, audio []byte) (entities.TranscriptionResult, error)
}

// Corrector produces a grammatically corrected version of the transcript.
type Corrector interface {
	Configured() bool
	CorrectSpanish(ctx context.Context, text string) (string, error)
}

// Synthesizer renders coaching audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, rate float64) ([]byte, error)
}

// AudioSaver persists synthesized audio and returns the served filename.
type AudioSaver interface {
	Save(audio []byte) (string, error)
}

// Archiver stores the original learner recording. Optional.
type Archiver interface {
	UploadAudio(ctx context.Context, objectName string, audio []byte, contentType string) error
}

// ProcessRequest carries one upload through the pipeline.
type ProcessRequest struct {
	Audio       []byte
	ContentType string
	// PracticeLevel selects a reference phrase; empty means free speech.
	PracticeLevel string
	// Level is the learner-declared proficiency for free-speech rubric
	// expectations.
	Level string
}

// ProcessResult is the assessment payload returned to the client.
type ProcessResult struct {
	Score               float64                                   `json:"score"`
	Level               string                                    `json:"level"`
	TranscribedText     string                                    `json:"transcribed_text"`
	CorrectedText       string                                    `json:"corrected_text"`
	Feedback            string                                    `json:"feedback"`
	Strengths           []string                                  `json:"strengths"`
	AreasForImprovement []string                                  `json:"areas_for_improvement"`
	FactBreakdown       map[entities.Criterion]float64            `json:"fact_breakdown,omitempty"`
	Subcriteria         map[entities.Criterion]map[string]float64 `json:"subcriteria,omitempty"`
	ReferenceText       string                                    `json:"reference_text,omitempty"`
	Similarity          *float64                                  `json:"reference_similarity,omitempty"`
	TTSAudioURL         *string                                   `json:"tts_audio_url"`
	Error               string                                    `json:"error,omitempty"`
}

// Service orchestrates transcription, assessment, correction, and synthesis.
type Service struct {
	recognizer  Recognizer
	engine      *assess.Engine
	corrector   Corrector
	synthesizer Synthesizer
	audioStore  AudioSaver
	archiver    Archiver
	ttsCfg      config.TTSConfig
	logger      *zap.Logger
}

func NewService(
	recognizer Recognizer,
	engine *assess.Engine,
	corrector Corrector,
	synthesizer Synthesizer,
	audioStore AudioSaver,
	archiver Archiver,
	ttsCfg config.TTSConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		recognizer:  recognizer,
		engine:      engine,
		corrector:   corrector,
		synthesizer: synthesizer,
		audioStore:  audioStore,
		archiver:    archiver,
		ttsCfg:      ttsCfg,
		logger:      logger,
	}
}

// ProcessAudio runs the full pipeline. Provider failures and empty
// transcripts both yield the fixed no-speech payload; only faults in the
// service itself propagate as errors.
func (s *Service) ProcessAudio(ctx context.Context, req ProcessRequest) (*ProcessResult, error) {
	s.archive(ctx, req)

	tr, err := s.recognizer.Recognize(ctx, req.Audio)
	if err != nil {
		s.logger.Warn("transcription provider failed, degrading", zap.Error(err))
		return noSpeechResult(), nil
	}
	if tr.Empty() {
		s.logger.Warn("no speech detected in upload")
		return noSpeechResult(), nil
	}

	opts := assess.Options{Level: entities.ParseProficiencyLevel(req.Level)}
	practice := req.PracticeLevel != ""
	if practice {
		opts.ReferenceKey = req.PracticeLevel
		opts.Level = entities.ParseProficiencyLevel(req.PracticeLevel)
	}
	assessment := s.engine.Evaluate(tr, opts)

	corrected := s.correctedText(ctx, tr.Transcript, assessment)

	result := &ProcessResult{
		Score:               assessment.Score,
		Level:               assessment.Level,
		TranscribedText:     tr.Transcript,
		CorrectedText:       corrected,
		Feedback:            assessment.Feedback,
		Strengths:           assessment.Strengths,
		AreasForImprovement: assessment.AreasForImprovement,
		FactBreakdown:       assessment.CriterionBreakdown,
		Subcriteria:         assessment.SubcriteriaBreakdown,
	}
	if practice && assessment.ReferenceText != "" {
		result.ReferenceText = assessment.ReferenceText
		sim := assessment.Similarity
		result.Similarity = &sim
	}

	if url := s.synthesize(ctx, corrected, assessment.Score); url != "" {
		result.TTSAudioURL = &url
	}
	return result, nil
}

// correctedText prefers the practice reference phrase, then the LLM
// correction, then the transcript unchanged.
func (s *Service) correctedText(ctx context.Context, transcript string, assessment *entities.AssessmentResult) string {
	if assessment.ReferenceText != "" {
		return assessment.ReferenceText
	}
	if s.corrector == nil || !s.corrector.Configured() {
		return transcript
	}
	corrected, err := s.corrector.CorrectSpanish(ctx, transcript)
	if err != nil || corrected == "" {
		s.logger.Warn("grammar correction unavailable, using transcript", zap.Error(err))
		return transcript
	}
	return corrected
}

// synthesize renders the corrected text as coaching audio and stores it.
// Failures degrade to a response without audio.
func (s *Service) synthesize(ctx context.Context, text string, score float64) string {
	if s.synthesizer == nil || s.audioStore == nil || text == "" {
		return ""
	}
	rate := 1.0
	if score < s.ttsCfg.SlowScoreCutoff {
		rate = s.ttsCfg.SlowRate
	}
	audio, err := s.synthesizer.Synthesize(ctx, text, rate)
	if err != nil {
		s.logger.Warn("tts synthesis failed", zap.Error(err))
		return ""
	}
	name, err := s.audioStore.Save(audio)
	if err != nil {
		s.logger.Warn("tts save failed", zap.Error(err))
		return ""
	}
	return "/get-tts-audio/" + name
}

func (s *Service) archive(ctx context.Context, req ProcessRequest) {
	if s.archiver == nil {
		return
	}
	name := uuid.New().String()
	if err := s.archiver.UploadAudio(ctx, name, req.Audio, req.ContentType); err != nil {
		s.logger.Warn("failed to archive recording", zap.Error(err))
	}
}

// noSpeechResult is the fixed payload returned when recognition produced no
// words at all.
func noSpeechResult() *ProcessResult {
	return &ProcessResult{
		Score:           70,
		Level:           "Novice Mid",
		TranscribedText: "No se pudo transcribir el audio. Por favor, intente de nuevo hablando claramente en español.",
		CorrectedText:   "No transcription available. Try speaking more slowly and clearly in Spanish.",
		Error:           "Could not transcribe audio. Please try again with clearer pronunciation.",
		Feedback: "Our system had difficulty understanding your speech. This could be due to " +
			"background noise, speaking too quietly, or using vocabulary that's difficult to recognize.",
		Strengths: []string{"Attempt to speak in Spanish"},
		AreasForImprovement: []string{
			"Speak clearly and at a moderate pace",
			"Use a good quality microphone",
			"Reduce background noise",
			"Try the Beginner prompt first to test your setup",
		},
		TTSAudioURL: nil,
	}
}
