package assess

import (
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hablalab/speech-coach/internal/domain/entities"
	"github.com/hablalab/speech-coach/internal/lexicon"
	"github.com/hablalab/speech-coach/pkg/config"
)

// Engine scores a transcription against the four-criterion rubric and
// produces learner-facing feedback. Scoring itself is deterministic; only
// the phrasing of improvement suggestions is randomized.
type Engine struct {
	lex     *lexicon.Store
	weights map[entities.Criterion]float64
	logger  *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// Options select the rubric context for one evaluation.
type Options struct {
	Level entities.ProficiencyLevel
	// ReferenceKey is the practice-mode reference id; empty means free speech.
	ReferenceKey string
}

func NewEngine(cfg config.AssessConfig, lex *lexicon.Store, logger *zap.Logger) *Engine {
	seed := cfg.FeedbackSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		lex: lex,
		weights: map[entities.Criterion]float64{
			entities.CriterionClarity:   cfg.WeightClarity,
			entities.CriterionFunction:  cfg.WeightFunction,
			entities.CriterionDiscourse: cfg.WeightDiscourse,
			entities.CriterionLexicon:   cfg.WeightLexicon,
		},
		logger: logger,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Evaluate runs all four criterion evaluators over the transcription and
// combines them into a single assessment. Practice mode (a known reference
// key) additionally measures similarity to the reference phrase.
func (e *Engine) Evaluate(tr entities.TranscriptionResult, opts Options) *entities.AssessmentResult {
	prompt := entities.PromptTypeFromReferenceKey(opts.ReferenceKey)

	clarity := evaluateClarity(tr.Transcript, tr.Words)
	function := evaluateFunction(tr.Transcript, opts.Level, prompt)
	discourse := evaluateDiscourse(tr.Transcript, tr.Words, prompt)
	lexical := evaluateLexicon(tr.Transcript, opts.Level, e.lex)

	breakdown := map[entities.Criterion]float64{
		entities.CriterionClarity:   round1(clarity.Score),
		entities.CriterionFunction:  round1(function.Score),
		entities.CriterionDiscourse: round1(discourse.Score),
		entities.CriterionLexicon:   round1(lexical.Score),
	}
	subcriteria := map[entities.Criterion]map[string]float64{
		entities.CriterionClarity:   clarity.Subcriteria,
		entities.CriterionFunction:  function.Subcriteria,
		entities.CriterionDiscourse: discourse.Subcriteria,
		entities.CriterionLexicon:   lexical.Subcriteria,
	}

	score := 0.0
	for c, w := range e.weights {
		score += w * breakdown[c]
	}
	score += spontaneousAdjustment(tr)
	score = round1(clamp(score, 0, 100))

	band := e.lex.BandFor(score)

	strengthsUsed := map[entities.Criterion]bool{}
	for c, s := range breakdown {
		if s >= strengthThresholds[c] {
			strengthsUsed[c] = true
		}
	}

	e.mu.Lock()
	improvements := buildImprovements(breakdown, strengthsUsed, e.rng)
	e.mu.Unlock()
	improvements = append(improvements, detectPatterns(clarity, score)...)
	if len(improvements) > 3 {
		improvements = improvements[:3]
	}

	result := &entities.AssessmentResult{
		Score:                score,
		Level:                band.Name,
		Feedback:             band.FeedbackTemplate,
		Strengths:            buildStrengths(breakdown),
		AreasForImprovement:  improvements,
		CriterionBreakdown:   breakdown,
		SubcriteriaBreakdown: subcriteria,
		Details: map[string]interface{}{
			"clarity":   clarity.Details,
			"function":  function.Details,
			"discourse": discourse.Details,
			"lexicon":   lexical.Details,
		},
	}

	if opts.ReferenceKey != "" {
		if ref, ok := e.lex.Reference(opts.ReferenceKey); ok {
			sim := tokenSortRatio(tr.Transcript, ref)
			result.ReferenceText = ref
			result.Similarity = round1(sim)
			applyPracticeAdjustment(result, sim)
			band = e.lex.BandFor(result.Score)
			result.Level = band.Name
			result.Feedback = band.FeedbackTemplate
		}
	}

	e.logger.Debug("assessment complete",
		zap.Float64("score", result.Score),
		zap.String("level", result.Level),
		zap.String("reference_key", opts.ReferenceKey))

	return result
}

// spontaneousAdjustment rewards longer confident speech with up to three
// extra points. Only applies when recognition was trustworthy.
func spontaneousAdjustment(tr entities.TranscriptionResult) float64 {
	if tr.MeanConfidence() < 0.8 {
		return 0
	}
	n := len(tr.Words)
	switch {
	case n >= 60:
		return 3
	case n >= 35:
		return 2
	case n >= 20:
		return 1
	default:
		return 0
	}
}
