package entities

import "strings"

// ProficiencyLevel is the learner-declared level used to select expected
// structures and level-relative thresholds.
type ProficiencyLevel string

const (
	LevelBeginner     ProficiencyLevel = "beginner"
	LevelIntermediate ProficiencyLevel = "intermediate"
	LevelAdvanced     ProficiencyLevel = "advanced"
)

// ParseProficiencyLevel maps caller input to a level, defaulting to
// intermediate for absent or unknown values.
func ParseProficiencyLevel(s string) ProficiencyLevel {
	switch ProficiencyLevel(strings.ToLower(strings.TrimSpace(s))) {
	case LevelBeginner:
		return LevelBeginner
	case LevelAdvanced:
		return LevelAdvanced
	default:
		return LevelIntermediate
	}
}

// PromptType identifies which checklist applies when scoring whether the
// speaker addressed the prompt.
type PromptType string

const (
	PromptFreeSpeech        PromptType = "free_speech"
	PromptIntroduceYourself PromptType = "introduce_yourself"
	PromptDescribeYourDay   PromptType = "describe_your_day"
	PromptOpinionTechnology PromptType = "opinion_technology_education"
)

// PromptTypeFromReferenceKey derives the prompt type from the practice
// reference key the caller selected. Unknown keys mean free speech.
func PromptTypeFromReferenceKey(key string) PromptType {
	switch PromptType(key) {
	case PromptIntroduceYourself, PromptDescribeYourDay, PromptOpinionTechnology:
		return PromptType(key)
	default:
		return PromptFreeSpeech
	}
}

// Criterion names the four FACT rubric criteria.
type Criterion string

const (
	CriterionClarity   Criterion = "clarity"
	CriterionFunction  Criterion = "function"
	CriterionDiscourse Criterion = "discourse"
	CriterionLexicon   Criterion = "lexicon"
)

// CriterionResult is the immutable output of one criterion evaluator.
type CriterionResult struct {
	Score       float64                `json:"score"`
	Subcriteria map[string]float64     `json:"subcriteria"`
	Details     map[string]interface{} `json:"details,omitempty"`
}

// AssessmentResult is the engine's final output. Immutable once returned.
type AssessmentResult struct {
	Score                float64                          `json:"score"`
	Level                string                           `json:"level"`
	Feedback             string                           `json:"feedback"`
	Strengths            []string                         `json:"strengths"`
	AreasForImprovement  []string                         `json:"areas_for_improvement"`
	CriterionBreakdown   map[Criterion]float64            `json:"fact_breakdown"`
	SubcriteriaBreakdown map[Criterion]map[string]float64 `json:"subcriteria"`
	Details              map[string]interface{}           `json:"details,omitempty"`
	// Practice-mode only.
	ReferenceText string  `json:"reference_text,omitempty"`
	Similarity    float64 `json:"reference_similarity,omitempty"`
}

// ScoringBand is a named score range with its feedback template. Band
// identity is carried by the struct, never inferred from feedback text.
type ScoringBand struct {
	Name             string     `json:"name"`
	ScoreRange       [2]float64 `json:"score_range"`
	FeedbackTemplate string     `json:"feedback_template"`
}

// Contains reports whether score falls inside the band's inclusive range.
func (b ScoringBand) Contains(score float64) bool {
	return score >= b.ScoreRange[0] && score <= b.ScoreRange[1]
}
