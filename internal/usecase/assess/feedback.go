package assess

import (
	"math/rand"
	"sort"

	"github.com/hablalab/speech-coach/internal/domain/entities"
)

// Thresholds above which a criterion counts as a strength.
var strengthThresholds = map[entities.Criterion]float64{
	entities.CriterionClarity:   80,
	entities.CriterionFunction:  78,
	entities.CriterionDiscourse: 76,
	entities.CriterionLexicon:   78,
}

var strengthMessages = map[entities.Criterion]string{
	entities.CriterionClarity:   "Clear, intelligible delivery with well-grouped thoughts.",
	entities.CriterionFunction:  "You use the grammatical structures the task calls for with confidence.",
	entities.CriterionDiscourse: "Your ideas connect smoothly into organized, flowing speech.",
	entities.CriterionLexicon:   "Your vocabulary fits the topic and shows good range.",
}

// Improvement phrasings keyed by criterion and score decile band. Several
// variants per slot so repeated assessments do not read identically; the
// engine's RNG picks among them.
var improvementPools = map[entities.Criterion]map[int][]string{
	entities.CriterionClarity: {
		0: {
			"Slow down and pronounce each syllable fully so the listener can follow you.",
			"Focus on producing complete, audible words before worrying about speed.",
		},
		1: {
			"Work on keeping phrases together; pause between ideas, not inside them.",
			"Practice reading short sentences aloud without stopping mid-phrase.",
		},
		2: {
			"Smooth out the remaining hesitations to make your delivery more even.",
			"Aim for a steadier rhythm; record yourself and listen for uneven stretches.",
		},
	},
	entities.CriterionFunction: {
		0: {
			"Build a base of present-tense sentences before attempting other structures.",
			"Start with simple subject-verb-object sentences and expand from there.",
		},
		1: {
			"Add past-tense forms (fui, estaba, hice) to talk about completed events.",
			"Practice narrating yesterday's activities to exercise past-tense structures.",
		},
		2: {
			"Try opinion and hypothesis structures (creo que, me parece que, si pudiera).",
			"Stretch into subjunctive and conditional forms to add nuance to your points.",
		},
	},
	entities.CriterionDiscourse: {
		0: {
			"Use basic connectors like y, pero, and porque to link your sentences.",
			"Join two short sentences with porque or pero instead of leaving them separate.",
		},
		1: {
			"Add sequencing words (primero, luego, después) to give your speech structure.",
			"Organize longer answers with a clear beginning, middle, and closing phrase.",
		},
		2: {
			"Vary your connectors; sin embargo, por lo tanto, and además add sophistication.",
			"Develop each idea a bit further before moving to the next one.",
		},
	},
	entities.CriterionLexicon: {
		0: {
			"Learn core vocabulary for everyday topics: family, food, daily routines.",
			"Build a small set of topic words you can reuse across common situations.",
		},
		1: {
			"Replace repeated words with synonyms to show more lexical range.",
			"Push beyond familiar words; add a few topic-specific terms to each answer.",
		},
		2: {
			"Incorporate abstract vocabulary (ventaja, desarrollo, sociedad) for richer arguments.",
			"Work on precise word choice so each term carries the exact meaning you intend.",
		},
	},
}

// buildStrengths returns one to three strengths, strongest criteria first.
func buildStrengths(breakdown map[entities.Criterion]float64) []string {
	type ranked struct {
		c     entities.Criterion
		score float64
	}
	var above []ranked
	for c, s := range breakdown {
		if s >= strengthThresholds[c] {
			above = append(above, ranked{c, s})
		}
	}
	sort.Slice(above, func(i, j int) bool {
		if above[i].score != above[j].score {
			return above[i].score > above[j].score
		}
		return above[i].c < above[j].c
	})
	if len(above) > 3 {
		above = above[:3]
	}

	strengths := make([]string, 0, 3)
	for _, r := range above {
		strengths = append(strengths, strengthMessages[r.c])
	}
	if len(strengths) == 0 {
		// Always give the learner something to hold on to.
		best := bestCriterion(breakdown)
		strengths = append(strengths, "Your "+string(best)+" is your strongest area; keep building on it.")
	}
	return strengths
}

func bestCriterion(breakdown map[entities.Criterion]float64) entities.Criterion {
	best := entities.CriterionClarity
	bestScore := -1.0
	for _, c := range criterionOrder {
		if s, ok := breakdown[c]; ok && s > bestScore {
			best, bestScore = c, s
		}
	}
	return best
}

var criterionOrder = []entities.Criterion{
	entities.CriterionClarity,
	entities.CriterionFunction,
	entities.CriterionDiscourse,
	entities.CriterionLexicon,
}

// buildImprovements picks the two weakest criteria, skipping any already
// surfaced as a strength, and draws one phrasing per criterion from the pool.
func buildImprovements(breakdown map[entities.Criterion]float64, strengthsUsed map[entities.Criterion]bool, rng *rand.Rand) []string {
	type ranked struct {
		c     entities.Criterion
		score float64
	}
	var all []ranked
	for c, s := range breakdown {
		if strengthsUsed[c] {
			continue
		}
		all = append(all, ranked{c, s})
	}
	// Even a strong speaker gets a growth direction: fall back to the
	// weakest criteria when everything cleared the strength bar.
	if len(all) == 0 {
		for c, s := range breakdown {
			all = append(all, ranked{c, s})
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score < all[j].score
		}
		return all[i].c < all[j].c
	})
	if len(all) > 2 {
		all = all[:2]
	}

	improvements := make([]string, 0, 2)
	for _, r := range all {
		pool := improvementPools[r.c][decileBand(r.score)]
		if len(pool) == 0 {
			continue
		}
		improvements = append(improvements, pool[rng.Intn(len(pool))])
	}
	return improvements
}

// decileBand collapses a criterion score into a coarse pool index: below 55,
// 55 to 74, and 75 up.
func decileBand(score float64) int {
	switch {
	case score < 55:
		return 0
	case score < 75:
		return 1
	default:
		return 2
	}
}
