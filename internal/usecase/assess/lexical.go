package assess

import (
	"github.com/hablalab/speech-coach/internal/domain/entities"
	"github.com/hablalab/speech-coach/internal/lexicon"
)

// Below this length a type/token ratio is statistically meaningless and the
// topical subcriteria are capped instead of computed.
const lexicalMinWords = 10

// Topical keyword tiers, lowest conceptual level first.
type lexicalTier int

const (
	tierPersonal lexicalTier = iota
	tierEveryday
	tierAbstract
)

var tierKeywords = map[lexicalTier][]string{
	tierPersonal: {
		"me", "llamo", "soy", "tengo", "años", "familia", "madre", "padre", "hermano",
		"hermana", "amigo", "amiga", "casa", "vivo", "estudiante", "nombre", "gusta",
		"perro", "gato", "hijo", "hija",
	},
	tierEveryday: {
		"trabajo", "escuela", "universidad", "comida", "desayuno", "almuerzo", "cena",
		"tienda", "mercado", "autobús", "coche", "tren", "ciudad", "tiempo", "semana",
		"dinero", "compras", "restaurante", "parque", "viaje", "vacaciones", "médico",
		"deporte", "música", "película", "teléfono", "ropa",
	},
	tierAbstract: {
		"sociedad", "educación", "tecnología", "cultura", "economía", "política",
		"medio", "ambiente", "desarrollo", "futuro", "importancia", "problema",
		"solución", "opinión", "ventaja", "desventaja", "libertad", "justicia",
		"conocimiento", "experiencia", "responsabilidad", "comunicación", "información",
	},
}

// Function words excluded from type/token variety.
var functionWords = map[string]struct{}{
	"el": {}, "la": {}, "los": {}, "las": {}, "un": {}, "una": {}, "unos": {}, "unas": {},
	"de": {}, "del": {}, "a": {}, "al": {}, "en": {}, "con": {}, "por": {}, "para": {},
	"y": {}, "o": {}, "que": {}, "se": {}, "me": {}, "te": {}, "le": {}, "lo": {},
	"mi": {}, "tu": {}, "su": {}, "es": {}, "no": {}, "sí": {}, "pero": {}, "como": {},
}

// Per-level topical minimum counts for the sufficiency subcriterion.
var sufficiencyMinimum = map[entities.ProficiencyLevel]int{
	entities.LevelBeginner:     3,
	entities.LevelIntermediate: 5,
	entities.LevelAdvanced:     7,
}

// Conceptual tier each level is expected to reach.
var expectedTier = map[entities.ProficiencyLevel]lexicalTier{
	entities.LevelBeginner:     tierPersonal,
	entities.LevelIntermediate: tierEveryday,
	entities.LevelAdvanced:     tierAbstract,
}

// evaluateLexicon scores vocabulary that serves the message. The dictionary
// from the lexical store feeds an out-of-vocabulary signal surfaced in
// details; topical tiers drive the subcriteria.
func evaluateLexicon(transcript string, level entities.ProficiencyLevel, store *lexicon.Store) entities.CriterionResult {
	tokens := tokenize(transcript)

	tierMatches := map[lexicalTier]int{}
	totalMatches := 0
	for _, tok := range tokens {
		for tier, keywords := range tierKeywords {
			for _, kw := range keywords {
				if tok == kw {
					tierMatches[tier]++
					totalMatches++
					break
				}
			}
		}
	}

	var oov []string
	if store != nil {
		for _, tok := range tokens {
			if !store.Contains(tok) {
				oov = append(oov, tok)
			}
		}
	}

	details := map[string]interface{}{
		"word_count":      len(tokens),
		"topical_matches": totalMatches,
		"oov_words":       oov,
	}

	if len(tokens) < lexicalMinWords {
		return entities.CriterionResult{
			Score: 32.0,
			Subcriteria: map[string]float64{
				"lexical_fit":         30,
				"lexical_sufficiency": 30,
				"lexical_variety":     0,
				"conceptual_level":    40,
			},
			Details: details,
		}
	}

	fit := scoreLexicalFit(totalMatches, len(tokens))
	sufficiency := scoreLexicalSufficiency(totalMatches, level)
	variety := scoreLexicalVariety(tokens)
	conceptual := scoreConceptualLevel(tierMatches, level)

	score := 0.30*fit + 0.30*sufficiency + 0.20*variety + 0.20*conceptual
	return entities.CriterionResult{
		Score: score,
		Subcriteria: map[string]float64{
			"lexical_fit":         fit,
			"lexical_sufficiency": sufficiency,
			"lexical_variety":     variety,
			"conceptual_level":    conceptual,
		},
		Details: details,
	}
}

func scoreLexicalFit(matches, words int) float64 {
	frac := float64(matches) / float64(words)
	switch {
	case frac >= 0.25:
		return 92
	case frac >= 0.15:
		return 84
	case frac >= 0.08:
		return 74
	case frac > 0:
		return 64
	default:
		return 52
	}
}

func scoreLexicalSufficiency(matches int, level entities.ProficiencyLevel) float64 {
	min := sufficiencyMinimum[level]
	if min == 0 {
		min = sufficiencyMinimum[entities.LevelIntermediate]
	}
	switch {
	case matches >= min*2:
		return 94
	case matches >= min:
		return 85
	case matches >= (min+1)/2:
		return 70
	case matches > 0:
		return 60
	default:
		return 50
	}
}

// scoreLexicalVariety computes the unique-content-word ratio, function words
// excluded.
func scoreLexicalVariety(tokens []string) float64 {
	unique := map[string]struct{}{}
	content := 0
	for _, tok := range tokens {
		if _, ok := functionWords[tok]; ok {
			continue
		}
		content++
		unique[tok] = struct{}{}
	}
	if content == 0 {
		return 0
	}
	ratio := float64(len(unique)) / float64(content)
	switch {
	case ratio >= 0.85:
		return 92
	case ratio >= 0.7:
		return 82
	case ratio >= 0.55:
		return 70
	default:
		return 58
	}
}

// scoreConceptualLevel compares the dominant topical tier with what the
// declared level expects: exceeding is rewarded, falling short penalized
// gently.
func scoreConceptualLevel(tierMatches map[lexicalTier]int, level entities.ProficiencyLevel) float64 {
	dominant := tierPersonal
	best := -1
	for tier := tierPersonal; tier <= tierAbstract; tier++ {
		if tierMatches[tier] > best {
			best = tierMatches[tier]
			dominant = tier
		}
	}
	if best <= 0 {
		return 55
	}
	expected := expectedTier[level]
	switch {
	case dominant > expected:
		return 92
	case dominant == expected:
		return 85
	case expected-dominant == 1:
		return 70
	default:
		return 58
	}
}
