package assess

import (
	"strings"

	"github.com/hablalab/speech-coach/internal/domain/entities"
)

// A structureFamily is a detectable family of Spanish grammatical structures.
// Detection runs over the lowercased transcript: phrases as padded substring
// matches, words as exact token matches, suffixes against individual tokens.
type structureFamily struct {
	name     string
	tier     int // modality tier: 0 none, 1 basic, 2 cognitive, 3 evaluative
	phrases  []string
	words    []string
	suffixes []string
}

var structureFamilies = []structureFamily{
	{
		name: "present",
		words: []string{
			"soy", "eres", "es", "somos", "son", "estoy", "está", "estás", "estamos", "están",
			"tengo", "tienes", "tiene", "tenemos", "tienen", "vivo", "vives", "vive",
			"hablo", "habla", "trabajo", "trabaja", "estudio", "estudia", "como", "come",
			"hay", "voy", "vas", "va", "vamos", "van", "hago", "hace", "quiero", "quiere",
		},
	},
	{
		name: "preterite",
		words: []string{
			"fui", "fue", "fuimos", "fueron", "hice", "hizo", "hicimos", "tuve", "tuvo",
			"estuve", "dije", "dijo", "vine", "vino", "pude", "pudo", "puse", "puso",
		},
		suffixes: []string{"é", "ó", "aron", "ieron", "aste", "iste"},
	},
	{
		name:     "imperfect",
		words:    []string{"era", "eras", "éramos", "eran", "iba", "ibas", "iban", "había", "veía"},
		suffixes: []string{"aba", "abas", "ábamos", "aban", "íamos", "ían"},
	},
	{
		name:     "future_periphrasis",
		phrases:  []string{" voy a ", " vas a ", " va a ", " vamos a ", " van a "},
		suffixes: []string{"aré", "erá", "irá", "remos", "rán"},
	},
	{
		name:    "subjunctive",
		phrases: []string{" espero que ", " ojalá ", " para que ", " aunque sea "},
		words: []string{
			"sea", "seas", "seamos", "sean", "tenga", "tengas", "tengan", "pueda", "puedan",
			"haya", "vaya", "vayan", "esté", "estés", "estén", "hubiera", "fuera", "pudiera",
			"tuviera", "quisiera",
		},
	},
	{
		name: "conditional",
		words: []string{
			"sería", "serían", "podría", "podrías", "podrían", "gustaría", "habría",
			"tendría", "haría", "debería", "deberían",
		},
	},
	{
		name: "reflexive",
		phrases: []string{
			" me llamo ", " me levanto ", " me despierto ", " me ducho ", " me acuesto ",
			" me visto ", " se llama ", " nos vemos ", " me siento ",
		},
		suffixes: []string{"arse", "erse", "irse"},
	},
	{
		name: "gustar_type",
		phrases: []string{
			" me gusta", " te gusta", " le gusta", " nos gusta", " les gusta",
			" me encanta", " me interesa", " me molesta", " me fascina",
		},
	},
	{
		name: "modality_basic",
		tier: 1,
		phrases: []string{
			" puedo ", " puedes ", " quiero ", " quieres ", " necesito ",
			" tengo que ", " hay que ", " debo ",
		},
	},
	{
		name: "modality_cognitive",
		tier: 2,
		phrases: []string{
			" creo que ", " pienso que ", " me parece que ", " supongo que ",
			" imagino que ", " sé que ", " no sé si ",
		},
	},
	{
		name: "modality_evaluative",
		tier: 3,
		phrases: []string{
			" es importante ", " es fundamental ", " es necesario ", " sería mejor ",
			" considero ", " desde mi punto de vista ", " en mi opinión ", " es esencial ",
			" lo bueno es ", " lo malo es ",
		},
	},
}

// expectedFamilies maps (level, prompt) to the structure families a speaker
// at that level answering that prompt is expected to produce.
var expectedFamilies = map[entities.ProficiencyLevel]map[entities.PromptType][]string{
	entities.LevelBeginner: {
		entities.PromptFreeSpeech:        {"present"},
		entities.PromptIntroduceYourself: {"present", "reflexive"},
		entities.PromptDescribeYourDay:   {"present", "reflexive"},
		entities.PromptOpinionTechnology: {"present", "modality_basic", "gustar_type"},
	},
	entities.LevelIntermediate: {
		entities.PromptFreeSpeech:        {"present", "preterite"},
		entities.PromptIntroduceYourself: {"present", "reflexive", "gustar_type"},
		entities.PromptDescribeYourDay:   {"present", "preterite", "imperfect", "reflexive"},
		entities.PromptOpinionTechnology: {"modality_cognitive", "present", "gustar_type"},
	},
	entities.LevelAdvanced: {
		entities.PromptFreeSpeech:        {"preterite", "imperfect", "modality_cognitive"},
		entities.PromptIntroduceYourself: {"present", "reflexive", "modality_cognitive"},
		entities.PromptDescribeYourDay:   {"preterite", "imperfect", "reflexive"},
		entities.PromptOpinionTechnology: {"modality_evaluative", "subjunctive", "conditional"},
	},
}

// evaluateFunction scores what the speaker can do with the language from
// grammatical evidence. Level-relative: the same transcript scores
// differently under different declared levels.
func evaluateFunction(transcript string, level entities.ProficiencyLevel, prompt entities.PromptType) entities.CriterionResult {
	counts := detectStructures(transcript)

	var total, weightedTotal int
	for _, fam := range structureFamilies {
		n := counts[fam.name]
		total += n
		w := 1
		if fam.tier > 0 {
			w = fam.tier
		}
		weightedTotal += n * w
	}

	details := map[string]interface{}{"structures": counts, "total": total}

	// Absence of evidence is not mediocrity: with nothing detected every
	// subcriterion is capped low instead of defaulted to a midpoint.
	if total == 0 {
		const gated = 35.0
		return entities.CriterionResult{
			Score: gated,
			Subcriteria: map[string]float64{
				"task_fulfillment":   gated,
				"functional_control": gated,
				"function_range":     gated,
				"meaning_precision":  gated,
			},
			Details: details,
		}
	}

	expected := expectedFamilies[level][prompt]
	if len(expected) == 0 {
		expected = expectedFamilies[entities.LevelIntermediate][entities.PromptFreeSpeech]
	}

	task := scoreTaskFulfillment(counts, expected)
	control := scoreFunctionalControl(counts, expected)
	rangeScore := scoreFunctionRange(counts)
	precision := scoreMeaningPrecision(weightedTotal, wordCount(transcript))

	score := 0.30*task + 0.30*control + 0.20*rangeScore + 0.20*precision
	return entities.CriterionResult{
		Score: score,
		Subcriteria: map[string]float64{
			"task_fulfillment":   task,
			"functional_control": control,
			"function_range":     rangeScore,
			"meaning_precision":  precision,
		},
		Details: details,
	}
}

// detectStructures counts occurrences of each structure family in the
// lowercased transcript.
func detectStructures(transcript string) map[string]int {
	padded := " " + normalizeText(transcript) + " "
	tokens := tokenize(transcript)

	counts := make(map[string]int, len(structureFamilies))
	for _, fam := range structureFamilies {
		n := 0
		for _, p := range fam.phrases {
			n += strings.Count(padded, p)
		}
		for _, tok := range tokens {
			for _, w := range fam.words {
				if tok == w {
					n++
					break
				}
			}
			for _, suf := range fam.suffixes {
				// Suffix morphology only counts on tokens long enough to be
				// conjugated verbs, not on short function words.
				if len([]rune(tok)) >= len([]rune(suf))+2 && strings.HasSuffix(tok, suf) {
					n++
					break
				}
			}
		}
		counts[fam.name] = n
	}
	return counts
}

func scoreTaskFulfillment(counts map[string]int, expected []string) float64 {
	matched := 0
	for _, name := range expected {
		if counts[name] > 0 {
			matched++
		}
	}
	frac := float64(matched) / float64(len(expected))
	switch {
	case frac >= 0.999:
		return 95
	case frac >= 0.67:
		return 85
	case frac >= 0.5:
		return 75
	case frac > 0:
		return 60
	default:
		return 45
	}
}

// scoreFunctionalControl rewards sustained (three or more occurrences) use of
// the level-appropriate families over isolated one-offs.
func scoreFunctionalControl(counts map[string]int, expected []string) float64 {
	best := 0
	for _, name := range expected {
		if counts[name] > best {
			best = counts[name]
		}
	}
	switch {
	case best >= 3:
		return 92
	case best == 2:
		return 78
	case best == 1:
		return 64
	default:
		return 50
	}
}

func scoreFunctionRange(counts map[string]int) float64 {
	distinct := 0
	for _, n := range counts {
		if n > 0 {
			distinct++
		}
	}
	switch {
	case distinct >= 6:
		return 95
	case distinct == 5:
		return 88
	case distinct == 4:
		return 80
	case distinct == 3:
		return 72
	case distinct == 2:
		return 62
	default:
		return 52
	}
}

// scoreMeaningPrecision checks that structure density sits in a coherent
// band: too sparse reads as fragmentary, implausibly dense as word salad.
func scoreMeaningPrecision(weightedTotal, words int) float64 {
	if words == 0 {
		return 35
	}
	density := float64(weightedTotal) / float64(words)
	switch {
	case density >= 0.08 && density <= 0.35:
		return 90
	case density >= 0.05 && density < 0.08, density > 0.35 && density <= 0.5:
		return 75
	default:
		return 60
	}
}
