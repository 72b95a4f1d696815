package lexicon

import "github.com/hablalab/speech-coach/internal/domain/entities"

// builtinDictionary is the minimal fallback vocabulary used when neither the
// local file nor the bucket copy of the frequency list is available.
func builtinDictionary() map[string]struct{} {
	words := []string{
		"hola", "como", "estás", "bien", "gracias", "adios", "buenos", "días",
		"hasta", "luego", "mañana", "tarde", "noche", "por", "favor", "de", "nada",
		"sí", "no", "tal", "vez", "quizás", "casa", "coche", "trabajo", "escuela",
		"universidad", "restaurante", "tienda", "mercado", "parque", "playa", "montaña",
		"familia", "amigo", "amiga", "madre", "padre", "hermano", "hermana",
		"comer", "beber", "vivir", "hablar", "estudiar", "trabajar", "viajar",
		"me", "te", "se", "llamo", "tengo", "soy", "estoy", "años", "estudiante",
		"emergencia", "calma", "siga", "instrucciones", "seguridad", "caso",
	}
	dict := make(map[string]struct{}, len(words))
	for _, w := range words {
		dict[w] = struct{}{}
	}
	return dict
}

// builtinReferences are the default practice phrases. The prompt-named keys
// double as prompt-type selectors for the communicative-function criterion.
func builtinReferences() map[string]string {
	return map[string]string{
		"beginner":                               "Hola, ¿cómo estás? Espero que estés teniendo un buen día.",
		"intermediate":                           "Los bomberos llegaron rápidamente al lugar del incendio.",
		"advanced":                               "En caso de emergencia, mantenga la calma y siga las instrucciones de seguridad.",
		string(entities.PromptIntroduceYourself): "Hola, me llamo Ana, tengo veinticinco años y soy estudiante de medicina.",
		string(entities.PromptDescribeYourDay):   "Primero me levanto temprano, después desayuno y luego voy al trabajo en autobús.",
		string(entities.PromptOpinionTechnology): "Creo que la tecnología es fundamental para la educación, aunque sería mejor usarla con moderación.",
	}
}

// BuiltinBands is the default proficiency ladder. Ranges are inclusive and
// cover 0..100 without gaps.
func BuiltinBands() []entities.ScoringBand {
	return []entities.ScoringBand{
		{Name: "Novice Low", ScoreRange: [2]float64{0, 54}, FeedbackTemplate: "Your speech is at the earliest stage of language acquisition. Focus on highly frequent words and memorized phrases."},
		{Name: "Novice Mid", ScoreRange: [2]float64{55, 59}, FeedbackTemplate: "You can handle basic needs and personal information, primarily with memorized phrases or simple sentences."},
		{Name: "Novice High", ScoreRange: [2]float64{60, 64}, FeedbackTemplate: "Your speech shows improvement, enabling short, predictable messages and simple sentences on familiar topics."},
		{Name: "Intermediate Low", ScoreRange: [2]float64{65, 69}, FeedbackTemplate: "Your speech is at a functional level, allowing for simple, predictable communication, asking, and answering basic questions."},
		{Name: "Intermediate Mid", ScoreRange: [2]float64{70, 74}, FeedbackTemplate: "Your speech is clear enough to handle straightforward social situations and discuss details about yourself and your environment."},
		{Name: "Intermediate High", ScoreRange: [2]float64{75, 79}, FeedbackTemplate: "Your speech is generally clear, helping you narrate and describe in major time frames using connected discourse, though complex situations may still be a struggle."},
		{Name: "Advanced Low", ScoreRange: [2]float64{80, 84}, FeedbackTemplate: "Your speech is understandable by most natives, enabling you to narrate and describe across major time frames and handle routine situations."},
		{Name: "Advanced Mid", ScoreRange: [2]float64{85, 89}, FeedbackTemplate: "Your speech is very strong. You can narrate and describe effectively across major time frames, producing coherent paragraphs understandable by most native speakers."},
		{Name: "Advanced High", ScoreRange: [2]float64{90, 94}, FeedbackTemplate: "Your speech is excellent! You can deal with unexpected complications in social situations, using abundant, detailed, and clear language."},
		{Name: "Superior", ScoreRange: [2]float64{95, 99}, FeedbackTemplate: "Your speech is highly articulate. You discuss abstract topics with precision and support opinions with extended, structured discourse."},
		{Name: "Distinguished", ScoreRange: [2]float64{100, 100}, FeedbackTemplate: "Your speech is indistinguishable from an educated native speaker across registers and topics."},
	}
}
