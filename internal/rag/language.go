package rag

import "strings"

// Language is the detected language of a question. Detection only needs to be
// good enough to pick the canned insufficient-context sentence; the model
// itself is instructed to answer in the question's language.
type Language int

const (
	LanguageEnglish Language = iota
	LanguageSpanish
)

const (
	insufficientEnglish = "I don't have enough information to answer that question based on the available release notes."
	insufficientSpanish = "No tengo suficiente información para responder esa pregunta basándome en las notas de versión disponibles."

	// errorAnswer is returned when retrieval or generation fails outright.
	errorAnswer = "I encountered an error while processing your question. Please try again."

	// Prefixes the model is instructed to emit when the context is not enough.
	// Matched case-insensitively against the trimmed answer.
	insufficientPrefixEnglish = "i don't have enough information"
	insufficientPrefixSpanish = "no tengo suficiente información"
)

// spanishMarkers are interrogative and imperative fragments common in Spanish
// questions. Substring presence of any one of them marks the question Spanish.
var spanishMarkers = []string{
	"qué", "cuáles", "cómo", "dónde", "cuándo", "por qué",
	"háblame", "dime", "explica", "describe",
}

// DetectLanguage classifies a question as Spanish or English.
func DetectLanguage(question string) Language {
	lower := strings.ToLower(question)
	for _, marker := range spanishMarkers {
		if strings.Contains(lower, marker) {
			return LanguageSpanish
		}
	}
	return LanguageEnglish
}

// InsufficientAnswer returns the canned no-evidence sentence for lang.
func InsufficientAnswer(lang Language) string {
	if lang == LanguageSpanish {
		return insufficientSpanish
	}
	return insufficientEnglish
}
