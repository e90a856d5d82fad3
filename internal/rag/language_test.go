package rag

import "testing"

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     Language
	}{
		{name: "english question", question: "What changed in the latest release?", want: LanguageEnglish},
		{name: "empty question", question: "", want: LanguageEnglish},
		{name: "que marker", question: "¿Qué cambió en la última versión?", want: LanguageSpanish},
		{name: "cuales marker", question: "¿Cuáles son las nuevas funciones?", want: LanguageSpanish},
		{name: "como marker", question: "¿Cómo funciona la búsqueda?", want: LanguageSpanish},
		{name: "dime marker", question: "Dime las novedades", want: LanguageSpanish},
		{name: "explica marker", question: "Explica la nueva función", want: LanguageSpanish},
		{name: "marker is case-insensitive", question: "HÁBLAME de la versión 12", want: LanguageSpanish},
		{name: "describe marker in english sentence", question: "Describe the new feature", want: LanguageSpanish},
		{name: "spanish without markers defaults to english", question: "Novedades de la versión 12", want: LanguageEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLanguage(tt.question); got != tt.want {
				t.Errorf("DetectLanguage(%q) = %v, want %v", tt.question, got, tt.want)
			}
		})
	}
}

func TestInsufficientAnswer(t *testing.T) {
	if got := InsufficientAnswer(LanguageEnglish); got != insufficientEnglish {
		t.Errorf("InsufficientAnswer(english) = %q", got)
	}
	if got := InsufficientAnswer(LanguageSpanish); got != insufficientSpanish {
		t.Errorf("InsufficientAnswer(spanish) = %q", got)
	}
}

func TestIsSufficient(t *testing.T) {
	longAnswer := "Feature X improves document review throughput by parallelizing OCR across workers."

	tests := []struct {
		name       string
		chunkCount int
		answer     string
		want       bool
	}{
		{name: "long answer with evidence", chunkCount: 3, answer: longAnswer, want: true},
		{name: "no evidence", chunkCount: 0, answer: longAnswer, want: false},
		{name: "short answer", chunkCount: 3, answer: "Yes, it does.", want: false},
		{name: "exactly 39 runes", chunkCount: 1, answer: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", want: false},
		{name: "exactly 40 runes", chunkCount: 1, answer: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", want: true},
		{name: "length measured after trimming", chunkCount: 1, answer: "  aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa  ", want: false},
		{name: "english canned prefix", chunkCount: 3, answer: insufficientEnglish, want: false},
		{name: "spanish canned prefix", chunkCount: 3, answer: insufficientSpanish, want: false},
		{name: "canned prefix case-insensitive", chunkCount: 3, answer: "I DON'T HAVE ENOUGH INFORMATION to answer that, sorry about it.", want: false},
		{name: "canned sentence mentioned mid-answer", chunkCount: 3, answer: "The notes say a lot, so it is not that I don't have enough information here.", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSufficient(tt.chunkCount, tt.answer); got != tt.want {
				t.Errorf("isSufficient(%d, %q) = %v, want %v", tt.chunkCount, tt.answer, got, tt.want)
			}
		})
	}
}
