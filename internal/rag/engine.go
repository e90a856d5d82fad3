package rag

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"relnotes-faq/internal/contextutil"
	"relnotes-faq/internal/llm"
)

// Generation settings. Temperature zero keeps the sufficiency heuristic
// reproducible for a given context and question.
const (
	answerTemperature = 0.0
	answerMaxTokens   = 1000

	// minAnswerRunes is the floor below which a generated answer is treated
	// as insufficient regardless of its content.
	minAnswerRunes = 40
)

const promptTemplate = `You are a helpful assistant that answers questions about Relativity software releases based on the official release notes.

IMPORTANT RULES:
1. ONLY answer questions using information found in the provided context
2. If the context doesn't contain enough information to answer the question, respond with "%s" (Spanish) or "%s" (English)
3. Always provide citations by including the source URL and heading in your response
4. Be concise but informative
5. CRITICAL: You MUST respond in the EXACT SAME LANGUAGE as the question. If the question is in Spanish, respond in Spanish. If the question is in English, respond in English.
6. If asked about features not mentioned in the context, politely redirect to contact collection

Context information:
%s

Question: %s

IMPORTANT: Respond in the same language as the question above.
Answer:`

// EngineOptions tunes answer post-processing.
type EngineOptions struct {
	// CitationDedup collapses citations sharing a URL down to the first one.
	CitationDedup bool
}

type engine struct {
	retriever Retriever
	generator llm.Generator
	opts      EngineOptions
}

// NewEngine creates the question-answering engine.
func NewEngine(retriever Retriever, generator llm.Generator, opts EngineOptions) Engine {
	return &engine{
		retriever: retriever,
		generator: generator,
		opts:      opts,
	}
}

// Query answers a question against the indexed release notes. The flow is
// terminal after one pass: no evidence yields the canned sentence without a
// generation call; evidence yields a generated answer scored for sufficiency;
// any retrieval or generation failure degrades to a synthetic insufficient
// answer instead of an error.
func (e *engine) Query(ctx context.Context, question string) Answer {
	logger := contextutil.LoggerFromContext(ctx)

	chunks, err := e.retriever.Retrieve(ctx, question)
	if err != nil {
		logger.ErrorContext(ctx, "retrieval failed", "error", err)
		return errorFallback()
	}

	if len(chunks) == 0 {
		return Answer{
			Text:              InsufficientAnswer(DetectLanguage(question)),
			Citations:         []Citation{},
			HasSufficientInfo: false,
			NeedsContact:      true,
		}
	}

	prompt := buildPrompt(chunks, question)

	text, err := e.generator.Generate(ctx, prompt, answerTemperature, answerMaxTokens)
	if err != nil {
		logger.ErrorContext(ctx, "generation failed", "error", err)
		return errorFallback()
	}

	sufficient := isSufficient(len(chunks), text)
	return Answer{
		Text:              text,
		Citations:         extractCitations(chunks, e.opts.CitationDedup),
		HasSufficientInfo: sufficient,
		NeedsContact:      !sufficient,
	}
}

// buildPrompt concatenates chunk texts double-newline separated as context and
// embeds the verbatim question.
func buildPrompt(chunks []RetrievedChunk, question string) string {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	contextBlock := strings.Join(texts, "\n\n")
	return fmt.Sprintf(promptTemplate, insufficientSpanish, insufficientEnglish, contextBlock, question)
}

// isSufficient is the conjunction of: evidence present, trimmed answer at
// least minAnswerRunes long, and the answer not opening with either canned
// insufficiency sentence.
func isSufficient(chunkCount int, answer string) bool {
	trimmed := strings.TrimSpace(answer)
	if chunkCount == 0 || utf8.RuneCountInString(trimmed) < minAnswerRunes {
		return false
	}
	lower := strings.ToLower(trimmed)
	return !strings.HasPrefix(lower, insufficientPrefixEnglish) &&
		!strings.HasPrefix(lower, insufficientPrefixSpanish)
}

func errorFallback() Answer {
	return Answer{
		Text:              errorAnswer,
		Citations:         []Citation{},
		HasSufficientInfo: false,
		NeedsContact:      true,
	}
}
