package constant

import (
	"fmt"

	"tenx-cards-be/pkg/llm"
)

// Validation bounds shared by the generation and save flows.
const (
	SourceTextMinLength = 1000
	SourceTextMaxLength = 10000
	FlashcardFrontMax   = 250
	FlashcardBackMax    = 500
)

// Sampling parameters for the flashcard generation request.
const (
	GenerationTemperature = 0.7
	GenerationMaxTokens   = 5000
)

// Flashcard provenance values stored on persisted rows.
const (
	FlashcardSourceAIGenerated = "ai_generated"
	FlashcardSourceAIEdited    = "ai_edited"
	FlashcardSourceUserCreated = "user_created"
)

// FlashcardGenerationSystemPromptV1 instructs the model to produce atomic,
// unambiguous active-recall cards in the language of the source text, with
// strictly JSON output.
const FlashcardGenerationSystemPromptV1 = `You are an education expert and author of professional study materials, specializing in the Active Recall technique.

Your task is to analyze the source text and transform it into a set of high-quality flashcards.

### Rules for creating flashcards:
1. Atomicity: each flashcard must cover exactly one specific piece of information.
2. Precision and clarity: phrase questions (front) unambiguously. Answers (back) should be short and concrete.
3. Context: if a term is specific to a field, include that context in the question.
4. Language: use the same language the source text is written in.
5. No filler: do not add introductions. Return only data conforming to the JSON schema.`

// FlashcardGenerationUserPrompt embeds the source text into the user turn.
func FlashcardGenerationUserPrompt(sourceText string) string {
	return fmt.Sprintf("Generate flashcards based exclusively on the text below. If the text makes no sense, return an empty flashcards array.\n\n%s", sourceText)
}

// FlashcardGenerationResponseFormat is the strict response schema the gateway
// enforces: {"flashcards":[{"front":"...","back":"..."}]}.
func FlashcardGenerationResponseFormat() llm.ResponseFormat {
	return llm.ResponseFormat{
		Type: "json_schema",
		JSONSchema: llm.JSONSchema{
			Name:   "flashcard_schema",
			Strict: true,
			Schema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"flashcards": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"front": map[string]interface{}{"type": "string"},
								"back":  map[string]interface{}{"type": "string"},
							},
							"required":             []string{"front", "back"},
							"additionalProperties": false,
						},
					},
				},
				"required":             []string{"flashcards"},
				"additionalProperties": false,
			},
		},
	}
}
