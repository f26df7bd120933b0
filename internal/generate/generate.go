// Package generate turns extracted document text into flashcards via the
// AI provider's JSON response mode.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nfarhana/kadstudi/internal/deck"
	"github.com/nfarhana/kadstudi/internal/provider"
)

// RequestError reports a transport or auth failure calling the AI service.
// Non-fatal: the caller may retry or abandon the generation.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("flashcard generation request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// ParseError reports a response that is not the JSON the model was asked
// for. RawPrefix carries the start of the raw response for diagnostics.
type ParseError struct {
	RawPrefix string
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("flashcard generation returned malformed output: %v (response starts with: %s)", e.Err, e.RawPrefix)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Generator builds one prompt from a question paper and an answer scheme
// and asks the provider for a card array.
type Generator struct {
	prov provider.Provider
}

func New(prov provider.Provider) *Generator {
	return &Generator{prov: prov}
}

// Cards generates flashcards from the two extracted document texts. On a
// malformed response it returns an empty (non-nil) slice together with a
// *ParseError; on a transport failure, a *RequestError. Either way the
// session survives.
func (g *Generator) Cards(ctx context.Context, questionText, answerText string) ([]deck.Card, error) {
	if strings.TrimSpace(questionText) == "" || strings.TrimSpace(answerText) == "" {
		return nil, &RequestError{Err: fmt.Errorf("both document texts are required")}
	}

	prompt := buildPrompt(questionText, answerText)
	raw, err := g.prov.Generate(ctx, []provider.Message{{Role: provider.RoleUser, Content: prompt}}, provider.Options{JSONResponse: true})
	if err != nil {
		return nil, &RequestError{Err: err}
	}

	cards, err := parseCards(raw)
	if err != nil {
		return []deck.Card{}, err
	}
	return cards, nil
}

// parseCards validates the raw model output against the card schema first
// and only then decodes it. Nothing from an unvalidated response reaches
// the caller.
func parseCards(raw string) ([]deck.Card, error) {
	doc := cleanJSONOutput(raw)
	if doc == "" {
		return nil, &ParseError{RawPrefix: rawPrefix(raw), Err: fmt.Errorf("empty response")}
	}

	if err := validateCards(doc); err != nil {
		return nil, &ParseError{RawPrefix: rawPrefix(raw), Err: err}
	}

	var cards []deck.Card
	if err := json.Unmarshal([]byte(doc), &cards); err != nil {
		return nil, &ParseError{RawPrefix: rawPrefix(raw), Err: err}
	}
	if cards == nil {
		cards = []deck.Card{}
	}
	return cards, nil
}

// cleanJSONOutput removes common artifacts from LLM JSON output: markdown
// code fences and stray text around the array.
func cleanJSONOutput(output string) string {
	output = strings.TrimSpace(output)
	output = strings.TrimPrefix(output, "```json")
	output = strings.TrimPrefix(output, "```")
	output = strings.TrimSuffix(output, "```")
	output = strings.TrimSpace(output)

	start := strings.Index(output, "[")
	end := strings.LastIndex(output, "]")
	if start != -1 && end != -1 && end > start {
		output = output[start : end+1]
	}
	return output
}

func rawPrefix(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) > 200 {
		return raw[:200] + "..."
	}
	return raw
}
