// Package chat answers follow-up questions about the card currently under
// review. Transcripts live only in the review session and are never
// persisted.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/nfarhana/kadstudi/internal/deck"
	"github.com/nfarhana/kadstudi/internal/provider"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry in a per-card transcript.
type Turn struct {
	Role    Role
	Content string
}

// Companion asks the AI service about the current card, carrying the whole
// per-card transcript as flattened context.
type Companion struct {
	prov         provider.Provider
	maxSentences int
}

func New(prov provider.Provider, maxSentences int) *Companion {
	if maxSentences <= 0 {
		maxSentences = 3
	}
	return &Companion{prov: prov, maxSentences: maxSentences}
}

// Ask sends the user's question about card with all prior turns as context
// and returns the assistant's reply. The caller owns the transcript and
// appends both the question and the reply (or an ErrorTurn on failure).
func (c *Companion) Ask(ctx context.Context, card deck.Card, transcript []Turn, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("chat: empty question")
	}

	var sb strings.Builder
	for _, turn := range transcript {
		speaker := "User"
		if turn.Role == RoleAssistant {
			speaker = "Assistant"
		}
		fmt.Fprintf(&sb, "%s: %s\n", speaker, turn.Content)
	}
	fmt.Fprintf(&sb, "User: %s\n", question)
	fmt.Fprintf(&sb, "Flashcard Question: %s\n", card.Front)
	fmt.Fprintf(&sb, "Flashcard Answer: %s\n", card.Back.String())
	fmt.Fprintf(&sb, "Now, answer the user's most recent question concisely (max %d sentences).", c.maxSentences)

	reply, err := c.prov.Generate(ctx, []provider.Message{{Role: provider.RoleUser, Content: sb.String()}}, provider.Options{})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// ErrorTurn degrades a failed request into an inline assistant turn so the
// review session keeps going.
func ErrorTurn(err error) Turn {
	return Turn{
		Role:    RoleAssistant,
		Content: fmt.Sprintf("Sorry, the AI request failed: %v. Check your API key or try again later.", err),
	}
}
