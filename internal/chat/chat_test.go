package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nfarhana/kadstudi/internal/deck"
	"github.com/nfarhana/kadstudi/internal/provider"
)

type stubProvider struct {
	response string
	err      error
	lastMsgs []provider.Message
	lastOpts provider.Options
}

func (s *stubProvider) Generate(_ context.Context, msgs []provider.Message, opts provider.Options) (string, error) {
	s.lastMsgs = msgs
	s.lastOpts = opts
	return s.response, s.err
}

func (s *stubProvider) Name() string      { return "stub" }
func (s *stubProvider) ModelName() string { return "stub-model" }

func testCard() deck.Card {
	return deck.Card{
		Type:  deck.TypeWhyHow,
		Front: "Why is the sky blue?",
		Back:  deck.BackList([]string{"Rayleigh scattering.", "Short wavelengths scatter more."}),
	}
}

func TestAskBuildsFlattenedContext(t *testing.T) {
	stub := &stubProvider{response: "Because short wavelengths scatter more."}
	c := New(stub, 3)

	transcript := []Turn{
		{Role: RoleUser, Content: "What scatters the light?"},
		{Role: RoleAssistant, Content: "Air molecules."},
	}
	reply, err := c.Ask(context.Background(), testCard(), transcript, "Can you give more detail?")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if reply != "Because short wavelengths scatter more." {
		t.Errorf("reply = %q", reply)
	}

	if len(stub.lastMsgs) != 1 {
		t.Fatalf("expected a single flattened message, got %d", len(stub.lastMsgs))
	}
	prompt := stub.lastMsgs[0].Content
	for _, want := range []string{
		"User: What scatters the light?",
		"Assistant: Air molecules.",
		"User: Can you give more detail?",
		"Flashcard Question: Why is the sky blue?",
		"Rayleigh scattering.",
		"max 3 sentences",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if stub.lastOpts.JSONResponse {
		t.Error("chat should use free-text responses, not JSON mode")
	}
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	c := New(&stubProvider{}, 3)
	if _, err := c.Ask(context.Background(), testCard(), nil, "   "); err == nil {
		t.Error("empty question should fail")
	}
}

func TestErrorTurnDegradesGracefully(t *testing.T) {
	turn := ErrorTurn(errors.New("google returned 429: rate limited"))
	if turn.Role != RoleAssistant {
		t.Error("error turn should read as an assistant reply")
	}
	if !strings.Contains(turn.Content, "rate limited") {
		t.Errorf("error turn should carry the cause: %q", turn.Content)
	}
}
