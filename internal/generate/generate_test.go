package generate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfarhana/kadstudi/internal/deck"
	"github.com/nfarhana/kadstudi/internal/provider"
)

type stubProvider struct {
	response string
	err      error
	lastOpts provider.Options
	lastMsgs []provider.Message
}

func (s *stubProvider) Generate(_ context.Context, msgs []provider.Message, opts provider.Options) (string, error) {
	s.lastMsgs = msgs
	s.lastOpts = opts
	return s.response, s.err
}

func (s *stubProvider) Name() string      { return "stub" }
func (s *stubProvider) ModelName() string { return "stub-model" }

const wellFormed = `[
  {"type": "definition", "front": "What is osmosis?", "back": "Movement of water across a membrane."},
  {"type": "why_how", "front": "Why do plants wilt?", "back": ["Water loss exceeds uptake.", "Cells lose turgor."]},
  {"type": "cloze", "front": "Water moves from ___ to low water potential.", "back": "high"}
]`

func TestCardsWellFormedResponse(t *testing.T) {
	stub := &stubProvider{response: wellFormed}
	g := New(stub)

	cards, err := g.Cards(context.Background(), "question text", "answer text")
	require.NoError(t, err)
	require.Len(t, cards, 3)

	assert.Equal(t, deck.TypeDefinition, cards[0].Type)
	assert.Equal(t, "What is osmosis?", cards[0].Front)
	assert.False(t, cards[0].Back.IsList())
	assert.True(t, cards[1].Back.IsList())
	assert.Equal(t, []string{"Water loss exceeds uptake.", "Cells lose turgor."}, cards[1].Back.Items)

	// Generation must request structured output.
	assert.True(t, stub.lastOpts.JSONResponse)
	// Both document texts end up in the single prompt.
	require.Len(t, stub.lastMsgs, 1)
	assert.Contains(t, stub.lastMsgs[0].Content, "question text")
	assert.Contains(t, stub.lastMsgs[0].Content, "answer text")
}

func TestCardsFencedResponse(t *testing.T) {
	stub := &stubProvider{response: "```json\n" + wellFormed + "\n```"}
	g := New(stub)

	cards, err := g.Cards(context.Background(), "q", "a")
	require.NoError(t, err)
	assert.Len(t, cards, 3)
}

func TestCardsEmptyArray(t *testing.T) {
	stub := &stubProvider{response: "[]"}
	g := New(stub)

	cards, err := g.Cards(context.Background(), "q", "a")
	require.NoError(t, err)
	require.NotNil(t, cards)
	assert.Empty(t, cards)
}

func TestCardsNonJSONResponse(t *testing.T) {
	stub := &stubProvider{response: "I could not find any matching questions, sorry!"}
	g := New(stub)

	cards, err := g.Cards(context.Background(), "q", "a")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.RawPrefix, "I could not find")
	// Non-fatal contract: empty list, not nil.
	require.NotNil(t, cards)
	assert.Empty(t, cards)
}

func TestCardsSchemaViolation(t *testing.T) {
	// Valid JSON, wrong shape: back as object.
	stub := &stubProvider{response: `[{"type": "definition", "front": "x", "back": {"text": "y"}}]`}
	g := New(stub)

	_, err := g.Cards(context.Background(), "q", "a")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, err.Error(), "card schema")
}

func TestCardsUnknownTypeRejected(t *testing.T) {
	stub := &stubProvider{response: `[{"type": "essay", "front": "x", "back": "y"}]`}
	g := New(stub)

	_, err := g.Cards(context.Background(), "q", "a")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestCardsTransportFailure(t *testing.T) {
	stub := &stubProvider{err: errors.New("google returned 503: unavailable")}
	g := New(stub)

	_, err := g.Cards(context.Background(), "q", "a")
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
}

func TestCardsRequiresBothTexts(t *testing.T) {
	g := New(&stubProvider{response: "[]"})
	_, err := g.Cards(context.Background(), "q", "   ")
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
}

func TestCleanJSONOutput(t *testing.T) {
	in := "Here you go:\n```json\n[1]\n```\nEnjoy!"
	assert.Equal(t, "[1]", cleanJSONOutput(in))
}
