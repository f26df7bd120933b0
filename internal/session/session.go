// Package session models the flashcard review flow as an explicit state
// machine: every user action is a pure transition from one State value to
// the next, and rendering happens elsewhere. No ambient globals, no
// framework-managed mutation.
package session

import (
	"math/rand"

	"github.com/nfarhana/kadstudi/internal/chat"
	"github.com/nfarhana/kadstudi/internal/deck"
)

type View int

const (
	// ViewDashboard lists the available sets.
	ViewDashboard View = iota
	// ViewReview shows one card of one set.
	ViewReview
)

// State is the whole ephemeral review session. Order is a permutation of
// [0, len(Cards)); Cursor indexes into Order. Transcript belongs to the
// card currently under the cursor and dies with any card change.
type State struct {
	View       View
	SetName    string
	Cards      []deck.Card
	Order      []int
	Cursor     int
	Revealed   bool
	Transcript []chat.Turn
}

// NewDashboard is the initial state: nothing selected.
func NewDashboard() State {
	return State{View: ViewDashboard}
}

// Current returns the card under the cursor, if any.
func (s State) Current() (deck.Card, bool) {
	if s.View != ViewReview || len(s.Order) == 0 || s.Cursor < 0 || s.Cursor >= len(s.Order) {
		return deck.Card{}, false
	}
	idx := s.Order[s.Cursor]
	if idx < 0 || idx >= len(s.Cards) {
		return deck.Card{}, false
	}
	return s.Cards[idx], true
}

// Open enters review of a named set: fresh shuffle, cursor at the first
// card, answer hidden, empty transcript. An empty set gets an empty
// permutation and navigation stays suppressed.
func (s State) Open(name string, cards []deck.Card, rng *rand.Rand) State {
	next := State{
		View:    ViewReview,
		SetName: name,
		Cards:   cards,
	}
	if len(cards) > 0 {
		next.Order = rng.Perm(len(cards))
	}
	return next
}

// Back returns to the dashboard, dropping all ephemeral review state.
func (s State) Back() State {
	return NewDashboard()
}

// Next advances to the following card, wrapping at the end. The answer is
// re-hidden and the transcript cleared.
func (s State) Next() State {
	if len(s.Order) == 0 {
		return s
	}
	s.Cursor = (s.Cursor + 1) % len(s.Order)
	s.Revealed = false
	s.Transcript = nil
	return s
}

// Prev moves to the preceding card, wrapping at the start.
func (s State) Prev() State {
	if len(s.Order) == 0 {
		return s
	}
	s.Cursor = (s.Cursor - 1 + len(s.Order)) % len(s.Order)
	s.Revealed = false
	s.Transcript = nil
	return s
}

// Shuffle draws a new permutation and restarts from its first card.
func (s State) Shuffle(rng *rand.Rand) State {
	if len(s.Cards) == 0 {
		return s
	}
	s.Order = rng.Perm(len(s.Cards))
	s.Cursor = 0
	s.Revealed = false
	s.Transcript = nil
	return s
}

// Reveal shows the answer. Nothing else changes; in particular the
// transcript survives.
func (s State) Reveal() State {
	if _, ok := s.Current(); !ok {
		return s
	}
	s.Revealed = true
	return s
}

// Append records one chat turn for the current card.
func (s State) Append(turn chat.Turn) State {
	transcript := make([]chat.Turn, len(s.Transcript), len(s.Transcript)+1)
	copy(transcript, s.Transcript)
	s.Transcript = append(transcript, turn)
	return s
}

// Sync replaces the session's cards after the underlying set changed on
// disk. Identity of the card under the cursor is compared structurally
// (not via serialization hashes): if it changed, the transcript is cleared
// and the answer re-hidden. A size change forces a fresh shuffle.
func (s State) Sync(cards []deck.Card, rng *rand.Rand) State {
	if s.View != ViewReview {
		return s
	}
	if len(cards) != len(s.Cards) {
		return s.Open(s.SetName, cards, rng)
	}

	before, hadBefore := s.Current()
	s.Cards = cards
	after, hasAfter := s.Current()
	if !hadBefore || !hasAfter || before.Key() != after.Key() {
		s.Revealed = false
		s.Transcript = nil
	}
	return s
}
