package deck

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CardType classifies what a card is testing.
type CardType string

const (
	TypeDefinition CardType = "definition"
	TypeWhyHow     CardType = "why_how"
	TypeCloze      CardType = "cloze"
	TypeOther      CardType = "other"
)

// KnownTypes lists every card type the generator may emit.
var KnownTypes = []CardType{TypeDefinition, TypeWhyHow, TypeCloze, TypeOther}

func (t CardType) Valid() bool {
	for _, k := range KnownTypes {
		if t == k {
			return true
		}
	}
	return false
}

// Back is the answer side of a card. The generator produces either a plain
// string or an ordered list of points (why_how cards), and the stored JSON
// must round-trip in whichever shape it arrived.
type Back struct {
	Text  string
	Items []string // non-nil means the list form
}

func BackText(s string) Back       { return Back{Text: s} }
func BackList(items []string) Back { return Back{Items: items} }

func (b Back) IsList() bool { return b.Items != nil }

// Lines returns the answer as display lines regardless of shape.
func (b Back) Lines() []string {
	if b.Items != nil {
		return b.Items
	}
	return []string{b.Text}
}

// String flattens the answer for prompt context and card identity.
func (b Back) String() string {
	if b.Items != nil {
		return strings.Join(b.Items, "\n")
	}
	return b.Text
}

func (b Back) MarshalJSON() ([]byte, error) {
	if b.Items != nil {
		return json.Marshal(b.Items)
	}
	return json.Marshal(b.Text)
}

func (b *Back) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = Back{Text: s}
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		if items == nil {
			items = []string{}
		}
		*b = Back{Items: items}
		return nil
	}
	return fmt.Errorf("card back must be a string or an array of strings, got %s", truncate(string(data), 40))
}

// Card is one question/answer study unit. Immutable once stored.
type Card struct {
	Type  CardType `json:"type"`
	Front string   `json:"front"`
	Back  Back     `json:"back"`
}

// Key identifies a card by its visible content. The review session uses it
// to detect that the card under the cursor changed and ephemeral state
// (transcript, answer visibility) must reset.
func (c Card) Key() string {
	return c.Front + "\x1f" + c.Back.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
