package deck

import (
	"encoding/json"
	"testing"
)

func TestBackUnmarshalString(t *testing.T) {
	var b Back
	if err := json.Unmarshal([]byte(`"the Calvin cycle"`), &b); err != nil {
		t.Fatal(err)
	}
	if b.IsList() {
		t.Error("string back should not report list form")
	}
	if b.Text != "the Calvin cycle" {
		t.Errorf("Text = %q", b.Text)
	}
}

func TestBackUnmarshalList(t *testing.T) {
	var b Back
	if err := json.Unmarshal([]byte(`["first point", "second point"]`), &b); err != nil {
		t.Fatal(err)
	}
	if !b.IsList() {
		t.Error("array back should report list form")
	}
	if got := b.String(); got != "first point\nsecond point" {
		t.Errorf("String() = %q", got)
	}
}

func TestBackUnmarshalRejectsObjects(t *testing.T) {
	var b Back
	if err := json.Unmarshal([]byte(`{"x": 1}`), &b); err == nil {
		t.Error("object back should be rejected")
	}
}

func TestCardTypeValid(t *testing.T) {
	for _, typ := range KnownTypes {
		if !typ.Valid() {
			t.Errorf("%q should be valid", typ)
		}
	}
	if CardType("multiple_choice").Valid() {
		t.Error("unknown type should be invalid")
	}
}

func TestCardKeyTracksContent(t *testing.T) {
	a := Card{Type: TypeDefinition, Front: "What is osmosis?", Back: BackText("Diffusion of water across a membrane.")}
	b := a
	if a.Key() != b.Key() {
		t.Error("identical cards should share a key")
	}
	b.Back = BackText("Something else entirely.")
	if a.Key() == b.Key() {
		t.Error("changing the answer must change the key")
	}
	// Type alone is cosmetic and not part of identity.
	c := a
	c.Type = TypeOther
	if a.Key() != c.Key() {
		t.Error("type should not affect card identity")
	}
}
