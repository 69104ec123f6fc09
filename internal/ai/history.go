package ai

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
)

// Role identifies the author of a turn
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Part is a single piece of content within a turn
type Part struct {
	Text string `json:"text"`
}

// Turn is one message in a conversation. Model turns carry the provider's content object verbatim so that fields
// this package does not interpret are sent back unchanged on the next request.
type Turn struct {
	Role  Role
	Parts []Part

	raw json.RawMessage // Verbatim provider content; nil for user turns
}

// Text returns the concatenated text of all parts
func (t Turn) Text() string {
	var sb strings.Builder
	for _, p := range t.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// Raw returns a copy of the verbatim provider content, or nil for turns created locally
func (t Turn) Raw() json.RawMessage {
	return slices.Clone(t.raw)
}

func (t Turn) MarshalJSON() ([]byte, error) {
	if t.raw != nil {
		return t.raw, nil
	}
	return json.Marshal(struct {
		Role  Role   `json:"role"`
		Parts []Part `json:"parts"`
	}{
		Role:  t.Role,
		Parts: t.Parts,
	})
}

func (t Turn) clone() Turn {
	return Turn{
		Role:  t.Role,
		Parts: slices.Clone(t.Parts),
		raw:   slices.Clone(t.raw),
	}
}

// History is the append-only, chronologically ordered record of turns exchanged in one conversation. The zero value is
// an empty history ready to use.
type History struct {
	turns []Turn
}

// AppendUserTurn adds a user turn with a single text part
func (h *History) AppendUserTurn(text string) {
	h.turns = append(h.turns, Turn{
		Role:  RoleUser,
		Parts: []Part{{Text: text}},
	})
}

// AppendModelTurn adds the provider's content object, unmodified, as a model turn. The content must be a JSON object
// with a non-empty parts array. Parts that are not objects with a string text field are kept in the raw content and
// carried locally as empty parts.
func (h *History) AppendModelTurn(content json.RawMessage) error {
	if !gjson.ValidBytes(content) {
		return fmt.Errorf("model content is not valid JSON")
	}
	doc := gjson.ParseBytes(content)
	if !doc.IsObject() {
		return fmt.Errorf("model content is not an object")
	}
	rawParts := doc.Get("parts")
	if !rawParts.IsArray() || len(rawParts.Array()) == 0 {
		return fmt.Errorf("model content has no parts")
	}

	var parts []Part
	for _, p := range rawParts.Array() {
		var part Part
		if text := p.Get("text"); p.IsObject() && text.Type == gjson.String {
			part.Text = text.String()
		}
		parts = append(parts, part)
	}

	h.turns = append(h.turns, Turn{
		Role:  RoleModel,
		Parts: parts,
		raw:   slices.Clone(content),
	})
	return nil
}

// Len returns the number of turns
func (h *History) Len() int {
	return len(h.turns)
}

// Turns returns a deep copy of the turns in chronological order
func (h *History) Turns() []Turn {
	turns := make([]Turn, len(h.turns))
	for i, t := range h.turns {
		turns[i] = t.clone()
	}
	return turns
}
