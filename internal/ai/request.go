package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/pretty"
)

// DefaultSystemInstruction is used when no system role has been chosen
const DefaultSystemInstruction = "You are a helpful assistant."

// Payload is the generateContent request body. It is derived from a history snapshot on every call and never stored.
type Payload struct {
	SystemInstruction SystemInstruction `json:"system_instruction"`
	Contents          []Turn            `json:"contents"`
}

// SystemInstruction carries the system role as a single text part
type SystemInstruction struct {
	Parts []Part `json:"parts"`
}

// BuildRequest combines a system instruction with the conversation so far. The returned payload shares no memory with
// the history.
func BuildRequest(systemInstruction string, history *History) Payload {
	if strings.TrimSpace(systemInstruction) == "" {
		systemInstruction = DefaultSystemInstruction
	}

	contents := []Turn{}
	if history != nil {
		contents = history.Turns()
	}

	return Payload{
		SystemInstruction: SystemInstruction{
			Parts: []Part{{Text: systemInstruction}},
		},
		Contents: contents,
	}
}

// JSON returns the compact wire encoding
func (p Payload) JSON() ([]byte, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}
	return b, nil
}

// Pretty returns an indented rendering of the payload for display and diagnostics
func (p Payload) Pretty() (string, error) {
	b, err := p.JSON()
	if err != nil {
		return "", err
	}
	return string(pretty.Pretty(b)), nil
}
