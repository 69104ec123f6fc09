package ai

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

//go:embed transcript.tmpl
var transcriptTemplate string

var parsedTranscriptTemplate = template.Must(template.New("transcript").Parse(transcriptTemplate))

// Transcript renders the conversation as alternating "== User:" and "== Assistant:" blocks
func (c *Conversation) Transcript() (string, error) {
	data := struct {
		Turns []Turn
	}{
		Turns: c.history.Turns(),
	}

	var buf bytes.Buffer
	if err := parsedTranscriptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render transcript: %w", err)
	}
	return buf.String(), nil
}
