// Package roles provides the preset system roles offered when starting a conversation.
package roles

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed presets/*.md
var presets embed.FS

// Role is a named system instruction
type Role struct {
	Name  string // Identifier used on the command line
	Label string // Human-readable name
	Text  string // System instruction sent to the model
}

var catalog = []struct {
	name  string
	label string
}{
	{"assistant", "Assistant"},
	{"interpreter", "English-French interpreter"},
	{"travel-guide", "Travel guide"},
}

// All returns the preset roles in display order
func All() []Role {
	roles := make([]Role, 0, len(catalog))
	for _, entry := range catalog {
		b, err := presets.ReadFile("presets/" + entry.name + ".md")
		if err != nil {
			// Every catalog entry has an embedded file
			panic(fmt.Sprintf("missing preset role '%s': %v", entry.name, err))
		}
		roles = append(roles, Role{
			Name:  entry.name,
			Label: entry.label,
			Text:  strings.TrimSpace(string(b)),
		})
	}
	return roles
}

// Lookup returns the preset role with the given name
func Lookup(name string) (Role, error) {
	for _, r := range All() {
		if r.Name == name {
			return r, nil
		}
	}
	return Role{}, fmt.Errorf("unknown role '%s'", name)
}
