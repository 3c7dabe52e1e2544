package copilotbus

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed persona.yaml
var defaultPersona []byte

// Persona is the fixed system instruction given to the recognizer.
type Persona struct {
	Company      string   `yaml:"company"`
	Application  string   `yaml:"application"`
	Language     string   `yaml:"language"`
	Tasks        []string `yaml:"tasks"`
	Instructions string   `yaml:"instructions"`
	Tone         string   `yaml:"tone"`
	Fallback     string   `yaml:"fallback"`
}

// DefaultPersona returns the persona shipped with the binary.
func DefaultPersona() Persona {
	p, err := ParsePersona(defaultPersona)
	if err != nil {
		panic(fmt.Sprintf("embedded persona: %s", err))
	}

	return p
}

// LoadPersona reads a persona document from disk. An empty path yields the
// default persona.
func LoadPersona(path string) (Persona, error) {
	if path == "" {
		return DefaultPersona(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Persona{}, fmt.Errorf("read persona: %w", err)
	}

	return ParsePersona(data)
}

// ParsePersona decodes a YAML persona document.
func ParsePersona(data []byte) (Persona, error) {
	var p Persona
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Persona{}, fmt.Errorf("decode persona: %w", err)
	}

	if p.Company == "" || p.Language == "" {
		return Persona{}, fmt.Errorf("decode persona: company and language are required")
	}

	if p.Fallback == "" {
		p.Fallback = msgFallback
	}

	return p, nil
}

// SystemPrompt renders the system instruction.
func (p Persona) SystemPrompt() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Du bist ein KI-Assistent für die %s", p.Company)
	if p.Application != "" {
		fmt.Fprintf(&b, " %s", p.Application)
	}
	b.WriteString(".\n")

	if len(p.Tasks) > 0 {
		b.WriteString("Du hilfst Mitarbeitern bei folgenden Aufgaben:\n")
		for _, task := range p.Tasks {
			fmt.Fprintf(&b, "- %s\n", task)
		}
		b.WriteString("\n")
	}

	if p.Instructions != "" {
		fmt.Fprintf(&b, "%s\n", p.Instructions)
	}

	fmt.Fprintf(&b, "Antworte immer auf %s", p.Language)
	if p.Tone != "" {
		fmt.Fprintf(&b, " und sei %s", p.Tone)
	}
	b.WriteString(".")

	return b.String()
}
