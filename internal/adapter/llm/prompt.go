package llm

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"gitamind/internal/domain"
)

//go:embed templates/*.txt
var promptTemplates embed.FS

const defaultLanguage = "Hindi"

// PromptBuilder renders the system and user prompts for a reflection request.
type PromptBuilder struct {
	system string
	user   *template.Template
}

type PromptData struct {
	Message  string
	Passages []domain.Passage
}

func NewPromptBuilder(language string) (*PromptBuilder, error) {
	if language == "" {
		language = defaultLanguage
	}

	system, err := parseTemplate("templates/system_prompt.txt")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := system.Execute(&buf, struct{ Language string }{language}); err != nil {
		return nil, fmt.Errorf("failed to render system prompt: %w", err)
	}

	user, err := parseTemplate("templates/reflection_prompt.txt")
	if err != nil {
		return nil, err
	}

	return &PromptBuilder{system: buf.String(), user: user}, nil
}

func parseTemplate(name string) (*template.Template, error) {
	content, err := promptTemplates.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("template not found: %w", err)
	}
	tmpl, err := template.New(name).Funcs(templateFuncs()).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

func (b *PromptBuilder) SystemPrompt() string {
	return b.system
}

// UserPrompt renders the message with passages numbered from 1.
func (b *PromptBuilder) UserPrompt(message string, passages []domain.Passage) (string, error) {
	var buf bytes.Buffer
	if err := b.user.Execute(&buf, PromptData{Message: message, Passages: passages}); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return buf.String(), nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatPassages": func(passages []domain.Passage) string {
			parts := make([]string, len(passages))
			for i, p := range passages {
				parts[i] = fmt.Sprintf("(%d) %s", i+1, p.Text)
			}
			return strings.Join(parts, "\n\n")
		},
	}
}
