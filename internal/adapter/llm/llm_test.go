package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"gitamind/config"
	"gitamind/internal/domain"
)

func TestPromptBuilder(t *testing.T) {
	b, err := NewPromptBuilder("")
	require.NoError(t, err)

	assert.Contains(t, b.SystemPrompt(), "Reply in Hindi.")
	assert.Contains(t, b.SystemPrompt(), `"reflectionQuestion"`)

	prompt, err := b.UserPrompt("I feel lost at work", []domain.Passage{
		{Text: "You have a right to action alone."},
		{Text: "Be steadfast in yoga."},
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "(1) You have a right to action alone.\n\n(2) Be steadfast in yoga.")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(prompt), "I feel lost at work"))
}

func TestPromptBuilder_NoPassages(t *testing.T) {
	b, err := NewPromptBuilder("English")
	require.NoError(t, err)
	assert.Contains(t, b.SystemPrompt(), "Reply in English.")

	prompt, err := b.UserPrompt("hello", nil)
	require.NoError(t, err)
	assert.NotContains(t, prompt, "Passages")
	assert.Equal(t, "What the person shared:\nhello\n", prompt)
}

func TestParseReflection(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.Reflection
	}{
		{
			name: "plain json",
			raw:  `{"emotion":"Fear","topic":"Career","response":"Act without attachment.","reflectionQuestion":"What is in your control?"}`,
			want: domain.Reflection{Emotion: "Fear", Topic: "Career", Response: "Act without attachment.", ReflectionQuestion: "What is in your control?"},
		},
		{
			name: "fenced with defaults",
			raw:  "```json\n{\"response\":\"Breathe.\",\"reflectionQuestion\":\"What do you need?\"}\n```",
			want: domain.Reflection{Emotion: "Mixed", Topic: "Understanding your situation", Response: "Breathe.", ReflectionQuestion: "What do you need?"},
		},
		{
			name: "prose around object",
			raw:  "Here you go: {\"emotion\":\" Grief \",\"response\":\"r\",\"reflectionQuestion\":\"q\"} hope it helps",
			want: domain.Reflection{Emotion: "Grief", Topic: "Understanding your situation", Response: "r", ReflectionQuestion: "q"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReflection(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseReflection_Invalid(t *testing.T) {
	for _, raw := range []string{
		"",
		"not json",
		`{"emotion":"Calm"}`,
		`{"response":"only a response"}`,
		`{"response":"  ","reflectionQuestion":"q"}`,
	} {
		_, err := ParseReflection(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidPayload, "raw %q", raw)
	}
}

type fakeModel struct {
	reply string
	err   error
	got   []llms.MessageContent
}

func (m *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	m.got = messages
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.reply}}}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func TestModelReflector(t *testing.T) {
	m := &fakeModel{reply: `{"response":"r","reflectionQuestion":"q"}`}
	r := NewModelReflector("fake", m)

	out, err := r.Reflect(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.Equal(t, m.reply, out)
	assert.Equal(t, "fake", r.Name())

	require.Len(t, m.got, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, m.got[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, m.got[1].Role)
}

func TestModelReflector_Errors(t *testing.T) {
	_, err := NewModelReflector("down", &fakeModel{err: errors.New("connection refused")}).
		Reflect(context.Background(), "s", "u")
	assert.ErrorContains(t, err, "down")

	_, err = NewModelReflector("blank", &fakeModel{reply: "  "}).
		Reflect(context.Background(), "s", "u")
	assert.ErrorContains(t, err, "empty completion")
}

func TestNewProviders_SkipsMissingCredentials(t *testing.T) {
	t.Setenv("GITAMIND_TEST_OPENAI", "")
	t.Setenv("GITAMIND_TEST_ANTHROPIC", "sk-ant-test")

	cfg := config.DefaultConfig().LLM
	cfg.Providers = []config.ProviderConfig{
		{Name: "openai", Model: "gpt-4o", APIKeyEnv: "GITAMIND_TEST_OPENAI"},
		{Name: "ollama", Model: "llama3.2"},
		{Name: "anthropic", Model: "claude-3-5-sonnet-20241022", APIKeyEnv: "GITAMIND_TEST_ANTHROPIC"},
		{Name: "ollama", Model: "llama3.2", BaseURL: "http://localhost:11434"},
	}

	providers, err := NewProviders(cfg)
	require.NoError(t, err)
	require.Len(t, providers, 2)
	assert.Equal(t, "anthropic", providers[0].Name())
	assert.Equal(t, "ollama", providers[1].Name())
}

func TestNewProviders_Unknown(t *testing.T) {
	cfg := config.DefaultConfig().LLM
	cfg.Providers = []config.ProviderConfig{{Name: "gemini", Model: "x"}}

	_, err := NewProviders(cfg)
	assert.Error(t, err)
}
