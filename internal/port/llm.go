package port

import "context"

// Reflector is one language model provider able to answer a guided-reflection prompt.
type Reflector interface {
	// Reflect returns the raw model reply for the given system and user prompts.
	Reflect(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Name identifies the provider in logs and responses.
	Name() string
}
