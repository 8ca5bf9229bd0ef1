package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"gitamind/internal/domain"
)

const (
	defaultEmotion = "Mixed"
	defaultTopic   = "Understanding your situation"
)

// reflectionPayload is the JSON object the model is asked to return.
type reflectionPayload struct {
	Emotion            string `json:"emotion"`
	Topic              string `json:"topic"`
	Response           string `json:"response" validate:"required"`
	ReflectionQuestion string `json:"reflectionQuestion" validate:"required"`
}

var validate = validator.New()

// ParseReflection decodes a model reply into a Reflection. Replies missing
// the response or the reflection question are rejected with
// domain.ErrInvalidPayload.
func ParseReflection(raw string) (domain.Reflection, error) {
	text := CleanJSONBlock(raw)
	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start >= 0 && end > start {
		text = text[start : end+1]
	}

	var p reflectionPayload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return domain.Reflection{}, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	p.Emotion = strings.TrimSpace(p.Emotion)
	p.Topic = strings.TrimSpace(p.Topic)
	p.Response = strings.TrimSpace(p.Response)
	p.ReflectionQuestion = strings.TrimSpace(p.ReflectionQuestion)

	if err := validate.Struct(p); err != nil {
		return domain.Reflection{}, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	if p.Emotion == "" {
		p.Emotion = defaultEmotion
	}
	if p.Topic == "" {
		p.Topic = defaultTopic
	}

	return domain.Reflection{
		Emotion:            p.Emotion,
		Topic:              p.Topic,
		Response:           p.Response,
		ReflectionQuestion: p.ReflectionQuestion,
	}, nil
}

// CleanJSONBlock removes markdown code fences models put around JSON.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		first := text[:idx]
		if len(first) < 20 && !strings.ContainsAny(first, " {") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
