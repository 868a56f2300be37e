// Package advisor sends rendered gap instructions to a text-generation model.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/capsule/internal/contract"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
)

const systemText = "You are a wardrobe purchase advisor. Score the candidate item from 1 to 10 " +
	"and explain the score in a few sentences. Follow every mandatory score in the instructions."

// ErrEmptyResponse is returned when the model answers without any content.
var ErrEmptyResponse = errors.New("empty response from model")

// Advisor turns instruction prompts into purchase advice with an LLM.
type Advisor struct {
	model     llms.Model
	maxTokens int
}

var _ contract.Advisor = &Advisor{}

// New creates an Advisor backed by Anthropic. The API key is read from ANTHROPIC_API_KEY.
func New(modelName string, maxTokens int) (*Advisor, error) {
	if modelName == "" {
		modelName = contract.DefaultLLMModel
	}
	model, err := anthropic.New(anthropic.WithModel(modelName))
	if err != nil {
		return nil, fmt.Errorf("failed to create anthropic client: %w", err)
	}
	return NewWithModel(model, maxTokens), nil
}

// NewWithModel creates an Advisor around any langchaingo model.
func NewWithModel(model llms.Model, maxTokens int) *Advisor {
	if maxTokens <= 0 {
		maxTokens = contract.DefaultLLMMaxTokens
	}
	return &Advisor{model: model, maxTokens: maxTokens}
}

// Advise sends the prompt and returns the model's answer.
func (a *Advisor) Advise(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt is empty")
	}

	response, err := a.model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemText),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}, llms.WithMaxTokens(a.maxTokens))
	if err != nil {
		return "", fmt.Errorf("failed to generate advice: %w", err)
	}

	if response == nil || len(response.Choices) == 0 || strings.TrimSpace(response.Choices[0].Content) == "" {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(response.Choices[0].Content), nil
}
