package translate

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

const DefaultOpenAIModel = openai.GPT4oMini

const completionSystemPrompt = `You are a professional translator of software issue trackers.
You translate GitHub issues and comments faithfully and never add commentary.`

// OpenAI uses the chat completion api.
type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(apiToken, model, baseURL string) *OpenAI {
	if model == "" {
		model = DefaultOpenAIModel
	}

	cfg := openai.DefaultConfig(apiToken)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: model}
}

func (o *OpenAI) Name() string { return "openai" }

func createCompletionRequest(model, prompt string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model:       model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: completionSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Stream: false,
	}
}

func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, createCompletionRequest(o.model, prompt))
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &StatusError{Provider: o.Name(), StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return "", &StatusError{Provider: o.Name(), StatusCode: reqErr.HTTPStatusCode, Body: reqErr.Error()}
		}
		return "", err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", pkgerrors.Wrap(ErrNoText, "no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
