package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/zapier/ghcopy/pkg"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	DefaultGeminiModel   = "gemini-2.0-flash"
)

// Gemini talks to the Google generative-language generateContent endpoint.
type Gemini struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
}

func NewGemini(apiKey, model, baseURL string) *Gemini {
	if model == "" {
		model = DefaultGeminiModel
	}
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}

	return &Gemini{
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (g *Gemini) Name() string { return "gemini" }

type geminiPart struct {
	Text *string `json:"text,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: &prompt}}}},
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to encode gemini request")
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "failed to build gemini request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", pkg.UserAgent())
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read gemini response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{Provider: g.Name(), StatusCode: resp.StatusCode, Body: string(data)}
	}

	return extractGeminiText(data)
}

// extractGeminiText reads candidates[0].content.parts[0].text.
func extractGeminiText(data []byte) (string, error) {
	var parsed geminiResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", errors.Wrapf(ErrNoText, "invalid json: %s", err)
	}

	if len(parsed.Candidates) == 0 {
		return "", errors.Wrap(ErrNoText, "no candidates")
	}
	parts := parsed.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == nil {
		return "", errors.Wrap(ErrNoText, "no content parts")
	}

	return *parts[0].Text, nil
}
