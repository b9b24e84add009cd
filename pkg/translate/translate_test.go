package translate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapier/ghcopy/pkg/config"
)

type fakeProvider struct {
	responses []fakeResponse
	prompts   []string
}

type fakeResponse struct {
	text string
	err  error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.responses) == 0 {
		return "", errors.New("unexpected call")
	}
	r := f.responses[0]
	f.responses = f.responses[1:]
	return r.text, r.err
}

func newTestClient(provider Provider, maxRetries int) *Client {
	c := NewClient(provider, maxRetries)
	c.newBackOff = func() backoff.BackOff { return backoff.NewConstantBackOff(time.Millisecond) }
	return c
}

func TestTranslatePassThrough(t *testing.T) {
	tests := map[string]struct {
		provider Provider
		text     string
		lang     string
	}{
		"empty text": {
			provider: &fakeProvider{},
			text:     "",
			lang:     "fr",
		},
		"empty language": {
			provider: &fakeProvider{},
			text:     "hi",
			lang:     "",
		},
		"no provider configured": {
			provider: nil,
			text:     "hi",
			lang:     "fr",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(test.provider, 0)
			actual, err := c.Translate(context.Background(), test.text, test.lang)
			require.NoError(t, err)
			assert.Equal(t, test.text, actual)

			if fp, ok := test.provider.(*fakeProvider); ok {
				assert.Empty(t, fp.prompts)
			}
		})
	}
}

func TestTranslate(t *testing.T) {
	provider := &fakeProvider{responses: []fakeResponse{{text: "Bonjour"}}}
	c := newTestClient(provider, 0)

	actual, err := c.Translate(context.Background(), "Hello", "fr")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", actual)

	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "to fr")
	assert.Contains(t, provider.prompts[0], "Hello")
}

func TestTranslateSoftFailures(t *testing.T) {
	tests := map[string]error{
		"missing text":      ErrNoText,
		"error status":      &StatusError{Provider: "fake", StatusCode: 400, Body: "bad request"},
		"retries exhausted": &StatusError{Provider: "fake", StatusCode: 503},
	}

	for name, providerErr := range tests {
		t.Run(name, func(t *testing.T) {
			provider := &fakeProvider{responses: []fakeResponse{{err: providerErr}}}
			c := newTestClient(provider, 0)

			actual, err := c.Translate(context.Background(), "Hello", "fr")
			require.NoError(t, err)
			assert.Equal(t, "Hello", actual)
		})
	}
}

func TestTranslateUnreachableProvider(t *testing.T) {
	provider := &fakeProvider{responses: []fakeResponse{{err: errors.New("connection refused")}}}
	c := newTestClient(provider, 3)

	actual, err := c.Translate(context.Background(), "Hello", "fr")
	assert.Error(t, err)
	assert.Equal(t, "Hello", actual)
	assert.Len(t, provider.prompts, 1, "transport errors are not retried")
}

func TestTranslateRetriesRateLimits(t *testing.T) {
	provider := &fakeProvider{responses: []fakeResponse{
		{err: &StatusError{Provider: "fake", StatusCode: 429}},
		{err: &StatusError{Provider: "fake", StatusCode: 502}},
		{text: "Bonjour"},
	}}
	c := newTestClient(provider, 2)

	actual, err := c.Translate(context.Background(), "Hello", "fr")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", actual)
	assert.Len(t, provider.prompts, 3)
}

func TestTranslateDoesNotRetryClientErrors(t *testing.T) {
	provider := &fakeProvider{responses: []fakeResponse{
		{err: &StatusError{Provider: "fake", StatusCode: 400}},
		{text: "Bonjour"},
	}}
	c := newTestClient(provider, 2)

	actual, err := c.Translate(context.Background(), "Hello", "fr")
	require.NoError(t, err)
	assert.Equal(t, "Hello", actual)
	assert.Len(t, provider.prompts, 1)
}

func TestNew(t *testing.T) {
	tests := map[string]struct {
		cfg      config.Config
		provider string
		wantErr  bool
	}{
		"disabled without api key": {
			cfg: config.Config{TranslationProvider: config.ProviderGemini},
		},
		"gemini": {
			cfg:      config.Config{TranslationProvider: config.ProviderGemini, TranslationAPIKey: "key"},
			provider: "gemini",
		},
		"openai": {
			cfg:      config.Config{TranslationProvider: config.ProviderOpenAI, TranslationAPIKey: "key"},
			provider: "openai",
		},
		"unknown": {
			cfg:     config.Config{TranslationProvider: "babelfish", TranslationAPIKey: "key"},
			wantErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := New(test.cfg)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if test.provider == "" {
				assert.Nil(t, c.provider)
				return
			}
			require.NotNil(t, c.provider)
			assert.Equal(t, test.provider, c.provider.Name())
		})
	}
}
