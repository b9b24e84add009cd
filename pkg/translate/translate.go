// Package translate turns issue text into another language through a
// generative-language API. Translation degrades to returning the input
// unchanged whenever it cannot be meaningfully performed.
package translate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zapier/ghcopy/pkg/config"
	"github.com/zapier/ghcopy/telemetry"
)

var tracer = otel.Tracer("pkg/translate")

var (
	// ErrNoText is returned by a provider whose response lacks the generated text
	ErrNoText = errors.New("provider response has no text")
)

// StatusError is returned by a provider that answered with a non-2xx status.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s responded with status %d: %s", e.Provider, e.StatusCode, e.Body)
}

func (e *StatusError) retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// Translator translates text into a target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// Provider sends a single prompt to a generative-language model.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

type Client struct {
	provider   Provider
	maxRetries int
	newBackOff func() backoff.BackOff
}

var _ Translator = (*Client)(nil)

func NewClient(provider Provider, maxRetries int) *Client {
	return &Client{
		provider:   provider,
		maxRetries: maxRetries,
		newBackOff: func() backoff.BackOff {
			bOff := backoff.NewExponentialBackOff()
			bOff.MaxInterval = 10 * time.Second
			bOff.RandomizationFactor = 0
			bOff.MaxElapsedTime = 2 * time.Minute
			return bOff
		},
	}
}

// New builds the translator configured in cfg. Without an api key every call
// is a pass-through.
func New(cfg config.Config) (*Client, error) {
	if cfg.TranslationAPIKey == "" {
		log.Debug().Msg("translation api key not set, translation disabled")
		return NewClient(nil, 0), nil
	}

	var provider Provider
	switch cfg.TranslationProvider {
	case config.ProviderGemini, "":
		provider = NewGemini(cfg.TranslationAPIKey, cfg.TranslationModel, cfg.TranslationBaseURL)
	case config.ProviderOpenAI:
		provider = NewOpenAI(cfg.TranslationAPIKey, cfg.TranslationModel, cfg.TranslationBaseURL)
	default:
		return nil, fmt.Errorf("unknown translation provider: %q", cfg.TranslationProvider)
	}

	log.Info().Str("provider", provider.Name()).Msg("enabling translation")
	return NewClient(provider, cfg.TranslationMaxRetries), nil
}

// Translate returns text translated into targetLanguage. Empty text, an empty
// language or a disabled client return text unchanged, and so does a provider
// response that is an error status or carries no text. Only a provider that
// cannot be reached produces an error.
func (c *Client) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if text == "" || targetLanguage == "" || c.provider == nil {
		return text, nil
	}

	ctx, span := tracer.Start(ctx, "Translate")
	defer span.End()
	span.SetAttributes(
		attribute.String("provider", c.provider.Name()),
		attribute.String("language", targetLanguage),
	)

	translated, err := c.completeWithBackoff(ctx, buildPrompt(text, targetLanguage))
	if err != nil {
		var statusErr *StatusError
		if errors.Is(err, ErrNoText) || errors.As(err, &statusErr) {
			log.Warn().Err(err).Str("provider", c.provider.Name()).Msg("translation unavailable, keeping original text")
			return text, nil
		}

		telemetry.SetError(span, err, "Translate")
		return text, pkgerrors.Wrapf(err, "failed to reach %s", c.provider.Name())
	}

	return translated, nil
}

func (c *Client) completeWithBackoff(ctx context.Context, prompt string) (string, error) {
	bOff := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), uint64(c.maxRetries)), ctx)

	var result string
	err := backoff.Retry(func() error {
		var err error
		result, err = c.provider.Complete(ctx, prompt)
		if err != nil {
			var statusErr *StatusError
			if !errors.As(err, &statusErr) || !statusErr.retryable() {
				return backoff.Permanent(err)
			}
			log.Debug().Err(err).Msg("retrying translation")
		}
		return err
	}, bOff)
	return result, err
}

const translatePrompt = `Translate the text below to %s. Preserve links, images and markdown formatting and keep the meaning.
Reply with the translated text only, without anything extra or additional.

%s`

func buildPrompt(text, targetLanguage string) string {
	return fmt.Sprintf(translatePrompt, targetLanguage, text)
}
