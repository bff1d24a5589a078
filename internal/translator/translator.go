package translator

import (
	"context"
	"fmt"
	"strings"

	"github.com/MimeLyc/srt-translator/internal/apperr"
	"github.com/MimeLyc/srt-translator/internal/llm"
	"github.com/MimeLyc/srt-translator/pkg/log"
)

// DefaultTemperature keeps generation close to deterministic.
const DefaultTemperature = 0.2

// FailureMessage is what callers see for any failed request; the cause
// only goes to the log.
const FailureMessage = "Failed to translate subtitles. Please check the server logs for more details."

// Orchestrator turns a raw SubRip document into its translation with a
// single generation request. It holds no mutable state and is safe for
// concurrent use.
type Orchestrator struct {
	generator   llm.Generator
	temperature float64
}

type Option func(*Orchestrator)

// WithTemperature overrides DefaultTemperature.
func WithTemperature(temperature float64) Option {
	return func(o *Orchestrator) {
		o.temperature = temperature
	}
}

func New(generator llm.Generator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		generator:   generator,
		temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Translate sends document to the generation service and returns the
// translated document with surrounding whitespace trimmed. Every failure
// comes back as an apperr.ErrTranslation error; no retry is attempted.
func (o *Orchestrator) Translate(ctx context.Context, document, targetLanguage string) (string, error) {
	targetLanguage = strings.TrimSpace(targetLanguage)
	if targetLanguage == "" {
		return "", apperr.New(apperr.ErrValidation, "Please choose a target language.")
	}

	if o == nil || o.generator == nil {
		return "", o.fail(fmt.Errorf("no text generation service configured"), targetLanguage)
	}

	content, err := o.generate(ctx, document, targetLanguage)
	if err != nil {
		return "", o.fail(err, targetLanguage)
	}

	return strings.TrimSpace(content), nil
}

// generate reports a panicking client as an error.
func (o *Orchestrator) generate(ctx context.Context, document, targetLanguage string) (content string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator panic: %v", r)
		}
	}()
	return o.generator.Generate(ctx, systemDirective, buildUserPrompt(targetLanguage, document), o.temperature)
}

func (o *Orchestrator) fail(cause error, targetLanguage string) error {
	err := apperr.Wrap(cause, apperr.ErrTranslation, FailureMessage).
		WithContext("language", targetLanguage)
	log.Error("Error translating SRT content: %s", err.Detail())
	return err
}
