package translator

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/MimeLyc/srt-translator/internal/apperr"
	"github.com/MimeLyc/srt-translator/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	mu sync.Mutex

	response string
	err      error
	panicMsg string

	calls        int
	systemPrompt string
	userPrompt   string
	temperature  float64
}

func (f *fakeGenerator) Generate(_ context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.systemPrompt = systemPrompt
	f.userPrompt = userPrompt
	f.temperature = temperature
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.response, f.err
}

const document = "1\n00:00:01,000 --> 00:00:02,000\nHello\n"

func TestTranslate_Success(t *testing.T) {
	gen := &fakeGenerator{response: "\n  1\n00:00:01,000 --> 00:00:02,000\nHola\n\n "}
	o := New(gen)

	got, err := o.Translate(context.Background(), document, "Spanish")
	require.NoError(t, err)

	assert.Equal(t, "1\n00:00:01,000 --> 00:00:02,000\nHola", got)
	assert.Equal(t, 1, gen.calls)
	assert.InDelta(t, DefaultTemperature, gen.temperature, 1e-9)
	assert.Equal(t, "Translate the following SRT subtitle content into Spanish:\n\n"+document, gen.userPrompt)
}

func TestTranslate_SystemDirective(t *testing.T) {
	gen := &fakeGenerator{response: "ok"}
	_, err := New(gen).Translate(context.Background(), document, "French")
	require.NoError(t, err)

	assert.Contains(t, gen.systemPrompt, "DO NOT translate or alter sequence numbers.")
	assert.Contains(t, gen.systemPrompt, "DO NOT translate or alter timestamps.")
	assert.Contains(t, gen.systemPrompt, "ONLY translate the subtitle text.")
	assert.Contains(t, gen.systemPrompt, "DO NOT add any introductory text")
	assert.NotContains(t, gen.systemPrompt, "French")
}

func TestTranslate_WithTemperature(t *testing.T) {
	gen := &fakeGenerator{response: "ok"}
	_, err := New(gen, WithTemperature(0)).Translate(context.Background(), document, "German")
	require.NoError(t, err)
	assert.Equal(t, float64(0), gen.temperature)
}

func TestTranslate_FailureIsClassifiedAndHidden(t *testing.T) {
	cause := errors.New("googleapi: Error 403: API key not valid, secret=abc123")
	gen := &fakeGenerator{err: cause}

	_, err := New(gen).Translate(context.Background(), document, "Spanish")
	require.Error(t, err)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.ErrTranslation, appErr.Type)
	assert.Equal(t, FailureMessage, appErr.Message)
	assert.NotContains(t, err.Error(), "abc123")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, gen.calls, "no retry")
}

func TestTranslate_FailureLogsCause(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogger(log.LevelDebug)
	logger.SetOutput(&buf)
	prev := log.GetLogger()
	log.SetLogger(logger)
	t.Cleanup(func() { log.SetLogger(prev) })

	gen := &fakeGenerator{err: errors.New("dial tcp: connection refused")}
	_, err := New(gen).Translate(context.Background(), document, "Spanish")
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "[ERROR]")
	assert.Contains(t, out, "[Translation]")
	assert.Contains(t, out, "language=Spanish")
	assert.Contains(t, out, "cause: dial tcp: connection refused")
	assert.NotContains(t, apperr.Message(err), "connection refused")
}

func TestTranslate_PanicIsClassified(t *testing.T) {
	gen := &fakeGenerator{panicMsg: "nil map"}

	_, err := New(gen).Translate(context.Background(), document, "Spanish")
	require.Error(t, err)
	assert.True(t, apperr.IsType(err, apperr.ErrTranslation))
}

func TestTranslate_NoGenerator(t *testing.T) {
	_, err := New(nil).Translate(context.Background(), document, "Spanish")
	require.Error(t, err)
	assert.True(t, apperr.IsType(err, apperr.ErrTranslation))
}

func TestTranslate_RequiresLanguage(t *testing.T) {
	gen := &fakeGenerator{response: "ok"}
	_, err := New(gen).Translate(context.Background(), document, "  ")
	require.Error(t, err)
	assert.True(t, apperr.IsType(err, apperr.ErrValidation))
	assert.Equal(t, 0, gen.calls)
}

func TestTranslate_EmptyResponseIsNotAnError(t *testing.T) {
	gen := &fakeGenerator{response: "   \n"}
	got, err := New(gen).Translate(context.Background(), document, "Spanish")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestTranslate_Concurrent(t *testing.T) {
	gen := &fakeGenerator{response: "ok"}
	o := New(gen)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := o.Translate(context.Background(), document, "Spanish")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, gen.calls)
}
