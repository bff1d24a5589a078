package subtitle

import (
	"strings"

	"github.com/MimeLyc/srt-translator/internal/apperr"
)

// WithText returns a copy of entries where only the entry at index has
// its text replaced. Leading and trailing line breaks of text are removed
// so the entry survives Reconstruct followed by Parse. The input slice is
// never modified.
func WithText(entries []Entry, index int, text string) ([]Entry, error) {
	if index < 0 || index >= len(entries) {
		return nil, apperr.New(apperr.ErrNotFound, "Subtitle entry not found.").
			WithContext("index", index)
	}

	// surrounding line breaks would open a blank line inside the block
	text = strings.Trim(normalizeLineEndings(text), "\n")
	if strings.Contains(text, "\n\n") {
		return nil, apperr.New(apperr.ErrValidation, "Subtitle text must not contain blank lines.").
			WithContext("index", index)
	}

	next := make([]Entry, len(entries))
	copy(next, entries)
	next[index].Text = text
	return next, nil
}
