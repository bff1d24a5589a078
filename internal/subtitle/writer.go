package subtitle

import (
	"fmt"
	"os"
	"strings"
)

// Reconstruct renders entries back into a SubRip document: blocks joined
// by a blank line and exactly one trailing line break. An empty sequence
// renders as "\n".
func Reconstruct(entries []Entry) string {
	var b strings.Builder
	for i, entry := range entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(entry.Sequence)
		b.WriteByte('\n')
		b.WriteString(entry.Timing)
		b.WriteByte('\n')
		b.WriteString(entry.Text)
	}
	b.WriteByte('\n')
	return b.String()
}

// WriteFile writes the reconstructed document to path
func WriteFile(path string, entries []Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("subtitle data is empty")
	}
	if err := os.WriteFile(path, []byte(Reconstruct(entries)), 0o644); err != nil {
		return fmt.Errorf("failed to write subtitle file: %w", err)
	}
	return nil
}
