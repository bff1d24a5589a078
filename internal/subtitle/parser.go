package subtitle

import (
	"regexp"
	"strings"
)

var blockSeparator = regexp.MustCompile(`\n{2,}`)

// Parse splits a raw SubRip document into entries.
//
// Blocks are separated by two or more line breaks; any of "\n", "\r\n"
// and "\r" count as one break. A block is kept only when its first line
// is all digits and its second line contains "-->". Anything else is
// dropped without error, which absorbs trailing noise and empty tail
// blocks common in real files.
func Parse(raw string) []Entry {
	entries := make([]Entry, 0)

	content := strings.TrimSpace(normalizeLineEndings(raw))
	if content == "" {
		return entries
	}

	for _, block := range blockSeparator.Split(content, -1) {
		lines := strings.Split(block, "\n")
		if len(lines) < 2 {
			continue
		}

		sequence, timing := lines[0], lines[1]
		if !isSequenceLabel(sequence) || !strings.Contains(timing, RangeSeparator) {
			continue
		}

		entries = append(entries, Entry{
			Index:    len(entries),
			Sequence: sequence,
			Timing:   timing,
			Text:     strings.Join(lines[2:], "\n"),
		})
	}

	return entries
}

// normalizeLineEndings rewrites "\r\n" and lone "\r" to "\n".
func normalizeLineEndings(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func isSequenceLabel(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
