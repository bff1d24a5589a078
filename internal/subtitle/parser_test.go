package subtitle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoEntries = "1\n00:00:01,000 --> 00:00:02,000\nHello\n\n2\n00:00:03,000 --> 00:00:04,000\nWorld"

func TestParse_TwoEntries(t *testing.T) {
	entries := Parse(twoEntries)
	require.Len(t, entries, 2)

	assert.Equal(t, Entry{Index: 0, Sequence: "1", Timing: "00:00:01,000 --> 00:00:02,000", Text: "Hello"}, entries[0])
	assert.Equal(t, Entry{Index: 1, Sequence: "2", Timing: "00:00:03,000 --> 00:00:04,000", Text: "World"}, entries[1])
}

func TestParse_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\n\r\n"} {
		entries := Parse(in)
		require.NotNil(t, entries)
		assert.Empty(t, entries)
	}
}

func TestParse_LineEndings(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "lf", in: "1\n00:00:01,000 --> 00:00:02,000\nHello\nthere\n\n2\n00:00:03,000 --> 00:00:04,000\nWorld\n"},
		{name: "crlf", in: "1\r\n00:00:01,000 --> 00:00:02,000\r\nHello\r\nthere\r\n\r\n2\r\n00:00:03,000 --> 00:00:04,000\r\nWorld\r\n"},
		{name: "cr", in: "1\r00:00:01,000 --> 00:00:02,000\rHello\rthere\r\r2\r00:00:03,000 --> 00:00:04,000\rWorld\r"},
		{name: "mixed", in: "1\r\n00:00:01,000 --> 00:00:02,000\nHello\rthere\r\n\n2\n00:00:03,000 --> 00:00:04,000\r\nWorld"},
		{name: "extra blank lines and trailing space", in: "\n\n1\n00:00:01,000 --> 00:00:02,000\nHello\nthere\n\n\n\n2\n00:00:03,000 --> 00:00:04,000\nWorld\n\n  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := Parse(tt.in)
			require.Len(t, entries, 2)
			assert.Equal(t, "Hello\nthere", entries[0].Text)
			assert.Equal(t, "World", entries[1].Text)
			assert.Equal(t, 1, entries[1].Index)
		})
	}
}

func TestParse_DropsMalformedBlocks(t *testing.T) {
	t.Run("missing range separator", func(t *testing.T) {
		entries := Parse("1\n00:00:01,000 --> 00:00:02,000\nHello\n\n2\n00:00:03,000 - 00:00:04,000\nWorld\n")
		require.Len(t, entries, 1)
		assert.Equal(t, "Hello", entries[0].Text)
	})

	t.Run("non digit label", func(t *testing.T) {
		entries := Parse("12a\n00:00:01,000 --> 00:00:02,000\nHello\n")
		assert.Empty(t, entries)
	})

	t.Run("single line block", func(t *testing.T) {
		entries := Parse("garbage\n\n1\n00:00:01,000 --> 00:00:02,000\nHello")
		require.Len(t, entries, 1)
		assert.Equal(t, "1", entries[0].Sequence)
	})

	t.Run("rejected blocks do not consume an index", func(t *testing.T) {
		entries := Parse("x\ny\n\n5\n00:00:01,000 --> 00:00:02,000\nA\n\nnote\n\n9\n00:00:03,000 --> 00:00:04,000\nB")
		require.Len(t, entries, 2)
		assert.Equal(t, 0, entries[0].Index)
		assert.Equal(t, 1, entries[1].Index)
		assert.Equal(t, "5", entries[0].Sequence)
		assert.Equal(t, "9", entries[1].Sequence)
	})

	t.Run("label with trailing space is not digits", func(t *testing.T) {
		entries := Parse("1 \n00:00:01,000 --> 00:00:02,000\nHello\n\n2\n00:00:03,000 --> 00:00:04,000\nWorld")
		require.Len(t, entries, 1)
		assert.Equal(t, "2", entries[0].Sequence)
	})
}

func TestParse_EmptyText(t *testing.T) {
	entries := Parse("1\n00:00:01,000 --> 00:00:02,000\n\n2\n00:00:03,000 --> 00:00:04,000\nWorld")
	require.Len(t, entries, 2)
	assert.Equal(t, "", entries[0].Text)
	assert.Equal(t, "World", entries[1].Text)
}

func TestParse_PreservesLabelAndTimingVerbatim(t *testing.T) {
	entries := Parse("007\n00:00:01.000 -->  00:00:02.000 X1:10\nHi")
	require.Len(t, entries, 1)
	assert.Equal(t, "007", entries[0].Sequence)
	assert.Equal(t, "00:00:01.000 -->  00:00:02.000 X1:10", entries[0].Timing)
}

func TestIsSequenceLabel(t *testing.T) {
	assert.True(t, isSequenceLabel("0"))
	assert.True(t, isSequenceLabel("1234"))
	assert.False(t, isSequenceLabel(""))
	assert.False(t, isSequenceLabel("12a"))
	assert.False(t, isSequenceLabel("-1"))
	assert.False(t, isSequenceLabel("１"))
}
