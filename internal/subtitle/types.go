package subtitle

// Entry is one caption block of a SubRip document.
type Entry struct {
	Index    int    `json:"index"`    // position among accepted blocks, not written back
	Sequence string `json:"sequence"` // original sequence label, verbatim
	Timing   string `json:"timing"`   // original timing line, verbatim
	Text     string `json:"text"`     // caption text, lines joined with "\n"
}

const (
	// RangeSeparator must appear on every accepted timing line.
	RangeSeparator = "-->"

	// MediaType is the SubRip media type reported by browsers.
	MediaType = "application/x-subrip"

	// Ext is the SubRip file extension.
	Ext = ".srt"
)
