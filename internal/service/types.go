package service

import (
	"context"
	"time"

	"github.com/MimeLyc/srt-translator/internal/subtitle"
)

// Translator produces the translated raw document for a target language
type Translator interface {
	Translate(ctx context.Context, document, targetLanguage string) (string, error)
}

// State is the lifecycle of a translation request within a session
type State string

const (
	StateIdle       State = "idle"
	StateRequesting State = "requesting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// View is a copy of the session state for rendering
type View struct {
	ID                 string           `json:"id"`
	FileName           string           `json:"file_name"`
	Size               int              `json:"size"`
	SizeText           string           `json:"size_text"`
	SourceLanguage     string           `json:"source_language"`
	SourceLanguageName string           `json:"source_language_name"`
	TargetLanguage     string           `json:"target_language"`
	TargetCode         string           `json:"target_code"`
	State              State            `json:"state"`
	Error              string           `json:"error,omitempty"`
	ErrorKind          string           `json:"error_kind,omitempty"`
	Entries            []subtitle.Entry `json:"entries"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// Loaded reports whether a file is selected
func (v View) Loaded() bool {
	return v.ID != ""
}
