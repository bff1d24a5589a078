package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/MimeLyc/srt-translator/internal/apperr"
	"github.com/MimeLyc/srt-translator/internal/language"
	"github.com/MimeLyc/srt-translator/internal/subtitle"
	"github.com/MimeLyc/srt-translator/pkg/log"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	xlanguage "golang.org/x/text/language"
)

const (
	msgNoContent     = "No file content to translate."
	msgNoFile        = "Please select a .srt file first."
	msgEmptyResponse = "The translation service returned an empty response."
	msgParseFailed   = "Failed to parse the translated SRT content. The format may be invalid."
	msgNothingToSave = "There are no translated subtitles to download."
)

// Session is the single in-memory editing session: one selected file, its
// latest translation and the user's edits. It is safe for concurrent use.
type Session struct {
	translator Translator
	idleTTL    time.Duration
	now        func() time.Time

	group singleflight.Group

	mu sync.Mutex
	st sessionState
}

type sessionState struct {
	id       string
	fileName string
	document string
	source   xlanguage.Tag
	target   string
	status   State
	err      error
	entries  []subtitle.Entry
	touched  time.Time
}

type Option func(*Session)

// WithIdleTTL drops a session left untouched for longer than ttl; 0 disables
func WithIdleTTL(ttl time.Duration) Option {
	return func(s *Session) {
		s.idleTTL = ttl
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

func NewSession(translator Translator, opts ...Option) *Session {
	s := &Session{
		translator: translator,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.st = sessionState{status: StateIdle, touched: s.now()}
	return s
}

// Load selects a new file. Any previous translation, error and pending
// request result are discarded, also when the new file is rejected.
func (s *Session) Load(name, mediaType string, data []byte) (View, error) {
	if err := subtitle.CheckFileType(name, mediaType); err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.st = sessionState{status: StateIdle, err: err, touched: s.now()}
		return s.viewLocked(), err
	}

	document := string(data)
	source := subtitle.DetectLanguage(subtitle.Parse(document))

	s.mu.Lock()
	defer s.mu.Unlock()

	s.st = sessionState{
		id:       uuid.NewString(),
		fileName: name,
		document: document,
		source:   source,
		status:   StateIdle,
		touched:  s.now(),
	}

	log.Info("Loaded subtitle file %s (%s), source language %s", name, humanize.Bytes(uint64(len(data))), source)
	return s.viewLocked(), nil
}

// Translate requests a translation of the loaded document. Duplicate
// concurrent requests for the same file and language share one call, which
// is not cancelled when one of the callers goes away. A result arriving
// after the file or language changed is discarded.
func (s *Session) Translate(ctx context.Context, targetLanguage string) (View, error) {
	targetLanguage = strings.TrimSpace(targetLanguage)

	s.mu.Lock()
	if s.st.id == "" {
		s.mu.Unlock()
		return s.Snapshot(), apperr.New(apperr.ErrValidation, msgNoFile)
	}
	if strings.TrimSpace(s.st.document) == "" {
		s.st.status = StateFailed
		s.st.err = apperr.New(apperr.ErrValidation, msgNoContent)
		s.st.entries = nil
		s.st.touched = s.now()
		err := s.st.err
		view := s.viewLocked()
		s.mu.Unlock()
		return view, err
	}

	id, document := s.st.id, s.st.document
	s.st.target = targetLanguage
	s.st.status = StateRequesting
	s.st.err = nil
	s.st.entries = nil
	s.st.touched = s.now()
	s.mu.Unlock()

	// the shared call outlives any single caller; values of ctx are kept
	sharedCtx := context.WithoutCancel(ctx)
	key := id + "|" + targetLanguage
	res, err, shared := s.group.Do(key, func() (any, error) {
		return s.translator.Translate(sharedCtx, document, targetLanguage)
	})
	if shared {
		log.Debug("Translation request %s shared with a concurrent caller", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.st.id != id || s.st.target != targetLanguage {
		log.Info("Discarding stale translation result for %s into %s", id, targetLanguage)
		return s.viewLocked(), nil
	}

	s.st.touched = s.now()
	if err != nil {
		s.failLocked(err)
		return s.viewLocked(), err
	}

	translated, _ := res.(string)
	if translated == "" {
		err = apperr.New(apperr.ErrEmptyResponse, msgEmptyResponse).WithContext("language", targetLanguage)
		s.failLocked(err)
		return s.viewLocked(), err
	}

	entries := subtitle.Parse(translated)
	if len(entries) == 0 {
		err = apperr.New(apperr.ErrParse, msgParseFailed).WithContext("language", targetLanguage)
		log.Warn("Translated content for %s has no subtitle blocks (%d bytes)", id, len(translated))
		s.failLocked(err)
		return s.viewLocked(), err
	}

	s.st.status = StateSucceeded
	s.st.entries = entries
	log.Info("Translated %s into %s: %d entries", s.st.fileName, targetLanguage, len(entries))
	return s.viewLocked(), nil
}

// UpdateText replaces the text of one translated entry
func (s *Session) UpdateText(index int, text string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := subtitle.WithText(s.st.entries, index, text)
	if err != nil {
		return s.viewLocked(), err
	}
	s.st.entries = entries
	s.st.touched = s.now()
	return s.viewLocked(), nil
}

// Download returns the file name and content of the edited translation
func (s *Session) Download() (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.st.entries) == 0 {
		return "", "", apperr.New(apperr.ErrValidation, msgNothingToSave)
	}
	s.st.touched = s.now()

	name := subtitle.DownloadName(s.st.fileName, language.CodeFor(s.st.target))
	return name, subtitle.Reconstruct(s.st.entries), nil
}

// Reset forgets the selected file and everything derived from it
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = sessionState{status: StateIdle, touched: s.now()}
}

func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// SweepIdle resets a loaded session idle for longer than the TTL. A
// session with a request in flight is kept. It reports whether a reset
// happened.
func (s *Session) SweepIdle(now time.Time) bool {
	if s.idleTTL <= 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.st.id == "" || s.st.status == StateRequesting {
		return false
	}
	if now.Sub(s.st.touched) <= s.idleTTL {
		return false
	}

	log.Info("Dropping idle session %s (%s), idle since %s", s.st.id, s.st.fileName, humanize.Time(s.st.touched))
	s.st = sessionState{status: StateIdle, touched: now}
	return true
}

func (s *Session) failLocked(err error) {
	s.st.status = StateFailed
	s.st.err = err
	s.st.entries = nil
}

func (s *Session) viewLocked() View {
	v := View{
		ID:             s.st.id,
		FileName:       s.st.fileName,
		Size:           len(s.st.document),
		TargetLanguage: s.st.target,
		TargetCode:     language.CodeFor(s.st.target),
		State:          s.st.status,
		Entries:        make([]subtitle.Entry, len(s.st.entries)),
		UpdatedAt:      s.st.touched,
	}
	copy(v.Entries, s.st.entries)

	if v.ID != "" {
		v.SizeText = humanize.Bytes(uint64(v.Size))
	}
	if s.st.source != xlanguage.Und {
		v.SourceLanguage = s.st.source.String()
		v.SourceLanguageName = language.NameOf(s.st.source)
	}
	if s.st.err != nil {
		v.Error = apperr.Message(s.st.err)
		v.ErrorKind = apperr.TypeOf(s.st.err).String()
	}
	return v
}
