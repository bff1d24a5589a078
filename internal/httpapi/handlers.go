package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/MimeLyc/srt-translator/internal/apperr"
	"github.com/MimeLyc/srt-translator/internal/language"
	"github.com/MimeLyc/srt-translator/internal/subtitle"
	"github.com/MimeLyc/srt-translator/pkg/log"
	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
)

type healthResponse struct {
	OK        bool       `json:"ok"`
	NextSweep *time.Time `json:"next_sweep,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{OK: true}
	if s.schedule != nil {
		if info, ok := s.schedule.Info(s.sweepName, time.Now()); ok && !info.Next.IsZero() {
			next := info.Next
			resp.NextSweep = &next
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type languagesResponse struct {
	Default   string              `json:"default"`
	Languages []language.Language `json:"languages"`
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, languagesResponse{
		Default:   language.Default,
		Languages: language.All(),
	})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeBodyError(w, err, s.maxBodyBytes)
		return
	}
	writeJSON(w, http.StatusOK, subtitle.Parse(string(body)))
}

type reconstructRequest struct {
	Entries []subtitle.Entry `json:"entries"`
}

func (s *Server) handleReconstruct(w http.ResponseWriter, r *http.Request) {
	var req reconstructRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBodyError(w, err, s.maxBodyBytes)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, subtitle.Reconstruct(req.Entries))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	s.session.Reset()
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeBodyError(w, err, s.maxUploadBytes)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing multipart field \"file\"", apperr.ErrValidation.String())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read uploaded file", apperr.ErrValidation.String())
		return
	}

	view, err := s.session.Load(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type translateRequest struct {
	Language string `json:"language"`
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBodyError(w, err, s.maxBodyBytes)
		return
	}

	view, err := s.session.Translate(r.Context(), req.Language)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type updateEntryRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "entry index must be a number", apperr.ErrValidation.String())
		return
	}

	var req updateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBodyError(w, err, s.maxBodyBytes)
		return
	}

	view, err := s.session.UpdateText(index, req.Text)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name, content, err := s.session.Download()
	if err != nil {
		writeAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", subtitle.MediaType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, content)
}

// statusFor maps an error kind to the HTTP status it is reported with
func statusFor(t apperr.ErrorType) int {
	switch t {
	case apperr.ErrInputType, apperr.ErrValidation:
		return http.StatusBadRequest
	case apperr.ErrNotFound:
		return http.StatusNotFound
	case apperr.ErrParse, apperr.ErrEmptyResponse:
		return http.StatusUnprocessableEntity
	case apperr.ErrTranslation:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeAppError(w http.ResponseWriter, err error) {
	kind := apperr.TypeOf(err)
	status := statusFor(kind)
	if status >= http.StatusInternalServerError {
		detail := err.Error()
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			detail = appErr.Detail()
		}
		log.Error("Request failed: %s", detail)
	}
	writeError(w, status, apperr.Message(err), kind.String())
}

func writeBodyError(w http.ResponseWriter, err error, limit int64) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || errors.Is(err, multipart.ErrMessageTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Request is too large. The limit is %s.", humanize.Bytes(uint64(limit))),
			apperr.ErrValidation.String())
		return
	}
	writeError(w, http.StatusBadRequest, "invalid request body", apperr.ErrValidation.String())
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg, kind string) {
	writeJSON(w, status, map[string]any{
		"error": msg,
		"kind":  kind,
	})
}
