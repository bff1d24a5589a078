package subtitle

import (
	"path/filepath"

	"github.com/MimeLyc/srt-translator/pkg/file"
)

const fallbackCode = "translated"

// DownloadName builds the file name offered for an edited document:
// "movie.srt" with code "es" gives "movie_es.srt". Only a trailing ".srt"
// is removed, so "movie.txt" gives "movie.txt_es.srt". Directory parts of
// fileName are discarded.
func DownloadName(fileName, code string) string {
	if code == "" {
		code = fallbackCode
	}
	name := filepath.Base(fileName)
	if name == "." || name == string(filepath.Separator) {
		name = "subtitles" + Ext
	}
	return file.WithSuffix(name, code, Ext)
}
