package file

import (
	"path/filepath"
	"strings"
)

// TrimExt removes a trailing ext from path, matching case-insensitively.
// A leading dot on ext is optional. Other extensions are left alone.
func TrimExt(path, ext string) string {
	ext = normalizeExt(ext)
	if ext == "" || len(path) < len(ext) {
		return path
	}
	if strings.EqualFold(path[len(path)-len(ext):], ext) {
		return path[:len(path)-len(ext)]
	}
	return path
}

// WithSuffix inserts "_"+suffix between the base name and ext, removing ext
// from the base name first when present:
// WithSuffix("a/movie.srt", "es", ".srt") == "a/movie_es.srt".
func WithSuffix(path, suffix, ext string) string {
	if path == "" {
		return path
	}
	name := TrimExt(filepath.Base(path), ext)
	if suffix != "" {
		name += "_" + suffix
	}
	return filepath.Join(filepath.Dir(path), name+normalizeExt(ext))
}

func normalizeExt(ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		return "." + ext
	}
	return ext
}
