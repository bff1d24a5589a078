package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MimeLyc/srt-translator/internal/apperr"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			reportError(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// reportError prints the user-facing message and remediation hint of a
// classified error, or the raw error otherwise.
func reportError(w io.Writer, err error) {
	kind := apperr.TypeOf(err)
	if kind == apperr.ErrUnknown {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintln(w, apperr.Message(err))
	fmt.Fprintln(w, apperr.Advice(kind))
}
