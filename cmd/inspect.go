package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/MimeLyc/srt-translator/internal/language"
	"github.com/MimeLyc/srt-translator/internal/subtitle"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const inspectTextWidth = 60

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "inspect <file.srt>",
		Short:       "Parse a subtitle file and print its entries",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := subtitle.ReadFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			renderEntries(out, subtitle.Parse(raw), isTerminal(out))
			return nil
		},
	}
}

func renderEntries(w io.Writer, entries []subtitle.Entry, decorate bool) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	if decorate {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	tw.AppendHeader(table.Row{"#", "Sequence", "Timing", "Text"})
	for _, entry := range entries {
		tw.AppendRow(table.Row{strconv.Itoa(entry.Index), entry.Sequence, entry.Timing, entry.Text})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, WidthMax: inspectTextWidth},
	})
	tw.Render()

	source := language.NameOf(subtitle.DetectLanguage(entries))
	if source == "" {
		source = "unknown"
	}
	fmt.Fprintf(w, "%d entries, source language: %s\n", len(entries), source)
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
