package main

import (
	"fmt"
	"path/filepath"

	"github.com/MimeLyc/srt-translator/internal/language"
	"github.com/MimeLyc/srt-translator/internal/service"
	"github.com/MimeLyc/srt-translator/internal/subtitle"
	"github.com/spf13/cobra"
)

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var targetLanguage string
	var outPath string

	cmd := &cobra.Command{
		Use:   "translate <file.srt>",
		Short: "Translate a subtitle file once and write the result next to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			orchestrator, err := newOrchestrator(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return translateFile(cmd, service.NewSession(orchestrator), args[0], targetLanguage, outPath)
		},
	}

	cmd.Flags().StringVarP(&targetLanguage, "lang", "l", language.Default, "Target language name, e.g. Spanish")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output path (default: <name>_<code>.srt next to the input)")
	return cmd
}

func translateFile(cmd *cobra.Command, session *service.Session, path, targetLanguage, outPath string) error {
	raw, err := subtitle.ReadFile(path)
	if err != nil {
		return err
	}

	if _, err := session.Load(filepath.Base(path), subtitle.MediaType, []byte(raw)); err != nil {
		return err
	}
	view, err := session.Translate(cmd.Context(), targetLanguage)
	if err != nil {
		return err
	}

	if outPath == "" {
		name, _, err := session.Download()
		if err != nil {
			return err
		}
		outPath = filepath.Join(filepath.Dir(path), name)
	}

	if err := subtitle.WriteFile(outPath, view.Entries); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", len(view.Entries), outPath)
	return nil
}
