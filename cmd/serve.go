package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MimeLyc/srt-translator/internal/apperr"
	"github.com/MimeLyc/srt-translator/internal/config"
	"github.com/MimeLyc/srt-translator/internal/httpapi"
	"github.com/MimeLyc/srt-translator/internal/llm"
	"github.com/MimeLyc/srt-translator/internal/service"
	"github.com/MimeLyc/srt-translator/internal/translator"
	"github.com/MimeLyc/srt-translator/pkg/icron"
	"github.com/MimeLyc/srt-translator/pkg/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	sweepJobName    = "session-sweep"
	shutdownTimeout = 10 * time.Second
)

type cronEngine interface {
	Start()
	Stop() context.Context
}

type httpServer interface {
	ListenAndServe(addr string) error
	Shutdown(ctx context.Context) error
}

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the session sweeper",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(runCtx, cfg)
		},
	}
}

func newOrchestrator(ctx context.Context, cfg *config.Config) (*translator.Orchestrator, error) {
	generator, err := llm.NewGenerator(ctx, cfg.LLMClientConfig())
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrConfig, "failed to create text generation client")
	}
	return translator.New(generator, translator.WithTemperature(cfg.LLM.Temperature)), nil
}

func runServe(ctx context.Context, cfg *config.Config) error {
	orchestrator, err := newOrchestrator(ctx, cfg)
	if err != nil {
		return err
	}

	session := service.NewSession(orchestrator,
		service.WithIdleTTL(time.Duration(cfg.Session.IdleTTLMinutes)*time.Minute))

	scheduler := icron.NewScheduler()
	if err := scheduler.Add(sweepJobName, cfg.Session.SweepCron, func() {
		session.SweepIdle(time.Now())
	}); err != nil {
		return apperr.Wrap(err, apperr.ErrConfig, "failed to schedule session sweep")
	}

	server := httpapi.NewServer(session,
		httpapi.WithUI(cfg.HTTP.UIStaticDir, cfg.HTTP.UIEnabled),
		httpapi.WithCORSOrigins(cfg.HTTP.CORSOrigins),
		httpapi.WithLimits(cfg.HTTP.MaxUploadBytes, cfg.HTTP.MaxBodyBytes),
		httpapi.WithSweepSchedule(scheduler, sweepJobName),
	)

	return runWithComponents(ctx, cfg, scheduler, server)
}

// runWithComponents runs the HTTP server until ctx is done or the server
// fails, then shuts both components down.
func runWithComponents(ctx context.Context, cfg *config.Config, cron cronEngine, httpSrv httpServer) error {
	cron.Start()
	defer func() {
		select {
		case <-cron.Stop().Done():
		case <-time.After(shutdownTimeout):
			log.Warn("Timed out waiting for scheduled jobs to finish")
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP server listening on %s", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(cfg.HTTP.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
