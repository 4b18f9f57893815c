package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docslot/internal/api"
	"github.com/dgallion1/docslot/internal/generate"
	"github.com/dgallion1/docslot/internal/qbank"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	log := a.log
	cfg := a.cfg
	if err := cfg.ValidateServe(); err != nil {
		return err
	}

	rules, err := a.rules()
	if err != nil {
		return err
	}
	stats := generate.NewLLMStats(time.Hour)
	reg, err := generate.Setup(ctx, cfg, stats, log)
	if err != nil {
		return err
	}
	ix, err := qbank.Load(cfg.QBankIndex)
	switch {
	case errors.Is(err, qbank.ErrIndexNotFound):
		log.Warn("question bank index not found, search disabled", "path", cfg.QBankIndex)
		ix = nil
	case err != nil:
		return err
	}

	srv := api.NewServer(api.Services{
		Rules:    rules,
		Registry: reg,
		Stats:    stats,
		Index:    ix,
	}, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", "error", err)
		}
	}()

	log.Info("starting docslot", "port", cfg.Port, "providers", reg.List())
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
