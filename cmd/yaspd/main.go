package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ibengeu/YASP-sub006/internal/api"
	"github.com/ibengeu/YASP-sub006/internal/config"
	"github.com/ibengeu/YASP-sub006/internal/workspace"
)

func main() {
	cfg := config.Parse()

	// Configure logging format.
	var logHandler slog.Handler
	if cfg.LogFormat == "text" {
		logHandler = slog.NewTextHandler(os.Stdout, nil)
	} else {
		logHandler = slog.NewJSONHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(logHandler))

	// Create the document workspace.
	ws, err := workspace.New(workspace.Config{
		CacheSize:           cfg.CacheSize,
		MaxRevisions:        cfg.MaxRevisions,
		CompressCutoffBytes: cfg.CompressCutoff,
		MaxDocumentBytes:    cfg.MaxDocumentBytes,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create workspace: %v\n", err)
		os.Exit(1)
	}

	// Register Prometheus open-documents gauge.
	api.RegisterOpenDocumentsGauge(func() float64 {
		return float64(ws.OpenCount())
	})

	srv := api.NewServer(ws, api.WithCollapseThreshold(cfg.CollapseThreshold))

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	done := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig.String())

		// Give in-flight requests 30 seconds to complete.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			slog.Error("http server shutdown error", "error", err)
		}
		close(done)
	}()

	slog.Info("yaspd starting", "addr", cfg.Addr)

	if cfg.TLS {
		err = httpServer.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
	} else {
		err = httpServer.ListenAndServe()
	}
	if err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	<-done
	slog.Info("shutdown complete")
}
