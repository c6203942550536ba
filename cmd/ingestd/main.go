package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hrryniu/invoice-ingest/internal/common"
	"github.com/hrryniu/invoice-ingest/internal/export"
	"github.com/hrryniu/invoice-ingest/internal/jobs"
	"github.com/hrryniu/invoice-ingest/internal/ocr"
	"github.com/hrryniu/invoice-ingest/internal/pipeline"
	"github.com/hrryniu/invoice-ingest/internal/server"
)

func main() {
	cfg, err := common.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := common.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	extractor := ocr.NewExtractor(ocr.Config{
		Pdftotext:           cfg.OCR.Pdftotext,
		Pdftoppm:            cfg.OCR.Pdftoppm,
		Tesseract:           cfg.OCR.Tesseract,
		Language:            cfg.OCR.Language,
		DPI:                 cfg.OCR.DPI,
		TessdataDir:         cfg.OCR.TessdataDir,
		EnableTSVConfidence: cfg.OCR.TSVConfidence,
		MinTextLayerChars:   cfg.OCR.MinTextLayerChars,
	}, logger)

	proc := pipeline.NewProcessor(extractor, logger)

	manager := jobs.NewManager(proc, logger,
		jobs.WithWorkers(cfg.Queue.Workers),
		jobs.WithQueueSize(cfg.Queue.Size),
		jobs.WithProcessTimeout(cfg.Queue.ProcessTimeout),
		jobs.WithRetention(cfg.Queue.Retention),
	)
	manager.StartSweeper(ctx, cfg.Queue.SweepInterval)

	handler := server.NewIngestHandler(manager, export.NewService(logger), cfg.Server.MaxUploadBytes, logger)
	router := server.NewRouter(handler, logger)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr, "workers", cfg.Queue.Workers)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", "error", err)
	}
	manager.Shutdown(shutdownCtx)
	logger.Info("stopped")
}
