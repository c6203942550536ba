package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hrryniu/invoice-ingest/constants"
	"github.com/hrryniu/invoice-ingest/internal/common"
	"github.com/hrryniu/invoice-ingest/internal/entity"
	"github.com/hrryniu/invoice-ingest/internal/ocr"
	"github.com/hrryniu/invoice-ingest/internal/pipeline"
)

// runocr runs the ingestion pipeline once on a local file and prints the
// result as JSON. Handy for checking label tables against real documents.
func main() {
	var (
		path    = flag.String("file", "", "path to a pdf/jpeg/png document")
		class   = flag.String("class", "", "document class: invoice or expense (default: inferred from filename)")
		timeout = flag.Duration("timeout", 2*time.Minute, "processing timeout")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if *path == "" {
		logger.Error("usage", "cmd", "runocr -file <document> [-class invoice|expense]")
		os.Exit(2)
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		logger.Error("read file", "path", *path, "error", err)
		os.Exit(1)
	}
	mediaType, ok := constants.MapExtToMediaType(filepath.Ext(*path))
	if !ok {
		logger.Error("unsupported file extension", "path", *path)
		os.Exit(2)
	}

	doc := &entity.Document{
		Bytes:     data,
		MediaType: mediaType,
		Filename:  filepath.Base(*path),
	}
	if *class != "" {
		dc, ok := constants.ParseDocumentClass(*class)
		if !ok {
			logger.Error("invalid class", "class", *class)
			os.Exit(2)
		}
		doc.Class = dc
	}

	cfg, err := common.LoadConfig()
	if err != nil {
		logger.Error("config", "error", err)
		os.Exit(1)
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	res, err := proc.Process(ctx, doc)
	if err != nil {
		logger.Error("processing failed", "error", err)
		os.Exit(1)
	}
	logger.Info("processed", "duration_ms", time.Since(start).Milliseconds(), "confidence", res.Confidence)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
}
