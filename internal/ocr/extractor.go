package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hrryniu/invoice-ingest/constants"
	"github.com/hrryniu/invoice-ingest/internal/common"
)

// Config controls the external tools used for text extraction.
type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Language string // tesseract language(s), default "pol+eng"
	DPI      int    // rasterization DPI for scanned PDFs, default 300

	TessdataDir         string
	EnableTSVConfidence bool

	// MinTextLayerChars: a PDF text layer shorter than this (after
	// normalization) is treated as scanned-only and the first page is
	// rasterized for OCR instead.
	MinTextLayerChars int
}

// ExtractionResult is the text-extraction outcome for one document.
type ExtractionResult struct {
	Text       string
	Pages      int
	SourceType constants.MediaType
	Method     string // "pdf-text" | "pdf-ocr" | "pdf-fallback" | "image-ocr"
	Language   string
	Duration   time.Duration
	Warnings   []string
	// Confidence is the OCR engine's own estimate (0..1), independent of
	// the field-level score computed downstream. Zero for the fallback path.
	Confidence float64
}

// Extractor turns raw document bytes into plain text via the PDF text layer
// or OCR.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "pol+eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.MinTextLayerChars <= 0 {
		cfg.MinTextLayerChars = 32
	}
	return &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// Extract picks a strategy based on the declared media type. PDF extraction
// failures are recoverable: the result carries zero confidence and a
// diagnostic warning instead of text. Image OCR failures are hard errors.
func (e *Extractor) Extract(ctx context.Context, data []byte, mediaType constants.MediaType) (ExtractionResult, error) {
	start := time.Now()
	e.logger.Debug("starting text extraction", "media_type", mediaType, "bytes", len(data))

	switch mediaType {
	case constants.MediaTypePDF:
		res := e.extractPDF(ctx, data)
		res.Duration = time.Since(start)
		return res, nil
	case constants.MediaTypeJPEG, constants.MediaTypePNG:
		res, err := e.extractImage(ctx, data, mediaType)
		res.Duration = time.Since(start)
		return res, err
	default:
		e.logger.Error("unsupported media type", "media_type", mediaType)
		return ExtractionResult{}, fmt.Errorf("%w: %q", common.ErrUnsupportedMediaType, mediaType)
	}
}

// writeTemp materializes document bytes as a file for the external tools.
// Returns the path and a cleanup func.
func writeTemp(data []byte, ext string) (string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "ingest-doc-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	path := filepath.Join(tmpDir, "doc."+ext)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}
