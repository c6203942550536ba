package ocr

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/hrryniu/invoice-ingest/constants"
)

// extractPDF tries the native text layer first, then falls back to
// rasterizing the first page and running OCR on it. Any hard failure on
// this path is recoverable: the result is empty text with zero confidence
// and a diagnostic warning, never fabricated content.
func (e *Extractor) extractPDF(ctx context.Context, data []byte) ExtractionResult {
	res := ExtractionResult{SourceType: constants.MediaTypePDF, Language: e.cfg.Language}

	pages, err := pdfPageCount(data)
	if err != nil {
		e.logger.Warn("pdf validation failed, returning zero-confidence fallback", "error", err)
		res.Method = "pdf-fallback"
		res.Warnings = append(res.Warnings, fmt.Sprintf("invalid pdf: %v", err))
		return res
	}
	res.Pages = pages

	path, cleanup, err := writeTemp(data, "pdf")
	if err != nil {
		res.Method = "pdf-fallback"
		res.Warnings = append(res.Warnings, fmt.Sprintf("temp file: %v", err))
		return res
	}
	defer cleanup()

	// Native text layer.
	if text, warns, err := e.pdfToText(ctx, path); err == nil {
		res.Warnings = append(res.Warnings, warns...)
		text = Normalize(text)
		if len(text) >= e.cfg.MinTextLayerChars {
			res.Text = text
			res.Method = "pdf-text"
			res.Confidence = 1.0 // a real text layer is not an OCR guess
			return res
		}
		e.logger.Debug("pdf text layer too short, rasterizing", "chars", len(text))
	} else {
		res.Warnings = append(res.Warnings, warns...)
		e.logger.Warn("pdftotext failed, rasterizing", "error", err)
	}

	// Scanned PDF: rasterize the first page and OCR it.
	text, conf, warns, err := e.pdfToOCR(ctx, path)
	res.Warnings = append(res.Warnings, warns...)
	if err != nil {
		e.logger.Warn("pdf rasterization/ocr failed, returning zero-confidence fallback", "error", err)
		res.Method = "pdf-fallback"
		res.Text = ""
		res.Confidence = 0
		res.Warnings = append(res.Warnings, fmt.Sprintf("raster ocr: %v", err))
		return res
	}
	res.Text = Normalize(text)
	res.Method = "pdf-ocr"
	res.Confidence = conf
	return res
}

// pdfPageCount validates the document and counts its pages in-process,
// before any external tool is spawned.
func pdfPageCount(data []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("pdf page count: %w", err)
	}
	if count < 1 {
		return 0, fmt.Errorf("pdf has no pages")
	}
	return count, nil
}

func (e *Extractor) pdfToText(ctx context.Context, path string) (text string, warnings []string, err error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", []string{string(errb)}, err
	}
	return string(out), nil, nil
}

func (e *Extractor) pdfToOCR(ctx context.Context, path string) (text string, conf float64, warnings []string, err error) {
	tmpDir := filepath.Dir(path)
	prefix := filepath.Join(tmpDir, "page")

	// pdftoppm -r 300 -png -f 1 -l 1 <in.pdf> <tmp/page>
	// Only the first page: amounts and party labels sit there, and OCR of
	// full scans dominates latency.
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm,
		"-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", "-f", "1", "-l", "1", path, prefix)
	if err != nil {
		return "", 0, []string{string(errb)}, fmt.Errorf("pdftoppm: %w", err)
	}

	// pdftoppm names output page-1.png, page-01.png, ... depending on count
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return "", 0, []string{"pdftoppm produced no images"}, fmt.Errorf("no pages rendered")
	}

	txt, warns, err := e.tesseractOCR(ctx, matches[0])
	if err != nil {
		return "", 0, warns, err
	}

	conf = heuristicConfidence(txt)
	if e.cfg.EnableTSVConfidence {
		if c, w, err2 := e.tesseractTSVConfidence(ctx, matches[0]); err2 == nil && c > 0 {
			conf = 0.7*c + 0.3*conf
			warns = append(warns, w...)
		}
	}
	if conf > 1.0 {
		conf = 1.0
	}
	return txt, conf, warns, nil
}
