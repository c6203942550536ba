package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hrryniu/invoice-ingest/constants"
	"github.com/hrryniu/invoice-ingest/internal/contract"
	"github.com/hrryniu/invoice-ingest/internal/entity"
	"github.com/hrryniu/invoice-ingest/internal/extract"
	"github.com/hrryniu/invoice-ingest/internal/ocr"
)

// TextExtractor is the OCR stage contract; *ocr.Extractor satisfies it and
// tests substitute stubs.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, mediaType constants.MediaType) (ocr.ExtractionResult, error)
}

// Processor coordinates text extraction, field extraction, confidence
// scoring and result validations for one document.
type Processor struct {
	logger *slog.Logger
	text   TextExtractor
}

func NewProcessor(text TextExtractor, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger, text: text}
}

// Process runs the full pipeline on one document. The returned result is
// complete and self-describing; an error is returned only for hard failures
// (unsupported media type, image OCR breakage). Recoverable PDF extraction
// failures come back as a zero-confidence result with a failed
// text_extracted validation, never as fabricated content.
func (p *Processor) Process(ctx context.Context, doc *entity.Document) (*entity.ExtractionResult, error) {
	class := doc.ResolveClass()

	ocrRes, err := p.text.Extract(ctx, doc.Bytes, doc.MediaType)
	if err != nil {
		p.logger.Error("text extraction failed", "media_type", doc.MediaType, "error", err)
		return nil, fmt.Errorf("extract text: %w", err)
	}
	p.logger.Debug("text extraction done",
		"method", ocrRes.Method,
		"pages", ocrRes.Pages,
		"chars", len(ocrRes.Text),
		"ocr_confidence", ocrRes.Confidence,
	)

	res := &entity.ExtractionResult{
		SourceDescription: sourceDescription(doc, &ocrRes),
		RawText:           ocrRes.Text,
	}

	switch class {
	case constants.ClassInvoice:
		rec, fields := extract.ExtractInvoiceFields(ocrRes.Text)
		res.Invoice = &rec
		res.Fields = fields
		res.Confidence = extract.Score(extract.CountInvoiceFields(&rec), extract.ExpectedInvoiceFields)
	default:
		rec, fields := extract.ExtractExpenseFields(ocrRes.Text)
		res.Expense = &rec
		res.Fields = fields
		res.Confidence = extract.Score(extract.CountExpenseFields(&rec), extract.ExpectedExpenseFields)
	}

	res.Validations = contract.Validate(res)

	p.logger.Info("document processed",
		"class", class,
		"method", ocrRes.Method,
		"recognized_fields", len(res.Fields),
		"confidence", res.Confidence,
	)
	return res, nil
}

func sourceDescription(doc *entity.Document, ocrRes *ocr.ExtractionResult) string {
	name := doc.Filename
	if name == "" {
		name = "document"
	}
	return fmt.Sprintf("%s (%s, %s)", name, doc.MediaType, ocrRes.Method)
}
