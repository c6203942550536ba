package export

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/hrryniu/invoice-ingest/internal/entity"
)

// Service produces XLSX bytes from finished extraction results, so a
// bookkeeper can review recognized fields outside the app.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ResultXLSX returns a workbook with a summary sheet and a recognized-fields
// audit sheet for one extraction result.
func (s *Service) ResultXLSX(res *entity.ExtractionResult) ([]byte, error) {
	f := excelize.NewFile()

	if err := s.writeSummary(f, res); err != nil {
		return nil, err
	}
	if err := s.writeFields(f, res); err != nil {
		return nil, err
	}

	// excelize starts with a default sheet; drop it in favor of ours
	_ = f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex("Summary"); err == nil {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Debug("exported result workbook", "bytes", buf.Len(), "fields", len(res.Fields))
	return buf.Bytes(), nil
}

func (s *Service) writeSummary(f *excelize.File, res *entity.ExtractionResult) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	write := func(row int, key string, value any) {
		cellK, _ := excelize.CoordinatesToCellName(1, row)
		cellV, _ := excelize.CoordinatesToCellName(2, row)
		_ = f.SetCellValue(sheet, cellK, key)
		_ = f.SetCellValue(sheet, cellV, value)
	}

	row := 1
	write(row, "Source", res.SourceDescription)
	row++
	write(row, "Confidence", res.Confidence)
	row++

	switch {
	case res.Invoice != nil:
		inv := res.Invoice
		write(row, "Invoice number", deref(inv.InvoiceNumber))
		row++
		write(row, "Issue date", deref(inv.IssueDate))
		row++
		write(row, "Due date", deref(inv.DueDate))
		row++
		write(row, "Buyer", deref(inv.BuyerName))
		row++
		write(row, "Buyer NIP", deref(inv.BuyerTaxID))
		row++
		write(row, "Net", derefF(inv.TotalNet))
		row++
		write(row, "VAT", derefF(inv.TotalVAT))
		row++
		write(row, "Gross", derefF(inv.TotalGross))
		row++
	case res.Expense != nil:
		exp := res.Expense
		write(row, "Document number", deref(exp.DocumentNumber))
		row++
		write(row, "Date", deref(exp.Date))
		row++
		write(row, "Counterpart", deref(exp.CounterpartName))
		row++
		write(row, "Counterpart NIP", deref(exp.CounterpartNIP))
		row++
		if exp.Category != nil {
			write(row, "Category", string(*exp.Category))
			row++
		}
		write(row, "Net", derefF(exp.NetAmount))
		row++
		write(row, "VAT", derefF(exp.VATAmount))
		row++
		write(row, "Gross", derefF(exp.GrossAmount))
		row++
	}

	for _, v := range res.Validations {
		write(row, "Check: "+v.Name, v.OK)
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 22)
	_ = f.SetColWidth(sheet, "B", "B", 40)
	return nil
}

func (s *Service) writeFields(f *excelize.File, res *entity.ExtractionResult) error {
	const sheet = "Fields"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Label", "Value", "Page", "Confidence"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, fld := range res.Fields {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, fld.Label)
		write(2, fld.Value)
		if fld.Page != nil {
			write(3, *fld.Page)
		}
		if fld.Confidence != nil {
			write(4, *fld.Confidence)
		}
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 24)
	_ = f.SetColWidth(sheet, "B", "B", 48)
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefF(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
