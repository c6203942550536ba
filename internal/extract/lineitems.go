package extract

import (
	"regexp"
	"strings"

	"github.com/hrryniu/invoice-ingest/internal/entity"
)

// reLineItem matches one invoice position laid out the way Polish invoice
// tables are usually OCRed:
//
//	<name> <qty> <unit> <net price> <vat rate> <line gross>
//	Usługa księgowa  1  szt.  300,00  23%  369,00
var reLineItem = regexp.MustCompile(
	`(?i)^(.{2,60}?)\s+(\d+(?:[.,]\d+)?)\s+(szt\.?|usł\.?|godz\.?|kg|op\.?|m|l)\s+(\d[\d ]*(?:[.,]\d{1,2})?)\s+((?:23|8|5|0)\s?%|zw\.?)\s+(\d[\d ]*[.,]\d{2})\s*$`,
)

const maxLineItems = 50

// scanLineItems walks the text line by line and collects every row that
// looks like an invoice position. Tolerant: rows that do not match are
// simply skipped, a malformed table never fails extraction.
func scanLineItems(text string) []entity.LineItem {
	var items []entity.LineItem
	for _, line := range strings.Split(text, "\n") {
		m := reLineItem.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		item := entity.LineItem{Name: strings.TrimSpace(m[1])}
		if qty, err := ParseAmount(m[2]); err == nil {
			item.Quantity = f64Ptr(qty)
		}
		unit := strings.TrimSuffix(strings.ToLower(m[3]), ".")
		item.Unit = strPtr(unit)
		if net, err := ParseAmount(m[4]); err == nil {
			item.NetPrice = f64Ptr(net)
		}
		rate := strings.ReplaceAll(strings.ToLower(m[5]), " ", "")
		item.VATRate = strPtr(rate)
		if gross, err := ParseAmount(m[6]); err == nil {
			item.LineGross = f64Ptr(gross)
		}

		items = append(items, item)
		if len(items) == maxLineItems {
			break
		}
	}
	return items
}
