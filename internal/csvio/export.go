package csvio

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/shelfglow/inventory-backend/internal/models"
)

// shopifyHeader matches the column set a Shopify product CSV import expects.
var shopifyHeader = []string{
	"Handle",
	"Title",
	"Body",
	"Vendor",
	"Variant SKU",
	"Variant Inventory Qty",
	"Variant Price",
	"Tags",
}

// RenderShopify projects the records into the Shopify dialect. Missing
// optional fields render as empty strings; quoting follows common CSV rules
// via encoding/csv.
func RenderShopify(products []models.Product) (string, error) {
	var sb strings.Builder

	w := csv.NewWriter(&sb)

	if err := w.Write(shopifyHeader); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}

	for _, p := range products {
		price := ""
		if p.Price != nil {
			price = p.Price.String()
		}

		record := []string{
			strings.ToLower(p.Code),
			p.Name,
			p.Description,
			p.Brand,
			p.Code,
			strconv.Itoa(p.StockQty),
			price,
			strings.Join(p.Tags, ", "),
		}

		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("writing record: %w", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}

	return sb.String(), nil
}

// excelHeader mirrors a pre-agreed external spreadsheet template, blank
// leading column included. Order and naming must not change even though the
// canonical model spells these fields differently.
var excelHeader = []string{
	"",
	"Barcode",
	"CODE",
	"PRODUCT NAME",
	"PRICE",
	"PRODUCT CATEGORY",
	"IMAGE URL",
	"mL",
}

// RenderExcel projects the records into the spreadsheet template layout.
// Only values containing a comma are quoted (internal quotes doubled); no
// other escaping is applied, to keep the output byte-compatible with the
// sheet the template was copied from.
func RenderExcel(products []models.Product) string {
	var sb strings.Builder

	writeExcelRow(&sb, excelHeader)

	for _, p := range products {
		price := ""
		if p.Price != nil {
			price = p.Price.String()
		}

		volume := ""
		if p.Volume != nil {
			volume = p.Volume.String()
		}

		writeExcelRow(&sb, []string{
			"",
			p.Barcode,
			p.Code,
			p.Name,
			price,
			p.Category,
			p.ImageURL,
			volume,
		})
	}

	return sb.String()
}

func writeExcelRow(sb *strings.Builder, values []string) {
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(',')
		}

		if strings.Contains(v, ",") {
			sb.WriteByte('"')
			sb.WriteString(strings.ReplaceAll(v, `"`, `""`))
			sb.WriteByte('"')
		} else {
			sb.WriteString(v)
		}
	}

	sb.WriteByte('\n')
}
