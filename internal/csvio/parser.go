package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shelfglow/inventory-backend/internal/models"
)

// Parser turns a CSV byte stream into field-named rows. Headers are resolved
// through the HeaderMap given at construction; row order is preserved and the
// stream is consumed to completion before any row is considered valid.
type Parser struct {
	headers HeaderMap
}

func NewParser(headers HeaderMap) *Parser {
	return &Parser{headers: headers}
}

// Parse reads the whole stream. Any structural CSV error aborts the parse;
// bad data inside a well-formed row is the validator's problem, not ours.
// Values are trimmed and empty values are left out of the row entirely so
// they cannot overwrite stored data later.
func (p *Parser) Parse(r io.Reader) ([]models.ImportRow, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	// Excel loves to prepend a BOM.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	fields := make([]string, len(header))
	kept := make([]bool, len(header))

	for i, raw := range header {
		fields[i], kept[i] = p.headers.Resolve(raw)
	}

	var rows []models.ImportRow

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		row := models.ImportRow{}

		for i, value := range record {
			if i >= len(fields) || !kept[i] {
				continue
			}

			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}

			row[fields[i]] = value
		}

		if len(row) == 0 {
			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}
