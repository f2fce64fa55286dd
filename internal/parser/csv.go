package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docentia/internal/document"
)

// csvBatchSize is how many data rows share one section.
const csvBatchSize = 20

// CSVParser handles CSV files such as grade sheets. Rows are grouped into
// sections and written as "header: value" pairs.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	doc := newDocument(baseTitle(filename))
	if len(records) == 0 {
		return doc, nil
	}

	headers := records[0]
	dataRows := records[1:]

	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := min(i+csvBatchSize, len(dataRows))

		// Line numbers are 1-indexed and skip the header row.
		addHeading(doc, 1, fmt.Sprintf("Filas %d-%d", i+2, end+1))
		for _, row := range dataRows[i:end] {
			addParagraph(doc, formatRow(headers, row))
		}
	}

	return doc, nil
}

func formatRow(headers, row []string) string {
	parts := make([]string, 0, len(row))
	for j, cell := range row {
		if j < len(headers) && headers[j] != "" {
			parts = append(parts, headers[j]+": "+cell)
		} else {
			parts = append(parts, cell)
		}
	}
	return strings.Join(parts, ", ")
}
