package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/biztime/internal/apperrors"
	enc "github.com/MrJamesThe3rd/biztime/internal/encoding"
)

const maxRows = 5000

var (
	ErrNoHeader    = apperrors.New(apperrors.ErrInvalidRequest, "no header row with a name column found")
	ErrTooManyRows = apperrors.New(apperrors.ErrInvalidRequest, fmt.Sprintf("directory files are limited to %d rows", maxRows))
)

// Row is one company entry read from a directory file.
type Row struct {
	Line        int
	Name        string
	Description string
	// Industries holds industry codes, separated by "|" in the file.
	Industries []string
}

// header aliases, compared case-insensitively.
var (
	nameCols        = []string{"name", "company", "company name"}
	descriptionCols = []string{"description", "desc"}
	industryCols    = []string{"industries", "industry", "industry codes"}
)

// record is a CSV record with the file line it started on. Blank lines are
// skipped by the CSV reader, so indexes alone do not give line numbers.
type record struct {
	line   int
	fields []string
}

type columns struct {
	name, description, industries int
}

// Parse reads a company directory exported from a spreadsheet. Rows before
// the header are ignored, as are blank rows. The delimiter may be a comma
// or a semicolon.
func Parse(r io.Reader) ([]Row, string, error) {
	utf8r, charset, err := enc.ToUTF8(r)
	if err != nil {
		return nil, "", fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, "", fmt.Errorf("read directory: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(string(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := readRecords(reader)
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, charset, apperrors.New(apperrors.ErrInvalidRequest, parseErr.Error())
		}

		return nil, charset, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := findHeader(records)
	if !ok {
		return nil, charset, ErrNoHeader
	}

	rows, err := parseRows(cols, records[headerIdx+1:])
	if err != nil {
		return nil, charset, err
	}

	return rows, charset, nil
}

func readRecords(reader *csv.Reader) ([]record, error) {
	var records []record

	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}

		if err != nil {
			return nil, err
		}

		line, _ := reader.FieldPos(0)
		records = append(records, record{line: line, fields: fields})
	}
}

// sniffDelimiter picks ';' when the first non-empty line has more semicolons than commas.
func sniffDelimiter(data string) rune {
	for line := range strings.Lines(data) {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.Count(line, ";") > strings.Count(line, ",") {
			return ';'
		}

		return ','
	}

	return ','
}

func findHeader(records []record) (columns, int, bool) {
	for i, rec := range records {
		cols := columns{name: -1, description: -1, industries: -1}

		for j, cell := range rec.fields {
			switch label := strings.ToLower(strings.TrimSpace(cell)); {
			case matches(label, nameCols) && cols.name < 0:
				cols.name = j
			case matches(label, descriptionCols) && cols.description < 0:
				cols.description = j
			case matches(label, industryCols) && cols.industries < 0:
				cols.industries = j
			}
		}

		if cols.name >= 0 {
			return cols, i, true
		}
	}

	return columns{}, 0, false
}

func matches(label string, aliases []string) bool {
	for _, alias := range aliases {
		if label == alias {
			return true
		}
	}

	return false
}

func parseRows(cols columns, records []record) ([]Row, error) {
	rows := make([]Row, 0, len(records))

	for _, rec := range records {
		if strings.TrimSpace(strings.Join(rec.fields, "")) == "" {
			continue
		}

		if len(rows) == maxRows {
			return nil, ErrTooManyRows
		}

		rows = append(rows, Row{
			Line:        rec.line,
			Name:        cell(rec.fields, cols.name),
			Description: cell(rec.fields, cols.description),
			Industries:  splitCodes(cell(rec.fields, cols.industries)),
		})
	}

	return rows, nil
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[idx])
}

func splitCodes(s string) []string {
	var codes []string

	for code := range strings.SplitSeq(s, "|") {
		if code = strings.TrimSpace(code); code != "" {
			codes = append(codes, code)
		}
	}

	return codes
}
