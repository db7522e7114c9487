package usecase

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ArbaazShaikh07/Ecomlytics/internal/core/domain"
)

// Row is one raw tabular record keyed by column name.
type Row map[string]string

// ReadRows parses a column-headered delimited file into raw rows plus the
// header in source order. Malformed input is an invalid-input error.
func ReadRows(source io.Reader) ([]Row, []string, error) {
	reader := csv.NewReader(source)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, domain.WrapError(domain.ErrInvalidInput, "parse csv", err)
	}
	if len(records) == 0 {
		return nil, nil, domain.WrapError(domain.ErrInvalidInput, "parse csv", errors.New("missing header row"))
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = strings.TrimSpace(name)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(header))
		for i, value := range record {
			if i < len(header) {
				row[header[i]] = strings.TrimSpace(value)
			}
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

// fingerprint identifies a full row for duplicate detection.
func (r Row) fingerprint(header []string) string {
	parts := make([]string, len(header))
	for i, column := range header {
		parts[i] = r[column]
	}
	return strings.Join(parts, "\x1f")
}

func requireColumns(header []string, names ...string) error {
	present := make(map[string]bool, len(header))
	for _, column := range header {
		present[column] = true
	}
	for _, name := range names {
		if !present[name] {
			return domain.WrapError(domain.ErrInvalidInput, "validate columns", fmt.Errorf("missing required column %q", name))
		}
	}
	return nil
}

func hasColumn(header []string, name string) bool {
	for _, column := range header {
		if column == name {
			return true
		}
	}
	return false
}

// coerceInt mimics lenient numeric coercion: integers pass through, decimal
// strings truncate, anything else falls back.
func coerceInt(s string, fallback int) int {
	v := strings.TrimSpace(s)
	if v == "" {
		return fallback
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f)
	}
	return fallback
}

func coerceFloat(s string, fallback float64) float64 {
	v := strings.TrimSpace(s)
	if v == "" {
		return fallback
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return fallback
}
