package csvfs

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"icebath_directory/internal/adapters/observability"
	"icebath_directory/internal/domain"
)

const utf8BOM = "\ufeff"

// readRows parses a headed CSV file loosely: short rows lose their missing
// trailing cells, long rows drop the extras, and records the reader cannot
// parse are skipped.
func readRows(path string) ([]domain.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return parseRows(f, path)
}

func parseRows(in io.Reader, name string) ([]domain.Row, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []domain.Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", name, err)
	}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		header[i] = strings.TrimSpace(h)
	}

	rows := []domain.Row{}
	parsed, skipped := 0, 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				log.Warn().Err(err).Str("file", name).Int("line", pe.StartLine).Msg("skipping malformed csv row")
				skipped++
				continue
			}
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		row := make(domain.Row, 0, len(header))
		blank := true
		for i, key := range header {
			if i >= len(rec) {
				break
			}
			v := strings.TrimSpace(rec[i])
			if v != "" {
				blank = false
			}
			row = append(row, domain.Cell{Key: key, Value: v})
		}
		if blank {
			skipped++
			continue
		}
		rows = append(rows, row)
		parsed++
	}
	observability.ObserveRows(parsed, skipped)
	return rows, nil
}
