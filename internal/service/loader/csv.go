package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ougirez/covidboard/internal/domain"
	"github.com/ougirez/covidboard/internal/pkg/constants"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

type columnIndex struct {
	date, entity, cases, deaths, recovered int
	max                                    int
}

func indexColumns(header []string, schema Schema) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		positions[strings.TrimSpace(h)] = i
	}

	idx := columnIndex{recovered: -1}
	lookup := func(name string, dst *int) error {
		pos, ok := positions[name]
		if !ok {
			return fmt.Errorf("%w: missing column %q", constants.ErrSchema, name)
		}
		*dst = pos
		if pos > idx.max {
			idx.max = pos
		}
		return nil
	}

	for _, c := range []struct {
		name string
		dst  *int
	}{
		{schema.Date, &idx.date},
		{schema.Entity, &idx.entity},
		{schema.Cases, &idx.cases},
		{schema.Deaths, &idx.deaths},
	} {
		if err := lookup(c.name, c.dst); err != nil {
			return idx, err
		}
	}
	if schema.Recovered != "" {
		if err := lookup(schema.Recovered, &idx.recovered); err != nil {
			return idx, err
		}
	}

	return idx, nil
}

// parseCount reads a cumulative count. Empty cells count as zero.
func parseCount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// ParseTable reads a CSV body in the layout described by src.Schema.
func ParseTable(body []byte, src Source) (*domain.Table, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(body, bomUTF8)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty body", constants.ErrSchema)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx, err := indexColumns(header, src.Schema)
	if err != nil {
		return nil, err
	}

	table := &domain.Table{Dataset: src.Dataset, SourceURL: src.URL}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %s", constants.ErrSchema, line, err.Error())
		}
		if len(record) <= idx.max {
			return nil, fmt.Errorf("%w: line %d has %d fields, want at least %d", constants.ErrSchema, line, len(record), idx.max+1)
		}

		row := domain.TimeSeriesRow{
			Date:   strings.TrimSpace(record[idx.date]),
			Entity: strings.TrimSpace(record[idx.entity]),
		}
		if row.Cases, err = parseCount(record[idx.cases]); err != nil {
			return nil, fmt.Errorf("%w: line %d: %s: %s", constants.ErrSchema, line, src.Schema.Cases, err.Error())
		}
		if row.Deaths, err = parseCount(record[idx.deaths]); err != nil {
			return nil, fmt.Errorf("%w: line %d: %s: %s", constants.ErrSchema, line, src.Schema.Deaths, err.Error())
		}
		if idx.recovered >= 0 {
			row.HasRecovered = true
			if row.Recovered, err = parseCount(record[idx.recovered]); err != nil {
				return nil, fmt.Errorf("%w: line %d: %s: %s", constants.ErrSchema, line, src.Schema.Recovered, err.Error())
			}
		}

		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
