package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hbmp/go-formbank/pkg/bank"
)

// ReadTable parses one CSV table: the first record is the header, every
// following record becomes a Row keyed by header name. Short records leave
// trailing columns absent; fully blank records are dropped.
func ReadTable(r io.Reader) ([]bank.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("bank parser: csv table has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("bank parser: read csv header: %w", err)
	}
	for i, col := range header {
		header[i] = strings.TrimSpace(col)
	}

	var rows []bank.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("bank parser: read csv record: %w", err)
		}
		if blankRecord(record) {
			continue
		}

		row := make(bank.Row, len(header))
		for i, cell := range record {
			if i >= len(header) || header[i] == "" {
				continue
			}
			row[header[i]] = cell
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
