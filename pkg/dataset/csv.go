package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// LoadCSV reads a labeled dataset from a CSV file. The first record names
// the attributes, the last column is the class, columns whose every known
// cell parses as a number become continuous, and "?" or an empty cell is a
// missing value.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV reads a labeled dataset from CSV content. See LoadCSV for the
// expected shape.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("dataset needs a header row and at least one example")
	}
	header := records[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("dataset needs at least one attribute and a class column")
	}
	rows := records[1:]

	nattrs := len(header) - 1
	attrs := make([]*Attribute, nattrs)
	for col := 0; col < nattrs; col++ {
		if columnIsNumeric(rows, col) {
			attrs[col] = NewContinuous(header[col])
		} else {
			attrs[col] = NewDiscrete(header[col])
		}
	}
	// The class stays discrete even when its cells look numeric; Bayesian
	// learning requires a categorical class.
	class := NewDiscrete(header[nattrs])
	domain := NewDomain(attrs, class)

	table := NewTable(domain)
	for n, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("row %d has %d columns, expected %d", n+2, len(row), len(header))
		}
		e := NewExample(domain)
		for col, attr := range attrs {
			cell := row[col]
			if cellIsMissing(cell) {
				continue
			}
			if attr.Type == AttrContinuous {
				x, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, fmt.Errorf("row %d, attribute %q: %w", n+2, attr.Name, err)
				}
				e.Values[col] = Continuous(x)
			} else {
				e.Values[col] = Discrete(attr.AddValue(cell))
			}
		}
		if cell := row[nattrs]; !cellIsMissing(cell) {
			e.SetClass(Discrete(class.AddValue(cell)))
		}
		table.Examples = append(table.Examples, e)
	}
	return table, nil
}

func columnIsNumeric(rows [][]string, col int) bool {
	seen := false
	for _, row := range rows {
		if col >= len(row) || cellIsMissing(row[col]) {
			continue
		}
		if _, err := strconv.ParseFloat(row[col], 64); err != nil {
			return false
		}
		seen = true
	}
	return seen
}

func cellIsMissing(cell string) bool {
	return cell == "" || cell == "?"
}
