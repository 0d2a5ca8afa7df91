// Package data supplies and persists forecast panels at the system boundary:
// CSV readers/writers and the synthetic scenario generator. The core engine
// never does I/O itself.
package data

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/sawpanic/pioneerpool/internal/domain/panel"
)

// ReadPanel loads a forecast panel from a CSV file. The first column holds
// period labels (chronological order is assumed, per the data source
// contract), the remaining columns one expert each. Empty cells and "NaN"
// tokens become undefined entries.
func ReadPanel(path string) (*panel.Matrix, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open panel CSV: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read panel CSV: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("panel CSV %s is empty", path)
	}

	header := records[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("panel CSV needs a period column and at least one expert column")
	}
	experts := append([]string(nil), header[1:]...)

	periods := make([]string, 0, len(records)-1)
	for _, record := range records[1:] {
		periods = append(periods, record[0])
	}

	m := panel.New(periods, experts)
	for t, record := range records[1:] {
		for i := 1; i < len(record) && i <= len(experts); i++ {
			m.Values[t][i-1] = parseCell(record[i])
		}
	}
	return m, nil
}

// parseCell maps empty and NaN cells to undefined; anything unparsable is
// undefined too, in keeping with propagate-don't-validate semantics.
func parseCell(cell string) float64 {
	if cell == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// WritePanel writes a matrix to CSV in the same layout ReadPanel accepts.
// Undefined entries are written as empty cells.
func WritePanel(path string, m *panel.Matrix) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create panel CSV: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := append([]string{"period"}, m.Experts...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write panel header: %w", err)
	}

	for t, label := range m.Periods {
		record := make([]string, 0, len(m.Experts)+1)
		record = append(record, label)
		for i := range m.Experts {
			record = append(record, formatCell(m.Values[t][i]))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write panel row %d: %w", t, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteSeries writes a labeled series to a two-column CSV.
func WriteSeries(path, name string, s *panel.Series) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create series CSV: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"period", name}); err != nil {
		return fmt.Errorf("failed to write series header: %w", err)
	}
	for t, label := range s.Periods {
		if err := writer.Write([]string{label, formatCell(s.Values[t])}); err != nil {
			return fmt.Errorf("failed to write series row %d: %w", t, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
