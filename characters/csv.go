package characters

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Column names of the dataset file, in the order the builder writes them.
var csvHeader = []string{"name", "rule", "flavor", "type", "link"}

// ReadCSV parses a dataset file. Columns are matched by header name so extra
// or reordered columns are tolerated; a missing column is an error.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty characters file: missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range csvHeader {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}
	get := func(rec []string, col string) string {
		if i := idx[col]; i < len(rec) {
			return rec[i]
		}
		return ""
	}
	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, Row{
			Name:   get(rec, "name"),
			Rule:   get(rec, "rule"),
			Flavor: get(rec, "flavor"),
			Type:   get(rec, "type"),
			Link:   get(rec, "link"),
		})
	}
	return rows, nil
}

// WriteCSV writes rows with the dataset header.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Name, r.Rule, r.Flavor, r.Type, r.Link}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
