package dataset

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/agentstation/fieldscope/pkg/constants"
	"github.com/agentstation/fieldscope/pkg/errors"
	"github.com/agentstation/fieldscope/pkg/lookup"
)

const bom = "\ufeff"

// searchRow is one raw line of the search-field table.
type searchRow struct {
	Application     string `csv:"App/Modal"`
	Search          string `csv:"Search"`
	AllowsWildcards string `csv:"Allows Wildcards?"`
}

// standardRow is one raw line of the standards table.
type standardRow struct {
	Standard    string `csv:"Standard"`
	Definition  string `csv:"Definition"`
	SearchField string `csv:"Search Field"`
	Application string `csv:"App/Modal"`
	Compliant   string `csv:"Compliant"`
}

var (
	searchColumns = []string{
		constants.ColumnApplication,
		constants.ColumnSearch,
		constants.ColumnAllowsWildcards,
	}
	standardColumns = []string{
		constants.ColumnStandard,
		constants.ColumnDefinition,
		constants.ColumnSearchField,
		constants.ColumnApplication,
		constants.ColumnCompliant,
	}
)

// ParseSearch decodes the search-field table. name labels parse errors.
func ParseSearch(r io.Reader, name string) ([]lookup.FieldRecord, error) {
	var rows []searchRow
	if err := decode(r, name, searchColumns, &rows); err != nil {
		return nil, err
	}

	records := make([]lookup.FieldRecord, 0, len(rows))
	for _, row := range rows {
		rec := lookup.FieldRecord{
			Application:     strings.TrimSpace(row.Application),
			SearchField:     strings.TrimSpace(row.Search),
			AllowsWildcards: ParseBool(row.AllowsWildcards),
		}
		if rec.Application == "" && rec.SearchField == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParseStandards decodes the standards table. name labels parse errors.
func ParseStandards(r io.Reader, name string) ([]lookup.StandardRecord, error) {
	var rows []standardRow
	if err := decode(r, name, standardColumns, &rows); err != nil {
		return nil, err
	}

	records := make([]lookup.StandardRecord, 0, len(rows))
	for _, row := range rows {
		rec := lookup.StandardRecord{
			Standard:    strings.TrimSpace(row.Standard),
			Definition:  strings.TrimSpace(row.Definition),
			SearchField: strings.TrimSpace(row.SearchField),
			Application: strings.TrimSpace(row.Application),
			Compliant:   ParseCompliance(row.Compliant),
		}
		if rec.Standard == "" && rec.SearchField == "" && rec.Application == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// decode reads the header row, maps it onto the canonical column names and
// hands the rest to gocsv.
func decode(r io.Reader, name string, required []string, out any) error {
	cr := csv.NewReader(&cappedReader{r: r, remaining: constants.MaxDatasetBytes})
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return errors.NewParseError("csv", name, "missing header row", err)
		}
		return csvError(name, err)
	}

	header, err = canonicalHeader(header, required)
	if err != nil {
		return errors.NewParseError("csv", name, err.Error(), err)
	}

	if err := gocsv.UnmarshalCSV(&headerReader{header: header, r: cr}, out); err != nil {
		return csvError(name, err)
	}
	return nil
}

// canonicalHeader rewrites header cells that match a required column,
// ignoring case, surrounding space and a leading byte-order mark.
func canonicalHeader(header, required []string) ([]string, error) {
	out := make([]string, len(header))
	found := make(map[string]bool, len(required))
	for i, cell := range header {
		cell = strings.TrimSpace(strings.TrimPrefix(cell, bom))
		out[i] = cell
		for _, col := range required {
			if strings.EqualFold(cell, col) && !found[col] {
				out[i] = col
				found[col] = true
				break
			}
		}
	}

	var missing []string
	for _, col := range required {
		if !found[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required column(s) %q", missing)
	}
	return out, nil
}

func csvError(name string, err error) error {
	var perr *csv.ParseError
	if stderrors.As(err, &perr) {
		return &errors.ParseError{
			Format:  "csv",
			File:    name,
			Line:    perr.Line,
			Column:  perr.Column,
			Message: perr.Err.Error(),
			Err:     err,
		}
	}
	return errors.WrapParse("csv", name, err)
}

// cappedReader fails with ErrTooLarge once more than remaining bytes
// arrive, so an oversized dataset is rejected rather than truncated.
type cappedReader struct {
	r         io.Reader
	remaining int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	if c.remaining <= 0 {
		var one [1]byte
		n, err := c.r.Read(one[:])
		if n > 0 {
			return 0, fmt.Errorf("%w: more than %d bytes", errors.ErrTooLarge, constants.MaxDatasetBytes)
		}
		return 0, err
	}
	if int64(len(p)) > c.remaining {
		p = p[:c.remaining]
	}
	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	return n, err
}

// headerReader replays a rewritten header ahead of the remaining rows.
type headerReader struct {
	header []string
	r      *csv.Reader
	sent   bool
}

func (h *headerReader) Read() ([]string, error) {
	if !h.sent {
		h.sent = true
		return h.header, nil
	}
	return h.r.Read()
}

func (h *headerReader) ReadAll() ([][]string, error) {
	var rows [][]string
	for {
		row, err := h.Read()
		if stderrors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}
