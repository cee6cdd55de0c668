// Package importer solves quantity records read from a spreadsheet whose
// first row holds the quantity mnemonics.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"Aeroperf/internal/calc/formula"
	"Aeroperf/internal/calc/perf"
	"Aeroperf/internal/calc/solve"

	"github.com/xuri/excelize/v2"
)

// MaxRows bounds the records solved from one workbook.
const MaxRows = 1000

var (
	ErrEmptySheet      = errors.New("importer: sheet has no data rows")
	ErrDuplicateColumn = errors.New("importer: duplicate column")
	ErrTooManyRows     = errors.New("importer: too many rows")
)

type Result struct {
	Count   int            `json:"count"`
	Skipped int            `json:"skipped"` // rows without a single numeric cell
	Results []solve.Result `json:"results"`
}

// ReadXLSX parses the named sheet, or the first one when sheet is empty.
func ReadXLSX(r io.Reader, sheet string) ([]formula.Record, int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, 0, err
	}
	return ParseRows(rows)
}

// ParseRows turns spreadsheet rows into records. Blank or non-numeric
// cells leave the quantity unknown; columns with a blank header are
// ignored.
func ParseRows(rows [][]string) ([]formula.Record, int, error) {
	if len(rows) < 2 {
		return nil, 0, ErrEmptySheet
	}
	header := make([]string, len(rows[0]))
	seen := make(map[string]bool, len(rows[0]))
	for j, h := range rows[0] {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" && seen[h] {
			return nil, 0, fmt.Errorf("%w: %s", ErrDuplicateColumn, h)
		}
		seen[h] = true
		header[j] = h
	}

	var recs []formula.Record
	skipped := 0
	for _, row := range rows[1:] {
		rec := parseRow(header, row)
		if len(rec) == 0 {
			skipped++
			continue
		}
		recs = append(recs, rec)
	}
	return recs, skipped, nil
}

func parseRow(header, row []string) formula.Record {
	rec := formula.Record{}
	for j, cell := range row {
		if j >= len(header) || header[j] == "" {
			continue
		}
		v, err := toFloat(cell)
		if err != nil {
			continue
		}
		rec[header[j]] = v
	}
	return rec
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// Calculate solves every imported record with one target.
func Calculate(e *perf.Engine, recs []formula.Record, skipped int, target string, settle bool, maxPasses int) (Result, error) {
	if len(recs) > MaxRows {
		return Result{}, fmt.Errorf("%w: %d exceeds %d", ErrTooManyRows, len(recs), MaxRows)
	}
	if target != "" {
		if _, err := e.Solver(target); err != nil {
			return Result{}, err
		}
	}
	out := Result{Skipped: skipped, Results: make([]solve.Result, 0, len(recs))}
	for _, rec := range recs {
		res, err := solve.Calculate(e, solve.Input{Record: rec, Target: target, Settle: settle}, maxPasses)
		if err != nil {
			return Result{}, err
		}
		out.Results = append(out.Results, res)
	}
	out.Count = len(out.Results)
	return out, nil
}
