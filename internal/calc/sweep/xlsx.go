package sweep

import (
	"io"
	"math"

	"Aeroperf/internal/calc/formula"
	"Aeroperf/internal/calc/perf"

	"github.com/xuri/excelize/v2"
)

const (
	TableSheet = "Sweep"
	InputSheet = "Inputs"
)

// WriteXLSX writes the table to the first sheet and the base record to a
// second one. NaN cells are left empty.
func WriteXLSX(w io.Writer, t perf.Table, base formula.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TableSheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	header := make([]interface{}, len(t.Columns))
	for j, c := range t.Columns {
		header[j] = c
	}
	if err := f.SetSheetRow(TableSheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for j, x := range row {
			if !math.IsNaN(x) {
				cells[j] = x
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(TableSheet, cell, &cells); err != nil {
			return err
		}
	}
	if err := f.SetRowStyle(TableSheet, 1, 1, bold); err != nil {
		return err
	}
	if err := f.SetPanes(TableSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}

	if _, err := f.NewSheet(InputSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(InputSheet, "A1", &[]interface{}{"quantity", "value"}); err != nil {
		return err
	}
	for i, k := range base.Keys() {
		var v interface{}
		if x := base[k]; !math.IsNaN(x) {
			v = x
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(InputSheet, cell, &[]interface{}{k, v}); err != nil {
			return err
		}
	}
	if err := f.SetRowStyle(InputSheet, 1, 1, bold); err != nil {
		return err
	}

	return f.Write(w)
}
