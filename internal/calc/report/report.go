package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"Aeroperf/internal/calc/formula"
	"Aeroperf/internal/calc/perf"
	"Aeroperf/internal/calc/solve"

	"github.com/phpdave11/gofpdf"
)

const (
	pageWidth = 190.0 // A4 less the default margins, mm
	rowHeight = 6.0
	maxColumn = 30.0
)

type Input struct {
	Project string `json:"project"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`

	Record formula.Record `json:"record"`
	// Target, when set, is solved on Record before it is rendered.
	Target string      `json:"target"`
	Settle bool        `json:"settle"`
	Table  *perf.Table `json:"table"`
}

// Prepare solves the record when a target is given and fills defaults.
func Prepare(e *perf.Engine, in Input, maxPasses int) (Input, error) {
	if in.Title == "" {
		in.Title = "Performance Report"
	}
	if in.Target == "" && !in.Settle {
		return in, nil
	}
	res, err := solve.Calculate(e, solve.Input{Record: in.Record, Target: in.Target, Settle: in.Settle}, maxPasses)
	if err != nil {
		return in, err
	}
	in.Record = res.Record
	return in, nil
}

// Write renders the report as a PDF.
func Write(w io.Writer, in Input, date time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, in.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, rowHeight, fmt.Sprintf("Project: %s", in.Project))
	pdf.Ln(rowHeight)
	pdf.Cell(0, rowHeight, fmt.Sprintf("Author: %s", in.Author))
	pdf.Ln(rowHeight)
	pdf.Cell(0, rowHeight, fmt.Sprintf("Date: %s", date.Format("2006-01-02")))
	pdf.Ln(10)
	if in.Notes != "" {
		pdf.MultiCell(0, rowHeight, in.Notes, "", "L", false)
		pdf.Ln(4)
	}

	if len(in.Record) > 0 {
		heading(pdf, "Quantities")
		header(pdf, []string{"Quantity", "Value"}, 40)
		for _, k := range in.Record.Keys() {
			pdf.CellFormat(40, rowHeight, k, "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, rowHeight, FormatValue(in.Record[k]), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(6)
	}

	if in.Table != nil && len(in.Table.Columns) > 0 {
		heading(pdf, "Airspeed sweep")
		width := math.Min(maxColumn, pageWidth/float64(len(in.Table.Columns)))
		header(pdf, in.Table.Columns, width)
		for _, row := range in.Table.Rows {
			for j, x := range row {
				ln := 0
				if j == len(row)-1 {
					ln = 1
				}
				pdf.CellFormat(width, rowHeight, FormatValue(x), "1", ln, "R", false, 0, "")
			}
		}
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func heading(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, s)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
}

func header(pdf *gofpdf.Fpdf, cols []string, width float64) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for j, c := range cols {
		ln := 0
		if j == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(width, rowHeight, c, "1", ln, "C", true, 0, "")
	}
	pdf.SetFont("Helvetica", "", 10)
}

// FormatValue prints six significant digits; NaN is shown as "n/a".
func FormatValue(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "n/a"
	}
	return strconv.FormatFloat(x, 'g', 6, 64)
}
