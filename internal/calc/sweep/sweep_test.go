package sweep

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"Aeroperf/internal/calc/aero"
	"Aeroperf/internal/calc/formula"
	"Aeroperf/internal/calc/perf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newEngine(t *testing.T) *perf.Engine {
	t.Helper()
	e, err := perf.New(aero.DefaultConstants())
	require.NoError(t, err)
	return e
}

func glider() formula.Record {
	return formula.Record{"ws": 300, "rho": 1.225, "e": 0.85, "ar": 20, "cd0": 0.012, "s": 11}
}

func TestResolvePlan(t *testing.T) {
	t.Parallel()

	p, err := Input{}.ResolvePlan()
	require.NoError(t, err)
	assert.Equal(t, perf.PolarPlan, p)

	p, err = Input{Plan: "atmosphere"}.ResolvePlan()
	require.NoError(t, err)
	assert.Equal(t, perf.AtmospherePlan, p)

	p, err = Input{Plan: "atmosphere", Steps: []string{"4"}}.ResolvePlan()
	require.NoError(t, err)
	assert.Equal(t, []string{"4"}, p.Steps)

	_, err = Input{Plan: "nope"}.ResolvePlan()
	assert.True(t, errors.Is(err, perf.ErrUnknownPlan))
}

func TestCalculate(t *testing.T) {
	t.Parallel()
	e := newEngine(t)

	table, err := Calculate(e, Input{Base: glider(), From: 20, To: 30, Step: 5, Outputs: []string{"v", "ld"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"v", "ld"}, table.Columns)
	assert.Equal(t, []float64{20, 25, 30}, table.Column("v"))
	for _, ld := range table.Column("ld") {
		assert.Greater(t, ld, 1.0)
	}

	_, err = Calculate(e, Input{Base: glider(), From: 30, To: 20, Step: 5})
	assert.True(t, errors.Is(err, perf.ErrInvalidSweep))
}

func TestWriteXLSX(t *testing.T) {
	t.Parallel()
	table := perf.Table{Columns: []string{"v", "cl"}, Rows: [][]float64{{10, math.NaN()}, {20, 0.5}}}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, table, formula.Record{"rho": 1.225}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{TableSheet, InputSheet}, f.GetSheetList())
	for cell, want := range map[string]string{"A1": "v", "B1": "cl", "A2": "10", "B2": "", "A3": "20", "B3": "0.5"} {
		got, err := f.GetCellValue(TableSheet, cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, cell)
	}
	rows, err := f.GetRows(InputSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"quantity", "value"}, {"rho", "1.225"}}, rows)
}

func TestHandlers(t *testing.T) {
	t.Parallel()
	h := &Handler{Engine: newEngine(t)}
	body, err := json.Marshal(Input{Base: glider(), From: 20, To: 25, Step: 5})
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h.Calc(rr, httptest.NewRequest(http.MethodPost, "/api/tools/sweep", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rr.Code)
	var table perf.Table
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &table))
	assert.Equal(t, perf.DefaultSweepOutputs, table.Columns)
	assert.Len(t, table.Rows, 2)

	rr = httptest.NewRecorder()
	h.XLSX(rr, httptest.NewRequest(http.MethodPost, "/api/tools/sweep/xlsx", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "sweep.xlsx")
	f, err := excelize.OpenReader(rr.Body)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(TableSheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "25", v)

	rr = httptest.NewRecorder()
	h.Calc(rr, httptest.NewRequest(http.MethodPost, "/api/tools/sweep", bytes.NewBufferString(`{"from":1,"to":2,"step":1,"plan":"nope"}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
