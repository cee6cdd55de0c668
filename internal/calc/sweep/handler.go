package sweep

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"Aeroperf/internal/calc/perf"
)

type Handler struct {
	Engine *perf.Engine
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	_, table, ok := h.run(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(table); err != nil {
		log.Printf("sweep: encoding response: %v", err)
	}
}

func (h *Handler) XLSX(w http.ResponseWriter, r *http.Request) {
	input, table, ok := h.run(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, table, input.Base); err != nil {
		log.Printf("sweep: writing workbook: %v", err)
		http.Error(w, "Workbook generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"sweep.xlsx\"")
	w.Write(buf.Bytes())
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) (Input, perf.Table, bool) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return input, perf.Table{}, false
	}
	table, err := Calculate(h.Engine, input)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return input, perf.Table{}, false
	}
	return input, table, true
}
