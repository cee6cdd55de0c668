package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"Aeroperf/internal/calc/perf"
)

type Handler struct {
	Engine       *perf.Engine
	SettlePasses int
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	input, err := Prepare(h.Engine, input, h.SettlePasses)
	if errors.Is(err, perf.ErrUnknownStep) {
		http.Error(w, "Unknown target", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := Write(&buf, input, time.Now()); err != nil {
		log.Printf("report: rendering pdf: %v", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	w.Write(buf.Bytes())
}
