package batch

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Aeroperf/internal/calc/perf"
)

type Handler struct {
	Engine       *perf.Engine
	SettlePasses int
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(h.Engine, input, h.SettlePasses)
	if errors.Is(err, perf.ErrUnknownStep) {
		http.Error(w, "Unknown target", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Printf("batch: encoding response: %v", err)
	}
}
