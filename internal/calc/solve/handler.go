package solve

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
	if errors.Is(err, perf.ErrUnknownStep) || errors.Is(err, perf.ErrUnknownPlan) {
		http.Error(w, "Unknown target", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) Relations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, Relations(h.Engine))
}

func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, Entries(h.Engine))
}

func (h *Handler) Plans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, perf.Plans())
}

// Constants reports the physical constants the catalog was built with.
func (h *Handler) Constants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Engine.Constants())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("solve: encoding response: %v", err)
	}
}
