package importer

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"Aeroperf/internal/calc/perf"
)

// MaxUpload bounds the multipart body held in memory.
const MaxUpload = 10 << 20

type Handler struct {
	Engine       *perf.Engine
	SettlePasses int
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUpload)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	recs, skipped, err := ReadXLSX(file, r.FormValue("sheet"))
	if err != nil {
		log.Printf("importer: reading workbook: %v", err)
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	settle, _ := strconv.ParseBool(r.FormValue("settle"))

	res, err := Calculate(h.Engine, recs, skipped, r.FormValue("target"), settle, h.SettlePasses)
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
		log.Printf("importer: encoding response: %v", err)
	}
}
