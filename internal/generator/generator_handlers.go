package generator

import (
	"encoding/json"
	"net/http"
)

type GeneratorHandlers struct {
	Service *GeneratorService
}

func NewGeneratorHandlers(service *GeneratorService) *GeneratorHandlers {
	return &GeneratorHandlers{Service: service}
}

// Generate serves GET /api/generate?country=XX.
func (h *GeneratorHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.ResolveCountry(r.URL.Query().Get("country"))
	if err != nil {
		WriteError(w, err)
		return
	}

	rec, err := h.Service.Generate(r.Context(), c)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.writeJSON(w, rec)
}

// Countries serves GET /api/countries.
func (h *GeneratorHandlers) Countries(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.Service.Countries())
}

func (h *GeneratorHandlers) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Service.logger.Error("failed to encode response", "err", err)
	}
}

// WriteError writes err as a plain-text response with the status StatusFor
// picks.
func WriteError(w http.ResponseWriter, err error) {
	status, msg := StatusFor(err)
	http.Error(w, msg, status)
}
