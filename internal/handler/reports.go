package handler

import (
	"net/http"
)

// Summary handles GET /summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	summary, err := h.svc.Summary(r.Context(), userID)
	if err != nil {
		h.log.Errorf("Failed to build summary: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to build summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Report handles GET /reports?month=YYYY-MM
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	report, err := h.svc.Report(r.Context(), userID, r.URL.Query().Get("month"))
	if err != nil {
		h.respondAccountError(w, err, "Failed to build report")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Rates handles GET /rates
func (h *Handler) Rates(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.userID(w, r); !ok {
		return
	}

	rates, err := h.rates.GetRates()
	if err != nil {
		h.log.Errorf("Failed to get rates: %v", err)
		writeError(w, http.StatusBadGateway, "Failed to fetch exchange rates")
		return
	}
	writeJSON(w, http.StatusOK, rates)
}
