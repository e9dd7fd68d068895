package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/minhvt/finbook/internal/models"
	"github.com/minhvt/finbook/internal/repository"
	"github.com/minhvt/finbook/internal/service"
)

// ListTransactions handles GET /transactions?type=&search=
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	filter := repository.TransactionFilter{
		Type:   models.TransactionType(r.URL.Query().Get("type")),
		Search: r.URL.Query().Get("search"),
	}

	transactions, err := h.svc.ListTransactions(r.Context(), userID, filter)
	if err != nil {
		h.respondAccountError(w, err, "Failed to list transactions")
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	writeJSON(w, http.StatusOK, transactions)
}

// CreateTransaction handles POST /transactions
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var in service.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := h.svc.CreateTransaction(r.Context(), userID, in)
	if err != nil {
		h.respondAccountError(w, err, "Failed to create transaction")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// UpdateTransaction handles PUT /transactions/{id}
func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	var in service.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := h.svc.UpdateTransaction(r.Context(), userID, id, in)
	if err != nil {
		h.respondAccountError(w, err, "Failed to update transaction")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// DeleteTransaction handles DELETE /transactions/{id}
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	if err := h.svc.DeleteTransaction(r.Context(), userID, id); err != nil {
		h.respondAccountError(w, err, "Failed to delete transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
