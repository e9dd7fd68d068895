package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/minhvt/finbook/internal/service"
)

// ListAccounts handles GET /accounts
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	accounts, err := h.svc.ListAccounts(r.Context(), userID)
	if err != nil {
		h.log.Errorf("Failed to list accounts: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list accounts")
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

// CreateAccount handles POST /accounts
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var in service.AccountInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.svc.CreateAccount(r.Context(), userID, in)
	if err != nil {
		h.respondAccountError(w, err, "Failed to create account")
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

// UpdateAccount handles PUT /accounts/{id}
func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	var in service.AccountInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.svc.UpdateAccount(r.Context(), userID, id, in)
	if err != nil {
		h.respondAccountError(w, err, "Failed to update account")
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// DeleteAccount handles DELETE /accounts/{id}
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	if err := h.svc.DeleteAccount(r.Context(), userID, id); err != nil {
		h.respondAccountError(w, err, "Failed to delete account")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondAccountError(w http.ResponseWriter, err error, fallback string) {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		writeError(w, http.StatusNotFound, msg)
	case strings.Contains(msg, "required") || strings.Contains(msg, "unknown") ||
		strings.Contains(msg, "must be"):
		writeError(w, http.StatusBadRequest, msg)
	default:
		h.log.Errorf("%s: %v", fallback, err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
