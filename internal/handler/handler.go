package handler

import (
	"encoding/json"
	"net/http"

	"github.com/minhvt/finbook/internal/integrations/aigateway"
	"github.com/minhvt/finbook/internal/integrations/rates"
	"github.com/minhvt/finbook/internal/middleware"
	"github.com/minhvt/finbook/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc     *service.Service
	gateway *aigateway.Client
	rates   *rates.Client
	log     *logrus.Logger
}

func NewHandler(svc *service.Service, gateway *aigateway.Client, ratesClient *rates.Client, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, gateway: gateway, rates: ratesClient, log: log}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// userID pulls the authenticated identity from the request context; requests
// reach protected handlers only through the auth middleware.
func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	}
	return id, ok
}
