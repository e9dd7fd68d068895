package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/minhvt/finbook/internal/integrations/aigateway"
	"github.com/minhvt/finbook/internal/models"
)

// Chat handles POST /chat: it builds the user's financial summary into the
// system prompt, forwards the conversation to the AI gateway and relays the
// SSE body back to the client as it arrives.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "messages are required")
		return
	}

	prompt, err := h.svc.ChatSystemPrompt(r.Context(), userID)
	if err != nil {
		h.log.Errorf("Failed to build chat prompt: %v", err)
		writeError(w, http.StatusInternalServerError, "Lỗi kết nối AI")
		return
	}

	body, err := h.gateway.StreamChat(r.Context(), prompt, req.Messages)
	if err != nil {
		var gwErr *aigateway.GatewayError
		if errors.As(err, &gwErr) {
			writeError(w, gwErr.Status, gwErr.Message)
			return
		}
		h.log.Errorf("Chat request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Lỗi kết nối AI")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")

	flusher, _ := w.(http.Flusher)
	buf := make([]byte, 4096)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, writeErr := w.Write(buf[:n]); writeErr != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if readErr != nil {
			// Headers are sent; nothing left to do but stop relaying.
			return
		}
	}
}
