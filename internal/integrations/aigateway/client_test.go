package aigateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/minhvt/finbook/internal/config"
	"github.com/minhvt/finbook/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewClient(&config.Config{
		AIGatewayURL: url,
		AIGatewayKey: "test-key",
		AIModel:      "test-model",
	}, logger)
}

func TestStreamChat_SendsPromptAndStreamsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var payload struct {
			Model    string               `json:"model"`
			Messages []models.ChatMessage `json:"messages"`
			Stream   bool                 `json:"stream"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "test-model", payload.Model)
		assert.True(t, payload.Stream)
		require.Len(t, payload.Messages, 2)
		assert.Equal(t, "system", payload.Messages[0].Role)
		assert.Equal(t, "system prompt", payload.Messages[0].Content)
		assert.Equal(t, "user", payload.Messages[1].Role)

		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(sampleStream))
	}))
	defer srv.Close()

	body, err := newTestClient(srv.URL).StreamChat(context.Background(), "system prompt",
		[]models.ChatMessage{{Role: "user", Content: "chào"}})
	require.NoError(t, err)
	defer body.Close()

	content, err := Collect(body)
	require.NoError(t, err)
	assert.Equal(t, "Xin chào", content)
}

func TestStreamChat_GatewayErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"rate limited", http.StatusTooManyRequests},
		{"out of credits", http.StatusPaymentRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).StreamChat(context.Background(), "p", []models.ChatMessage{{Role: "user", Content: "hi"}})
			require.Error(t, err)

			gwErr, ok := err.(*GatewayError)
			require.True(t, ok)
			assert.Equal(t, tt.status, gwErr.Status)
			assert.NotEmpty(t, gwErr.Message)
		})
	}
}

func TestStreamChat_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).StreamChat(context.Background(), "p", []models.ChatMessage{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	_, ok := err.(*GatewayError)
	assert.False(t, ok)
}
