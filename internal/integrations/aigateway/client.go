package aigateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/minhvt/finbook/internal/config"
	"github.com/minhvt/finbook/internal/models"
	"github.com/sirupsen/logrus"
)

// GatewayError is a gateway response that must be surfaced to the user with
// its original status code.
type GatewayError struct {
	Status  int
	Message string
}

func (e *GatewayError) Error() string {
	return e.Message
}

// Client handles integration with the OpenAI-compatible chat gateway
type Client struct {
	url    string
	key    string
	model  string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new gateway client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url:   cfg.AIGatewayURL,
		key:   cfg.AIGatewayKey,
		model: cfg.AIModel,
		client: &http.Client{
			// Long enough for a full streamed completion.
			Timeout: 5 * time.Minute,
		},
		log: log,
	}
}

type chatPayload struct {
	Model    string               `json:"model"`
	Messages []models.ChatMessage `json:"messages"`
	Stream   bool                 `json:"stream"`
}

// StreamChat sends the conversation with the system prompt prepended and
// returns the gateway's SSE body. The caller owns closing it.
func (c *Client) StreamChat(ctx context.Context, systemPrompt string, messages []models.ChatMessage) (io.ReadCloser, error) {
	payload := chatPayload{
		Model:    c.model,
		Messages: append([]models.ChatMessage{{Role: "system", Content: systemPrompt}}, messages...),
		Stream:   true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusTooManyRequests:
		resp.Body.Close()
		return nil, &GatewayError{Status: http.StatusTooManyRequests, Message: "Đã vượt quá giới hạn yêu cầu, vui lòng thử lại sau."}
	case http.StatusPaymentRequired:
		resp.Body.Close()
		return nil, &GatewayError{Status: http.StatusPaymentRequired, Message: "Cần nạp thêm credits để tiếp tục sử dụng."}
	default:
		errBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		c.log.Errorf("AI gateway error: %d %s", resp.StatusCode, string(errBody))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}
