// internal/infra/webhook/client.go
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

const unknownFailure = "Erro desconhecido ao enviar formulário"

type sendRequest struct {
	Message string `json:"message"`
}

type sendResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SendError carries the text shown to the user when the chat webhook refuses a
// message. StatusCode is 0 for transport failures.
type SendError struct {
	StatusCode int
	Message    string
}

func (e *SendError) Error() string {
	return e.Message
}

// Client posts formatted messages to the team chat webhook.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *logrus.Entry
}

func NewClient(endpoint string, httpClient *http.Client, logger *logrus.Entry) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{endpoint: endpoint, httpClient: httpClient, logger: logger}
}

// Send delivers one message. A non-2xx status is a failure even when the body
// says otherwise.
func (c *Client) Send(ctx context.Context, message string) error {
	payload, err := json.Marshal(sendRequest{Message: message})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Error("Webhook request failed")
		return &SendError{Message: err.Error()}
	}
	defer resp.Body.Close()

	var result sendResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&result)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"error":  result.Error,
		}).Error("Webhook returned an error status")
		msg := result.Error
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return &SendError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		c.logger.WithError(decodeErr).Error("Webhook response could not be parsed")
		return &SendError{StatusCode: resp.StatusCode, Message: decodeErr.Error()}
	}
	if !result.Success {
		msg := result.Error
		if msg == "" {
			msg = unknownFailure
		}
		return &SendError{StatusCode: resp.StatusCode, Message: msg}
	}
	return nil
}
