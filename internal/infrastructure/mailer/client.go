package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/railconnect/internal/config"
	"github.com/railconnect/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	from       string
	logger     *zap.Logger
}

// NewMailerClient создает новый клиент почтового шлюза
func NewMailerClient(cfg *config.MailerConfig, logger *zap.Logger) repository.MailerRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		from:    cfg.FromAddress,
		logger:  logger,
	}
}

type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Send отправляет письмо через HTTP шлюз
func (c *client) Send(ctx context.Context, msg repository.MailMessage) error {
	if msg.To == "" {
		return fmt.Errorf("recipient cannot be empty")
	}

	payload, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      msg.To,
		Subject: msg.Subject,
		Body:    msg.Body,
	})
	if err != nil {
		c.logger.Error("Failed to marshal mail payload", zap.Error(err))
		return fmt.Errorf("failed to marshal mail payload: %w", err)
	}

	url := fmt.Sprintf("%s/v1/messages", c.baseURL)

	c.logger.Debug("Calling mail gateway",
		zap.String("url", url),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Mail gateway returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return fmt.Errorf("mail gateway error: status %d, body: %s", resp.StatusCode, string(body))
	}

	c.logger.Debug("Mail gateway call successful", zap.String("to", msg.To))
	return nil
}
