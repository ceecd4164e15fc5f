package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"payweek/internal/config"
	"payweek/internal/domain"
	"payweek/pkg/clients"
)

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// apiResponse mirrors the Bot API envelope. The ok flag is authoritative: the
// API can answer 200 and still reject the payload.
type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// Client sends messages through the Bot API and owns the anti-flood pacing:
// sends are serialized, and each one (success or failure) arms a minimum
// delay the next send blocks on. Exceeding the external rate limit degrades
// the whole batch, not just the offending call.
type Client struct {
	url      string
	token    string
	client   clients.HTTPClientI
	minDelay time.Duration

	mu       sync.Mutex
	lastSend time.Time
}

func New(cfg *config.Config, client clients.HTTPClientI) *Client {
	return &Client{
		url:      cfg.TelegramAPI,
		token:    cfg.TelegramToken,
		client:   client,
		minDelay: cfg.SendDelay,
	}
}

func (c *Client) Send(ctx context.Context, chatID, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.lastSend.IsZero() {
		if wait := c.minDelay - time.Since(c.lastSend); wait > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
	}
	defer func() { c.lastSend = time.Now() }()

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return &domain.DispatchError{Reason: "can't encode message", Err: err}
	}

	headers := http.Header{"Content-Type": []string{"application/json"}}
	statusCode, respBody, _, err := c.client.Post(c.url+"/bot"+c.token+"/sendMessage", headers, payload)
	if err != nil {
		zap.L().Error("telegram transport failure", zap.String("chatID", chatID), zap.Error(err))
		return &domain.DispatchError{Reason: "transport failure", Err: err}
	}

	var resp apiResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return &domain.DispatchError{Reason: fmt.Sprintf("can't parse response (status %d)", statusCode), Err: err}
	}

	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		zap.L().Error("telegram rejected message",
			zap.String("chatID", chatID),
			zap.Int("status", statusCode),
			zap.String("description", resp.Description),
		)
		return &domain.DispatchError{Reason: fmt.Sprintf("unexpected status code %d: %s", statusCode, resp.Description)}
	}

	if !resp.OK {
		zap.L().Error("telegram acknowledgement is false",
			zap.String("chatID", chatID),
			zap.String("description", resp.Description),
		)
		return &domain.DispatchError{Reason: "api rejected message: " + resp.Description}
	}

	return nil
}
