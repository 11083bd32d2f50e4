package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/taskpilot-inc/taskpilot/internal/shared/config"
)

const telegramSendTimeout = 10 * time.Second

// TelegramDispatcher delivers events through the Telegram Bot API.
type TelegramDispatcher struct {
	httpClient *http.Client
	baseURL    string
}

// NewTelegramDispatcher creates a dispatcher for the configured bot.
func NewTelegramDispatcher(cfg config.TelegramConfig) *TelegramDispatcher {
	return &TelegramDispatcher{
		httpClient: &http.Client{
			Timeout: telegramSendTimeout,
		},
		baseURL: fmt.Sprintf("https://api.telegram.org/bot%s", cfg.BotToken),
	}
}

// Dispatch sends the event to the principal's linked Telegram chat. Events
// for principals without a linked chat are skipped.
func (d *TelegramDispatcher) Dispatch(ctx context.Context, event Event) error {
	chatID := event.To.TelegramChatID()
	if chatID == 0 {
		return nil
	}

	payload := map[string]any{
		"chat_id": chatID,
		"text":    renderBody(event),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/sendMessage", d.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram sendMessage returned %d: %s", resp.StatusCode, raw)
	}
	return nil
}
