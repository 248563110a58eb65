package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const telegramTimeout = 10 * time.Second

// telegramAPIURL is replaced in tests.
var telegramAPIURL = "https://api.telegram.org/bot"

// TelegramNotifier sends reminders to a chat through the Telegram Bot API
type TelegramNotifier struct {
	botToken   string
	chatID     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewTelegramNotifier creates a notifier from TELEGRAM_BOT_TOKEN and
// TELEGRAM_CHAT_ID.
func NewTelegramNotifier() (*TelegramNotifier, error) {
	return newTelegramNotifier(os.Getenv("TELEGRAM_BOT_TOKEN"), os.Getenv("TELEGRAM_CHAT_ID"))
}

func newTelegramNotifier(botToken, chatID string) (*TelegramNotifier, error) {
	if botToken == "" {
		return nil, fmt.Errorf("bot token is required (TELEGRAM_BOT_TOKEN)")
	}
	if chatID == "" {
		return nil, fmt.Errorf("chat ID is required (TELEGRAM_CHAT_ID)")
	}

	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		httpClient: &http.Client{
			Timeout: telegramTimeout,
		},
		// Bots may send about one message per second to a chat
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}, nil
}

// Notify sends the reminder as an HTML message
func (n *TelegramNotifier) Notify(ctx context.Context, r Reminder) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return err
	}

	payload := map[string]interface{}{
		"chat_id":                  n.chatID,
		"text":                     formatTelegram(r),
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	url := fmt.Sprintf("%s%s/sendMessage", telegramAPIURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("telegram API error: %s", result.Description)
	}

	return nil
}

// formatTelegram builds the message body. User text is HTML-escaped.
func formatTelegram(r Reminder) string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("⏰ <b>%s</b>\n\n", html.EscapeString(r.Title)))
	msg.WriteString(html.EscapeString(r.Message))
	msg.WriteString("\n")

	if !r.Event.Date.IsZero() {
		msg.WriteString(fmt.Sprintf("📅 %s\n", r.Event.Date.Time().Format("Monday, Jan 2, 2006")))
	}
	if r.Event.Cycle {
		msg.WriteString("🔁 <i>Every year</i>\n")
	}

	return msg.String()
}
