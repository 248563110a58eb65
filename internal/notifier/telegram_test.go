package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// telegramServer starts a fake Bot API and points the notifier at it.
func telegramServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	originalURL := telegramAPIURL
	telegramAPIURL = server.URL + "/bot"
	t.Cleanup(func() { telegramAPIURL = originalURL })
}

func TestNewTelegramNotifier_MissingCredentials(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		chatID string
	}{
		{"no token", "", "123"},
		{"no chat", "token", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TELEGRAM_BOT_TOKEN", tt.token)
			t.Setenv("TELEGRAM_CHAT_ID", tt.chatID)
			if _, err := NewTelegramNotifier(); err == nil {
				t.Error("NewTelegramNotifier() expected error")
			}
		})
	}
}

func TestTelegramNotifier_Notify(t *testing.T) {
	var got map[string]interface{}
	telegramServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/bottest-token/sendMessage" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": true, "result": {"message_id": 1}}`))
	})

	n, err := newTelegramNotifier("test-token", "12345")
	if err != nil {
		t.Fatalf("newTelegramNotifier() error = %v", err)
	}

	r := NewReminder(testEvent("Tom & Jerry <3", true), 1, "tomorrow", "", DefaultDuration)
	if err := n.Notify(context.Background(), r); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	if got["chat_id"] != "12345" || got["parse_mode"] != "HTML" {
		t.Errorf("payload = %+v", got)
	}
	text, _ := got["text"].(string)
	for _, want := range []string{"<b>Event Reminder!</b>", "Tom &amp; Jerry &lt;3, tomorrow!", "Every year"} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q:\n%s", want, text)
		}
	}
}

func TestTelegramNotifier_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"http status", http.StatusUnauthorized, `{"ok": false}`, "status 401"},
		{"api error", http.StatusOK, `{"ok": false, "description": "chat not found"}`, "chat not found"},
		{"bad json", http.StatusOK, `not json`, "parsing response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			telegramServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			n, err := newTelegramNotifier("test-token", "12345")
			if err != nil {
				t.Fatalf("newTelegramNotifier() error = %v", err)
			}

			err = n.Notify(context.Background(), NewReminder(testEvent("Dentist", false), 0, "today", "", DefaultDuration))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Notify() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestTelegramNotifier_CanceledContext(t *testing.T) {
	telegramServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request sent with a canceled context")
	})

	n, err := newTelegramNotifier("test-token", "12345")
	if err != nil {
		t.Fatalf("newTelegramNotifier() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := n.Notify(ctx, NewReminder(testEvent("Dentist", false), 0, "today", "", DefaultDuration)); err == nil {
		t.Error("Notify() expected error for canceled context")
	}
}
