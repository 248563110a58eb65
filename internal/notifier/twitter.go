package notifier

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"
	"unicode/utf8"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
	"golang.org/x/time/rate"
)

// tweetLimit is the maximum length of a status update.
const tweetLimit = 280

// tweetInterval spaces consecutive status updates.
const tweetInterval = 2 * time.Second

// statusUpdater is the part of the Twitter client used to post.
type statusUpdater interface {
	Update(status string, params *twitter.StatusUpdateParams) (*twitter.Tweet, *http.Response, error)
}

// TwitterNotifier posts reminders as status updates
type TwitterNotifier struct {
	statuses statusUpdater
	limiter  *rate.Limiter
}

// NewTwitterNotifier creates a new Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return newTwitterNotifier(client.Statuses), nil
}

func newTwitterNotifier(statuses statusUpdater) *TwitterNotifier {
	return &TwitterNotifier{
		statuses: statuses,
		limiter:  rate.NewLimiter(rate.Every(tweetInterval), 1),
	}
}

// Notify posts a tweet for the reminder, waiting if the previous one was
// posted less than tweetInterval ago.
func (n *TwitterNotifier) Notify(ctx context.Context, r Reminder) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting to post tweet: %w", err)
	}

	if _, _, err := n.statuses.Update(formatTweet(r), nil); err != nil {
		return fmt.Errorf("failed to post tweet for event %s: %w", r.Event.Date, err)
	}

	return nil
}

// formatTweet formats a reminder as a tweet
func formatTweet(r Reminder) string {
	tweet := fmt.Sprintf("⏰ %s\n\n", r.Title)
	tweet += r.Message + "\n"

	if !r.Event.Date.IsZero() {
		tweet += fmt.Sprintf("📅 %s\n", r.Event.Date)
	}

	if r.Event.Cycle {
		tweet += "🔁 Every year\n"
	}

	// Twitter counts characters, not bytes
	if utf8.RuneCountInString(tweet) > tweetLimit {
		runes := []rune(tweet)
		tweet = string(runes[:tweetLimit-3]) + "..."
	}

	return tweet
}
