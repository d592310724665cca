package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

type httpPostFunc func(ctx context.Context, url string, body []byte) (*http.Response, error)

type Config struct {
	WebhookURL string

	// MaxAttempts bounds delivery attempts, zero value means 3.
	MaxAttempts int

	// BackoffBase is the delay before the second attempt, doubled
	// after every further failure. Zero value means 500ms.
	BackoffBase time.Duration
}

type WebhookNotifier struct {
	config Config
	post   httpPostFunc
}

var _ Notifier = (*WebhookNotifier)(nil)

func NewWebhookNotifier(config Config) Notifier {
	postFunc := func(ctx context.Context, url string, body []byte) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}

		req.Header.Set("Content-Type", "application/json")
		return http.DefaultClient.Do(req)
	}

	return &WebhookNotifier{config, postFunc}
}

// Notify delivers the terminal payload with bounded retries.
// Transport failures and receiver-side 5xx responses are retried,
// 4xx responses are treated as a final rejection.
func (n *WebhookNotifier) Notify(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	maxAttempts := n.config.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = 3
	}

	backoffBase := n.config.BackoffBase
	if backoffBase == 0 {
		backoffBase = 500 * time.Millisecond
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := backoffBase << (attempt - 1)
			timer := time.NewTimer(backoff)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ErrNotifyTimeout
			}
		}

		lastErr = n.deliver(ctx, payload)
		if lastErr == nil {
			return nil
		}

		if lastErr == ErrRejectedByReceiver {
			return lastErr
		}
	}

	return lastErr
}

func (n *WebhookNotifier) deliver(ctx context.Context, payload []byte) error {
	response, err := n.post(ctx, n.config.WebhookURL, payload)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return ErrNotifyTimeout
		}

		return ErrNotifyUnreachable
	}
	defer response.Body.Close()

	if response.StatusCode >= 500 {
		return ErrReceiverUnavailable
	}

	if response.StatusCode >= 300 {
		return ErrRejectedByReceiver
	}

	return nil
}

var (
	ErrNotifyUnreachable   = errors.New("webhook endpoint is unreachable")
	ErrNotifyTimeout       = errors.New("webhook notification timed out")
	ErrRejectedByReceiver  = errors.New("webhook notification rejected by receiver")
	ErrReceiverUnavailable = errors.New("webhook receiver temporarily unavailable")
)
