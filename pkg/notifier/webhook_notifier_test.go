package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/thebartekbanach/pixbatch/pkg/jobstore"
)

type notifyResponseBody struct {
	io.Reader
}

func (body *notifyResponseBody) Close() error {
	return nil
}

func postFuncFactory(results []postResult, receivedBodies *[][]byte) httpPostFunc {
	call := 0
	return func(_ context.Context, url string, body []byte) (*http.Response, error) {
		if receivedBodies != nil {
			*receivedBodies = append(*receivedBodies, body)
		}

		result := results[len(results)-1]
		if call < len(results) {
			result = results[call]
		}
		call++

		if result.err != nil {
			return nil, result.err
		}

		return &http.Response{
			StatusCode: result.statusCode,
			Body:       &notifyResponseBody{strings.NewReader("")},
		}, nil
	}
}

type postResult struct {
	statusCode int
	err        error
}

func testEvent() Event {
	return Event{
		RequestID: "test-job-id",
		Status:    jobstore.StatusCompleted,
		Products: []jobstore.ProductModel{
			{
				Fields:          map[string]string{"SKU": "sku-1"},
				InputImageRefs:  []string{"http://example.com/a.jpg"},
				OutputImageRefs: []string{"http://sink/out-a.jpg"},
			},
		},
	}
}

func fastNotifier(post httpPostFunc) *WebhookNotifier {
	config := Config{
		WebhookURL:  "http://webhook.example.com/completed",
		MaxAttempts: 3,
		BackoffBase: time.Millisecond,
	}

	return &WebhookNotifier{config, post}
}

func TestWebhookNotifier_ShouldDeliverTerminalPayloadAsJSON(t *testing.T) {
	var receivedBodies [][]byte
	post := postFuncFactory([]postResult{{statusCode: 200}}, &receivedBodies)

	n := fastNotifier(post)
	if err := n.Notify(context.Background(), testEvent()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(receivedBodies) != 1 {
		t.Fatalf("Expected exactly one delivery, got %d", len(receivedBodies))
	}

	var delivered Event
	if err := json.Unmarshal(receivedBodies[0], &delivered); err != nil {
		t.Fatalf("Delivered payload is not valid JSON: %s", err)
	}

	if delivered.RequestID != "test-job-id" || delivered.Status != jobstore.StatusCompleted {
		t.Errorf("Delivered payload does not match the event: %+v", delivered)
	}
}

func TestWebhookNotifier_ShouldRetryTransportFailuresUntilSuccess(t *testing.T) {
	var receivedBodies [][]byte
	post := postFuncFactory([]postResult{
		{err: errors.New("connection refused")},
		{err: errors.New("connection refused")},
		{statusCode: 200},
	}, &receivedBodies)

	n := fastNotifier(post)
	if err := n.Notify(context.Background(), testEvent()); err != nil {
		t.Fatalf("Expected delivery to succeed on third attempt, got: %v", err)
	}

	if len(receivedBodies) != 3 {
		t.Errorf("Expected 3 attempts, got %d", len(receivedBodies))
	}
}

func TestWebhookNotifier_ShouldCapRetriesAtConfiguredBound(t *testing.T) {
	var receivedBodies [][]byte
	post := postFuncFactory([]postResult{
		{err: errors.New("connection refused")},
	}, &receivedBodies)

	n := fastNotifier(post)
	err := n.Notify(context.Background(), testEvent())

	if err != ErrNotifyUnreachable {
		t.Errorf("Expected ErrNotifyUnreachable, got: %v", err)
	}

	if len(receivedBodies) != 3 {
		t.Errorf("Expected exactly 3 attempts, got %d", len(receivedBodies))
	}
}

func TestWebhookNotifier_ShouldRetryReceiverSide5xxResponses(t *testing.T) {
	var receivedBodies [][]byte
	post := postFuncFactory([]postResult{
		{statusCode: 503},
		{statusCode: 200},
	}, &receivedBodies)

	n := fastNotifier(post)
	if err := n.Notify(context.Background(), testEvent()); err != nil {
		t.Fatalf("Expected delivery to succeed on second attempt, got: %v", err)
	}

	if len(receivedBodies) != 2 {
		t.Errorf("Expected 2 attempts, got %d", len(receivedBodies))
	}
}

func TestWebhookNotifier_ShouldNotRetryWhenReceiverRejectsPayload(t *testing.T) {
	var receivedBodies [][]byte
	post := postFuncFactory([]postResult{{statusCode: 400}}, &receivedBodies)

	n := fastNotifier(post)
	err := n.Notify(context.Background(), testEvent())

	if err != ErrRejectedByReceiver {
		t.Errorf("Expected ErrRejectedByReceiver, got: %v", err)
	}

	if len(receivedBodies) != 1 {
		t.Errorf("Expected exactly 1 attempt for rejected payload, got %d", len(receivedBodies))
	}
}

func TestWebhookNotifier_ShouldStopRetryingWhenContextIsCancelled(t *testing.T) {
	post := postFuncFactory([]postResult{{err: errors.New("connection refused")}}, nil)

	config := Config{
		WebhookURL:  "http://webhook.example.com/completed",
		MaxAttempts: 5,
		BackoffBase: time.Second,
	}
	n := &WebhookNotifier{config, post}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := n.Notify(ctx, testEvent())
	if err != ErrNotifyTimeout {
		t.Errorf("Expected ErrNotifyTimeout, got: %v", err)
	}
}
