package notifier

import (
	"context"

	"github.com/thebartekbanach/pixbatch/pkg/jobstore"
)

// Event is the terminal job payload delivered to the webhook receiver.
type Event struct {
	RequestID string                  `json:"requestId"`
	Status    jobstore.Status         `json:"status"`
	Products  []jobstore.ProductModel `json:"products"`
}

type Notifier interface {
	Notify(ctx context.Context, event Event) error
}
