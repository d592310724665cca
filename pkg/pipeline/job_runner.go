package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/thebartekbanach/pixbatch/pkg/jobstore"
	"github.com/thebartekbanach/pixbatch/pkg/notifier"
)

type jobRunner struct {
	config    Config
	processor ProductProcessor
	store     jobstore.Store
	notifier  notifier.Notifier
}

var _ JobRunner = (*jobRunner)(nil)

func NewJobRunner(
	config Config,
	processor ProductProcessor,
	store jobstore.Store,
	jobNotifier notifier.Notifier,
) JobRunner {
	return &jobRunner{
		config:    config,
		processor: processor,
		store:     store,
		notifier:  jobNotifier,
	}
}

func (r *jobRunner) Run(ctx context.Context, jobID string, products []jobstore.ProductModel) (jobstore.Status, error) {
	results := r.processAllProducts(ctx, jobID, products)

	finalProducts := make([]jobstore.ProductModel, len(results))
	attemptedImages, succeededImages := 0, 0
	for i, result := range results {
		finalProducts[i] = result.Product
		attemptedImages += result.AttemptedImages
		succeededImages += result.SucceededImages
	}

	status := jobstore.StatusCompleted
	if attemptedImages > 0 && succeededImages == 0 {
		// Not a single image of the whole job could be produced,
		// the result carries no usable output.
		status = jobstore.StatusFailed
	}

	if err := r.writeTerminal(ctx, jobID, status, finalProducts); err != nil {
		// The job stays durably in Processing state, visible to
		// external reconciliation. Never report terminal state that
		// was not persisted.
		log.Printf("job %s: terminal update failed permanently: %s", jobID, err)
		return jobstore.StatusProcessing, fmt.Errorf("terminal update of job %s: %w", jobID, err)
	}

	event := notifier.Event{
		RequestID: jobID,
		Status:    status,
		Products:  finalProducts,
	}

	// Best-effort delivery: notification failure never mutates the job.
	if err := r.notifier.Notify(ctx, event); err != nil {
		log.Printf("job %s: completion notification failed: %s", jobID, err)
	}

	return status, nil
}

func (r *jobRunner) processAllProducts(ctx context.Context, jobID string, products []jobstore.ProductModel) []ProductResult {
	results := make([]ProductResult, len(products))

	semaphore := make(chan struct{}, r.config.productConcurrency())
	var wg sync.WaitGroup

	for i, product := range products {
		wg.Add(1)
		go func(slot int, product jobstore.ProductModel) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			results[slot] = r.processor.Process(ctx, jobID, product)
		}(i, product)
	}

	wg.Wait()
	return results
}

func (r *jobRunner) writeTerminal(ctx context.Context, jobID string, status jobstore.Status, products []jobstore.ProductModel) error {
	attempts := r.config.terminalWriteAttempts()
	backoff := r.config.terminalWriteBackoff()

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(backoff << (attempt - 1))
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}

		lastErr = r.store.UpdateTerminal(ctx, jobID, status, products)
		if lastErr == nil {
			return nil
		}

		// Retrying cannot help a job that is missing or was already
		// moved to a terminal state.
		if errors.Is(lastErr, jobstore.ErrJobNotFound) || errors.Is(lastErr, jobstore.ErrJobAlreadyTerminal) {
			return lastErr
		}
	}

	return lastErr
}
