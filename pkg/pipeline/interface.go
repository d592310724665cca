package pipeline

import (
	"context"

	"github.com/thebartekbanach/pixbatch/pkg/jobstore"
)

// ProductResult carries a fully attempted product together with
// counters the job runner uses to detect systemic failure.
type ProductResult struct {
	Product         jobstore.ProductModel
	AttemptedImages int
	SucceededImages int
}

type ProductProcessor interface {
	// Process attempts fetch, transform and store for every input
	// image reference of the product exactly once. Failed slots are
	// filled with jobstore.SentinelOutput, remaining slots proceed.
	Process(ctx context.Context, jobID string, product jobstore.ProductModel) ProductResult
}

type JobRunner interface {
	// Run drives processing of all products of a job and moves the
	// job record to its terminal state. The returned status is the
	// durable state of the job after the run.
	Run(ctx context.Context, jobID string, products []jobstore.ProductModel) (jobstore.Status, error)
}
