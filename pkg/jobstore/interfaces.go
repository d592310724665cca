package jobstore

import "context"

type Status string

const (
	StatusProcessing Status = "Processing"
	StatusCompleted  Status = "Completed"
	StatusFailed     Status = "Failed"
)

// SentinelOutput marks an output slot whose image could not be produced.
const SentinelOutput = ""

type JobModel struct {
	RequestID string         `json:"requestId" bson:"requestId"`
	Status    Status         `json:"status" bson:"status"`
	Products  []ProductModel `json:"products" bson:"products"`
}

// ProductModel is one row of a submitted batch. Fields carries all
// cells of the ingestion row untouched; InputImageRefs and
// OutputImageRefs are owned by the processing pipeline.
type ProductModel struct {
	Fields            map[string]string `json:"fields" bson:"fields"`
	InputImageRefs    []string          `json:"inputImageRefs" bson:"inputImageRefs"`
	OutputImageRefs   []string          `json:"outputImageRefs" bson:"outputImageRefs"`
	HasPartialFailure bool              `json:"hasPartialFailure" bson:"hasPartialFailure"`
}

type Store interface {
	// Create persists a new job in StatusProcessing state.
	Create(ctx context.Context, jobID string, products []ProductModel) error

	// UpdateTerminal moves a job from StatusProcessing to the given
	// terminal status, writing final products in the same update.
	// Only one terminal write per job ever succeeds.
	UpdateTerminal(ctx context.Context, jobID string, status Status, products []ProductModel) error

	Get(ctx context.Context, jobID string) (JobModel, error)
}

type IDGenerator interface {
	GenerateID() string
}
