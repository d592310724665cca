package storage

import "context"

// ImageSink persists transformed image bytes under a unique,
// collision-free location and returns the resulting reference string.
type ImageSink interface {
	Store(ctx context.Context, jobID, mimeType, extension string, data []byte) (ref string, err error)
}
