package storageconnections

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
)

type BlockStorageConnection interface {
	GetObject(ctx context.Context, objectName string) (*minio.Object, error)
	PutObject(ctx context.Context, objectName string, objectSize int64, mimeType string, reader io.Reader) error
	DeleteObject(ctx context.Context, objectName string) error
	ObjectExists(ctx context.Context, objectName string) (exists bool, err error)

	// ObjectRef builds the externally usable location string
	// of an object stored under given name.
	ObjectRef(objectName string) string
}
