package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	storageconnections "github.com/thebartekbanach/pixbatch/pkg/storage/connections"
)

type objectNameFunc func(jobID, extension string) string

type imageSink struct {
	conn       storageconnections.BlockStorageConnection
	objectName objectNameFunc
}

var _ ImageSink = (*imageSink)(nil)

func NewImageSink(conn storageconnections.BlockStorageConnection) ImageSink {
	nameFunc := func(jobID, extension string) string {
		return fmt.Sprintf("%s/%s.%s", jobID, uuid.New().String(), extension)
	}

	return &imageSink{conn, nameFunc}
}

func (s *imageSink) Store(ctx context.Context, jobID, mimeType, extension string, data []byte) (string, error) {
	objectName := s.objectName(jobID, extension)

	reader := bytes.NewReader(data)
	if err := s.conn.PutObject(ctx, objectName, int64(len(data)), mimeType, reader); err != nil {
		return "", err
	}

	return s.conn.ObjectRef(objectName), nil
}
