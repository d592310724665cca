package jobstore

import "github.com/google/uuid"

type uuidIDGenerator struct{}

var _ IDGenerator = (*uuidIDGenerator)(nil)

func NewUUIDIDGenerator() IDGenerator {
	return &uuidIDGenerator{}
}

func (g *uuidIDGenerator) GenerateID() string {
	return uuid.New().String()
}
