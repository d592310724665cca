package dbconnections

import (
	"go.mongodb.org/mongo-driver/mongo"
)

type JobDBConnection interface {
	Collection(collectionName string) *mongo.Collection
}
