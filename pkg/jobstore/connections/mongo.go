package dbconnections

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type JobDBConfig struct {
	ConnectionString string
}

type JobDBProductionConnection struct {
	config JobDBConfig
	client *mongo.Client
}

var _ JobDBConnection = (*JobDBProductionConnection)(nil)

func NewJobDBProductionConnection(ctx context.Context, config JobDBConfig) (JobDBConnection, error) {
	client, err := mongo.NewClient(options.Client().ApplyURI(config.ConnectionString))
	if err != nil {
		return nil, err
	}

	err = client.Connect(ctx)
	if err != nil {
		return nil, err
	}

	return &JobDBProductionConnection{
		config: config,
		client: client,
	}, nil
}

func (c *JobDBProductionConnection) Collection(collectionName string) *mongo.Collection {
	return c.client.Database("pixbatch").Collection(collectionName)
}
