package jobstore

import (
	"context"
	"errors"

	dbconnections "github.com/thebartekbanach/pixbatch/pkg/jobstore/connections"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const jobsCollectionName = "jobs"

type mongoJobStore struct {
	conn dbconnections.JobDBConnection
}

var _ Store = (*mongoJobStore)(nil)

func NewMongoJobStore(conn dbconnections.JobDBConnection) Store {
	return &mongoJobStore{conn}
}

func (s *mongoJobStore) Create(ctx context.Context, jobID string, products []ProductModel) error {
	collection := s.conn.Collection(jobsCollectionName)

	result := collection.FindOne(ctx, bson.M{"requestId": jobID})
	if result.Err() != mongo.ErrNoDocuments {
		return ErrJobAlreadyExists
	}

	job := JobModel{
		RequestID: jobID,
		Status:    StatusProcessing,
		Products:  products,
	}

	_, err := collection.InsertOne(ctx, job)
	return err
}

func (s *mongoJobStore) UpdateTerminal(ctx context.Context, jobID string, status Status, products []ProductModel) error {
	if status != StatusCompleted && status != StatusFailed {
		return ErrNotTerminalStatus
	}

	collection := s.conn.Collection(jobsCollectionName)

	filter := bson.M{"requestId": jobID, "status": StatusProcessing}
	update := bson.M{"$set": bson.M{"status": status, "products": products}}

	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		if findResult := collection.FindOne(ctx, bson.M{"requestId": jobID}); findResult.Err() == mongo.ErrNoDocuments {
			return ErrJobNotFound
		}

		return ErrJobAlreadyTerminal
	}

	return nil
}

func (s *mongoJobStore) Get(ctx context.Context, jobID string) (JobModel, error) {
	collection := s.conn.Collection(jobsCollectionName)

	var job JobModel
	if err := collection.FindOne(ctx, bson.M{"requestId": jobID}).Decode(&job); err != nil {
		if err == mongo.ErrNoDocuments {
			return job, ErrJobNotFound
		}

		return JobModel{}, err
	}

	return job, nil
}

var (
	ErrJobNotFound        = errors.New("job not found")
	ErrJobAlreadyExists   = errors.New("job already exists")
	ErrJobAlreadyTerminal = errors.New("job already reached terminal state")
	ErrNotTerminalStatus  = errors.New("status is not terminal")
)
