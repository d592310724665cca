package main

import (
	"context"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/thebartekbanach/pixbatch/pkg/fetcher"
	"github.com/thebartekbanach/pixbatch/pkg/ingest"
	dbconnections "github.com/thebartekbanach/pixbatch/pkg/jobstore/connections"
	"github.com/thebartekbanach/pixbatch/pkg/notifier"
	"github.com/thebartekbanach/pixbatch/pkg/pipeline"
	storageconnections "github.com/thebartekbanach/pixbatch/pkg/storage/connections"
	"github.com/thebartekbanach/pixbatch/pkg/transformer"
)

func InitializeMongoConnectionConfig() dbconnections.JobDBConfig {
	config := dbconnections.JobDBConfig{
		ConnectionString: os.Getenv("PIXBATCH_MONGO_CONNECTION_STRING"),
	}

	if config.ConnectionString == "" {
		log.Panic("PIXBATCH_MONGO_CONNECTION_STRING is required environment variable")
	}

	if _, err := url.Parse(config.ConnectionString); err != nil {
		log.Panicf("Error ocurred when parsing PIXBATCH_MONGO_CONNECTION_STRING: %s", err)
	}

	return config
}

func InitializeMongoConnection(ctx context.Context, mongoConfig dbconnections.JobDBConfig) dbconnections.JobDBConnection {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	jobDbConnection, err := dbconnections.NewJobDBProductionConnection(ctx, mongoConfig)
	if err != nil {
		log.Panicf("Error ocurred when initializing MongoDB connection: %s", err)
	}

	return jobDbConnection
}

func InitializeMinioConnectionConfig() storageconnections.MinioBlockStorageProductionConnectionConfig {
	config := storageconnections.MinioBlockStorageProductionConnectionConfig{
		Endpoint:  os.Getenv("PIXBATCH_MINIO_ENDPOINT"),
		AccessKey: os.Getenv("PIXBATCH_MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("PIXBATCH_MINIO_SECRET_KEY"),
		Location:  os.Getenv("PIXBATCH_MINIO_LOCATION"),
		Bucket:    os.Getenv("PIXBATCH_MINIO_BUCKET"),
		UseSSL:    os.Getenv("PIXBATCH_MINIO_SSL") == "true",
	}

	if config.Endpoint == "" {
		log.Panic("PIXBATCH_MINIO_ENDPOINT is required environment variable")
	}

	if config.AccessKey == "" {
		log.Panic("PIXBATCH_MINIO_ACCESS_KEY is required environment variable")
	}

	if config.SecretKey == "" {
		log.Panic("PIXBATCH_MINIO_SECRET_KEY is required environment variable")
	}

	if config.Location == "" {
		config.Location = "us-east-1"
	}

	if config.Bucket == "" {
		log.Panic("PIXBATCH_MINIO_BUCKET is required environment variable")
	}

	return config
}

func InitializeMinioConnection(ctx context.Context, minioConfig storageconnections.MinioBlockStorageProductionConnectionConfig) storageconnections.BlockStorageConnection {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	minioBlockStorageConnection, err := storageconnections.NewMinioBlockStorageProductionConnection(ctx, minioConfig)
	if err != nil {
		log.Panicf("Error ocurred when initializing Minio connection: %s", err)
	}

	return &minioBlockStorageConnection
}

func InitializeFetcherConfig() fetcher.Config {
	config := fetcher.Config{
		AllowedDomains: strings.Split(os.Getenv("PIXBATCH_ALLOWED_DOMAINS"), ","),
	}

	if len(config.AllowedDomains) == 1 && config.AllowedDomains[0] == "" {
		config.AllowedDomains = nil
	}

	return config
}

func InitializeNotifierConfig() notifier.Config {
	config := notifier.Config{
		WebhookURL: os.Getenv("PIXBATCH_WEBHOOK_URL"),
	}

	if config.WebhookURL == "" {
		log.Panic("PIXBATCH_WEBHOOK_URL is required environment variable")
	}

	if _, err := url.Parse(config.WebhookURL); err != nil {
		log.Panicf("Error ocurred when parsing PIXBATCH_WEBHOOK_URL: %s", err)
	}

	return config
}

func InitializePipelineConfig() pipeline.Config {
	return pipeline.Config{
		ProductConcurrency: envInt("PIXBATCH_PRODUCT_CONCURRENCY"),
		ImageConcurrency:   envInt("PIXBATCH_IMAGE_CONCURRENCY"),
		Transform: transformer.Config{
			Format:       os.Getenv("PIXBATCH_OUTPUT_FORMAT"),
			Quality:      envInt("PIXBATCH_OUTPUT_QUALITY"),
			MaxDimension: envInt("PIXBATCH_MAX_DIMENSION"),
		},
	}
}

func InitializeRowParser() ingest.RowParser {
	return ingest.NewCSVRowParser(os.Getenv("PIXBATCH_IMAGE_URLS_FIELD"))
}

func envInt(name string) int {
	rawValue := os.Getenv(name)
	if rawValue == "" {
		return 0
	}

	value, err := strconv.Atoi(rawValue)
	if err != nil {
		log.Panicf("Error ocurred when parsing %s: %s", name, err)
	}

	return value
}
