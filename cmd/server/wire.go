//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/thebartekbanach/pixbatch/pkg/fetcher"
	"github.com/thebartekbanach/pixbatch/pkg/jobstore"
	"github.com/thebartekbanach/pixbatch/pkg/notifier"
	"github.com/thebartekbanach/pixbatch/pkg/pipeline"
	"github.com/thebartekbanach/pixbatch/pkg/storage"
	"github.com/thebartekbanach/pixbatch/pkg/transformer"
)

func InitializeApp(ctx context.Context) App {
	wire.Build(
		InitializeMongoConnectionConfig,
		InitializeMongoConnection,
		jobstore.NewMongoJobStore,
		jobstore.NewUUIDIDGenerator,

		InitializeMinioConnectionConfig,
		InitializeMinioConnection,
		storage.NewImageSink,

		InitializeFetcherConfig,
		fetcher.NewHTTPFetcher,

		transformer.NewImageTransformer,

		InitializePipelineConfig,
		pipeline.NewProductProcessor,
		pipeline.NewJobRunner,

		InitializeNotifierConfig,
		notifier.NewWebhookNotifier,

		InitializeRowParser,
		NewApp,
	)

	return App{}
}
