package main

import (
	"github.com/thebartekbanach/pixbatch/pkg/ingest"
	"github.com/thebartekbanach/pixbatch/pkg/jobstore"
	"github.com/thebartekbanach/pixbatch/pkg/pipeline"
)

// App bundles the collaborators the HTTP boundary needs.
type App struct {
	RowParser   ingest.RowParser
	IDGenerator jobstore.IDGenerator
	Store       jobstore.Store
	Runner      pipeline.JobRunner
}

func NewApp(
	rowParser ingest.RowParser,
	idGenerator jobstore.IDGenerator,
	store jobstore.Store,
	runner pipeline.JobRunner,
) App {
	return App{
		RowParser:   rowParser,
		IDGenerator: idGenerator,
		Store:       store,
		Runner:      runner,
	}
}
