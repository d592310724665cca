package pipeline

import (
	"context"
	"log"
	"sync"

	"github.com/thebartekbanach/pixbatch/pkg/fetcher"
	"github.com/thebartekbanach/pixbatch/pkg/jobstore"
	"github.com/thebartekbanach/pixbatch/pkg/storage"
	"github.com/thebartekbanach/pixbatch/pkg/transformer"
)

type productProcessor struct {
	config      Config
	fetcher     fetcher.Fetcher
	transformer transformer.Transformer
	sink        storage.ImageSink
}

var _ ProductProcessor = (*productProcessor)(nil)

func NewProductProcessor(
	config Config,
	imageFetcher fetcher.Fetcher,
	imageTransformer transformer.Transformer,
	sink storage.ImageSink,
) ProductProcessor {
	return &productProcessor{
		config:      config,
		fetcher:     imageFetcher,
		transformer: imageTransformer,
		sink:        sink,
	}
}

func (p *productProcessor) Process(ctx context.Context, jobID string, product jobstore.ProductModel) ProductResult {
	inputs := product.InputImageRefs

	// Each goroutine owns exactly one slot, so output assignment is
	// positional and never races on completion order.
	outputs := make([]string, len(inputs))
	succeeded := make([]bool, len(inputs))

	semaphore := make(chan struct{}, p.config.imageConcurrency())
	var wg sync.WaitGroup

	for i, inputRef := range inputs {
		wg.Add(1)
		go func(slot int, inputRef string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			outputRef, err := p.processImage(ctx, jobID, inputRef)
			if err != nil {
				log.Printf("job %s: image %s failed: %s", jobID, inputRef, err)
				outputs[slot] = jobstore.SentinelOutput
				return
			}

			outputs[slot] = outputRef
			succeeded[slot] = true
		}(i, inputRef)
	}

	wg.Wait()

	succeededCount := 0
	for _, ok := range succeeded {
		if ok {
			succeededCount++
		}
	}

	product.OutputImageRefs = outputs
	product.HasPartialFailure = succeededCount != len(inputs)

	return ProductResult{
		Product:         product,
		AttemptedImages: len(inputs),
		SucceededImages: succeededCount,
	}
}

func (p *productProcessor) processImage(ctx context.Context, jobID, inputRef string) (string, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, p.config.fetchTimeout())
	defer cancel()

	data, err := p.fetcher.Fetch(fetchCtx, inputRef)
	if err != nil {
		return "", err
	}

	transformed, err := p.transformer.Transform(data, p.config.Transform)
	if err != nil {
		return "", err
	}

	mimeType := transformer.ContentType(p.config.Transform)
	extension := transformer.Extension(p.config.Transform)

	return p.sink.Store(ctx, jobID, mimeType, extension, transformed)
}
