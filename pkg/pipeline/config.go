package pipeline

import (
	"time"

	"github.com/thebartekbanach/pixbatch/pkg/transformer"
)

type Config struct {
	// ProductConcurrency bounds how many products of one job are
	// processed simultaneously. Zero value means 4.
	ProductConcurrency int

	// ImageConcurrency bounds how many images of one product are
	// fetched simultaneously. Zero value means 4.
	ImageConcurrency int

	// FetchTimeout bounds a single image fetch. Zero value means 30s.
	FetchTimeout time.Duration

	// Transform is applied to every fetched image.
	Transform transformer.Config

	// TerminalWriteAttempts bounds retries of the terminal job store
	// update. Zero value means 3.
	TerminalWriteAttempts int

	// TerminalWriteBackoff is the delay before the second terminal
	// write attempt, doubled after every further failure.
	// Zero value means 500ms.
	TerminalWriteBackoff time.Duration
}

const (
	defaultConcurrency           = 4
	defaultFetchTimeout          = 30 * time.Second
	defaultTerminalWriteAttempts = 3
	defaultTerminalWriteBackoff  = 500 * time.Millisecond
)

func (c Config) productConcurrency() int {
	if c.ProductConcurrency <= 0 {
		return defaultConcurrency
	}
	return c.ProductConcurrency
}

func (c Config) imageConcurrency() int {
	if c.ImageConcurrency <= 0 {
		return defaultConcurrency
	}
	return c.ImageConcurrency
}

func (c Config) fetchTimeout() time.Duration {
	if c.FetchTimeout <= 0 {
		return defaultFetchTimeout
	}
	return c.FetchTimeout
}

func (c Config) terminalWriteAttempts() int {
	if c.TerminalWriteAttempts <= 0 {
		return defaultTerminalWriteAttempts
	}
	return c.TerminalWriteAttempts
}

func (c Config) terminalWriteBackoff() time.Duration {
	if c.TerminalWriteBackoff <= 0 {
		return defaultTerminalWriteBackoff
	}
	return c.TerminalWriteBackoff
}
