package mock_pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/thebartekbanach/pixbatch/pkg/fetcher"
	"github.com/thebartekbanach/pixbatch/pkg/jobstore"
	"github.com/thebartekbanach/pixbatch/pkg/notifier"
	"github.com/thebartekbanach/pixbatch/pkg/storage"
	"github.com/thebartekbanach/pixbatch/pkg/transformer"
)

// MockFetcher serves configured byte payloads per URL, with optional
// per-URL artificial delay and error injection.
type MockFetcher struct {
	lock      sync.Mutex
	responses map[string][]byte
	errors    map[string]error
	delays    map[string]time.Duration
	calls     []string
}

var _ fetcher.Fetcher = (*MockFetcher)(nil)

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		responses: make(map[string][]byte),
		errors:    make(map[string]error),
		delays:    make(map[string]time.Duration),
	}
}

func (f *MockFetcher) GivenResponse(url string, data []byte) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.responses[url] = data
}

func (f *MockFetcher) GivenError(url string, err error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.errors[url] = err
}

func (f *MockFetcher) GivenDelay(url string, delay time.Duration) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.delays[url] = delay
}

func (f *MockFetcher) Calls() []string {
	f.lock.Lock()
	defer f.lock.Unlock()

	calls := make([]string, len(f.calls))
	copy(calls, f.calls)
	return calls
}

func (f *MockFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.lock.Lock()
	f.calls = append(f.calls, url)
	delay := f.delays[url]
	err := f.errors[url]
	data, found := f.responses[url]
	f.lock.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fetcher.ErrFetchTimeout
		}
	}

	if err != nil {
		return nil, err
	}

	if !found {
		return nil, fetcher.ErrUnreachable
	}

	return data, nil
}

// MockTransformer passes input bytes through unchanged,
// or fails every call with the configured error.
type MockTransformer struct {
	Err error
}

var _ transformer.Transformer = (*MockTransformer)(nil)

func (t *MockTransformer) Transform(data []byte, config transformer.Config) ([]byte, error) {
	if t.Err != nil {
		return nil, t.Err
	}

	return data, nil
}

// MockImageSink derives the reference from stored bytes, so tests can
// assert which input landed in which output slot.
type MockImageSink struct {
	lock   sync.Mutex
	Err    error
	stored [][]byte
}

var _ storage.ImageSink = (*MockImageSink)(nil)

func NewMockImageSink() *MockImageSink {
	return &MockImageSink{}
}

func (s *MockImageSink) Store(ctx context.Context, jobID, mimeType, extension string, data []byte) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.Err != nil {
		return "", s.Err
	}

	s.stored = append(s.stored, data)
	return "sink://" + jobID + "/" + string(data), nil
}

func (s *MockImageSink) StoredCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.stored)
}

// MockJobStore is an in-memory jobstore.Store with the same
// transition rules as the production adapter.
type MockJobStore struct {
	lock                sync.Mutex
	jobs                map[string]jobstore.JobModel
	updateTerminalCalls int
	failUpdatesLeft     int
	updateErr           error
}

var _ jobstore.Store = (*MockJobStore)(nil)

func NewMockJobStore() *MockJobStore {
	return &MockJobStore{jobs: make(map[string]jobstore.JobModel)}
}

// FailUpdateTerminalTimes makes the next n UpdateTerminal calls fail with err.
func (s *MockJobStore) FailUpdateTerminalTimes(n int, err error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.failUpdatesLeft = n
	s.updateErr = err
}

func (s *MockJobStore) UpdateTerminalCalls() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.updateTerminalCalls
}

func (s *MockJobStore) Create(ctx context.Context, jobID string, products []jobstore.ProductModel) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, exists := s.jobs[jobID]; exists {
		return jobstore.ErrJobAlreadyExists
	}

	s.jobs[jobID] = jobstore.JobModel{
		RequestID: jobID,
		Status:    jobstore.StatusProcessing,
		Products:  products,
	}

	return nil
}

func (s *MockJobStore) UpdateTerminal(ctx context.Context, jobID string, status jobstore.Status, products []jobstore.ProductModel) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.updateTerminalCalls++

	if s.failUpdatesLeft > 0 {
		s.failUpdatesLeft--
		return s.updateErr
	}

	job, exists := s.jobs[jobID]
	if !exists {
		return jobstore.ErrJobNotFound
	}

	if job.Status != jobstore.StatusProcessing {
		return jobstore.ErrJobAlreadyTerminal
	}

	job.Status = status
	job.Products = products
	s.jobs[jobID] = job

	return nil
}

func (s *MockJobStore) Get(ctx context.Context, jobID string) (jobstore.JobModel, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	job, exists := s.jobs[jobID]
	if !exists {
		return jobstore.JobModel{}, jobstore.ErrJobNotFound
	}

	return job, nil
}

// MockNotifier records delivered events.
type MockNotifier struct {
	lock   sync.Mutex
	Err    error
	events []notifier.Event
}

var _ notifier.Notifier = (*MockNotifier)(nil)

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (n *MockNotifier) Notify(ctx context.Context, event notifier.Event) error {
	n.lock.Lock()
	defer n.lock.Unlock()

	n.events = append(n.events, event)
	return n.Err
}

func (n *MockNotifier) Events() []notifier.Event {
	n.lock.Lock()
	defer n.lock.Unlock()

	events := make([]notifier.Event, len(n.events))
	copy(events, n.events)
	return events
}
