package main

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/thebartekbanach/pixbatch/pkg/ingest"
	"github.com/thebartekbanach/pixbatch/pkg/jobstore"
	mock_pipeline "github.com/thebartekbanach/pixbatch/pkg/pipeline/mocks"
)

type stubIDGenerator struct {
	id string
}

func (g stubIDGenerator) GenerateID() string {
	return g.id
}

type stubRunner struct {
	started chan string
}

func (r *stubRunner) Run(ctx context.Context, jobID string, products []jobstore.ProductModel) (jobstore.Status, error) {
	r.started <- jobID
	return jobstore.StatusCompleted, nil
}

func testApp(store *mock_pipeline.MockJobStore, runner *stubRunner) App {
	return NewApp(
		ingest.NewCSVRowParser(""),
		stubIDGenerator{"test-job-id"},
		store,
		runner,
	)
}

func multipartCSVRequest(t *testing.T, document string) *http.Request {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "products.csv")
	if err != nil {
		t.Fatalf("cannot create form file: %s", err)
	}
	part.Write([]byte(document))
	writer.Close()

	request := httptest.NewRequest(http.MethodPost, "/upload", body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	return request
}

func TestHandleUpload_CreatesJobAndDispatchesRunnerOnce(t *testing.T) {
	store := mock_pipeline.NewMockJobStore()
	runner := &stubRunner{started: make(chan string, 1)}
	app := testApp(store, runner)

	document := "Product Name,Input Image Urls\n" +
		"first product,\"http://example.com/a.jpg,http://example.com/b.jpg\"\n"

	recorder := httptest.NewRecorder()
	handleUpload(context.Background(), app)(recorder, multipartCSVRequest(t, document))

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var response uploadResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Response is not valid JSON: %s", err)
	}

	if response.RequestID != "test-job-id" {
		t.Errorf("Expected request ID %q, got %q", "test-job-id", response.RequestID)
	}

	job, err := store.Get(context.Background(), "test-job-id")
	if err != nil {
		t.Fatalf("Expected job to be created, got: %v", err)
	}

	if job.Status != jobstore.StatusProcessing {
		t.Errorf("Expected created job in %q state, got %q", jobstore.StatusProcessing, job.Status)
	}

	if len(job.Products) != 1 || len(job.Products[0].InputImageRefs) != 2 {
		t.Errorf("Expected one product with two image refs, got %+v", job.Products)
	}

	select {
	case startedJobID := <-runner.started:
		if startedJobID != "test-job-id" {
			t.Errorf("Expected runner dispatched for %q, got %q", "test-job-id", startedJobID)
		}
	case <-time.After(time.Second):
		t.Error("Expected runner to be dispatched")
	}
}

func TestHandleUpload_RejectsRequestWithoutFile(t *testing.T) {
	app := testApp(mock_pipeline.NewMockJobStore(), &stubRunner{started: make(chan string, 1)})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/upload", nil)
	handleUpload(context.Background(), app)(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", recorder.Code)
	}
}

func TestHandleUpload_RejectsNonPostMethod(t *testing.T) {
	app := testApp(mock_pipeline.NewMockJobStore(), &stubRunner{started: make(chan string, 1)})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/upload", nil)
	handleUpload(context.Background(), app)(recorder, request)

	if recorder.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", recorder.Code)
	}
}

func TestHandleStatus_ReturnsJobStatusAndProducts(t *testing.T) {
	store := mock_pipeline.NewMockJobStore()
	app := testApp(store, &stubRunner{started: make(chan string, 1)})

	products := []jobstore.ProductModel{{
		Fields:          map[string]string{"Product Name": "first product"},
		InputImageRefs:  []string{"http://example.com/a.jpg"},
		OutputImageRefs: []string{"http://sink/out-a.jpg"},
	}}
	store.Create(context.Background(), "test-job-id", products)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/status/test-job-id", nil)
	handleStatus(context.Background(), app)(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}

	var response statusResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Response is not valid JSON: %s", err)
	}

	if response.Status != jobstore.StatusProcessing {
		t.Errorf("Expected status %q, got %q", jobstore.StatusProcessing, response.Status)
	}

	if len(response.Products) != 1 {
		t.Errorf("Expected one product in response, got %d", len(response.Products))
	}
}

func TestHandleStatus_ReturnsNotFoundForUnknownJob(t *testing.T) {
	app := testApp(mock_pipeline.NewMockJobStore(), &stubRunner{started: make(chan string, 1)})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/status/unknown-job-id", nil)
	handleStatus(context.Background(), app)(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", recorder.Code)
	}

	var response errorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Response is not valid JSON: %s", err)
	}

	if response.Message != "Request not found" {
		t.Errorf("Expected message %q, got %q", "Request not found", response.Message)
	}
}
