package fetcher

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	testutils "github.com/thebartekbanach/pixbatch/test/utils"
)

func TestHTTPFetcher_ShouldFetchFromRealHTTPServer(t *testing.T) {
	testData := []byte{0x1, 0x2, 0x3, 0x4}

	server := testutils.NewTestHttpServer()
	server.HandleFunc("/image.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Write(testData)
	})
	baseURL := server.Start(t)

	f := NewHTTPFetcher(Config{})
	data, err := f.Fetch(context.Background(), baseURL+"/image.jpg")

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !bytes.Equal(data, testData) {
		t.Errorf("Expected %v, got %v", testData, data)
	}
}

func TestHTTPFetcher_ShouldTimeOutOnSlowRealHTTPServer(t *testing.T) {
	server := testutils.NewTestHttpServer()
	server.HandleFunc("/slow.jpg", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
		w.Write([]byte{0x1})
	})
	baseURL := server.Start(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	f := NewHTTPFetcher(Config{})
	_, err := f.Fetch(ctx, baseURL+"/slow.jpg")

	if err != ErrFetchTimeout {
		t.Errorf("Expected ErrFetchTimeout, got: %v", err)
	}
}
