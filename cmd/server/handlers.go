package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/thebartekbanach/pixbatch/pkg/jobstore"
)

type uploadResponse struct {
	RequestID string `json:"requestId"`
}

type statusResponse struct {
	Status   jobstore.Status         `json:"status"`
	Products []jobstore.ProductModel `json:"products"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func handleUpload(ctx context.Context, app App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			w.Write([]byte("only POST method is allowed"))
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("file form field is required"))
			return
		}
		defer file.Close()

		products, err := app.RowParser.ParseRows(file)
		if err != nil {
			log.Printf("error ocurred when parsing uploaded document: %s", err)
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("cannot parse uploaded document"))
			return
		}

		jobID := app.IDGenerator.GenerateID()

		createCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		if err := app.Store.Create(createCtx, jobID, products); err != nil {
			log.Printf("error ocurred when creating job %s: %s", jobID, err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("cannot create job"))
			return
		}

		// The job is dispatched exactly once, here. Its lifetime is
		// bound to the server context, not to this request.
		go func() {
			if _, err := app.Runner.Run(ctx, jobID, products); err != nil {
				log.Printf("job %s finished with error: %s", jobID, err)
			}
		}()

		writeJSON(w, http.StatusOK, uploadResponse{RequestID: jobID})
	}
}

func handleStatus(ctx context.Context, app App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			w.Write([]byte("only GET method is allowed"))
			return
		}

		jobID := strings.TrimPrefix(r.URL.Path, "/status/")
		if jobID == "" || strings.Contains(jobID, "/") {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("request ID is required"))
			return
		}

		getCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		job, err := app.Store.Get(getCtx, jobID)
		if err == jobstore.ErrJobNotFound {
			writeJSON(w, http.StatusNotFound, errorResponse{Message: "Request not found"})
			return
		}
		if err != nil {
			log.Printf("error ocurred when getting job %s: %s", jobID, err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("cannot get job"))
			return
		}

		writeJSON(w, http.StatusOK, statusResponse{Status: job.Status, Products: job.Products})
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	jsonResult, err := json.Marshal(payload)
	if err != nil {
		log.Printf("error ocurred when marshalling response: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("error ocurred when marshalling response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(jsonResult)
}
