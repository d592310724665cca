package main

import (
	"context"
	"log"
	"net/http"
	"os"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Println("initializing application")
	app := InitializeApp(ctx)

	log.Println("registering http handlers")
	http.HandleFunc("/upload", handleUpload(ctx, app))
	http.HandleFunc("/status/", handleStatus(ctx, app))

	port := os.Getenv("PIXBATCH_PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("listening on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}
