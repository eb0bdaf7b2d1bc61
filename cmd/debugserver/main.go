// Command debugserver receives debug log batches from local game clients
// over websocket and prints them.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
)

func main() {
	port := flag.Int("port", 3001, "HTTP listen port")
	keep := flag.Int("keep", 500, "Number of recent log entries kept for /recent")
	flag.Parse()

	recent := NewRecent(*keep)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /logs", ReceiveLogs(recent, log.Default()))
	mux.HandleFunc("GET /recent", ListRecent(recent))
	mux.HandleFunc("GET /health", Health())

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("[debugserver] starting on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("[debugserver] fatal: %v", err)
	}
}
