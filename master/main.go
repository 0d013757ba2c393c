package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"
)

func main() {
	port := flag.Int("port", 8080, "HTTP listen port")
	ttl := flag.Duration("ttl", 90*time.Second, "Room TTL before expiry")
	flag.Parse()

	reg := NewRegistry(*ttl)
	defer reg.Stop()

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("[directory] starting on %s (TTL=%s)", addr, *ttl)
	if err := http.ListenAndServe(addr, NewMux(reg)); err != nil {
		log.Fatalf("[directory] fatal: %v", err)
	}
}

// NewMux routes the room directory API.
func NewMux(reg *Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /rooms", ListRooms(reg))
	mux.HandleFunc("POST /rooms/register", RegisterRoom(reg))
	mux.HandleFunc("POST /rooms/heartbeat", Heartbeat(reg))
	mux.HandleFunc("GET /health", Health())
	return mux
}
