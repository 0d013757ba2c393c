package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/automoto/doomerang-tracer/shared/netconfig"
)

const heartbeatInterval = 30 * time.Second

// Registration announces the hosted room to the room directory and keeps it alive.
type Registration struct {
	directoryURL string
	roomID       string
	address      string
	server       *Server
	client       *http.Client
	stopCh       chan struct{}
}

type heartbeatRequest struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
}

type regResponse struct {
	ID string `json:"id"`
}

func NewRegistration(directoryURL, address string, server *Server) *Registration {
	return &Registration{
		directoryURL: directoryURL,
		address:      address,
		server:       server,
		client:       &http.Client{Timeout: 5 * time.Second},
		stopCh:       make(chan struct{}),
	}
}

func (r *Registration) Start() {
	if err := r.register(); err != nil {
		log.Printf("[registration] initial registration failed: %v", err)
	}
	go r.heartbeatLoop()
}

func (r *Registration) Stop() {
	close(r.stopCh)
}

func (r *Registration) room() netconfig.RoomInfo {
	cfg := r.server.Room()
	return netconfig.RoomInfo{
		World:      cfg.World,
		Instance:   cfg.Instance,
		Address:    r.address,
		Players:    r.server.PlayerCount(),
		MaxPlayers: cfg.MaxPlayers,
		Version:    cfg.Version,
	}
}

func (r *Registration) register() error {
	body, err := json.Marshal(r.room())
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	resp, err := r.client.Post(r.directoryURL+"/rooms/register", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result regResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	r.roomID = result.ID
	log.Printf("[registration] registered with directory (id=%s)", r.roomID)
	return nil
}

func (r *Registration) heartbeatLoop() {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			if err := r.sendHeartbeat(); err != nil {
				log.Printf("[registration] heartbeat failed: %v", err)
			}
		}
	}
}

func (r *Registration) sendHeartbeat() error {
	if r.roomID == "" {
		return r.register()
	}

	body, err := json.Marshal(heartbeatRequest{
		ID:      r.roomID,
		Players: r.server.PlayerCount(),
	})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	resp, err := r.client.Post(r.directoryURL+"/rooms/heartbeat", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		log.Println("[registration] directory lost our registration, re-registering")
		return r.register()
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	return nil
}
