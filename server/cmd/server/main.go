package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/doomerang-tracer/server/core"
	"github.com/automoto/doomerang-tracer/shared/netconfig"
	"github.com/automoto/doomerang-tracer/shared/protocol"
)

func main() {
	port := flag.Uint("port", netconfig.DefaultPort, "Server port")
	tickRate := flag.Int("tickrate", netconfig.DefaultTickRate, "Server tick rate (updates per second)")
	world := flag.String("world", "Plaza", "World hosted by this relay")
	instance := flag.String("instance", "1", "Instance name within the world")
	version := flag.String("version", protocol.Version, "Required client version (empty = accept any)")
	maxPlayers := flag.Int("max", 32, "Player cap (0 = unlimited)")
	directory := flag.String("directory", "", "Room directory URL to register with")
	public := flag.String("public", "", "Address clients should dial, as registered with the directory")
	flag.Parse()

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	server := core.NewServer(core.Config{
		TickRate:   *tickRate,
		World:      *world,
		Instance:   *instance,
		Version:    *version,
		MaxPlayers: *maxPlayers,
	})

	var reg *core.Registration
	if *directory != "" {
		addr := *public
		if addr == "" {
			addr = fmt.Sprintf("localhost:%d", *port)
		}
		reg = core.NewRegistration(*directory, addr, server)
		reg.Start()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down relay...")
		if reg != nil {
			reg.Stop()
		}
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting relay for %s/%s on port %d (tick rate: %d/s, version: %s)",
		*world, *instance, *port, *tickRate, *version)
	if err := server.Start(*port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
