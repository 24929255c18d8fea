package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-raycaster/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	workers := flag.Int("workers", 0, "Parallel render workers (0 = sequential)")
	record := flag.String("record", "", "Directory to archive served frames into")
	scenes := flag.String("scenes", "scenes", "Directory with JSON scene descriptors")
	flag.Parse()

	webServer := server.NewServer(server.Config{
		Port:      *port,
		Workers:   *workers,
		RecordDir: *record,
		ScenesDir: *scenes,
	})

	log.Printf("Raycaster Web Server")
	log.Printf("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
