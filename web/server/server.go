package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/df07/go-raycaster/pkg/archive"
	"github.com/df07/go-raycaster/pkg/scene"
)

// Size limits accepted by the render and stream endpoints
const (
	minSize = 16
	maxSize = 2000
)

const shutdownTimeout = 10 * time.Second

// Config controls the web server
type Config struct {
	Port      int
	Workers   int    // parallel render workers (0 = sequential)
	RecordDir string // archive every served frame below this directory when set
	ScenesDir string // directory scanned for descriptor scenes
}

// Server handles web requests for the raycaster
type Server struct {
	config Config

	recordOnce sync.Once
	recorder   *archive.Writer
	recordErr  error
	frameSeq   uint64
	frameMu    sync.Mutex
}

// NewServer creates a new web server
func NewServer(config Config) *Server {
	if config.ScenesDir == "" {
		config.ScenesDir = "scenes"
	}
	return &Server{config: config}
}

// Handler returns the routes served by Start
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/pick", s.handlePick)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/stream", s.handleStream)
	return mux
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is done. In-flight requests get shutdownTimeout to
// finish and the recording session is closed before returning.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	httpServer := &http.Server{Addr: addr, Handler: s.Handler()}

	errs := make(chan error, 1)
	go func() {
		log.Printf("Starting web server on http://localhost%s", addr)
		errs <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errs:
		s.Close()
		return err
	case <-ctx.Done():
	}

	log.Printf("Shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := httpServer.Shutdown(shutdownCtx)
	if closeErr := s.Close(); err == nil {
		err = closeErr
	}
	return err
}

// Close flushes the recording session, if any. Nothing is recorded afterwards.
func (s *Server) Close() error {
	s.recordOnce.Do(func() { s.recordErr = archive.ErrClosed })
	if s.recorder == nil {
		return nil
	}
	return s.recorder.Close()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the built-in and descriptor scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.config.ScenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// imageToPNG encodes an image as PNG
func imageToPNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	data, err := imageToPNG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// record appends an event and, when rgb is non-nil, a frame to the
// recording session. The session is opened lazily on first use.
func (s *Server) record(kind string, payload interface{}, width, height int, rgb []byte) {
	if s.config.RecordDir == "" {
		return
	}
	s.recordOnce.Do(func() {
		var manifest archive.Manifest
		s.recorder, manifest, s.recordErr = archive.NewWriter(s.config.RecordDir, "web", nil)
		if s.recordErr != nil {
			log.Printf("Recording disabled: %v", s.recordErr)
			return
		}
		log.Printf("Recording session %s to %s", manifest.SessionID, s.recorder.Directory())
	})
	if s.recordErr != nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Record warning: %v", err)
		return
	}
	if err := s.recorder.AppendEvent(kind, data); err != nil {
		log.Printf("Record warning: %v", err)
		return
	}
	if rgb == nil {
		return
	}

	s.frameMu.Lock()
	seq := s.frameSeq
	s.frameSeq++
	s.frameMu.Unlock()
	if err := s.recorder.AppendFrame(seq, width, height, rgb); err != nil {
		log.Printf("Record warning: %v", err)
	}
}
