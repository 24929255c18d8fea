package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/df07/go-raycaster/pkg/core"
)

// ConsoleMessage is one line of render output shown in the browser console
type ConsoleMessage struct {
	StreamID  string    `json:"streamId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger for one stream connection. Messages go
// to stdout and, without blocking, to the stream's console channel.
type WebLogger struct {
	streamID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a logger for the stream with the given ID
func NewWebLogger(streamID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		streamID:    streamID,
		consoleChan: consoleChan,
	}
}

// messageLevel classifies a line by its leading word
func messageLevel(message string) string {
	lower := strings.ToLower(strings.TrimSpace(message))
	switch {
	case strings.HasPrefix(lower, "error"):
		return "error"
	case strings.HasPrefix(lower, "warning"):
		return "warning"
	default:
		return "info"
	}
}

// Printf implements core.Logger
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fmt.Printf("[%s] %s", shortID(wl.streamID), message)

	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		StreamID:  wl.streamID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     messageLevel(message),
	}:
	default:
		// Full; the browser misses this line
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
