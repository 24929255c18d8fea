package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/scene"
)

const (
	pingPeriod     = 30 * time.Second
	writeWait      = 10 * time.Second
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamCommand is sent by stream clients
type StreamCommand struct {
	Type   string `json:"type"` // "season" or "pick"
	Season string `json:"season,omitempty"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// FrameMessage carries one rendered frame
type FrameMessage struct {
	Type      string       `json:"type"` // "frame"
	RenderID  string       `json:"renderId"`
	Scene     string       `json:"scene"`
	Season    scene.Season `json:"season"`
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	Hits      int          `json:"hits"`
	ElapsedMs int64        `json:"elapsedMs"`
	Image     string       `json:"image"` // Base64 encoded PNG
}

// ConsoleEvent forwards a WebLogger message
type ConsoleEvent struct {
	Type string `json:"type"` // "console"
	ConsoleMessage
}

// PickMessage answers a pick command
type PickMessage struct {
	Type string `json:"type"` // "pick"
	PickResponse
}

// ErrorMessage reports a rejected command
type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}

// streamClient owns one websocket connection. Only writePump writes to conn.
type streamClient struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{} // closed when the reader stops
	quit chan struct{} // closed when the writer stops
}

// queue hands a message to the writer, dropping it once the writer is gone
func (c *streamClient) queue(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("stream %s: marshal: %v", c.id, err)
		return
	}
	select {
	case c.send <- data:
	case <-c.quit:
	}
}

func (c *streamClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.quit)
		c.conn.Close()
	}()
	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, []byte{}); err != nil {
				return
			}
		case <-c.done:
			// Drain what the reader queued before it stopped
			for {
				select {
				case msg := <-c.send:
					c.conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
						return
					}
				default:
					c.conn.WriteMessage(websocket.CloseMessage, []byte{})
					return
				}
			}
		}
	}
}

// forwardConsole relays logger output to the client until the reader stops
func (c *streamClient) forwardConsole(consoleChan <-chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			c.queue(ConsoleEvent{Type: "console", ConsoleMessage: msg})
		case <-c.done:
			return
		}
	}
}

// handleStream upgrades to a websocket, sends the first frame and then
// re-renders on every season or pick command
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	req, err := parseFrameRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}

	client := &streamClient{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
		quit: make(chan struct{}),
	}
	go client.writePump()

	consoleChan := make(chan ConsoleMessage, 100)
	logger := NewWebLogger(client.id, consoleChan)
	go client.forwardConsole(consoleChan)

	log.Printf("stream %s: connected (%s)", client.id, r.RemoteAddr)
	defer func() {
		close(client.done)
		log.Printf("stream %s: disconnected", client.id)
	}()

	s.streamFrame(client, req, logger)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd StreamCommand
		if err := json.Unmarshal(data, &cmd); err != nil {
			client.queue(ErrorMessage{Type: "error", Message: "invalid command: " + err.Error()})
			continue
		}
		s.record("command", cmd, 0, 0, nil)

		next, err := s.applyCommand(client, req, cmd)
		if err != nil {
			client.queue(ErrorMessage{Type: "error", Message: err.Error()})
			continue
		}
		if next != req {
			req = next
			s.streamFrame(client, req, logger)
		}
	}
}

// applyCommand returns the frame request that results from cmd
func (s *Server) applyCommand(client *streamClient, req FrameRequest, cmd StreamCommand) (FrameRequest, error) {
	switch cmd.Type {
	case "season":
		season, err := scene.ParseSeason(cmd.Season)
		if err != nil {
			return req, err
		}
		req.Season = season
		return req, nil

	case "pick":
		if req.Scene != "garden" {
			return req, fmt.Errorf("picking needs the garden scene, not %q", req.Scene)
		}
		response, err := s.pickSeason(req, cmd.X, cmd.Y)
		if err != nil {
			return req, err
		}
		client.queue(PickMessage{Type: "pick", PickResponse: response})
		if response.Hit {
			req.Season = response.Season
		}
		return req, nil

	default:
		return req, fmt.Errorf("unknown command type %q", cmd.Type)
	}
}

func (s *Server) streamFrame(client *streamClient, req FrameRequest, logger core.Logger) {
	startTime := time.Now()
	frame, err := s.renderFrame(req, logger)
	if err != nil {
		client.queue(ErrorMessage{Type: "error", Message: err.Error()})
		return
	}

	imageData, err := imageToBase64PNG(frame.Image)
	if err != nil {
		client.queue(ErrorMessage{Type: "error", Message: "failed to encode image: " + err.Error()})
		return
	}
	s.record("frame", req, frame.Canvas.Columns, frame.Canvas.Rows, frame.RGB)

	client.queue(FrameMessage{
		Type:      "frame",
		RenderID:  uuid.NewString(),
		Scene:     req.Scene,
		Season:    req.Season,
		Width:     frame.Canvas.Columns,
		Height:    frame.Canvas.Rows,
		Hits:      frame.Stats.Hits,
		ElapsedMs: time.Since(startTime).Milliseconds(),
		Image:     imageData,
	})
}
