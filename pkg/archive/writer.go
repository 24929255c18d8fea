// Package archive records render sessions to disk: a snappy-compressed
// JSON event log and a zstd-compressed stream of raw RGB frames, described
// by a manifest.
package archive

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/golang/snappy"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

var (
	ErrClosed    = errors.New("archive writer closed")
	ErrFrameSize = errors.New("frame payload does not match its dimensions")
)

const (
	manifestName = "manifest.json"
	eventsName   = "events.jsonl.sz"
	framesName   = "frames.bin.zst"

	// seq, captured ns, width, height, payload length
	frameHeaderSize = 8 + 8 + 4 + 4 + 4
)

var sessionNameCleaner = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Manifest describes a session directory
type Manifest struct {
	Version    int    `json:"version"`
	SessionID  string `json:"session_id"`
	Name       string `json:"name"`
	CreatedAt  string `json:"created_at"`
	EventsPath string `json:"events_path"`
	FramesPath string `json:"frames_path"`
}

// eventRecord is one line of the event log
type eventRecord struct {
	Seq        uint64 `json:"seq"`
	CapturedAt string `json:"captured_at"`
	Kind       string `json:"kind"`
	PayloadB64 string `json:"payload_b64"`
}

// Writer appends events and frames to a session directory. It is safe for
// concurrent use.
type Writer struct {
	mu          sync.Mutex
	dir         string
	now         func() time.Time
	eventFile   *os.File
	eventStream *snappy.Writer
	frameFile   *os.File
	frameStream *zstd.Encoder
	eventSeq    uint64
	closed      bool
}

// NewWriter creates <root>/<name>-<timestamp>/ with a manifest and opens
// both compressed streams. A nil clock means time.Now.
func NewWriter(root, sessionName string, clock func() time.Time) (*Writer, Manifest, error) {
	if root == "" {
		return nil, Manifest{}, fmt.Errorf("archive root must be provided")
	}
	if clock == nil {
		clock = time.Now
	}

	name := sessionNameCleaner.ReplaceAllString(sessionName, "")
	if name == "" {
		name = "session"
	}
	created := clock().UTC()
	dir := filepath.Join(root, fmt.Sprintf("%s-%s", name, created.Format("20060102T150405Z")))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, Manifest{}, fmt.Errorf("failed to create archive directory: %w", err)
	}

	manifest := Manifest{
		Version:    1,
		SessionID:  uuid.NewString(),
		Name:       name,
		CreatedAt:  created.Format(time.RFC3339Nano),
		EventsPath: eventsName,
		FramesPath: framesName,
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, Manifest{}, err
	}
	if err := os.WriteFile(filepath.Join(dir, manifestName), data, 0o644); err != nil {
		return nil, Manifest{}, fmt.Errorf("failed to write manifest: %w", err)
	}

	eventFile, err := os.Create(filepath.Join(dir, eventsName))
	if err != nil {
		return nil, Manifest{}, fmt.Errorf("failed to create event log: %w", err)
	}
	frameFile, err := os.Create(filepath.Join(dir, framesName))
	if err != nil {
		eventFile.Close()
		return nil, Manifest{}, fmt.Errorf("failed to create frame stream: %w", err)
	}
	frameStream, err := zstd.NewWriter(frameFile)
	if err != nil {
		eventFile.Close()
		frameFile.Close()
		return nil, Manifest{}, fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	return &Writer{
		dir:         dir,
		now:         clock,
		eventFile:   eventFile,
		eventStream: snappy.NewBufferedWriter(eventFile),
		frameFile:   frameFile,
		frameStream: frameStream,
	}, manifest, nil
}

// Directory returns the session directory
func (w *Writer) Directory() string {
	return w.dir
}

// AppendEvent writes one JSON line to the event log and flushes it
func (w *Writer) AppendEvent(kind string, payload []byte) error {
	captured := w.now().UTC()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}

	w.eventSeq++
	line, err := json.Marshal(eventRecord{
		Seq:        w.eventSeq,
		CapturedAt: captured.Format(time.RFC3339Nano),
		Kind:       kind,
		PayloadB64: base64.StdEncoding.EncodeToString(payload),
	})
	if err != nil {
		return err
	}
	line = append(line, '\n')
	if _, err := w.eventStream.Write(line); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return w.eventStream.Flush()
}

// AppendFrame writes a length-prefixed little-endian header followed by
// width*height packed RGB8 pixels. The frame is flushed so sessions that
// are never closed still hold every appended frame.
func (w *Writer) AppendFrame(seq uint64, width, height int, rgb []byte) error {
	if len(rgb) != width*height*3 {
		return fmt.Errorf("%w: %dx%d with %d bytes", ErrFrameSize, width, height, len(rgb))
	}
	captured := w.now().UTC()

	header := make([]byte, frameHeaderSize)
	binary.LittleEndian.PutUint64(header[0:8], seq)
	binary.LittleEndian.PutUint64(header[8:16], uint64(captured.UnixNano()))
	binary.LittleEndian.PutUint32(header[16:20], uint32(width))
	binary.LittleEndian.PutUint32(header[20:24], uint32(height))
	binary.LittleEndian.PutUint32(header[24:28], uint32(len(rgb)))

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	if _, err := w.frameStream.Write(header); err != nil {
		return fmt.Errorf("failed to write frame header: %w", err)
	}
	if _, err := w.frameStream.Write(rgb); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	if err := w.frameStream.Flush(); err != nil {
		return fmt.Errorf("failed to flush frame: %w", err)
	}
	return nil
}

// Close flushes both streams and releases the files. Every step is
// attempted and the first failure is returned.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	keep(w.eventStream.Close())
	keep(w.eventFile.Close())
	keep(w.frameStream.Close())
	keep(w.frameFile.Close())
	return firstErr
}
