package archive

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

// Event is a decoded event log entry
type Event struct {
	Seq        uint64
	CapturedAt time.Time
	Kind       string
	Payload    []byte
}

// Frame is a decoded frame with packed RGB8 pixels
type Frame struct {
	Seq        uint64
	CapturedAt time.Time
	Width      int
	Height     int
	RGB        []byte
}

// Reader reads a session directory written by Writer
type Reader struct {
	dir      string
	manifest Manifest
}

// OpenReader loads the manifest of a session directory
func OpenReader(dir string) (*Reader, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestName))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return &Reader{dir: dir, manifest: manifest}, nil
}

// Manifest returns the session manifest
func (r *Reader) Manifest() Manifest {
	return r.manifest
}

// Events decodes the whole event log
func (r *Reader) Events() ([]Event, error) {
	file, err := os.Open(filepath.Join(r.dir, r.manifest.EventsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(snappy.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("failed to read event log: %w", err)
	}

	var events []Event
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		var record eventRecord
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			return nil, fmt.Errorf("failed to decode event: %w", err)
		}
		payload, err := base64.StdEncoding.DecodeString(record.PayloadB64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode event payload: %w", err)
		}
		captured, err := time.Parse(time.RFC3339Nano, record.CapturedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse event time: %w", err)
		}
		events = append(events, Event{Seq: record.Seq, CapturedAt: captured, Kind: record.Kind, Payload: payload})
	}
	return events, nil
}

// Frames decodes the whole frame stream
func (r *Reader) Frames() ([]Frame, error) {
	file, err := os.Open(filepath.Join(r.dir, r.manifest.FramesPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open frame stream: %w", err)
	}
	defer file.Close()

	decoder, err := zstd.NewReader(file, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer decoder.Close()

	var frames []Frame
	header := make([]byte, frameHeaderSize)
	for {
		if n, err := io.ReadFull(decoder, header); err != nil {
			// A session that was never closed ends after its last flushed frame
			if n == 0 && (errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)) {
				return frames, nil
			}
			return nil, fmt.Errorf("failed to read frame header: %w", err)
		}

		frame := Frame{
			Seq:        binary.LittleEndian.Uint64(header[0:8]),
			CapturedAt: time.Unix(0, int64(binary.LittleEndian.Uint64(header[8:16]))).UTC(),
			Width:      int(binary.LittleEndian.Uint32(header[16:20])),
			Height:     int(binary.LittleEndian.Uint32(header[20:24])),
		}
		frame.RGB = make([]byte, binary.LittleEndian.Uint32(header[24:28]))
		if _, err := io.ReadFull(decoder, frame.RGB); err != nil {
			return nil, fmt.Errorf("failed to read frame %d: %w", frame.Seq, err)
		}
		frames = append(frames, frame)
	}
}
