package archive

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestWriterRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	now := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	writer, manifest, err := NewWriter(tmp, "garden / summer", clock)
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}

	if filepath.Base(writer.Directory()) != "gardensummer-20240710T120000Z" {
		t.Errorf("Unexpected session directory %q", writer.Directory())
	}
	if _, err := uuid.Parse(manifest.SessionID); err != nil {
		t.Errorf("Expected a UUID session id, got %q", manifest.SessionID)
	}

	if err := writer.AppendEvent("season", []byte(`{"season":"winter"}`)); err != nil {
		t.Fatalf("AppendEvent() error: %v", err)
	}
	now = now.Add(time.Second)
	if err := writer.AppendEvent("pick", []byte("x=10,y=20")); err != nil {
		t.Fatalf("AppendEvent() error: %v", err)
	}

	first := []byte{255, 0, 0, 0, 255, 0}
	second := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	if err := writer.AppendFrame(1, 2, 1, first); err != nil {
		t.Fatalf("AppendFrame() error: %v", err)
	}
	if err := writer.AppendFrame(2, 2, 2, second); err != nil {
		t.Fatalf("AppendFrame() error: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	reader, err := OpenReader(writer.Directory())
	if err != nil {
		t.Fatalf("OpenReader() error: %v", err)
	}
	if reader.Manifest() != manifest {
		t.Errorf("Manifest on disk %+v differs from %+v", reader.Manifest(), manifest)
	}

	events, err := reader.Events()
	if err != nil {
		t.Fatalf("Events() error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].Seq != 1 || events[0].Kind != "season" || string(events[0].Payload) != `{"season":"winter"}` {
		t.Errorf("Unexpected first event %+v", events[0])
	}
	if events[1].Seq != 2 || !events[1].CapturedAt.Equal(now) {
		t.Errorf("Unexpected second event %+v", events[1])
	}

	frames, err := reader.Frames()
	if err != nil {
		t.Fatalf("Frames() error: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("Expected 2 frames, got %d", len(frames))
	}
	if frames[0].Seq != 1 || frames[0].Width != 2 || frames[0].Height != 1 || string(frames[0].RGB) != string(first) {
		t.Errorf("Unexpected first frame %+v", frames[0])
	}
	if frames[1].Seq != 2 || string(frames[1].RGB) != string(second) {
		t.Errorf("Unexpected second frame %+v", frames[1])
	}
	if !frames[1].CapturedAt.Equal(now) {
		t.Errorf("Expected capture time %v, got %v", now, frames[1].CapturedAt)
	}
}

func TestWriterRejectsBadFrames(t *testing.T) {
	writer, _, err := NewWriter(t.TempDir(), "bad", nil)
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}
	defer writer.Close()

	if err := writer.AppendFrame(1, 2, 2, []byte{1, 2, 3}); !errors.Is(err, ErrFrameSize) {
		t.Errorf("Expected ErrFrameSize, got %v", err)
	}
}

func TestWriterUnclosedSession(t *testing.T) {
	writer, _, err := NewWriter(t.TempDir(), "killed", nil)
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}
	t.Cleanup(func() { writer.Close() })

	if err := writer.AppendEvent("render", []byte(`{"scene":"garden"}`)); err != nil {
		t.Fatalf("AppendEvent() error: %v", err)
	}
	for seq := uint64(0); seq < 3; seq++ {
		rgb := []byte{byte(seq), 10, 20, 30, 40, 50}
		if err := writer.AppendFrame(seq, 2, 1, rgb); err != nil {
			t.Fatalf("AppendFrame(%d) error: %v", seq, err)
		}
	}

	// Read while the writer is still open, as after a killed process
	reader, err := OpenReader(writer.Directory())
	if err != nil {
		t.Fatalf("OpenReader() error: %v", err)
	}
	events, err := reader.Events()
	if err != nil || len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d (%v)", len(events), err)
	}
	frames, err := reader.Frames()
	if err != nil {
		t.Fatalf("Frames() error: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("Expected 3 frames, got %d", len(frames))
	}
	for i, frame := range frames {
		if frame.Seq != uint64(i) || frame.RGB[0] != byte(i) || len(frame.RGB) != 6 {
			t.Errorf("Unexpected frame %d: %+v", i, frame)
		}
	}
}

func TestWriterClosed(t *testing.T) {
	writer, _, err := NewWriter(t.TempDir(), "", nil)
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}
	if filepath.Base(writer.Directory())[:8] != "session-" {
		t.Errorf("Expected default session name, got %q", writer.Directory())
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Errorf("Second Close() error: %v", err)
	}
	if err := writer.AppendEvent("late", nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed from AppendEvent, got %v", err)
	}
	if err := writer.AppendFrame(1, 1, 1, []byte{0, 0, 0}); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed from AppendFrame, got %v", err)
	}

	// An empty session still decodes
	reader, err := OpenReader(writer.Directory())
	if err != nil {
		t.Fatalf("OpenReader() error: %v", err)
	}
	if events, err := reader.Events(); err != nil || len(events) != 0 {
		t.Errorf("Expected no events, got %d (%v)", len(events), err)
	}
	if frames, err := reader.Frames(); err != nil || len(frames) != 0 {
		t.Errorf("Expected no frames, got %d (%v)", len(frames), err)
	}
}

func TestNewWriterErrors(t *testing.T) {
	if _, _, err := NewWriter("", "x", nil); err == nil {
		t.Error("Expected error for empty root")
	}
	if _, err := OpenReader(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing session")
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, manifestName), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenReader(dir); err == nil {
		t.Error("Expected error for corrupt manifest")
	}
}
