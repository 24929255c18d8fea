package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/material"
	"github.com/df07/go-raycaster/pkg/scene"
)

func renderNamed(t *testing.T, name string, config Config) (*ImageBuffer, *Raycaster) {
	t.Helper()
	s, err := scene.Named(name, scene.Summer)
	if err != nil {
		t.Fatalf("Named(%q) error: %v", name, err)
	}
	rc := NewRaycaster(config, nil)
	buffer := rc.Render(s.View.Eye, s, true)
	buffer.Normalize()
	return buffer, rc
}

func TestRender_SphereScenario(t *testing.T) {
	buffer, rc := renderNamed(t, "sphere", Config{})

	// The center cell looks straight at the near pole
	center := buffer.At(32, 32)
	if center.X < 250 {
		t.Errorf("Expected saturated red at the pole, got %v", center)
	}
	if center.Y != 0 || center.Z != 0 {
		t.Errorf("Expected pure red at the pole, got %v", center)
	}

	for _, corner := range [][2]int{{0, 0}, {0, 64}, {64, 0}, {64, 64}} {
		if got := buffer.At(corner[0], corner[1]); got != (core.Vec3{}) {
			t.Errorf("Expected black background at %v, got %v", corner, got)
		}
	}

	stats := rc.Stats()
	if stats.Pixels != 65*65 {
		t.Errorf("Expected %d pixels, got %d", 65*65, stats.Pixels)
	}
	if stats.Hits == 0 || stats.Hits >= stats.Pixels {
		t.Errorf("Expected some but not all pixels to hit, got %d", stats.Hits)
	}
	if stats.ShadowRays != stats.Hits {
		t.Errorf("Expected one shadow ray per hit, got %d for %d hits", stats.ShadowRays, stats.Hits)
	}
	if stats.ShadowedSamples != 0 {
		t.Errorf("A lone convex shape lit from the eye casts no shadow on itself, got %d", stats.ShadowedSamples)
	}
}

func TestRender_ShadowScenario(t *testing.T) {
	buffer, rc := renderNamed(t, "shadow", Config{})

	// Center cell sees the wall behind the occluding cube; row 10 sees lit wall above it
	shadowed := buffer.At(20, 20)
	lit := buffer.At(10, 20)

	if shadowed.X != 0 || shadowed.Y != 0 {
		t.Errorf("Expected no diffuse light in the shadow, got %v", shadowed)
	}
	if lit.X <= shadowed.X || lit.Y <= shadowed.Y {
		t.Errorf("Expected lit wall %v to be brighter than shadow %v in red and green", lit, shadowed)
	}
	if math.Abs(lit.Z-shadowed.Z) > 1e-9 {
		t.Errorf("Expected equal ambient-only blue channel, got %f and %f", lit.Z, shadowed.Z)
	}
	if shadowed.Z == 0 {
		t.Error("Expected ambient light in the shadow")
	}
	if rc.Stats().ShadowedSamples == 0 {
		t.Error("Expected shadowed samples to be counted")
	}
}

func TestRender_ParallelMatchesSequential(t *testing.T) {
	config := Config{Width: 48, Height: 40}
	sequential, _ := renderNamed(t, "garden", config)

	config.Workers = 3
	parallel, rc := renderNamed(t, "garden", config)

	for r := 0; r < sequential.Rows(); r++ {
		for c := 0; c < sequential.Columns(); c++ {
			if sequential.At(r, c) != parallel.At(r, c) {
				t.Fatalf("Pixel (%d,%d) differs: %v vs %v", r, c, sequential.At(r, c), parallel.At(r, c))
			}
		}
	}

	stats := rc.Stats()
	if stats.Pixels != 48*40 {
		t.Errorf("Expected %d pixels, got %d", 48*40, stats.Pixels)
	}
	if stats.VolumeTests == 0 || stats.VolumeHits == 0 {
		t.Errorf("Expected bounding volumes to be exercised, got %+v", stats)
	}
}

func TestRender_AmbientNeverShadowed(t *testing.T) {
	s := scene.NewScene("ambient")
	s.View = scene.View{Distance: 1, Width: 2, Height: 2, Columns: 3, Rows: 3}
	mat := material.NewMaterial(core.NewVec3(100, 100, 100), core.Vec3{}, core.Vec3{}, 1)
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, -5), 4, mat))
	s.AddLight(lights.NewAmbient(core.NewVec3(0.5, 0.5, 0.5)))

	rc := NewRaycaster(Config{}, nil)
	buffer := rc.Render(core.Vec3{}, s, false)

	if got := buffer.At(1, 1); !got.Equals(core.NewVec3(50, 50, 50)) {
		t.Errorf("Expected ambient term (50,50,50), got %v", got)
	}
	if rc.Stats().ShadowRays != 0 {
		t.Errorf("Expected no shadow rays for ambient light, got %d", rc.Stats().ShadowRays)
	}
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, format)
}

func TestRender_LogsSummary(t *testing.T) {
	s, err := scene.Named("sphere", scene.Summer)
	if err != nil {
		t.Fatalf("Named() error: %v", err)
	}
	logger := &recordingLogger{}
	NewRaycaster(Config{Width: 4, Height: 4}, logger).Render(s.View.Eye, s, true)
	if len(logger.lines) != 1 {
		t.Errorf("Expected one summary line, got %d", len(logger.lines))
	}
}

func TestRaycaster_Trace(t *testing.T) {
	s, err := scene.Named("sphere", scene.Summer)
	if err != nil {
		t.Fatalf("Named() error: %v", err)
	}
	s.ConvertToCameraSpace(true)
	rc := NewRaycaster(Config{}, nil)
	canvas := rc.Canvas(s)

	id, hit, ok := rc.Trace(s, canvas.PickRay(s.View.Eye, 32, 32))
	if !ok || id != 0 {
		t.Fatalf("Expected the sphere under the center cell, got id=%d ok=%v", id, ok)
	}
	if math.Abs(hit.T+20) > 1e-6 {
		t.Errorf("Expected t=-20 at the near pole, got %f", hit.T)
	}

	if _, _, ok := rc.Trace(s, canvas.PickRay(s.View.Eye, 0, 0)); ok {
		t.Error("Expected the corner cell to miss")
	}
}
