package renderer

import (
	"time"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/scene"
)

// Config controls a Raycaster. Width and Height override the scene view's
// resolution when positive. Workers selects parallel rows (0 = sequential).
type Config struct {
	Width   int
	Height  int
	Workers int
}

// Raycaster casts one primary ray per pixel, finds the nearest surface and
// shades it with hard shadows
type Raycaster struct {
	config Config
	logger core.Logger
	pool   *RowPool
	stats  RenderStats
}

// NewRaycaster creates a raycaster. A nil logger is silent.
func NewRaycaster(config Config, logger core.Logger) *Raycaster {
	if logger == nil {
		logger = nopLogger{}
	}
	rc := &Raycaster{config: config, logger: logger}
	if config.Workers > 0 {
		rc.pool = NewRowPool(config.Workers)
	}
	return rc
}

// Stats returns the statistics of the last frame
func (rc *Raycaster) Stats() RenderStats {
	return rc.stats
}

// Canvas returns the projection plane used for a scene
func (rc *Raycaster) Canvas(s *scene.Scene) Canvas {
	canvas := NewCanvas(s.View)
	if rc.config.Width > 0 {
		canvas.Columns = rc.config.Width
	}
	if rc.config.Height > 0 {
		canvas.Rows = rc.config.Height
	}
	return canvas
}

// Render produces one frame of s as seen from eye. When toCamera is set the
// scene and its lights are first moved into camera space. The scene must
// not be modified while Render runs.
func (rc *Raycaster) Render(eye core.Vec3, s *scene.Scene, toCamera bool) *ImageBuffer {
	start := time.Now()
	if toCamera {
		s.ConvertToCameraSpace(true)
	}

	canvas := rc.Canvas(s)
	buffer := NewImageBuffer(canvas.Rows, canvas.Columns)

	var stats RenderStats
	if rc.pool == nil {
		t := newTracer(s)
		t.renderRows(eye, canvas, buffer, 0, canvas.Rows)
		stats = t.stats
	} else {
		bandStats := make([]RenderStats, len(rc.pool.Bands(canvas.Rows)))
		rc.pool.Run(canvas.Rows, func(band, first, last int) {
			// Bands write disjoint rows of the buffer
			t := newTracer(s)
			t.renderRows(eye, canvas, buffer, first, last)
			bandStats[band] = t.stats
		})
		for _, bs := range bandStats {
			stats.add(bs)
		}
	}

	stats.Elapsed = time.Since(start)
	rc.stats = stats
	rc.logger.Printf("Rendered %s %dx%d: %d hits, %d shadow rays (%d shadowed) in %v\n",
		s.Name, canvas.Columns, canvas.Rows, stats.Hits, stats.ShadowRays, stats.ShadowedSamples, stats.Elapsed)
	return buffer
}

// Trace returns the shape nearest along ray with the same candidate
// enumeration the render loop uses. s must already be in the ray's space.
func (rc *Raycaster) Trace(s *scene.Scene, ray core.Ray) (scene.ShapeID, geometry.Hit, bool) {
	return newTracer(s).cast(ray)
}

// tracer holds the scratch space for one goroutine
type tracer struct {
	scene *scene.Scene
	stats RenderStats

	candidates []scene.ShapeID
	hits       []geometry.Hit
	shadowed   []bool
}

func newTracer(s *scene.Scene) *tracer {
	return &tracer{
		scene:    s,
		shadowed: make([]bool, len(s.Lights)),
	}
}

func (t *tracer) renderRows(eye core.Vec3, canvas Canvas, buffer *ImageBuffer, first, last int) {
	for row := first; row < last; row++ {
		for col := 0; col < canvas.Columns; col++ {
			buffer.Set(row, col, t.shadePixel(canvas.PrimaryRay(eye, row, col)))
			t.stats.Pixels++
		}
	}
}

// cast returns the shape nearest along the ray and its hit
func (t *tracer) cast(ray core.Ray) (scene.ShapeID, geometry.Hit, bool) {
	var passed int
	t.candidates, passed = t.scene.Candidates(ray, t.candidates)
	t.stats.VolumeTests += len(t.scene.Volumes())
	t.stats.VolumeHits += passed

	t.hits = t.hits[:0]
	for _, id := range t.candidates {
		t.hits = append(t.hits, t.scene.Shape(id).Intersect(ray))
	}

	winner, hit := geometry.Nearest(t.hits)
	if winner < 0 {
		return -1, hit, false
	}
	return t.candidates[winner], hit, true
}

func (t *tracer) shadePixel(ray core.Ray) core.Vec3 {
	id, hit, ok := t.cast(ray)
	if !ok {
		return core.Vec3{}
	}
	t.stats.Hits++
	point := ray.At(hit.T)

	// A light sees the point only if its own nearest hit is the same shape
	for i, light := range t.scene.Lights {
		if light.DirectionTo(point).IsZero() {
			t.shadowed[i] = false
			continue
		}
		t.stats.ShadowRays++
		blocker, _, found := t.cast(core.NewRay(light.Origin(), point))
		t.shadowed[i] = !found || blocker != id
		if t.shadowed[i] {
			t.stats.ShadowedSamples++
		}
	}

	return t.scene.Shape(id).Shade(hit, ray, t.scene.Lights, t.shadowed)
}
