package scene

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
)

// ShapeID is a handle into the scene's shape arena
type ShapeID int

// VolumeID is a handle to a bounding volume
type VolumeID int

// BoundingVolume groups shapes behind a coarse capsule test. Members are
// handles into the owning scene's arena; the volume does not own them.
type BoundingVolume struct {
	Capsule *geometry.Capsule
	Members []ShapeID
}

// View describes the eye and the projection plane the scene is rendered through
type View struct {
	Eye      core.Vec3 // Eye point in camera space
	Distance float64   // Distance from the eye to the projection plane
	Width    float64   // Projection plane extent
	Height   float64
	Columns  int // Output resolution
	Rows     int
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Name   string
	Camera *geometry.Camera
	Lights []lights.Light
	View   View

	shapes   []geometry.Shape
	tags     []string
	topLevel []ShapeID
	volumes  []BoundingVolume

	// Conversion state, so every shape and light is moved into camera space once
	shapeConverted  []bool
	volumeConverted []bool
	lightConverted  []bool
}

// NewScene creates an empty scene
func NewScene(name string) *Scene {
	return &Scene{Name: name}
}

func (s *Scene) add(shape geometry.Shape) ShapeID {
	id := ShapeID(len(s.shapes))
	s.shapes = append(s.shapes, shape)
	s.tags = append(s.tags, "")
	s.shapeConverted = append(s.shapeConverted, false)
	return id
}

// AddShape adds a top-level shape, tested against every primary and shadow ray
func (s *Scene) AddShape(shape geometry.Shape) ShapeID {
	id := s.add(shape)
	s.topLevel = append(s.topLevel, id)
	return id
}

// AddBoundingVolume adds an empty bounding volume
func (s *Scene) AddBoundingVolume(capsule *geometry.Capsule) VolumeID {
	s.volumes = append(s.volumes, BoundingVolume{Capsule: capsule})
	s.volumeConverted = append(s.volumeConverted, false)
	return VolumeID(len(s.volumes) - 1)
}

// AddToVolume adds a shape that is only reachable through the given volume
func (s *Scene) AddToVolume(volume VolumeID, shape geometry.Shape) ShapeID {
	id := s.add(shape)
	s.volumes[volume].Members = append(s.volumes[volume].Members, id)
	return id
}

// AddLight appends a light. Light order is the order contributions are summed in.
func (s *Scene) AddLight(light lights.Light) {
	s.Lights = append(s.Lights, light)
	s.lightConverted = append(s.lightConverted, false)
}

// SetCamera sets the active camera
func (s *Scene) SetCamera(camera *geometry.Camera) {
	s.Camera = camera
}

// Clear removes all shapes and bounding volumes. Lights and camera persist.
func (s *Scene) Clear() {
	s.shapes = nil
	s.tags = nil
	s.topLevel = nil
	s.volumes = nil
	s.shapeConverted = nil
	s.volumeConverted = nil
}

// SetTag labels a shape so callers can find it again, e.g. for picking
func (s *Scene) SetTag(id ShapeID, tag string) {
	s.tags[id] = tag
}

// Tag returns the label of a shape
func (s *Scene) Tag(id ShapeID) string {
	return s.tags[id]
}

// Tagged returns every shape whose tag satisfies match, in arena order
func (s *Scene) Tagged(match func(tag string) bool) []ShapeID {
	var ids []ShapeID
	for i, tag := range s.tags {
		if tag != "" && match(tag) {
			ids = append(ids, ShapeID(i))
		}
	}
	return ids
}

// Shape returns the shape behind a handle
func (s *Scene) Shape(id ShapeID) geometry.Shape {
	return s.shapes[id]
}

// ShapeCount returns the number of shapes in the arena, including volume members
func (s *Scene) ShapeCount() int {
	return len(s.shapes)
}

// Volumes returns the bounding volumes in insertion order
func (s *Scene) Volumes() []BoundingVolume {
	return s.volumes
}

// ConvertToCameraSpace moves every shape, bounding volume and, when
// includeLights is set, every light into the active camera's frame.
// Anything already converted is left alone, so repeated calls are harmless.
func (s *Scene) ConvertToCameraSpace(includeLights bool) {
	if s.Camera == nil {
		return
	}
	transform := s.Camera.WorldToCamera()

	for i, shape := range s.shapes {
		if !s.shapeConverted[i] {
			shape.ConvertToCameraSpace(transform)
			s.shapeConverted[i] = true
		}
	}
	for i, volume := range s.volumes {
		if !s.volumeConverted[i] {
			volume.Capsule.ConvertToCameraSpace(transform)
			s.volumeConverted[i] = true
		}
	}

	if !includeLights {
		return
	}
	for i, light := range s.Lights {
		if !s.lightConverted[i] {
			light.ConvertToCameraSpace(transform)
			s.lightConverted[i] = true
		}
	}
}

// Candidates appends to dst[:0] the shapes a ray must be tested against:
// top-level shapes first, then the members of every volume the ray passes,
// in volume order. The order is stable for a given ray, which the shadow
// test relies on. It also returns how many volumes passed.
func (s *Scene) Candidates(ray core.Ray, dst []ShapeID) ([]ShapeID, int) {
	dst = append(dst[:0], s.topLevel...)
	passed := 0
	for _, volume := range s.volumes {
		if volume.Capsule.Intersects(ray) {
			passed++
			dst = append(dst, volume.Members...)
		}
	}
	return dst, passed
}
