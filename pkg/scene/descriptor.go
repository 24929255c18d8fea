package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/loaders"
	"github.com/df07/go-raycaster/pkg/material"
)

var (
	ErrUnknownShapeKind  = errors.New("unknown shape kind")
	ErrUnknownLightKind  = errors.New("unknown light kind")
	ErrUnknownTexture    = errors.New("unknown texture")
	ErrUnknownTransform  = errors.New("unknown transform")
	ErrInvalidDescriptor = errors.New("invalid scene descriptor")
)

// Default projection used when a descriptor leaves the view empty
const (
	DefaultDistance = 30.0
	DefaultExtent   = 60.0
	DefaultColumns  = 500
	DefaultRows     = 500
)

// Vec is a JSON triple
type Vec [3]float64

func (v Vec) vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// Descriptor is the declarative form of a scene. Build turns it into a Scene.
type Descriptor struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Group       string                 `json:"group,omitempty"`
	View        ViewSpec               `json:"view"`
	Camera      CameraSpec             `json:"camera"`
	Lights      []LightSpec            `json:"lights"`
	Textures    map[string]TextureSpec `json:"textures,omitempty"`
	Shapes      []ShapeSpec            `json:"shapes"`
	Volumes     []VolumeSpec           `json:"volumes,omitempty"`
}

type ViewSpec struct {
	Eye      Vec     `json:"eye"`
	Distance float64 `json:"distance"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Columns  int     `json:"columns"`
	Rows     int     `json:"rows"`
}

type CameraSpec struct {
	Position Vec `json:"position"`
	LookAt   Vec `json:"lookAt"`
	Up       Vec `json:"up"`
}

// LightSpec describes an "ambient" or "point" light
type LightSpec struct {
	Kind      string `json:"kind"`
	Position  Vec    `json:"position"`
	Intensity Vec    `json:"intensity"`
}

type MaterialSpec struct {
	Ambient   Vec `json:"ambient"`
	Diffuse   Vec `json:"diffuse"`
	Specular  Vec `json:"specular"`
	Shininess int `json:"shininess"`
}

func (m MaterialSpec) material() material.Material {
	return material.NewMaterial(m.Ambient.vec3(), m.Diffuse.vec3(), m.Specular.vec3(), m.Shininess)
}

// TransformSpec is applied to a shape after construction.
// Op is one of translate, scale, rotateX, rotateY, rotateZ.
type TransformSpec struct {
	Op      string  `json:"op"`
	Vector  Vec     `json:"vector"`
	Degrees float64 `json:"degrees,omitempty"`
}

// ShapeSpec describes one shape. Which fields are read depends on Kind:
//
//	sphere:   center, radius
//	plane:    center, normal, texture (optional)
//	disc:     center, normal, radius
//	triangle: vertices (three)
//	cylinder: base, direction, radius, height
//	cone:     base, direction, radius, height
//	cube:     corner, width, height, depth
type ShapeSpec struct {
	Kind       string          `json:"kind"`
	Tag        string          `json:"tag,omitempty"`
	Center     Vec             `json:"center"`
	Normal     Vec             `json:"normal"`
	Base       Vec             `json:"base"`
	Direction  Vec             `json:"direction"`
	Corner     Vec             `json:"corner"`
	Vertices   []Vec           `json:"vertices"`
	Radius     float64         `json:"radius,omitempty"`
	Height     float64         `json:"height,omitempty"`
	Width      float64         `json:"width,omitempty"`
	Depth      float64         `json:"depth,omitempty"`
	Texture    string          `json:"texture,omitempty"`
	Material   MaterialSpec    `json:"material"`
	Transforms []TransformSpec `json:"transforms,omitempty"`
}

// VolumeSpec is a bounding capsule and the shapes only reachable through it
type VolumeSpec struct {
	Radius float64     `json:"radius"`
	Base   Vec         `json:"base"`
	Top    Vec         `json:"top"`
	Shapes []ShapeSpec `json:"shapes"`
}

// TextureSpec describes a texture. Kind is "image" (Path, relative to the
// descriptor), "checker", "gradient" or "noise".
type TextureSpec struct {
	Kind      string  `json:"kind"`
	Path      string  `json:"path,omitempty"`
	Width     int     `json:"width,omitempty"`
	Height    int     `json:"height,omitempty"`
	CheckSize int     `json:"checkSize,omitempty"`
	Color1    Vec     `json:"color1"`
	Color2    Vec     `json:"color2"`
	Variation float64 `json:"variation,omitempty"`
	Seed      int64   `json:"seed,omitempty"`
}

// ParseDescriptor decodes a JSON descriptor and fills in view defaults
func ParseDescriptor(r io.Reader) (*Descriptor, error) {
	var desc Descriptor
	if err := json.NewDecoder(r).Decode(&desc); err != nil {
		return nil, fmt.Errorf("failed to decode scene descriptor: %w", err)
	}
	desc.applyDefaults()
	return &desc, nil
}

// LoadDescriptor reads a descriptor file
func LoadDescriptor(path string) (*Descriptor, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene descriptor: %w", err)
	}
	defer file.Close()

	desc, err := ParseDescriptor(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if desc.Name == "" {
		desc.Name = titleCase(trimExt(filepath.Base(path)))
	}
	return desc, nil
}

func (d *Descriptor) applyDefaults() {
	if d.View.Distance <= 0 {
		d.View.Distance = DefaultDistance
	}
	if d.View.Width <= 0 {
		d.View.Width = DefaultExtent
	}
	if d.View.Height <= 0 {
		d.View.Height = DefaultExtent
	}
	if d.View.Columns <= 0 {
		d.View.Columns = DefaultColumns
	}
	if d.View.Rows <= 0 {
		d.View.Rows = DefaultRows
	}
	if d.Camera.Up == (Vec{}) {
		d.Camera.Up = Vec{0, 1, 0}
	}
}

// WithResolution returns a copy of the descriptor rendering at columns x rows.
// Non-positive values keep the current resolution.
func (d *Descriptor) WithResolution(columns, rows int) *Descriptor {
	out := *d
	if columns > 0 {
		out.View.Columns = columns
	}
	if rows > 0 {
		out.View.Rows = rows
	}
	return &out
}

// ResolveTextures builds every texture the descriptor declares. Image paths
// are resolved relative to baseDir.
func ResolveTextures(desc *Descriptor, baseDir string) (map[string]material.Texture, error) {
	textures := make(map[string]material.Texture, len(desc.Textures))
	for name, spec := range desc.Textures {
		texture, err := buildTexture(spec, baseDir)
		if err != nil {
			return nil, fmt.Errorf("texture %q: %w", name, err)
		}
		textures[name] = texture
	}
	return textures, nil
}

func buildTexture(spec TextureSpec, baseDir string) (material.Texture, error) {
	width, height := spec.Width, spec.Height
	if width <= 0 {
		width = 256
	}
	if height <= 0 {
		height = 256
	}

	switch spec.Kind {
	case "image":
		path := spec.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		texture, err := loaders.LoadTexture(path)
		if err != nil {
			return nil, err
		}
		return texture, nil
	case "checker":
		size := spec.CheckSize
		if size <= 0 {
			size = 16
		}
		return material.NewCheckerboardTexture(width, height, size, spec.Color1.vec3(), spec.Color2.vec3()), nil
	case "gradient":
		return material.NewGradientTexture(width, height, spec.Color1.vec3(), spec.Color2.vec3()), nil
	case "noise":
		return material.NewNoiseTexture(width, height, spec.Color1.vec3(), spec.Variation, spec.Seed), nil
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrUnknownTexture, spec.Kind)
	}
}

// Build constructs a Scene from a descriptor. textures supplies every
// texture name the shapes reference. The result is in world space.
func Build(desc *Descriptor, textures map[string]material.Texture) (*Scene, error) {
	if desc.View.Columns <= 0 || desc.View.Rows <= 0 {
		return nil, fmt.Errorf("%w: resolution %dx%d", ErrInvalidDescriptor, desc.View.Columns, desc.View.Rows)
	}
	if desc.View.Distance <= 0 || desc.View.Width <= 0 || desc.View.Height <= 0 {
		return nil, fmt.Errorf("%w: projection plane must have positive distance and extent", ErrInvalidDescriptor)
	}

	s := NewScene(desc.Name)
	s.View = View{
		Eye:      desc.View.Eye.vec3(),
		Distance: desc.View.Distance,
		Width:    desc.View.Width,
		Height:   desc.View.Height,
		Columns:  desc.View.Columns,
		Rows:     desc.View.Rows,
	}
	s.SetCamera(geometry.NewCamera(desc.Camera.Position.vec3(), desc.Camera.LookAt.vec3(), desc.Camera.Up.vec3()))

	for i, spec := range desc.Lights {
		light, err := buildLight(spec)
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		s.AddLight(light)
	}

	for i, spec := range desc.Shapes {
		shape, err := buildShape(spec, textures)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		id := s.AddShape(shape)
		if spec.Tag != "" {
			s.SetTag(id, spec.Tag)
		}
	}

	for i, volume := range desc.Volumes {
		vid := s.AddBoundingVolume(geometry.NewCapsule(volume.Radius, volume.Base.vec3(), volume.Top.vec3()))
		for j, spec := range volume.Shapes {
			shape, err := buildShape(spec, textures)
			if err != nil {
				return nil, fmt.Errorf("volume %d shape %d: %w", i, j, err)
			}
			id := s.AddToVolume(vid, shape)
			if spec.Tag != "" {
				s.SetTag(id, spec.Tag)
			}
		}
	}

	return s, nil
}

func buildLight(spec LightSpec) (lights.Light, error) {
	switch spec.Kind {
	case "ambient":
		return lights.NewAmbient(spec.Intensity.vec3()), nil
	case "point":
		return lights.NewPoint(spec.Position.vec3(), spec.Intensity.vec3()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLightKind, spec.Kind)
	}
}

func buildShape(spec ShapeSpec, textures map[string]material.Texture) (geometry.Shape, error) {
	mat := spec.Material.material()

	var shape geometry.Shape
	switch spec.Kind {
	case "sphere":
		shape = geometry.NewSphere(spec.Center.vec3(), spec.Radius, mat)
	case "plane":
		if spec.Texture == "" {
			shape = geometry.NewPlane(spec.Center.vec3(), spec.Normal.vec3(), mat)
			break
		}
		texture, ok := textures[spec.Texture]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTexture, spec.Texture)
		}
		shape = geometry.NewTexturedPlane(spec.Center.vec3(), spec.Normal.vec3(), mat, texture)
	case "disc":
		shape = geometry.NewDisc(spec.Center.vec3(), spec.Normal.vec3(), spec.Radius, mat)
	case "triangle":
		if len(spec.Vertices) != 3 {
			return nil, fmt.Errorf("%w: triangle needs 3 vertices, got %d", ErrInvalidDescriptor, len(spec.Vertices))
		}
		shape = geometry.NewTriangle(spec.Vertices[0].vec3(), spec.Vertices[1].vec3(), spec.Vertices[2].vec3(), mat)
	case "cylinder":
		shape = geometry.NewCylinderAlong(spec.Radius, spec.Height, spec.Base.vec3(), spec.Direction.vec3(), mat)
	case "cone":
		shape = geometry.NewConeAlong(spec.Radius, spec.Height, spec.Base.vec3(), spec.Direction.vec3(), mat)
	case "cube":
		shape = geometry.NewCube(spec.Corner.vec3(), spec.Width, spec.Height, spec.Depth, mat)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShapeKind, spec.Kind)
	}

	for _, t := range spec.Transforms {
		if err := applyTransform(shape, t); err != nil {
			return nil, err
		}
	}
	return shape, nil
}

func applyTransform(shape geometry.Shape, t TransformSpec) error {
	radians := t.Degrees * math.Pi / 180
	switch t.Op {
	case "translate":
		shape.Translate(t.Vector.vec3())
	case "scale":
		shape.Scale(t.Vector.vec3())
	case "rotateX":
		shape.RotateX(radians)
	case "rotateY":
		shape.RotateY(radians)
	case "rotateZ":
		shape.RotateZ(radians)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTransform, t.Op)
	}
	return nil
}
