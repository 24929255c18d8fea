package scene

import (
	"errors"
	"fmt"
)

var ErrUnknownScene = errors.New("unknown scene")

const builtinGroup = "Built-in Scenes"

// BuiltinNames lists the scenes Named understands
var BuiltinNames = []string{"garden", "sphere", "shadow"}

// SphereDescriptor is a single red sphere of radius 10 at the origin, lit by
// one point light behind the camera
func SphereDescriptor() *Descriptor {
	return &Descriptor{
		Name:        "sphere",
		Description: "Red sphere lit from behind the camera",
		Group:       builtinGroup,
		View: ViewSpec{
			Distance: 10,
			Width:    20,
			Height:   20,
			Columns:  65,
			Rows:     65,
		},
		Camera: CameraSpec{
			Position: Vec{0, 0, -30},
			LookAt:   Vec{0, 0, 0},
			Up:       Vec{0, 1, 0},
		},
		Lights: []LightSpec{
			{Kind: "point", Position: Vec{0, 0, -50}, Intensity: Vec{1, 1, 1}},
		},
		Shapes: []ShapeSpec{
			sphereSpec(Vec{0, 0, 0}, 10, MaterialSpec{Diffuse: Vec{200, 0, 0}}),
		},
	}
}

// ShadowDescriptor is a back wall facing the camera with two cubes in front.
// The first cube sits between the point light and the wall's center; the
// wall reflects only blue ambiently and only red and green diffusely.
func ShadowDescriptor() *Descriptor {
	block := MaterialSpec{Ambient: Vec{80, 80, 80}, Diffuse: Vec{80, 80, 80}}
	return &Descriptor{
		Name:        "shadow",
		Description: "Two cubes casting shadows on a wall",
		Group:       builtinGroup,
		View: ViewSpec{
			Distance: 50,
			Width:    100,
			Height:   100,
			Columns:  41,
			Rows:     41,
		},
		Camera: CameraSpec{
			Position: Vec{0, 0, -200},
			LookAt:   Vec{0, 0, 0},
			Up:       Vec{0, 1, 0},
		},
		Lights: []LightSpec{
			{Kind: "point", Position: Vec{60, 0, -120}, Intensity: Vec{0.8, 0.8, 0.8}},
			{Kind: "ambient", Intensity: Vec{0.2, 0.2, 0.2}},
		},
		Shapes: []ShapeSpec{
			{
				Kind:     "plane",
				Center:   Vec{0, 0, 0},
				Normal:   Vec{0, 0, -1},
				Material: MaterialSpec{Ambient: Vec{0, 0, 100}, Diffuse: Vec{200, 200, 0}},
			},
			cubeSpec(Vec{20, -10, -50}, 20, 20, 20, block),
			cubeSpec(Vec{-70, -50, -20}, 20, 20, 20, block),
		},
	}
}

// NamedDescriptor resolves a built-in scene name. season only affects the garden.
func NamedDescriptor(name string, season Season) (*Descriptor, error) {
	switch name {
	case "garden", "":
		return GardenDescriptor(season), nil
	case "sphere":
		return SphereDescriptor(), nil
	case "shadow":
		return ShadowDescriptor(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
}

// Named builds a built-in scene
func Named(name string, season Season) (*Scene, error) {
	desc, err := NamedDescriptor(name, season)
	if err != nil {
		return nil, err
	}
	textures, err := ResolveTextures(desc, "")
	if err != nil {
		return nil, err
	}
	return Build(desc, textures)
}
