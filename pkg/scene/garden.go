package scene

import (
	"errors"
	"fmt"
	"strings"
)

// Season selects the variant of the garden scene
type Season string

const (
	Spring Season = "spring"
	Summer Season = "summer"
	Autumn Season = "autumn"
	Winter Season = "winter"
)

// Seasons lists every season in button order
var Seasons = []Season{Spring, Summer, Autumn, Winter}

var ErrUnknownSeason = errors.New("unknown season")

// seasonTagPrefix marks the shapes that act as season-selection buttons
const seasonTagPrefix = "season:"

// ParseSeason parses a season name. "fall" is accepted for autumn and an
// empty string means summer.
func ParseSeason(name string) (Season, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "spring":
		return Spring, nil
	case "", "summer":
		return Summer, nil
	case "autumn", "fall":
		return Autumn, nil
	case "winter":
		return Winter, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSeason, name)
	}
}

// Tag returns the shape tag of this season's button
func (s Season) Tag() string {
	return seasonTagPrefix + string(s)
}

// grassTexture names the ground texture used in a season
func (s Season) grassTexture() string {
	return "grass-" + string(s)
}

var (
	barkColor    = Vec{50, 31, 20}
	pineColor    = Vec{10, 156, 53}
	skyColor     = Vec{32, 116, 219}
	snowColor    = Vec{255, 255, 255}
	blossomColor = Vec{255, 72, 132}
	leafColor    = Vec{12, 242, 0}
	autumnColor  = Vec{240, 104, 4}
	iceColor     = Vec{44, 157, 201}
)

// leafColors is the oak foliage per season
var leafColors = map[Season]Vec{
	Spring: blossomColor,
	Summer: leafColor,
	Autumn: autumnColor,
	Winter: snowColor,
}

// buttonColors is the color of each season's button
var buttonColors = map[Season]Vec{
	Spring: blossomColor,
	Summer: leafColor,
	Autumn: autumnColor,
	Winter: iceColor,
}

// grassColors seeds the procedural ground texture per season
var grassColors = map[Season]Vec{
	Spring: {96, 170, 70},
	Summer: {70, 150, 40},
	Autumn: {150, 125, 55},
	Winter: {230, 235, 240},
}

var grassSeeds = map[Season]int64{
	Spring: 11,
	Summer: 23,
	Autumn: 37,
	Winter: 41,
}

func matte(color Vec) MaterialSpec {
	return MaterialSpec{Ambient: color, Diffuse: color}
}

func sphereSpec(center Vec, radius float64, mat MaterialSpec) ShapeSpec {
	return ShapeSpec{Kind: "sphere", Center: center, Radius: radius, Material: mat}
}

func cubeSpec(corner Vec, width, height, depth float64, mat MaterialSpec) ShapeSpec {
	return ShapeSpec{Kind: "cube", Corner: corner, Width: width, Height: height, Depth: depth, Material: mat}
}

func uprightSpec(kind string, base Vec, radius, height float64, mat MaterialSpec) ShapeSpec {
	return ShapeSpec{Kind: kind, Base: base, Direction: Vec{0, 1, 0}, Radius: radius, Height: height, Material: mat}
}

// GardenDescriptor describes the garden: a sky box, textured grass, three
// pines, three oaks, a table whose parts sit in bounding volumes, a
// snowman in winter and one button per season.
func GardenDescriptor(season Season) *Descriptor {
	desc := &Descriptor{
		Name:        "garden",
		Description: fmt.Sprintf("Garden with pines, oaks and a table in %s", season),
		Group:       builtinGroup,
		View: ViewSpec{
			Distance: DefaultDistance,
			Width:    DefaultExtent,
			Height:   DefaultExtent,
			Columns:  DefaultColumns,
			Rows:     DefaultRows,
		},
		Camera: CameraSpec{
			Position: Vec{0, -20, -350},
			LookAt:   Vec{0, -20, 0},
			Up:       Vec{0, 1, 0},
		},
		Lights: []LightSpec{
			{Kind: "point", Position: Vec{-30, 60, 0}, Intensity: Vec{0.7, 0.7, 0.7}},
			{Kind: "ambient", Intensity: Vec{0.3, 0.3, 0.3}},
		},
		Textures: map[string]TextureSpec{
			season.grassTexture(): {
				Kind:      "noise",
				Color1:    grassColors[season],
				Variation: 30,
				Seed:      grassSeeds[season],
			},
		},
	}

	// Ground; the texel replaces the ambient term
	desc.Shapes = append(desc.Shapes, ShapeSpec{
		Kind:     "plane",
		Center:   Vec{0, -100, 0},
		Normal:   Vec{0, 1, 0},
		Texture:  season.grassTexture(),
		Material: MaterialSpec{Diffuse: Vec{100, 100, 100}},
	})

	// Oak foliage changes with the season
	leaves := matte(leafColors[season])
	for _, z := range []float64{-230, -300, -160} {
		desc.Shapes = append(desc.Shapes, sphereSpec(Vec{130, -30, z}, 30, leaves))
	}
	for _, z := range []float64{-230, -300, -160} {
		desc.Shapes = append(desc.Shapes, sphereSpec(Vec{130, 0, z}, 22, leaves))
	}

	if season == Winter {
		white := matte(snowColor)
		desc.Shapes = append(desc.Shapes,
			sphereSpec(Vec{0, -70, -380}, 30, white),
			sphereSpec(Vec{0, -30, -380}, 20, white),
			sphereSpec(Vec{-10, -20, -365}, 5, matte(barkColor)),
			sphereSpec(Vec{10, -20, -365}, 5, matte(barkColor)),
		)
	}

	// Sky box
	sky := matte(skyColor)
	desc.Shapes = append(desc.Shapes,
		ShapeSpec{Kind: "plane", Center: Vec{0, 0, -1000}, Normal: Vec{0, 0, 1}, Material: sky},
		ShapeSpec{Kind: "plane", Center: Vec{-1000, 0, 0}, Normal: Vec{1, 0, 0}, Material: sky},
		ShapeSpec{Kind: "plane", Center: Vec{1000, 0, 0}, Normal: Vec{-1, 0, 0}, Material: sky},
		ShapeSpec{Kind: "plane", Center: Vec{0, 1000, 0}, Normal: Vec{0, -1, 0}, Material: sky},
	)

	// Pines, then the oak trunks
	for _, z := range []float64{-230, -300, -160} {
		desc.Shapes = append(desc.Shapes, uprightSpec("cone", Vec{-130, -40, z}, 30, 50, matte(pineColor)))
	}
	for _, x := range []float64{-130, 130} {
		for _, z := range []float64{-230, -300, -160} {
			desc.Shapes = append(desc.Shapes, uprightSpec("cylinder", Vec{x, -100, z}, 10, 60, matte(barkColor)))
		}
	}

	// Table top and legs, each behind its own capsule
	wood := MaterialSpec{Ambient: barkColor, Diffuse: barkColor, Specular: Vec{0.3, 0.3, 0.3}, Shininess: 10}
	desc.Volumes = append(desc.Volumes, VolumeSpec{
		Radius: 75,
		Base:   Vec{0, -80, -230},
		Top:    Vec{0, -70, -230},
		Shapes: []ShapeSpec{cubeSpec(Vec{-50, -80, -180}, 100, 10, 100, wood)},
	})
	legs := []struct {
		corner Vec
		center Vec
	}{
		{Vec{-50, -100, -180}, Vec{-45, 0, -188}},
		{Vec{40, -100, -180}, Vec{45, 0, -188}},
		{Vec{-50, -100, -265}, Vec{-45, 0, -273}},
		{Vec{40, -100, -265}, Vec{45, 0, -273}},
	}
	for _, leg := range legs {
		desc.Volumes = append(desc.Volumes, VolumeSpec{
			Radius: 8,
			Base:   Vec{leg.center[0], -100, leg.center[2]},
			Top:    Vec{leg.center[0], -80, leg.center[2]},
			Shapes: []ShapeSpec{cubeSpec(leg.corner, 10, 20, 10, wood)},
		})
	}

	// Season buttons
	for i, s := range Seasons {
		button := sphereSpec(Vec{-40 + float64(i)*80.0/3, -60, -230}, 10, MaterialSpec{
			Ambient:   buttonColors[s],
			Diffuse:   buttonColors[s],
			Specular:  Vec{40, 40, 40},
			Shininess: 6,
		})
		button.Tag = s.Tag()
		desc.Shapes = append(desc.Shapes, button)
	}

	return desc
}

// Garden builds the garden scene for a season
func Garden(season Season) (*Scene, error) {
	return Named("garden", season)
}

// SeasonOf returns the season a button tag selects
func SeasonOf(tag string) (Season, bool) {
	if !strings.HasPrefix(tag, seasonTagPrefix) {
		return "", false
	}
	season, err := ParseSeason(strings.TrimPrefix(tag, seasonTagPrefix))
	if err != nil {
		return "", false
	}
	return season, true
}
