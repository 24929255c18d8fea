package material

import (
	"testing"

	"github.com/df07/go-raycaster/pkg/core"
)

func TestImageTextureRGB(t *testing.T) {
	// Layout:
	//   white black
	//   black white
	white := core.NewVec3(255, 255, 255)
	black := core.NewVec3(0, 0, 0)
	texture := NewImageTexture(2, 2, []core.Vec3{white, black, black, white})

	if texture.Width() != 2 || texture.Height() != 2 {
		t.Fatalf("Expected 2x2 texture, got %dx%d", texture.Width(), texture.Height())
	}

	tests := []struct {
		x, y     int
		expected core.Vec3
	}{
		{0, 0, white},
		{1, 0, black},
		{0, 1, black},
		{1, 1, white},
		{5, 0, black},   // clamped to x=1
		{-3, -3, white}, // clamped to (0,0)
	}

	for _, tt := range tests {
		if got := texture.RGB(tt.x, tt.y); !got.Equals(tt.expected) {
			t.Errorf("RGB(%d,%d): expected %v, got %v", tt.x, tt.y, tt.expected, got)
		}
	}
}

func TestCheckerboardTexture(t *testing.T) {
	red := core.NewVec3(255, 0, 0)
	blue := core.NewVec3(0, 0, 255)
	texture := NewCheckerboardTexture(8, 8, 4, red, blue)

	if got := texture.RGB(0, 0); !got.Equals(red) {
		t.Errorf("Expected red at (0,0), got %v", got)
	}
	if got := texture.RGB(4, 0); !got.Equals(blue) {
		t.Errorf("Expected blue at (4,0), got %v", got)
	}
	if got := texture.RGB(4, 4); !got.Equals(red) {
		t.Errorf("Expected red at (4,4), got %v", got)
	}
}

func TestGradientTexture(t *testing.T) {
	top := core.NewVec3(0, 0, 0)
	bottom := core.NewVec3(200, 100, 50)
	texture := NewGradientTexture(2, 3, top, bottom)

	if got := texture.RGB(1, 0); !got.Equals(top) {
		t.Errorf("Expected top color %v, got %v", top, got)
	}
	if got := texture.RGB(0, 1); !got.Equals(core.NewVec3(100, 50, 25)) {
		t.Errorf("Expected midpoint color, got %v", got)
	}
	if got := texture.RGB(0, 2); !got.Equals(bottom) {
		t.Errorf("Expected bottom color %v, got %v", bottom, got)
	}
}

func TestNoiseTexture_DeterministicAndBounded(t *testing.T) {
	base := core.NewVec3(40, 160, 40)
	a := NewNoiseTexture(16, 16, base, 30, 7)
	b := NewNoiseTexture(16, 16, base, 30, 7)

	for i := range a.Pixels {
		if !a.Pixels[i].Equals(b.Pixels[i]) {
			t.Fatalf("Expected identical texels for identical seeds at %d", i)
		}
		p := a.Pixels[i]
		if p.X < 0 || p.X > 255 || p.Y < 0 || p.Y > 255 || p.Z < 0 || p.Z > 255 {
			t.Errorf("Texel %d out of range: %v", i, p)
		}
		if d := p.Subtract(base); d.X > 30 || d.X < -30 {
			t.Errorf("Texel %d deviates more than the variation: %v", i, p)
		}
	}
}

func TestMaterialWithColor(t *testing.T) {
	m := NewMaterial(core.NewVec3(1, 1, 1), core.NewVec3(2, 2, 2), core.NewVec3(3, 3, 3), 10)
	green := core.NewVec3(0, 200, 0)
	c := m.WithColor(green)

	if !c.KAmbient.Equals(green) || !c.KDiffuse.Equals(green) {
		t.Errorf("Expected ambient and diffuse %v, got %v / %v", green, c.KAmbient, c.KDiffuse)
	}
	if !c.KSpecular.Equals(m.KSpecular) || c.Shininess != 10 {
		t.Errorf("Expected specular and shininess preserved, got %v / %d", c.KSpecular, c.Shininess)
	}
	if !m.KAmbient.Equals(core.NewVec3(1, 1, 1)) {
		t.Errorf("Expected original material untouched, got %v", m.KAmbient)
	}
}
