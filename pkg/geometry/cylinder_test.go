package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/lights"
)

func newTestCylinder() *Cylinder {
	return NewCylinder(5, core.NewVec3(0, 0, 0), core.NewVec3(0, 10, 0), testMaterial())
}

func TestNewCylinder(t *testing.T) {
	cyl := newTestCylinder()

	if !cyl.Axis.Equals(core.NewVec3(0, 1, 0)) {
		t.Errorf("Expected axis (0,1,0), got %v", cyl.Axis)
	}
	if math.Abs(cyl.Height-10) > 1e-9 {
		t.Errorf("Expected height 10, got %f", cyl.Height)
	}

	along := NewCylinderAlong(5, 10, core.NewVec3(0, 0, 0), core.NewVec3(0, 3, 0), testMaterial())
	if !along.Top.Equals(cyl.Top) || !along.Axis.Equals(cyl.Axis) {
		t.Errorf("Expected equivalent constructors, got top %v axis %v", along.Top, along.Axis)
	}
}

func TestCylinder_Intersect(t *testing.T) {
	cyl := newTestCylinder()

	tests := []struct {
		name         string
		eye, target  core.Vec3
		expectHit    bool
		expectedPart int
		expectedT    float64
	}{
		{"body from front", core.NewVec3(0, 5, 50), core.NewVec3(0, 5, 0), true, CylinderBody, -45},
		{"top cap from above", core.NewVec3(0, 50, 0), core.NewVec3(0, 0, 0), true, CylinderTop, -40},
		{"bottom cap from below", core.NewVec3(0, -50, 0), core.NewVec3(0, 0, 0), true, CylinderBottom, -50},
		{"beside", core.NewVec3(20, 5, 50), core.NewVec3(20, 5, 0), false, 0, 0},
		{"above height", core.NewVec3(0, 15, 50), core.NewVec3(0, 15, 0), false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := cyl.Intersect(core.NewRay(tt.eye, tt.target))
			if hit.Valid() != tt.expectHit {
				t.Fatalf("Expected hit=%v, got %+v", tt.expectHit, hit)
			}
			if !tt.expectHit {
				if hit.T != Miss {
					t.Errorf("Expected miss sentinel, got %f", hit.T)
				}
				return
			}
			if hit.Part != tt.expectedPart {
				t.Errorf("Expected part %d, got %d", tt.expectedPart, hit.Part)
			}
			if !approxEqual(hit.T, tt.expectedT, 1e-9) {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestCylinder_HitPointOnBoundary(t *testing.T) {
	cyl := newTestCylinder()
	eye := core.NewVec3(30, 20, 40)
	interior := []core.Vec3{
		core.NewVec3(0, 5, 0),
		core.NewVec3(2, 1, -1),
		core.NewVec3(-3, 9, 2),
	}

	for _, target := range interior {
		ray := core.NewRay(eye, target)
		hit := cyl.Intersect(ray)
		if !hit.Valid() {
			t.Fatalf("Expected hit through %v", target)
		}
		p := ray.At(hit.T)
		radial := math.Hypot(p.X, p.Z)
		onBody := approxEqual(radial, 5, 1e-6) && p.Y >= -1e-9 && p.Y <= 10+1e-9
		onCap := (approxEqual(p.Y, 0, 1e-9) || approxEqual(p.Y, 10, 1e-9)) && radial <= 5+1e-9
		if !onBody && !onCap {
			t.Errorf("Hit point %v through %v is not on the cylinder boundary", p, target)
		}
	}
}

func TestCylinder_ShadeDispatchesByPart(t *testing.T) {
	cyl := newTestCylinder()
	mat := cyl.Material

	// Light at the eye of each ray, so the facing part gets full diffuse
	tests := []struct {
		name        string
		eye, target core.Vec3
	}{
		{"body", core.NewVec3(0, 5, 50), core.NewVec3(0, 5, 0)},
		{"top", core.NewVec3(0, 50, 0), core.NewVec3(0, 0, 0)},
		{"bottom", core.NewVec3(0, -50, 0), core.NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.eye, tt.target)
			hit := cyl.Intersect(ray)
			ls := []lights.Light{lights.NewPoint(tt.eye, core.NewVec3(1, 1, 1))}
			color := cyl.Shade(hit, ray, ls, []bool{false})
			expected := mat.KDiffuse.Add(mat.KSpecular)
			if !vecApproxEqual(color, expected, 1e-9) {
				t.Errorf("Expected %v, got %v", expected, color)
			}
		})
	}
}

func TestCylinder_Transforms(t *testing.T) {
	cyl := newTestCylinder()

	cyl.Scale(core.NewVec3(2, 0.5, 1))
	if cyl.Radius != 10 || cyl.Height != 5 {
		t.Errorf("Expected radius 10 height 5, got %f %f", cyl.Radius, cyl.Height)
	}
	if !cyl.Top.Equals(core.NewVec3(0, 5, 0)) {
		t.Errorf("Expected top (0,5,0), got %v", cyl.Top)
	}

	cyl.RotateZ(math.Pi / 2)
	if !vecApproxEqual(cyl.Axis, core.NewVec3(-1, 0, 0), 1e-12) {
		t.Errorf("Expected axis (-1,0,0), got %v", cyl.Axis)
	}
	if !vecApproxEqual(cyl.Top, core.NewVec3(-5, 0, 0), 1e-12) {
		t.Errorf("Expected top (-5,0,0), got %v", cyl.Top)
	}

	cyl.Translate(core.NewVec3(1, 1, 1))
	if !cyl.Base.Equals(core.NewVec3(1, 1, 1)) {
		t.Errorf("Expected base (1,1,1), got %v", cyl.Base)
	}

	// Caps follow the transforms: the new top cap faces -X at x=-4
	hit := cyl.Intersect(core.NewRay(core.NewVec3(-50, 1, 1), core.NewVec3(0, 1, 1)))
	if hit.Part != CylinderTop || !approxEqual(hit.T, -46, 1e-9) {
		t.Errorf("Expected top cap hit at t=-46, got %+v", hit)
	}
}

func TestCylinder_ConvertToCameraSpace(t *testing.T) {
	cyl := newTestCylinder()
	camera := NewCamera(core.NewVec3(0, 5, 50), core.NewVec3(0, 5, 0), core.NewVec3(0, 1, 0))
	cyl.ConvertToCameraSpace(camera.WorldToCamera())

	if !vecApproxEqual(cyl.Base, core.NewVec3(0, -5, -50), 1e-9) {
		t.Errorf("Expected base (0,-5,-50), got %v", cyl.Base)
	}

	// From the camera-space origin, looking down -Z at the cylinder center
	hit := cyl.Intersect(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -50)))
	if hit.Part != CylinderBody || !approxEqual(hit.T, -45, 1e-9) {
		t.Errorf("Expected body hit at t=-45, got %+v", hit)
	}
}
