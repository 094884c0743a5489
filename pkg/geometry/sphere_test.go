package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func TestSphere_Intersect_Miss(t *testing.T) {
	sphere := NewSphere(core.NewPoint(0, 0, 0), 1.0, material.WhiteDiffuse())
	ray := core.NewRay(core.NewPoint(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Intersect(ray)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Intersect_ThroughCenter(t *testing.T) {
	tests := []struct {
		name   string
		center core.Point
		radius float64
		origin core.Point
	}{
		{"along z", core.NewPoint(0, 0, 0), 1, core.NewPoint(0, 0, 5)},
		{"diagonal", core.NewPoint(0, 0, 0), 2, core.NewPoint(3, 4, 0)},
		{"offset center", core.NewPoint(4, 1, 2.4), 1, core.NewPoint(-20, -20, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(tt.center, tt.radius, material.Gold())
			ray := core.NewRay(tt.origin, tt.center.Subtract(tt.origin).Normalize())

			hit, isHit := sphere.Intersect(ray)
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			expectedT := tt.origin.Distance(tt.center) - tt.radius
			if math.Abs(hit.T-expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", expectedT, hit.T)
			}

			expectedNormal := ray.At(hit.T).Subtract(tt.center).Divide(tt.radius)
			if !vecNear(hit.Normal, expectedNormal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", expectedNormal, hit.Normal)
			}
			if math.Abs(hit.Normal.Length()-1) > 1e-9 {
				t.Errorf("Expected unit normal, got length %f", hit.Normal.Length())
			}
		})
	}
}

func TestSphere_Intersect_FromInside(t *testing.T) {
	sphere := NewSphere(core.NewPoint(0, 0, 0), 1.0, material.Glass())
	ray := core.NewRay(core.NewPoint(0, 0, 0), core.NewVec3(0, 0, 1))

	hit, isHit := sphere.Intersect(ray)
	if !isHit {
		t.Fatal("Expected exit hit, but got miss")
	}
	if math.Abs(hit.T-1) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", hit.T)
	}
	if !vecNear(hit.Normal, core.NewVec3(0, 0, 1), 1e-9) {
		t.Errorf("Expected outward normal (0,0,1), got %v", hit.Normal)
	}
}

func TestSphere_Intersect_Epsilon(t *testing.T) {
	sphere := NewSphere(core.NewPoint(0, 0, 0), 1.0, material.Glass())

	// Leaving the surface outward must not re-hit the starting point
	outward := core.NewRay(core.NewPoint(0, 0, 1), core.NewVec3(0, 0, 1))
	if hit, isHit := sphere.Intersect(outward); isHit {
		t.Errorf("Expected self-intersection to be suppressed, got t=%f", hit.T)
	}

	// Entering from the surface reaches the far side
	inward := core.NewRay(core.NewPoint(0, 0, 1), core.NewVec3(0, 0, -1))
	hit, isHit := sphere.Intersect(inward)
	if !isHit {
		t.Fatal("Expected far-side hit, but got miss")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected t=2, got t=%f", hit.T)
	}
}

func TestSphere_Intersect_Behind(t *testing.T) {
	sphere := NewSphere(core.NewPoint(0, 0, 0), 1.0, material.WhiteDiffuse())
	ray := core.NewRay(core.NewPoint(0, 0, 5), core.NewVec3(0, 0, 1))

	if hit, isHit := sphere.Intersect(ray); isHit {
		t.Errorf("Expected miss for sphere behind the ray, got t=%f", hit.T)
	}
}

func TestSphere_SurfaceIsOwned(t *testing.T) {
	sphere := NewSphere(core.NewPoint(0, 0, 0), 1.0, material.Silver())

	if !sphere.Surface().Reflective {
		t.Error("Expected the sphere to own a reflective silver surface")
	}
	silver := material.Silver()
	if sphere.Surface().F0() != silver.F0() {
		t.Errorf("Expected derived f0 %v, got %v", silver.F0(), sphere.Surface().F0())
	}
}

func TestBoundingSphere_Hit(t *testing.T) {
	bv := BoundingSphere{Center: core.NewPoint(0, 0, 0), Radius: 1}

	tests := []struct {
		name     string
		ray      core.Ray
		expected bool
	}{
		{"toward center", core.NewRay(core.NewPoint(0, 0, 5), core.NewVec3(0, 0, -1)), true},
		{"grazing", core.NewRay(core.NewPoint(1, 0, 5), core.NewVec3(0, 0, -1)), true},
		{"offset miss", core.NewRay(core.NewPoint(2, 0, 5), core.NewVec3(0, 0, -1)), false},
		{"pointing away", core.NewRay(core.NewPoint(0, 0, 5), core.NewVec3(0, 0, 1)), false},
		{"origin inside", core.NewRay(core.NewPoint(0, 0.5, 0), core.NewVec3(0, 1, 0)), true},
		{"unnormalized direction", core.NewRay(core.NewPoint(0, 0, 5), core.NewVec3(0, 0, -10)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bv.Hit(tt.ray); got != tt.expected {
				t.Errorf("Expected %t, got %t", tt.expected, got)
			}
		})
	}
}

func TestSphere_BoundingSphere(t *testing.T) {
	sphere := NewSphere(core.NewPoint(1, 2, 3), 0.5, material.WhiteDiffuse())

	bv, ok := sphere.BoundingSphere()
	if !ok {
		t.Fatal("Expected sphere to be bounded")
	}
	if bv.Center != sphere.Center || bv.Radius != sphere.Radius {
		t.Errorf("Expected bounding sphere to match the sphere, got %+v", bv)
	}
}
