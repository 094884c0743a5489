package lights

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestPointLight_IntensityAt(t *testing.T) {
	light := NewPointLight(core.NewPoint(0, 0, 0), core.NewColor(1, 1, 1), 16)

	tests := []struct {
		name     string
		distance float64
		expected float64
	}{
		{"at the light", 0, 16},
		{"near field clamp", 0.5, 16},
		{"unit distance", 1, 16},
		{"inverse square", 2, 4},
		{"far", 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := light.IntensityAt(tt.distance); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Expected intensity %f at distance %f, got %f", tt.expected, tt.distance, got)
			}
		})
	}
}

func TestPointLight_Sample(t *testing.T) {
	light := NewPointLight(core.NewPoint(0, 0, 10), core.NewColor(1, 0.5, 0), 15)

	sample, ok := light.Sample(core.NewPoint(0, 0, 5))
	if !ok {
		t.Fatal("Expected a valid sample")
	}

	if sample.Direction != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected direction (0,0,1), got %v", sample.Direction)
	}
	if math.Abs(sample.Distance-5) > 1e-12 {
		t.Errorf("Expected distance 5, got %f", sample.Distance)
	}

	expected := core.NewColor(0.6, 0.3, 0)
	if math.Abs(sample.Emission.R-expected.R) > 1e-12 ||
		math.Abs(sample.Emission.G-expected.G) > 1e-12 ||
		sample.Emission.B != 0 {
		t.Errorf("Expected emission %v, got %v", expected, sample.Emission)
	}
}

func TestPointLight_SampleAtLightPosition(t *testing.T) {
	light := NewPointLight(core.NewPoint(1, 2, 3), core.NewColor(1, 1, 1), 1)

	if _, ok := light.Sample(core.NewPoint(1, 2, 3)); ok {
		t.Error("Expected no sample at the light position")
	}
}
