package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Surface describes how a shape interacts with light. K is the
// absorption/reflectance color and N the per-channel refractive index.
// The Fresnel base reflectance and average index are derived once by
// NewSurface; a Surface should not be modified after construction.
type Surface struct {
	K          core.Color // Absorption (diffuse reflectance) per channel
	N          core.Color // Refractive index per channel
	Shininess  float64    // Blinn-Phong exponent
	Reflective bool       // Spawns mirror rays
	Refractive bool       // Spawns transmitted rays

	f0   core.Color
	navg float64
}

// NewSurface creates a surface and derives its Fresnel terms
func NewSurface(k, n core.Color, shininess float64, reflective, refractive bool) Surface {
	// Zero-incidence reflectance for a conductor/dielectric with complex index n + ik:
	// f0 = ((n-1)² + k²) / ((n+1)² + k²)
	nMinus := n.SubtractScalar(1)
	nPlus := n.AddScalar(1)
	kSq := k.MultiplyColor(k)
	f0 := nMinus.MultiplyColor(nMinus).Add(kSq).DivideColor(nPlus.MultiplyColor(nPlus).Add(kSq))

	return Surface{
		K:          k,
		N:          n,
		Shininess:  shininess,
		Reflective: reflective,
		Refractive: refractive,
		f0:         f0,
		navg:       (n.R + n.G + n.B) / 3,
	}
}

// F0 returns the reflectance at normal incidence
func (s *Surface) F0() core.Color {
	return s.f0
}

// NAvg returns the average refractive index used for Snell's law
func (s *Surface) NAvg() float64 {
	return s.navg
}

// Fresnel returns the reflected fraction per channel using Schlick's
// approximation, where cosTheta is the cosine between normal and incoming ray
func (s *Surface) Fresnel(cosTheta float64) core.Color {
	weight := math.Pow(1-cosTheta, 5)
	return s.f0.Add(s.f0.Inverse().Multiply(weight))
}

// WhiteDiffuse is the matte white used for the ground in the reference scene
func WhiteDiffuse() Surface {
	return NewSurface(core.NewColor(5, 5, 5), core.Color{}, 10, false, false)
}

// Glass is a clear dielectric that both reflects and refracts
func Glass() Surface {
	return NewSurface(core.Color{}, core.NewColor(1.5, 1.5, 1.5), 50, true, true)
}

// Gold is a reflective metal
func Gold() Surface {
	return NewSurface(core.NewColor(3.1, 2.7, 1.9), core.NewColor(0.17, 0.35, 1.5), 30, true, false)
}

// Silver is a reflective metal
func Silver() Surface {
	return NewSurface(core.NewColor(4.1, 2.3, 3.1), core.NewColor(0.14, 0.16, 0.13), 30, true, false)
}

// Preset returns a named preset surface
func Preset(name string) (Surface, bool) {
	switch name {
	case "white", "whitediffuse":
		return WhiteDiffuse(), true
	case "glass":
		return Glass(), true
	case "gold":
		return Gold(), true
	case "silver":
		return Silver(), true
	default:
		return Surface{}, false
	}
}
