package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Reflect calculates the mirror direction of d about the normal n
func Reflect(d, n core.Vec3) core.Vec3 {
	// r = d - 2*dot(n,d)*n
	return d.Subtract(n.Multiply(2 * n.Dot(d)))
}

// Refract calculates the transmitted direction using Snell's law.
// d must be a unit vector, n a unit normal facing against d, and eta the
// ratio of the incident index to the transmitted index.
// Returns false on total internal reflection.
func Refract(d, n core.Vec3, eta float64) (core.Vec3, bool) {
	cosI := -n.Dot(d)
	k := 1 - eta*eta*(1-cosI*cosI)
	if k < 0 {
		return core.Vec3{}, false
	}
	return d.Multiply(eta).Add(n.Multiply(eta*cosI - math.Sqrt(k))), true
}
