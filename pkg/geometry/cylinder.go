package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Cylinder represents an open cylinder with an elliptical cross-section
// around an arbitrary axis. A Height of zero makes it infinite.
type Cylinder struct {
	Base    core.Point // Point on the axis where the cylinder starts
	Axis    core.Vec3  // Unit axis direction
	RadiusU float64    // Semi-axis along the frame's first tangent
	RadiusV float64    // Semi-axis along the frame's second tangent
	Height  float64    // Length along Axis, 0 for infinite
	surface material.Surface

	// Cached derived values
	toWorld core.Mat4 // Local frame (u, v, axis, base) to world
	toLocal core.Mat4 // World to local frame
}

// NewCylinder creates a circular cylinder
func NewCylinder(base core.Point, axis core.Vec3, radius, height float64, surface material.Surface) *Cylinder {
	return NewEllipticCylinder(base, axis, radius, radius, height, surface)
}

// NewEllipticCylinder creates a cylinder whose cross-section is an ellipse
// with semi-axes radiusU and radiusV. axis must be non-zero.
func NewEllipticCylinder(base core.Point, axis core.Vec3, radiusU, radiusV, height float64, surface material.Surface) *Cylinder {
	w := axis.Normalize()
	u, v := core.OrthonormalBasis(w)
	toWorld := core.NewBasis(u, v, w, base)

	return &Cylinder{
		Base:    base,
		Axis:    w,
		RadiusU: radiusU,
		RadiusV: radiusV,
		Height:  height,
		surface: surface,
		toWorld: toWorld,
		toLocal: toWorld.InverseRigid(),
	}
}

// Intersect tests if a ray intersects with the cylinder
func (c *Cylinder) Intersect(ray core.Ray) (Hit, bool) {
	// Work in the local frame, where the axis is +z through the origin.
	// The frame is rigid so t is the same in both spaces.
	o := c.toLocal.TransformPoint(ray.Origin)
	d := c.toLocal.TransformVector(ray.Direction)

	invA2 := 1 / (c.RadiusU * c.RadiusU)
	invB2 := 1 / (c.RadiusV * c.RadiusV)

	// (x/a)² + (y/b)² = 1 along the ray
	qa := d.X*d.X*invA2 + d.Y*d.Y*invB2
	qb := 2 * (o.X*d.X*invA2 + o.Y*d.Y*invB2)
	qc := o.X*o.X*invA2 + o.Y*o.Y*invB2 - 1

	// Ray is parallel to the axis
	const parallelEpsilon = 1e-12
	if qa < parallelEpsilon {
		return Hit{}, false
	}

	discriminant := qb*qb - 4*qa*qc
	if discriminant < 0 {
		return Hit{}, false
	}

	sqrtD := math.Sqrt(discriminant)
	roots := [2]float64{(-qb - sqrtD) / (2 * qa), (-qb + sqrtD) / (2 * qa)}

	for _, t := range roots {
		if t <= Epsilon {
			continue
		}
		z := o.Z + t*d.Z
		if c.Height > 0 && (z < 0 || z > c.Height) {
			continue
		}

		x := o.X + t*d.X
		y := o.Y + t*d.Y
		localNormal := core.NewVec3(x*invA2, y*invB2, 0).Normalize()
		return Hit{T: t, Normal: c.toWorld.TransformVector(localNormal)}, true
	}

	return Hit{}, false
}

// Surface returns the cylinder's material
func (c *Cylinder) Surface() *material.Surface {
	return &c.surface
}

// BoundingSphere encloses a finite cylinder; infinite cylinders report false
func (c *Cylinder) BoundingSphere() (BoundingSphere, bool) {
	if c.Height <= 0 {
		return BoundingSphere{}, false
	}
	halfHeight := c.Height / 2
	radius := math.Max(c.RadiusU, c.RadiusV)
	return BoundingSphere{
		Center: c.Base.Add(c.Axis.Multiply(halfHeight)),
		Radius: math.Sqrt(halfHeight*halfHeight + radius*radius),
	}, true
}

func (c *Cylinder) shape() {}
