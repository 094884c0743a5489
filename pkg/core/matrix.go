package core

// Vec4 is a homogeneous coordinate. W is 1 for points and 0 for directions.
type Vec4 struct {
	X, Y, Z, W float64
}

// PointToVec4 lifts a point into homogeneous coordinates
func PointToVec4(p Point) Vec4 {
	return Vec4{p.X, p.Y, p.Z, 1}
}

// VectorToVec4 lifts a direction into homogeneous coordinates
func VectorToVec4(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 0}
}

// Dot returns the four-component dot product
func (v Vec4) Dot(other Vec4) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z + v.W*other.W
}

// Point projects back to 3D, dividing by W when it is not 0 or 1
func (v Vec4) Point() Point {
	if v.W != 0 && v.W != 1 {
		return Point{v.X / v.W, v.Y / v.W, v.Z / v.W}
	}
	return Point{v.X, v.Y, v.Z}
}

// Vector drops the homogeneous component
func (v Vec4) Vector() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Mat4 is a row-major 4x4 matrix acting on column vectors
type Mat4 [4][4]float64

// Identity returns the identity matrix
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translation returns a matrix that moves points by t
func Translation(t Vec3) Mat4 {
	m := Identity()
	m[0][3] = t.X
	m[1][3] = t.Y
	m[2][3] = t.Z
	return m
}

// Scaling returns a matrix that scales each axis independently
func Scaling(s Vec3) Mat4 {
	m := Identity()
	m[0][0] = s.X
	m[1][1] = s.Y
	m[2][2] = s.Z
	return m
}

// NewBasis returns the matrix whose columns are u, v, w and origin.
// It maps local coordinates of that frame to world coordinates.
func NewBasis(u, v, w Vec3, origin Point) Mat4 {
	return Mat4{
		{u.X, v.X, w.X, origin.X},
		{u.Y, v.Y, w.Y, origin.Y},
		{u.Z, v.Z, w.Z, origin.Z},
		{0, 0, 0, 1},
	}
}

// Mul returns the matrix product m * other
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[i][k] * other[k][j]
			}
			result[i][j] = sum
		}
	}
	return result
}

// Transpose returns the transposed matrix
func (m Mat4) Transpose() Mat4 {
	var result Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			result[i][j] = m[j][i]
		}
	}
	return result
}

// MulVec4 applies the matrix to a homogeneous vector
func (m Mat4) MulVec4(v Vec4) Vec4 {
	row := func(i int) float64 {
		return m[i][0]*v.X + m[i][1]*v.Y + m[i][2]*v.Z + m[i][3]*v.W
	}
	return Vec4{row(0), row(1), row(2), row(3)}
}

// TransformPoint applies the matrix to a point (translation included)
func (m Mat4) TransformPoint(p Point) Point {
	return m.MulVec4(PointToVec4(p)).Point()
}

// TransformVector applies the matrix to a direction (translation ignored)
func (m Mat4) TransformVector(v Vec3) Vec3 {
	return m.MulVec4(VectorToVec4(v)).Vector()
}

// InverseRigid inverts a matrix made only of a rotation and a translation
func (m Mat4) InverseRigid() Mat4 {
	result := Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			result[i][j] = m[j][i]
		}
	}
	t := Vec3{m[0][3], m[1][3], m[2][3]}
	for i := 0; i < 3; i++ {
		result[i][3] = -(result[i][0]*t.X + result[i][1]*t.Y + result[i][2]*t.Z)
	}
	return result
}

// OrthonormalBasis builds two unit vectors perpendicular to the unit vector w
func OrthonormalBasis(w Vec3) (u, v Vec3) {
	helper := NewVec3(1, 0, 0)
	if w.X > 0.9 || w.X < -0.9 {
		helper = NewVec3(0, 1, 0)
	}
	u = helper.Cross(w).Normalize()
	v = w.Cross(u)
	return u, v
}
