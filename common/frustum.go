package common

// Plane is the plane ax + by + cz + d = 0, with (a, b, c) in Normal and d in Distance.
type Plane struct {
	Normal   [3]float32
	Distance float32
}

// Frustum holds the six clip planes of a view-projection matrix, oriented so the positive
// half-space is inside.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// ExtractFrustum extracts the clip planes of a view-projection matrix with the Gribb/Hartmann
// method, for WebGPU clip space where depth runs from 0 to 1 (so the near plane is row 2 alone).
//
// Parameters:
//   - viewProj: the combined projection * view matrix
//
// Returns:
//   - Frustum: the frustum with normalized planes
func ExtractFrustum(viewProj Mat4) Frustum {
	row := func(r int) [4]float32 {
		return [4]float32{viewProj[r], viewProj[4+r], viewProj[8+r], viewProj[12+r]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	var f Frustum
	for i, coeffs := range [6][4]float32{
		FrustumLeft:   add4(r3, r0),
		FrustumRight:  sub4(r3, r0),
		FrustumBottom: add4(r3, r1),
		FrustumTop:    sub4(r3, r1),
		FrustumNear:   r2,
		FrustumFar:    sub4(r3, r2),
	} {
		n := [3]float32{coeffs[0], coeffs[1], coeffs[2]}
		d := coeffs[3]
		if l := length(n); l > 0 {
			n = [3]float32{n[0] / l, n[1] / l, n[2] / l}
			d /= l
		}
		f.Planes[i] = Plane{Normal: n, Distance: d}
	}
	return f
}

func add4(a, b [4]float32) [4]float32 {
	return [4]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func sub4(a, b [4]float32) [4]float32 {
	return [4]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

// ContainsSphere reports whether a bounding sphere intersects or lies inside the frustum.
//
// Parameters:
//   - center: world-space center of the sphere
//   - radius: sphere radius
//
// Returns:
//   - bool: false only when the sphere lies entirely outside one of the planes
func (f *Frustum) ContainsSphere(center [3]float32, radius float32) bool {
	for i := range f.Planes {
		p := &f.Planes[i]
		if dot(p.Normal, center)+p.Distance < -radius {
			return false
		}
	}
	return true
}
