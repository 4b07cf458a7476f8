package common

import (
	"math"
	"unsafe"
)

// Mat4 is a 4x4 matrix stored in column-major order (WebGPU convention): element (row, col) is
// at index col*4+row.
type Mat4 [16]float32

// Mat4Identity returns the identity matrix.
func Mat4Identity() Mat4 {
	return Mat4{0: 1, 5: 1, 10: 1, 15: 1}
}

// Mul returns m * n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float32
			for k := range 4 {
				sum += m[k*4+row] * n[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// MulPoint transforms the point (x, y, z, 1) and returns the homogeneous result.
func (m Mat4) MulPoint(x, y, z float32) [4]float32 {
	var out [4]float32
	for row := range 4 {
		out[row] = m[row]*x + m[4+row]*y + m[8+row]*z + m[12+row]
	}
	return out
}

// Perspective builds a right-handed projection for WebGPU clip space, where depth maps to [0, 1].
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - Mat4: the projection matrix
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	return Mat4{
		0:  f / aspect,
		5:  f,
		10: far / (near - far),
		11: -1,
		14: (near * far) / (near - far),
	}
}

// LookAt builds a view matrix for an eye at eye looking towards center. A zero-length direction
// or an up vector parallel to it leaves the affected axis unnormalized instead of producing NaN.
//
// Parameters:
//   - eye: camera position in world space
//   - center: the point the camera looks at
//   - up: up vector, typically (0, 1, 0)
//
// Returns:
//   - Mat4: the view matrix
func LookAt(eye, center, up [3]float32) Mat4 {
	z := normalize([3]float32{eye[0] - center[0], eye[1] - center[1], eye[2] - center[2]})
	x := normalize(cross(up, z))
	y := cross(z, x)

	return Mat4{
		x[0], y[0], z[0], 0,
		x[1], y[1], z[1], 0,
		x[2], y[2], z[2], 0,
		-dot(x, eye), -dot(y, eye), -dot(z, eye), 1,
	}
}

// PlaneModel builds the model matrix of an unrotated plane centered at position with the given
// width and height. Planes always face the camera axis, so no rotation is needed.
func PlaneModel(position [3]float32, width, height float32) Mat4 {
	m := Mat4Identity()
	m[0], m[5] = width, height
	m[12], m[13], m[14] = position[0], position[1], position[2]
	return m
}

func dot(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func length(v [3]float32) float32 {
	return float32(math.Sqrt(float64(dot(v, v))))
}

func normalize(v [3]float32) [3]float32 {
	l := length(v)
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(unsafe.Sizeof(zero))*len(data))
}
