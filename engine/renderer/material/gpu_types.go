package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-gallery/common"
)

// GPUPlaneParamsSource is the canonical WGSL definition of the PlaneParams struct.
// Matches GPUPlaneParams layout exactly (80 bytes).
//
//go:embed assets/plane_params.wgsl
var GPUPlaneParamsSource string

// GPUQuadVertexSource is the canonical WGSL definition of the VertexInput struct used by plane geometry.
// Matches GPUQuadVertex layout exactly (20 bytes per vertex).
//
//go:embed assets/quad_vertex.wgsl
var GPUQuadVertexSource string

// GPUPlaneParams is the per-plane uniform: the model matrix and the fade opacity.
type GPUPlaneParams struct {
	Model   [16]float32 // offset  0: model matrix (mat4x4<f32>)
	Opacity float32     // offset 64: alpha multiplier in [0, 1]
	_pad    [3]float32  // offset 68: padding to 80 bytes
}

// NewGPUPlaneParams builds the uniform for one plane instance. The quad spans [-0.5, 0.5] on both
// axes, so the instance scale is the world-space size of the plane.
//
// Parameters:
//   - p: the plane instance to convert
//
// Returns:
//   - GPUPlaneParams: the uniform ready for Marshal
func NewGPUPlaneParams(p common.PlaneInstance) GPUPlaneParams {
	return GPUPlaneParams{
		Model:   common.PlaneModel(p.Position, p.Scale[0], p.Scale[1]),
		Opacity: common.Clamp(p.Opacity, 0, 1),
	}
}

// Size returns the size of the GPUPlaneParams struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUPlaneParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUPlaneParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload
func (g *GPUPlaneParams) Marshal() []byte {
	return g.AppendMarshal(make([]byte, 0, g.Size()))
}

// AppendMarshal appends the 80-byte encoding of g to buf, growing it as needed.
//
// Parameters:
//   - buf: destination slice, usually a reused buffer truncated to zero length
//
// Returns:
//   - []byte: buf with the encoding appended
func (g *GPUPlaneParams) AppendMarshal(buf []byte) []byte {
	for _, f := range g.Model {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(g.Opacity))
	return append(buf, make([]byte, 12)...)
}

// GPUQuadVertex is one vertex of the shared plane geometry.
type GPUQuadVertex struct {
	Position [3]float32
	UV       [2]float32
}

// QuadVertices returns the four corners of a unit quad centered on the origin, facing +Z.
// UV (0,0) is the top-left corner of the image.
func QuadVertices() []GPUQuadVertex {
	return []GPUQuadVertex{
		{Position: [3]float32{-0.5, -0.5, 0}, UV: [2]float32{0, 1}},
		{Position: [3]float32{0.5, -0.5, 0}, UV: [2]float32{1, 1}},
		{Position: [3]float32{0.5, 0.5, 0}, UV: [2]float32{1, 0}},
		{Position: [3]float32{-0.5, 0.5, 0}, UV: [2]float32{0, 0}},
	}
}

// QuadIndices returns the two counter-clockwise triangles of the quad.
func QuadIndices() []uint32 {
	return []uint32{0, 1, 2, 0, 2, 3}
}

// MarshalQuadVertices packs vertices tightly, 20 bytes each.
//
// Parameters:
//   - vertices: the vertices to pack
//
// Returns:
//   - []byte: the vertex buffer contents
func MarshalQuadVertices(vertices []GPUQuadVertex) []byte {
	const stride = 20
	buf := make([]byte, len(vertices)*stride)
	for i, v := range vertices {
		o := i * stride
		binary.LittleEndian.PutUint32(buf[o:], math.Float32bits(v.Position[0]))
		binary.LittleEndian.PutUint32(buf[o+4:], math.Float32bits(v.Position[1]))
		binary.LittleEndian.PutUint32(buf[o+8:], math.Float32bits(v.Position[2]))
		binary.LittleEndian.PutUint32(buf[o+12:], math.Float32bits(v.UV[0]))
		binary.LittleEndian.PutUint32(buf[o+16:], math.Float32bits(v.UV[1]))
	}
	return buf
}
