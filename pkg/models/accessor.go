package models

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/prism/pkg/math3d"
)

// accessorBounds returns the min and max corners of a VEC3 accessor, using
// its declared bounds when present and scanning its data otherwise.
func accessorBounds(doc *gltf.Document, accessorIdx int) (lo, hi math3d.Vec3, err error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return lo, hi, fmt.Errorf("accessor index %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if len(accessor.Min) == 3 && len(accessor.Max) == 3 {
		lo = math3d.V3(accessor.Min[0], accessor.Min[1], accessor.Min[2])
		hi = math3d.V3(accessor.Max[0], accessor.Max[1], accessor.Max[2])
		return lo, hi, nil
	}

	positions, err := readVec3Accessor(doc, accessor)
	if err != nil {
		return lo, hi, err
	}
	if len(positions) == 0 {
		return lo, hi, fmt.Errorf("accessor is empty")
	}
	lo, hi = positions[0], positions[0]
	for _, p := range positions[1:] {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return lo, hi, nil
}

// readVec3Accessor reads float VEC3 data from an embedded buffer.
func readVec3Accessor(doc *gltf.Document, accessor *gltf.Accessor) ([]math3d.Vec3, error) {
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float components, got %v", accessor.ComponentType)
	}
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}

	if i := *accessor.BufferView; i < 0 || i >= len(doc.BufferViews) {
		return nil, fmt.Errorf("buffer view index %d out of range", i)
	}
	bufferView := doc.BufferViews[*accessor.BufferView]
	if i := bufferView.Buffer; i < 0 || i >= len(doc.Buffers) {
		return nil, fmt.Errorf("buffer index %d out of range", i)
	}
	buffer := doc.Buffers[bufferView.Buffer]
	if buffer.Data == nil {
		// gltf.Open resolves external and data URIs; documents built in
		// memory must fill Data themselves.
		return nil, fmt.Errorf("buffer has no data")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	if stride == 0 {
		stride = 12 // 3 floats * 4 bytes
	}

	if end := start + (accessor.Count-1)*stride + 12; accessor.Count > 0 && end > len(buffer.Data) {
		return nil, fmt.Errorf("accessor reads %d bytes past its buffer", end-len(buffer.Data))
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range accessor.Count {
		offset := start + i*stride
		result[i] = math3d.V3(
			readFloat32(buffer.Data[offset:]),
			readFloat32(buffer.Data[offset+4:]),
			readFloat32(buffer.Data[offset+8:]),
		)
	}
	return result, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}
