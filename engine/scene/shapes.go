package scene

import "github.com/Carmen-Shannon/oxy-raymarch/common"

// Shape selects one of the signed distance functions implemented by the raymarch shader.
// The numeric values are written verbatim into the uniform buffer.
type Shape int32

const (
	ShapeSphere Shape = iota
	ShapeBox
	ShapeTorus
	ShapeOctahedron
	ShapeCapsule

	// ShapeCount is the number of shapes the shader understands.
	ShapeCount
)

var shapeNames = [...]string{"sphere", "box", "torus", "octahedron", "capsule"}

func (s Shape) String() string {
	if s < 0 || s >= ShapeCount {
		return "unknown"
	}
	return shapeNames[s]
}

// Next returns the following shape, wrapping after the last one.
func (s Shape) Next() Shape {
	return Shape(common.Wrap(int32(s)+1, int32(ShapeCount)))
}

// Operation selects how the two shapes are combined by the shader.
type Operation int32

const (
	OperationSmoothUnion Operation = iota
	OperationSmoothSubtraction
	OperationSmoothIntersection
	OperationMorph

	// OperationCount is the number of combine operations the shader understands.
	OperationCount
)

var operationNames = [...]string{"smooth_union", "smooth_subtraction", "smooth_intersection", "morph"}

func (o Operation) String() string {
	if o < 0 || o >= OperationCount {
		return "unknown"
	}
	return operationNames[o]
}

// Next returns the following operation, wrapping after the last one.
func (o Operation) Next() Operation {
	return Operation(common.Wrap(int32(o)+1, int32(OperationCount)))
}

// ParseShape resolves a shape by name. The second return value is false for unknown names.
func ParseShape(name string) (Shape, bool) {
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), true
		}
	}
	return 0, false
}

// ParseOperation resolves an operation by name. The second return value is false for unknown names.
func ParseOperation(name string) (Operation, bool) {
	for i, n := range operationNames {
		if n == name {
			return Operation(i), true
		}
	}
	return 0, false
}
