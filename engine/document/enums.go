package document

import "fmt"

// ComponentType is the numeric data type of accessor components.
// Values outside the defined set are kept as-is; rejecting them is left to the consumer.
type ComponentType uint32

// ComponentType constants
const (
	ComponentByte          ComponentType = 5120
	ComponentUnsignedByte  ComponentType = 5121
	ComponentShort         ComponentType = 5122
	ComponentUnsignedShort ComponentType = 5123
	ComponentUnsignedInt   ComponentType = 5125
	ComponentFloat         ComponentType = 5126
)

// Size returns the byte size of one component, or 0 for an unknown type.
func (c ComponentType) Size() int {
	switch c {
	case ComponentByte, ComponentUnsignedByte:
		return 1
	case ComponentShort, ComponentUnsignedShort:
		return 2
	case ComponentUnsignedInt, ComponentFloat:
		return 4
	default:
		return 0
	}
}

func (c ComponentType) String() string {
	switch c {
	case ComponentByte:
		return "BYTE"
	case ComponentUnsignedByte:
		return "UNSIGNED_BYTE"
	case ComponentShort:
		return "SHORT"
	case ComponentUnsignedShort:
		return "UNSIGNED_SHORT"
	case ComponentUnsignedInt:
		return "UNSIGNED_INT"
	case ComponentFloat:
		return "FLOAT"
	default:
		return fmt.Sprintf("COMPONENT(%d)", uint32(c))
	}
}

// AccessorType is the shape of an accessor element.
type AccessorType uint8

// AccessorType constants, in keyword order.
const (
	AccessorScalar AccessorType = iota
	AccessorVec2
	AccessorVec3
	AccessorVec4
	AccessorMat2
	AccessorMat3
	AccessorMat4
)

// AccessorTypeNames are the keywords for AccessorType, indexed by value.
var AccessorTypeNames = []string{"SCALAR", "VEC2", "VEC3", "VEC4", "MAT2", "MAT3", "MAT4"}

// Components returns the number of components per element.
func (t AccessorType) Components() int {
	switch t {
	case AccessorScalar:
		return 1
	case AccessorVec2:
		return 2
	case AccessorVec3:
		return 3
	case AccessorVec4, AccessorMat2:
		return 4
	case AccessorMat3:
		return 9
	case AccessorMat4:
		return 16
	default:
		return 0
	}
}

func (t AccessorType) String() string {
	if int(t) < len(AccessorTypeNames) {
		return AccessorTypeNames[t]
	}
	return fmt.Sprintf("TYPE(%d)", uint8(t))
}

// Attribute is a primitive attribute kind.
type Attribute uint8

// Attribute constants, in keyword order.
const (
	AttributePosition Attribute = iota
	AttributeNormal
	AttributeTangent
	AttributeTexCoord0
	AttributeTexCoord1
	AttributeColor0
	AttributeJoints0
	AttributeWeights0
)

// AttributeNames are the keywords for Attribute, indexed by value.
var AttributeNames = []string{"POSITION", "NORMAL", "TANGENT", "TEXCOORD_0", "TEXCOORD_1", "COLOR_0", "JOINTS_0", "WEIGHTS_0"}

// Flag returns the bit for this attribute kind.
func (a Attribute) Flag() AttributeFlag {
	return AttributeFlag(1) << a
}

func (a Attribute) String() string {
	if int(a) < len(AttributeNames) {
		return AttributeNames[a]
	}
	return fmt.Sprintf("ATTRIBUTE(%d)", uint8(a))
}

// AttributeFlag is a bitset of attribute kinds present on a primitive.
type AttributeFlag uint32

// Attribute flags
const (
	FlagPosition  = AttributeFlag(1) << AttributePosition
	FlagNormal    = AttributeFlag(1) << AttributeNormal
	FlagTangent   = AttributeFlag(1) << AttributeTangent
	FlagTexCoord0 = AttributeFlag(1) << AttributeTexCoord0
	FlagTexCoord1 = AttributeFlag(1) << AttributeTexCoord1
	FlagColor0    = AttributeFlag(1) << AttributeColor0
	FlagJoints0   = AttributeFlag(1) << AttributeJoints0
	FlagWeights0  = AttributeFlag(1) << AttributeWeights0
)

// Has reports whether every bit of other is set.
func (f AttributeFlag) Has(other AttributeFlag) bool {
	return f&other == other
}

// DrawMode is the primitive topology. Values outside the defined set are kept as-is.
type DrawMode uint32

// DrawMode constants
const (
	ModePoints DrawMode = iota
	ModeLines
	ModeLineLoop
	ModeLineStrip
	ModeTriangles
	ModeTriangleStrip
	ModeTriangleFan
)

func (m DrawMode) String() string {
	switch m {
	case ModePoints:
		return "POINTS"
	case ModeLines:
		return "LINES"
	case ModeLineLoop:
		return "LINE_LOOP"
	case ModeLineStrip:
		return "LINE_STRIP"
	case ModeTriangles:
		return "TRIANGLES"
	case ModeTriangleStrip:
		return "TRIANGLE_STRIP"
	case ModeTriangleFan:
		return "TRIANGLE_FAN"
	default:
		return fmt.Sprintf("MODE(%d)", uint32(m))
	}
}

// AlphaMode is the material alpha rendering mode.
type AlphaMode uint8

// AlphaMode constants, in keyword order.
const (
	AlphaOpaque AlphaMode = iota
	AlphaMask
	AlphaBlend
)

// AlphaModeNames are the keywords for AlphaMode, indexed by value.
var AlphaModeNames = []string{"OPAQUE", "MASK", "BLEND"}

func (m AlphaMode) String() string {
	if int(m) < len(AlphaModeNames) {
		return AlphaModeNames[m]
	}
	return fmt.Sprintf("ALPHA(%d)", uint8(m))
}

// PathType is the node property driven by an animation channel.
type PathType uint8

// PathType constants, in keyword order.
const (
	PathScale PathType = iota
	PathRotation
	PathTranslation
	PathWeights
)

// PathTypeNames are the keywords for PathType, indexed by value.
var PathTypeNames = []string{"scale", "rotation", "translation", "weights"}

func (p PathType) String() string {
	if int(p) < len(PathTypeNames) {
		return PathTypeNames[p]
	}
	return fmt.Sprintf("PATH(%d)", uint8(p))
}

// Interpolation is the keyframe interpolation of an animation sampler.
type Interpolation uint8

// Interpolation constants, in keyword order.
const (
	InterpolationLinear Interpolation = iota
	InterpolationStep
	InterpolationCubicSpline
)

// InterpolationNames are the keywords for Interpolation, indexed by value.
var InterpolationNames = []string{"LINEAR", "STEP", "CUBICSPLINE"}

func (i Interpolation) String() string {
	if int(i) < len(InterpolationNames) {
		return InterpolationNames[i]
	}
	return fmt.Sprintf("INTERPOLATION(%d)", uint8(i))
}

// Filter is a sampler min/mag filter. FilterUnset marks an absent value.
type Filter int32

// Sampler filter constants
const (
	FilterUnset                Filter = -1
	FilterNearest              Filter = 9728
	FilterLinear               Filter = 9729
	FilterNearestMipmapNearest Filter = 9984
	FilterLinearMipmapNearest  Filter = 9985
	FilterNearestMipmapLinear  Filter = 9986
	FilterLinearMipmapLinear   Filter = 9987
)

// Wrap is a sampler wrapping mode.
type Wrap int32

// Sampler wrap constants
const (
	WrapClampToEdge    Wrap = 33071
	WrapMirroredRepeat Wrap = 33648
	WrapRepeat         Wrap = 10497
)

// BufferTarget is the intended GPU binding of a buffer view; zero when unset.
type BufferTarget uint32

// BufferTarget constants
const (
	TargetNone         BufferTarget = 0
	TargetArray        BufferTarget = 34962
	TargetElementArray BufferTarget = 34963
)
