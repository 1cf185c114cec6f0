package loader

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-gltf/engine/jsonevent"
)

// triangleGLTF is a two node scene with one indexed triangle whose data lives
// in buffer 0: three VEC3 positions followed by three uint16 indices.
const triangleGLTF = `{
  "asset": {"version": "2.0", "generator": "oxy-gltf test", "copyright": "none"},
  "scene": 0,
  "scenes": [{"name": "main", "nodes": [0]}],
  "nodes": [
    {"name": "root", "children": [1], "translation": [1, 2, 3]},
    {"name": "child", "mesh": 0, "rotation": [0, 0, 0.5, 0.75], "scale": [2, 2, 2]}
  ],
  "meshes": [
    {"name": "tri", "primitives": [{"attributes": {"POSITION": 0}, "indices": 1, "mode": 4}]}
  ],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]},
    {"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
  ],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36, "target": 34962},
    {"buffer": 0, "byteOffset": 36, "byteLength": 6, "target": 34963}
  ],
  "buffers": [{"byteLength": 44}]
}`

// fullGLTF populates every section, with escaped and multi-byte strings and
// extension objects the mapper skips.
const fullGLTF = `{
  "asset": {"version": "2.0", "minVersion": "2.0", "generator": "gen \"quoted\" \\ \u00e9t\u00e9"},
  "extensionsUsed": ["KHR_materials_unlit"],
  "scene": 0,
  "scenes": [{"name": "Überwald 日本", "nodes": [0]}],
  "nodes": [
    {"name": "hips\tbone", "children": [1], "skin": 0, "matrix": [1,0,0,0, 0,1,0,0, 0,0,1,0, 4,5,6,1]},
    {"name": "emoji \ud83d\ude00 😀", "mesh": 0, "weights": [0.25, 0.75], "extras": {"a": [1, {"b": null}]}}
  ],
  "meshes": [{"name": "m", "weights": [0, 1], "primitives": [
    {"attributes": {"POSITION": 0, "NORMAL": 1, "TEXCOORD_0": 2, "JOINTS_0": 3, "WEIGHTS_0": 4, "_ID": 5}, "indices": 5, "material": 0, "mode": 1},
    {"attributes": {"POSITION": 0}}
  ]}],
  "materials": [{
    "name": "m\u00e4t",
    "doubleSided": true,
    "alphaMode": "MASK",
    "alphaCutoff": 0.25,
    "emissiveFactor": [0.1, 0.2, 0.3],
    "pbrMetallicRoughness": {"baseColorFactor": [0.5, 0.5, 0.5, 1], "baseColorTexture": {"index": 0, "texCoord": 1}, "metallicFactor": 0, "roughnessFactor": 0.5},
    "normalTexture": {"index": 0, "scale": 2},
    "occlusionTexture": {"index": 0, "strength": 0.5},
    "emissiveTexture": {"index": 0},
    "extensions": {"KHR_materials_unlit": {}}
  }],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [-1.5e0, 0, 0], "max": [1, 1, 0]},
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC2"},
    {"bufferView": 0, "componentType": 5121, "count": 3, "type": "VEC4"},
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC4", "normalized": false},
    {"bufferView": 1, "byteOffset": 0, "componentType": 5123, "count": 3, "type": "SCALAR"},
    {"bufferView": 2, "componentType": 5126, "count": 2, "type": "MAT4"}
  ],
  "animations": [{"name": "walk \/ run", "channels": [
    {"sampler": 0, "target": {"node": 1, "path": "rotation"}},
    {"sampler": 1, "target": {"node": 0, "path": "weights"}}
  ], "samplers": [
    {"input": 0, "output": 1, "interpolation": "STEP"},
    {"input": 0, "output": 4, "interpolation": "CUBICSPLINE"}
  ]}],
  "skins": [{"name": "rig", "skeleton": 0, "inverseBindMatrices": 6, "joints": [0, 1]}],
  "buffers": [{"byteLength": 256}, {"name": "ext", "byteLength": 4, "uri": "data:application/octet-stream;base64,AAAAAA=="}],
  "bufferViews": [
    {"buffer": 0, "byteLength": 48, "byteStride": 16, "target": 34962},
    {"buffer": 0, "byteOffset": 48, "byteLength": 6, "target": 34963},
    {"name": "ibm", "buffer": 0, "byteOffset": 64, "byteLength": 128}
  ],
  "images": [{"name": "emb", "bufferView": 1, "mimeType": "image/png"}, {"uri": "textures/a b.png"}],
  "samplers": [{"magFilter": 9729, "minFilter": 9987, "wrapS": 33071, "wrapT": 33648}],
  "textures": [{"sampler": 0, "source": 1}]
}`

// triangleBinary returns the contents of buffer 0 of triangleGLTF.
func triangleBinary() []byte {
	var buf bytes.Buffer
	positions := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	for _, f := range positions {
		_ = binary.Write(&buf, binary.LittleEndian, math.Float32bits(f))
	}
	for _, i := range []uint16{0, 1, 2} {
		_ = binary.Write(&buf, binary.LittleEndian, i)
	}
	buf.Write([]byte{0, 0})
	return buf.Bytes()
}

// buildContainer writes a binary container: the 12 byte header, then every
// chunk as length, type, payload and zero padding to a 4 byte boundary.
func buildContainer(version uint32, chunks ...Chunk) []byte {
	var body bytes.Buffer
	for _, c := range chunks {
		_ = binary.Write(&body, binary.LittleEndian, uint32(len(c.Data)))
		_ = binary.Write(&body, binary.LittleEndian, uint32(c.Type))
		body.Write(c.Data)
		body.Write(make([]byte, chunkPadding(uint32(len(c.Data)))))
	}

	var out bytes.Buffer
	_ = binary.Write(&out, binary.LittleEndian, ContainerHeader{
		Magic:   ContainerMagic,
		Version: version,
		Length:  uint32(containerHeaderSize + body.Len()),
	})
	out.Write(body.Bytes())
	return out.Bytes()
}

// --- Event constructors for driving a Mapper directly ---

func evObject() jsonevent.Event    { return jsonevent.Event{Kind: jsonevent.ObjectStart} }
func evObjectEnd() jsonevent.Event { return jsonevent.Event{Kind: jsonevent.ObjectEnd} }
func evArray() jsonevent.Event     { return jsonevent.Event{Kind: jsonevent.ArrayStart} }
func evArrayEnd() jsonevent.Event  { return jsonevent.Event{Kind: jsonevent.ArrayEnd} }
func evKey(k string) jsonevent.Event {
	return jsonevent.Event{Kind: jsonevent.Key, Text: []byte(k)}
}
func evInt(i int64) jsonevent.Event {
	return jsonevent.Event{Kind: jsonevent.Integer, Int: i}
}
func evFloat(f float64) jsonevent.Event {
	return jsonevent.Event{Kind: jsonevent.Float, Float: f}
}

// evString returns the events of a string value split into the given fragments.
func evString(fragments ...string) []jsonevent.Event {
	if len(fragments) == 0 {
		fragments = []string{""}
	}
	events := make([]jsonevent.Event, 0, len(fragments)+1)
	for i, f := range fragments {
		kind := jsonevent.StringCont
		if i == 0 {
			kind = jsonevent.StringStart
		}
		events = append(events, jsonevent.Event{Kind: kind, Text: []byte(f)})
	}
	return append(events, jsonevent.Event{Kind: jsonevent.StringEnd})
}

// events flattens single events and event slices into one sequence.
func events(parts ...any) []jsonevent.Event {
	var out []jsonevent.Event
	for _, p := range parts {
		switch v := p.(type) {
		case jsonevent.Event:
			out = append(out, v)
		case []jsonevent.Event:
			out = append(out, v...)
		default:
			panic("events: unsupported part")
		}
	}
	return out
}

// replay delivers events to h and returns the first error.
func replay(h jsonevent.Handler, evs []jsonevent.Event) error {
	for _, ev := range evs {
		if err := h.HandleEvent(ev); err != nil {
			return err
		}
	}
	return nil
}

func float32Bytes(f float32) []byte {
	return binary.LittleEndian.AppendUint32(nil, math.Float32bits(f))
}
