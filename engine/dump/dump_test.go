package dump

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-gltf/engine/document"
	"github.com/Carmen-Shannon/oxy-gltf/engine/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneGLTF = `{
  "asset": {"version": "2.0", "generator": "dump test"},
  "scene": 0,
  "scenes": [{"name": "main", "nodes": [0]}],
  "nodes": [
    {"name": "root", "children": [1], "translation": [1, 2, 3]},
    {"name": "leaf", "translation": [0, 0, 4], "mesh": 0}
  ],
  "meshes": [{"name": "quad", "primitives": [{"attributes": {"POSITION": 0, "NORMAL": 1}, "mode": 4}]}],
  "materials": [{"name": "glass", "alphaMode": "BLEND"}],
  "animations": [{
    "name": "spin",
    "channels": [{"sampler": 0, "target": {"node": 1, "path": "rotation"}}],
    "samplers": [{"input": 2, "output": 3, "interpolation": "STEP"}]
  }],
  "buffers": [{"byteLength": 8, "uri": "quad.bin"}],
  "images": [{"uri": "albedo.png"}]
}`

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestConfigValidate(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"chunk size", func(c *Config) { c.ChunkSize = 0 }},
		{"workers", func(c *Config) { c.Workers = -1 }},
		{"backend", func(c *Config) { c.Backend = "mmap" }},
		{"section", func(c *Config) { c.Sections = []string{"nodes", "lights"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConfig()
			tt.mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfigLoadFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "gltfdump.toml", `
log_level = "debug"
chunk_size = 512
strict_keywords = true
backend = "whole"
sections = ["nodes", "meshes"]
`)
	cfg := NewConfig()
	require.NoError(t, cfg.LoadFile(path))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 512, cfg.ChunkSize)
	assert.True(t, cfg.StrictKeywords)
	assert.Zero(t, cfg.Workers)

	backend, err := cfg.BackendType()
	require.NoError(t, err)
	assert.Equal(t, loader.BackendTypeWhole, backend)

	assert.True(t, cfg.Enabled("nodes"))
	assert.False(t, cfg.Enabled("accessors"))

	assert.Error(t, cfg.LoadFile(filepath.Join(t.TempDir(), "missing.toml")))
	bad := writeFile(t, t.TempDir(), "bad.toml", "chunk_size = [")
	assert.Error(t, cfg.LoadFile(bad))
}

func TestConfigSetSections(t *testing.T) {
	cfg := NewConfig()
	assert.True(t, cfg.Enabled("skins"))

	cfg.SetSections(" nodes, ,materials ")
	assert.Equal(t, []string{"nodes", "materials"}, cfg.Sections)
	assert.False(t, cfg.Enabled("skins"))

	cfg.SetSections("")
	assert.Nil(t, cfg.Sections)
	assert.True(t, cfg.Enabled("skins"))
}

func TestWriteSummary(t *testing.T) {
	doc := document.New()
	require.NoError(t, loader.ParseBytes(doc, []byte(sceneGLTF)))

	var out bytes.Buffer
	require.NoError(t, WriteSummary(&out, &loader.Asset{Name: "scene.gltf", Document: doc}, func(string) bool { return true }))
	text := out.String()

	assert.Contains(t, text, "== scene.gltf (glTF) ==")
	assert.Contains(t, text, `generator "dump test"`)
	assert.Contains(t, text, "stats: 1 scenes, 2 nodes, 1 meshes (1 primitives)")
	assert.Contains(t, text, `[1] "leaf" mesh=0`)
	assert.Contains(t, text, "world=(1, 2, 7)")
	assert.Contains(t, text, "attributes=POSITION:0,NORMAL:1")
	assert.Contains(t, text, "alpha=BLEND")
	assert.Contains(t, text, "path=rotation")
	assert.Contains(t, text, "(input=2 output=3 STEP)")
	assert.Contains(t, text, `external length=8 uri="quad.bin"`)
	assert.Contains(t, text, `external uri="albedo.png"`)
}

func TestWriteSummaryGeometry(t *testing.T) {
	doc := document.New()
	require.NoError(t, loader.ParseBytes(doc, []byte(`{
		"meshes": [{"primitives": [{"attributes": {"POSITION": 0}}]}],
		"accessors": [{"bufferView": 0, "componentType": 5126, "count": 2, "type": "VEC3"}],
		"bufferViews": [{"buffer": 0, "byteLength": 24}],
		"buffers": [{"byteLength": 24}]
	}`)))

	bin := make([]byte, 0, 24)
	for _, f := range []float32{-1, 0, 0, 1, 2, 0} {
		bin = binary.LittleEndian.AppendUint32(bin, math.Float32bits(f))
	}

	var out bytes.Buffer
	asset := &loader.Asset{Name: "line.glb", Document: doc, Binary: [][]byte{bin}, Version: 2}
	require.NoError(t, WriteSummary(&out, asset, func(s string) bool { return s == "meshes" }))
	assert.Contains(t, out.String(), "vertices=2 indices=2 bounds=[-1 0 0]..[1 2 0]")
}

func TestWriteSummarySections(t *testing.T) {
	doc := document.New()
	require.NoError(t, loader.ParseBytes(doc, []byte(sceneGLTF)))

	cfg := NewConfig()
	cfg.SetSections("materials")

	var out bytes.Buffer
	require.NoError(t, WriteSummary(&out, &loader.Asset{Name: "scene.glb", Document: doc, Version: 2}, cfg.Enabled))
	text := out.String()

	assert.Contains(t, text, "(GLB v2, 0 binary chunks)")
	assert.Contains(t, text, "materials: 1")
	assert.NotContains(t, text, "nodes: 2")
	assert.NotContains(t, text, "animations:")
}

func TestDumperRun(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "scene.gltf", sceneGLTF)
	broken := writeFile(t, dir, "broken.gltf", `{"nodes": [{"name": "x"`)

	cfg := NewConfig()
	cfg.SetSections("scenes")
	var out bytes.Buffer
	d, err := NewDumper(cfg, &out)
	require.NoError(t, err)

	err = d.Run([]string{good, broken})
	assert.ErrorIs(t, err, loader.ErrTruncatedInput)
	assert.Equal(t, 1, strings.Count(out.String(), "== "))
	assert.Contains(t, out.String(), `"main" roots=[0]`)

	out.Reset()
	require.NoError(t, d.Reload(good))
	assert.Contains(t, out.String(), "== "+good)

	_, err = NewDumper(&Config{Backend: "mmap"}, &out)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestWatchReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "scene.gltf", sceneGLTF)
	other := filepath.Join(dir, "other.gltf")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	changed := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{path}, func(p string) { changed <- p })
	}()

	abs, err := filepath.Abs(path)
	require.NoError(t, err)

	// the watcher starts asynchronously; keep writing until it reports
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for got := ""; got == ""; {
		select {
		case got = <-changed:
			assert.Equal(t, abs, got)
		case <-tick.C:
			require.NoError(t, os.WriteFile(other, []byte("{}"), 0o644))
			require.NoError(t, os.WriteFile(path, []byte(sceneGLTF), 0o644))
		case <-ctx.Done():
			t.Fatal("no change reported")
		}
	}

	cancel()
	require.NoError(t, <-done)
	for len(changed) > 0 {
		assert.Equal(t, abs, <-changed)
	}
}
