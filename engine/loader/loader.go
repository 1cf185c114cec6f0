package loader

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-gltf/common"
	"github.com/Carmen-Shannon/oxy-gltf/engine/document"
)

// LoaderBackendType identifies how JSON text is fed to the parser.
type LoaderBackendType int

const (
	// BackendTypeScanner streams the JSON text through the parser in fixed size fragments.
	BackendTypeScanner LoaderBackendType = iota
	// BackendTypeWhole reads the JSON text fully and parses it in a single feed.
	BackendTypeWhole
)

// DefaultChunkSize is the fragment size of the scanner backend.
const DefaultChunkSize = 64 * 1024

func (t LoaderBackendType) String() string {
	switch t {
	case BackendTypeScanner:
		return "scanner"
	case BackendTypeWhole:
		return "whole"
	default:
		return fmt.Sprintf("BACKEND(%d)", int(t))
	}
}

// Asset is a parsed glTF or GLB file.
type Asset struct {
	Name     string
	Document *document.Document
	// Binary holds the container's binary chunks in order; empty for bare JSON.
	Binary [][]byte
	// Version is the container format version, 0 for bare JSON.
	Version uint32
}

// IsContainer reports whether the asset was read from a binary container.
func (a *Asset) IsContainer() bool {
	return a.Version != 0
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	assetCache map[string]*Asset

	backend       loaderBackend
	chunkSize     int
	workers       int
	parserOptions []ParserBuilderOption

	// pool runs LoadAll tasks on a bounded set of reusable goroutines
	pool worker.DynamicWorkerPool
}

// Loader defines the public-facing interface for loading and caching glTF assets.
// It hides the container format (glTF, GLB) and the feeding strategy behind a
// backend and keeps a cache of previously loaded assets.
type Loader interface {
	// Load parses a file and caches the result.
	// If the asset is already cached (by absolute file path), the cached version is returned.
	// Binary containers are detected by the .glb extension or the magic tag.
	//
	// Parameters:
	//   - path: the file path to the glTF or GLB file
	//
	// Returns:
	//   - *Asset: the loaded and cached asset
	//   - error: error if loading fails
	Load(path string) (*Asset, error)

	// LoadReader parses an asset from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key for the loaded asset
	//   - r: the reader providing the asset data
	//   - isGLB: true if the reader provides a binary container
	//
	// Returns:
	//   - *Asset: the loaded asset
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, isGLB bool) (*Asset, error)

	// LoadAll parses several files concurrently, one parser per file.
	// The result has one entry per path, nil where that file failed.
	//
	// Parameters:
	//   - paths: the file paths to load
	//
	// Returns:
	//   - []*Asset: the loaded assets in path order
	//   - error: the joined errors of every failed file
	LoadAll(paths []string) ([]*Asset, error)

	// Get retrieves a cached asset by name. File paths match their absolute form.
	// Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - *Asset: the cached asset or nil
	Get(name string) *Asset

	// Assets returns a copy of the asset cache.
	//
	// Returns:
	//   - map[string]*Asset: all cached assets keyed by name
	Assets() map[string]*Asset

	// Evict drops an asset from the cache so the next Load parses it again.
	// File paths match their absolute form.
	//
	// Parameters:
	//   - name: the cache key to drop
	Evict(name string)
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeScanner)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:         sync.RWMutex{},
		assetCache: make(map[string]*Asset),
		chunkSize:  DefaultChunkSize,
		workers:    max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(l)
	}

	switch backendType {
	case BackendTypeWhole:
		l.backend = newWholeLoaderBackend()
	default:
		l.backend = newScannerLoaderBackend(l.chunkSize)
	}

	l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	return l
}

func (l *loader) Load(path string) (*Asset, error) {
	key := cacheKey(path)
	l.mu.RLock()
	if cached, ok := l.assetCache[key]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	if err := checkExtension(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	isGLB := strings.EqualFold(filepath.Ext(path), ".glb")
	if magic, err := br.Peek(4); err == nil && IsContainer(magic) {
		isGLB = true
	}

	start := time.Now()
	asset, err := l.decode(path, br, isGLB)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	common.LogDebug("loaded %s in %s", path, time.Since(start))

	l.store(key, asset)
	return asset, nil
}

func (l *loader) LoadReader(name string, r io.Reader, isGLB bool) (*Asset, error) {
	l.mu.RLock()
	if cached, ok := l.assetCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	asset, err := l.decode(name, r, isGLB)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	l.store(name, asset)
	return asset, nil
}

func (l *loader) LoadAll(paths []string) ([]*Asset, error) {
	assets := make([]*Asset, len(paths))
	errs := make([]error, len(paths))

	// A WaitGroup is the barrier; the pool itself stays alive between calls.
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		idx, p := i, path
		l.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				asset, err := l.Load(p)
				assets[idx], errs[idx] = asset, err
				return asset, err
			},
		})
	}
	wg.Wait()

	return assets, errors.Join(errs...)
}

func (l *loader) Get(name string) *Asset {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if asset, ok := l.assetCache[name]; ok {
		return asset
	}
	return l.assetCache[cacheKey(name)]
}

func (l *loader) Assets() map[string]*Asset {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]*Asset, len(l.assetCache))
	for k, v := range l.assetCache {
		result[k] = v
	}
	return result
}

func (l *loader) Evict(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.assetCache, name)
	delete(l.assetCache, cacheKey(name))
}

// decode runs the container demultiplexer when needed and feeds the JSON text to the backend.
func (l *loader) decode(name string, r io.Reader, isGLB bool) (*Asset, error) {
	asset := &Asset{
		Name:     name,
		Document: document.New(),
	}

	if !isGLB {
		if err := l.backend.Decode(r, asset.Document, l.parserOptions...); err != nil {
			return nil, err
		}
		return asset, nil
	}

	container, err := ReadContainer(r)
	if err != nil {
		return nil, err
	}
	asset.Version = container.Header.Version
	asset.Binary = container.Binary
	if container.Header.Version != 2 {
		common.LogWarn("%s: container version %d, expected 2", name, container.Header.Version)
	}

	if err := l.backend.Decode(bytes.NewReader(container.JSON), asset.Document, l.parserOptions...); err != nil {
		return nil, err
	}
	return asset, nil
}

func (l *loader) store(name string, asset *Asset) {
	l.mu.Lock()
	l.assetCache[name] = asset
	l.mu.Unlock()
}

// cacheKey returns the absolute form of a file path, or the path unchanged
// when it cannot be resolved.
func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// checkExtension accepts .gltf and .glb files, matched case-insensitively.
func checkExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf", ".glb":
		return nil
	default:
		return fmt.Errorf("unsupported asset format: %s", ext)
	}
}
