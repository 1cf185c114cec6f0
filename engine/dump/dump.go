package dump

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-gltf/common"
	"github.com/Carmen-Shannon/oxy-gltf/engine/loader"
	"github.com/Carmen-Shannon/oxy-gltf/engine/profiler"
)

const profileInterval = 5 * time.Second

// Dumper loads glTF assets and prints their summaries.
type Dumper interface {
	// Run loads every path concurrently and prints a summary for each one that
	// parsed, in path order.
	//
	// Parameters:
	//   - paths: the files to load
	//
	// Returns:
	//   - error: the joined load errors, or the first write error
	Run(paths []string) error

	// Reload drops a file from the cache, parses it again and prints it.
	//
	// Parameters:
	//   - path: the file to reload
	//
	// Returns:
	//   - error: error if the file fails to parse or print
	Reload(path string) error

	// Watch reloads files as they change until ctx is cancelled.
	Watch(ctx context.Context, paths []string) error
}

type dumper struct {
	cfg    *Config
	loader loader.Loader
	// profiler is nil unless cfg.Profile is set
	profiler *profiler.Profiler

	// mu serializes writes to out
	mu  sync.Mutex
	out io.Writer
}

var _ Dumper = &dumper{}

// NewDumper creates a Dumper from a validated config.
//
// Parameters:
//   - cfg: the run configuration
//   - out: where summaries are written
//
// Returns:
//   - Dumper: the new dumper
//   - error: error if the config names an unknown backend
func NewDumper(cfg *Config, out io.Writer) (Dumper, error) {
	backend, err := cfg.BackendType()
	if err != nil {
		return nil, err
	}
	d := &dumper{
		cfg:    cfg,
		loader: loader.NewLoader(backend, cfg.LoaderOptions()...),
		out:    out,
	}
	if cfg.Profile {
		d.profiler = profiler.NewProfiler(profileInterval)
	}
	return d, nil
}

func (d *dumper) Run(paths []string) error {
	assets, loadErr := d.loader.LoadAll(paths)
	for i, asset := range assets {
		if asset == nil {
			continue
		}
		d.record(paths[i])
		if err := d.print(asset); err != nil {
			return fmt.Errorf("failed to write summary of %s: %w", paths[i], err)
		}
	}
	if d.profiler != nil {
		d.profiler.Flush()
	}
	return loadErr
}

func (d *dumper) Reload(path string) error {
	d.loader.Evict(path)
	asset, err := d.loader.Load(path)
	if err != nil {
		return err
	}
	d.record(path)
	return d.print(asset)
}

func (d *dumper) Watch(ctx context.Context, paths []string) error {
	return Watch(ctx, paths, func(path string) {
		if err := d.Reload(path); err != nil {
			common.LogError("reload %s: %s", path, err.Error())
		}
	})
}

// record feeds the size of a parsed file to the profiler.
func (d *dumper) record(path string) {
	if d.profiler == nil {
		return
	}
	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}
	d.profiler.Tick(size)
}

func (d *dumper) print(asset *loader.Asset) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return WriteSummary(d.out, asset, d.cfg.Enabled)
}
