package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/unklstewy/hornet/internal/logging"
)

// LoadConfig controls where assets come from.
type LoadConfig struct {
	// Dir holds the PNG files; empty means procedural textures only
	Dir string

	// Procedural substitutes a generated texture for any file that fails
	Procedural bool

	// Files overrides the file name of individual kinds within Dir
	Files map[Kind]string

	Retry RetryConfig
}

// FileName returns the file k is read from, honoring overrides.
func (cfg LoadConfig) FileName(k Kind) string {
	if name, ok := cfg.Files[k]; ok && name != "" {
		return name
	}
	return k.FileName()
}

// Load reads every asset into lib concurrently. It returns once all loads
// have finished; the first failure, if any, is returned. Assets that fail
// without a procedural fallback stay missing, so the library never
// becomes ready.
func Load(ctx context.Context, lib *Library, cfg LoadConfig, lg *logging.Logger) error {
	var eg errgroup.Group
	for _, k := range Kinds() {
		eg.Go(func() error {
			return loadOne(ctx, lib, k, cfg, lg.With("asset", k.String()))
		})
	}
	return eg.Wait()
}

func loadOne(ctx context.Context, lib *Library, k Kind, cfg LoadConfig, lg *logging.Logger) error {
	var img image.Image
	var err error

	if cfg.Dir == "" {
		err = Permanent(errors.New("no asset directory"))
	} else {
		path := filepath.Join(cfg.Dir, cfg.FileName(k))
		img, err = RetryWithBackoffResult(ctx, cfg.Retry, func() (image.Image, error) {
			return decodeFile(path)
		})
	}

	if err != nil {
		if !cfg.Procedural || ctx.Err() != nil {
			lg.Error("Failed to load asset", "error", err)
			return fmt.Errorf("failed to load %v: %w", k, err)
		}
		lg.Info("Using procedural texture", "reason", err.Error())
		img = Generate(k)
	} else {
		lg.Debug("Loaded asset", "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	}

	return lib.Set(k, img)
}

// decodeFile reads a PNG. Missing and undecodable files are permanent
// failures; anything else may be transient and is retried.
func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, Permanent(err)
		}
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, Permanent(fmt.Errorf("failed to decode %s: %w", path, err))
	}
	return img, nil
}
