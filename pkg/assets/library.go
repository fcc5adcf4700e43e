// Package assets owns the four images the scene is drawn with. Loading
// runs on background goroutines; the frame driver observes only the
// library's readiness counter.
package assets

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/unklstewy/hornet/pkg/scene"
)

// ErrUnknownAsset is returned for an asset kind or name the library does not hold.
var ErrUnknownAsset = errors.New("unknown asset")

// Kind identifies one of the library's images.
type Kind int

const (
	Aircraft Kind = iota
	Terrain
	Cloud
	Sky
	numKinds
)

// Total is the number of assets that must load before play starts.
const Total = int(numKinds)

var kindNames = [...]string{
	Aircraft: "aircraft",
	Terrain:  "terrain",
	Cloud:    "cloud",
	Sky:      "sky",
}

var fileNames = [...]string{
	Aircraft: "f18_sprite.png",
	Terrain:  "terrain_texture.png",
	Cloud:    "cloud_texture.png",
	Sky:      "sky_gradient.png",
}

// Kinds returns every asset kind in load order.
func Kinds() []Kind {
	return []Kind{Aircraft, Terrain, Cloud, Sky}
}

func (k Kind) valid() bool {
	return k >= 0 && k < numKinds
}

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// FileName is the image file the kind is loaded from.
func (k Kind) FileName() string {
	if !k.valid() {
		return ""
	}
	return fileNames[k]
}

// ParseKind parses a kind name such as "terrain".
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAsset, name)
}

// Library holds the loaded images. The loaded counter only increases and
// is the single source of readiness.
type Library struct {
	mu     sync.RWMutex
	images [numKinds]image.Image
	loaded atomic.Int32
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{}
}

// Set stores an image. The first image stored for a kind advances the
// readiness counter; later ones replace it without counting again.
func (l *Library) Set(k Kind, img image.Image) error {
	if !k.valid() {
		return fmt.Errorf("%w: %v", ErrUnknownAsset, k)
	}
	if img == nil {
		return fmt.Errorf("nil image for %v", k)
	}

	l.mu.Lock()
	first := l.images[k] == nil
	l.images[k] = img
	l.mu.Unlock()

	if first {
		l.loaded.Add(1)
	}
	return nil
}

// Get returns the image for k, or nil if it has not loaded.
func (l *Library) Get(k Kind) image.Image {
	if !k.valid() {
		return nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.images[k]
}

// Progress returns how many of the Total assets have loaded.
func (l *Library) Progress() (loaded, total int) {
	return int(l.loaded.Load()), Total
}

// Ready reports whether every asset has loaded.
func (l *Library) Ready() bool {
	return int(l.loaded.Load()) >= Total
}

// Textures returns the images for the renderer. Ready is false until the
// whole set has loaded, even if some images are present.
func (l *Library) Textures() scene.Textures {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return scene.Textures{
		Aircraft: l.images[Aircraft],
		Terrain:  l.images[Terrain],
		Cloud:    l.images[Cloud],
		Sky:      l.images[Sky],
		Ready:    int(l.loaded.Load()) >= Total,
	}
}
