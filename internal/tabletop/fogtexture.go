package tabletop

import (
	"fmt"
	"image/color"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/hajimehoshi/ebiten/v2"
)

// fogShroud is the overlay color of a covered cell.
var fogShroud = color.RGBA{R: 12, G: 12, B: 20, A: 216}

// overlayTTL ages out overlay textures for maps nobody edits or views.
const overlayTTL = 5 * time.Minute

// FogOverlayPixels renders a mask into RGBA bytes, one pixel per cell:
// covered cells get the shroud color, revealed cells stay transparent.
// A nil mask (never-edited map) yields a fully transparent overlay.
func FogOverlayPixels(mask FogMask, w, h int) []byte {
	if w <= 0 || h <= 0 {
		return nil
	}
	px := make([]byte, w*h*4)
	if mask == nil {
		return px
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.RevealedAt(x, y, w, h) {
				continue
			}
			i := (y*w + x) * 4
			px[i+0] = fogShroud.R
			px[i+1] = fogShroud.G
			px[i+2] = fogShroud.B
			px[i+3] = fogShroud.A
		}
	}
	return px
}

// FogTextureCache memoizes fog overlay images by map ID and fog version.
// Masks are immutable and versions only move forward, so an entry can
// never go stale; superseded versions age out by cost pressure and TTL.
type FogTextureCache struct {
	cache *ristretto.Cache[string, *ebiten.Image]
}

// NewFogTextureCache sizes the cache to roughly maxCostMB of pixel data.
func NewFogTextureCache(maxCostMB int) (*FogTextureCache, error) {
	if maxCostMB <= 0 {
		maxCostMB = 64
	}
	c, err := ristretto.NewCache[string, *ebiten.Image](&ristretto.Config[string, *ebiten.Image]{
		NumCounters: 10_000,
		MaxCost:     int64(maxCostMB) << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("fog texture cache: %w", err)
	}
	return &FogTextureCache{cache: c}, nil
}

// Overlay returns the overlay image for the map's current fog, rendering
// and caching it on a miss. One texel per fog cell; the caller scales it
// up to cell size when drawing.
func (fc *FogTextureCache) Overlay(m *TableMap) *ebiten.Image {
	w, h := m.Grid.FogWidth, m.Grid.FogHeight
	if w <= 0 || h <= 0 {
		return nil
	}
	key := overlayKey(m.ID, m.FogVersion)
	if img, ok := fc.cache.Get(key); ok {
		return img
	}
	img := ebiten.NewImage(w, h)
	img.WritePixels(FogOverlayPixels(m.Fog, w, h))
	fc.cache.SetWithTTL(key, img, int64(w*h*4), overlayTTL)
	fc.cache.Wait()
	return img
}

// overlayKey builds the cache key for one fog version of a map.
func overlayKey(id string, version int) string {
	return fmt.Sprintf("%s@%d", id, version)
}
