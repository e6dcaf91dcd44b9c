// Package cache stores computed layouts and rendered artifacts.
//
// Backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for
// servers sharing work across instances, and [NullCache] when caching is
// disabled. Keys come from a [Keyer] so callers never build them by hand.
package cache

import (
	"context"
	"time"
)

// Cache TTLs.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry. A miss is reported as
// (nil, false, nil), never as an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys from the options that affect an entry.
type Keyer interface {
	LayoutKey(opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every input of layout generation.
type LayoutKeyOpts struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	PagePadding int     `json:"page_padding"`
	Rows        int     `json:"rows"`
	Cols        int     `json:"cols"`
	Gap         int     `json:"gap"`
	NoMerge     bool    `json:"no_merge"`
	Weights     [3]int  `json:"weights"`
	Seed        uint64  `json:"seed"`
}

// ArtifactKeyOpts holds every input of painting and encoding one format.
type ArtifactKeyOpts struct {
	Format     string   `json:"format"`
	Seed       uint64   `json:"seed"`
	Palette    []string `json:"palette"`
	FillStyles []string `json:"fill_styles"`
	Background string   `json:"background"`
	// Rough holds the serialized roughness options.
	Rough     string  `json:"rough"`
	Tolerance float64 `json:"tolerance"`
	Grid      float64 `json:"grid"`
	Scale     float64 `json:"scale"`
	Title     string  `json:"title,omitempty"`
}

// DefaultKeyer hashes option structs into "layout:" and "artifact:" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns the key for a layout built from opts.
func (DefaultKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return hashKey("layout", opts)
}

// ArtifactKey returns the key for an artifact rendered from the layout
// with the given hash.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
