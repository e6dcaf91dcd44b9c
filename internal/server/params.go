package server

import (
	"encoding/binary"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/tilesketch/pkg/colors"
	"github.com/matzehuels/tilesketch/pkg/errors"
	"github.com/matzehuels/tilesketch/pkg/pipeline"
)

// requestInfo identifies one rendered sketch.
type requestInfo struct {
	id   string
	seed uint64
}

// optionsFromQuery overlays query parameters onto base. seed=random draws
// the seed from the request's UUID so the response can be reproduced from
// the X-Sketch-Seed header.
func optionsFromQuery(base pipeline.Options, q url.Values) (pipeline.Options, requestInfo, error) {
	opts := base.Clone()
	id := uuid.New()
	req := requestInfo{id: id.String()}

	ints := []struct {
		key string
		dst *int
	}{
		{"rows", &opts.Layout.Rows},
		{"cols", &opts.Layout.Cols},
		{"gap", &opts.Layout.Gap},
		{"padding", &opts.Layout.PagePadding},
	}
	for _, p := range ints {
		if v := q.Get(p.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return opts, req, errors.New(errors.ErrCodeInvalidInput, "%s must be an integer, got %q", p.key, v)
			}
			*p.dst = n
		}
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"roughness", &opts.Rough.Roughness},
		{"grid", &opts.Grid},
		{"tolerance", &opts.Tolerance},
	}
	for _, p := range floats {
		if v := q.Get(p.key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return opts, req, errors.New(errors.ErrCodeInvalidInput, "%s must be a number, got %q", p.key, v)
			}
			*p.dst = f
		}
	}

	if v := q.Get("no_merge"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, req, errors.New(errors.ErrCodeInvalidInput, "no_merge must be a boolean, got %q", v)
		}
		opts.Layout.NoMerge = b
	}

	switch v := q.Get("seed"); v {
	case "":
	case "random":
		opts.Seed = binary.BigEndian.Uint64(id[:8])
	default:
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, req, errors.New(errors.ErrCodeInvalidInput, "seed must be an unsigned integer or \"random\", got %q", v)
		}
		opts.Seed = seed
	}
	if opts.Seed == 0 {
		opts.Seed = pipeline.DefaultSeed
	}
	req.seed = opts.Seed

	if v := q.Get("palette"); v != "" {
		p, err := colors.ParsePalette(v)
		if err != nil {
			return opts, req, err
		}
		opts.Palette = p
	}
	if v := q.Get("fill_styles"); v != "" {
		opts.FillStyles = strings.Split(v, ",")
	}
	if v := q.Get("background"); v != "" {
		opts.Background = v
	}
	return opts, req, nil
}
