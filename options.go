// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package artengine

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/gogpu/artengine/canvas"
	"github.com/gogpu/artengine/render"
	"github.com/gogpu/artengine/storage"
)

// Option configures an Engine during creation.
//
// Example:
//
//	// Reproducible run writing to a temporary directory
//	e, err := artengine.New(cfg,
//	    artengine.WithRand(rand.New(rand.NewPCG(1, 2))),
//	    artengine.WithStore(storage.New(dir)),
//	)
type Option func(*options)

// options holds optional configuration for Engine creation.
type options struct {
	rand    *rand.Rand
	clock   func() time.Time
	surface canvas.Surface
	store   *storage.Store
	loader  *render.Loader
	logger  *slog.Logger
}

// WithRand sets the random source for sampling, backgrounds and edition
// shuffling. It takes precedence over the configured seed.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rand = r
	}
}

// WithClock sets the clock stamped into metadata records.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// WithSurface sets the drawing surface. Its size should match the
// configured format. By default a canvas.Canvas is created.
func WithSurface(s canvas.Surface) Option {
	return func(o *options) {
		o.surface = s
	}
}

// WithStore sets the build directory, overriding the configured one.
func WithStore(s *storage.Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithLoader sets the element image loader.
func WithLoader(l *render.Loader) Option {
	return func(o *options) {
		o.loader = l
	}
}

// WithLogger sets the logger of the Engine instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
