// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package postprocess holds the tools that run over a finished build
// directory: pixelation, the preview montage and animation, the duplicate
// checker and metadata generation from rendered images.
package postprocess

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"math/rand/v2"

	"github.com/gogpu/artengine/config"
	"github.com/gogpu/artengine/render"
	"github.com/gogpu/artengine/storage"
)

// Errors returned by the tools.
var (
	// ErrNoImages is returned when the build directory holds no images.
	ErrNoImages = errors.New("postprocess: no images, generate the collection first")

	// ErrNotEnoughImages is returned by PreviewGIF when fewer images exist
	// than the animation asks for.
	ErrNotEnoughImages = errors.New("postprocess: not enough images")
)

// Tools runs post-processing over one build directory.
type Tools struct {
	Store  *storage.Store
	Config *config.Config

	// Loader decodes images; nil loads with one goroutine per file.
	Loader *render.Loader

	// Rand drives MIXED preview order and generated dates. Nil uses the
	// global source.
	Rand *rand.Rand

	Logger *slog.Logger
}

// New returns tools over the build directory of cfg.
func New(cfg *config.Config, logger *slog.Logger) *Tools {
	return &Tools{
		Store:  storage.New(cfg.BuildDir),
		Config: cfg,
		Logger: logger,
	}
}

func (t *Tools) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (t *Tools) intN(n int) int {
	if t.Rand != nil {
		return t.Rand.IntN(n)
	}
	return rand.IntN(n)
}

func (t *Tools) shuffle(n int, swap func(i, j int)) {
	if t.Rand != nil {
		t.Rand.Shuffle(n, swap)
		return
	}
	rand.Shuffle(n, swap)
}

// images lists and decodes every edition image in edition order.
func (t *Tools) images(ctx context.Context) ([]storage.File, []image.Image, error) {
	files, err := t.Store.ListImages()
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, ErrNoImages
	}
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	imgs, err := t.Loader.Load(ctx, paths)
	if err != nil {
		return nil, nil, err
	}
	return files, imgs, nil
}
