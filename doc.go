// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package artengine generates collections of layered images.
//
// # Overview
//
// A collection is described by ordered layers, each a folder of weighted
// element images. For every edition the engine samples one element per
// layer, rejects combinations it has already produced, composites the
// chosen elements in layer order and writes the image together with a
// metadata record in the shape the target network expects.
//
// # Quick Start
//
//	cfg, err := config.Load("config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	e, err := artengine.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := e.Run(context.Background())
//
// # DNA
//
// An edition is identified by its DNA: one "id:filename" token per layer
// joined by "-". Tokens of layers marked bypassDNA carry a
// "?bypassDNA=true" suffix and are ignored when deciding uniqueness. See
// package dna.
//
// # Architecture
//
// The module is organized into:
//   - layer: layer folders, element weights and options
//   - dna: sampling, parsing and the uniqueness tracker
//   - render: the compositor and its image and text strategies
//   - canvas: the drawing surface, built on gogpu/gg
//   - metadata, rarity: records and the rarity report
//   - storage, config, postprocess: the build directory, settings and tools
//
// # Uniqueness
//
// Every duplicate sample counts against one run-wide tolerance that is
// never reset. Once it is spent Run stops with an *ExhaustedError; editions
// already written stay on disk but the collection file is not written.
package artengine
