// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render composites one edition onto a drawing surface.
//
// A Compositor resolves a DNA against the layers, prepares every selected
// element (image files are decoded concurrently), then draws the background
// and the layers strictly in order onto a single shared canvas.Surface.
//
// # Strategies
//
// How a layer is drawn is chosen once per run:
//
//   - ImageStrategy: the element image stretched over the whole surface
//   - TextStrategy: "<layer><spacer><element>" written at a per-layer offset
//
// # Concurrency
//
// Loads within one edition run in parallel; draws never do. A Compositor
// and its Surface must be used by one goroutine at a time.
package render
