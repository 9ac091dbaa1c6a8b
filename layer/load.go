// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/artengine/internal/blend"
)

// Scan reads the elements of one layer folder in lexical order.
// Dot-files and sub-directories are skipped. A filename containing the DNA
// delimiter is a configuration error.
func Scan(dir, rarityDelimiter string) ([]Element, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("layer: read %s: %w", dir, err)
	}
	elements := make([]Element, 0, len(entries))
	for _, entry := range entries {
		fn := entry.Name()
		if entry.IsDir() || hidden(fn) {
			continue
		}
		if strings.Contains(fn, DNADelimiter) {
			return nil, &ConfigError{Layer: filepath.Base(dir), File: fn, Err: ErrDelimiterInName}
		}
		name, weight := ParseFilename(fn, rarityDelimiter)
		elements = append(elements, Element{
			ID:       len(elements),
			Name:     name,
			Filename: fn,
			Path:     filepath.Join(dir, fn),
			Weight:   weight,
		})
	}
	return elements, nil
}

// Load scans every configured layer under root, in configured order, and
// applies the layer options. Any configuration error aborts the whole load.
func Load(root string, order []Config, rarityDelimiter string) ([]Layer, error) {
	layers := make([]Layer, 0, len(order))
	for i, cfg := range order {
		if cfg.Name == "" {
			return nil, &ConfigError{Layer: fmt.Sprintf("#%d", i), Err: ErrNoName}
		}
		elements, err := Scan(filepath.Join(root, cfg.Name), rarityDelimiter)
		if err != nil {
			return nil, err
		}
		l, err := New(i, cfg, elements)
		if err != nil {
			return nil, err
		}
		layers = append(layers, l)
	}
	return layers, nil
}

// New builds and validates a layer from its configuration and elements.
func New(id int, cfg Config, elements []Element) (Layer, error) {
	mode, err := blend.ParseMode(cfg.Options.Blend)
	if err != nil {
		return Layer{}, &ConfigError{Layer: cfg.Name, Err: err}
	}
	opacity := 1.0
	if cfg.Options.Opacity != nil {
		opacity = *cfg.Options.Opacity
	}
	l := Layer{
		ID:        id,
		Name:      cfg.DisplayName(),
		Elements:  elements,
		Blend:     mode,
		Opacity:   opacity,
		BypassDNA: cfg.Options.BypassDNA,
	}
	if err := l.Validate(); err != nil {
		return Layer{}, err
	}
	return l, nil
}
