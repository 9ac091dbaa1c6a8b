// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package layer holds the layer model of a collection: ordered layers, each
// with an ordered set of weighted elements scanned from a folder of images.
//
// A layer folder looks like
//
//	layers/Eyes/
//	    Blue#10.png     -> element "Blue", weight 10
//	    Red#1.png       -> element "Red", weight 1
//	    Closed.png      -> element "Closed", weight 1 (no suffix)
//
// Element ids are ordinal positions in lexical file order and are stable for
// a given folder content.
package layer

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/artengine/internal/blend"
)

// DNADelimiter separates per-layer tokens in a DNA string. Element filenames
// must not contain it.
const DNADelimiter = "-"

// DefaultRarityDelimiter separates an element name from its weight in a filename.
const DefaultRarityDelimiter = "#"

// Configuration errors. They are always fatal for a run.
var (
	ErrDelimiterInName = errors.New("layer: filename contains the DNA delimiter")
	ErrInvalidWeight   = errors.New("layer: element weight must be positive and finite")
	ErrEmptyLayer      = errors.New("layer: layer has no elements")
	ErrInvalidOpacity  = errors.New("layer: opacity must be within [0, 1]")
	ErrNoName          = errors.New("layer: layer name is empty")
)

// ConfigError reports a configuration problem in one layer or element file.
type ConfigError struct {
	Layer string
	File  string // empty for layer-level problems
	Err   error
}

func (e *ConfigError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%v: layer %q, file %q", e.Err, e.Layer, e.File)
	}
	return fmt.Sprintf("%v: layer %q", e.Err, e.Layer)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Element is one selectable image of a layer. Immutable after load.
type Element struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Filename string  `json:"filename"`
	Path     string  `json:"path"`
	Weight   float64 `json:"weight"`
}

// Options are the per-layer overrides of a layer configuration.
type Options struct {
	DisplayName string   `yaml:"displayName,omitempty" json:"displayName,omitempty"`
	Blend       string   `yaml:"blend,omitempty" json:"blend,omitempty"`
	Opacity     *float64 `yaml:"opacity,omitempty" json:"opacity,omitempty"`
	BypassDNA   bool     `yaml:"bypassDNA,omitempty" json:"bypassDNA,omitempty"`
}

// Config names a layer folder and its options, in drawing order.
type Config struct {
	Name    string  `yaml:"name" json:"name" validate:"required"`
	Options Options `yaml:"options,omitempty" json:"options,omitempty"`
}

// DisplayName returns the explicit display name or the folder name.
func (c Config) DisplayName() string {
	if c.Options.DisplayName != "" {
		return c.Options.DisplayName
	}
	return c.Name
}

// Layer is a configured layer with its scanned elements. Read-only after Load.
type Layer struct {
	ID        int
	Name      string
	Elements  []Element
	Blend     blend.Mode
	Opacity   float64
	BypassDNA bool
}

// TotalWeight returns the sum of all element weights.
func (l *Layer) TotalWeight() float64 {
	var total float64
	for _, e := range l.Elements {
		total += e.Weight
	}
	return total
}

// Element returns the element with the given id.
func (l *Layer) Element(id int) (Element, bool) {
	if id >= 0 && id < len(l.Elements) && l.Elements[id].ID == id {
		return l.Elements[id], true
	}
	for _, e := range l.Elements {
		if e.ID == id {
			return e, true
		}
	}
	return Element{}, false
}

// Validate checks the invariants Load guarantees. It is exported for layers
// built by hand, e.g. in tests.
func (l *Layer) Validate() error {
	if len(l.Elements) == 0 {
		return &ConfigError{Layer: l.Name, Err: ErrEmptyLayer}
	}
	if l.Opacity < 0 || l.Opacity > 1 {
		return &ConfigError{Layer: l.Name, Err: ErrInvalidOpacity}
	}
	for _, e := range l.Elements {
		if !(e.Weight > 0) || math.IsInf(e.Weight, 0) {
			return &ConfigError{Layer: l.Name, File: e.Filename, Err: ErrInvalidWeight}
		}
	}
	// Finite weights can still overflow the sum sampling draws against.
	if math.IsInf(l.TotalWeight(), 0) {
		return &ConfigError{Layer: l.Name, Err: ErrInvalidWeight}
	}
	return nil
}
