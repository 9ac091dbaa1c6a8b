// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-text/typesetting/fontscan"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// Fonts resolves font families to faces. System fonts are scanned lazily on
// first use; families that are not installed fall back to Go Regular.
//
// Fonts is safe for concurrent use.
type Fonts struct {
	logger   *slog.Logger
	cacheDir string
	system   bool

	once    sync.Once
	fm      *fontscan.FontMap
	scanErr error

	mu       sync.Mutex
	sources  map[string]*text.FontSource
	fallback *text.FontSource
}

// NewFonts returns a resolver. With system false only the fallback font is
// used, which keeps output identical across machines.
func NewFonts(logger *slog.Logger, system bool, cacheDir string) *Fonts {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Fonts{
		logger:   logger,
		cacheDir: cacheDir,
		system:   system,
		sources:  make(map[string]*text.FontSource),
	}
}

// Face returns a face of the given family, weight and size.
func (f *Fonts) Face(family, weight string, size float64) (text.Face, error) {
	src, err := f.source(family, weight)
	if err != nil {
		return nil, err
	}
	return src.Face(size), nil
}

func (f *Fonts) source(family, weight string) (*text.FontSource, error) {
	key := strings.ToLower(family + "/" + weight)
	f.mu.Lock()
	defer f.mu.Unlock()
	if src, ok := f.sources[key]; ok {
		return src, nil
	}
	src, err := f.lookup(family, weight)
	if err != nil {
		return nil, err
	}
	f.sources[key] = src
	return src, nil
}

func (f *Fonts) lookup(family, weight string) (*text.FontSource, error) {
	if f.system && family != "" {
		f.once.Do(func() {
			f.fm = fontscan.NewFontMap(slog.NewLogLogger(f.logger.Handler(), slog.LevelDebug))
			f.scanErr = f.fm.UseSystemFonts(f.cacheDir)
		})
		if f.scanErr != nil {
			f.logger.Warn("canvas: system font scan failed", "err", f.scanErr)
		} else {
			for _, name := range candidates(family, weight) {
				loc, ok := f.fm.FindSystemFont(name)
				if !ok {
					continue
				}
				src, err := text.NewFontSourceFromFile(loc.File, text.WithCollectionIndex(int(loc.Index)))
				if err != nil {
					f.logger.Warn("canvas: font load failed", "file", loc.File, "err", err)
					continue
				}
				f.logger.Debug("canvas: font resolved", "family", family, "file", loc.File)
				return src, nil
			}
		}
		f.logger.Debug("canvas: font family not found, using fallback", "family", family)
	}
	if f.fallback == nil {
		src, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("canvas: fallback font: %w", err)
		}
		f.fallback = src
	}
	return f.fallback, nil
}

// candidates lists the family names tried for a weight, most specific first.
func candidates(family, weight string) []string {
	w := strings.ToLower(strings.TrimSpace(weight))
	if w == "" || w == "regular" || w == "normal" || w == "400" {
		return []string{family}
	}
	return []string{family + " " + w, family}
}
