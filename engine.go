// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package artengine

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/gogpu/artengine/canvas"
	"github.com/gogpu/artengine/config"
	"github.com/gogpu/artengine/dna"
	"github.com/gogpu/artengine/giffer"
	"github.com/gogpu/artengine/layer"
	"github.com/gogpu/artengine/metadata"
	"github.com/gogpu/artengine/render"
	"github.com/gogpu/artengine/storage"
)

// Engine generates a collection described by a config.Config.
type Engine struct {
	cfg     *config.Config
	rand    *rand.Rand
	store   *storage.Store
	surface canvas.Surface
	logger  *slog.Logger

	compositor *render.Compositor
	deriver    metadata.Deriver
}

// Result describes a finished or aborted run.
type Result struct {
	// Records holds the record of every edition written, in creation order.
	Records []metadata.Record

	// Failures is the number of duplicate DNAs sampled.
	Failures int
}

// state is what one run accumulates. It never outlives Run.
type state struct {
	tracker *dna.Tracker
	records []metadata.Record
	pending []int // edition numbers not yet used, next first
}

// New validates cfg and prepares an engine. Nothing is written until Run.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{cfg: cfg, rand: o.rand, store: o.store, surface: o.surface, logger: o.logger}
	if e.logger == nil {
		e.logger = Logger()
	}
	if e.rand == nil {
		e.rand = newRand(cfg.Seed)
	}
	if e.store == nil {
		e.store = storage.New(cfg.BuildDir)
	}
	if e.surface == nil {
		fonts := canvas.NewFonts(e.logger, cfg.SystemFonts, fontCacheDir())
		e.surface = canvas.New(cfg.Format.Width, cfg.Format.Height,
			canvas.WithSmoothing(cfg.Format.Smoothing), canvas.WithFonts(fonts))
	}

	strategy, err := newStrategy(cfg, o.loader)
	if err != nil {
		return nil, err
	}
	bg, err := newBackground(cfg.Background)
	if err != nil {
		return nil, err
	}
	e.compositor = &render.Compositor{
		Surface:    e.surface,
		Strategy:   strategy,
		Background: bg,
		Rand:       e.rand,
		Logger:     e.logger,
	}
	e.deriver = metadata.Deriver{Config: cfg.Metadata(), Clock: o.clock}
	return e, nil
}

func newRand(seed *uint64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewPCG(*seed, *seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func fontCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "artengine", "fonts")
}

func newStrategy(cfg *config.Config, loader *render.Loader) (render.Strategy, error) {
	if !cfg.Text.Only {
		return render.ImageStrategy{Loader: loader}, nil
	}
	col, err := canvas.ParseColor(cfg.Text.Color)
	if err != nil {
		return nil, fmt.Errorf("artengine: text color: %w", err)
	}
	return render.TextStrategy{
		Style: canvas.TextStyle{
			Color:    col.Color(),
			Size:     cfg.Text.Size,
			Family:   cfg.Text.Family,
			Weight:   cfg.Text.Weight,
			Align:    canvas.Align(cfg.Text.Align),
			Baseline: canvas.Baseline(cfg.Text.Baseline),
		},
		XGap:   cfg.Text.XGap,
		YGap:   cfg.Text.YGap,
		Spacer: cfg.Text.Spacer,
	}, nil
}

func newBackground(b config.Background) (render.Background, error) {
	bg := render.Background{Generate: b.Generate, Static: b.Static}
	if !b.Generate {
		return bg, nil
	}
	if b.Static {
		col, err := canvas.ParseColor(b.Default)
		if err != nil {
			return bg, fmt.Errorf("artengine: background: %w", err)
		}
		bg.Default = col.Color()
		return bg, nil
	}
	l, err := canvas.ParsePercent(b.Brightness)
	if err != nil {
		return bg, fmt.Errorf("artengine: background: %w", err)
	}
	bg.Lightness = l
	return bg, nil
}

// Store returns the build directory the engine writes to.
func (e *Engine) Store() *storage.Store { return e.store }

// EditionNumbers returns the edition numbers handed out by a run, in order:
// 1..total for Ethereum and 0..total for Solana, shuffled when shuffle is
// set.
func EditionNumbers(network metadata.Network, total int, shuffle bool, r *rand.Rand) []int {
	first := 1
	if network == metadata.Solana {
		first = 0
	}
	nums := make([]int, 0, total-first+1)
	for i := first; i <= total; i++ {
		nums = append(nums, i)
	}
	if shuffle {
		r.Shuffle(len(nums), func(i, j int) { nums[i], nums[j] = nums[j], nums[i] })
	}
	return nums
}

// Run sets up the build directory and generates every edition of every
// layer configuration in turn. Each configuration grows the collection to
// its GrowEditionSizeTo; one uniqueness tracker spans them all.
//
// If the duplicate tolerance is reached Run returns an *ExhaustedError and
// the editions written so far; the collection file is not written.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if err := e.store.Setup(e.cfg.GIF.Export); err != nil {
		return nil, err
	}
	st := &state{
		tracker: dna.NewTracker(e.cfg.UniqueDNATolerance),
		pending: EditionNumbers(e.cfg.NetworkKind(), e.cfg.TotalEditions(), e.cfg.ShuffleLayerConfigurations, e.rand),
	}
	e.logger.Debug("editions left to create", "editions", st.pending)

	for _, lc := range e.cfg.LayerConfigurations {
		layers, err := layer.Load(e.cfg.LayersDir, lc.LayersOrder, e.cfg.RarityDelimiter)
		if err != nil {
			return e.result(st), err
		}
		for _, l := range layers {
			e.logger.Info("layer loaded", "layer", l.Name, "elements", len(l.Elements))
		}
		if err := e.grow(ctx, st, layers, lc.GrowEditionSizeTo); err != nil {
			return e.result(st), err
		}
	}

	if err := e.store.WriteCollection(st.records); err != nil {
		return e.result(st), err
	}
	e.logger.Info("collection written", "editions", len(st.records), "path", e.store.Path(storage.JSONDir, storage.CollectionFile))
	return e.result(st), nil
}

func (e *Engine) result(st *state) *Result {
	return &Result{Records: st.records, Failures: st.tracker.Failures()}
}

// grow adds editions until the collection holds target of them.
func (e *Engine) grow(ctx context.Context, st *state, layers []layer.Layer, target int) error {
	for len(st.records) < target {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw := dna.Sample(e.rand, layers)
		if !st.tracker.IsUnique(raw) {
			e.logger.Debug("DNA exists", "failures", st.tracker.Failures()+1)
			if err := st.tracker.Reject(); err != nil {
				return &ExhaustedError{Requested: target, Created: len(st.records), Failures: st.tracker.Failures()}
			}
			continue
		}
		if len(st.pending) == 0 {
			return fmt.Errorf("artengine: no edition number left for edition %d", len(st.records)+1)
		}
		edition := st.pending[0]
		rec, err := e.build(ctx, raw, edition, layers)
		if err != nil {
			return fmt.Errorf("artengine: edition %d: %w", edition, err)
		}
		st.tracker.Commit(raw)
		st.records = append(st.records, rec)
		st.pending = st.pending[1:]
		e.logger.Info("created edition", "edition", edition, "dna", rec.DNA)
		e.logger.Debug("editions left to create", "editions", st.pending)
	}
	return nil
}

// build renders one accepted DNA and persists its image, animation and
// record.
func (e *Engine) build(ctx context.Context, raw string, edition int, layers []layer.Layer) (metadata.Record, error) {
	var (
		attrs []metadata.Attribute
		err   error
	)
	e.logger.Debug("clearing canvas", "edition", edition)
	if e.cfg.GIF.Export {
		g := e.cfg.GIF
		enc := giffer.New(e.surface.Width(), e.surface.Height(), g.Repeat, g.Quality, g.Delay)
		if attrs, err = e.compositor.RenderFrames(ctx, raw, layers, enc); err != nil {
			return metadata.Record{}, err
		}
		if err := e.store.WriteGIF(edition, enc.Encode); err != nil {
			return metadata.Record{}, err
		}
		e.logger.Info("gif written", "edition", edition, "frames", enc.Len())
	} else if attrs, err = e.compositor.Render(ctx, raw, layers); err != nil {
		return metadata.Record{}, err
	}

	if err := e.store.WriteImage(edition, e.cfg.ImageFormat, e.surface); err != nil {
		return metadata.Record{}, err
	}
	rec := e.deriver.Derive(raw, edition, attrs)
	if err := e.store.WriteRecord(rec); err != nil {
		return metadata.Record{}, err
	}
	return rec, nil
}
