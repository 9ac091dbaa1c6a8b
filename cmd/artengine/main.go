// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command artengine generates layered image collections and post-processes
// their build directory.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gogpu/artengine"
	"github.com/gogpu/artengine/config"
	"github.com/gogpu/artengine/postprocess"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// cli holds the global flags and what they set up.
type cli struct {
	configPath string
	base       string
	seed       uint64
	verbose    bool

	level  slog.LevelVar
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "artengine",
		Short: "Generate unique layered image collections",
		Long: `artengine composites one weighted element per layer folder into unique
editions and writes their images and metadata to the build directory.

Every other command works on an existing layers folder or build directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.level.Set(slog.LevelDebug)
			}
			c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: &c.level}))
			artengine.SetLogger(c.logger)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&c.configPath, "config", "c", "", "YAML configuration file (defaults when empty)")
	pf.StringVar(&c.base, "base", "", "directory relative paths are resolved against")
	pf.Uint64Var(&c.seed, "seed", 0, "random seed for a reproducible run")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newGenerateCmd(c),
		newRarityCmd(c),
		newPreviewCmd(c),
		newPreviewGIFCmd(c),
		newPixelateCmd(c),
		newDuplicatesCmd(c),
		newUpdateInfoCmd(c),
		newSanitizeCmd(c),
		newMetadataFromImagesCmd(c),
		newInitConfigCmd(c),
	)
	return root
}

// load reads the configuration and applies the global flags to it.
func (c *cli) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(c.path(c.configPath))
	if err != nil {
		return nil, err
	}
	cfg.LayersDir = c.path(cfg.LayersDir)
	cfg.BuildDir = c.path(cfg.BuildDir)
	if cmd.Flags().Changed("seed") {
		seed := c.seed
		cfg.Seed = &seed
	}
	if cfg.DebugLogs {
		c.level.Set(slog.LevelDebug)
	}
	return cfg, nil
}

// path resolves p against --base. Empty and absolute paths are kept.
func (c *cli) path(p string) string {
	if p == "" || c.base == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.base, p)
}

func (c *cli) tools(cfg *config.Config) *postprocess.Tools {
	t := postprocess.New(cfg, c.logger)
	if cfg.Seed != nil {
		t.Rand = rand.New(rand.NewPCG(*cfg.Seed, *cfg.Seed))
	}
	return t
}
