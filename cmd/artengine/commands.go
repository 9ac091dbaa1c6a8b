// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/artengine"
	"github.com/gogpu/artengine/config"
	"github.com/gogpu/artengine/layer"
	"github.com/gogpu/artengine/metadata"
	"github.com/gogpu/artengine/rarity"
	"github.com/gogpu/artengine/storage"
)

func newGenerateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate the collection into the build directory",
		Long: `Recreates the build directory and generates every edition of every layer
configuration. The run stops with an error when the layers cannot produce
enough unique combinations within uniqueDnaTorrance duplicate samples.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.load(cmd)
			if err != nil {
				return err
			}
			e, err := artengine.New(cfg)
			if err != nil {
				return err
			}
			res, err := e.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d editions in %s (%d duplicate DNAs skipped)\n",
				len(res.Records), e.Store().Root, res.Failures)
			return nil
		},
	}
}

func newRarityCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "rarity",
		Short: "Report how often every trait occurs in the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.load(cmd)
			if err != nil {
				return err
			}
			records, err := storage.New(cfg.BuildDir).ReadCollection()
			if err != nil {
				return err
			}
			var layers []layer.Layer
			for _, lc := range cfg.LayerConfigurations {
				ls, err := layer.Load(cfg.LayersDir, lc.LayersOrder, cfg.RarityDelimiter)
				if err != nil {
					return err
				}
				layers = append(layers, ls...)
			}
			_, err = rarity.Build(layers, records).WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}

func newPreviewCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Draw a thumbnail montage of the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.load(cmd)
			if err != nil {
				return err
			}
			path, err := c.tools(cfg).Preview(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Project preview image located at: %s\n", path)
			return nil
		},
	}
}

func newPreviewGIFCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "preview-gif",
		Short: "Animate a selection of the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.load(cmd)
			if err != nil {
				return err
			}
			path, err := c.tools(cfg).PreviewGIF(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Project preview gif located at: %s\n", path)
			return nil
		},
	}
}

func newPixelateCmd(c *cli) *cobra.Command {
	var ratio float64
	cmd := &cobra.Command{
		Use:   "pixelate",
		Short: "Write pixelated copies of the collection images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.load(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("ratio") {
				ratio = cfg.PixelFormat.Ratio
			}
			paths, err := c.tools(cfg).Pixelate(cmd.Context(), ratio)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pixelated %d images\n", len(paths))
			return nil
		},
	}
	cmd.Flags().Float64Var(&ratio, "ratio", 0, "intermediate size relative to the image (overrides pixelFormat.ratio)")
	return cmd
}

func newDuplicatesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicates",
		Short: "Find editions with identical attributes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.load(cmd)
			if err != nil {
				return err
			}
			groups, err := c.tools(cfg).FindDuplicates()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(groups) == 0 {
				fmt.Fprintln(w, "No duplicates found. All editions have unique attribute combinations.")
				return nil
			}
			files := 0
			fmt.Fprintf(w, "Found %d duplicate group(s):\n", len(groups))
			for i, g := range groups {
				fmt.Fprintf(w, "\nDuplicate group %d:\n", i+1)
				for _, ed := range g.Editions {
					fmt.Fprintf(w, "  %d.json\n", ed)
				}
				fmt.Fprintln(w, "  Shared attributes:")
				for _, a := range g.Attributes {
					fmt.Fprintf(w, "  - %s: %s\n", a.TraitType, a.Value)
				}
				files += len(g.Editions)
			}
			fmt.Fprintf(w, "\nTotal duplicate groups: %d\nTotal files with duplicates: %d\nUnique duplicated editions: %d\n",
				len(groups), files, files-len(groups))
			return nil
		},
	}
}

func newUpdateInfoCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "update-info",
		Short: "Re-apply name, description and image or creators to written metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.load(cmd)
			if err != nil {
				return err
			}
			store := storage.New(cfg.BuildDir)
			records, err := store.ReadCollection()
			if err != nil {
				return err
			}
			metadata.Patch(records, metadata.Deriver{Config: cfg.Metadata()})
			for _, r := range records {
				if err := store.WriteRecord(r); err != nil {
					return err
				}
			}
			if err := store.WriteCollection(records); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if cfg.NetworkKind() != metadata.Solana {
				fmt.Fprintf(w, "Updated baseUri for images to ===> %s\n", cfg.BaseURI)
			}
			fmt.Fprintf(w, "Updated description for images to ===> %s\n", cfg.Description)
			fmt.Fprintf(w, "Updated name prefix for images to ===> %s\n", cfg.NamePrefix)
			if cfg.NetworkKind() == metadata.Solana {
				var creators []string
				for _, cr := range cfg.SolanaMetadata.Creators {
					creators = append(creators, fmt.Sprintf("%s:%d", cr.Address, cr.Share))
				}
				fmt.Fprintf(w, "Updated creators for images to ===> %s\n", strings.Join(creators, ", "))
			}
			return nil
		},
	}
}

func newSanitizeCmd(c *cli) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "sanitize-layers",
		Short: "Rename layer files so they contain no DNA delimiter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.load(cmd)
			if err != nil {
				return err
			}
			renames, err := layer.Sanitize(cfg.LayersDir, dryRun)
			if err != nil {
				return err
			}
			verb := "Renamed"
			if dryRun {
				verb = "Would rename"
			}
			w := cmd.OutOrStdout()
			for _, r := range renames {
				fmt.Fprintf(w, "%s %s/%s -> %s\n", verb, r.Dir, r.From, r.To)
			}
			fmt.Fprintf(w, "%d file(s)\n", len(renames))
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only print the renames")
	return cmd
}

func newMetadataFromImagesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "metadata-from-images",
		Short: "Rebuild build/json from the rendered images alone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.load(cmd)
			if err != nil {
				return err
			}
			records, err := c.tools(cfg).MetadataFromImages(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created metadata for %d images\n", len(records))
			return nil
		},
	}
}

func newInitConfigCmd(c *cli) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init-config [file]",
		Short: "Write the default configuration",
		Long:  `Writes the default configuration as YAML to file, or to stdout without one.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if len(args) == 0 {
				return cfg.Write(cmd.OutOrStdout())
			}
			path := c.path(args[0])
			flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
			if !force {
				flags |= os.O_EXCL
			}
			f, err := os.OpenFile(path, flags, 0o644)
			if errors.Is(err, os.ErrExist) {
				return fmt.Errorf("%s exists, use --force to overwrite", path)
			}
			if err != nil {
				return err
			}
			if err := cfg.Write(f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
