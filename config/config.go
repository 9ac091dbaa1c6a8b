// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config holds the collection configuration: what to generate, how
// to draw it and how to describe it. It is read from YAML; every key left out
// keeps its default.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/artengine/layer"
	"github.com/gogpu/artengine/metadata"
)

// Config is the whole configuration of a collection.
type Config struct {
	Network     string `yaml:"network" validate:"oneof=eth sol"`
	NamePrefix  string `yaml:"namePrefix"`
	Description string `yaml:"description"`
	BaseURI     string `yaml:"baseUri"`

	SolanaMetadata metadata.SolanaConfig `yaml:"solanaMetadata"`

	LayerConfigurations        []LayerConfiguration `yaml:"layerConfigurations" validate:"required,min=1,dive"`
	ShuffleLayerConfigurations bool                 `yaml:"shuffleLayerConfigurations"`
	DebugLogs                  bool                 `yaml:"debugLogs"`

	Format      Format      `yaml:"format"`
	ImageFormat string      `yaml:"imageFormat" validate:"oneof=png jpeg"`
	GIF         GIF         `yaml:"gif"`
	Text        Text        `yaml:"text"`
	PixelFormat PixelFormat `yaml:"pixelFormat"`
	Background  Background  `yaml:"background"`

	ExtraMetadata      metadata.Fields `yaml:"extraMetadata"`
	RarityDelimiter    string          `yaml:"rarityDelimiter" validate:"required,excludes=-"`
	UniqueDNATolerance int             `yaml:"uniqueDnaTorrance" validate:"gte=1"`

	Preview    Preview    `yaml:"preview"`
	PreviewGIF PreviewGIF `yaml:"preview_gif"`

	// Seed makes a run reproducible. Nil seeds from the OS.
	Seed *uint64 `yaml:"seed,omitempty"`

	LayersDir   string `yaml:"layersDir" validate:"required"`
	BuildDir    string `yaml:"buildDir" validate:"required"`
	SystemFonts bool   `yaml:"systemFonts"`
}

// LayerConfiguration grows the collection to GrowEditionSizeTo editions
// using the given layers.
type LayerConfiguration struct {
	GrowEditionSizeTo int            `yaml:"growEditionSizeTo" validate:"gte=1"`
	LayersOrder       []layer.Config `yaml:"layersOrder" validate:"required,min=1,dive"`
}

// Format is the size of the rendered editions.
type Format struct {
	Width     int  `yaml:"width" validate:"gte=1,lte=16384"`
	Height    int  `yaml:"height" validate:"gte=1,lte=16384"`
	Smoothing bool `yaml:"smoothing"`
}

// GIF configures the per-edition layer-by-layer animation.
type GIF struct {
	Export  bool `yaml:"export"`
	Repeat  int  `yaml:"repeat" validate:"gte=-1"`
	Quality int  `yaml:"quality" validate:"gte=1,lte=100"`
	Delay   int  `yaml:"delay" validate:"gte=0"`
}

// Text configures text-only rendering.
type Text struct {
	Only     bool    `yaml:"only"`
	Color    string  `yaml:"color" validate:"required"`
	Size     float64 `yaml:"size" validate:"gt=0"`
	XGap     float64 `yaml:"xGap"`
	YGap     float64 `yaml:"yGap"`
	Align    string  `yaml:"align" validate:"oneof=left center right start end"`
	Baseline string  `yaml:"baseline" validate:"oneof=top hanging middle alphabetic ideographic bottom"`
	Weight   string  `yaml:"weight"`
	Family   string  `yaml:"family"`
	Spacer   string  `yaml:"spacer"`
}

// PixelFormat configures the pixelate post-process.
type PixelFormat struct {
	Ratio float64 `yaml:"ratio" validate:"gt=0,lte=1"`
}

// Background configures the fill drawn beneath the first layer.
type Background struct {
	Generate   bool   `yaml:"generate"`
	Brightness string `yaml:"brightness"`
	Static     bool   `yaml:"static"`
	Default    string `yaml:"default"`
}

// Preview configures the collection montage.
type Preview struct {
	ThumbPerRow int     `yaml:"thumbPerRow" validate:"gte=1"`
	ThumbWidth  int     `yaml:"thumbWidth" validate:"gte=1"`
	ImageRatio  float64 `yaml:"imageRatio" validate:"gte=0"` // 0 means height/width of Format
	ImageName   string  `yaml:"imageName" validate:"required"`
}

// PreviewGIF configures the collection preview animation.
type PreviewGIF struct {
	NumberOfImages int    `yaml:"numberOfImages" validate:"gte=1"`
	Order          string `yaml:"order" validate:"oneof=ASC DESC MIXED"`
	Repeat         int    `yaml:"repeat" validate:"gte=-1"`
	Quality        int    `yaml:"quality" validate:"gte=1,lte=100"`
	Delay          int    `yaml:"delay" validate:"gte=0"`
	ImageName      string `yaml:"imageName" validate:"required"`
}

// Default returns the configuration used for every key a file leaves out.
func Default() *Config {
	return &Config{
		Network:     string(metadata.Ethereum),
		NamePrefix:  "Your Collection",
		Description: "Remember to replace this description",
		BaseURI:     "ipfs://NewUriToReplace",
		SolanaMetadata: metadata.SolanaConfig{
			Symbol:               "YC",
			SellerFeeBasisPoints: 1000,
			ExternalURL:          "https://www.youtube.com/c/hashlipsnft",
			Creators: []metadata.Creator{
				{Address: "7fXNuer5sbZtaTEPhtJ5g5gNtuyRoKkvxdjEjEnPN4mC", Share: 100},
			},
		},
		LayerConfigurations: []LayerConfiguration{{
			GrowEditionSizeTo: 1000,
			LayersOrder: []layer.Config{
				{Name: "Background"},
				{Name: "Body"},
				{Name: "Accessories_01"},
				{Name: "Head"},
				{Name: "Accessories_02"},
				{Name: "Weapons"},
			},
		}},
		Format:      Format{Width: 1024, Height: 1024},
		ImageFormat: "png",
		GIF:         GIF{Repeat: 0, Quality: 100, Delay: 500},
		Text: Text{
			Color:    "#ffffff",
			Size:     20,
			XGap:     40,
			YGap:     40,
			Align:    "left",
			Baseline: "top",
			Weight:   "regular",
			Family:   "Courier",
			Spacer:   " => ",
		},
		PixelFormat:        PixelFormat{Ratio: 2.0 / 128},
		Background:         Background{Generate: true, Brightness: "80%", Default: "#000000"},
		ExtraMetadata:      metadata.Fields{},
		RarityDelimiter:    layer.DefaultRarityDelimiter,
		UniqueDNATolerance: 10000,
		Preview:            Preview{ThumbPerRow: 5, ThumbWidth: 50, ImageName: "preview.png"},
		PreviewGIF: PreviewGIF{
			NumberOfImages: 5,
			Order:          "ASC",
			Quality:        100,
			Delay:          500,
			ImageName:      "preview.gif",
		},
		LayersDir: "layers",
		BuildDir:  "build",
	}
}

// Load reads the YAML file at path over the defaults and validates the
// result. An empty path yields the validated defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write encodes cfg as YAML.
func (c *Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return enc.Close()
}

// NetworkKind returns the parsed network.
func (c *Config) NetworkKind() metadata.Network {
	n, _ := metadata.ParseNetwork(c.Network)
	return n
}

// TotalEditions returns the size of the finished collection.
func (c *Config) TotalEditions() int {
	if len(c.LayerConfigurations) == 0 {
		return 0
	}
	return c.LayerConfigurations[len(c.LayerConfigurations)-1].GrowEditionSizeTo
}

// PreviewRatio returns the thumbnail height/width ratio.
func (c *Config) PreviewRatio() float64 {
	if c.Preview.ImageRatio > 0 {
		return c.Preview.ImageRatio
	}
	return float64(c.Format.Height) / float64(c.Format.Width)
}

// Metadata returns what metadata derivation needs.
func (c *Config) Metadata() metadata.Config {
	return metadata.Config{
		Network:     c.NetworkKind(),
		NamePrefix:  c.NamePrefix,
		Description: c.Description,
		BaseURI:     c.BaseURI,
		ImageFormat: c.ImageFormat,
		Extra:       c.ExtraMetadata,
		Solana:      c.SolanaMetadata,
	}
}
