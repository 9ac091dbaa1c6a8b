// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package metadata

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"slices"
	"time"
)

// SolanaConfig is the collection-wide Solana configuration.
type SolanaConfig struct {
	Symbol               string    `yaml:"symbol"`
	SellerFeeBasisPoints int       `yaml:"seller_fee_basis_points" validate:"gte=0,lte=10000"`
	ExternalURL          string    `yaml:"external_url"`
	Creators             []Creator `yaml:"creators" validate:"dive"`
}

// Config is what Derive needs from the collection configuration.
type Config struct {
	Network     Network
	NamePrefix  string
	Description string
	BaseURI     string
	ImageFormat string
	Extra       Fields
	Solana      SolanaConfig
}

// Deriver builds metadata records. Clock defaults to time.Now.
type Deriver struct {
	Config Config
	Clock  func() time.Time
}

// Fingerprint returns the SHA-1 hex digest of a raw DNA. It identifies an
// edition opaquely; uniqueness uses the canonical DNA instead.
func Fingerprint(dna string) string {
	sum := sha1.Sum([]byte(dna))
	return hex.EncodeToString(sum[:])
}

// MimeType returns the MIME type of an image file extension.
func MimeType(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	}
	return "image/webp"
}

// Name returns the edition name "<prefix> #<edition>".
func (d Deriver) Name(edition int) string {
	return fmt.Sprintf("%s #%d", d.Config.NamePrefix, edition)
}

// ImageURI returns the image reference of the configured network: an
// absolute URI under BaseURI for Ethereum, a bare file name for Solana.
func (d Deriver) ImageURI(edition int) string {
	file := fmt.Sprintf("%d.%s", edition, d.Config.ImageFormat)
	if d.Config.Network == Solana {
		return file
	}
	return d.Config.BaseURI + "/" + file
}

func (d Deriver) now() time.Time {
	if d.Clock != nil {
		return d.Clock()
	}
	return time.Now()
}

// Derive builds the record of one edition from its raw DNA and attributes.
func (d Deriver) Derive(dna string, edition int, attrs []Attribute) Record {
	c := d.Config
	r := Record{
		Network:     Ethereum,
		Name:        d.Name(edition),
		Description: c.Description,
		Image:       d.ImageURI(edition),
		DNA:         Fingerprint(dna),
		Edition:     edition,
		Date:        d.now().UnixMilli(),
		Extra:       slices.Clone(c.Extra),
		Attributes:  slices.Clone(attrs),
		Compiler:    Compiler,
	}
	if c.Network == Solana {
		r.Network = Solana
		r.Solana = &SolanaFields{
			Symbol:               c.Solana.Symbol,
			SellerFeeBasisPoints: c.Solana.SellerFeeBasisPoints,
			ExternalURL:          c.Solana.ExternalURL,
			Properties: Properties{
				Files:    []File{{URI: r.Image, Type: MimeType(c.ImageFormat)}},
				Category: "image",
				Creators: slices.Clone(c.Solana.Creators),
			},
		}
	}
	return r
}

// Patch re-applies the collection-wide name, description and, per network,
// the image URI or the creators to already written records.
func Patch(records []Record, d Deriver) {
	for i := range records {
		r := &records[i]
		r.Name = d.Name(r.Edition)
		r.Description = d.Config.Description
		if d.Config.Network == Solana {
			if r.Solana != nil {
				r.Solana.Properties.Creators = slices.Clone(d.Config.Solana.Creators)
			}
			continue
		}
		r.Image = d.ImageURI(r.Edition)
	}
}
