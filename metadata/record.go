// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package metadata derives the per-edition metadata record of a collection
// and reads and writes it in the JSON shapes downstream marketplaces expect.
//
// One Record type covers both target networks. Network selects the shape:
// Ethereum records carry an absolute image URI and no Solana fields; Solana
// records carry a relative image path plus the fields in SolanaFields.
package metadata

import (
	"errors"
	"fmt"
)

// Compiler is written into every record.
const Compiler = "HashLips Art Engine"

// Network selects the metadata shape.
type Network string

// Supported networks.
const (
	Ethereum Network = "eth"
	Solana   Network = "sol"
)

// ErrUnknownNetwork is returned by ParseNetwork.
var ErrUnknownNetwork = errors.New("metadata: unknown network")

// ParseNetwork accepts "eth" and "sol". The empty string means Ethereum.
func ParseNetwork(s string) (Network, error) {
	switch Network(s) {
	case "", Ethereum:
		return Ethereum, nil
	case Solana:
		return Solana, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownNetwork, s)
}

// Attribute is one trait of an edition: the layer name and the element name.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// Creator is a royalty recipient of a Solana collection.
type Creator struct {
	Address string `json:"address" yaml:"address" validate:"required"`
	Share   int    `json:"share" yaml:"share" validate:"gte=0,lte=100"`
}

// File is one entry of Solana properties.files.
type File struct {
	URI  string `json:"uri"`
	Type string `json:"type"`
}

// Properties is the Solana properties object.
type Properties struct {
	Files    []File    `json:"files"`
	Category string    `json:"category"`
	Creators []Creator `json:"creators"`
}

// SolanaFields holds the fields only the Solana shape has.
type SolanaFields struct {
	Symbol               string
	SellerFeeBasisPoints int
	ExternalURL          string
	Properties           Properties
}

// Record is the metadata of one edition.
type Record struct {
	Network     Network
	Name        string
	Description string
	Image       string
	DNA         string // fingerprint of the raw DNA, not the DNA itself
	Edition     int
	Date        int64 // milliseconds since the Unix epoch
	Extra       Fields
	Attributes  []Attribute
	Compiler    string

	// Solana is set iff Network is Solana.
	Solana *SolanaFields
}
