// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package metadata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotObject is returned when a record is not a JSON object.
var ErrNotObject = errors.New("metadata: record is not a JSON object")

// reserved are the record keys of either shape. Extra fields never use them.
var reserved = map[string]bool{
	"name": true, "description": true, "image": true, "dna": true,
	"edition": true, "date": true, "attributes": true, "compiler": true,
	"symbol": true, "seller_fee_basis_points": true, "external_url": true,
	"properties": true,
}

// Reserved reports whether key is a record field name.
func Reserved(key string) bool { return reserved[key] }

// object writes a JSON object with keys in insertion order.
type object struct {
	buf bytes.Buffer
	err error
}

func (o *object) field(key string, v any) {
	if o.err != nil {
		return
	}
	if o.buf.Len() == 0 {
		o.buf.WriteByte('{')
	} else {
		o.buf.WriteByte(',')
	}
	k, _ := marshal(key)
	o.buf.Write(k)
	o.buf.WriteByte(':')
	b, err := marshal(v)
	if err != nil {
		o.err = fmt.Errorf("metadata: marshal %q: %w", key, err)
		return
	}
	o.buf.Write(b)
}

// marshal is json.Marshal without HTML escaping.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (o *object) bytes() ([]byte, error) {
	if o.err != nil {
		return nil, o.err
	}
	if o.buf.Len() == 0 {
		return []byte("{}"), nil
	}
	o.buf.WriteByte('}')
	return o.buf.Bytes(), nil
}

func (o *object) extra(f Fields) {
	for _, kv := range f {
		if !reserved[kv.Key] {
			o.field(kv.Key, kv.Value)
		}
	}
}

// MarshalJSON writes the record in the key order of its network shape.
func (r Record) MarshalJSON() ([]byte, error) {
	attrs := r.Attributes
	if attrs == nil {
		attrs = []Attribute{}
	}
	var o object
	if r.Network == Solana && r.Solana != nil {
		s := r.Solana
		props := s.Properties
		if props.Files == nil {
			props.Files = []File{}
		}
		if props.Creators == nil {
			props.Creators = []Creator{}
		}
		o.field("name", r.Name)
		o.field("symbol", s.Symbol)
		o.field("description", r.Description)
		o.field("seller_fee_basis_points", s.SellerFeeBasisPoints)
		o.field("image", r.Image)
		o.field("external_url", s.ExternalURL)
		o.field("edition", r.Edition)
		o.field("dna", r.DNA)
		o.field("date", r.Date)
		o.extra(r.Extra)
		o.field("attributes", attrs)
		o.field("properties", props)
		o.field("compiler", r.Compiler)
		return o.bytes()
	}
	o.field("name", r.Name)
	o.field("description", r.Description)
	o.field("image", r.Image)
	o.field("dna", r.DNA)
	o.field("edition", r.Edition)
	o.field("date", r.Date)
	o.extra(r.Extra)
	o.field("attributes", attrs)
	o.field("compiler", r.Compiler)
	return o.bytes()
}

// UnmarshalJSON reads either shape. The network is Solana when the object
// has a properties or symbol key. Unknown keys are kept in Extra in order.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("metadata: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return ErrNotObject
	}

	out := Record{Network: Ethereum}
	var sol SolanaFields
	isSol := false
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("metadata: %w", err)
		}
		key, _ := tok.(string)
		var dst any
		switch key {
		case "name":
			dst = &out.Name
		case "description":
			dst = &out.Description
		case "image":
			dst = &out.Image
		case "dna":
			dst = &out.DNA
		case "edition":
			dst = &out.Edition
		case "date":
			dst = &out.Date
		case "attributes":
			dst = &out.Attributes
		case "compiler":
			dst = &out.Compiler
		case "symbol":
			dst, isSol = &sol.Symbol, true
		case "seller_fee_basis_points":
			dst, isSol = &sol.SellerFeeBasisPoints, true
		case "external_url":
			dst, isSol = &sol.ExternalURL, true
		case "properties":
			dst, isSol = &sol.Properties, true
		default:
			var v any
			if err := dec.Decode(&v); err != nil {
				return fmt.Errorf("metadata: field %q: %w", key, err)
			}
			out.Extra.Set(key, v)
			continue
		}
		if err := dec.Decode(dst); err != nil {
			return fmt.Errorf("metadata: field %q: %w", key, err)
		}
	}
	if isSol {
		out.Network = Solana
		out.Solana = &sol
	}
	*r = out
	return nil
}
