// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package dna encodes a combination of layer elements as a DNA string and
// decodes it back.
//
// A DNA is one token per layer, in layer order, joined by Delimiter:
//
//	0:Blue#10.png-2:Red#1.png?bypassDNA=true
//
// A token is "<element id>:<filename>" with an optional query string. The
// bypassDNA option marks a token as insignificant for uniqueness: FilterOptions
// drops it from the canonical form.
package dna

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/artengine/internal/blend"
	"github.com/gogpu/artengine/layer"
)

// Delimiter separates per-layer tokens.
const Delimiter = layer.DNADelimiter

// BypassOption is the query key that excludes a token from the canonical DNA.
const BypassOption = "bypassDNA"

// ErrMalformedToken is returned by Clean for tokens without a numeric id.
var ErrMalformedToken = errors.New("dna: malformed token")

// Rand is the randomness Sample needs. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

// Token encodes the selection of e in a layer.
func Token(e layer.Element, bypass bool) string {
	t := strconv.Itoa(e.ID) + ":" + e.Filename
	if bypass {
		t += "?" + BypassOption + "=true"
	}
	return t
}

// Sample draws one element per layer, proportionally to element weight, and
// returns the raw DNA. Layers must be valid (see layer.Layer.Validate).
func Sample(r Rand, layers []layer.Layer) string {
	tokens := make([]string, len(layers))
	for i := range layers {
		l := &layers[i]
		tokens[i] = Token(pick(r, l), l.BypassDNA)
	}
	return strings.Join(tokens, Delimiter)
}

// pick walks the elements subtracting weights from a uniform draw in
// [0, total) until the remainder goes negative.
func pick(r Rand, l *layer.Layer) layer.Element {
	remaining := r.Float64() * l.TotalWeight()
	for _, e := range l.Elements {
		remaining -= e.Weight
		if remaining < 0 {
			return e
		}
	}
	// Rounding can leave a tiny non-negative remainder.
	return l.Elements[len(l.Elements)-1]
}

// RemoveQuery strips the "?..." suffix of a token.
func RemoveQuery(token string) string {
	if i := strings.IndexByte(token, '?'); i >= 0 {
		return token[:i]
	}
	return token
}

// Clean returns the element id encoded in a token.
func Clean(token string) (int, error) {
	head, _, _ := strings.Cut(RemoveQuery(token), ":")
	id, err := strconv.Atoi(head)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedToken, token)
	}
	return id, nil
}

// options parses the query string of a token into key/value pairs.
func options(token string) map[string]string {
	i := strings.IndexByte(token, '?')
	if i < 0 {
		return nil
	}
	opts := make(map[string]string)
	for _, kv := range strings.Split(token[i+1:], "&") {
		if kv == "" {
			continue
		}
		k, v, _ := strings.Cut(kv, "=")
		opts[k] = v
	}
	return opts
}

func truthy(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// FilterOptions returns the canonical DNA: the tokens whose bypassDNA option
// is not truthy, rejoined in order. It is idempotent.
func FilterOptions(dna string) string {
	tokens := strings.Split(dna, Delimiter)
	kept := tokens[:0:0]
	for _, t := range tokens {
		if truthy(options(t)[BypassOption]) {
			continue
		}
		kept = append(kept, t)
	}
	return strings.Join(kept, Delimiter)
}

// Selection is the element chosen for one layer, with the layer attributes
// needed to draw it.
type Selection struct {
	Layer   string
	Blend   blend.Mode
	Opacity float64
	Element layer.Element
}

// ResolveError reports a DNA that does not match the layer configuration.
type ResolveError struct {
	Layer string // empty when the token count is wrong
	Token string
	Err   error
}

func (e *ResolveError) Error() string {
	if e.Layer == "" {
		return fmt.Sprintf("dna: resolve: %v", e.Err)
	}
	return fmt.Sprintf("dna: resolve layer %q token %q: %v", e.Layer, e.Token, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// ErrNoSuchElement is wrapped by ResolveError when an id is not in its layer.
var ErrNoSuchElement = errors.New("no element with that id")

// ErrTokenCount is wrapped by ResolveError when the DNA has the wrong arity.
var ErrTokenCount = errors.New("token count does not match layer count")

// Resolve decodes a raw DNA against the layers it was sampled from.
func Resolve(dna string, layers []layer.Layer) ([]Selection, error) {
	tokens := strings.Split(dna, Delimiter)
	if len(tokens) != len(layers) {
		return nil, &ResolveError{
			Token: dna,
			Err:   fmt.Errorf("%w: %d tokens, %d layers", ErrTokenCount, len(tokens), len(layers)),
		}
	}
	sels := make([]Selection, len(layers))
	for i := range layers {
		l := &layers[i]
		id, err := Clean(tokens[i])
		if err != nil {
			return nil, &ResolveError{Layer: l.Name, Token: tokens[i], Err: err}
		}
		e, ok := l.Element(id)
		if !ok {
			return nil, &ResolveError{Layer: l.Name, Token: tokens[i], Err: ErrNoSuchElement}
		}
		sels[i] = Selection{Layer: l.Name, Blend: l.Blend, Opacity: l.Opacity, Element: e}
	}
	return sels, nil
}
