// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package rarity tallies how often each element of each layer occurs in a
// generated collection.
package rarity

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gogpu/artengine/layer"
	"github.com/gogpu/artengine/metadata"
)

// Entry is the rarity of one element.
type Entry struct {
	Trait      string  `json:"trait"`
	Weight     float64 `json:"weight"`
	Occurrence int     `json:"occurrence"`
	Editions   int     `json:"editions"`
}

// Percent returns the share of editions carrying the element, in percent.
// An empty collection yields 0.
func (e Entry) Percent() float64 {
	if e.Editions == 0 {
		return 0
	}
	return float64(e.Occurrence) / float64(e.Editions) * 100
}

func (e Entry) String() string {
	return fmt.Sprintf("%d in %d editions (%.2f %%)", e.Occurrence, e.Editions, e.Percent())
}

// Table is the rarity of every element of one trait type.
type Table struct {
	TraitType string  `json:"trait_type"`
	Entries   []Entry `json:"entries"`
}

// Report holds one table per distinct trait type, in layer order.
type Report struct {
	Editions int     `json:"editions"`
	Tables   []Table `json:"tables"`
}

// Build counts attribute occurrences of records against the elements of
// layers. When two layers share a display name the first one wins. Attributes
// naming an unknown trait or element are ignored.
func Build(layers []layer.Layer, records []metadata.Record) Report {
	rep := Report{Editions: len(records)}
	index := make(map[string]int)
	for i := range layers {
		l := &layers[i]
		if _, dup := index[l.Name]; dup {
			continue
		}
		t := Table{TraitType: l.Name, Entries: make([]Entry, len(l.Elements))}
		for j, e := range l.Elements {
			t.Entries[j] = Entry{Trait: e.Name, Weight: e.Weight, Editions: len(records)}
		}
		index[l.Name] = len(rep.Tables)
		rep.Tables = append(rep.Tables, t)
	}

	for _, r := range records {
		for _, a := range r.Attributes {
			ti, ok := index[a.TraitType]
			if !ok {
				continue
			}
			entries := rep.Tables[ti].Entries
			for j := range entries {
				if entries[j].Trait == a.Value {
					entries[j].Occurrence++
					break
				}
			}
		}
	}
	return rep
}

// Table returns the table of a trait type.
func (r Report) Table(traitType string) (Table, bool) {
	for _, t := range r.Tables {
		if t.TraitType == traitType {
			return t, true
		}
	}
	return Table{}, false
}

// WriteTo prints the report as plain text.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var n int64
	write := func(s string) error {
		m, err := io.WriteString(w, s)
		n += int64(m)
		return err
	}
	for _, t := range r.Tables {
		if err := write("Trait type: " + t.TraitType + "\n"); err != nil {
			return n, err
		}
		for _, e := range t.Entries {
			line := fmt.Sprintf("  %-24s weight %-6s %s\n", e.Trait, strconv.FormatFloat(e.Weight, 'f', -1, 64), e)
			if err := write(line); err != nil {
				return n, err
			}
		}
		if err := write("\n"); err != nil {
			return n, err
		}
	}
	return n, nil
}
