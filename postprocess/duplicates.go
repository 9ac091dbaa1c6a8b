// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postprocess

import (
	"cmp"
	"slices"
	"strings"

	"github.com/gogpu/artengine/metadata"
)

// DuplicateGroup is a set of editions sharing the same attributes.
type DuplicateGroup struct {
	// Attributes sorted by trait type.
	Attributes []metadata.Attribute
	Editions   []int
}

// FindDuplicates reads every per-edition record and groups the editions
// whose attribute sets are identical regardless of order. Groups come in
// the order of their first edition; singletons are left out.
func (t *Tools) FindDuplicates() ([]DuplicateGroup, error) {
	records, err := t.Store.ListRecords()
	if err != nil {
		return nil, err
	}
	t.logger().Info("checking records for duplicates", "records", len(records))
	return Duplicates(records), nil
}

// Duplicates groups records with identical sorted attributes.
func Duplicates(records []metadata.Record) []DuplicateGroup {
	index := make(map[string]int)
	var groups []DuplicateGroup
	for _, r := range records {
		attrs := slices.Clone(r.Attributes)
		slices.SortStableFunc(attrs, func(a, b metadata.Attribute) int {
			return cmp.Compare(a.TraitType, b.TraitType)
		})
		key := attributeKey(attrs)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DuplicateGroup{Attributes: attrs})
		}
		groups[i].Editions = append(groups[i].Editions, r.Edition)
	}
	return slices.DeleteFunc(groups, func(g DuplicateGroup) bool { return len(g.Editions) < 2 })
}

func attributeKey(attrs []metadata.Attribute) string {
	var b strings.Builder
	for _, a := range attrs {
		b.WriteString(a.TraitType)
		b.WriteByte(0)
		b.WriteString(a.Value)
		b.WriteByte(0)
	}
	return b.String()
}
