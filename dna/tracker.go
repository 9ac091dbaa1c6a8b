// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dna

import "errors"

// ErrExhausted is returned by Tracker.Reject once the failure budget is spent.
var ErrExhausted = errors.New("dna: unique combination budget exhausted")

// Tracker is the run-scoped set of accepted canonical DNAs plus the failure
// counter for rejected samples. The counter is never reset: a sparse
// combination space can spend the whole budget across several editions.
//
// A Tracker is not safe for concurrent use; editions are produced one at a time.
type Tracker struct {
	tolerance int
	failures  int
	seen      map[string]struct{}
}

// NewTracker returns an empty tracker that gives up after tolerance
// rejections. Values below 1 are treated as 1.
func NewTracker(tolerance int) *Tracker {
	return &Tracker{tolerance: max(tolerance, 1), seen: make(map[string]struct{})}
}

// IsUnique reports whether the canonical form of dna has not been committed.
func (t *Tracker) IsUnique(dna string) bool {
	_, dup := t.seen[FilterOptions(dna)]
	return !dup
}

// Commit records dna as accepted. Call it only after the edition rendered.
func (t *Tracker) Commit(dna string) {
	t.seen[FilterOptions(dna)] = struct{}{}
}

// Reject counts one duplicate sample and returns ErrExhausted when the
// counter reaches the tolerance.
func (t *Tracker) Reject() error {
	t.failures++
	if t.failures >= t.tolerance {
		return ErrExhausted
	}
	return nil
}

// Len returns the number of committed DNAs.
func (t *Tracker) Len() int { return len(t.seen) }

// Failures returns the number of rejected samples so far.
func (t *Tracker) Failures() int { return t.failures }

// Tolerance returns the failure budget.
func (t *Tracker) Tolerance() int { return t.tolerance }
