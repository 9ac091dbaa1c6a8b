// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package artengine

import (
	"fmt"

	"github.com/gogpu/artengine/dna"
)

// ExhaustedError reports that the layers cannot produce the requested
// number of unique editions within the configured duplicate tolerance.
// It matches dna.ErrExhausted with errors.Is.
type ExhaustedError struct {
	Requested int // editions the current layer configuration grows to
	Created   int // editions written before giving up
	Failures  int // duplicate DNAs sampled during the run
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("artengine: need more layers or elements to grow the collection to %d editions: created %d after %d duplicate DNAs",
		e.Requested, e.Created, e.Failures)
}

func (e *ExhaustedError) Unwrap() error { return dna.ErrExhausted }
