// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrRenameCollision is returned when a sanitised name is already taken.
var ErrRenameCollision = errors.New("layer: sanitised filename already exists")

// Rename records one file rename performed (or planned) by Sanitize.
type Rename struct {
	Dir  string
	From string
	To   string
}

// Sanitize replaces the DNA delimiter with an underscore in every element
// filename of every layer folder under root, so that the folders pass Load.
// With dryRun set nothing is renamed and the planned renames are returned.
func Sanitize(root string, dryRun bool) ([]Rename, error) {
	folders, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("layer: read %s: %w", root, err)
	}
	var renames []Rename
	for _, folder := range folders {
		if !folder.IsDir() || hidden(folder.Name()) {
			continue
		}
		dir := filepath.Join(root, folder.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			return renames, fmt.Errorf("layer: read %s: %w", dir, err)
		}
		for _, f := range files {
			if f.IsDir() || hidden(f.Name()) || !strings.Contains(f.Name(), DNADelimiter) {
				continue
			}
			r := Rename{Dir: dir, From: f.Name(), To: strings.ReplaceAll(f.Name(), DNADelimiter, "_")}
			if _, err := os.Stat(filepath.Join(dir, r.To)); err == nil {
				return renames, fmt.Errorf("%w: %s", ErrRenameCollision, filepath.Join(dir, r.To))
			} else if !errors.Is(err, fs.ErrNotExist) {
				return renames, fmt.Errorf("layer: stat %s: %w", r.To, err)
			}
			if !dryRun {
				if err := os.Rename(filepath.Join(dir, r.From), filepath.Join(dir, r.To)); err != nil {
					return renames, fmt.Errorf("layer: rename %s: %w", r.From, err)
				}
			}
			renames = append(renames, r)
		}
	}
	return renames, nil
}
