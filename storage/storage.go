// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package storage lays out and accesses the build directory of a run:
//
//	build/
//	    images/<edition>.<ext>
//	    gifs/<edition>.gif
//	    json/<edition>.json
//	    json/_metadata.json
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/google/renameio/v2/maybe"

	"github.com/gogpu/artengine/internal/imageio"
	"github.com/gogpu/artengine/metadata"
)

// CollectionFile is the name of the aggregate metadata file.
const CollectionFile = "_metadata.json"

// Sub-directories of the build directory.
const (
	ImagesDir      = "images"
	GIFsDir        = "gifs"
	JSONDir        = "json"
	PixelImagesDir = "pixel_images"
)

// ErrNoCollection is returned by ReadCollection when no run has completed.
var ErrNoCollection = errors.New("storage: no collection metadata")

// Encoder writes an image in a named format. canvas.Surface implements it.
type Encoder interface {
	Encode(w io.Writer, format string) error
}

// Store is a build directory.
type Store struct {
	Root string
}

// New returns a store rooted at dir.
func New(dir string) *Store {
	return &Store{Root: dir}
}

// Path joins elem under the build directory.
func (s *Store) Path(elem ...string) string {
	return filepath.Join(append([]string{s.Root}, elem...)...)
}

// Setup removes any previous build and creates the directory layout.
func (s *Store) Setup(withGIF bool) error {
	if err := os.RemoveAll(s.Root); err != nil {
		return fmt.Errorf("storage: remove %s: %w", s.Root, err)
	}
	dirs := []string{JSONDir, ImagesDir}
	if withGIF {
		dirs = append(dirs, GIFsDir)
	}
	for _, d := range dirs {
		if err := os.MkdirAll(s.Path(d), 0o755); err != nil {
			return fmt.Errorf("storage: %w", err)
		}
	}
	return nil
}

// Recreate empties the sub-directory dir, creating it if needed.
func (s *Store) Recreate(dir string) error {
	p := s.Path(dir)
	if err := os.RemoveAll(p); err != nil {
		return fmt.Errorf("storage: remove %s: %w", p, err)
	}
	if err := os.MkdirAll(p, 0o755); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}

// ImagePath returns the file of an edition image.
func (s *Store) ImagePath(edition int, format string) string {
	return s.Path(ImagesDir, strconv.Itoa(edition)+"."+format)
}

// GIFPath returns the file of an edition GIF.
func (s *Store) GIFPath(edition int) string {
	return s.Path(GIFsDir, strconv.Itoa(edition)+".gif")
}

// RecordPath returns the metadata file of an edition.
func (s *Store) RecordPath(edition int) string {
	return s.Path(JSONDir, strconv.Itoa(edition)+".json")
}

// WriteImage encodes an edition image.
func (s *Store) WriteImage(edition int, format string, img Encoder) error {
	return WriteFile(s.ImagePath(edition, format), func(w io.Writer) error {
		return img.Encode(w, format)
	})
}

// WriteGIF writes an edition animation produced by encode.
func (s *Store) WriteGIF(edition int, encode func(io.Writer) error) error {
	return WriteFile(s.GIFPath(edition), encode)
}

// WriteRecord writes the metadata file of one edition.
func (s *Store) WriteRecord(r metadata.Record) error {
	return writeJSON(s.RecordPath(r.Edition), r)
}

// WriteCollection writes the aggregate metadata file.
func (s *Store) WriteCollection(records []metadata.Record) error {
	if records == nil {
		records = []metadata.Record{}
	}
	return writeJSON(s.Path(JSONDir, CollectionFile), records)
}

// ReadCollection reads the aggregate metadata file.
func (s *Store) ReadCollection() ([]metadata.Record, error) {
	data, err := os.ReadFile(s.Path(JSONDir, CollectionFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoCollection
	}
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	var records []metadata.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("storage: parse %s: %w", CollectionFile, err)
	}
	return records, nil
}

// ReadRecord reads the metadata file of one edition.
func (s *Store) ReadRecord(edition int) (metadata.Record, error) {
	var r metadata.Record
	data, err := os.ReadFile(s.RecordPath(edition))
	if err != nil {
		return r, fmt.Errorf("storage: %w", err)
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("storage: parse edition %d: %w", edition, err)
	}
	return r, nil
}

// File is a numbered file of the build directory.
type File struct {
	Edition int
	Path    string
}

// ListImages returns the edition images in edition order.
func (s *Store) ListImages() ([]File, error) {
	return s.list(ImagesDir, imageio.IsImage)
}

// ListRecords reads every per-edition metadata file in edition order.
func (s *Store) ListRecords() ([]metadata.Record, error) {
	files, err := s.list(JSONDir, func(name string) bool { return filepath.Ext(name) == ".json" })
	if err != nil {
		return nil, err
	}
	records := make([]metadata.Record, 0, len(files))
	for _, f := range files {
		r, err := s.ReadRecord(f.Edition)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// list returns files of dir named "<int>.<ext>" accepted by keep.
func (s *Store) list(dir string, keep func(string) bool) ([]File, error) {
	entries, err := os.ReadDir(s.Path(dir))
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	var files []File
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !keep(name) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(name, filepath.Ext(name)))
		if err != nil {
			continue
		}
		files = append(files, File{Edition: n, Path: s.Path(dir, name)})
	}
	slices.SortFunc(files, func(a, b File) int { return a.Edition - b.Edition })
	return files, nil
}

// WriteFile buffers what write produces and then replaces path atomically,
// so readers never observe a partial file. Windows has no atomic rename and
// falls back to a plain write.
func WriteFile(path string, write func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return fmt.Errorf("storage: write %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := maybe.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}

// EncodeJSON encodes v with two-space indentation, without HTML escaping and
// without a trailing newline.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func writeJSON(path string, v any) error {
	data, err := EncodeJSON(v)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", filepath.Base(path), err)
	}
	return WriteFile(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
