// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/artengine/metadata"
)

type fakeImage struct{ body string }

func (f fakeImage) Encode(w io.Writer, format string) error {
	_, err := io.WriteString(w, f.body+"."+format)
	return err
}

func rec(edition int) metadata.Record {
	return metadata.Record{
		Network:    metadata.Ethereum,
		Name:       "C #" + string(rune('0'+edition)),
		Image:      "ipfs://x/<img>",
		Edition:    edition,
		Attributes: []metadata.Attribute{{TraitType: "A", Value: "x"}},
		Compiler:   metadata.Compiler,
	}
}

func TestSetupRecreates(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "build"))
	if err := os.MkdirAll(s.Path("stale"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := s.Setup(true); err != nil {
		t.Fatal(err)
	}
	for _, d := range []string{ImagesDir, JSONDir, GIFsDir} {
		if fi, err := os.Stat(s.Path(d)); err != nil || !fi.IsDir() {
			t.Errorf("%s missing after Setup: %v", d, err)
		}
	}
	if _, err := os.Stat(s.Path("stale")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("stale dir survived Setup: %v", err)
	}
	if err := s.Setup(false); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(s.Path(GIFsDir)); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("gifs dir created without GIF export: %v", err)
	}
}

func TestWriteAndListImages(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Setup(false); err != nil {
		t.Fatal(err)
	}
	for _, ed := range []int{10, 2, 1} {
		if err := s.WriteImage(ed, "png", fakeImage{"img"}); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(s.Path(ImagesDir, "notes.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	files, err := s.ListImages()
	if err != nil {
		t.Fatal(err)
	}
	var got []int
	for _, f := range files {
		got = append(got, f.Edition)
	}
	if diff := cmp.Diff([]int{1, 2, 10}, got); diff != "" {
		t.Errorf("editions mismatch (-want +got):\n%s", diff)
	}
	data, _ := os.ReadFile(s.ImagePath(2, "png"))
	if string(data) != "img.png" {
		t.Errorf("image content = %q", data)
	}
	entries, _ := os.ReadDir(s.Path(ImagesDir))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			t.Errorf("temporary file left behind: %s", e.Name())
		}
	}
}

func TestRecordsRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Setup(false); err != nil {
		t.Fatal(err)
	}
	want := []metadata.Record{rec(1), rec(2)}
	for _, r := range want {
		if err := s.WriteRecord(r); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.WriteCollection(want); err != nil {
		t.Fatal(err)
	}

	got, err := s.ReadCollection()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("collection mismatch (-want +got):\n%s", diff)
	}
	listed, err := s.ListRecords()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, listed); diff != "" {
		t.Errorf("ListRecords mismatch (-want +got):\n%s", diff)
	}

	raw, _ := os.ReadFile(s.RecordPath(1))
	text := string(raw)
	if !strings.HasPrefix(text, "{\n  \"name\": ") || strings.HasSuffix(text, "\n") {
		t.Errorf("record file not 2-space indented without trailing newline:\n%s", text)
	}
	if !strings.Contains(text, "<img>") {
		t.Errorf("record file HTML-escaped: %s", text)
	}
}

func TestReadCollectionMissing(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.ReadCollection(); !errors.Is(err, ErrNoCollection) {
		t.Errorf("ReadCollection err = %v, want ErrNoCollection", err)
	}
}

func TestWriteFileFailureKeepsTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.json")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")
	if err := WriteFile(path, func(io.Writer) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("WriteFile err = %v, want boom", err)
	}
	if data, _ := os.ReadFile(path); string(data) != "old" {
		t.Errorf("target overwritten on failure: %q", data)
	}
	assertOnlyFile(t, dir, "a.json")
}

func TestWriteFileReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.json")
	for _, body := range []string{"first", "second"} {
		err := WriteFile(path, func(w io.Writer) error {
			_, err := io.WriteString(w, body)
			return err
		})
		if err != nil {
			t.Fatalf("WriteFile(%q): %v", body, err)
		}
		if data, _ := os.ReadFile(path); string(data) != body {
			t.Errorf("content = %q, want %q", data, body)
		}
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm&0o600 != 0o600 || perm&0o111 != 0 {
		t.Errorf("mode = %v, want owner read/write and no execute bits", perm)
	}
	assertOnlyFile(t, dir, "a.json")
}

// assertOnlyFile fails unless dir holds exactly one entry named name, so no
// pending temporary file was left behind.
func assertOnlyFile(t *testing.T, dir, name string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) != 1 || names[0] != name {
		t.Errorf("directory holds %v, want only %s", names, name)
	}
}

func TestRecreate(t *testing.T) {
	s := New(t.TempDir())
	stale := s.Path(PixelImagesDir, "1.png")
	if err := os.MkdirAll(filepath.Dir(stale), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Recreate(PixelImagesDir); err != nil {
		t.Fatalf("Recreate: %v", err)
	}
	entries, err := os.ReadDir(s.Path(PixelImagesDir))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Recreate left %d entries", len(entries))
	}
}
