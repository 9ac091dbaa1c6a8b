// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postprocess

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/artengine/config"
	"github.com/gogpu/artengine/internal/imageio"
	"github.com/gogpu/artengine/metadata"
	"github.com/gogpu/artengine/storage"
)

var (
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

// newTools returns tools over a build directory holding one 4x4 PNG per
// colour, editions numbered from 1.
func newTools(t *testing.T, colors ...color.Color) *Tools {
	t.Helper()
	cfg := config.Default()
	cfg.BuildDir = filepath.Join(t.TempDir(), "build")
	cfg.Format = config.Format{Width: 4, Height: 4}
	cfg.Preview = config.Preview{ThumbPerRow: 2, ThumbWidth: 2, ImageName: "preview.png"}
	cfg.PreviewGIF = config.PreviewGIF{NumberOfImages: 2, Order: "ASC", Quality: 100, Delay: 100, ImageName: "preview.gif"}

	tools := New(cfg, nil)
	tools.Rand = rand.New(rand.NewPCG(1, 2))
	if err := tools.Store.Setup(false); err != nil {
		t.Fatal(err)
	}
	var records []metadata.Record
	for i, c := range colors {
		edition := i + 1
		if err := imageio.Save(tools.Store.ImagePath(edition, "png"), solid(4, 4, c)); err != nil {
			t.Fatal(err)
		}
		records = append(records, metadata.Record{Network: metadata.Ethereum, Edition: edition})
	}
	if err := tools.Store.WriteCollection(records); err != nil {
		t.Fatal(err)
	}
	return tools
}

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func approx(a, b color.RGBA) bool {
	d := func(x, y uint8) bool { return int(x)-int(y) <= 3 && int(y)-int(x) <= 3 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func TestPixelated(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 1))
	in := []color.RGBA{{10, 0, 0, 255}, {20, 0, 0, 255}, {30, 0, 0, 255}, {40, 0, 0, 255}}
	for x, c := range in {
		src.SetRGBA(x, 0, c)
	}
	got := Pixelated(src, 0.5)
	want := []color.RGBA{in[1], in[1], in[3], in[3]}
	for x, w := range want {
		if c := got.RGBAAt(x, 0); c != w {
			t.Errorf("Pixelated pixel %d = %v, want %v", x, c, w)
		}
	}
	if got.Bounds() != src.Bounds() {
		t.Errorf("Pixelated bounds = %v, want %v", got.Bounds(), src.Bounds())
	}
}

func TestPixelatedTinyRatio(t *testing.T) {
	got := Pixelated(solid(3, 3, green), 0.01)
	for y := range 3 {
		for x := range 3 {
			if c := got.RGBAAt(x, y); c != green {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, c, green)
			}
		}
	}
}

func TestPixelate(t *testing.T) {
	tools := newTools(t, red, green)
	paths, err := tools.Pixelate(context.Background(), 0.5)
	if err != nil {
		t.Fatalf("Pixelate: %v", err)
	}
	want := []string{
		tools.Store.Path(storage.PixelImagesDir, "1.png"),
		tools.Store.Path(storage.PixelImagesDir, "2.png"),
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("Pixelate paths mismatch (-want +got):\n%s", diff)
	}
	img, err := imageio.Load(paths[1])
	if err != nil {
		t.Fatal(err)
	}
	if c := rgba(img.At(3, 3)); c != green {
		t.Errorf("pixelated edition 2 = %v, want %v", c, green)
	}
}

func TestPixelateErrors(t *testing.T) {
	tools := newTools(t)
	if _, err := tools.Pixelate(context.Background(), 0.5); !errors.Is(err, ErrNoImages) {
		t.Errorf("Pixelate on empty build = %v, want ErrNoImages", err)
	}
	if _, err := tools.Pixelate(context.Background(), 0); err == nil {
		t.Error("Pixelate(ratio 0) succeeded")
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		in, name, format string
	}{
		{"1.png", "1.png", "png"},
		{"2.jpeg", "2.jpeg", "jpeg"},
		{"3.webp", "3.png", "png"},
	}
	for _, tt := range tests {
		name, format := outputName(tt.in)
		if name != tt.name || format != tt.format {
			t.Errorf("outputName(%q) = %q, %q, want %q, %q", tt.in, name, format, tt.name, tt.format)
		}
	}
}

func TestPreview(t *testing.T) {
	tools := newTools(t, red, green, blue)
	path, err := tools.Preview(context.Background())
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if path != tools.Store.Path("preview.png") {
		t.Errorf("Preview path = %q", path)
	}
	img, err := imageio.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 4, 4) {
		t.Fatalf("montage bounds = %v, want 4x4", got)
	}
	cells := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, red},
		{3, 1, green},
		{1, 3, blue},
		{3, 3, color.RGBA{}},
	}
	for _, c := range cells {
		if got := rgba(img.At(c.x, c.y)); !approx(got, c.want) {
			t.Errorf("montage (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestPreviewWithoutCollection(t *testing.T) {
	tools := newTools(t, red)
	if err := os.Remove(tools.Store.Path(storage.JSONDir, storage.CollectionFile)); err != nil {
		t.Fatal(err)
	}
	if _, err := tools.Preview(context.Background()); !errors.Is(err, storage.ErrNoCollection) {
		t.Errorf("Preview = %v, want ErrNoCollection", err)
	}
}

func TestPreviewGIF(t *testing.T) {
	tests := []struct {
		order string
		first color.RGBA
	}{
		{"ASC", red},
		{"DESC", blue},
	}
	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			tools := newTools(t, red, green, blue)
			tools.Config.PreviewGIF.Order = tt.order
			path, err := tools.PreviewGIF(context.Background())
			if err != nil {
				t.Fatalf("PreviewGIF: %v", err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer func() { _ = f.Close() }()
			anim, err := gif.DecodeAll(f)
			if err != nil {
				t.Fatal(err)
			}
			if len(anim.Image) != 2 {
				t.Fatalf("frames = %d, want 2", len(anim.Image))
			}
			if got := rgba(anim.Image[0].At(1, 1)); !approx(got, tt.first) {
				t.Errorf("first frame = %v, want %v", got, tt.first)
			}
			if anim.Delay[0] != 10 {
				t.Errorf("delay = %d, want 10", anim.Delay[0])
			}
		})
	}
}

func TestPreviewGIFMixedUsesEveryImage(t *testing.T) {
	tools := newTools(t, red, green, blue)
	tools.Config.PreviewGIF.Order = "MIXED"
	tools.Config.PreviewGIF.NumberOfImages = 3
	path, err := tools.PreviewGIF(context.Background())
	if err != nil {
		t.Fatalf("PreviewGIF: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatal(err)
	}
	seen := map[color.RGBA]bool{}
	for _, frame := range anim.Image {
		for _, c := range []color.RGBA{red, green, blue} {
			if approx(rgba(frame.At(0, 0)), c) {
				seen[c] = true
			}
		}
	}
	if len(seen) != 3 {
		t.Errorf("MIXED preview showed %d distinct images, want 3", len(seen))
	}
}

func TestPreviewGIFNotEnoughImages(t *testing.T) {
	tools := newTools(t, red)
	if _, err := tools.PreviewGIF(context.Background()); !errors.Is(err, ErrNotEnoughImages) {
		t.Errorf("PreviewGIF = %v, want ErrNotEnoughImages", err)
	}
}

func attrs(kv ...string) []metadata.Attribute {
	var out []metadata.Attribute
	for i := 0; i < len(kv); i += 2 {
		out = append(out, metadata.Attribute{TraitType: kv[i], Value: kv[i+1]})
	}
	return out
}

func TestDuplicates(t *testing.T) {
	records := []metadata.Record{
		{Edition: 1, Attributes: attrs("Head", "A", "Body", "X")},
		{Edition: 2, Attributes: attrs("Body", "Y", "Head", "A")},
		{Edition: 3, Attributes: attrs("Body", "X", "Head", "A")},
		{Edition: 4, Attributes: attrs("Body", "Y", "Head", "A")},
		{Edition: 5, Attributes: attrs("Body", "Z", "Head", "A")},
	}
	want := []DuplicateGroup{
		{Attributes: attrs("Body", "X", "Head", "A"), Editions: []int{1, 3}},
		{Attributes: attrs("Body", "Y", "Head", "A"), Editions: []int{2, 4}},
	}
	if diff := cmp.Diff(want, Duplicates(records)); diff != "" {
		t.Errorf("Duplicates mismatch (-want +got):\n%s", diff)
	}
	if got := Duplicates(records[:1]); len(got) != 0 {
		t.Errorf("Duplicates(single) = %v, want none", got)
	}
}

func TestFindDuplicates(t *testing.T) {
	tools := newTools(t)
	for i, a := range [][]metadata.Attribute{
		attrs("Eyes", "Blue"),
		attrs("Eyes", "Blue"),
		attrs("Eyes", "Red"),
	} {
		r := metadata.Record{Network: metadata.Ethereum, Edition: i + 1, Attributes: a, Compiler: metadata.Compiler}
		if err := tools.Store.WriteRecord(r); err != nil {
			t.Fatal(err)
		}
	}
	groups, err := tools.FindDuplicates()
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	want := []DuplicateGroup{{Attributes: attrs("Eyes", "Blue"), Editions: []int{1, 2}}}
	if diff := cmp.Diff(want, groups); diff != "" {
		t.Errorf("FindDuplicates mismatch (-want +got):\n%s", diff)
	}
}

func TestAverageAndMatch(t *testing.T) {
	hotDog := color.RGBA{192, 158, 131, 255}
	if got := Average(solid(8, 8, hotDog), 20, 20); got != hotDog {
		t.Errorf("Average = %v, want %v", got, hotDog)
	}

	tests := []struct {
		c    color.RGBA
		want string
	}{
		{hotDog, "Hot Dog"},
		{color.RGBA{177, 173, 146, 255}, "Hot Dog"},
		{color.RGBA{176, 158, 131, 255}, UnnamedColor},
		{color.RGBA{0, 0, 0, 255}, UnnamedColor},
	}
	for _, tt := range tests {
		if got := Match(tt.c); got != tt.want {
			t.Errorf("Match(%v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestMetadataFromImages(t *testing.T) {
	tools := newTools(t, color.RGBA{192, 158, 131, 255}, blue)
	records, err := tools.MetadataFromImages(context.Background())
	if err != nil {
		t.Fatalf("MetadataFromImages: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	r := records[0]
	if r.Name != "Your Collection #1" || r.Image != "ipfs://NewUriToReplace/1.png" || r.Edition != 1 {
		t.Errorf("record 1 = %q %q %d", r.Name, r.Image, r.Edition)
	}
	want := attrs("average color", "rgb(192,158,131)", "What is this?", "Hot Dog")
	if diff := cmp.Diff(want, r.Attributes[:2]); diff != "" {
		t.Errorf("attributes mismatch (-want +got):\n%s", diff)
	}
	year, err := strconv.Atoi(r.Attributes[2].Value)
	if err != nil || year < 1500 || year > 1900 {
		t.Errorf("date attribute = %q, want a year in [1500, 1900]", r.Attributes[2].Value)
	}
	if records[1].Attributes[1].Value != UnnamedColor {
		t.Errorf("blue edition matched %q", records[1].Attributes[1].Value)
	}
	if records[0].DNA == records[1].DNA {
		t.Error("distinct images share a fingerprint")
	}

	stored, err := tools.Store.ReadCollection()
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 2 || stored[1].Edition != 2 {
		t.Errorf("collection = %+v", stored)
	}
	if _, err := tools.Store.ReadRecord(2); err != nil {
		t.Errorf("ReadRecord(2): %v", err)
	}
}
