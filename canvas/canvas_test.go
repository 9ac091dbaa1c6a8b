// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/gogpu/artengine/internal/blend"
)

func pixel(img *image.RGBA, x, y int) color.RGBA {
	return img.RGBAAt(x, y)
}

func near(a, b uint8) bool {
	return math.Abs(float64(a)-float64(b)) <= 1
}

func solid(w, h int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFillRect(t *testing.T) {
	c := New(8, 8)
	if err := c.FillRect(image.Rect(2, 2, 6, 6), color.RGBA{255, 0, 0, 255}); err != nil {
		t.Fatal(err)
	}
	snap := c.Snapshot()
	if got := pixel(snap, 3, 3); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("inside pixel = %v, want opaque red", got)
	}
	if got := pixel(snap, 0, 0); got.A != 0 {
		t.Errorf("outside pixel = %v, want transparent", got)
	}
}

func TestGlobalAlpha(t *testing.T) {
	c := New(4, 4)
	c.SetGlobalAlpha(0.5)
	if err := c.DrawImage(solid(1, 1, color.White), c.Bounds()); err != nil {
		t.Fatal(err)
	}
	got := pixel(c.Snapshot(), 2, 2)
	if !near(got.A, 128) || !near(got.R, 128) {
		t.Errorf("pixel = %v, want ~half-transparent white (premultiplied 128)", got)
	}
	c.SetGlobalAlpha(7)
	if c.GlobalAlpha() != 1 {
		t.Errorf("GlobalAlpha() = %v after SetGlobalAlpha(7), want 1", c.GlobalAlpha())
	}
}

func TestDrawImageStretches(t *testing.T) {
	c := New(16, 8)
	if err := c.DrawImage(solid(2, 2, color.RGBA{0, 0, 255, 255}), c.Bounds()); err != nil {
		t.Fatal(err)
	}
	snap := c.Snapshot()
	for _, p := range []image.Point{{0, 0}, {15, 7}, {8, 4}} {
		if got := pixel(snap, p.X, p.Y); got != (color.RGBA{0, 0, 255, 255}) {
			t.Errorf("pixel %v = %v, want opaque blue", p, got)
		}
	}
}

func TestCompositeModeMultiply(t *testing.T) {
	c := New(2, 2)
	if err := c.DrawImage(solid(1, 1, color.RGBA{200, 100, 50, 255}), c.Bounds()); err != nil {
		t.Fatal(err)
	}
	c.SetCompositeMode(blend.Multiply)
	if err := c.DrawImage(solid(1, 1, color.RGBA{128, 128, 128, 255}), c.Bounds()); err != nil {
		t.Fatal(err)
	}
	got := pixel(c.Snapshot(), 1, 1)
	want := color.RGBA{100, 50, 25, 255}
	if !near(got.R, want.R) || !near(got.G, want.G) || !near(got.B, want.B) || got.A != 255 {
		t.Errorf("multiply pixel = %v, want ~%v", got, want)
	}
}

func TestClearResetsState(t *testing.T) {
	c := New(2, 2)
	c.SetGlobalAlpha(0.2)
	c.SetCompositeMode(blend.Xor)
	_ = c.FillRect(c.Bounds(), color.White)
	c.Clear()
	if c.GlobalAlpha() != 1 || c.CompositeMode() != blend.SourceOver {
		t.Errorf("after Clear alpha=%v mode=%v", c.GlobalAlpha(), c.CompositeMode())
	}
	if got := pixel(c.Snapshot(), 0, 0); got.A != 0 {
		t.Errorf("after Clear pixel = %v, want transparent", got)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	c := New(2, 2)
	snap := c.Snapshot()
	snap.Pix[3] = 255
	if pixel(c.Snapshot(), 0, 0).A != 0 {
		t.Error("Snapshot shares memory with the canvas")
	}
}

func TestDrawTextFallbackFont(t *testing.T) {
	c := New(120, 40)
	err := c.DrawText("Hello", 4, 4, TextStyle{
		Color:    color.White,
		Size:     20,
		Family:   "Courier",
		Align:    AlignLeft,
		Baseline: BaselineTop,
	})
	if err != nil {
		t.Fatal(err)
	}
	snap := c.Snapshot()
	inked := 0
	for i := 3; i < len(snap.Pix); i += 4 {
		if snap.Pix[i] > 0 {
			inked++
		}
	}
	if inked == 0 {
		t.Error("DrawText left the canvas blank")
	}
}

func TestEncode(t *testing.T) {
	c := New(3, 3)
	_ = c.FillRect(c.Bounds(), color.RGBA{10, 20, 30, 255})
	var buf bytes.Buffer
	if err := c.Encode(&buf, "png"); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != 3 {
		t.Errorf("decoded width = %d, want 3", img.Bounds().Dx())
	}
	if err := c.Encode(&buf, "jpeg"); err != nil {
		t.Errorf("Encode(jpeg): %v", err)
	}
	if err := c.Encode(&buf, "webp"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode(webp) err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want [4]float64
	}{
		{"#000000", [4]float64{0, 0, 0, 1}},
		{"#ffffff", [4]float64{1, 1, 1, 1}},
		{"#f00", [4]float64{1, 0, 0, 1}},
		{"hsl(0, 100%, 50%)", [4]float64{1, 0, 0, 1}},
		{"hsl(120, 100%, 50%)", [4]float64{0, 1, 0, 1}},
	}
	for _, tt := range tests {
		c, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		got := [4]float64{c.R, c.G, c.B, c.A}
		for i := range got {
			if math.Abs(got[i]-tt.want[i]) > 1e-6 {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
	for _, bad := range []string{"", "nope", "hsl(1,2)", "hsl(0, 100%, 50%"} {
		if _, err := ParseColor(bad); !errors.Is(err, ErrBadColor) {
			t.Errorf("ParseColor(%q) err = %v, want ErrBadColor", bad, err)
		}
	}
}

func TestParsePercent(t *testing.T) {
	tests := map[string]float64{"80%": 0.8, "0.25": 0.25, " 100% ": 1}
	for in, want := range tests {
		if got, err := ParsePercent(in); err != nil || math.Abs(got-want) > 1e-9 {
			t.Errorf("ParsePercent(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParsePercent("150%"); err == nil {
		t.Error("ParsePercent(150%) succeeded")
	}
}

func TestCandidates(t *testing.T) {
	if got := candidates("Courier", "regular"); len(got) != 1 || got[0] != "Courier" {
		t.Errorf("candidates(regular) = %v", got)
	}
	if got := candidates("Courier", "Bold"); len(got) != 2 || got[0] != "Courier bold" {
		t.Errorf("candidates(Bold) = %v", got)
	}
}
