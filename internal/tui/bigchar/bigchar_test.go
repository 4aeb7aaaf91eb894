package bigchar

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestImageToHalfBlocks(t *testing.T) {
	// 2x4 pixels: column 0 fully lit, column 1 lit on even rows only.
	img := image.NewGray(image.Rect(0, 0, 2, 4))
	for y := 0; y < 4; y++ {
		img.SetGray(0, y, color.Gray{Y: 255})
		if y%2 == 0 {
			img.SetGray(1, y, color.Gray{Y: 255})
		}
	}

	got := imageToHalfBlocks(img, 2, 2)
	if want := "█▀\n█▀"; got != want {
		t.Errorf("imageToHalfBlocks = %q, want %q", got, want)
	}

	// Reading past the image is dark.
	if got := imageToHalfBlocks(img, 3, 1); got != "█▀ " {
		t.Errorf("out of bounds row = %q", got)
	}
}

func TestScaleDown(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 2; x++ {
			src.SetGray(x, y, color.Gray{Y: 200})
		}
	}

	dst := scaleDown(src, 2, 2)
	tests := []struct {
		x, y int
		want uint8
	}{
		{0, 0, 200}, {0, 1, 200}, {1, 0, 0}, {1, 1, 0},
	}
	for _, tt := range tests {
		if got := dst.GrayAt(tt.x, tt.y).Y; got != tt.want {
			t.Errorf("pixel (%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRenderWithoutInput(t *testing.T) {
	if Render("", 10, 5) != "" {
		t.Error("empty character should render nothing")
	}
	if Render("好", 0, 5) != "" {
		t.Error("zero width should render nothing")
	}
	if !IsAvailable() {
		t.Skip("no CJK font installed")
	}
	out := Render("好", 12, 6)
	if lines := strings.Split(out, "\n"); len(lines) != 6 {
		t.Errorf("rendered %d lines, want 6", len(lines))
	}
}
