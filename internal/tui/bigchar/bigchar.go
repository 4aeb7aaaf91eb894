// Package bigchar renders Chinese characters as large block art using half-block characters.
package bigchar

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontPaths are tried in order until one parses as a CJK font.
var FontPaths = []string{
	// macOS
	"/System/Library/Fonts/STHeiti Light.ttc",
	"/System/Library/Fonts/PingFang.ttc",
	"/System/Library/Fonts/Hiragino Sans GB.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	// Linux
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
	// Windows
	"C:\\Windows\\Fonts\\msyh.ttc",
	"C:\\Windows\\Fonts\\simsun.ttc",
}

const threshold = 40

var (
	loadOnce sync.Once
	face     font.Face

	mu    sync.Mutex
	cache = make(map[string]string)
)

// UseFont puts path first in FontPaths. It has no effect once a glyph has
// been rendered.
func UseFont(path string) {
	if path != "" {
		FontPaths = append([]string{path}, FontPaths...)
	}
}

func loadFace() {
	for _, path := range FontPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if f := parseFace(data); f != nil {
			face = f
			return
		}
	}
}

func parseFace(data []byte) font.Face {
	opts := &opentype.FaceOptions{Size: 64, DPI: 72}

	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		if fnt, err := coll.Font(0); err == nil {
			if f, err := opentype.NewFace(fnt, opts); err == nil {
				return f
			}
		}
	}
	if fnt, err := opentype.Parse(data); err == nil {
		if f, err := opentype.NewFace(fnt, opts); err == nil {
			return f
		}
	}
	return nil
}

// IsAvailable reports whether a CJK font was found.
func IsAvailable() bool {
	loadOnce.Do(loadFace)
	return face != nil
}

// Render returns char as cols x rows cells of block art, or "" when no
// font is available. Results are cached.
func Render(char string, cols, rows int) string {
	if char == "" || cols <= 0 || rows <= 0 || !IsAvailable() {
		return ""
	}

	key := fmt.Sprintf("%s/%dx%d", char, cols, rows)
	mu.Lock()
	defer mu.Unlock()
	if s, ok := cache[key]; ok {
		return s
	}
	s := imageToHalfBlocks(scaleDown(drawGlyph(char), cols, rows*2), cols, rows)
	cache[key] = s
	return s
}

// drawGlyph draws the first rune of char white on black at the font's
// natural size.
func drawGlyph(char string) *image.Gray {
	r := []rune(char)[0]
	bounds, _, _ := face.GlyphBounds(r)
	glyphWidth := (bounds.Max.X - bounds.Min.X).Ceil()
	glyphHeight := (bounds.Max.Y - bounds.Min.Y).Ceil()

	const padding = 4
	w := max(glyphWidth+padding*2, 64)
	h := max(glyphHeight+padding*2, 64)

	img := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P((w-glyphWidth)/2, h-padding-bounds.Max.Y.Ceil()),
	}
	d.DrawString(string(r))
	return img
}

// scaleDown scales a grayscale image using area averaging.
func scaleDown(src *image.Gray, w, h int) *image.Gray {
	sw, sh := src.Bounds().Max.X, src.Bounds().Max.Y
	dst := image.NewGray(image.Rect(0, 0, w, h))

	xr := float64(sw) / float64(w)
	yr := float64(sh) / float64(h)

	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			x1, y1 := int(float64(dx)*xr), int(float64(dy)*yr)
			x2, y2 := min(int(float64(dx+1)*xr), sw), min(int(float64(dy+1)*yr), sh)

			sum, n := 0, 0
			for sy := y1; sy < y2; sy++ {
				for sx := x1; sx < x2; sx++ {
					sum += int(src.GrayAt(sx, sy).Y)
					n++
				}
			}
			if n > 0 {
				dst.SetGray(dx, dy, color.Gray{Y: uint8(sum / n)})
			}
		}
	}
	return dst
}

// imageToHalfBlocks maps each pair of vertical pixels to one of ▀▄█ or space.
func imageToHalfBlocks(img *image.Gray, cols, rows int) string {
	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := brightness(img, col, row*2) > threshold
			bottom := brightness(img, col, row*2+1) > threshold
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		if row < rows-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

func brightness(img *image.Gray, x, y int) uint8 {
	if !(image.Point{x, y}.In(img.Bounds())) {
		return 0
	}
	return img.GrayAt(x, y).Y
}
