package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

// tgaHeader builds an 18-byte TGA header.
func tgaHeader(imageType byte, width, height int, bpp, descriptor byte) []byte {
	h := make([]byte, tgaHeaderSize)
	h[2] = imageType
	h[12], h[13] = byte(width), byte(width>>8)
	h[14], h[15] = byte(height), byte(height>>8)
	h[16] = bpp
	h[17] = descriptor
	return h
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// 1x2 bottom-up: the first stored pixel is the bottom row.
	data := tgaHeader(TGATypeUncompressed, 1, 2, 24, 0)
	data = append(data, 0, 0, 255) // red, BGR
	data = append(data, 255, 0, 0) // blue

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	if got := img.At(0, 1); got != red {
		t.Errorf("bottom pixel = %v, want red", got)
	}
	if got := img.At(0, 0); got != blue {
		t.Errorf("top pixel = %v, want blue", got)
	}
}

func TestDecodeTGARLE(t *testing.T) {
	// 3x1 top-down, 32 bpp: a run of two red pixels then one raw blue pixel.
	data := tgaHeader(TGATypeRLE, 3, 1, 32, 0x20)
	data = append(data, 0x81, 0, 0, 255, 255)
	data = append(data, 0x00, 255, 0, 0, 128)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	for x, want := range []color.RGBA{red, red, {B: 255, A: 128}} {
		if got := img.At(x, 0); got != want {
			t.Errorf("pixel %d = %v, want %v", x, got, want)
		}
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	colorMapped := tgaHeader(TGATypeUncompressed, 1, 1, 24, 0)
	colorMapped[1] = 1

	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", colorMapped},
		{"grayscale type", tgaHeader(3, 1, 1, 8, 0)},
		{"16 bpp", tgaHeader(TGATypeUncompressed, 1, 1, 16, 0)},
		{"truncated pixels", append(tgaHeader(TGATypeUncompressed, 2, 2, 24, 0), 1, 2, 3)},
		{"truncated rle", append(tgaHeader(TGATypeRLE, 2, 2, 24, 0), 0x83)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadPNGFlipsRows(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(0, 0, red)
	src.SetRGBA(1, 0, red)
	src.SetRGBA(0, 1, blue)
	src.SetRGBA(1, 1, blue)

	path := filepath.Join(t.TempDir(), "terrain.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.RGBAAt(0, 0) != blue || img.RGBAAt(1, 1) != red {
		t.Errorf("rows were not flipped: top %v bottom %v", img.RGBAAt(0, 0), img.RGBAAt(1, 1))
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(garbage); err == nil {
		t.Error("expected error for undecodable file")
	}
}

func TestToRGBAOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 8, 7))
	src.SetRGBA(5, 5, red)

	img := ToRGBA(src, false)
	if img.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
	if img.RGBAAt(0, 0) != red {
		t.Errorf("origin pixel = %v, want red", img.RGBAAt(0, 0))
	}
}

func TestChecker(t *testing.T) {
	img := Checker(8, 2, red, blue)

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, red},
		{3, 3, red},
		{4, 0, blue},
		{0, 4, blue},
		{7, 7, red},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
