package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
)

// encodeTestImage returns a solid-color PNG as raw bytes.
func encodeTestImage(t *testing.T, width, height int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return buf.Bytes()
}

// writeTestImage creates a test image file and returns its path.
// The caller is responsible for removing the file.
func writeTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "test-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if _, err := tmpFile.Write(encodeTestImage(t, width, height, c)); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to write image: %v", err)
	}
	return tmpFile.Name()
}

func TestLoad_Base64Payload(t *testing.T) {
	raw := encodeTestImage(t, 40, 30, color.RGBA{255, 0, 0, 255})
	payload := base64.StdEncoding.EncodeToString(raw)

	img, err := Load(payload)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Errorf("dimensions: got %dx%d, want 40x30", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestLoad_DataURLPrefix(t *testing.T) {
	raw := encodeTestImage(t, 20, 20, color.RGBA{0, 255, 0, 255})
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	img, err := Load(payload)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 20 {
		t.Errorf("dimensions: got %dx%d, want 20x20", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestLoad_RawBytes(t *testing.T) {
	raw := encodeTestImage(t, 10, 10, color.RGBA{0, 0, 255, 255})

	img, err := Load(string(raw))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 10 {
		t.Errorf("width: got %d, want 10", img.Bounds().Dx())
	}
}

func TestLoad_FilePath(t *testing.T) {
	path := writeTestImage(t, 64, 48, color.RGBA{128, 128, 128, 255})
	defer os.Remove(path)

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 48 {
		t.Errorf("dimensions: got %dx%d, want 64x48", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestLoad_CorruptInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"garbage text", "definitely not an image"},
		{"valid base64, invalid image", base64.StdEncoding.EncodeToString([]byte("still not an image"))},
		{"nonexistent path", "/nonexistent/path/to/image.png"},
		{"empty string", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.input)
			if err == nil {
				t.Fatal("Load should fail for corrupt input")
			}
			if !errors.Is(err, ErrDecode) {
				t.Errorf("error should wrap ErrDecode, got: %v", err)
			}
		})
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "corrupt-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())
	if _, err := tmpFile.WriteString("not a png at all"); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	tmpFile.Close()

	_, err = Load(tmpFile.Name())
	if !errors.Is(err, ErrDecode) {
		t.Errorf("loading corrupt file should wrap ErrDecode, got: %v", err)
	}
}

func TestLoadBytes(t *testing.T) {
	raw := encodeTestImage(t, 8, 8, color.RGBA{10, 20, 30, 255})

	img, err := LoadBytes(raw)
	if err != nil {
		t.Fatalf("LoadBytes failed: %v", err)
	}
	if img.Bounds().Dx() != 8 {
		t.Errorf("width: got %d, want 8", img.Bounds().Dx())
	}

	if _, err := LoadBytes([]byte("junk")); !errors.Is(err, ErrDecode) {
		t.Errorf("LoadBytes with junk should wrap ErrDecode, got: %v", err)
	}
}
