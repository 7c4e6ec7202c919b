package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"strings"
)

// ErrDecode indicates that an input could not be decoded as an image payload
// and could not be read as an image file either.
var ErrDecode = errors.New("input is not a decodable image payload or path")

// Load decodes an image from a self-describing input string.
//
// The input is interpreted, in order, as:
//
//  1. A base64-encoded image payload. A leading "data:image/...;base64,"
//     marker, if present, is stripped before decoding.
//  2. Raw encoded image bytes (PNG, JPEG or GIF) passed through as a string.
//  3. A filesystem path to an image file.
//
// The first interpretation that yields a valid image wins. If none do, the
// returned error wraps ErrDecode; callers should treat that as "no image this
// frame" rather than a fatal condition.
func Load(input string) (image.Image, error) {
	payload := input
	if strings.HasPrefix(payload, "data:image") {
		if idx := strings.IndexByte(payload, ','); idx >= 0 {
			payload = payload[idx+1:]
		}
	}

	if raw, err := base64.StdEncoding.DecodeString(payload); err == nil {
		if img, err := decode(raw); err == nil {
			return img, nil
		}
	}

	if img, err := decode([]byte(input)); err == nil {
		return img, nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrDecode, truncateForError(input))
	}
	img, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: file %q is not a valid image", ErrDecode, input)
	}
	return img, nil
}

// LoadBytes decodes raw encoded image bytes (PNG, JPEG or GIF).
// The returned error wraps ErrDecode when the bytes are not a valid image.
func LoadBytes(data []byte) (image.Image, error) {
	img, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

func decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// truncateForError shortens payload-like inputs so error messages stay
// readable when the input is a multi-megabyte base64 string.
func truncateForError(s string) string {
	const limit = 64
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
