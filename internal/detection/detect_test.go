package detection

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"
)

func TestDetectUIElements_ColorWinsOverItsOwnEdges(t *testing.T) {
	// A solid green button produces both an edge contour and a color region.
	// The merger must keep exactly one element for it, the color one.
	img := grayCanvas(200, 200)
	fillRect(img, 40, 40, 120, 100, color.RGBA{0, 200, 0, 255})

	elements := DetectUIElements(img, Options{})

	greenCount := 0
	for _, e := range elements {
		if e.Type == "color_button_green" {
			greenCount++
		}
		if e.Type == TypeRectangle {
			t.Errorf("edge detection of the button should have been displaced, got %+v", e)
		}
	}
	if greenCount != 1 {
		t.Errorf("green element count: got %d, want 1 (%+v)", greenCount, elements)
	}
}

func TestDetectUIElements_MixedScene(t *testing.T) {
	img := grayCanvas(250, 250)
	fillRect(img, 20, 30, 70, 70, color.RGBA{0, 200, 0, 255}) // color button
	drawRectOutline(img, 120, 120, 220, 180, 3, color.Black)  // outlined panel

	elements := DetectUIElements(img, Options{})

	var sawGreen, sawRectangle bool
	for _, e := range elements {
		switch e.Type {
		case "color_button_green":
			sawGreen = true
		case TypeRectangle:
			sawRectangle = true
		}
	}
	if !sawGreen {
		t.Errorf("missing green color element in %+v", elements)
	}
	if !sawRectangle {
		t.Errorf("missing outlined rectangle element in %+v", elements)
	}

	// Combined output still honors the duplicate and nesting invariants.
	for i := 0; i < len(elements); i++ {
		for j := i + 1; j < len(elements); j++ {
			if ratio := elements[i].box().OverlapRatio(elements[j].box()); ratio >= duplicateOverlapRatio {
				t.Errorf("elements %d and %d overlap at %v", i, j, ratio)
			}
		}
	}
	for i := 1; i < len(elements); i++ {
		if elements[i].Area > elements[i-1].Area {
			t.Errorf("elements not sorted by area at index %d", i)
		}
	}
}

func TestDetectUIElementsData_CorruptInput(t *testing.T) {
	if elements := DetectUIElementsData("definitely not an image", Options{}); len(elements) != 0 {
		t.Errorf("corrupt input should yield an empty result, got %+v", elements)
	}
}

func TestDetectUIElementsData_RawBytes(t *testing.T) {
	img := grayCanvas(150, 150)
	fillRect(img, 30, 30, 90, 80, color.RGBA{200, 30, 30, 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode: %v", err)
	}

	elements := DetectUIElementsData(buf.String(), Options{})
	if len(elements) == 0 {
		t.Fatal("expected at least one element from encoded screenshot")
	}
	if elements[0].Type != "color_button_red" {
		t.Errorf("type: got %q, want color_button_red", elements[0].Type)
	}
}
