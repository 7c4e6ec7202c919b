package detection

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

// grayCanvas returns a uniform mid-gray image, a neutral background that
// triggers neither edge nor color detection.
func grayCanvas(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{128, 128, 128, 255}), image.Point{}, draw.Src)
	return img
}

// drawRectOutline draws an unfilled rectangle with the given stroke width.
func drawRectOutline(img *image.RGBA, x1, y1, x2, y2, stroke int, c color.Color) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			onBorder := x < x1+stroke || x >= x2-stroke || y < y1+stroke || y >= y2-stroke
			if onBorder {
				img.Set(x, y, c)
			}
		}
	}
}

// drawCircleOutline draws an unfilled circle of the given radius and stroke.
func drawCircleOutline(img *image.RGBA, cx, cy, radius, stroke int, c color.Color) {
	for y := cy - radius - stroke; y <= cy+radius+stroke; y++ {
		for x := cx - radius - stroke; x <= cx+radius+stroke; x++ {
			dx, dy := x-cx, y-cy
			distSq := dx*dx + dy*dy
			if distSq >= radius*radius && distSq <= (radius+stroke)*(radius+stroke) {
				img.Set(x, y, c)
			}
		}
	}
}

func TestDetectShapes_SquareOutline(t *testing.T) {
	img := grayCanvas(200, 200)
	drawRectOutline(img, 50, 50, 150, 150, 3, color.Black)

	elements := DetectShapes(img, Options{})

	if len(elements) != 1 {
		t.Fatalf("element count: got %d, want 1 (%+v)", len(elements), elements)
	}
	got := elements[0]
	if got.Type != TypeRectangle {
		t.Errorf("type: got %q, want %q", got.Type, TypeRectangle)
	}
	if got.Vertices != 4 {
		t.Errorf("vertices: got %d, want 4", got.Vertices)
	}
	if got.Confidence != 0.8 {
		t.Errorf("confidence: got %v, want 0.8", got.Confidence)
	}

	// The detected box tracks the outline, give or take the edge dilation.
	const tolerance = 8
	if got.X < 50-tolerance || got.X > 50+tolerance || got.Y < 50-tolerance || got.Y > 50+tolerance {
		t.Errorf("position: got (%d,%d), want near (50,50)", got.X, got.Y)
	}
	if got.Width < 100-tolerance || got.Width > 100+2*tolerance {
		t.Errorf("width: got %d, want near 100", got.Width)
	}
	if got.Area != got.Width*got.Height {
		t.Errorf("area %d inconsistent with %dx%d box", got.Area, got.Width, got.Height)
	}
	if got.CenterX != got.X+got.Width/2 || got.CenterY != got.Y+got.Height/2 {
		t.Errorf("center (%d,%d) inconsistent with box %+v", got.CenterX, got.CenterY, got)
	}
}

func TestDetectShapes_CircleOutline(t *testing.T) {
	img := grayCanvas(200, 200)
	drawCircleOutline(img, 100, 100, 40, 3, color.Black)

	elements := DetectShapes(img, Options{})

	if len(elements) != 1 {
		t.Fatalf("element count: got %d, want 1 (%+v)", len(elements), elements)
	}
	got := elements[0]
	if got.Type != TypeCircle {
		t.Errorf("type: got %q, want %q (vertices=%d)", got.Type, TypeCircle, got.Vertices)
	}
	if got.Confidence != 0.9 {
		t.Errorf("confidence: got %v, want 0.9", got.Confidence)
	}
}

func TestDetectShapes_UniformImage(t *testing.T) {
	img := grayCanvas(150, 150)

	if elements := DetectShapes(img, Options{}); len(elements) != 0 {
		t.Errorf("uniform image should yield no elements, got %+v", elements)
	}
}

func TestDetectShapes_MinAreaFilter(t *testing.T) {
	img := grayCanvas(200, 200)
	// A 10x10 outline: edge spread plus the two dilations grow its bounding
	// box by roughly 8px per axis, to ~18x18 = ~324px, still under the
	// default 400px floor.
	drawRectOutline(img, 50, 50, 60, 60, 2, color.Black)

	if elements := DetectShapes(img, Options{}); len(elements) != 0 {
		t.Errorf("sub-minimum element should be filtered, got %+v", elements)
	}

	// Lowering the floor lets it through.
	elements := DetectShapes(img, Options{MinArea: 100})
	if len(elements) != 1 {
		t.Errorf("element count with MinArea=100: got %d, want 1", len(elements))
	}
}

func TestDetectShapes_MaxAreaFilter(t *testing.T) {
	img := grayCanvas(100, 100)
	// Bounding box ~95x95 = ~9000px, above the default ceiling of half the
	// image (5000px).
	drawRectOutline(img, 2, 2, 97, 97, 2, color.Black)

	if elements := DetectShapes(img, Options{}); len(elements) != 0 {
		t.Errorf("oversized element should be filtered, got %+v", elements)
	}

	// An explicit generous ceiling admits it.
	elements := DetectShapes(img, Options{MaxArea: 10000})
	if len(elements) != 1 {
		t.Errorf("element count with MaxArea=10000: got %d, want 1", len(elements))
	}
}

func TestClassifyShape(t *testing.T) {
	tests := []struct {
		name        string
		vertices    int
		circularity float64
		wantKind    string
		wantConf    float64
	}{
		{"four vertices is a rectangle", 4, 0.5, TypeRectangle, 0.8},
		{"rectangle wins over circularity", 4, 0.9, TypeRectangle, 0.8},
		{"round contour is a circle", 8, 0.85, TypeCircle, 0.9},
		{"few vertices is a polygon", 6, 0.3, TypePolygon, 0.6},
		{"many vertices, low circularity", 15, 0.2, TypeUnknown, 0.5},
		{"degenerate contour is still a polygon", 1, 0, TypePolygon, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, conf := classifyShape(tt.vertices, tt.circularity)
			if kind != tt.wantKind || conf != tt.wantConf {
				t.Errorf("classifyShape(%d, %v): got (%q, %v), want (%q, %v)",
					tt.vertices, tt.circularity, kind, conf, tt.wantKind, tt.wantConf)
			}
		})
	}
}

func TestApproxPolygon_Square(t *testing.T) {
	// A perfect 40x40 square boundary simplifies to its 4 corners.
	var boundary []point
	for x := 0; x < 40; x++ {
		boundary = append(boundary, point{x, 0})
	}
	for y := 0; y < 40; y++ {
		boundary = append(boundary, point{40, y})
	}
	for x := 40; x > 0; x-- {
		boundary = append(boundary, point{x, 40})
	}
	for y := 40; y > 0; y-- {
		boundary = append(boundary, point{0, y})
	}

	perimeter := perimeterOf(boundary)
	simplified := approxPolygon(boundary, polygonTolerance*perimeter)
	if len(simplified) != 4 {
		t.Errorf("vertex count: got %d, want 4 (%+v)", len(simplified), simplified)
	}
}
