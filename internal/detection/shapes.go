package detection

import (
	"image"
	"math"
)

// Aspect ratio limits for edge-based elements. Slivers outside this range
// are scrollbar tracks, separators or detection artifacts, not buttons.
const (
	shapeMinAspect = 0.1
	shapeMaxAspect = 10.0
)

// Dilation applied to the edge mask before contour extraction: a 3x3
// structuring element run twice, enough to close one-to-two pixel gaps in
// button outlines so they form connectable boundaries.
const (
	edgeDilateRadius     = 1
	edgeDilateIterations = 2
)

// polygonTolerance is the Douglas-Peucker tolerance as a fraction of the
// contour perimeter.
const polygonTolerance = 0.02

// shapeRule maps contour measurements to an element classification.
// Rules are evaluated top-down and the first match wins; adding a new shape
// class means appending a rule, not growing a conditional chain.
type shapeRule struct {
	matches    func(vertices int, circularity float64) bool
	kind       string
	confidence float64
}

var shapeRules = []shapeRule{
	{func(v int, _ float64) bool { return v == 4 }, TypeRectangle, 0.8},
	{func(_ int, c float64) bool { return c > 0.7 }, TypeCircle, 0.9},
	{func(v int, _ float64) bool { return v < 10 }, TypePolygon, 0.6},
}

func classifyShape(vertices int, circularity float64) (string, float64) {
	for _, rule := range shapeRules {
		if rule.matches(vertices, circularity) {
			return rule.kind, rule.confidence
		}
	}
	return TypeUnknown, 0.5
}

// DetectShapes finds edge-bounded UI element candidates in a screenshot.
//
// The screenshot is converted to grayscale, smoothed, run through Canny edge
// extraction and dilated so that broken outlines connect. Each resulting
// contour is filtered by bounding-box area and aspect ratio, then classified
// as rectangle, circle, polygon or unknown from its simplified vertex count
// and circularity (4π·area / perimeter²).
//
// Results are unranked; Merge orders and caps the combined element list.
func DetectShapes(img image.Image, opts Options) []Element {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil
	}
	minArea, maxArea := opts.resolve(width, height)

	mask := cannyMask(img, edgeThresholdLow, edgeThresholdHigh)
	mask = dilateMask(mask, edgeDilateRadius, edgeDilateIterations)

	elements := make([]Element, 0)
	for _, component := range findComponents(mask) {
		if element, ok := analyzeContour(component, minArea, maxArea); ok {
			elements = append(elements, element)
		}
	}
	return elements
}

// analyzeContour measures one contour and classifies it, or rejects it when
// its bounding box falls outside the configured area or aspect limits.
func analyzeContour(component []point, minArea, maxArea int) (Element, bool) {
	box := boundsOf(component)
	area := box.Area()
	if area < minArea || area > maxArea {
		return Element{}, false
	}

	aspect := float64(box.Width) / float64(box.Height)
	if aspect < shapeMinAspect || aspect > shapeMaxAspect {
		return Element{}, false
	}

	boundary := traceBoundary(component)
	perimeter := perimeterOf(boundary)

	// A zero-perimeter contour cannot be a circle; leave circularity at 0
	// instead of dividing by it.
	circularity := 0.0
	if perimeter > 0 {
		circularity = 4 * math.Pi * enclosedArea(boundary) / (perimeter * perimeter)
	}

	vertices := len(approxPolygon(boundary, polygonTolerance*perimeter))
	kind, confidence := classifyShape(vertices, circularity)

	return elementAt(box, kind, confidence, vertices), true
}
