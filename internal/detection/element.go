package detection

import "ui-finder/internal/geometry"

// Element types produced by the shape classifier. Color regions use the
// "color_button_" prefix followed by a hue bucket name.
const (
	TypeRectangle = "rectangle"
	TypeCircle    = "circle"
	TypePolygon   = "polygon"
	TypeUnknown   = "unknown"

	colorButtonPrefix = "color_button_"
)

// Element is one detected UI element candidate.
type Element struct {
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	CenterX    int     `json:"center_x"`
	CenterY    int     `json:"center_y"`
	Area       int     `json:"area"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
	Vertices   int     `json:"vertices"`
}

func (e Element) box() geometry.Box {
	return geometry.Box{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

// elementAt builds an Element from a bounding box, deriving the center and
// area fields so they can never drift from the box.
func elementAt(box geometry.Box, kind string, confidence float64, vertices int) Element {
	return Element{
		X:          box.X,
		Y:          box.Y,
		Width:      box.Width,
		Height:     box.Height,
		CenterX:    box.CenterX(),
		CenterY:    box.CenterY(),
		Area:       box.Area(),
		Type:       kind,
		Confidence: confidence,
		Vertices:   vertices,
	}
}

// Options configures a detection call. The zero value selects all defaults.
type Options struct {
	// MinArea is the smallest bounding-box area (in pixels) considered a UI
	// element. Defaults to DefaultMinArea.
	MinArea int

	// MaxArea is the largest bounding-box area considered. Zero or negative
	// selects the default of half the image's pixel count, resolved once per
	// call from the actual image size.
	MaxArea int
}

// DefaultMinArea is the area floor used when Options.MinArea is unset.
const DefaultMinArea = 400

// resolve fills in image-dependent defaults for a width×height image.
func (o Options) resolve(width, height int) (minArea, maxArea int) {
	minArea = o.MinArea
	if minArea <= 0 {
		minArea = DefaultMinArea
	}
	maxArea = o.MaxArea
	if maxArea <= 0 {
		maxArea = width * height / 2
	}
	return minArea, maxArea
}
