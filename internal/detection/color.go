package detection

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"ui-finder/internal/geometry"
)

// Saturation and value floors on the 0-255 byte scale. Together they select
// vividly-colored, reasonably bright pixels (the look of flat-colored game
// buttons) while excluding gray and dark backgrounds regardless of hue.
const (
	minSaturation = 50.0
	minValue      = 40.0
)

// Color regions tolerate more extreme proportions than edge shapes (wide
// bars, tall sliders), and small vivid regions are meaningful even below the
// shape detector's area floor.
const (
	colorMinAspect     = 0.05
	colorMaxAspect     = 15.0
	colorAreaFloor     = 200
	maxColorConfidence = 0.95
)

// hueBuckets maps a hue on OpenCV's 0-179 circular scale to a human-readable
// name. Ordered by upper bound; lookup walks the table and takes the first
// bucket the hue fits under. Red appears twice because it wraps around zero.
var hueBuckets = []struct {
	upper float64
	name  string
}{
	{10, "red"},
	{25, "orange"},
	{35, "yellow"},
	{85, "green"},
	{100, "cyan"},
	{130, "blue"},
	{150, "purple"},
	{170, "pink"},
	{180, "red"},
}

func hueBucketName(hue float64) string {
	for _, bucket := range hueBuckets {
		if hue <= bucket.upper {
			return bucket.name
		}
	}
	return "red"
}

// DetectColorRegions finds flat-colored UI element candidates in a
// screenshot, independent of edges and without hardcoding any hue.
//
// A binary mask selects pixels with saturation >= 50 and value >= 40 (byte
// scale). The mask is cleaned with a morphological close (7x7, 2 iterations)
// to bridge gaps, an open (5x5, 1 iteration) to erase speckle, and a light
// dilation (5x5, 1 iteration) so thin anti-aliased button borders survive.
// Each outermost connected region is then tightened back to the pixels that
// passed the raw saturation/value floor, filtered by area and aspect ratio,
// and labeled color_button_<hue name> from its circular mean hue.
//
// Confidence grows with how vivid and bright the region is:
// min(0.95, 0.7 + meanSaturation/255*0.15 + meanValue/255*0.1).
func DetectColorRegions(img image.Image, opts Options) []Element {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil
	}
	minArea, maxArea := opts.resolve(width, height)
	areaFloor := colorAreaFloor
	if half := minArea / 2; half > areaFloor {
		areaFloor = half
	}

	// Per-pixel HSV plus the raw vividness mask.
	hue := make([][]float64, height)
	sat := make([][]float64, height)
	val := make([][]float64, height)
	mask := make([][]bool, height)
	for y := 0; y < height; y++ {
		hue[y] = make([]float64, width)
		sat[y] = make([]float64, width)
		val[y] = make([]float64, width)
		mask[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			c := colorful.Color{
				R: float64(r>>8) / 255.0,
				G: float64(g>>8) / 255.0,
				B: float64(b>>8) / 255.0,
			}
			h, s, v := c.Hsv()
			hue[y][x] = h
			sat[y][x] = s * 255
			val[y][x] = v * 255
			mask[y][x] = sat[y][x] >= minSaturation && val[y][x] >= minValue
		}
	}

	cleaned := closeMask(mask, 3, 2)
	cleaned = openMask(cleaned, 2, 1)
	cleaned = dilateMask(cleaned, 2, 1)

	elements := make([]Element, 0)
	for _, component := range findComponents(cleaned) {
		// Tighten the region to pixels that passed the raw floor; the
		// cleanup dilation bleeds a few pixels past true button edges, and
		// those pixels must not distort the box or the color statistics.
		var satSum, valSum, sinSum, cosSum float64
		vivid := 0
		minX, minY := width, height
		maxX, maxY := -1, -1
		for _, p := range component {
			if !mask[p.Y][p.X] {
				continue
			}
			satSum += sat[p.Y][p.X]
			valSum += val[p.Y][p.X]
			rad := hue[p.Y][p.X] * math.Pi / 180
			sinSum += math.Sin(rad)
			cosSum += math.Cos(rad)
			vivid++
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
		if vivid == 0 {
			continue // pure dilation bleed, nothing vivid underneath
		}

		box := geometry.Box{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}
		area := box.Area()
		if area < areaFloor || area > maxArea {
			continue
		}
		aspect := float64(box.Width) / float64(box.Height)
		if aspect < colorMinAspect || aspect > colorMaxAspect {
			continue
		}

		meanSat := satSum / float64(vivid)
		meanVal := valSum / float64(vivid)
		if meanSat < minSaturation || meanVal < minValue {
			continue
		}

		confidence := 0.7 + meanSat/255*0.15 + meanVal/255*0.1
		if confidence > maxColorConfidence {
			confidence = maxColorConfidence
		}

		// Circular mean keeps reds on both sides of the hue wrap together.
		meanHue := math.Atan2(sinSum, cosSum) * 180 / math.Pi
		if meanHue < 0 {
			meanHue += 360
		}
		name := hueBucketName(meanHue / 2)

		elements = append(elements, elementAt(box, colorButtonPrefix+name, confidence, 0))
	}
	return elements
}
