package matching

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/disintegration/imaging"
	"gonum.org/v1/gonum/floats"

	"ui-finder/internal/geometry"
	loader "ui-finder/internal/imaging"
)

// Method selects the similarity score used to compare a template against a
// screenshot window.
type Method int

const (
	// MethodCCoeffNormed is the normalized correlation coefficient (default).
	MethodCCoeffNormed Method = iota
	// MethodCCorrNormed is the normalized cross-correlation.
	MethodCCorrNormed
	// MethodSqDiffNormed is the normalized squared difference. Scores are
	// inverted to 1-score so that higher always means a better match.
	MethodSqDiffNormed
)

// ParseMethod maps a method name to its Method value. Unknown names return
// an error; the empty string selects the default method.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "", "ccoeff_normed":
		return MethodCCoeffNormed, nil
	case "ccorr_normed":
		return MethodCCorrNormed, nil
	case "sqdiff_normed":
		return MethodSqDiffNormed, nil
	}
	return 0, fmt.Errorf("unknown matching method %q", name)
}

// DefaultThreshold is the confidence floor used when callers do not supply one.
const DefaultThreshold = 0.7

// matchScales is the fixed scale ladder tried in multi-scale mode. Scales at
// which the resized template would be empty or larger than the screenshot are
// skipped.
var matchScales = []float64{0.5, 0.75, 1.0, 1.25, 1.5}

// suppressionIoU is the overlap above which a lower-confidence match is
// discarded during non-maximum suppression.
const suppressionIoU = 0.3

// Match is one accepted template position.
type Match struct {
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	CenterX    int     `json:"center_x"`
	CenterY    int     `json:"center_y"`
	Confidence float64 `json:"confidence"`
	Scale      float64 `json:"scale"`
}

func (m Match) box() geometry.Box {
	return geometry.Box{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}
}

// Matcher scores template alignments against screenshots. The zero value is
// not useful; construct with New.
type Matcher struct {
	threshold float64
	method    Method
}

// New returns a Matcher with the given confidence threshold and scoring
// method. Thresholds outside (0, 1] fall back to DefaultThreshold.
func New(threshold float64, method Method) *Matcher {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Matcher{threshold: threshold, method: method}
}

// FindMatchesData loads both inputs (base64 payloads, raw bytes or paths) and
// runs FindMatches. A failed load yields an empty result, never an error:
// callers poll screenshots continuously and a single bad frame must not kill
// them.
func (m *Matcher) FindMatchesData(screenshotData, templateData string, multiScale bool) []Match {
	screenshot, err := loader.Load(screenshotData)
	if err != nil {
		return nil
	}
	template, err := loader.Load(templateData)
	if err != nil {
		return nil
	}
	return m.FindMatches(screenshot, template, multiScale)
}

// FindMatches returns every position where the template matches the
// screenshot with confidence at or above the matcher's threshold, after
// suppressing overlapping hits. Results are sorted by confidence descending.
//
// With multiScale set, the template is additionally tried at 0.5x, 0.75x,
// 1.25x and 1.5x its original size to absorb resolution differences between
// the template capture and the screenshot.
func (m *Matcher) FindMatches(screenshot, template image.Image, multiScale bool) []Match {
	shot := newPlane(screenshot)
	if shot.width == 0 || shot.height == 0 {
		return nil
	}

	scales := []float64{1.0}
	if multiScale {
		scales = matchScales
	}

	var matches []Match
	for _, scale := range scales {
		matches = append(matches, m.matchAtScale(shot, template, scale)...)
	}

	matches = suppressOverlaps(matches, suppressionIoU)

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	return matches
}

// matchAtScale scores the template resized by scale at every window position.
// Scales that produce an empty template or one larger than the screenshot are
// skipped, mirroring how a caller-supplied bad parameter degrades to "no
// matches at this scale" instead of an error.
func (m *Matcher) matchAtScale(shot *plane, template image.Image, scale float64) []Match {
	tb := template.Bounds()
	tw := int(float64(tb.Dx()) * scale)
	th := int(float64(tb.Dy()) * scale)

	if tw <= 0 || th <= 0 {
		return nil
	}
	if tw > shot.width || th > shot.height {
		return nil
	}

	resized := template
	if tw != tb.Dx() || th != tb.Dy() {
		resized = imaging.Resize(template, tw, th, imaging.Linear)
	}

	tmpl := newPlane(resized)
	score := m.scorer(tmpl)

	n := len(tmpl.pix)
	window := make([]float64, n)

	var matches []Match
	for y := 0; y+th <= shot.height; y++ {
		for x := 0; x+tw <= shot.width; x++ {
			shot.fillWindow(window, x, y, tw, th)
			conf := score(window)
			if conf < m.threshold {
				continue
			}
			matches = append(matches, Match{
				X:          x,
				Y:          y,
				Width:      tw,
				Height:     th,
				CenterX:    x + tw/2,
				CenterY:    y + th/2,
				Confidence: clamp01(conf),
				Scale:      scale,
			})
		}
	}
	return matches
}

// scorer returns a closure that scores a flattened window against the given
// template plane. Template-side statistics are computed once here so the per
// window cost is a handful of dot products.
func (m *Matcher) scorer(tmpl *plane) func(window []float64) float64 {
	n := float64(len(tmpl.pix))
	tNormSq := floats.Dot(tmpl.pix, tmpl.pix)

	switch m.method {
	case MethodCCorrNormed:
		return func(w []float64) float64 {
			den := math.Sqrt(floats.Dot(w, w) * tNormSq)
			if den == 0 {
				return 0
			}
			return floats.Dot(w, tmpl.pix) / den
		}

	case MethodSqDiffNormed:
		return func(w []float64) float64 {
			wNormSq := floats.Dot(w, w)
			den := math.Sqrt(wNormSq * tNormSq)
			if den == 0 {
				return 0
			}
			diff := wNormSq - 2*floats.Dot(w, tmpl.pix) + tNormSq
			if diff < 0 {
				diff = 0
			}
			return 1 - diff/den
		}

	default: // MethodCCoeffNormed
		tMean := floats.Sum(tmpl.pix) / n
		tCentered := make([]float64, len(tmpl.pix))
		for i, v := range tmpl.pix {
			tCentered[i] = v - tMean
		}
		tCenteredNormSq := floats.Dot(tCentered, tCentered)

		return func(w []float64) float64 {
			if tCenteredNormSq == 0 {
				return 0
			}
			wMean := floats.Sum(w) / n
			wCenteredNormSq := floats.Dot(w, w) - n*wMean*wMean
			if wCenteredNormSq <= 0 {
				return 0
			}
			// Dot(w - wMean, tCentered) == Dot(w, tCentered) because the
			// centered template sums to zero.
			return floats.Dot(w, tCentered) / math.Sqrt(wCenteredNormSq*tCenteredNormSq)
		}
	}
}

// suppressOverlaps keeps the highest-confidence match of every overlapping
// cluster: matches are visited in confidence-descending order and discarded
// when their IoU with an already-kept match exceeds maxIoU.
func suppressOverlaps(matches []Match, maxIoU float64) []Match {
	if len(matches) == 0 {
		return nil
	}

	sorted := make([]Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	kept := make([]Match, 0, len(sorted))
	for _, candidate := range sorted {
		overlapping := false
		for _, k := range kept {
			if candidate.box().IoU(k.box()) > maxIoU {
				overlapping = true
				break
			}
		}
		if !overlapping {
			kept = append(kept, candidate)
		}
	}
	return kept
}

// plane is a screenshot or template flattened to interleaved RGB float64
// samples in row-major order.
type plane struct {
	pix    []float64
	width  int
	height int
}

func newPlane(img image.Image) *plane {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	pix := make([]float64, 0, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			pix = append(pix, float64(r>>8), float64(g>>8), float64(bl>>8))
		}
	}
	return &plane{pix: pix, width: w, height: h}
}

// fillWindow copies the w×h window at (x, y) into dst, row by row.
// dst must have length w*h*3.
func (p *plane) fillWindow(dst []float64, x, y, w, h int) {
	rowLen := w * 3
	for row := 0; row < h; row++ {
		src := ((y+row)*p.width + x) * 3
		copy(dst[row*rowLen:(row+1)*rowLen], p.pix[src:src+rowLen])
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
