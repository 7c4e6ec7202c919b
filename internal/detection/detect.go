package detection

import (
	"image"

	loader "ui-finder/internal/imaging"
)

// DetectUIElements runs the full pipeline on a decoded screenshot: both
// detectors followed by Merge.
func DetectUIElements(img image.Image, opts Options) []Element {
	return Merge(DetectShapes(img, opts), DetectColorRegions(img, opts))
}

// DetectUIElementsData loads the input (base64 payload, raw bytes or path)
// and runs DetectUIElements. An undecodable input yields an empty element
// list, never an error: a single bad frame must not kill a polling caller.
func DetectUIElementsData(input string, opts Options) []Element {
	img, err := loader.Load(input)
	if err != nil {
		return nil
	}
	return DetectUIElements(img, opts)
}
