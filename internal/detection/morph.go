package detection

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/effect"
)

// Binary morphology over [][]bool masks, backed by bild's grayscale
// dilate/erode. A kernel of side 2r+1 maps to bild radius r, so the 3x3,
// 5x5 and 7x7 structuring elements become radii 1, 2 and 3.

// dilateMask grows foreground regions by radius, iterations times.
func dilateMask(mask [][]bool, radius, iterations int) [][]bool {
	img := maskToImage(mask)
	for i := 0; i < iterations; i++ {
		img = effect.Dilate(img, float64(radius))
	}
	return imageToMask(img)
}

// erodeMask shrinks foreground regions by radius, iterations times.
func erodeMask(mask [][]bool, radius, iterations int) [][]bool {
	img := maskToImage(mask)
	for i := 0; i < iterations; i++ {
		img = effect.Erode(img, float64(radius))
	}
	return imageToMask(img)
}

// closeMask bridges small gaps: dilate then erode.
func closeMask(mask [][]bool, radius, iterations int) [][]bool {
	return erodeMask(dilateMask(mask, radius, iterations), radius, iterations)
}

// openMask erases speckle noise: erode then dilate.
func openMask(mask [][]bool, radius, iterations int) [][]bool {
	return dilateMask(erodeMask(mask, radius, iterations), radius, iterations)
}

func maskToImage(mask [][]bool) *image.RGBA {
	height := len(mask)
	width := 0
	if height > 0 {
		width = len(mask[0])
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if mask[y][x] {
				img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
			}
		}
	}
	return img
}

func imageToMask(img *image.RGBA) [][]bool {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	mask := make([][]bool, height)
	for y := 0; y < height; y++ {
		mask[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			mask[y][x] = img.RGBAAt(x+bounds.Min.X, y+bounds.Min.Y).R > 127
		}
	}
	return mask
}
