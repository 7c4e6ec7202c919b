package detection

import "sort"

const (
	// maxMergedElements caps the final result list.
	maxMergedElements = 100

	// colorOverlapRatio: a shape element overlapping a color element by more
	// than this fraction of the smaller area is displaced by it.
	colorOverlapRatio = 0.5

	// duplicateOverlapRatio: two elements overlapping by at least this
	// fraction of the smaller area are duplicates; the earlier one wins.
	duplicateOverlapRatio = 0.7

	// nestedAreaRatio: an element fully inside another is dropped when its
	// area is below this fraction of the container's area.
	nestedAreaRatio = 0.9
)

// Merge reconciles the shape detector's and the color detector's outputs
// into one coherent, non-redundant element list.
//
// Color-based detections are treated as more semantically specific than
// edge-based ones: color elements are processed in confidence-descending
// order and each displaces at most the first remaining shape element whose
// overlap exceeds half of the smaller area. All color elements survive this
// step; shape elements that never matched are appended after them.
//
// The combined list then loses nested elements (fully contained and under
// 90% of the container's area; an icon inside a button is not a separate
// hit) and near-duplicates (overlap of at least 70% of the smaller area),
// and is finally sorted by area descending and capped at 100 entries.
//
// Merge is a fixed point on its own output: re-merging removes nothing.
func Merge(shapeElements, colorElements []Element) []Element {
	colors := make([]Element, len(colorElements))
	copy(colors, colorElements)
	sort.SliceStable(colors, func(i, j int) bool {
		return colors[i].Confidence > colors[j].Confidence
	})

	remaining := make([]Element, len(shapeElements))
	copy(remaining, shapeElements)

	for _, c := range colors {
		for i, s := range remaining {
			if c.box().OverlapRatio(s.box()) > colorOverlapRatio {
				remaining = append(remaining[:i], remaining[i+1:]...)
				break
			}
		}
	}

	merged := make([]Element, 0, len(colors)+len(remaining))
	merged = append(merged, colors...)
	merged = append(merged, remaining...)

	merged = removeNested(merged)
	merged = removeDuplicates(merged)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Area > merged[j].Area
	})
	if len(merged) > maxMergedElements {
		merged = merged[:maxMergedElements]
	}
	return merged
}

// removeNested drops every element that sits fully inside a significantly
// larger element. Elements of near-equal size (90% or more of the container)
// survive and are left for duplicate removal to arbitrate.
func removeNested(elements []Element) []Element {
	filtered := make([]Element, 0, len(elements))
	for i, candidate := range elements {
		nested := false
		for j, container := range elements {
			if i == j {
				continue
			}
			if container.box().Contains(candidate.box()) &&
				float64(candidate.Area) < nestedAreaRatio*float64(container.Area) {
				nested = true
				break
			}
		}
		if !nested {
			filtered = append(filtered, candidate)
		}
	}
	return filtered
}

// removeDuplicates keeps elements in their current order, skipping any that
// substantially overlap an element already kept.
func removeDuplicates(elements []Element) []Element {
	kept := make([]Element, 0, len(elements))
	for _, candidate := range elements {
		duplicate := false
		for _, k := range kept {
			if candidate.box().OverlapRatio(k.box()) >= duplicateOverlapRatio {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, candidate)
		}
	}
	return kept
}
