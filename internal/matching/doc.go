// Package matching finds where a reference template image appears inside a
// larger screenshot.
//
// The matcher slides a resized copy of the template over the screenshot at a
// fixed set of scales, scores the alignment at every window position, keeps
// positions that clear a confidence threshold, and removes overlapping hits
// with greedy non-maximum suppression.
//
// # Scoring Methods
//
// Three interchangeable scoring methods are supported:
//
//   - MethodCCoeffNormed: normalized correlation coefficient. Both window and
//     template are mean-centered before correlating, which makes the score
//     sensitive to the pattern rather than overall brightness. Default.
//   - MethodCCorrNormed: normalized cross-correlation. Cheaper but less
//     discriminative; bright uniform regions score high against bright
//     templates.
//   - MethodSqDiffNormed: normalized squared difference, inverted to
//     1 - score before thresholding so that higher is always better.
//
// After inversion every method reports confidence in [0, 1] with higher
// values meaning a better match, so downstream filtering is method-agnostic.
//
// # Suppression
//
// Candidates from all scales are pooled and suppressed together: candidates
// are visited in confidence-descending order and a candidate is discarded
// when its IoU with an already-kept match exceeds 0.3.
//
// # Performance
//
// Scoring is O(screenshot pixels × template pixels) per scale. Large
// screenshots with small thresholds can be slow; callers wanting parallelism
// should run independent screenshot/template pairs concurrently; the matcher
// itself holds no shared state.
package matching
