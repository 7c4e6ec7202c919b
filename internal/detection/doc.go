// Package detection finds interactive UI elements in game screenshots
// without a reference image.
//
// Two independent detectors feed a merger:
//
//   - DetectShapes finds edge-bounded regions: grayscale conversion, Gaussian
//     smoothing, Canny edge extraction, morphological dilation to close gaps,
//     contour tracing, then shape classification (rectangle, circle, polygon)
//     from vertex count and circularity.
//   - DetectColorRegions finds flat-colored regions typical of game buttons:
//     a saturation/value mask, morphological cleanup, and per-region color
//     statistics. It is hue-agnostic; the dominant hue only labels the
//     element (color_button_green and so on), it never filters.
//   - Merge reconciles both lists: color detections win over overlapping edge
//     detections, nested elements are dropped, near-duplicates are removed,
//     and the result is ranked by area and capped.
//
// DetectUIElements runs the full pipeline.
//
// # Coordinate System
//
// All coordinates use the standard image convention: origin (0, 0) at the
// top-left corner, X increasing rightward, Y increasing downward. Bounding
// boxes are reported as top-left corner plus width and height.
//
// # Confidence Scores
//
// Every element carries a confidence in [0, 1]. Shape confidences are fixed
// per class (a clean 4-vertex contour is a rectangle at 0.8, a contour with
// circularity above 0.7 is a circle at 0.9). Color-region confidence grows
// with how vivid and bright the region is, capped at 0.95.
//
// # Failure Behavior
//
// Nothing in this package is fatal: degenerate contours score zero, invalid
// regions are skipped, and an undecodable input produces an empty element
// list. Callers polling a screenshot stream treat an empty list as "nothing
// detected this frame".
package detection
