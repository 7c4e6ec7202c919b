// Package imaging loads screenshot and template images for the detection
// pipelines.
//
// Inputs are self-describing: a value may be a base64-encoded image payload
// (optionally carrying a "data:image/...;base64," prefix), raw encoded image
// bytes, or a filesystem path. Load tries payload interpretations first and
// falls back to the path interpretation, so callers never need to declare
// which form they are passing.
//
// # Pixel Model
//
// Decoded images are standard Go image.Image values with 8-bit RGB channels
// (alpha is ignored by the pipelines). Every load produces a fresh decode;
// nothing is cached or shared between calls, so concurrent detection calls
// each own their buffers exclusively.
//
// # Error Handling
//
// All load failures wrap ErrDecode. Callers that poll screenshots
// continuously are expected to map a failed load to an empty result rather
// than treating it as fatal.
package imaging
