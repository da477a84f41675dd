// Package fill implements the region-based fill engine.
//
// An image is split into three alpha bands, computed once from the input:
//
//   - opaque: alpha >= 250
//   - transparent: alpha <= 10
//   - semi-transparent: everything in between
//
// Each band has its own RegionSettings. A region can be narrowed to the pixels
// matching a target color (or to those not matching it), then have its RGB
// replaced by a solid color, a gradient or a tiled texture, and its alpha
// rewritten to a fixed opacity. Regions are applied in the order opaque,
// transparent, semi-transparent; color matching sees the edits of earlier
// regions while band membership does not.
//
// After the regions an optional background is composited behind the subject,
// either as a plain overlay or through a cutout of the original image. Finally
// the canvas can be cropped to a shape from package shape and trimmed to the
// bounding box of its visible pixels or of a color.
//
// # Degradation
//
// Invalid colors, missing textures and unreadable custom shapes never fail a
// job. The affected step is skipped and a Warning is added to the Result.
// Process only returns an error, a *ProcessError, for inputs it cannot work
// on at all, such as an empty raster.
//
// # Ownership
//
// Every stage takes its input buffer read-only and returns a new one. Process
// copies the caller's image first and never keeps a reference to it.
package fill
