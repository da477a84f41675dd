// Package imaging provides the raster primitives shared by the fill engine,
// the shape generators and the MCP server.
//
// Rasters are *image.NRGBA values (non-premultiplied 8-bit RGBA) anchored at
// the origin, so a fully transparent pixel keeps the RGB it carries. Masks are
// Mask values of the same dimensions holding only 0 or 255.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, Min is inclusive (top-left) and Max is exclusive (bottom-right)
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Mask operations always
// allocate their result and never mutate their operands, so independent
// rasters can be processed concurrently without locking.
//
// # Color Representation
//
// Colors are parsed from hex strings ("#RGB", "#RRGGBB", "#RRGGBBAA") and
// reported in multiple formats:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB / RGBA: 8-bit components
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Error Handling
//
// Functions return errors for invalid inputs such as unparseable colors,
// unreadable or non-image files and crop rectangles outside the image.
// Whether an error is fatal is the caller's decision: the fill engine turns
// most of them into warnings.
package imaging
