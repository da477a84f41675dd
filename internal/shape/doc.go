// Package shape rasterizes the crop shapes applied at the end of a fill job.
//
// Every shape is produced as an imaging.Mask with the same dimensions as the
// canvas. Shapes are centered at (W/2, H/2) and sized from the base radius
// r = min(W, H)/2:
//
//   - circle, ellipse (inscribed in the canvas), horizontal and vertical ovals
//   - square (vertices on the base circle), triangle, pentagon, hexagon
//   - 4- and 5-point stars, sharp or rounded
//   - clouds: 15 random circles unioned and smoothed, either kept inside the
//     base circle (cloud_bounded) or scattered around the center (cloud)
//   - custom: the alpha channel of a user image resized to the canvas
//
// Polygons and stars are rasterized with golang.org/x/image/vector and the
// antialiased coverage is thresholded, so masks stay strictly binary. Rounded
// stars and clouds are smoothed with a gaussian blur from bild.
//
// Cloud shapes are random. Pass a seeded *rand.Rand to Generate when
// reproducible output is needed.
package shape
