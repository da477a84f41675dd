// Package server implements the MCP (Model Context Protocol) server for the
// image fill tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the fill engine and
// its building blocks through the MCP protocol, so an MCP client can inspect
// alpha bands and colors, preview gradients and crop shapes, and run fill jobs.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image information:
//   - image_load: Dimensions, format and alpha band pixel counts
//   - image_dimensions: Width and height
//   - image_alpha_bands: Band counts with an optional highlighted preview
//
// Color analysis:
//   - image_color_match: Pixels matching a color within a tolerance
//   - image_dominant_colors: Palette of the image or of one band
//   - image_sample_color: Color and band at a pixel
//
// Layer and shape previews:
//   - image_gradient: Render a gradient layer
//   - image_shape_mask: Render a crop shape mask
//
// Editing:
//   - image_fill: Run a fill job, inline or from a TOML/YAML/JSON file
//   - image_trim: Crop to the non-transparent or color-matched bounding box
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Source images,
// textures and custom shapes are cached by path and reused across tool calls
// for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// Fill jobs degrade instead of failing: a bad color or a missing texture
// skips that step and is reported in the result's warnings, which are also
// logged.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
