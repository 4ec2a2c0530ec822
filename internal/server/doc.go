// Package server implements the MCP (Model Context Protocol) server for image
// to SVG conversion.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses and notifications on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Load an image and report its metadata
//   - image_to_svg: Threshold, trace, simplify and serialize an image as SVG
//   - image_threshold_preview: Render the binary mask for a threshold as PNG
//   - svg_save: Write a converted document to disk
//
// Omitted conversion arguments fall back to the server configuration
// (see package config). An explicit 0 is always honoured: threshold 0 traces
// only pure black, simplification 0 keeps every traced point, and
// max_dimension 0 converts at full size.
//
// # Progress
//
// Tracing a large image is CPU-bound and runs to completion once started.
// Clients that pass _meta.progressToken on tools/call receive a
// notifications/progress message before work begins and another when it
// ends.
//
// # State
//
// Decoded images are cached by path, and the most recent converted
// documents are kept by ID so svg_save can persist them later. The
// conversion itself keeps no state between calls.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
package server
