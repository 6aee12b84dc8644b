// Package server implements the MCP (Model Context Protocol) server for
// point-feature detection tools.
//
// This package provides a JSON-RPC 2.0 server that exposes corner/keypoint
// detection through the MCP protocol. It's designed to work with Claude and
// other MCP-compatible clients, enabling AI systems to locate and inspect
// visual features with pixel precision.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//
// Response Maps:
//   - image_corner_response: Compute response statistics for thresholding
//
// Feature Detection:
//   - image_detect_features: Dense local-maximum scan
//   - image_detect_features_sparse: Candidate-driven local-maximum scan
//
// Feature Inspection:
//   - image_feature_patch: Extract the neighborhood around a feature
//   - image_mark_features: Render detected features onto the image
//
// # Detection Pipeline
//
// Every detection tool follows the same per-call pipeline: grayscale
// conversion with optional blur, response-map computation (package
// response), threshold resolution (absolute or relative to the map
// maximum), then local-maximum extraction (package extract). Each call
// builds its own extractor, so concurrent tool calls never share mutable
// detection state; only the image cache is shared.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are
// cached by path and reused across multiple tool calls, avoiding redundant
// disk I/O. The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
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
