// Package ioutils provides file system utilities shared by the generation
// pipeline.
//
// This package contains functions for:
//   - File writing
//   - Filename sanitization for cross-platform compatibility
//   - Directory creation
//
// # File Operations
//
//	// Write data to file
//	err := ioutils.WriteFile(ctx, "/output/metadata/7.json", data)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/output/images")
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from filenames:
//
//	safe := ioutils.SanitizeFileName("Layer: 1/2") // Returns "Layer_ 1_2"
package ioutils
