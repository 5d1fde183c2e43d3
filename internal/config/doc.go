// Package config provides configuration management for the NFT generator.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Environment fallback for secrets
//   - Conversion to Collection and LayerConfig for other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// 1024x1024 canvas, output/ directory
//	// Background and Subject layers under assets/layers/
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// Secrets left empty in the file fall back to the CONTRACT_SERVICE_TOKEN,
// STORAGE_ACCESS_KEY and STORAGE_SECRET_KEY environment variables.
//
// # Saving Settings
//
//	settings.OutputPath = "/data/collections/punkz"
//	err := settings.Save("/path/to/config.json")
//
// # Configuration Options
//
// Settings includes options for:
//   - Collection name, description and canvas size
//   - Layer directories and required flags
//   - Concurrent generation limits and retry behavior
//   - Smart contract service endpoint and token
//   - GraphQL indexer endpoint
//   - S3-compatible object storage
//   - API server address and admin token
package config
