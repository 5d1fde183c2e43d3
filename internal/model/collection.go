package model

import (
	"fmt"
	"path/filepath"
)

// Collection describes the NFT collection being generated.
//
// Collection carries the display metadata shared by every token (name,
// description), the canvas dimensions, and the output root under which
// generated artifacts are written. All file layout is derived from
// OutputDir:
//
//	<OutputDir>/images/<id>.png      composited token art
//	<OutputDir>/metadata/<id>.json   ERC-721 metadata sidecar
//	<OutputDir>/cards/<id>.png       share cards (optional)
//
// Example:
//
//	c := &model.Collection{
//	    Name:      "Voyagers",
//	    Width:     1024,
//	    Height:    1024,
//	    OutputDir: "build",
//	}
//	fmt.Println(c.ImagesDir())    // build/images
//	fmt.Println(c.TokenName(7))   // Voyagers #7
type Collection struct {
	// Name is the collection display name, used as the prefix of every
	// token name.
	Name string

	// Description is copied into each token's metadata.
	Description string

	// Width and Height are the canvas dimensions in pixels.
	Width  int
	Height int

	// OutputDir is the root directory for generated files.
	OutputDir string
}

// ImagesDir returns the directory that holds composited token images.
func (c *Collection) ImagesDir() string {
	return filepath.Join(c.OutputDir, "images")
}

// MetadataDir returns the directory that holds metadata sidecar files.
func (c *Collection) MetadataDir() string {
	return filepath.Join(c.OutputDir, "metadata")
}

// CardsDir returns the directory that holds rendered share cards.
func (c *Collection) CardsDir() string {
	return filepath.Join(c.OutputDir, "cards")
}

// TokenName returns the display name for a token, e.g. "Voyagers #7".
func (c *Collection) TokenName(id uint64) string {
	return fmt.Sprintf("%s #%d", c.Name, id)
}
