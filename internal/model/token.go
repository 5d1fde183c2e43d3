package model

import (
	"fmt"
	"path/filepath"
)

// Token identifies a single generated artifact and the on-disk locations
// of its image/metadata pair.
//
// The token identifier is assigned externally, by a total-supply query
// against the contract or by scanning the output directory, and is never
// invented here. Paths are computed once at construction from the
// collection's output layout.
//
// Example:
//
//	token := model.NewToken(collection, 7)
//	// token.ImagePath    = "build/images/7.png"
//	// token.MetadataPath = "build/metadata/7.json"
type Token struct {
	// ID is the externally assigned token identifier.
	ID uint64

	// ImagePath is the local path of the composited PNG.
	ImagePath string

	// MetadataPath is the local path of the JSON metadata sidecar.
	MetadataPath string
}

// NewToken creates a Token with paths computed from the collection layout.
func NewToken(c *Collection, id uint64) *Token {
	return &Token{
		ID:           id,
		ImagePath:    filepath.Join(c.ImagesDir(), fmt.Sprintf("%d.png", id)),
		MetadataPath: filepath.Join(c.MetadataDir(), fmt.Sprintf("%d.json", id)),
	}
}

// ImageFileName returns the bare image file name, e.g. "7.png".
func (t *Token) ImageFileName() string {
	return filepath.Base(t.ImagePath)
}

// MetadataFileName returns the bare metadata file name, e.g. "7.json".
func (t *Token) MetadataFileName() string {
	return filepath.Base(t.MetadataPath)
}
