package generator

import (
	"fmt"
	"strings"

	"github.com/SaeeDawod/gen-nft-app/internal/model"
)

// BuildMetadata assembles the metadata record for a token.
//
// The name is "<collection> #<id>", the description comes from the
// collection, and the attributes preserve selection order. The image
// field is a bare "<id>.png" in local-only mode, or a fully qualified
// URL when an image base URL is set, never both. The decision is made
// here, once per call, and the record is not mutated after writing.
func (g *Generator) BuildMetadata(tokenID uint64, attrs []LayerAttribute, timestamp string) *model.NFTMetadata {
	imageRef := fmt.Sprintf("%d.png", tokenID)
	if g.imageBaseURL != "" {
		imageRef = fmt.Sprintf("%s/%d.png", strings.TrimSuffix(g.imageBaseURL, "/"), tokenID)
	}

	meta := &model.NFTMetadata{
		Name:        g.collection.TokenName(tokenID),
		Description: g.collection.Description,
		Image:       imageRef,
		Attributes:  make([]model.Attribute, 0, len(attrs)),
		Timestamp:   timestamp,
	}
	for _, attr := range attrs {
		meta.Attributes = append(meta.Attributes, model.Attribute{
			TraitType: attr.Layer,
			Value:     attr.Trait,
		})
	}

	return meta
}
