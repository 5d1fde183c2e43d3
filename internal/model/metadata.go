package model

// Attribute records one chosen trait in ERC-721 metadata form.
//
// TraitType is the layer name (e.g. "Background") and Value the base name
// of the asset file chosen for it (e.g. "blue"). The JSON field names
// follow the metadata convention marketplaces index on.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// NFTMetadata is the JSON sidecar written next to every generated image.
//
// Image is either a bare file name ("7.png") when no remote storage is
// configured, or a fully qualified URL when it is, never both. The choice
// is made once when the metadata is assembled and the record is immutable
// after it is written.
//
// Example (local mode):
//
//	{
//	    "name": "Voyagers #7",
//	    "description": "Procedurally generated voyagers.",
//	    "image": "7.png",
//	    "attributes": [
//	        {"trait_type": "Background", "value": "blue"},
//	        {"trait_type": "Subject", "value": "dog"}
//	    ],
//	    "timestamp": "2024-03-01T12:00:00Z"
//	}
type NFTMetadata struct {
	// Name is the token display name, "<collection> #<id>".
	Name string `json:"name"`

	// Description is the collection description.
	Description string `json:"description"`

	// Image is the bare image file name or its public URL.
	Image string `json:"image"`

	// Attributes lists the chosen trait per contributing layer, in layer
	// order. Layers that contributed no selection are absent.
	Attributes []Attribute `json:"attributes"`

	// Timestamp is the generation time in RFC 3339 UTC form; it matches
	// the timestamp rendered onto the image.
	Timestamp string `json:"timestamp"`
}
