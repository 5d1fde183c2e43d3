// Package model defines the core data structures used throughout
// the NFT generation application.
//
// # Collection
//
// Collection describes the project being generated: its name, canvas
// dimensions and where output files land:
//
//	coll := &model.Collection{
//	    Name:      "Punkz",
//	    Width:     1024,
//	    Height:    1024,
//	    OutputDir: "./output",
//	}
//	fmt.Println(coll.ImagesDir())   // Where token images are written
//	fmt.Println(coll.TokenName(7))  // "Punkz #7"
//
// # Token
//
// Token represents a single numbered item of the collection with its
// computed output paths:
//
//	token := model.NewToken(coll, 7)
//	fmt.Println(token.ImagePath)    // output/images/7.png
//	fmt.Println(token.MetadataPath) // output/metadata/7.json
//
// # NFTMetadata
//
// NFTMetadata is the ERC-721 metadata document written next to each
// generated image and served by marketplaces:
//
//	meta := &model.NFTMetadata{
//	    Name:  coll.TokenName(7),
//	    Image: "7.png",
//	    Attributes: []model.Attribute{
//	        {TraitType: "Background", Value: "blue"},
//	    },
//	}
//
// # Transfer
//
// Transfer is one indexed on-chain transfer event of a token, with
// helpers for abbreviated display of the addresses involved.
package model
