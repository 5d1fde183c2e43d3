// Package generator implements the procedural image pipeline: layer
// resolution, uniform trait selection, canvas compositing with a timestamp
// overlay, and metadata assembly.
//
// # Generating a Token
//
//	coll := &model.Collection{Name: "Punkz", Width: 1024, Height: 1024, OutputDir: "output"}
//	layers := []generator.LayerConfig{
//	    {Name: "Background", Dir: "assets/layers/background", Required: true},
//	    {Name: "Subject", Dir: "assets/layers/subject", Required: true},
//	}
//
//	gen := generator.New(coll, layers, func(e generator.ProgressEvent) {
//	    fmt.Println(e.Message)
//	})
//
//	result, err := gen.Generate(ctx, 7)
//	// output/images/7.png and output/metadata/7.json now exist
//	// result.Metadata.Attributes records the chosen trait per layer
//
// # Layer Semantics
//
// Each layer names a directory of candidate PNG files. One candidate is
// chosen uniformly per generation. A required layer with no candidates
// aborts the call with ErrMissingLayer before anything is written; an
// optional one is omitted. Directories are rescanned on every call, so
// assets can be swapped without restarting.
//
// # Determinism
//
// Trait selection draws from an injectable random source:
//
//	gen.SetRand(rand.New(rand.NewSource(42)))
//
// # Share Cards
//
// ShareCard renders a promotional card for a generated token, with a QR
// code pointing at the token's metadata:
//
//	card, err := gen.ShareCard(ctx, 7)
//	err = imaging.Save(card, "output/cards/7.png")
package generator
