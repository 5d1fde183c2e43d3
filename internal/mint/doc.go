// Package mint coordinates the full token pipeline: numbering, on-chain
// minting, image generation, and uploads to object storage.
//
// # Minting One Token
//
//	manager, err := mint.NewManager(settings, func(e generator.ProgressEvent) {
//	    fmt.Println(e.Message)
//	})
//	recipient, _ := contract.ParseAddress("0x1234...")
//	result, err := manager.MintAndGenerate(ctx, recipient)
//	// result.TxHash, result.Token.ImagePath, result.ImageURL
//
// # Local Batch Generation
//
// Without a contract service the Manager works fully offline, numbering
// tokens from the files already present:
//
//	next, _ := manager.NextTokenID(ctx)
//	generated, err := manager.GenerateBatch(ctx, next, 100)
//
// Batch generation runs with bounded concurrency; individual failures
// are reported through the progress callback and skipped.
package mint
