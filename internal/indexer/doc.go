// Package indexer reads on-chain history from the GraphQL indexing
// middleware.
//
// The indexer tracks Transfer events of the collection's contract; mints
// appear as transfers from the zero address.
//
//	client := indexer.NewClient(settings.IndexerURL)
//	transfers, err := client.Transfers(ctx, 25)
//	for _, tr := range transfers {
//	    fmt.Printf("#%d %s -> %s\n", tr.TokenID, tr.ShortFrom(), tr.ShortTo())
//	}
package indexer
