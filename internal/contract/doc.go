// Package contract is the REST client for the smart contract service.
//
// The service fronts a deployed ERC-721 contract; every operation is a
// JSON call under /erc-721/<contract-address>. The client covers the
// read used for token numbering (total supply), minting, and the owner
// verbs exposed by the admin screens.
//
//	addr, err := contract.ParseAddress(settings.ContractAddress)
//	client := contract.NewClient(settings.ContractServiceURL, addr, settings.ContractServiceToken)
//
//	supply, err := client.TotalSupply(ctx)
//	txHash, err := client.Mint(ctx, recipient)
//	txHash, err = client.StartPublicSale(ctx)
//
// Failures carry the method, path and response body:
//
//	contract service: POST /erc-721/0x.../mint: HTTP 503: node unavailable
package contract
