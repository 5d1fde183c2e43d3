package indexer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/machinebox/graphql"

	"github.com/SaeeDawod/gen-nft-app/internal/model"
)

// DefaultTransferLimit bounds transfer queries that pass no explicit limit.
const DefaultTransferLimit = 25

// transfersQuery pulls the most recent transfer events. Entity ids follow
// the indexer's "<txHash>-<logIndex>" convention; tokenId and timestamp
// arrive as decimal strings.
const transfersQuery = `
query ($first: Int!) {
  transfers(first: $first, orderBy: timestamp, orderDirection: desc) {
    id
    from { id }
    to { id }
    tokenId
    timestamp
  }
}`

type rawAccount struct {
	ID string `json:"id"`
}

type rawTransfer struct {
	ID        string     `json:"id"`
	From      rawAccount `json:"from"`
	To        rawAccount `json:"to"`
	TokenID   string     `json:"tokenId"`
	Timestamp string     `json:"timestamp"`
}

// Client queries the GraphQL indexing middleware for on-chain history.
type Client struct {
	gql *graphql.Client
}

// NewClient creates a client for the given GraphQL endpoint.
func NewClient(endpoint string) *Client {
	return &Client{gql: graphql.NewClient(endpoint)}
}

// Transfers returns the most recent transfers, newest first.
// A limit of zero or less falls back to DefaultTransferLimit.
func (c *Client) Transfers(ctx context.Context, limit int) ([]model.Transfer, error) {
	if limit <= 0 {
		limit = DefaultTransferLimit
	}

	req := graphql.NewRequest(transfersQuery)
	req.Var("first", limit)

	var resp struct {
		Transfers []rawTransfer `json:"transfers"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("indexer: transfers query: %w", err)
	}

	transfers := make([]model.Transfer, 0, len(resp.Transfers))
	for _, raw := range resp.Transfers {
		transfer, err := raw.toModel()
		if err != nil {
			return nil, fmt.Errorf("indexer: %w", err)
		}
		transfers = append(transfers, transfer)
	}
	return transfers, nil
}

func (r rawTransfer) toModel() (model.Transfer, error) {
	tokenID, err := strconv.ParseUint(r.TokenID, 10, 64)
	if err != nil {
		return model.Transfer{}, fmt.Errorf("parsing token id %q: %w", r.TokenID, err)
	}

	seconds, err := strconv.ParseInt(r.Timestamp, 10, 64)
	if err != nil {
		return model.Transfer{}, fmt.Errorf("parsing timestamp %q: %w", r.Timestamp, err)
	}

	// The entity id is "<txHash>-<logIndex>"; older deployments used the
	// bare hash.
	txHash, _, _ := strings.Cut(r.ID, "-")

	return model.Transfer{
		TxHash:    txHash,
		From:      r.From.ID,
		To:        r.To.ID,
		TokenID:   tokenID,
		Timestamp: time.Unix(seconds, 0).UTC(),
	}, nil
}
