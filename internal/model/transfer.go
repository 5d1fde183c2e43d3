package model

import "time"

// Transfer is one indexed token transfer event, as reported by the GraphQL
// indexing middleware. Mints appear as transfers from the zero address.
type Transfer struct {
	// TxHash is the transaction hash of the transfer.
	TxHash string `json:"tx_hash"`

	// From is the sender address in hex form.
	From string `json:"from"`

	// To is the recipient address in hex form.
	To string `json:"to"`

	// TokenID is the transferred token identifier.
	TokenID uint64 `json:"token_id"`

	// Timestamp is the block timestamp of the transfer.
	Timestamp time.Time `json:"timestamp"`
}

// ZeroAddress is the hex form of the all-zero address; transfers from it
// are mints.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// IsMint reports whether the transfer is a mint.
func (t *Transfer) IsMint() bool {
	return t.From == ZeroAddress
}

// ShortFrom returns an abbreviated sender address for display.
func (t *Transfer) ShortFrom() string { return shortAddress(t.From) }

// ShortTo returns an abbreviated recipient address for display.
func (t *Transfer) ShortTo() string { return shortAddress(t.To) }

// shortAddress abbreviates a hex address to its first and last digits,
// e.g. "0x1234…cdef". Strings too short to abbreviate pass through.
func shortAddress(s string) string {
	if len(s) <= 12 {
		return s
	}
	return s[:6] + "…" + s[len(s)-4:]
}
