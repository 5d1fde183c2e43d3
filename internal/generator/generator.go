package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	ioutils "github.com/SaeeDawod/gen-nft-app/internal/io"
	"github.com/SaeeDawod/gen-nft-app/internal/model"
)

// Generator produces numbered collection items: a composited PNG plus a
// JSON metadata sidecar per token.
//
// A Generator is stateless with respect to token numbering; identifiers
// are assigned by the caller. It is safe for concurrent use with distinct
// token ids. Two concurrent calls with the same id race on the output
// files; avoiding that is the caller's responsibility.
type Generator struct {
	collection      *model.Collection
	layers          []LayerConfig
	imageBaseURL    string
	metadataBaseURL string

	rng   *rand.Rand
	rngMu sync.Mutex

	onProgress ProgressFunc
}

// Result of one generation call.
type Result struct {
	// Token carries the id and the paths of both written files.
	Token *model.Token

	// Metadata is the record written to Token.MetadataPath.
	Metadata *model.NFTMetadata

	// Timestamp is the RFC 3339 generation time drawn onto the image.
	Timestamp string
}

// New creates a Generator for the collection with the given layer order.
//
// The random source is seeded from the current time; use SetRand to pin
// selection outcomes in tests.
func New(collection *model.Collection, layers []LayerConfig, onProgress ProgressFunc) *Generator {
	return &Generator{
		collection: collection,
		layers:     layers,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		onProgress: onProgress,
	}
}

// SetRand replaces the random source used for trait selection.
func (g *Generator) SetRand(rng *rand.Rand) {
	g.rngMu.Lock()
	g.rng = rng
	g.rngMu.Unlock()
}

// SetImageBaseURL sets the base URL written into metadata image fields.
// When empty (the default), metadata references the bare image filename.
func (g *Generator) SetImageBaseURL(base string) {
	g.imageBaseURL = base
}

// SetMetadataBaseURL sets the base URL share-card QR codes point at.
// When empty (the default), cards encode the relative metadata filename.
func (g *Generator) SetMetadataBaseURL(base string) {
	g.metadataBaseURL = base
}

// Collection returns the collection this Generator produces for.
func (g *Generator) Collection() *model.Collection {
	return g.collection
}

// Generate produces the image/metadata pair for one token.
//
// The flow is select → composite → write image → write metadata, with the
// output directories created first. Selection failures (a required layer
// without images) abort before anything is written. A write failure is
// returned as-is with no cleanup of the partner file, so a failed metadata
// write can leave an orphaned image behind; callers may re-run with the
// same id to overwrite both.
func (g *Generator) Generate(ctx context.Context, tokenID uint64) (*Result, error) {
	attrs, err := g.SelectAttributes()
	if err != nil {
		return nil, err
	}

	canvas, timestamp, err := g.Compose(ctx, attrs)
	if err != nil {
		return nil, err
	}

	token := model.NewToken(g.collection, tokenID)

	if err := ioutils.EnsureDir(g.collection.ImagesDir()); err != nil {
		return nil, fmt.Errorf("creating images directory: %w", err)
	}
	if err := ioutils.EnsureDir(g.collection.MetadataDir()); err != nil {
		return nil, fmt.Errorf("creating metadata directory: %w", err)
	}

	if err := imaging.Save(canvas, token.ImagePath); err != nil {
		return nil, fmt.Errorf("writing image %s: %w", token.ImagePath, err)
	}

	meta := g.BuildMetadata(tokenID, attrs, timestamp)
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding metadata: %w", err)
	}
	if err := ioutils.WriteFile(ctx, token.MetadataPath, data); err != nil {
		return nil, fmt.Errorf("writing metadata %s: %w", token.MetadataPath, err)
	}

	g.progress(ProgressEvent{Message: fmt.Sprintf("Generated %s", meta.Name), Level: LevelSuccess})

	return &Result{Token: token, Metadata: meta, Timestamp: timestamp}, nil
}

func (g *Generator) progress(event ProgressEvent) {
	if g.onProgress != nil {
		g.onProgress(event)
	}
}
