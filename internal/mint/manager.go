package mint

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/SaeeDawod/gen-nft-app/internal/config"
	"github.com/SaeeDawod/gen-nft-app/internal/contract"
	"github.com/SaeeDawod/gen-nft-app/internal/generator"
	"github.com/SaeeDawod/gen-nft-app/internal/model"
	"github.com/SaeeDawod/gen-nft-app/internal/storage"
)

// Manager orchestrates the pipeline around the generator: token
// numbering, on-chain minting, batch generation and uploads.
//
// The contract client and uploader are optional; without a configured
// contract service the Manager numbers tokens from the local output
// directory, and without storage it skips uploads.
type Manager struct {
	settings  *config.Settings
	generator *generator.Generator
	contract  *contract.Client
	uploader  *storage.Uploader

	generatedCount int32
	uploadedCount  int32
	totalCount     int32

	onProgress generator.ProgressFunc
}

// MintResult describes one successfully minted and generated token.
type MintResult struct {
	// Token carries the id and local file paths.
	Token *model.Token

	// TxHash is the mint transaction hash.
	TxHash string

	// Metadata is the generated metadata record.
	Metadata *model.NFTMetadata

	// ImageURL is the public image URL, empty when storage is not
	// configured or the upload failed.
	ImageURL string
}

// NewManager wires the pipeline from settings.
//
// Settings are validated; the contract client and uploader are only
// constructed when their sections are configured. With storage
// configured, generated metadata references public image URLs.
func NewManager(settings *config.Settings, onProgress generator.ProgressFunc) (*Manager, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	gen := generator.New(settings.ToCollection(), settings.ToLayerConfigs(), onProgress)

	m := &Manager{
		settings:   settings,
		generator:  gen,
		onProgress: onProgress,
	}

	if settings.ContractConfigured() {
		addr, err := contract.ParseAddress(settings.ContractAddress)
		if err != nil {
			return nil, err
		}
		m.contract = contract.NewClient(settings.ContractServiceURL, addr, settings.ContractServiceToken)
	}

	if settings.StorageConfigured() {
		uploader, err := storage.NewUploader(settings)
		if err != nil {
			return nil, err
		}
		m.uploader = uploader
		gen.SetImageBaseURL(uploader.ImageBaseURL())
		gen.SetMetadataBaseURL(uploader.MetadataBaseURL())
	}

	return m, nil
}

// Generator returns the underlying generator.
func (m *Manager) Generator() *generator.Generator {
	return m.generator
}

// Contract returns the contract client, or nil when not configured.
func (m *Manager) Contract() *contract.Client {
	return m.contract
}

// NextTokenID returns the id the next generated token should get.
//
// With a contract service configured this is the on-chain total supply
// plus one. Otherwise the images directory is scanned for the highest
// numbered file; an empty or absent directory starts at 1.
func (m *Manager) NextTokenID(ctx context.Context) (uint64, error) {
	if m.contract != nil {
		supply, err := m.totalSupplyWithRetry(ctx)
		if err != nil {
			return 0, err
		}
		return supply + 1, nil
	}
	return m.nextLocalTokenID()
}

// ExistingTokenIDs returns the ids of all generated images, ascending.
func (m *Manager) ExistingTokenIDs() ([]uint64, error) {
	entries, err := os.ReadDir(m.generator.Collection().ImagesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var ids []uint64
	for _, entry := range entries {
		if id, ok := tokenIDFromFileName(entry.Name()); ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// MintAndGenerate mints one token to the recipient, then generates and
// optionally uploads its image/metadata pair.
//
// The id of the new token is the post-mint total supply. Contract calls
// retry with an exponential cooldown; generation does not. An upload
// failure is reported as a warning and leaves ImageURL empty, since the
// mint and the local files already succeeded.
func (m *Manager) MintAndGenerate(ctx context.Context, to common.Address) (*MintResult, error) {
	if m.contract == nil {
		return nil, errors.New("contract service is not configured")
	}

	atomic.StoreInt32(&m.generatedCount, 0)
	atomic.StoreInt32(&m.uploadedCount, 0)
	atomic.StoreInt32(&m.totalCount, 1)

	m.progress(generator.ProgressEvent{Message: fmt.Sprintf("Minting to %s", to.Hex()), Level: generator.LevelInfo})

	var txHash string
	var err error
	for tries := 0; tries < m.settings.RequestMaxRetries; tries++ {
		txHash, err = m.contract.Mint(ctx, to)
		if err == nil {
			break
		}
		m.progress(generator.ProgressEvent{Message: fmt.Sprintf("Retry %d/%d for mint: %v", tries+1, m.settings.RequestMaxRetries, err), Level: generator.LevelWarning})
		m.waitForRetry(ctx, tries)
	}
	if err != nil {
		return nil, err
	}

	supply, err := m.totalSupplyWithRetry(ctx)
	if err != nil {
		return nil, err
	}
	tokenID := supply
	m.progress(generator.ProgressEvent{Message: fmt.Sprintf("Minted token #%d (tx %s)", tokenID, txHash), Level: generator.LevelInfo})

	result, err := m.generator.Generate(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	atomic.AddInt32(&m.generatedCount, 1)

	mintResult := &MintResult{
		Token:    result.Token,
		TxHash:   txHash,
		Metadata: result.Metadata,
	}

	if m.uploader != nil {
		if err := m.uploader.EnsureBucket(ctx); err != nil {
			m.progress(generator.ProgressEvent{Message: fmt.Sprintf("Upload skipped: %v", err), Level: generator.LevelWarning})
			return mintResult, nil
		}
		imageURL, _, err := m.uploader.UploadToken(ctx, result.Token)
		if err != nil {
			m.progress(generator.ProgressEvent{Message: fmt.Sprintf("Upload failed, files kept locally: %v", err), Level: generator.LevelWarning})
			return mintResult, nil
		}
		atomic.AddInt32(&m.uploadedCount, 1)
		mintResult.ImageURL = imageURL
	}

	return mintResult, nil
}

// GenerateBatch generates count tokens starting at startID, with bounded
// concurrency. Per-token failures are reported as error events and do not
// abort the batch. Returns how many tokens were generated.
func (m *Manager) GenerateBatch(ctx context.Context, startID uint64, count int) (int, error) {
	if count < 1 {
		return 0, fmt.Errorf("count must be at least 1, got %d", count)
	}
	if count > math.MaxInt32 {
		return 0, fmt.Errorf("count must be at most %d, got %d", math.MaxInt32, count)
	}

	atomic.StoreInt32(&m.generatedCount, 0)
	atomic.StoreInt32(&m.uploadedCount, 0)
	atomic.StoreInt32(&m.totalCount, int32(count))

	if m.uploader != nil {
		if err := m.uploader.EnsureBucket(ctx); err != nil {
			return 0, err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.MaxConcurrentGenerations)

	for i := 0; i < count; i++ {
		tokenID := startID + uint64(i)
		g.Go(func() error {
			result, err := m.generator.Generate(ctx, tokenID)
			if err != nil {
				m.progress(generator.ProgressEvent{Message: fmt.Sprintf("Error generating token #%d: %v", tokenID, err), Level: generator.LevelError})
				return nil // Continue with other tokens
			}
			atomic.AddInt32(&m.generatedCount, 1)

			if m.uploader != nil {
				if _, _, err := m.uploader.UploadToken(ctx, result.Token); err != nil {
					m.progress(generator.ProgressEvent{Message: fmt.Sprintf("Error uploading token #%d: %v", tokenID, err), Level: generator.LevelWarning})
				} else {
					atomic.AddInt32(&m.uploadedCount, 1)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(atomic.LoadInt32(&m.generatedCount)), err
	}

	generated := int(atomic.LoadInt32(&m.generatedCount))
	if generated == count {
		m.progress(generator.ProgressEvent{Message: fmt.Sprintf("Generated %d tokens", generated), Level: generator.LevelSuccess})
	} else {
		m.progress(generator.ProgressEvent{Message: fmt.Sprintf("Generated %d of %d tokens, some failed", generated, count), Level: generator.LevelWarning})
	}
	return generated, nil
}

// UploadExisting uploads already generated pairs for the given ids.
// Per-token failures are reported and skipped.
func (m *Manager) UploadExisting(ctx context.Context, ids []uint64) error {
	if m.uploader == nil {
		return errors.New("storage is not configured")
	}
	if err := m.uploader.EnsureBucket(ctx); err != nil {
		return err
	}

	coll := m.generator.Collection()
	var uploaded int
	for _, id := range ids {
		token := model.NewToken(coll, id)
		imageURL, _, err := m.uploader.UploadToken(ctx, token)
		if err != nil {
			m.progress(generator.ProgressEvent{Message: fmt.Sprintf("Error uploading token #%d: %v", id, err), Level: generator.LevelError})
			continue
		}
		uploaded++
		atomic.AddInt32(&m.uploadedCount, 1)
		m.progress(generator.ProgressEvent{Message: fmt.Sprintf("Uploaded %s", imageURL), Level: generator.LevelVerbose})
	}

	m.progress(generator.ProgressEvent{Message: fmt.Sprintf("Uploaded %d of %d tokens", uploaded, len(ids)), Level: generator.LevelSuccess})
	return nil
}

// GetProgress returns current pipeline progress.
func (m *Manager) GetProgress() (generated, uploaded, total int32) {
	return atomic.LoadInt32(&m.generatedCount),
		atomic.LoadInt32(&m.uploadedCount),
		atomic.LoadInt32(&m.totalCount)
}

func (m *Manager) nextLocalTokenID() (uint64, error) {
	entries, err := os.ReadDir(m.generator.Collection().ImagesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return 1, nil
		}
		return 0, err
	}

	var highest uint64
	for _, entry := range entries {
		if id, ok := tokenIDFromFileName(entry.Name()); ok && id > highest {
			highest = id
		}
	}
	return highest + 1, nil
}

func (m *Manager) totalSupplyWithRetry(ctx context.Context) (uint64, error) {
	var supply uint64
	var err error
	for tries := 0; tries < m.settings.RequestMaxRetries; tries++ {
		supply, err = m.contract.TotalSupply(ctx)
		if err == nil {
			break
		}
		m.waitForRetry(ctx, tries)
	}
	return supply, err
}

// tokenIDFromFileName extracts the token id from an "<id>.png" file name.
func tokenIDFromFileName(name string) (uint64, bool) {
	if !strings.HasSuffix(name, ".png") {
		return 0, false
	}
	id, err := strconv.ParseUint(strings.TrimSuffix(name, ".png"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (m *Manager) waitForRetry(ctx context.Context, tries int) {
	cooldown := m.settings.RequestRetryCooldown * math.Pow(m.settings.RequestRetryExponent, float64(tries))
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
	}
}

func (m *Manager) progress(event generator.ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
