package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/SaeeDawod/gen-nft-app/internal/generator"
	ioutils "github.com/SaeeDawod/gen-nft-app/internal/io"
	"github.com/SaeeDawod/gen-nft-app/internal/model"
)

// Environment variables consulted for secrets left empty in the config file.
const (
	EnvContractServiceToken = "CONTRACT_SERVICE_TOKEN"
	EnvStorageAccessKey     = "STORAGE_ACCESS_KEY"
	EnvStorageSecretKey     = "STORAGE_SECRET_KEY"
)

// LayerSettings describes one image layer of the collection.
type LayerSettings struct {
	// Name is the layer name, recorded as the attribute trait_type.
	Name string `json:"name"`

	// Dir is the directory holding the layer's PNG candidates. When empty
	// it is derived from the layer name under assets/layers/.
	Dir string `json:"dir"`

	// Required marks layers that must contribute a trait to every token.
	Required bool `json:"required"`
}

// Settings holds all configuration options.
type Settings struct {
	// Collection settings
	CollectionName        string          `json:"collection_name"`
	CollectionDescription string          `json:"collection_description"`
	ImageWidth            int             `json:"image_width"`
	ImageHeight           int             `json:"image_height"`
	OutputPath            string          `json:"output_path"`
	Layers                []LayerSettings `json:"layers"`

	// Generation settings
	MaxConcurrentGenerations int `json:"max_concurrent_generations"`

	// Retry behavior for contract service calls
	RequestMaxRetries    int     `json:"request_max_retries"`
	RequestRetryCooldown float64 `json:"request_retry_cooldown"`
	RequestRetryExponent float64 `json:"request_retry_exponent"`

	// Smart contract service settings
	ContractServiceURL   string `json:"contract_service_url"`
	ContractAddress      string `json:"contract_address"`
	ContractServiceToken string `json:"contract_service_token"`

	// Indexer settings
	IndexerURL string `json:"indexer_url"`

	// Object storage settings
	StorageEndpoint  string `json:"storage_endpoint"`
	StorageAccessKey string `json:"storage_access_key"`
	StorageSecretKey string `json:"storage_secret_key"`
	StorageBucket    string `json:"storage_bucket"`
	StorageUseSSL    bool   `json:"storage_use_ssl"`
	StoragePublicURL string `json:"storage_public_url"`

	// API server settings
	ServerAddress    string `json:"server_address"`
	ServerAdminToken string `json:"server_admin_token"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		CollectionName:        "My Collection",
		CollectionDescription: "A procedurally generated collection.",
		ImageWidth:            1024,
		ImageHeight:           1024,
		OutputPath:            "output",
		Layers: []LayerSettings{
			{Name: "Background", Dir: filepath.Join("assets", "layers", "background"), Required: true},
			{Name: "Subject", Dir: filepath.Join("assets", "layers", "subject"), Required: true},
		},

		MaxConcurrentGenerations: 4,

		RequestMaxRetries:    7,
		RequestRetryCooldown: 0.2,
		RequestRetryExponent: 4.0,

		StorageUseSSL: true,

		ServerAddress: ":8080",
	}
}

// Load reads settings from a JSON file.
//
// A missing file is not an error; defaults are returned instead. Secrets
// left empty are filled from the environment (CONTRACT_SERVICE_TOKEN,
// STORAGE_ACCESS_KEY, STORAGE_SECRET_KEY).
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			settings.applyEnvFallbacks()
			return settings, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	settings.applyEnvFallbacks()
	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// applyEnvFallbacks fills empty secrets from environment variables so they
// can stay out of the config file.
func (s *Settings) applyEnvFallbacks() {
	if s.ContractServiceToken == "" {
		s.ContractServiceToken = os.Getenv(EnvContractServiceToken)
	}
	if s.StorageAccessKey == "" {
		s.StorageAccessKey = os.Getenv(EnvStorageAccessKey)
	}
	if s.StorageSecretKey == "" {
		s.StorageSecretKey = os.Getenv(EnvStorageSecretKey)
	}
}

// Validate checks the settings for values the pipeline cannot work with.
func (s *Settings) Validate() error {
	if s.ImageWidth <= 0 {
		return fmt.Errorf("image width must be positive, got %d", s.ImageWidth)
	}
	if s.ImageHeight <= 0 {
		return fmt.Errorf("image height must be positive, got %d", s.ImageHeight)
	}
	if len(s.Layers) == 0 {
		return errors.New("at least one layer must be configured")
	}

	seen := make(map[string]bool, len(s.Layers))
	for _, layer := range s.Layers {
		if layer.Name == "" {
			return errors.New("layer name must not be empty")
		}
		if seen[layer.Name] {
			return fmt.Errorf("duplicate layer name %q", layer.Name)
		}
		seen[layer.Name] = true
	}

	if s.MaxConcurrentGenerations < 1 {
		return fmt.Errorf("max concurrent generations must be at least 1, got %d", s.MaxConcurrentGenerations)
	}
	if s.RequestMaxRetries < 1 {
		return fmt.Errorf("request max retries must be at least 1, got %d", s.RequestMaxRetries)
	}

	if s.ContractAddress != "" && !common.IsHexAddress(s.ContractAddress) {
		return fmt.Errorf("invalid contract address %q", s.ContractAddress)
	}

	return nil
}

// ContractConfigured reports whether the contract service can be called.
func (s *Settings) ContractConfigured() bool {
	return s.ContractServiceURL != "" && s.ContractAddress != ""
}

// StorageConfigured reports whether uploads to object storage are possible.
func (s *Settings) StorageConfigured() bool {
	return s.StorageEndpoint != "" && s.StorageBucket != ""
}

// ToCollection converts settings to a model.Collection.
func (s *Settings) ToCollection() *model.Collection {
	return &model.Collection{
		Name:        s.CollectionName,
		Description: s.CollectionDescription,
		Width:       s.ImageWidth,
		Height:      s.ImageHeight,
		OutputDir:   s.OutputPath,
	}
}

// ToLayerConfigs converts the layer settings to generator.LayerConfig values,
// deriving directories for layers that leave Dir empty.
func (s *Settings) ToLayerConfigs() []generator.LayerConfig {
	layers := make([]generator.LayerConfig, 0, len(s.Layers))
	for _, layer := range s.Layers {
		dir := layer.Dir
		if dir == "" {
			name := strings.ToLower(ioutils.SanitizeFileName(layer.Name))
			dir = filepath.Join("assets", "layers", name)
		}
		layers = append(layers, generator.LayerConfig{
			Name:     layer.Name,
			Dir:      dir,
			Required: layer.Required,
		})
	}
	return layers
}
