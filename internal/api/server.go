package api

import (
	"sync"

	"github.com/SaeeDawod/gen-nft-app/internal/config"
	"github.com/SaeeDawod/gen-nft-app/internal/indexer"
	"github.com/SaeeDawod/gen-nft-app/internal/mint"
)

// Server holds the pipeline pieces the REST handlers work with.
type Server struct {
	settings *config.Settings
	manager  *mint.Manager
	indexer  *indexer.Client

	// genMu serializes token id assignment; without it concurrent
	// requests can pick the same next id and overwrite each other's
	// output files.
	genMu sync.Mutex
}

// NewServer creates the handler state. The indexer client is only
// constructed when an indexer URL is configured.
func NewServer(settings *config.Settings, manager *mint.Manager) *Server {
	s := &Server{
		settings: settings,
		manager:  manager,
	}
	if settings.IndexerURL != "" {
		s.indexer = indexer.NewClient(settings.IndexerURL)
	}
	return s
}
