package catalog

import (
	"context"
	"net/http"
	"sync"
)

// Service fetches the catalog lazily and holds it for the process lifetime.
// The remote publishes no invalidation signal, so a restart is the only way
// the catalog refreshes. A failed load is not cached; the next call retries.
type Service struct {
	specURL string
	client  *http.Client
	logger  func(format string, args ...interface{})

	mu  sync.RWMutex
	cat *Catalog
}

// NewService creates a lazy catalog service for the given spec URL.
func NewService(specURL string, client *http.Client, logger func(format string, args ...interface{})) *Service {
	if logger == nil {
		logger = func(string, ...interface{}) {}
	}
	return &Service{specURL: specURL, client: client, logger: logger}
}

// Catalog returns the loaded catalog, fetching it on first use.
func (s *Service) Catalog(ctx context.Context) (*Catalog, error) {
	s.mu.RLock()
	cat := s.cat
	s.mu.RUnlock()
	if cat != nil {
		return cat, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cat != nil {
		return s.cat, nil
	}

	s.logger("loading OpenAPI spec from %s", s.specURL)
	spec, err := LoadSpec(ctx, s.client, s.specURL)
	if err != nil {
		return nil, err
	}
	s.cat = New(Parse(spec))
	s.logger("catalog loaded with %d endpoints", len(s.cat.Endpoints))
	return s.cat, nil
}

// Lookup loads the catalog if needed and resolves method+path.
func (s *Service) Lookup(ctx context.Context, method, path string) (Endpoint, error) {
	cat, err := s.Catalog(ctx)
	if err != nil {
		return Endpoint{}, err
	}
	return cat.Lookup(method, path)
}
