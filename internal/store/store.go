// Package store keeps the results of every repository the viewer has
// asked for, in front of a Loader that fetches them.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hotolab/exago-app/internal/project"
	"github.com/hotolab/exago-app/internal/results"
	"github.com/shaj13/libcache"
	_ "github.com/shaj13/libcache/lru"
)

// Loader fetches results documents for a repository.
type Loader interface {
	// Load returns the latest known results.
	Load(ctx context.Context, repository string) (*results.Document, error)

	// Refresh asks for a new analysis and returns its results.
	Refresh(ctx context.Context, repository string) (*results.Document, error)

	// IsCached reports whether results are available without running
	// an analysis.
	IsCached(ctx context.Context, repository string) (bool, error)
}

// FetchError is a failure to obtain results from the Loader.
type FetchError struct {
	Repository string
	Op         string
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Repository, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Defaults for the results cache.
const (
	DefaultCacheSize = 128
	DefaultCacheTTL  = 10 * time.Minute
)

// Option configures a Store.
type Option func(*Store)

// WithCache sets the cache capacity and entry lifetime. A zero ttl
// keeps entries until they are evicted.
func WithCache(size int, ttl time.Duration) Option {
	return func(s *Store) {
		s.cacheSize = size
		s.cacheTTL = ttl
	}
}

// WithLogger sets the logger used for cache and fetch events.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Store caches results in an LRU and records a per-repository
// snapshot for the view. It is safe for concurrent use.
type Store struct {
	loader    Loader
	cache     libcache.Cache
	cacheSize int
	cacheTTL  time.Duration
	logger    *log.Logger

	mu       sync.RWMutex
	entities map[string]project.Entity
}

// New returns a Store in front of loader.
func New(loader Loader, opts ...Option) *Store {
	s := &Store{
		loader:    loader,
		cacheSize: DefaultCacheSize,
		cacheTTL:  DefaultCacheTTL,
		logger:    log.Default(),
		entities:  make(map[string]project.Entity),
	}
	for _, opt := range opts {
		opt(s)
	}

	cache := libcache.LRU.New(s.cacheSize)
	if s.cacheTTL > 0 {
		cache.SetTTL(s.cacheTTL)
		cache.RegisterOnExpired(func(key, _ interface{}) {
			cache.Delete(key)
		})
	}
	s.cache = cache
	return s
}

// Load returns cached results for repository, fetching them on a
// miss.
func (s *Store) Load(ctx context.Context, repository string) (*results.Document, error) {
	if doc, ok := s.cached(repository); ok {
		s.logger.Debug("results served from cache", "repository", repository)
		s.settle(repository, doc, nil)
		return doc, nil
	}
	return s.fetch(ctx, "load", repository, s.loader.Load)
}

// Refresh bypasses the cache and replaces its entry on success.
func (s *Store) Refresh(ctx context.Context, repository string) (*results.Document, error) {
	return s.fetch(ctx, "refresh", repository, s.loader.Refresh)
}

// IsCached reports whether results can be served without running an
// analysis, either from this store or from the loader.
func (s *Store) IsCached(ctx context.Context, repository string) (bool, error) {
	if s.cache.Contains(repository) {
		return true, nil
	}
	ok, err := s.loader.IsCached(ctx, repository)
	if err != nil {
		return false, &FetchError{Repository: repository, Op: "cached", Err: err}
	}
	return ok, nil
}

// Preload loads repository only if its results are already cached
// somewhere. It returns whether a document was loaded.
func (s *Store) Preload(ctx context.Context, repository string) (bool, error) {
	ok, err := s.IsCached(ctx, repository)
	if err != nil || !ok {
		return false, err
	}
	if _, err := s.Load(ctx, repository); err != nil {
		return false, err
	}
	return true, nil
}

// Snapshot returns the current entity for repository.
func (s *Store) Snapshot(repository string) project.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entities[repository]; ok {
		return e
	}
	return project.Entity{Name: repository}
}

func (s *Store) cached(repository string) (*results.Document, bool) {
	v, ok := s.cache.Load(repository)
	if !ok {
		return nil, false
	}
	doc, ok := v.(*results.Document)
	return doc, ok
}

type fetchFunc func(ctx context.Context, repository string) (*results.Document, error)

func (s *Store) fetch(ctx context.Context, op, repository string, fn fetchFunc) (*results.Document, error) {
	s.begin(repository)

	start := time.Now()
	doc, err := fn(ctx, repository)
	if err == nil && doc == nil {
		err = errors.New("empty response")
	}
	if err != nil {
		ferr := &FetchError{Repository: repository, Op: op, Err: err}
		s.logger.Warn("fetching results failed", "repository", repository, "op", op, "err", err)
		s.settle(repository, nil, ferr)
		return nil, ferr
	}

	s.logger.Debug("results fetched", "repository", repository, "op", op,
		"elapsed", time.Since(start).Round(time.Millisecond))
	s.cache.Store(repository, doc)
	s.settle(repository, doc, nil)
	return doc, nil
}

// begin marks repository as loading. Previous results stay in the
// snapshot until new ones settle.
func (s *Store) begin(repository string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entities[repository]
	e.Name = repository
	e.Loading = true
	e.Err = nil
	s.entities[repository] = e
}

func (s *Store) settle(repository string, doc *results.Document, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entities[repository]
	e.Name = repository
	e.Loading = false
	e.Err = err
	if doc != nil {
		e.Results = doc
	}
	s.entities[repository] = e
}
