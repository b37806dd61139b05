package session

import (
	"errors"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/google/uuid"

	"github.com/vaultpass/passgen/internal/clipboard"
	"github.com/vaultpass/passgen/internal/generator"
	"github.com/vaultpass/passgen/internal/metrics"
	"github.com/vaultpass/passgen/internal/notify"
	"github.com/vaultpass/passgen/internal/service"
)

var (
	ErrSessionNotFound = errors.New("session not found or expired")
	ErrStoreFull       = errors.New("session store is full")
)

// Session is one browser's generator.
type Session struct {
	ID            string
	ExpiresAt     time.Time
	Generator     *service.GeneratorService
	Notifications *notify.Recorder
}

// Options configures a Store.
type Options struct {
	TTL         time.Duration
	MaxSessions int64
	Source      generator.Source
	Clipboard   clipboard.Clipboard
}

// Store keeps sessions in memory until their TTL elapses or they are evicted.
type Store struct {
	cache *ristretto.Cache[string, *Session]
	opts  Options
}

// NewStore creates a Store. Zero TTL and MaxSessions default to 30 minutes and 10000.
func NewStore(opts Options) (*Store, error) {
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = 10000
	}
	if opts.Clipboard == nil {
		opts.Clipboard = &clipboard.Memory{}
	}

	c, err := ristretto.NewCache(&ristretto.Config[string, *Session]{
		NumCounters:        opts.MaxSessions * 10,
		MaxCost:            opts.MaxSessions, // each session costs 1
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}

	return &Store{cache: c, opts: opts}, nil
}

// TTL returns the lifetime of new sessions.
func (s *Store) TTL() time.Duration {
	return s.opts.TTL
}

// Create starts a session with a fresh generator in its default configuration.
func (s *Store) Create() (*Session, error) {
	rec := notify.NewRecorder()
	sess := &Session{
		ID:            uuid.NewString(),
		ExpiresAt:     time.Now().Add(s.opts.TTL),
		Generator:     service.NewGeneratorService(s.opts.Source, s.opts.Clipboard, rec),
		Notifications: rec,
	}

	if !s.cache.SetWithTTL(sess.ID, sess, 1, s.opts.TTL) {
		return nil, ErrStoreFull
	}
	// Sets are buffered; make the session visible before handing out its token.
	s.cache.Wait()

	metrics.SessionsCreated.Inc()
	return sess, nil
}

// Get returns a live session.
func (s *Store) Get(id string) (*Session, error) {
	sess, ok := s.cache.Get(id)
	if !ok || sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Delete removes a session; unknown IDs are ignored.
func (s *Store) Delete(id string) {
	s.cache.Del(id)
}

// Close stops the cache's background goroutines.
func (s *Store) Close() {
	s.cache.Close()
}
