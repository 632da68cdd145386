package session

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog"

	"github.com/janhq/camus/internal/utils/platformerrors"
)

// Service resolves client session ids to internal session ids.
type Service interface {
	// Resolve finds or creates the session row for clientSessionID.
	Resolve(ctx context.Context, clientSessionID string) (*Session, error)
	// Lookup returns the session row without creating it; found is false when absent.
	Lookup(ctx context.Context, clientSessionID string) (s *Session, found bool, err error)
}

type service struct {
	repo  Repository
	cache *lru.Cache
	log   zerolog.Logger
}

// NewService creates the session resolver. cacheSize bounds the number of
// client ids kept in memory; the mapping is immutable once created.
func NewService(repo Repository, cacheSize int, log zerolog.Logger) (Service, error) {
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &service{
		repo:  repo,
		cache: cache,
		log:   log.With().Str("component", "session-service").Logger(),
	}, nil
}

func (s *service) Resolve(ctx context.Context, clientSessionID string) (*Session, error) {
	clientSessionID = strings.TrimSpace(clientSessionID)
	if clientSessionID == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"sessionId is required", nil, "0f3c7e0e-58f1-4b43-9a8e-5d2b0c7e9a11")
	}

	if cached, ok := s.fromCache(clientSessionID); ok {
		return cached, nil
	}

	sess, err := s.repo.FindOrCreate(ctx, clientSessionID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to resolve session")
	}

	s.cache.Add(clientSessionID, sess)
	return sess, nil
}

func (s *service) Lookup(ctx context.Context, clientSessionID string) (*Session, bool, error) {
	clientSessionID = strings.TrimSpace(clientSessionID)
	if clientSessionID == "" {
		return nil, false, nil
	}

	if cached, ok := s.fromCache(clientSessionID); ok {
		return cached, true, nil
	}

	sess, err := s.repo.FindByClientID(ctx, clientSessionID)
	if err != nil {
		if platformerrors.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up session")
	}

	s.cache.Add(clientSessionID, sess)
	return sess, true, nil
}

func (s *service) fromCache(clientSessionID string) (*Session, bool) {
	value, ok := s.cache.Get(clientSessionID)
	if !ok {
		return nil, false
	}
	sess, ok := value.(*Session)
	return sess, ok
}
