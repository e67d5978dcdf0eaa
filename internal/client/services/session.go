// Package services contains the client-side application services. The
// session service owns the two durable tokens and is the TokenStore handed
// to the HTTP client.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/batyok32/shipyuusell-sub001/internal/client/repositories/metadata"
	"github.com/batyok32/shipyuusell-sub001/internal/common"
	"github.com/batyok32/shipyuusell-sub001/internal/dbx"
)

// SessionService persists the access and refresh tokens.
//
// Contract:
//   - Tokens: current tokens, "" when absent. Reads the database once and
//     serves later calls from memory.
//   - SaveTokens: write both tokens atomically. An empty refresh token keeps
//     the stored one.
//   - ClearTokens: remove both tokens.
//
// Safe for concurrent use.
type SessionService interface {
	Tokens(ctx context.Context) (access, refresh string, err error)
	SaveTokens(ctx context.Context, access, refresh string) error
	ClearTokens(ctx context.Context) error
}

type sessionService struct {
	db *sql.DB

	mu      sync.Mutex
	loaded  bool
	access  string
	refresh string
}

func NewSessionService(db *sql.DB) SessionService {
	return &sessionService{db: db}
}

func (s *sessionService) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (s *sessionService) Tokens(ctx context.Context) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.access, s.refresh, nil
	}

	repo := s.getMetadataRepo(s.db)
	access, err := readKey(ctx, repo, common.AccessTokenKey)
	if err != nil {
		return "", "", err
	}
	refresh, err := readKey(ctx, repo, common.RefreshTokenKey)
	if err != nil {
		return "", "", err
	}

	s.access, s.refresh, s.loaded = access, refresh, true
	return access, refresh, nil
}

func (s *sessionService) SaveTokens(ctx context.Context, access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.getMetadataRepo(tx)
		if err := repo.Set(ctx, common.AccessTokenKey, []byte(access)); err != nil {
			return err
		}
		if refresh == "" {
			return nil
		}
		return repo.Set(ctx, common.RefreshTokenKey, []byte(refresh))
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.access = access
	if refresh != "" {
		s.refresh = refresh
	} else if !s.loaded {
		// the stored refresh token was never read; pick it up on next Tokens
		return nil
	}
	s.loaded = true
	return nil
}

func (s *sessionService) ClearTokens(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo := s.getMetadataRepo(s.db)
	if err := repo.Delete(ctx, common.AccessTokenKey, common.RefreshTokenKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.access, s.refresh, s.loaded = "", "", true
	return nil
}

func readKey(ctx context.Context, repo metadata.Repository, key string) (string, error) {
	v, err := repo.Get(ctx, key)
	if errors.Is(err, metadata.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	return string(v), nil
}
