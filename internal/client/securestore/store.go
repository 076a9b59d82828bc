// Package securestore is the on-device secure key-value store. Values are
// sealed with AES-GCM before they reach the keystore table; the key is
// derived with argon2id from a per-device secret kept in a separate file.
package securestore

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophvote/internal/client/repositories/keystore"
	"github.com/dmitrijs2005/gophvote/internal/common"
	"github.com/dmitrijs2005/gophvote/internal/cryptox"
	"github.com/dmitrijs2005/gophvote/internal/dbx"
	"github.com/dmitrijs2005/gophvote/internal/filex"
)

var ErrNotFound = errors.New("secure store: not found")

const (
	deviceSecretSize = 32
	saltKey          = "__salt"
)

// Store is a fallible key-value store for secrets.
type Store interface {
	// Get returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
}

// Entry is one key-value pair for SetAll.
type Entry struct {
	Key   string
	Value []byte
}

type SealedStore struct {
	db   dbx.TxBeginner
	repo keystore.Repository
	key  []byte
}

// Open returns a SealedStore over db. The device secret is read from
// keyFile, which is created with mode 0600 on first use.
func Open(ctx context.Context, db interface {
	dbx.DBTX
	dbx.TxBeginner
}, keyFile string) (*SealedStore, error) {
	secret, err := loadDeviceSecret(keyFile)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(secret)

	repo := keystore.NewSQLiteRepository(db)

	salt, err := repo.Get(ctx, saltKey)
	if errors.Is(err, keystore.ErrNotFound) {
		salt = common.GenerateRandByteArray(16)
		err = repo.Set(ctx, saltKey, salt)
	}
	if err != nil {
		return nil, fmt.Errorf("secure store salt: %w", err)
	}

	return &SealedStore{db: db, repo: repo, key: cryptox.DeriveKey(secret, salt)}, nil
}

func (s *SealedStore) Get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := s.repo.Get(ctx, key)
	if errors.Is(err, keystore.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	plain, err := cryptox.Open(sealed, s.key)
	if err != nil {
		return nil, fmt.Errorf("secure store open %q: %w", key, err)
	}
	return plain, nil
}

func (s *SealedStore) Set(ctx context.Context, key string, value []byte) error {
	return s.set(ctx, s.repo, key, value)
}

// SetAll writes every entry in a single transaction.
func (s *SealedStore) SetAll(ctx context.Context, entries ...Entry) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := keystore.NewSQLiteRepository(tx)
		for _, e := range entries {
			if err := s.set(ctx, repo, e.Key, e.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SealedStore) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

func (s *SealedStore) set(ctx context.Context, repo keystore.Repository, key string, value []byte) error {
	sealed, err := cryptox.Seal(value, s.key)
	if err != nil {
		return fmt.Errorf("secure store seal %q: %w", key, err)
	}
	return repo.Set(ctx, key, sealed)
}

func loadDeviceSecret(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err == nil {
		if len(b) != deviceSecretSize {
			return nil, fmt.Errorf("device key %s: unexpected size %d", path, len(b))
		}
		return b, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read device key: %w", err)
	}

	if _, err := filex.EnsureParentDir(path); err != nil {
		return nil, fmt.Errorf("create device key dir: %w", err)
	}
	secret := common.GenerateRandByteArray(deviceSecretSize)
	if err := os.WriteFile(path, secret, 0o600); err != nil {
		return nil, fmt.Errorf("write device key: %w", err)
	}
	return secret, nil
}
