package vault

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/aresprotocol/internal/localstore"
	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
)

// LocalKeyName is the storage item the device keeps its vault key under.
const LocalKeyName = "ares_vault_core"

var _ KeyStore = (*LocalKeyStore)(nil)
var _ KeyStore = (*PgKeyStore)(nil)
var _ KeyStore = (*WrappedKeyStore)(nil)
var _ KeyStore = (*MemoryKeyStore)(nil)

// LocalKeyStore keeps a single device key in local storage; owner is ignored.
type LocalKeyStore struct {
	storage localstore.Storage
}

func NewLocalKeyStore(storage localstore.Storage) *LocalKeyStore {
	return &LocalKeyStore{storage: storage}
}

func (s *LocalKeyStore) LoadKey(_ context.Context, _ string) ([]byte, error) {
	encoded, err := s.storage.GetItem(LocalKeyName)
	if err != nil {
		if errors.Is(err, localstore.ErrItemNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return DecodeKey(encoded)
}

func (s *LocalKeyStore) StoreKey(_ context.Context, _ string, key []byte) error {
	return s.storage.SetItem(LocalKeyName, EncodeKey(key))
}

type PgKeyStore struct {
	db *pgxpool.Pool
}

func NewPgKeyStore(db *pgxpool.Pool) *PgKeyStore {
	return &PgKeyStore{db: db}
}

func (s *PgKeyStore) LoadKey(ctx context.Context, owner string) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.vault.loadKey")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("owner", owner))

	var encoded string
	err = s.db.QueryRow(ctx, `
		SELECT wrapped_key FROM vault_key WHERE owner = $1
	`, owner).Scan(&encoded)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return []byte(encoded), nil
}

// StoreKey inserts the key; an existing key for the owner is never overwritten.
func (s *PgKeyStore) StoreKey(ctx context.Context, owner string, key []byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.vault.storeKey")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := s.db.Exec(ctx, `
		INSERT INTO vault_key (owner, wrapped_key)
		VALUES ($1, $2)
		ON CONFLICT (owner) DO NOTHING
	`, owner, string(key))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vault key for %s already exists", owner)
	}
	return nil
}

// WrappedKeyStore seals per-owner keys with a server master key before they reach the inner store.
type WrappedKeyStore struct {
	masterKey []byte
	inner     KeyStore
}

func NewWrappedKeyStore(masterKey []byte, inner KeyStore) (*WrappedKeyStore, error) {
	if len(masterKey) != KeySize {
		return nil, fmt.Errorf("%w: master key size %d", ErrInvalidKey, len(masterKey))
	}
	return &WrappedKeyStore{masterKey: masterKey, inner: inner}, nil
}

func (s *WrappedKeyStore) LoadKey(ctx context.Context, owner string) ([]byte, error) {
	wrapped, err := s.inner.LoadKey(ctx, owner)
	if err != nil {
		return nil, err
	}
	encoded, err := Decrypt(s.masterKey, string(wrapped))
	if err != nil {
		return nil, fmt.Errorf("unwrap key: %w", err)
	}
	return DecodeKey(string(encoded))
}

func (s *WrappedKeyStore) StoreKey(ctx context.Context, owner string, key []byte) error {
	wrapped, err := Encrypt(s.masterKey, []byte(EncodeKey(key)))
	if err != nil {
		return fmt.Errorf("wrap key: %w", err)
	}
	return s.inner.StoreKey(ctx, owner, []byte(wrapped))
}

type MemoryKeyStore struct {
	mutex sync.Mutex
	keys  map[string][]byte
}

func NewMemoryKeyStore() *MemoryKeyStore {
	return &MemoryKeyStore{keys: make(map[string][]byte)}
}

func (s *MemoryKeyStore) LoadKey(_ context.Context, owner string) ([]byte, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	k, ok := s.keys[owner]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), k...), nil
}

func (s *MemoryKeyStore) StoreKey(_ context.Context, owner string, key []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.keys[owner] = append([]byte(nil), key...)
	return nil
}
