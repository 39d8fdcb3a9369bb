package vault

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
	"github.com/2beens/aresprotocol/pkg"
)

const (
	KeySize   = 32 // AES-256
	NonceSize = 12
	tagSize   = 16
)

var (
	ErrKeyNotFound         = errors.New("vault key not found")
	ErrInvalidKey          = errors.New("invalid vault key")
	ErrMalformedCiphertext = errors.New("malformed ciphertext")
	ErrDecrypt             = errors.New("decryption failed")
)

type KeyStore interface {
	// LoadKey returns ErrKeyNotFound when the owner has no key yet.
	LoadKey(ctx context.Context, owner string) ([]byte, error)
	StoreKey(ctx context.Context, owner string, key []byte) error
}

func NewKey() ([]byte, error) {
	return pkg.GenerateRandomBytes(KeySize)
}

func EncodeKey(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}

func DecodeKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKey, err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidKey, len(key))
	}
	return key, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidKey, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKey, err)
	}
	return cipher.NewGCM(block)
}

// Encrypt seals plaintext with a fresh random nonce and returns
// base64(nonce || ciphertext || tag).
func Encrypt(key, plaintext []byte) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce, err := pkg.GenerateRandomBytes(NonceSize)
	if err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	out := gcm.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(out), nil
}

func Decrypt(key []byte, envelope string) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedCiphertext, err)
	}
	if len(raw) < NonceSize+tagSize {
		return nil, fmt.Errorf("%w: too short (%d bytes)", ErrMalformedCiphertext, len(raw))
	}

	plaintext, err := gcm.Open(nil, raw[:NonceSize], raw[NonceSize:], nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}

// Vault resolves per-owner keys from a KeyStore, creating them on first use.
type Vault struct {
	store KeyStore

	mutex     sync.Mutex
	ownerLock map[string]*sync.Mutex
	keys      map[string][]byte
}

func New(store KeyStore) *Vault {
	return &Vault{
		store:     store,
		ownerLock: make(map[string]*sync.Mutex),
		keys:      make(map[string][]byte),
	}
}

func (v *Vault) lockFor(owner string) *sync.Mutex {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	l, ok := v.ownerLock[owner]
	if !ok {
		l = &sync.Mutex{}
		v.ownerLock[owner] = l
	}
	return l
}

func (v *Vault) cached(owner string) ([]byte, bool) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	k, ok := v.keys[owner]
	return k, ok
}

// MasterKey returns the owner's key, generating and storing one when missing.
// Concurrent first calls for the same owner yield the same key.
func (v *Vault) MasterKey(ctx context.Context, owner string) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "vault.masterKey")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if k, ok := v.cached(owner); ok {
		return k, nil
	}

	l := v.lockFor(owner)
	l.Lock()
	defer l.Unlock()

	if k, ok := v.cached(owner); ok {
		return k, nil
	}

	key, err := v.store.LoadKey(ctx, owner)
	switch {
	case err == nil:
	case errors.Is(err, ErrKeyNotFound):
		key, err = NewKey()
		if err != nil {
			return nil, fmt.Errorf("generate key: %w", err)
		}
		if err := v.store.StoreKey(ctx, owner, key); err != nil {
			return nil, fmt.Errorf("store key: %w", err)
		}
	default:
		return nil, fmt.Errorf("load key: %w", err)
	}

	v.mutex.Lock()
	v.keys[owner] = key
	v.mutex.Unlock()

	return key, nil
}

func (v *Vault) Encrypt(ctx context.Context, owner string, plaintext []byte) (string, error) {
	key, err := v.MasterKey(ctx, owner)
	if err != nil {
		return "", err
	}
	return Encrypt(key, plaintext)
}

func (v *Vault) Decrypt(ctx context.Context, owner, envelope string) ([]byte, error) {
	key, err := v.MasterKey(ctx, owner)
	if err != nil {
		return nil, err
	}
	return Decrypt(key, envelope)
}

// Forget drops the cached key of the owner.
func (v *Vault) Forget(owner string) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	delete(v.keys, owner)
}
