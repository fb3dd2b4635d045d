package credential

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/99designs/keyring"

	"github.com/nhle/tempinbox/internal/model"
)

const (
	serviceName = "tempinbox"
	sessionKey  = "session"
)

// ErrPartialSession is returned when asked to persist a session with any
// empty field.
var ErrPartialSession = errors.New("refusing to persist partial session")

// Open returns a keyring using the OS secret store when available and an
// obfuscated file under configDir otherwise. The file password is a fixed
// string; this is a storage location, not a security boundary.
func Open(configDir string) (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  filepath.Join(configDir, "credentials"),
		FilePasswordFunc:         keyring.FixedStringPrompt("tempinbox-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// KeyringStore persists the session triple as a single keyring item, so
// one write replaces all three fields at once.
type KeyringStore struct {
	ring keyring.Keyring
}

// NewKeyringStore wraps an opened keyring.
func NewKeyringStore(ring keyring.Keyring) *KeyringStore {
	return &KeyringStore{ring: ring}
}

// LoadSession returns the stored session, or the zero Session if none
// has been saved yet.
func (k *KeyringStore) LoadSession(_ context.Context) (model.Session, error) {
	item, err := k.ring.Get(sessionKey)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return model.Session{}, nil
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("getting credential %q: %w", sessionKey, err)
	}

	var sess model.Session
	if err := json.Unmarshal(item.Data, &sess); err != nil {
		return model.Session{}, fmt.Errorf("decoding credential %q: %w", sessionKey, err)
	}
	return sess, nil
}

// SaveSession overwrites the stored session.
func (k *KeyringStore) SaveSession(_ context.Context, sess model.Session) error {
	if !sess.Valid() {
		return ErrPartialSession
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding credential %q: %w", sessionKey, err)
	}

	err = k.ring.Set(keyring.Item{
		Key:   sessionKey,
		Data:  data,
		Label: "tempinbox mailbox session",
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", sessionKey, err)
	}

	return nil
}

// DeleteSession removes the stored session.
func (k *KeyringStore) DeleteSession(_ context.Context) error {
	err := k.ring.Remove(sessionKey)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting credential %q: %w", sessionKey, err)
	}
	return nil
}

// Close is a no-op; keyrings hold no open handles.
func (k *KeyringStore) Close() error {
	return nil
}
