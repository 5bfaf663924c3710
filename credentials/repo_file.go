package credentials

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/nacl/secretbox"
)

const credentialsFileName = "credentials.json"

// FileRepo persists the token pair to a single file under the data folder so
// credentials survive a restart. Writes go through a temp file and rename.
// With a key configured, the payload is sealed with NaCl secretbox; tokens on
// disk are then unreadable without the key.
type FileRepo struct {
	path string
	key  *[32]byte // nil means plaintext storage

	mu     sync.Mutex
	values map[string]string
}

// NewFileRepo loads an existing credential file if one is present. hexKey is an
// optional hex-encoded 32-byte encryption key; pass "" for plaintext storage.
// An unreadable or undecryptable file is treated as an empty store, the same as
// first run: the user just has to log in again.
func NewFileRepo(dataFolder, hexKey string) (*FileRepo, error) {
	if err := os.MkdirAll(dataFolder, 0o700); err != nil {
		return nil, fmt.Errorf("creating data folder %q: %w", dataFolder, err)
	}

	r := &FileRepo{
		path:   filepath.Join(dataFolder, credentialsFileName),
		values: make(map[string]string),
	}

	if hexKey != "" {
		raw, err := hex.DecodeString(hexKey)
		if err != nil || len(raw) != 32 {
			return nil, fmt.Errorf("credentials key must be 32 hex-encoded bytes")
		}
		r.key = new([32]byte)
		copy(r.key[:], raw)
	}

	if err := r.load(); err != nil {
		log.Warn().Err(err).Str("path", r.path).Msg("Ignoring unreadable credential file")
		r.values = make(map[string]string)
	}
	return r, nil
}

func (r *FileRepo) Set(key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return r.persist()
}

func (r *FileRepo) Get(key string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.values[key]
	return v, ok
}

func (r *FileRepo) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, KeyAccessToken)
	delete(r.values, KeyRefreshToken)
	return r.persist()
}

func (r *FileRepo) load() error {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	if r.key != nil {
		data, err = r.open(data)
		if err != nil {
			return err
		}
	}
	return json.Unmarshal(data, &r.values)
}

func (r *FileRepo) persist() error {
	data, err := json.Marshal(r.values)
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}
	if r.key != nil {
		if data, err = r.seal(data); err != nil {
			return err
		}
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replacing credentials file: %w", err)
	}
	return nil
}

// seal encrypts data and prefixes the random nonce to the box.
func (r *FileRepo) seal(data []byte) ([]byte, error) {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], data, &nonce, r.key), nil
}

func (r *FileRepo) open(data []byte) ([]byte, error) {
	if len(data) < 24 {
		return nil, fmt.Errorf("credential file too short to contain a nonce")
	}
	var nonce [24]byte
	copy(nonce[:], data[:24])
	plain, ok := secretbox.Open(nil, data[24:], &nonce, r.key)
	if !ok {
		return nil, fmt.Errorf("credential file could not be decrypted")
	}
	return plain, nil
}
