package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const snapshotFileName = "session.json"

// FileSnapshotRepo stores the session snapshot as a JSON file under the data
// folder, next to the credential file.
type FileSnapshotRepo struct {
	path string
}

func NewFileSnapshotRepo(dataFolder string) (*FileSnapshotRepo, error) {
	if err := os.MkdirAll(dataFolder, 0o700); err != nil {
		return nil, fmt.Errorf("creating data folder %q: %w", dataFolder, err)
	}
	return &FileSnapshotRepo{path: filepath.Join(dataFolder, snapshotFileName)}, nil
}

func (r *FileSnapshotRepo) Save(u *User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encoding session snapshot: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing session snapshot: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replacing session snapshot: %w", err)
	}
	return nil
}

func (r *FileSnapshotRepo) Load() (*User, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session snapshot: %w", err)
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("decoding session snapshot: %w", err)
	}
	return &u, nil
}

func (r *FileSnapshotRepo) Delete() error {
	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session snapshot: %w", err)
	}
	return nil
}
