package session

// SnapshotRepo persists the session record between runs.
//
// Load returns nil with no error when no snapshot exists. Delete is a no-op
// when there is nothing to delete.
type SnapshotRepo interface {
	Save(u *User) error
	Load() (*User, error)
	Delete() error
}
