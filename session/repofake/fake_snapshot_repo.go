package repofake

import (
	"sync"

	"github.com/mindmate-app/mindmate-client/session"
)

// FakeSnapshotRepo is an in-memory session.SnapshotRepo for tests
type FakeSnapshotRepo struct {
	mu   sync.Mutex
	user *session.User
}

// NewFakeSnapshotRepo creates a new in-memory snapshot repository
func NewFakeSnapshotRepo() *FakeSnapshotRepo {
	return &FakeSnapshotRepo{}
}

func (r *FakeSnapshotRepo) Save(u *session.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u == nil {
		r.user = nil
		return nil
	}
	copied := *u
	r.user = &copied
	return nil
}

func (r *FakeSnapshotRepo) Load() (*session.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.user == nil {
		return nil, nil
	}
	copied := *r.user
	return &copied, nil
}

func (r *FakeSnapshotRepo) Delete() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.user = nil
	return nil
}
