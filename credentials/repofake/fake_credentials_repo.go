package repofake

import "sync"

// FakeCredentialsRepo is an in-memory credentials.Repo for tests
type FakeCredentialsRepo struct {
	mu     sync.Mutex
	values map[string]string

	// SetErr, when non-nil, is returned from every Set call
	SetErr error
}

// NewFakeCredentialsRepo creates a new in-memory credential store
func NewFakeCredentialsRepo() *FakeCredentialsRepo {
	return &FakeCredentialsRepo{values: make(map[string]string)}
}

func (r *FakeCredentialsRepo) Set(key, value string) error {
	if r.SetErr != nil {
		return r.SetErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

func (r *FakeCredentialsRepo) Get(key string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.values[key]
	return v, ok
}

func (r *FakeCredentialsRepo) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = make(map[string]string)
	return nil
}

// Len reports how many keys are currently stored
func (r *FakeCredentialsRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}
