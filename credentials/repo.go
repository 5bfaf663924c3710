// Package credentials is the durable token store for the client. It holds the
// two opaque bearer credentials issued by the backend under fixed keys, the
// same keys the browser client kept in local storage. Expiry is never tracked
// here; an expired access token is discovered reactively through a 401.
package credentials

// Storage keys for the token pair
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
)

// Pair bundles the two tokens issued together by the backend.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Repo is durable key-value storage for the token pair.
//
// Set overwrites without validation. Get returns the value and whether it was
// present; it never fails. Clear removes both keys and is used on logout and on
// an irrecoverable refresh failure.
type Repo interface {
	Set(key, value string) error
	Get(key string) (string, bool)
	Clear() error
}

// SetPair persists both tokens of a freshly issued pair.
func SetPair(r Repo, p Pair) error {
	if err := r.Set(KeyAccessToken, p.AccessToken); err != nil {
		return err
	}
	return r.Set(KeyRefreshToken, p.RefreshToken)
}

// GetPair reads whatever tokens are currently stored. Missing keys come back
// as empty strings.
func GetPair(r Repo) Pair {
	access, _ := r.Get(KeyAccessToken)
	refresh, _ := r.Get(KeyRefreshToken)
	return Pair{AccessToken: access, RefreshToken: refresh}
}
