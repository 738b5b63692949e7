// Package credential persists and retrieves the session credential: the
// opaque bearer token, the cached user record, and the login timestamp.
//
// The credential is duplicated across every configured store so a consumer
// reading any one of them finds it: Save fans out to all stores, Read walks
// them in preference order and returns the first structurally valid hit.
package credential

import (
	"context"
	"time"

	"github.com/goccy/go-json"

	"github.com/desirppc/parcelace/internal/client/models"
	"github.com/desirppc/parcelace/internal/client/stores"
	"github.com/desirppc/parcelace/internal/logging"
)

// Storage keys. The same set is written to every store and removed from
// every store on Clear.
const (
	KeyToken   = "auth_token"
	KeyUser    = "auth_user"
	KeyLoginAt = "login_at"
)

var allKeys = []string{KeyToken, KeyUser, KeyLoginAt}

// Credential is the authentication record. LoginAt is zero when the stored
// timestamp is missing or unparseable.
type Credential struct {
	Token   string
	User    *models.User
	LoginAt time.Time
}

// Store fans a credential out over an ordered list of key-value stores.
// The first store is the preferred read source.
type Store struct {
	backends []stores.Store
	log      logging.Logger
}

// NewStore builds a credential store over the given backends, in read
// preference order. At least one backend is expected.
func NewStore(log logging.Logger, backends ...stores.Store) *Store {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Store{backends: backends, log: log}
}

// Save writes token, serialized user, and the current login timestamp to
// every backend. The first backend error aborts and is returned; partial
// writes are cleaned up by the next Clear. Token format is not validated
// here: the token is opaque.
func (s *Store) Save(ctx context.Context, token string, user *models.User) error {
	return s.SaveAt(ctx, token, user, time.Now())
}

// SaveAt is Save with an explicit login timestamp.
func (s *Store) SaveAt(ctx context.Context, token string, user *models.User, loginAt time.Time) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	values := map[string][]byte{
		KeyToken:   []byte(token),
		KeyUser:    data,
		KeyLoginAt: []byte(loginAt.Format(time.RFC3339)),
	}

	for _, b := range s.backends {
		if err := b.SetMany(ctx, values); err != nil {
			return err
		}
	}
	return nil
}

// Read returns the stored credential, or (nil, nil) when no backend holds
// a usable one. A credential is usable when the token is non-empty and the
// user record deserializes with a positive id. Malformed data and failing
// backends are skipped, never surfaced: absence is the worst outcome.
func (s *Store) Read(ctx context.Context) (*Credential, error) {
	for _, b := range s.backends {
		cred := s.readFrom(ctx, b)
		if cred != nil {
			return cred, nil
		}
	}
	return nil, nil
}

func (s *Store) readFrom(ctx context.Context, b stores.Store) *Credential {
	token, err := b.Get(ctx, KeyToken)
	if err != nil {
		s.log.Warn(ctx, "credential read failed, skipping store", "error", err)
		return nil
	}
	if len(token) == 0 {
		return nil
	}

	rawUser, err := b.Get(ctx, KeyUser)
	if err != nil || len(rawUser) == 0 {
		return nil
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		s.log.Warn(ctx, "stored user record is malformed, treating as absent", "error", err)
		return nil
	}
	if err := user.Validate(); err != nil {
		return nil
	}

	cred := &Credential{Token: string(token), User: &user}

	// Missing or bad timestamp degrades session-age reporting only.
	if rawAt, err := b.Get(ctx, KeyLoginAt); err == nil && len(rawAt) > 0 {
		if at, err := time.Parse(time.RFC3339, string(rawAt)); err == nil {
			cred.LoginAt = at
		}
	}
	return cred
}

// UpdateUser rewrites the persisted user record in every backend, leaving
// token and login timestamp untouched.
func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	for _, b := range s.backends {
		if err := b.Set(ctx, KeyUser, data); err != nil {
			return err
		}
	}
	return nil
}

// Clear removes every credential key from every backend. Idempotent:
// clearing an already-empty store is a no-op. Backend failures are logged
// and the remaining backends are still cleared.
func (s *Store) Clear(ctx context.Context) error {
	var firstErr error
	for _, b := range s.backends {
		for _, key := range allKeys {
			if err := b.Delete(ctx, key); err != nil {
				s.log.Warn(ctx, "failed to clear credential key", "key", key, "error", err)
				if firstErr == nil {
					firstErr = err
				}
			}
		}
	}
	return firstErr
}
