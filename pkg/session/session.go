// Package session persists the access tokens obtained through the PIN
// authorization flow.
//
// A [Session] records the OAuth 1.0a access token pair together with the
// account it belongs to. The CLI stores one session per profile so that
// credentials obtained with "chirp login" do not have to live in the config
// file:
//
//	store, err := session.NewCLIStore("", "default")
//	sess, err := session.New(tok.Token, tok.Secret, tok.UserID, tok.ScreenName, 0)
//	err = store.SaveSession(ctx, sess)
//
// Access tokens do not expire on the service side. A session created with a
// zero TTL never expires; a positive TTL forces a new login after it passes.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	errs "github.com/matzehuels/chirp/pkg/errors"
)

// Session stores an authorized account.
type Session struct {
	ID          string    `json:"id"`
	Token       string    `json:"token"`
	TokenSecret string    `json:"token_secret"`
	UserID      string    `json:"user_id"`
	ScreenName  string    `json:"screen_name"`
	ExpiresAt   time.Time `json:"expires_at,omitzero"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsExpired reports whether the session has passed its expiry time.
// Sessions without an expiry time never expire.
func (s *Session) IsExpired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Account returns a display name for the session's account.
func (s *Session) Account() string {
	if s == nil {
		return ""
	}
	if s.ScreenName != "" {
		return "@" + s.ScreenName
	}
	return s.UserID
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error
}

// GenerateID creates a cryptographically secure random session ID.
func GenerateID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errs.Wrap(errs.ErrCodeConfiguration, err, "no secure random source")
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// New creates a session for an access token pair. A ttl <= 0 creates a
// session that never expires.
func New(token, tokenSecret, userID, screenName string, ttl time.Duration) (*Session, error) {
	if token == "" || tokenSecret == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "access token and secret are required")
	}
	id, err := GenerateID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sess := &Session{
		ID:          id,
		Token:       token,
		TokenSecret: tokenSecret,
		UserID:      userID,
		ScreenName:  screenName,
		CreatedAt:   now,
	}
	if ttl > 0 {
		sess.ExpiresAt = now.Add(ttl)
	}
	return sess, nil
}
