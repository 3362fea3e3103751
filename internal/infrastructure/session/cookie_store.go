// Package session persists the visitor's session as two cookies: the bearer
// token and the serialized profile. The pair is written and removed together
// so no reader can ever observe half a session.
package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
)

const (
	cookieToken = "tutelas_token"
	cookieUser  = "tutelas_user"
)

// Options controls the cookie attributes.
type Options struct {
	// Secure marks the cookies HTTPS-only. Off for local development.
	Secure bool
	// TTL is the cookie lifetime. Zero falls back to 12 hours.
	TTL time.Duration
}

// CookieStore reads and writes the session cookies of one request/response
// pair. A new store is built per request by the session middleware.
//
// Writes within a request are visible to later Loads of the same store,
// even though the request's Cookie header still carries the old values.
type CookieStore struct {
	req  *http.Request
	res  http.ResponseWriter
	opts Options

	cached  *domain.Session
	cleared bool
}

func New(res http.ResponseWriter, req *http.Request, opts Options) *CookieStore {
	if opts.TTL <= 0 {
		opts.TTL = 12 * time.Hour
	}
	return &CookieStore{req: req, res: res, opts: opts}
}

// Load resolves the persisted session. It returns (nil, nil) for a visitor
// with no session, and (nil, domain.ErrMalformedSession) when only one
// entry is present or the profile does not decode to a valid shape; in that
// case the partial state has already been cleared.
func (s *CookieStore) Load() (*domain.Session, error) {
	if s.cleared {
		return nil, nil
	}
	if s.cached != nil {
		return s.cached, nil
	}

	token, errToken := s.req.Cookie(cookieToken)
	user, errUser := s.req.Cookie(cookieUser)
	if errToken != nil && errUser != nil {
		return nil, nil
	}
	if errToken != nil || errUser != nil || token.Value == "" {
		_ = s.Clear()
		return nil, domain.ErrMalformedSession
	}

	profile, err := decodeProfile(user.Value)
	if err != nil {
		_ = s.Clear()
		return nil, domain.ErrMalformedSession
	}

	s.cached = &domain.Session{Token: token.Value, User: profile}
	return s.cached, nil
}

// Save persists token and user together.
func (s *CookieStore) Save(token string, user *domain.User) error {
	if token == "" || user == nil {
		return errors.New("session: token y usuario deben guardarse juntos")
	}

	encoded, err := encodeProfile(user)
	if err != nil {
		return err
	}

	maxAge := int(s.opts.TTL / time.Second)
	s.set(cookieToken, token, maxAge)
	s.set(cookieUser, encoded, maxAge)

	s.cached = &domain.Session{Token: token, User: user}
	s.cleared = false
	return nil
}

// Clear removes both entries.
func (s *CookieStore) Clear() error {
	s.set(cookieToken, "", -1)
	s.set(cookieUser, "", -1)
	s.cached = nil
	s.cleared = true
	return nil
}

func (s *CookieStore) set(name, value string, maxAge int) {
	http.SetCookie(s.res, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func encodeProfile(user *domain.User) (string, error) {
	raw, err := json.Marshal(user)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// decodeProfile rejects anything that does not decode to a usable profile:
// bad base64, bad JSON, missing username or an unknown role.
func decodeProfile(encoded string) (*domain.User, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, err
	}
	if user.Username == "" || !user.Rol.Valid() {
		return nil, domain.ErrMalformedSession
	}
	return &user, nil
}
