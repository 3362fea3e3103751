package session

import (
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
)

func profile() *domain.User {
	return &domain.User{ID: 1, Nombre: "Ana García", Username: "ana", Rol: domain.RoleAbogada, Activo: true}
}

func newStore(cookies ...*http.Cookie) (*CookieStore, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	return New(rec, req, Options{}), rec
}

// responseCookies indexes the Set-Cookie headers written so far.
func responseCookies(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := make(map[string]*http.Cookie)
	for _, c := range rec.Result().Cookies() {
		out[c.Name] = c
	}
	return out
}

func TestCookieStore_SaveThenLoad(t *testing.T) {
	store, rec := newStore()

	if err := store.Save("tok-1", profile()); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Same-request read sees the fresh session.
	sess, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !sess.Authenticated() || sess.Token != "tok-1" || sess.User.Username != "ana" {
		t.Fatalf("unexpected session: %+v", sess)
	}

	// Both entries were persisted together.
	cookies := responseCookies(rec)
	token, user := cookies["tutelas_token"], cookies["tutelas_user"]
	if token == nil || user == nil {
		t.Fatalf("expected both cookies, got %v", cookies)
	}
	if token.Value != "tok-1" || user.Value == "" {
		t.Fatalf("unexpected cookie values: %q %q", token.Value, user.Value)
	}

	// A later request carrying those cookies recovers the same session.
	next, _ := newStore(
		&http.Cookie{Name: "tutelas_token", Value: token.Value},
		&http.Cookie{Name: "tutelas_user", Value: user.Value},
	)
	sess, err = next.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if sess.Token != "tok-1" || sess.User.Rol != domain.RoleAbogada {
		t.Fatalf("unexpected rehydrated session: %+v", sess)
	}
}

func TestCookieStore_LoadWithoutCookies(t *testing.T) {
	store, rec := newStore()
	sess, err := store.Load()
	if err != nil || sess != nil {
		t.Fatalf("expected no session and no error, got %+v, %v", sess, err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("load of an absent session must not write cookies")
	}
}

func TestCookieStore_TokenWithoutUser(t *testing.T) {
	store, rec := newStore(&http.Cookie{Name: "tutelas_token", Value: "tok-1"})

	sess, err := store.Load()
	if sess != nil {
		t.Fatalf("expected no session, got %+v", sess)
	}
	if !errors.Is(err, domain.ErrMalformedSession) {
		t.Fatalf("expected ErrMalformedSession, got %v", err)
	}
	assertCleared(t, rec)
}

func TestCookieStore_UserWithoutToken(t *testing.T) {
	encoded, _ := encodeProfile(profile())
	store, rec := newStore(&http.Cookie{Name: "tutelas_user", Value: encoded})

	if _, err := store.Load(); !errors.Is(err, domain.ErrMalformedSession) {
		t.Fatalf("expected ErrMalformedSession, got %v", err)
	}
	assertCleared(t, rec)
}

func TestCookieStore_CorruptProfile(t *testing.T) {
	corrupt := []string{
		"%%%not-base64%%%",
		base64.RawURLEncoding.EncodeToString([]byte("{not json")),
		base64.RawURLEncoding.EncodeToString([]byte(`{"id":1,"nombre":"Ana"}`)),
		base64.RawURLEncoding.EncodeToString([]byte(`{"username":"ana","rol":"superuser"}`)),
	}

	for _, value := range corrupt {
		store, rec := newStore(
			&http.Cookie{Name: "tutelas_token", Value: "tok-1"},
			&http.Cookie{Name: "tutelas_user", Value: value},
		)
		sess, err := store.Load()
		if sess != nil {
			t.Fatalf("%q: expected no session, got %+v", value, sess)
		}
		if !errors.Is(err, domain.ErrMalformedSession) {
			t.Fatalf("%q: expected ErrMalformedSession, got %v", value, err)
		}
		assertCleared(t, rec)
	}
}

func TestCookieStore_Clear(t *testing.T) {
	store, rec := newStore()
	if err := store.Save("tok-1", profile()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	sess, err := store.Load()
	if sess != nil || err != nil {
		t.Fatalf("expected cleared session, got %+v, %v", sess, err)
	}
	assertCleared(t, rec)
}

func TestCookieStore_SaveRejectsPartialSession(t *testing.T) {
	store, _ := newStore()
	if err := store.Save("", profile()); err == nil {
		t.Fatalf("expected error saving without token")
	}
	if err := store.Save("tok-1", nil); err == nil {
		t.Fatalf("expected error saving without user")
	}
}

// assertCleared verifies the most recent Set-Cookie headers expire both
// entries, leaving no partial state behind.
func assertCleared(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	var token, user *http.Cookie
	// Last write wins: scan in order so later Set-Cookie headers override.
	for _, c := range rec.Result().Cookies() {
		switch c.Name {
		case "tutelas_token":
			token = c
		case "tutelas_user":
			user = c
		}
	}
	if token == nil || user == nil {
		t.Fatalf("expected both cookies to be rewritten")
	}
	if token.MaxAge >= 0 || token.Value != "" {
		t.Fatalf("token cookie not expired: %+v", token)
	}
	if user.MaxAge >= 0 || user.Value != "" {
		t.Fatalf("user cookie not expired: %+v", user)
	}
}
