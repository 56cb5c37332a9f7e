package identity_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"staybook/internal/adapters/identity"
	"staybook/internal/domain"
)

type memUserStore struct {
	users map[string]domain.User
	fail  bool
}

func (m *memUserStore) Upsert(ctx context.Context, u domain.User) error {
	if m.fail {
		return errors.New("users collection down")
	}
	if m.users == nil {
		m.users = map[string]domain.User{}
	}
	m.users[u.UID] = u
	return nil
}

func (m *memUserStore) Get(ctx context.Context, uid string) (domain.User, error) {
	u, ok := m.users[uid]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestClient_Login(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/sessions" {
			t.Errorf("unexpected call: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("X-API-Key"); got != "test-key" {
			t.Errorf("api key header: %q", got)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "u1@example.com" {
			t.Errorf("body: %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"token": "tok-1", "uid": "u1", "email": "u1@example.com", "display_name": "U One",
		})
	}))
	defer ts.Close()

	users := &memUserStore{}
	cl, err := identity.New(ts.URL, "test-key", 100, users)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	sess, token, err := cl.Login(testCtx(t), "u1@example.com", "secret123")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if token != "tok-1" || sess.UID != "u1" || sess.DisplayName != "U One" {
		t.Fatalf("session: %+v token=%q", sess, token)
	}
	if _, ok := users.users["u1"]; !ok {
		t.Fatal("login did not mirror the profile document")
	}
}

func TestClient_Login_BadCredentials(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	cl, _ := identity.New(ts.URL, "", 100, nil)
	_, _, err := cl.Login(testCtx(t), "u1@example.com", "wrong")
	if !errors.Is(err, identity.ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestClient_LoginWithProvider(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/sessions/provider" {
			t.Errorf("unexpected call: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["provider"] != "google" || body["id_token"] != "google-grant" {
			t.Errorf("body: %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"token": "tok-g", "uid": "u-g", "email": "g@example.com", "display_name": "G User",
		})
	}))
	defer ts.Close()

	users := &memUserStore{}
	cl, _ := identity.New(ts.URL, "", 100, users)

	sess, token, err := cl.LoginWithProvider(testCtx(t), "google", "google-grant")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if token != "tok-g" || sess.UID != "u-g" || sess.Email != "g@example.com" {
		t.Fatalf("session: %+v token=%q", sess, token)
	}
	u, ok := users.users["u-g"]
	if !ok {
		t.Fatal("first provider login did not create the users document")
	}
	if u.DisplayName != "G User" {
		t.Fatalf("mirrored user: %+v", u)
	}
}

func TestClient_LoginWithProvider_RejectedGrant(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	cl, _ := identity.New(ts.URL, "", 100, nil)
	_, _, err := cl.LoginWithProvider(testCtx(t), "google", "stale-grant")
	if !errors.Is(err, identity.ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestClient_Register_EmailTaken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer ts.Close()

	cl, _ := identity.New(ts.URL, "", 100, nil)
	_, _, err := cl.Register(testCtx(t), "dup@example.com", "secret123", "Dup")
	if !errors.Is(err, identity.ErrEmailTaken) {
		t.Fatalf("got %v, want ErrEmailTaken", err)
	}
}

func TestClient_Register_UpsertFailureStillReturnsSession(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"token": "tok-2", "uid": "u2", "email": "u2@example.com", "display_name": "U Two",
		})
	}))
	defer ts.Close()

	cl, _ := identity.New(ts.URL, "", 100, &memUserStore{fail: true})
	sess, token, err := cl.Register(testCtx(t), "u2@example.com", "secret123", "U Two")
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("got %v, want ErrPersistence", err)
	}
	if sess.UID != "u2" || token != "tok-2" {
		t.Fatalf("session should survive the profile write failure: %+v %q", sess, token)
	}
}

func TestClient_Verify(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/sessions/current" {
			t.Errorf("path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"uid": "u1", "email": "u1@example.com", "display_name": "U One",
		})
	}))
	defer ts.Close()

	cl, _ := identity.New(ts.URL, "", 100, nil)

	sess, err := cl.Verify(testCtx(t), "tok-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sess.UID != "u1" {
		t.Fatalf("session: %+v", sess)
	}

	if _, err := cl.Verify(testCtx(t), "expired"); !errors.Is(err, identity.ErrSessionExpired) {
		t.Fatalf("got %v, want ErrSessionExpired", err)
	}
}

func TestClient_Logout(t *testing.T) {
	var called bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/v1/sessions/current" {
			t.Errorf("unexpected call: %s %s", r.Method, r.URL.Path)
		}
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	cl, _ := identity.New(ts.URL, "", 100, nil)
	if err := cl.Logout(testCtx(t), "tok-1"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !called {
		t.Fatal("provider was not called")
	}
}

func TestClient_RequiresBaseURL(t *testing.T) {
	if _, err := identity.New("", "", 10, nil); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}

func TestEvents_PublishReachesAllSubscribers(t *testing.T) {
	ev := identity.NewEvents()
	var got []identity.EventKind
	ev.Subscribe(func(e identity.Event) { got = append(got, e.Kind) })
	ev.Subscribe(func(e identity.Event) { got = append(got, e.Kind) })

	ev.Publish(identity.Event{Kind: identity.EventLogin, Session: domain.Session{UID: "u1"}})
	ev.Publish(identity.Event{Kind: identity.EventLogout})

	want := []identity.EventKind{identity.EventLogin, identity.EventLogin, identity.EventLogout, identity.EventLogout}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
