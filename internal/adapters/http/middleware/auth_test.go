package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"clubhouse/internal/domain/membership"
)

func TestSessionStore_CreateGetDelete(t *testing.T) {
	ss := NewSessionStore()

	token, err := ss.Create(Session{
		AccountID: "acct-1",
		Email:     "thabo@example.com",
		FirstName: "Thabo",
		Role:      "user",
		Status:    membership.StatusNone,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	sess, ok := ss.Get(token)
	if !ok {
		t.Fatal("expected session to exist")
	}
	if sess.AccountID != "acct-1" || sess.Status != membership.StatusNone {
		t.Errorf("unexpected session: %+v", sess)
	}
	if sess.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be stamped")
	}

	ss.Delete(token)
	if _, ok := ss.Get(token); ok {
		t.Error("expected session gone after delete")
	}
	// Deleting again is a no-op
	ss.Delete(token)
}

func TestSessionStore_Expiry(t *testing.T) {
	ss := NewSessionStore()
	token, _ := ss.Create(Session{AccountID: "acct-1", Role: "user"})

	// Age the session past the 24 hour window
	ss.mu.Lock()
	sess := ss.sessions[token]
	sess.CreatedAt = time.Now().Add(-25 * time.Hour)
	ss.sessions[token] = sess
	ss.mu.Unlock()

	if _, ok := ss.Get(token); ok {
		t.Error("expected expired session to be rejected")
	}
}

// TestSessionStore_ConcurrentExpiredGet hammers Get with an expired token
// from many goroutines. Eviction happens under the write lock, so this must
// stay clean under the race detector.
func TestSessionStore_ConcurrentExpiredGet(t *testing.T) {
	ss := NewSessionStore()
	token, _ := ss.Create(Session{AccountID: "acct-1", Role: "user"})

	ss.mu.Lock()
	sess := ss.sessions[token]
	sess.CreatedAt = time.Now().Add(-25 * time.Hour)
	ss.sessions[token] = sess
	ss.mu.Unlock()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := ss.Get(token); ok {
				t.Error("expected expired session to be rejected")
			}
		}()
	}
	wg.Wait()

	if _, ok := ss.sessions[token]; ok {
		t.Error("expected expired session to be evicted")
	}
}

func TestSessionStore_Update(t *testing.T) {
	ss := NewSessionStore()
	token, _ := ss.Create(Session{AccountID: "acct-1", Role: "user", Status: membership.StatusNone})

	sess, _ := ss.Get(token)
	sess.Status = membership.StatusPendingApplication
	if !ss.Update(token, sess) {
		t.Fatal("expected update to succeed")
	}
	got, _ := ss.Get(token)
	if got.Status != membership.StatusPendingApplication {
		t.Errorf("expected updated status, got %q", got.Status)
	}

	if ss.Update("missing-token", sess) {
		t.Error("expected update of unknown token to fail")
	}
}

func TestAuthMiddleware_SetsContext(t *testing.T) {
	ss := NewSessionStore()
	token, _ := ss.Create(Session{AccountID: "acct-1", Role: "admin"})

	var got Session
	var ok bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetSessionFromContext(r.Context())
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	Auth(ss)(inner).ServeHTTP(httptest.NewRecorder(), req)

	if !ok || got.AccountID != "acct-1" {
		t.Errorf("expected session in context, got %+v (ok=%v)", got, ok)
	}

	// Without a cookie no session lands in context
	ok = false
	Auth(ss)(inner).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	if ok {
		t.Error("did not expect a session without a cookie")
	}
}

func TestRequireRole(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireRole("admin")(inner)

	// No session: redirect to login
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/admin", nil))
	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected redirect, got %d", rec.Code)
	}

	// Wrong role: forbidden
	req := httptest.NewRequest("GET", "/admin", nil)
	req = req.WithContext(ContextWithSession(req.Context(), Session{AccountID: "a", Role: "user"}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected forbidden, got %d", rec.Code)
	}

	// Matching role: passes through
	req = httptest.NewRequest("GET", "/admin", nil)
	req = req.WithContext(ContextWithSession(req.Context(), Session{AccountID: "a", Role: "admin"}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected ok, got %d", rec.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("expected the fourth request to be limited")
	}
	// A different IP has its own bucket
	if !rl.Allow("10.0.0.2") {
		t.Error("expected a fresh IP to be allowed")
	}
}
