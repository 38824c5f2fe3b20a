package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmeterdemserceoglu/sloter/internal/model"
	"github.com/ahmeterdemserceoglu/sloter/pkg/token"
)

var secret = []byte("test-secret")

func protected(t *testing.T, wantID int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Error("user id missing from context")
		}
		if id != wantID {
			t.Errorf("user id = %d, want %d", id, wantID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func bearerRequest(t *testing.T, user *model.User) *http.Request {
	t.Helper()
	tokenStr, err := token.GenerateAccessToken(user, secret, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	r := httptest.NewRequest(http.MethodPost, "/spin", nil)
	r.Header.Set("Authorization", "Bearer "+tokenStr)
	return r
}

func TestAuth_ValidToken(t *testing.T) {
	h := Auth(secret)(protected(t, 42))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, bearerRequest(t, &model.User{ID: 42, Role: model.RolePlayer}))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestAuth_MissingToken(t *testing.T) {
	h := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without a token")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/spin", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_ForgedToken(t *testing.T) {
	tokenStr, err := token.GenerateAccessToken(&model.User{ID: 1}, []byte("other-secret"), time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	h := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run with a forged token")
	}))

	r := httptest.NewRequest(http.MethodPost, "/spin", nil)
	r.Header.Set("Authorization", "Bearer "+tokenStr)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireCapability_PlayerDeniedAdminAction(t *testing.T) {
	h := Auth(secret)(RequireCapability(model.CapAdminUnlock)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("player must not reach admin handler")
		})))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, bearerRequest(t, &model.User{ID: 1, Role: model.RolePlayer}))

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestRequireCapability_AdminAllowed(t *testing.T) {
	h := Auth(secret)(RequireCapability(model.CapAdminUnlock)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, bearerRequest(t, &model.User{ID: 1, Role: model.RoleAdmin}))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
